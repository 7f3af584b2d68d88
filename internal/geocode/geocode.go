// Package geocode resolves free-text location strings to coordinates,
// remembering every answer for the rest of the run. Failed lookups are
// cached too so a junk location only costs one provider call.
package geocode

import (
	"unicode"

	"github.com/charmbracelet/log"
	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/tomtom"
	gocache "github.com/patrickmn/go-cache"
)

// Coordinate is a geocoded latitude/longitude pair.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// negative marks a location string that failed to geocode this run.
type negative struct{}

// Resolver geocodes location strings through a provider, caching both
// positive and negative results for the lifetime of the run.
type Resolver struct {
	geocoder geo.Geocoder
	cache    *gocache.Cache
	logger   *log.Logger
}

// NewResolver creates a Resolver around the given geocoding provider.
func NewResolver(geocoder geo.Geocoder, logger *log.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    gocache.New(gocache.NoExpiration, 0),
		logger:   logger,
	}
}

// NewTomTomGeocoder returns a TomTom-backed geocoder for the given API key.
func NewTomTomGeocoder(apiKey string) geo.Geocoder {
	return tomtom.Geocoder(apiKey)
}

// Seed preloads a known coordinate for a location string, so locations
// already present in the persisted dataset never hit the provider again.
func (r *Resolver) Seed(location string, coord Coordinate) {
	r.cache.Set(location, coord, gocache.NoExpiration)
}

// Lookup returns the coordinate for a location string. The provider is
// consulted at most once per location per run; errors and empty results
// become negative cache entries and report false.
func (r *Resolver) Lookup(location string) (Coordinate, bool) {
	if val, found := r.cache.Get(location); found {
		coord, ok := val.(Coordinate)
		return coord, ok
	}

	loc, err := r.geocoder.Geocode(location)
	if err != nil || loc == nil {
		if err != nil {
			r.logger.Warn("ignoring", "location", location, "err", err)
		} else {
			r.logger.Warn("ignoring", "location", location)
		}
		r.cache.Set(location, negative{}, gocache.NoExpiration)
		return Coordinate{}, false
	}

	coord := Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}
	r.cache.Set(location, coord, gocache.NoExpiration)
	return coord, true
}

// HasAlpha reports whether s contains at least one letter. Locations
// without any are junk ("????", "127.0.0.1") and not worth geocoding.
func HasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

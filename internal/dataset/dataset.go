// Package dataset persists the accumulated usage records as a GeoJSON
// FeatureCollection, one point feature per identity.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Record is one geolocated user of the tracked repositories.
type Record struct {
	Name      string
	Location  string
	Latitude  float64
	Longitude float64
}

// Dataset is a set of Records, at most one per identity name. Re-adding a
// name overwrites the previous record (an identity has one current location).
type Dataset struct {
	records map[string]Record
}

// New creates an empty Dataset.
func New() *Dataset {
	return &Dataset{records: make(map[string]Record)}
}

// Load reads a Dataset from a GeoJSON file. A missing file yields an empty
// Dataset. Features that fail to parse or lack a point geometry or the
// name/location properties are skipped, not errors.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var doc struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	d := New()
	for _, raw := range doc.Features {
		// The geojson parser pads short coordinate arrays instead of
		// rejecting them, so check the raw geometry first. Anything but
		// exactly [longitude, latitude] is a malformed feature.
		var shape struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		}
		if err := json.Unmarshal(raw, &shape); err != nil {
			continue
		}
		if len(shape.Geometry.Coordinates) != 2 {
			continue
		}

		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			continue
		}
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		name, ok := f.Properties["name"].(string)
		if !ok || name == "" {
			continue
		}
		location, ok := f.Properties["location"].(string)
		if !ok {
			continue
		}
		d.Add(Record{
			Name:      name,
			Location:  location,
			Latitude:  point.Lat(),
			Longitude: point.Lon(),
		})
	}
	return d, nil
}

// Add inserts a record, replacing any previous record for the same name.
func (d *Dataset) Add(r Record) {
	d.records[r.Name] = r
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns all records ordered by name, so repeated runs over the
// same data produce identical files.
func (d *Dataset) Records() []Record {
	records := make([]Record, 0, len(d.records))
	for _, r := range d.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// Save writes the Dataset to path as a GeoJSON FeatureCollection,
// replacing the whole file.
func (d *Dataset) Save(path string) error {
	fc := geojson.NewFeatureCollection()
	for _, r := range d.Records() {
		f := geojson.NewFeature(orb.Point{r.Longitude, r.Latitude})
		f.Properties = geojson.Properties{
			"name":     r.Name,
			"location": r.Location,
		}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}

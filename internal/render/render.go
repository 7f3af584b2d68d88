// Package render draws the usage dataset as markers on a world map.
package render

import (
	"fmt"
	"image/color"

	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"

	"github.com/stahnma/gh-usermap/internal/dataset"
)

const (
	mapWidth   = 2048
	mapHeight  = 1024
	markerSize = 8.0
)

var markerColor = color.RGBA{G: 0x96, A: 0xff}

// Markers converts the dataset's records to map markers.
func Markers(d *dataset.Dataset) []*sm.Marker {
	var markers []*sm.Marker
	for _, r := range d.Records() {
		pos := s2.LatLngFromDegrees(r.Latitude, r.Longitude)
		markers = append(markers, sm.NewMarker(pos, markerColor, markerSize))
	}
	return markers
}

// Map renders one marker per record on an OpenStreetMap base map and writes
// the result to path as PNG. Rendering fetches tiles over the network.
// Callers should skip empty datasets; there is nothing to bound the map to.
func Map(d *dataset.Dataset, path string) error {
	ctx := sm.NewContext()
	ctx.SetSize(mapWidth, mapHeight)
	ctx.SetTileProvider(sm.NewTileProviderOpenStreetMaps())

	for _, m := range Markers(d) {
		ctx.AddObject(m)
	}

	img, err := ctx.Render()
	if err != nil {
		return fmt.Errorf("rendering map: %w", err)
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("writing map %s: %w", path, err)
	}
	return nil
}

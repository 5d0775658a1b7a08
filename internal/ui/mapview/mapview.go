// Package mapview renders station markers onto a static map image.
package mapview

import (
	"context"
	"image"
	"image/color"
	"reflect"
	"sync"

	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	markerSize    = 16.0
)

// Marker is one rendered station marker.
type Marker struct {
	StationID string
	Latitude  float64
	Longitude float64
	Color     color.RGBA
}

// MapView renders one marker per station, color-coded by status, with the
// viewport fitted to all markers. A change to the station list tears down
// and rebuilds the full marker set; there is no incremental diffing.
type MapView struct {
	mu       sync.Mutex
	width    int
	height   int
	stations []models.Station
	markers  []Marker
	onSelect func(models.Station)
}

// New builds a map view with the default viewport size.
func New() *MapView {
	return &MapView{width: defaultWidth, height: defaultHeight}
}

// SetSize overrides the viewport dimensions.
func (v *MapView) SetSize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
}

// OnSelect registers the callback receiving marker selection events.
func (v *MapView) OnSelect(fn func(models.Station)) {
	v.mu.Lock()
	v.onSelect = fn
	v.mu.Unlock()
}

// SetStations replaces the rendered station set. Returns true when the input
// deep-differs from the current set and the markers were rebuilt.
func (v *MapView) SetStations(stations []models.Station) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if reflect.DeepEqual(v.stations, stations) {
		return false
	}

	v.stations = make([]models.Station, len(stations))
	copy(v.stations, stations)

	v.markers = v.markers[:0]
	for _, s := range v.stations {
		v.markers = append(v.markers, Marker{
			StationID: s.ID.Hex(),
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
			Color:     StatusColor(s.Status),
		})
	}
	return true
}

// Markers returns a copy of the current marker set.
func (v *MapView) Markers() []Marker {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Marker, len(v.markers))
	copy(out, v.markers)
	return out
}

// Select emits the selection event for the identified station.
func (v *MapView) Select(id string) error {
	v.mu.Lock()
	var selected *models.Station
	for i := range v.stations {
		if v.stations[i].ID.Hex() == id {
			selected = &v.stations[i]
			break
		}
	}
	fn := v.onSelect
	v.mu.Unlock()

	if selected == nil {
		return apperr.NotFound("station", id)
	}
	if fn != nil {
		fn(*selected)
	}
	return nil
}

// Render produces the map image with the viewport fitted to all markers.
// An empty station set renders the empty-state placeholder instead of a
// marker layer.
func (v *MapView) Render(ctx context.Context) (image.Image, error) {
	v.mu.Lock()
	width, height := v.width, v.height
	markers := make([]Marker, len(v.markers))
	copy(markers, v.markers)
	v.mu.Unlock()

	if len(markers) == 0 {
		return emptyState(width, height), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapCtx := sm.NewContext()
	mapCtx.SetSize(width, height)
	for _, m := range markers {
		mapCtx.AddObject(sm.NewMarker(
			s2.LatLngFromDegrees(m.Latitude, m.Longitude),
			m.Color,
			markerSize,
		))
	}
	return mapCtx.Render()
}

// RenderPreview draws a single ad-hoc marker, used by the station form to
// preview an in-progress location.
func RenderPreview(width, height int, lat, lng float64, status string) (image.Image, error) {
	mapCtx := sm.NewContext()
	mapCtx.SetSize(width, height)
	mapCtx.AddObject(sm.NewMarker(s2.LatLngFromDegrees(lat, lng), StatusColor(status), markerSize))
	return mapCtx.Render()
}

// StatusColor maps a station status to its marker color.
func StatusColor(status string) color.RGBA {
	switch status {
	case models.StatusActive:
		return color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff} // green
	case models.StatusMaintenance:
		return color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff} // orange
	default:
		return color.RGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff} // gray
	}
}

func emptyState(width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0.96, 0.96, 0.96)
	dc.Clear()
	dc.SetRGB(0.35, 0.35, 0.35)
	dc.DrawStringAnchored("no stations to display", float64(width)/2, float64(height)/2, 0.5, 0.5)
	return dc.Image()
}

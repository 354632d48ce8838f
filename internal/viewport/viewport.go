// Package viewport keeps a map viewport (center and zoom) in sync with the
// current selection. It only does the geometry; tile rendering lives
// elsewhere.
package viewport

import (
	"math"
	"sync"

	"gpxgrip/internal/domain"
	"gpxgrip/internal/eventbus"
)

const (
	tileSize = 256
	minZoom  = 0.0
	maxZoom  = 18.0

	// padding keeps fitted content away from the viewport edges.
	padding = 0.1
)

// Viewport is a Web-Mercator viewport with bounds fitting.
type Viewport struct {
	mu        sync.Mutex
	bus       eventbus.EventBus
	width     int
	height    int
	centerLat float64
	centerLon float64
	zoom      float64
}

// New creates a viewport with a world-spanning default view.
func New(bus eventbus.EventBus) *Viewport {
	return &Viewport{
		bus:    bus,
		width:  tileSize,
		height: tileSize,
		zoom:   minZoom,
	}
}

// SetSize updates the pixel size used for zoom fitting.
func (v *Viewport) SetSize(width, height int) {
	v.mu.Lock()
	if width > 0 {
		v.width = width
	}
	if height > 0 {
		v.height = height
	}
	v.mu.Unlock()
}

// Center returns the current center position.
func (v *Viewport) Center() (lat, lon float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.centerLat, v.centerLon
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

// FitBounds centers the viewport on the bounds and picks the largest zoom
// that keeps them fully visible with padding, then notifies subscribers.
// Empty bounds are ignored.
func (v *Viewport) FitBounds(b domain.Bounds) {
	if !b.Valid() {
		return
	}
	v.mu.Lock()
	v.centerLat, v.centerLon = b.Center()

	fracX := mercatorX(b.MaxLon) - mercatorX(b.MinLon)
	fracY := mercatorY(b.MinLat) - mercatorY(b.MaxLat)
	usableW := float64(v.width) * (1 - 2*padding)
	usableH := float64(v.height) * (1 - 2*padding)

	zoom := maxZoom
	if fracX > 0 {
		zoom = math.Min(zoom, math.Log2(usableW/(tileSize*fracX)))
	}
	if fracY > 0 {
		zoom = math.Min(zoom, math.Log2(usableH/(tileSize*fracY)))
	}
	v.zoom = math.Max(minZoom, math.Min(maxZoom, zoom))

	lat, lon, zm := v.centerLat, v.centerLon, v.zoom
	v.mu.Unlock()

	v.bus.Publish(eventbus.ViewportChangedEvent{CenterLat: lat, CenterLon: lon, Zoom: zm})
}

// mercatorX maps a longitude to the [0,1) world x fraction.
func mercatorX(lon float64) float64 {
	return (lon + 180) / 360
}

// mercatorY maps a latitude to the [0,1) world y fraction, clamped to the
// Web-Mercator latitude range.
func mercatorY(lat float64) float64 {
	lat = math.Max(-85.05112878, math.Min(85.05112878, lat))
	rad := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2
}

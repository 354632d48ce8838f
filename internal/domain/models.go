package domain

import (
	"math"
	"time"
)

// File represents one loaded GPX document.
type File struct {
	ID        string // stable identifier, the absolute file path
	Name      string // display name from metadata, falls back to the base name
	Path      string
	Tracks    []Track
	Waypoints []Waypoint
}

// Track is a named sequence of segments.
type Track struct {
	Name     string
	Comment  string
	Segments []Segment
}

// Segment is a continuous run of recorded points.
type Segment struct {
	Points []Point
}

// Point is a single recorded position.
type Point struct {
	Lat          float64
	Lon          float64
	Elevation    float64
	HasElevation bool
	Time         time.Time
}

// Waypoint is a standalone named point of interest.
type Waypoint struct {
	Point
	Name        string
	Description string
	Symbol      string
}

// Bounds is a geographic bounding box. The zero value is empty.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
	valid          bool
}

// Valid reports whether the bounds contain at least one point.
func (b Bounds) Valid() bool { return b.valid }

// Extend grows the bounds to include the given position.
func (b Bounds) Extend(lat, lon float64) Bounds {
	if !b.valid {
		return Bounds{MinLat: lat, MinLon: lon, MaxLat: lat, MaxLon: lon, valid: true}
	}
	b.MinLat = math.Min(b.MinLat, lat)
	b.MinLon = math.Min(b.MinLon, lon)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MaxLon = math.Max(b.MaxLon, lon)
	return b
}

// Union merges two bounds.
func (b Bounds) Union(o Bounds) Bounds {
	if !o.valid {
		return b
	}
	return b.Extend(o.MinLat, o.MinLon).Extend(o.MaxLat, o.MaxLon)
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// Statistics holds figures derived from a set of selected hierarchy nodes.
type Statistics struct {
	Distance      float64 // meters
	Duration      time.Duration
	MovingTime    time.Duration
	ElevationGain float64 // meters
	ElevationLoss float64 // meters
	MaxSpeed      float64 // meters per second
	PointCount    int
	WaypointCount int
	Bounds        Bounds
}

// AverageSpeed returns the moving average speed in meters per second,
// zero when no moving time was recorded.
func (s Statistics) AverageSpeed() float64 {
	if s.MovingTime <= 0 {
		return 0
	}
	return s.Distance / s.MovingTime.Seconds()
}

// Merge folds another set of statistics into this one.
func (s Statistics) Merge(o Statistics) Statistics {
	s.Distance += o.Distance
	s.Duration += o.Duration
	s.MovingTime += o.MovingTime
	s.ElevationGain += o.ElevationGain
	s.ElevationLoss += o.ElevationLoss
	s.MaxSpeed = math.Max(s.MaxSpeed, o.MaxSpeed)
	s.PointCount += o.PointCount
	s.WaypointCount += o.WaypointCount
	s.Bounds = s.Bounds.Union(o.Bounds)
	return s
}

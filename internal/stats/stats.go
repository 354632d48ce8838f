// Package stats derives distance, time and elevation figures from the
// document hierarchy, keyed by selection addresses.
package stats

import (
	"fmt"
	"math"
	"time"

	"gpxgrip/internal/domain"
	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/logic"
)

const (
	earthRadius = 6371e3 // meters

	// movingSpeedFloor is the speed below which a point-to-point move
	// counts as standing still.
	movingSpeedFloor = 0.5 // m/s

	// elevationNoise filters GPS jitter out of gain/loss accumulation.
	elevationNoise = 2.0 // meters
)

// Distance returns the haversine great-circle distance between two points
// in meters.
func Distance(a, b domain.Point) float64 {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ForSegment computes statistics over one segment's points.
func ForSegment(seg domain.Segment) domain.Statistics {
	var st domain.Statistics
	st.PointCount = len(seg.Points)

	var lastEle float64
	haveEle := false
	for i, p := range seg.Points {
		st.Bounds = st.Bounds.Extend(p.Lat, p.Lon)

		if p.HasElevation {
			if haveEle {
				delta := p.Elevation - lastEle
				if delta >= elevationNoise {
					st.ElevationGain += delta
					lastEle = p.Elevation
				} else if delta <= -elevationNoise {
					st.ElevationLoss += -delta
					lastEle = p.Elevation
				}
			} else {
				lastEle = p.Elevation
				haveEle = true
			}
		}

		if i == 0 {
			continue
		}
		prev := seg.Points[i-1]
		d := Distance(prev, p)
		st.Distance += d

		if prev.Time.IsZero() || p.Time.IsZero() {
			continue
		}
		dt := p.Time.Sub(prev.Time)
		if dt <= 0 {
			continue
		}
		st.Duration += dt
		speed := d / dt.Seconds()
		if speed >= movingSpeedFloor {
			st.MovingTime += dt
			if speed > st.MaxSpeed {
				st.MaxSpeed = speed
			}
		}
	}
	return st
}

// ForFile computes statistics over all tracks and waypoints of a file.
func ForFile(f *domain.File) domain.Statistics {
	var st domain.Statistics
	for _, trk := range f.Tracks {
		for _, seg := range trk.Segments {
			st = st.Merge(ForSegment(seg))
		}
	}
	st = st.Merge(forWaypoints(f.Waypoints))
	return st
}

func forWaypoints(wpts []domain.Waypoint) domain.Statistics {
	var st domain.Statistics
	st.WaypointCount = len(wpts)
	for _, w := range wpts {
		st.Bounds = st.Bounds.Extend(w.Lat, w.Lon)
	}
	return st
}

// ForItem computes statistics for the hierarchy node addressed by item.
// ok is false when the address points outside the store's current content.
func ForItem(store logic.FileStore, item hierarchy.Item) (domain.Statistics, bool) {
	f := store.File(item.FileID())
	if f == nil && item.Level() != hierarchy.LevelRoot {
		return domain.Statistics{}, false
	}

	switch it := item.(type) {
	case hierarchy.RootItem:
		var st domain.Statistics
		for _, file := range store.AllFiles() {
			st = st.Merge(ForFile(file))
		}
		return st, true
	case hierarchy.FileItem:
		return ForFile(f), true
	case hierarchy.TrackItem:
		if it.Track < 0 || it.Track >= len(f.Tracks) {
			return domain.Statistics{}, false
		}
		var st domain.Statistics
		for _, seg := range f.Tracks[it.Track].Segments {
			st = st.Merge(ForSegment(seg))
		}
		return st, true
	case hierarchy.SegmentItem:
		if it.Track < 0 || it.Track >= len(f.Tracks) {
			return domain.Statistics{}, false
		}
		segs := f.Tracks[it.Track].Segments
		if it.Segment < 0 || it.Segment >= len(segs) {
			return domain.Statistics{}, false
		}
		return ForSegment(segs[it.Segment]), true
	case hierarchy.WaypointsItem:
		return forWaypoints(f.Waypoints), true
	case hierarchy.WaypointItem:
		if it.Waypoint < 0 || it.Waypoint >= len(f.Waypoints) {
			return domain.Statistics{}, false
		}
		return forWaypoints(f.Waypoints[it.Waypoint : it.Waypoint+1]), true
	}
	return domain.Statistics{}, false
}

// FormatDuration renders a duration as h:mm:ss for display.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

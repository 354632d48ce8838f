// Package loader decodes GPX files into the domain model and feeds the
// file store. Decoding itself is delegated to the gpxgo library; this
// package only maps its document shape onto ours.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"
	"golang.org/x/sync/errgroup"

	"gpxgrip/internal/domain"
	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/logic"
)

// maxConcurrent bounds how many files decode at once.
const maxConcurrent = 4

// Loader loads GPX files into the store and announces them on the bus.
type Loader struct {
	bus   eventbus.EventBus
	store logic.FileStore
}

// New creates a new loader
func New(bus eventbus.EventBus, store logic.FileStore) *Loader {
	l := &Loader{bus: bus, store: store}

	// Discovered files load as they are found
	bus.Subscribe(eventbus.EventFileDiscovered, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.FileDiscoveredEvent); ok {
			go l.LoadAll(context.Background(), []string{event.Path})
		}
	})

	return l
}

// LoadAll decodes the given paths concurrently. Files that fail to decode
// are reported as ErrorEvents without aborting the rest; the returned error
// is only non-nil when the context is cancelled.
func (l *Loader) LoadAll(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			file, err := l.Load(path)
			if err != nil {
				l.bus.Publish(eventbus.ErrorEvent{
					Message: fmt.Sprintf("Failed to load %s", path),
					Err:     err,
				})
				return nil
			}
			l.store.AddFile(file)
			l.bus.Publish(eventbus.FileLoadedEvent{File: file})
			return nil
		})
	}
	return g.Wait()
}

// Load decodes a single GPX file.
func (l *Loader) Load(path string) (*domain.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	doc, err := gpx.ParseFile(abs)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fromGPX(abs, doc), nil
}

// Remove drops a file from the store and announces the removal.
func (l *Loader) Remove(fileID string) {
	l.store.RemoveFile(fileID)
	l.bus.Publish(eventbus.FileRemovedEvent{FileID: fileID})
}

// fromGPX maps a parsed gpxgo document onto the domain model.
func fromGPX(path string, doc *gpx.GPX) *domain.File {
	file := &domain.File{
		ID:   path,
		Name: displayName(path, doc.Name),
		Path: path,
	}

	for _, trk := range doc.Tracks {
		track := domain.Track{Name: trk.Name, Comment: trk.Comment}
		for _, seg := range trk.Segments {
			segment := domain.Segment{Points: make([]domain.Point, 0, len(seg.Points))}
			for _, p := range seg.Points {
				segment.Points = append(segment.Points, fromPoint(p))
			}
			track.Segments = append(track.Segments, segment)
		}
		file.Tracks = append(file.Tracks, track)
	}

	for _, w := range doc.Waypoints {
		file.Waypoints = append(file.Waypoints, domain.Waypoint{
			Point:       fromPoint(w),
			Name:        w.Name,
			Description: w.Description,
			Symbol:      w.Symbol,
		})
	}

	return file
}

func fromPoint(p gpx.GPXPoint) domain.Point {
	point := domain.Point{
		Lat:  p.Latitude,
		Lon:  p.Longitude,
		Time: p.Timestamp,
	}
	if p.Elevation.NotNull() {
		point.Elevation = p.Elevation.Value()
		point.HasElevation = true
	}
	return point
}

func displayName(path, metaName string) string {
	if name := strings.TrimSpace(metaName); name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

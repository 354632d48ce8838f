package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gpxgrip/internal/eventbus"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cs := NewConfigService()

	cfg := DefaultConfig()
	cfg.ScanDirs = []string{"/rides", "/hikes"}
	cfg.FileOrder = []string{"/rides/b.gpx", "/rides/a.gpx"}
	cfg.UI.Units = "imperial"
	cfg.UI.ShowWaypoints = false

	require.NoError(t, cs.SaveToPath(cfg, path))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Version, loaded.Version)
	require.Equal(t, cfg.ScanDirs, loaded.ScanDirs)
	require.Equal(t, cfg.FileOrder, loaded.FileOrder)
	require.Equal(t, "imperial", loaded.UI.Units)
	require.False(t, loaded.UI.ShowWaypoints)
	require.True(t, loaded.UI.AutosaveOnExit)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.toml")
	cs := NewConfigService()

	require.NoError(t, cs.SaveToPath(DefaultConfig(), path))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadFromMissingPathFails(t *testing.T) {
	cs := NewConfigService()
	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadFromInvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("scan_dirs = [[[not toml"), 0644))

	cs := NewConfigService()
	_, err := cs.LoadFromPath(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse")
}

func TestLoadFillsMissingUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n"), 0644))

	cs := NewConfigService()
	cfg, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "metric", cfg.UI.Units)
}

func TestEventsPublishedWithBus(t *testing.T) {
	bus := eventbus.New()
	var loaded, saved int
	bus.Subscribe(eventbus.EventConfigLoaded, func(eventbus.DomainEvent) { loaded++ })
	bus.Subscribe(eventbus.EventConfigSaved, func(eventbus.DomainEvent) { saved++ })

	cs := NewConfigServiceWithBus(bus)
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, cs.SaveToPath(DefaultConfig(), path))
	require.Equal(t, 1, saved)

	_, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded)
}

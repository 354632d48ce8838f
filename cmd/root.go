// Package cmd provides the root command and CLI setup for gpxgrip.
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gpxgrip/internal/config"
	"gpxgrip/internal/discovery"
	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/loader"
	"gpxgrip/internal/logic"
	"gpxgrip/internal/selection"
	"gpxgrip/internal/stats"
	"gpxgrip/internal/ui"
	"gpxgrip/internal/viewport"
)

var scanDir string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpxgrip [dir]",
		Short: "Terminal GPX track browser",
		Long: `GPXGrip loads GPX files, lets you browse and select files, tracks,
segments and waypoints, and shows distance, time and elevation figures
for whatever is selected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := scanDir
			if dir == "" && len(args) > 0 {
				dir = args[0]
			}
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("getting current directory: %w", err)
				}
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runTUI(absDir)
		},
	}
	cmd.Flags().StringVarP(&scanDir, "dir", "d", "", "Directory to scan for GPX files")
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(absDir string) error {
	// Set up logging
	logFile, err := os.OpenFile("gpxgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}
	if len(cfg.ScanDirs) == 0 {
		cfg.ScanDirs = []string{absDir}
	}

	// Create the store and services
	store := logic.NewMemoryFileStore()
	sel := selection.NewService(bus, store)
	agg := stats.NewAggregator(bus, store, sel)
	vp := viewport.New(bus)
	_ = loader.New(bus, store) // loads files as discovery announces them
	discoverySvc := discovery.NewDiscoveryService(bus)

	// Create event channel for the UI and forward bus events into it
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventFileLoaded,
		eventbus.EventFileRemoved,
		eventbus.EventSelectionChanged,
		eventbus.EventStatisticsUpdated,
		eventbus.EventViewportChanged,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	// Create the UI model and program
	uiModel := ui.NewModel(cfg, store, sel, agg, vp, bus, eventChan)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Kick off the initial scan
	bus.Publish(eventbus.ScanRequestedEvent{Roots: cfg.ScanDirs})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	discoverySvc.StopScan()

	if cfg.UI.AutosaveOnExit {
		cfg.FileOrder = store.Order()
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
	return nil
}

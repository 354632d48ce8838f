package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/loader"
	"gpxgrip/internal/logic"
	"gpxgrip/internal/stats"
)

var statsReverse bool

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file.gpx> [more.gpx...]",
		Short: "Print per-file statistics without starting the TUI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&statsReverse, "reverse", false, "List files in reverse order")
	return cmd
}

func runStats(cmd *cobra.Command, paths []string) error {
	bus := eventbus.New()
	store := logic.NewMemoryFileStore()

	// The loader publishes errors from its worker goroutines
	var mu sync.Mutex
	var loadErrs []string
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			mu.Lock()
			loadErrs = append(loadErrs, fmt.Sprintf("%s: %v", event.Message, event.Err))
			mu.Unlock()
		}
	})

	ld := loader.New(bus, store)
	if err := ld.LoadAll(context.Background(), paths); err != nil {
		return err
	}
	for _, msg := range loadErrs {
		fmt.Fprintln(os.Stderr, msg)
	}

	order := store.Order()
	if statsReverse {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"File", "Tracks", "Waypoints", "Distance", "Duration", "Climb"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	totals := 0.0
	for _, id := range order {
		f := store.File(id)
		if f == nil {
			continue
		}
		st := stats.ForFile(f)
		totals += st.Distance
		table.Append([]string{
			f.Name,
			fmt.Sprintf("%d", len(f.Tracks)),
			fmt.Sprintf("%d", len(f.Waypoints)),
			fmt.Sprintf("%.2f km", st.Distance/1000),
			stats.FormatDuration(st.Duration),
			fmt.Sprintf("%.0f m", st.ElevationGain),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(order)), "", "",
		fmt.Sprintf("%.2f km", totals/1000), "", "",
	})
	table.Render()

	return nil
}

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

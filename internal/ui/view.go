package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/stats"
)

// Styles holds the lipgloss styles used by the browser view
type Styles struct {
	Title      lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Dim        lipgloss.Style
	StatsLabel lipgloss.Style
	StatsValue lipgloss.Style
	Status     lipgloss.Style
	SearchBar  lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Cursor:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatsLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		StatsValue: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		SearchBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

var styles = NewStyles()

// View implements tea.Model
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder

	// Title line
	title := styles.Title.Render("gpxgrip")
	if m.scanning {
		title += " " + m.spin.View() + styles.Dim.Render(" scanning")
	}
	if m.filter != "" {
		title += styles.Dim.Render(fmt.Sprintf("  filter: %q", m.filter))
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	// Hierarchy rows
	if len(m.rows) == 0 {
		b.WriteString(styles.Dim.Render("  No GPX files loaded. Press r to scan, ? for help."))
		b.WriteString("\n")
	} else {
		visible := m.listHeight()
		end := m.offset + visible
		if end > len(m.rows) {
			end = len(m.rows)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(i))
			b.WriteString("\n")
		}
	}

	// Footer: statistics for the current selection
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	// Search bar or status line
	if m.searching {
		b.WriteString(styles.SearchBar.Render("/" + m.search.View()))
	} else if m.statusMessage != "" {
		b.WriteString(styles.Status.Render(m.statusMessage))
	} else {
		b.WriteString(styles.Dim.Render("space select · s solo · a all · esc clear · f fit map · x remove · ? help · q quit"))
	}

	return b.String()
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	switch {
	case m.sel.Has(r.item):
		marker = styles.Selected.Render("● ")
	case m.sel.HasAnyChildren(r.item, false):
		marker = styles.Selected.Render("◐ ")
	case m.sel.HasAnyParent(r.item, false):
		marker = styles.Dim.Render("· ")
	}

	arrow := "  "
	if r.expandable {
		if m.expanded[r.item] {
			arrow = "▾ "
		} else {
			arrow = "▸ "
		}
	}

	line := indent + arrow + marker + r.label
	if r.item.Level() == hierarchy.LevelFile {
		if st, ok := m.perFile[r.item.FileID()]; ok && st.Distance > 0 {
			line += styles.Dim.Render("  " + m.formatDistance(st.Distance))
		}
	}

	if i == m.cursor {
		return styles.Cursor.Render("> " + line)
	}
	return "  " + line
}

func (m *Model) renderStats() string {
	if !m.sel.HasSelection() {
		return styles.Dim.Render(fmt.Sprintf("  %d file(s) loaded, nothing selected", len(m.store.Order())))
	}

	pairs := []struct{ label, value string }{
		{"selected", fmt.Sprintf("%d", m.sel.Count())},
		{"distance", m.formatDistance(m.totals.Distance)},
		{"duration", stats.FormatDuration(m.totals.Duration)},
		{"moving", stats.FormatDuration(m.totals.MovingTime)},
		{"climb", m.formatElevation(m.totals.ElevationGain)},
		{"descent", m.formatElevation(m.totals.ElevationLoss)},
		{"avg", m.formatSpeed(m.totals.AverageSpeed())},
		{"max", m.formatSpeed(m.totals.MaxSpeed)},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, styles.StatsLabel.Render(p.label+" ")+styles.StatsValue.Render(p.value))
	}
	return "  " + strings.Join(parts, styles.Dim.Render("  │  "))
}

// listHeight is the number of rows the browser can show.
func (m *Model) listHeight() int {
	// title(1) + blank(1) + blank(1) + stats(1) + status(1)
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) imperial() bool {
	return m.config.UI.Units == "imperial"
}

func (m *Model) formatDistance(meters float64) string {
	if m.imperial() {
		return fmt.Sprintf("%.2f mi", meters/1609.344)
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

func (m *Model) formatElevation(meters float64) string {
	if m.imperial() {
		return fmt.Sprintf("%.0f ft", meters/0.3048)
	}
	return fmt.Sprintf("%.0f m", meters)
}

func (m *Model) formatSpeed(mps float64) string {
	if m.imperial() {
		return fmt.Sprintf("%.1f mph", mps*3600/1609.344)
	}
	return fmt.Sprintf("%.1f km/h", mps*3.6)
}

func formatViewport(e eventbus.ViewportChangedEvent) string {
	return fmt.Sprintf("Map fit to %.5f, %.5f @ z%.1f", e.CenterLat, e.CenterLon, e.Zoom)
}

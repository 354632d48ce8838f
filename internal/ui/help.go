package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// renderHelpContent renders the help information
func renderHelpContent() string {
	var help strings.Builder

	help.WriteString(styles.Title.Render("GPXGrip Help"))
	help.WriteString("\n\n")

	section := func(name string) {
		help.WriteString(styles.StatsLabel.Render(name))
		help.WriteString("\n")
	}
	key := func(k, desc string) {
		help.WriteString(fmt.Sprintf("  %s  %s\n", styles.Status.Render(k), styles.StatsValue.Render(desc)))
	}

	section("Navigation")
	key("↑/↓, j/k", "Move up/down")
	key("g/G     ", "Go to top/bottom")
	key("←/→, h/l", "Collapse/expand the current node")
	help.WriteString("\n")

	section("Selection")
	key("Space   ", "Toggle selection of the current node")
	key("s       ", "Select only the current node")
	key("a       ", "Select all siblings at the current level")
	key("Esc     ", "Clear selection (or drop the filter)")
	help.WriteString("\n")

	section("Files & Map")
	key("r       ", "Rescan configured directories")
	key("J/K     ", "Move the file under the cursor down/up")
	key("x       ", "Remove the file under the cursor")
	key("f       ", "Fit the map viewport to the selection")
	key("/       ", "Filter files by name")
	help.WriteString("\n")

	section("Other")
	key("?       ", "Show this help")
	key("q       ", "Quit")

	return help.String()
}

// showHelp pages the help content through ov.
func (m *Model) showHelp() (tea.Model, tea.Cmd) {
	m.inPagerMode = true
	return m, func() tea.Msg {
		return helpPagerMsg{err: m.showInPager(renderHelpContent())}
	}
}

// showInPager hands the terminal to ov for the given content and restores
// it when the pager exits.
func (m *Model) showInPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}

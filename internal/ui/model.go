package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gpxgrip/internal/config"
	"gpxgrip/internal/domain"
	"gpxgrip/internal/eventbus"
	"gpxgrip/internal/hierarchy"
	"gpxgrip/internal/logic"
	"gpxgrip/internal/selection"
	"gpxgrip/internal/stats"
	"gpxgrip/internal/viewport"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	store  logic.FileStore
	sel    *selection.Service
	agg    *stats.Aggregator
	vp     *viewport.Viewport

	eventChan chan eventbus.DomainEvent

	// Browser state
	rows     []row
	cursor   int
	offset   int
	expanded map[hierarchy.Item]bool

	// Derived data shown in the footer
	totals  domain.Statistics
	perFile map[string]domain.Statistics

	// UI state
	width         int
	height        int
	scanning      bool
	loadedCount   int
	statusMessage string
	searching     bool
	search        textinput.Model
	filter        string
	spin          spinner.Model
	inPagerMode   bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, store logic.FileStore, sel *selection.Service, agg *stats.Aggregator, vp *viewport.Viewport, bus eventbus.EventBus, eventChan chan eventbus.DomainEvent) *Model {
	search := textinput.New()
	search.Placeholder = "file name"
	search.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		bus:       bus,
		config:    cfg,
		store:     store,
		sel:       sel,
		agg:       agg,
		vp:        vp,
		eventChan: eventChan,
		expanded:  make(map[hierarchy.Item]bool),
		perFile:   make(map[string]domain.Statistics),
		search:    search,
		spin:      spin,
		height:    24,
		width:     80,
	}
}

// SetProgram stores the Bubble Tea program for terminal handover (pager).
func (m *Model) SetProgram(p *tea.Program) { m.program = p }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spin.Tick)
}

// waitForEvent pumps domain events into the Bubble Tea loop.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: <-m.eventChan}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.SetSize(msg.Width*8, msg.Height*16) // rough pixel estimate for zoom fitting
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, m.waitForEvent()

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case helpPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.statusMessage = "Pager error: " + msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.config.UI.AutosaveOnExit {
			m.config.FileOrder = m.store.Order()
		}
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g":
		m.cursor = 0
		m.clampScroll()
	case "G":
		m.cursor = len(m.rows) - 1
		m.clampScroll()

	case "right", "l", "enter":
		if r, ok := m.currentRow(); ok && r.expandable {
			m.expanded[r.item] = !m.expanded[r.item]
			m.refreshRows()
		}
	case "left", "h":
		if r, ok := m.currentRow(); ok && m.expanded[r.item] {
			m.expanded[r.item] = false
			m.refreshRows()
		}

	case " ":
		if r, ok := m.currentRow(); ok {
			m.sel.AddSelectItem(r.item)
		}
	case "s":
		if r, ok := m.currentRow(); ok {
			m.sel.SelectItem(r.item)
		}
	case "a":
		m.sel.SelectAll()
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.refreshRows()
		} else {
			m.sel.Clear()
		}

	case "K":
		m.moveFile(-1)
	case "J":
		m.moveFile(1)

	case "x":
		if r, ok := m.currentRow(); ok && r.item.Level() == hierarchy.LevelFile {
			fileID := r.item.FileID()
			m.store.RemoveFile(fileID)
			m.bus.Publish(eventbus.FileRemovedEvent{FileID: fileID})
			m.refreshRows()
		}

	case "f":
		if m.totals.Bounds.Valid() {
			m.vp.FitBounds(m.totals.Bounds)
		} else {
			m.statusMessage = "Nothing selected to fit"
		}

	case "r":
		m.bus.Publish(eventbus.ScanRequestedEvent{Roots: m.config.ScanDirs})

	case "/":
		m.searching = true
		m.search.SetValue(m.filter)
		m.search.Focus()
		return m, textinput.Blink

	case "?":
		return m.showHelp()
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.filter = m.search.Value()
		m.search.Blur()
		m.refreshRows()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// moveFile shifts the file under the cursor in the display order and keeps
// the cursor on it.
func (m *Model) moveFile(delta int) {
	r, ok := m.currentRow()
	if !ok || r.item.Level() != hierarchy.LevelFile {
		return
	}
	if !m.store.MoveFile(r.item.FileID(), delta) {
		return
	}
	m.bus.Publish(eventbus.FileOrderChangedEvent{Order: m.store.Order()})
	m.refreshRows()
	for i, row := range m.rows {
		if row.item == r.item {
			m.cursor = i
			break
		}
	}
	m.clampScroll()
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true
		m.statusMessage = "Scanning..."
	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.statusMessage = ""
	case eventbus.FileLoadedEvent:
		m.loadedCount++
		// Keep the loaded subset in the saved display order; files load in
		// whatever order the walkers finish
		if len(m.config.FileOrder) > 0 {
			m.store.SetOrder(m.config.FileOrder)
		}
		m.refreshRows()
	case eventbus.FileRemovedEvent:
		m.refreshRows()
	case eventbus.SelectionChangedEvent:
		// Statistics follow via StatisticsUpdated; nothing to do here
	case eventbus.StatisticsUpdatedEvent:
		m.totals = e.Totals
		m.perFile = e.PerFile
	case eventbus.ViewportChangedEvent:
		m.statusMessage = formatViewport(e)
	case eventbus.ErrorEvent:
		log.Printf("UI error event: %s: %v", e.Message, e.Err)
		m.statusMessage = e.Message
	}
}

func (m *Model) refreshRows() {
	m.rows = buildRows(m.store, m.expanded, m.filter, m.config.UI.ShowWaypoints)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampScroll()
}

// clampScroll keeps the cursor inside the visible window.
func (m *Model) clampScroll() {
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

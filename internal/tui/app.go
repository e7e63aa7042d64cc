// Package tui implements the interactive dashboard: a queue and history
// view with a compact player bar, and an expanded now-playing overlay
// dismissed by dragging it away.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/engine"
	"github.com/tomos/cadence/internal/gesture"
	"github.com/tomos/cadence/internal/tui/components"
	"github.com/tomos/cadence/internal/tui/styles"
)

// Panel represents which panel is focused.
type Panel int

const (
	PanelQueue Panel = iota
	PanelHistory
)

const maxHistory = 50

// Options configures the dashboard.
type Options struct {
	Theme             string
	SeekStep          time.Duration
	GestureThreshold  float64
	GestureCloseDelay time.Duration
}

// bridge forwards engine notifications into the bubbletea event loop.
// Sends never block: the engine must not stall on a slow terminal, so a
// full buffer drops the event and the next one catches the UI up.
type bridge struct {
	ch chan tea.Msg
}

func newBridge() *bridge {
	return &bridge{ch: make(chan tea.Msg, 64)}
}

func (b *bridge) send(msg tea.Msg) {
	select {
	case b.ch <- msg:
	default:
	}
}

func (b *bridge) TrackChanged(t core.Track)       { b.send(trackMsg{t}) }
func (b *bridge) StatusChanged(s core.Status)     { b.send(statusMsg{s}) }
func (b *bridge) Progress(pos, dur time.Duration) { b.send(progressMsg{pos, dur}) }
func (b *bridge) ShuffleChanged(on bool)          { b.send(shuffleMsg{on}) }
func (b *bridge) RepeatChanged(on bool)           { b.send(repeatMsg{on}) }
func (b *bridge) ExpandedViewOpened()             { b.send(expandedOpenedMsg{}) }

var _ engine.Observer = (*bridge)(nil)

// Messages
type trackMsg struct{ track core.Track }
type statusMsg struct{ status core.Status }
type progressMsg struct{ pos, dur time.Duration }
type shuffleMsg struct{ enabled bool }
type repeatMsg struct{ enabled bool }
type expandedOpenedMsg struct{}

// Model is the main TUI model.
type Model struct {
	eng       *engine.Engine
	bridge    *bridge
	dismissal *gesture.Dismissal
	styles    styles.Styles
	seekStep  time.Duration

	width        int
	height       int
	focusedPanel Panel
	showExpanded bool
	seeking      bool

	// Mirrored engine state, updated from bridge messages.
	track       *core.Track
	session     engine.Session
	shuffle     bool
	queueTracks []core.Track
	queueIndex  int
	history     []components.HistoryEntry

	// Components
	playerBar   *components.PlayerBar
	expanded    *components.Expanded
	queueView   *components.Queue
	historyView *components.History

	quitting bool
}

// NewModel creates a new TUI model bound to the engine.
func NewModel(eng *engine.Engine, opts Options) Model {
	s := styles.New(opts.Theme)

	seekStep := opts.SeekStep
	if seekStep <= 0 {
		seekStep = 5 * time.Second
	}

	var gestureOpts []gesture.Option
	if opts.GestureThreshold > 0 {
		gestureOpts = append(gestureOpts, gesture.WithThreshold(opts.GestureThreshold))
	}
	if opts.GestureCloseDelay > 0 {
		gestureOpts = append(gestureOpts, gesture.WithCloseDelay(opts.GestureCloseDelay))
	}

	return Model{
		eng:         eng,
		bridge:      newBridge(),
		dismissal:   gesture.New(gestureOpts...),
		styles:      s,
		seekStep:    seekStep,
		track:       eng.CurrentTrack(),
		session:     eng.Session(),
		shuffle:     eng.Shuffle(),
		queueTracks: eng.QueueTracks(),
		queueIndex:  eng.QueueIndex(),
		playerBar:   components.NewPlayerBar(s),
		expanded:    components.NewExpanded(s),
		queueView:   components.NewQueue(s),
		historyView: components.NewHistory(s),
	}
}

// waitEvent delivers the next engine notification as a message.
func (m Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.bridge.ch
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.waitEvent()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case trackMsg:
		m.addToHistory(msg.track)
		track := msg.track
		m.track = &track
		m.session = m.eng.Session()
		m.queueTracks = m.eng.QueueTracks()
		m.queueIndex = m.eng.QueueIndex()
		return m, m.waitEvent()

	case statusMsg:
		m.session.Status = msg.status
		return m, m.waitEvent()

	case progressMsg:
		m.session.Position = msg.pos
		m.session.Duration = msg.dur
		return m, m.waitEvent()

	case shuffleMsg:
		m.shuffle = msg.enabled
		return m, m.waitEvent()

	case repeatMsg:
		m.session.RepeatOne = msg.enabled
		return m, m.waitEvent()

	case expandedOpenedMsg:
		// Another surface opened the expanded view; mirror it.
		m.showExpanded = true
		m.dismissal.Open()
		return m, m.waitEvent()
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case " ":
		m.eng.TogglePlayPause()
		return m, nil

	case "n":
		m.eng.SkipNext()
		return m, nil

	case "p":
		m.eng.SkipPrevious()
		return m, nil

	case "s":
		m.eng.ToggleShuffle()
		return m, nil

	case "r":
		m.eng.ToggleRepeatOne()
		return m, nil

	case "+", "=":
		m.setVolume(m.session.Volume + 0.05)
		return m, nil

	case "-":
		m.setVolume(m.session.Volume - 0.05)
		return m, nil

	case "left":
		m.seekBy(-m.seekStep)
		return m, nil

	case "right":
		m.seekBy(m.seekStep)
		return m, nil

	case "enter", "e":
		if !m.showExpanded {
			m.openExpanded()
		}
		return m, nil

	case "esc":
		if m.showExpanded {
			m.dismissal.Close()
			m.showExpanded = false
		}
		return m, nil

	case "tab", "shift+tab":
		m.focusedPanel = (m.focusedPanel + 1) % 2
		return m, nil
	}

	if m.focusedPanel == PanelQueue && !m.showExpanded {
		switch msg.String() {
		case "j", "down":
			m.queueView.ScrollDown()
		case "k", "up":
			m.queueView.ScrollUp()
		}
	}

	return m, nil
}

func (m *Model) openExpanded() {
	m.dismissal.Open()
	m.showExpanded = true
	m.eng.NotifyExpandedViewOpened()
}

func (m *Model) setVolume(v float64) {
	m.eng.SetVolume(v)
	m.session = m.eng.Session()
}

// seekBy nudges the position by delta. No-op while the duration is
// unknown, matching the engine's seek semantics.
func (m *Model) seekBy(delta time.Duration) {
	if m.session.Duration <= 0 {
		return
	}
	target := m.session.Position + delta
	m.eng.SeekToFraction(float64(target) / float64(m.session.Duration))
	m.session = m.eng.Session()
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showExpanded {
		return m.handleExpandedMouse(msg)
	}

	// Wheel scrolls whichever panel is under the pointer.
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.queueView.ScrollUp()
		case tea.MouseButtonWheelDown:
			m.queueView.ScrollDown()
		}
	}
	return m, nil
}

// handleExpandedMouse routes mouse input while the overlay is open. Drags
// on the progress row are seeks; drags anywhere else feed the dismissal
// machine. Wheel input on the background is captured so the panels
// underneath cannot scroll.
func (m Model) handleExpandedMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x0, y0, ow, _ := m.overlayRect()
	x := msg.X - x0
	y := msg.Y - y0

	onSeek := y == m.expanded.ProgressRow() &&
		x >= m.expanded.BarStart() && x < m.expanded.BarStart()+m.expanded.BarWidth(ow)

	target := gesture.TargetBackground
	if onSeek {
		target = gesture.TargetSeekControl
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if m.dismissal.CapturesScroll(target) {
				return m, nil
			}
			delta := m.seekStep
			if msg.Button == tea.MouseButtonWheelDown {
				delta = -delta
			}
			m.seekBy(delta)
			return m, nil

		case tea.MouseButtonLeft:
			if onSeek {
				m.seeking = true
				m.eng.SetSeeking(true)
				m.eng.SeekToFraction(m.expanded.FractionAt(x, ow))
				m.session = m.eng.Session()
			} else {
				m.dismissal.DragStart(float64(msg.Y))
			}
		}

	case tea.MouseActionMotion:
		if m.seeking {
			m.eng.SeekToFraction(m.expanded.FractionAt(x, ow))
			m.session = m.eng.Session()
		}

	case tea.MouseActionRelease:
		if m.seeking {
			m.eng.SeekToFraction(m.expanded.FractionAt(x, ow))
			m.eng.SetSeeking(false)
			m.seeking = false
			m.session = m.eng.Session()
			return m, nil
		}
		if m.dismissal.DragEnd(float64(msg.Y)) {
			m.showExpanded = false
		}
	}

	return m, nil
}

// overlayRect returns the expanded overlay's position and size.
func (m Model) overlayRect() (x, y, w, h int) {
	w = m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	h = 14
	if h > m.height-2 {
		h = m.height - 2
	}
	x = (m.width - w) / 2
	y = (m.height - h) / 2
	return x, y, w, h
}

func (m *Model) addToHistory(track core.Track) {
	skipped := m.track != nil && m.session.Duration > 0 &&
		m.session.Position < m.session.Duration/2

	entry := components.HistoryEntry{
		Track:    track,
		PlayedAt: time.Now(),
		Skipped:  skipped,
	}

	m.history = append([]components.HistoryEntry{entry}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.showExpanded {
		_, _, ow, oh := m.overlayRect()
		overlay := m.expanded.Render(m.track, m.session, m.shuffle, ow, oh)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	barHeight := 2 // player bar + status line
	mainHeight := m.height - barHeight

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 2

	queueView := m.queueView.Render(m.queueTracks, m.queueIndex,
		leftWidth-2, mainHeight-2, m.focusedPanel == PanelQueue)
	historyView := m.historyView.Render(m.history,
		rightWidth-2, mainHeight-2, m.focusedPanel == PanelHistory)

	main := lipgloss.JoinHorizontal(lipgloss.Top, queueView, historyView)
	bar := m.playerBar.Render(m.track, m.session, m.shuffle, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, main, bar, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.styles.DimText.Render(
		"q:quit  space:play/pause  n:next  p:prev  s:shuffle  r:repeat  enter:expand  ←/→:seek  +/-:volume")

	if m.session.Status == core.StatusError {
		status = m.styles.Error.Render("Playback error; see the log for details")
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// Run starts the dashboard and blocks until it exits.
func Run(eng *engine.Engine, opts Options) error {
	model := NewModel(eng, opts)
	eng.AddObserver(model.bridge)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

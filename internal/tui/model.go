// Package tui shows search results in an interactive terminal view. Results
// are pulled from the search one message at a time, so the view stays
// responsive on huge trees and quitting stops the walk immediately.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/find-files/internal/finder"
	"github.com/joe/find-files/internal/search"
)

// Model is the interactive search view.
type Model struct {
	finder  *finder.Finder
	ctx     context.Context //nolint:containedctx // Passed to the search started by Init
	bridge  *EventBridge
	session *finder.Session
	spinner spinner.Model

	recent  []search.Entry // most recent results, oldest first
	count   int
	skipped []finder.DirectorySkipped
	summary *finder.SearchComplete

	state   string
	pulling bool // a pull is in flight; the session must not be closed under it
	err     error
	width   int
	height  int
}

// NewModel creates a view over f. The model becomes f's event emitter.
func NewModel(ctx context.Context, f *finder.Finder) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor())

	bridge := NewEventBridge()
	f.SetEventEmitter(bridge)

	return Model{
		finder:  f,
		ctx:     ctx,
		bridge:  bridge,
		spinner: s,
		state:   StateOpening,
	}
}

// Count returns the number of results received so far.
func (m Model) Count() int {
	return m.count
}

// Err returns the error that ended the search, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		openCmd(m.ctx, m.finder),
		m.bridge.ListenCmd(),
	)
}

// State returns the current view state.
func (m Model) State() string {
	return m.state
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionOpenedMsg:
		return m.handleOpened(msg)

	case resultMsg:
		return m.handleResult(msg)

	case searchDoneMsg:
		m.pulling = false
		m.err = msg.Err
		m.closeSession()

		if m.state == StateStopping {
			return m.quit()
		}

		if m.err != nil {
			m.state = StateError
		} else {
			m.state = StateComplete
		}

		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		if m.state == StateStopping {
			return m.quit()
		}

		m.state = StateError

		return m, nil

	case FinderEventMsg:
		m = m.handleEvent(msg.Event)
		return m, m.bridge.ListenCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) closeSession() {
	if m.session != nil {
		_ = m.session.Close()
	}
}

func (m Model) handleEvent(event finder.Event) Model {
	switch ev := event.(type) {
	case finder.DirectorySkipped:
		m.skipped = append(m.skipped, ev)
	case finder.SearchComplete:
		m.summary = &ev
	}

	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyCtrlC:
	default:
		return m, nil
	}

	if m.pulling {
		// The in-flight pull reports back first; the session is closed then.
		m.state = StateStopping
		return m, nil
	}

	if m.state == StateOpening {
		m.state = StateStopping
		return m, nil
	}

	m.closeSession()

	return m.quit()
}

func (m Model) handleOpened(msg sessionOpenedMsg) (tea.Model, tea.Cmd) {
	m.session = msg.Session

	if m.state == StateStopping {
		m.closeSession()
		return m.quit()
	}

	m.state = StateSearching
	m.pulling = true

	return m, pullCmd(m.session)
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	m.pulling = false
	m.count++
	m.recent = append(m.recent, msg.Entry)

	if excess := len(m.recent) - m.visibleResults(); excess > 0 {
		m.recent = append([]search.Entry(nil), m.recent[excess:]...)
	}

	if m.state == StateStopping {
		m.closeSession()
		return m.quit()
	}

	m.pulling = true

	return m, pullCmd(m.session)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.state != StateError && m.state != StateComplete {
		m.state = StateStopped
	}

	m.bridge.Close()

	return m, tea.Quit
}

func (m Model) visibleResults() int {
	if m.height > ReservedLines {
		return m.height - ReservedLines
	}

	return DefaultVisibleResults
}

// ErrorMsg is sent when the search cannot start
type ErrorMsg struct {
	Err error
}

// resultMsg carries one pulled result.
type resultMsg struct {
	Entry search.Entry
}

// searchDoneMsg is sent when a pull finds the search has ended.
type searchDoneMsg struct {
	Err error
}

// sessionOpenedMsg is sent once the search root has been opened.
type sessionOpenedMsg struct {
	Session *finder.Session
}

func openCmd(ctx context.Context, f *finder.Finder) tea.Cmd {
	return func() tea.Msg {
		session, err := f.Open(ctx)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return sessionOpenedMsg{Session: session}
	}
}

// pullCmd advances the session by exactly one result.
func pullCmd(session *finder.Session) tea.Cmd {
	return func() tea.Msg {
		if session.Next() {
			return resultMsg{Entry: session.Entry()}
		}

		return searchDoneMsg{Err: session.Err()}
	}
}

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
)

// pane identifies which part of the layout has keyboard focus
type pane int

const (
	paneInput pane = iota
	paneHistory
	paneResults
)

// notice is the currently displayed status bar notification
type notice struct {
	message  string
	severity driven.Severity
	seq      int
}

// Model is the Bubble Tea model for the search session UI
type Model struct {
	controller driving.SessionController
	records    driven.RecordStore
	styles     *Styles

	ctx    context.Context
	width  int
	height int

	focus       pane
	input       textinput.Model
	spin        spinner.Model
	historyIdx  int
	resultIdx   int
	detailLead  *domain.Lead
	notice      notice
	noticeSeq   int
	initialized bool
}

// NewModel creates the UI model. Call Run to start the program.
func NewModel(ctx context.Context, controller driving.SessionController, records driven.RecordStore) *Model {
	input := textinput.New()
	input.Placeholder = "e.g. restaurants in Campinas"
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		controller: controller,
		records:    records,
		styles:     NewStyles(),
		ctx:        ctx,
		focus:      paneInput,
		input:      input,
		spin:       spin,
	}
}

// Run wires the bridge, subscribes to store changes and blocks until the
// program exits.
func Run(ctx context.Context, controller driving.SessionController, records driven.RecordStore, bridge *Bridge) error {
	m := NewModel(ctx, controller, records)
	program := tea.NewProgram(m, tea.WithAltScreen())

	bridge.Attach(program)
	records.Subscribe(func() {
		program.Send(storeChangedMsg{})
	})

	_, err := program.Run()
	return err
}

// Init loads the session history on startup
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.initializeCmd(),
		m.spin.Tick,
		textinput.Blink,
	)
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case storeChangedMsg:
		m.clampSelection()
		return m, nil

	case noticeMsg:
		m.noticeSeq++
		m.notice = notice{message: msg.message, severity: msg.severity, seq: m.noticeSeq}
		return m, m.expireNoticeCmd(m.noticeSeq)

	case clearNoticeMsg:
		if msg.seq == m.notice.seq {
			m.notice = notice{}
		}
		return m, nil

	case focusInputMsg:
		m.focus = paneInput
		m.input.Focus()
		return m, nil

	case openLeadMsg:
		m.detailLead = m.findLead(msg.id)
		return m, nil

	case opDoneMsg:
		// Failures surface through the notifier; nothing extra to do here
		m.initialized = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.focus == paneInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Detail overlay swallows everything except close keys
	if m.detailLead != nil {
		switch msg.String() {
		case "esc", "q", "enter":
			m.detailLead = nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.cycleFocus()
		return m, nil
	}

	switch m.focus {
	case paneInput:
		switch msg.String() {
		case "enter":
			return m, m.startSearchCmd(m.input.Value())
		case "esc":
			m.focus = paneHistory
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case paneHistory:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			m.historyIdx = max(0, m.historyIdx-1)
		case "down", "j":
			m.historyIdx = min(len(m.records.History())-1, m.historyIdx+1)
		case "enter":
			if s := m.selectedSearch(); s != nil {
				return m, m.selectSearchCmd(s.ID)
			}
		case "n":
			return m, m.fetchNextPageCmd()
		case "r":
			if s := m.selectedSearch(); s != nil {
				return m, m.refreshCmd(s.ID)
			}
		case "/":
			m.focus = paneInput
			m.input.Focus()
		}
		return m, nil

	case paneResults:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			m.resultIdx = max(0, m.resultIdx-1)
		case "down", "j":
			m.resultIdx = min(len(m.records.Results())-1, m.resultIdx+1)
		case "enter":
			if l := m.selectedLead(); l != nil {
				m.controller.OpenLead(l.ID)
			}
		case "n":
			return m, m.fetchNextPageCmd()
		case "/":
			m.focus = paneInput
			m.input.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case paneInput:
		m.focus = paneHistory
		m.input.Blur()
	case paneHistory:
		m.focus = paneResults
	case paneResults:
		m.focus = paneInput
		m.input.Focus()
	}
}

// clampSelection keeps cursor indexes valid after the store replaces a list
func (m *Model) clampSelection() {
	if n := len(m.records.History()); m.historyIdx >= n {
		m.historyIdx = max(0, n-1)
	}
	if n := len(m.records.Results()); m.resultIdx >= n {
		m.resultIdx = max(0, n-1)
	}
}

func (m *Model) selectedSearch() *domain.Search {
	history := m.records.History()
	if m.historyIdx < 0 || m.historyIdx >= len(history) {
		return nil
	}
	return history[m.historyIdx]
}

func (m *Model) selectedLead() *domain.Lead {
	results := m.records.Results()
	if m.resultIdx < 0 || m.resultIdx >= len(results) {
		return nil
	}
	return results[m.resultIdx]
}

func (m *Model) findLead(id string) *domain.Lead {
	for _, lead := range m.records.Results() {
		if lead.ID == id {
			return lead
		}
	}
	return nil
}

// Commands

func (m *Model) initializeCmd() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.controller.Initialize(m.ctx)}
	}
}

func (m *Model) startSearchCmd(query string) tea.Cmd {
	m.input.SetValue("")
	return func() tea.Msg {
		return opDoneMsg{err: m.controller.StartNewSearch(m.ctx, query)}
	}
}

func (m *Model) selectSearchCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.controller.SelectSearch(m.ctx, id)}
	}
}

func (m *Model) fetchNextPageCmd() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.controller.FetchNextPage(m.ctx)}
	}
}

func (m *Model) refreshCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.controller.Refresh(m.ctx, id)}
	}
}

func (m *Model) expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

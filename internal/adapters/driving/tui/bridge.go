package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// sender is the slice of *tea.Program the bridge needs
type sender interface {
	Send(msg tea.Msg)
}

// Bridge adapts the controller's collaborator ports onto the Bubble Tea
// message loop. The controller calls these from its own goroutines; Send is
// safe for concurrent use.
type Bridge struct {
	program sender
}

var (
	_ driven.Notifier  = (*Bridge)(nil)
	_ driven.Navigator = (*Bridge)(nil)
	_ driven.Focuser   = (*Bridge)(nil)
)

// NewBridge creates a bridge. Attach the program once it exists.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach binds the running program to the bridge. Calls made before Attach
// are dropped; the controller treats collaborators as best-effort.
func (b *Bridge) Attach(program sender) {
	b.program = program
}

// Notify delivers a notification to the status bar
func (b *Bridge) Notify(message string, severity driven.Severity) {
	b.send(noticeMsg{message: message, severity: severity})
}

// OpenLead opens the lead detail view
func (b *Bridge) OpenLead(id string) {
	b.send(openLeadMsg{id: id})
}

// FocusSearchInput moves focus back to the query input
func (b *Bridge) FocusSearchInput() {
	b.send(focusInputMsg{})
}

func (b *Bridge) send(msg tea.Msg) {
	if b.program == nil {
		return
	}
	b.program.Send(msg)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Pane          lipgloss.Style
	FocusedPane   lipgloss.Style
	PaneHeader    lipgloss.Style
	Selected      lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	NoticeInfo    lipgloss.Style
	NoticeSuccess lipgloss.Style
	NoticeDanger  lipgloss.Style
	StatusDraft   lipgloss.Style
	StatusWorking lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	Detail        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		PaneHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Selected:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
		NoticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		NoticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		NoticeDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusDraft:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
	}
}

// StatusStyle returns the style for a search status indicator
func (s *Styles) StatusStyle(status domain.SearchStatus) lipgloss.Style {
	switch status {
	case domain.StatusProcessing:
		return s.StatusWorking
	case domain.StatusSuccess:
		return s.StatusSuccess
	case domain.StatusError:
		return s.StatusError
	default:
		return s.StatusDraft
	}
}

// NoticeStyle returns the style for a notification severity
func (s *Styles) NoticeStyle(severity driven.Severity) lipgloss.Style {
	switch severity {
	case driven.SeveritySuccess:
		return s.NoticeSuccess
	case driven.SeverityDanger:
		return s.NoticeDanger
	default:
		return s.NoticeInfo
	}
}

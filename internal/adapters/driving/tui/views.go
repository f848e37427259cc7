package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

// View renders the full layout: query input on top, history and results side
// by side, status bar at the bottom.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Prospecta"))
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")

	historyWidth := m.width / 3
	resultsWidth := m.width - historyWidth - 6
	paneHeight := max(m.height-9, 4)

	history := m.renderHistory(historyWidth, paneHeight)
	results := m.renderResults(resultsWidth, paneHeight)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, history, results))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab focus · enter select/submit · n next page · r refresh · / search · q quit"))

	if m.detailLead != nil {
		return m.renderDetail()
	}
	return b.String()
}

func (m *Model) renderInput() string {
	style := m.styles.Pane
	if m.focus == paneInput {
		style = m.styles.FocusedPane
	}
	return style.Width(m.width - 4).Render(m.input.View())
}

func (m *Model) renderHistory(width, height int) string {
	var lines []string
	lines = append(lines, m.styles.PaneHeader.Render("Searches"))

	history := m.records.History()
	if len(history) == 0 {
		lines = append(lines, m.styles.Dim.Render("no searches yet"))
	}
	for i, search := range history {
		if i >= height-1 {
			lines = append(lines, m.styles.Dim.Render(fmt.Sprintf("… %d more", len(history)-i)))
			break
		}
		lines = append(lines, m.renderSearchLine(search, i == m.historyIdx && m.focus == paneHistory, width-4))
	}

	style := m.styles.Pane
	if m.focus == paneHistory {
		style = m.styles.FocusedPane
	}
	return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSearchLine(search *domain.Search, selected bool, width int) string {
	indicator := m.styles.StatusStyle(search.Status).Render(statusGlyph(search.Status))
	if search.Status == domain.StatusProcessing {
		indicator = m.styles.StatusWorking.Render(m.spin.View())
	}

	query := search.Query
	if maxLen := width - 8; maxLen > 3 && len(query) > maxLen {
		query = query[:maxLen-1] + "…"
	}
	line := fmt.Sprintf("%s %s (%d)", indicator, query, search.LeadCount)
	if selected {
		return m.styles.Selected.Render(line)
	}
	return line
}

func (m *Model) renderResults(width, height int) string {
	var lines []string
	header := "Leads"
	if active := m.controller.ActiveSearch(); active != nil {
		header = fmt.Sprintf("Leads — %s", active.Query)
		if active.HasNextPage() {
			header += m.styles.Dim.Render("  [more available]")
		}
	}
	lines = append(lines, m.styles.PaneHeader.Render(header))

	results := m.records.Results()
	if len(results) == 0 {
		lines = append(lines, m.styles.Dim.Render("no results"))
	}
	for i, lead := range results {
		if i >= height-1 {
			lines = append(lines, m.styles.Dim.Render(fmt.Sprintf("… %d more", len(results)-i)))
			break
		}
		line := lead.Name
		if lead.Phone != "" {
			line += m.styles.Dim.Render("  " + lead.Phone)
		}
		if lead.ContactCreated {
			line += m.styles.StatusSuccess.Render(" ✓")
		}
		if i == m.resultIdx && m.focus == paneResults {
			line = m.styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	style := m.styles.Pane
	if m.focus == paneResults {
		style = m.styles.FocusedPane
	}
	return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatusBar() string {
	if m.controller.Busy() {
		return m.styles.StatusWorking.Render(m.spin.View() + " working…")
	}
	if m.notice.message != "" {
		return m.styles.NoticeStyle(m.notice.severity).Render(m.notice.message)
	}
	if lastErr := m.controller.LastError(); lastErr != "" {
		return m.styles.StatusError.Render(lastErr)
	}
	return m.styles.Dim.Render("ready")
}

func (m *Model) renderDetail() string {
	lead := m.detailLead
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(lead.Name))
	b.WriteString("\n\n")
	writeField(&b, "Phone", lead.Phone)
	writeField(&b, "Email", lead.Email)
	writeField(&b, "Address", lead.Address)
	writeField(&b, "Activity", lead.ActivitySummary)
	if lead.Phone != "" {
		writeField(&b, "WhatsApp", lead.WhatsAppURL(""))
	}
	if lead.ContactCreated {
		b.WriteString(m.styles.StatusSuccess.Render("contact created"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("esc to close"))

	box := m.styles.Detail.Width(min(m.width-4, 72)).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%-10s %s\n", label+":", value)
}

func statusGlyph(status domain.SearchStatus) string {
	switch status {
	case domain.StatusSuccess:
		return "●"
	case domain.StatusError:
		return "✗"
	case domain.StatusProcessing:
		return "◐"
	default:
		return "○"
	}
}

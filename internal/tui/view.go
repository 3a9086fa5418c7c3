package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDeadlines:
		content = docStyle.Render(m.deadlineList.View())
	case StateInjuries:
		content = docStyle.Render(m.injuryList.View())
	case StateAddInjury:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewSummary(),
		content,
		m.viewMessages(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case StateAddInjury:
		active = StateInjuries
	case StateConfirmDelete:
		active = StateDeadlines
	}

	var tabs []string
	for i, title := range []string{"Deadlines", "Injuries"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSummary() string {
	s := m.summary
	overdue := fmt.Sprintf("%d overdue", s.Overdue)
	if s.Overdue > 0 {
		overdue = dangerStyle.Render(overdue)
	}
	soon := fmt.Sprintf("%d due soon", s.DueSoon)
	if s.DueSoon > 0 {
		soon = warningStyle.Render(soon)
	}
	return fmt.Sprintf(" %s | %s | %d on track | %d completed", overdue, soon, s.OnTrack, s.Completed)
}

func (m Model) viewMessages() string {
	switch {
	case m.errorMessage != "":
		return dangerStyle.Render(" " + m.errorMessage)
	case m.statusMessage != "":
		return okStyle.Render(" " + m.statusMessage)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete deadline %d?", m.deadlineToDeleteID)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/tui/components/deadlinelist"
	"github.com/julianstephens/rokovi/internal/tui/components/injurylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddInjury:
		return m.updateInjuryForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.deadlineList.SetSize(msg.Width-h, msg.Height-v-4)
		m.injuryList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case deadlinelist.DeleteDeadlineMsg:
		m.deadlineToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case injurylist.AddInjuryMsg:
		m.clearMessages()
		if err := m.startInjuryForm(); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		return m, m.form.Init()

	case injurylist.NotifyInjuryMsg:
		m.clearMessages()
		if err := m.notifyInjury(msg.ID); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.statusMessage = fmt.Sprintf("Injury %d marked as reported", msg.ID)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				m.state = (m.state + 1) % tabCount
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.state = (m.state - 1 + tabCount) % tabCount
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			case key.Matches(msg, m.keys.Refresh):
				m.clearMessages()
				if err := m.refresh(); err != nil {
					m.errorMessage = err.Error()
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDeadlines:
		m.deadlineList, cmd = m.deadlineList.Update(msg)
	case StateInjuries:
		m.injuryList, cmd = m.injuryList.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case StateDeadlines:
		return m.deadlineList.Filtering()
	case StateInjuries:
		return m.injuryList.Filtering()
	}
	return false
}

func (m *Model) clearMessages() {
	m.statusMessage = ""
	m.errorMessage = ""
}

func (m Model) updateInjuryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		saved, err := m.saveInjuryForm()
		if err != nil {
			m.errorMessage = err.Error()
		} else {
			m.statusMessage = fmt.Sprintf("Recorded injury %d for %s", saved.ID, saved.EmployeeName)
		}
		if err := m.refresh(); err != nil {
			m.errorMessage = err.Error()
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.injuryForm = nil
	m.state = StateInjuries
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.clearMessages()
		id := m.deadlineToDeleteID
		if err := m.engine.DeleteDeadline(id); err != nil {
			m.errorMessage = deleteError(id, err)
		} else {
			m.statusMessage = fmt.Sprintf("Deleted deadline %d", id)
		}
		if err := m.refresh(); err != nil {
			m.errorMessage = err.Error()
		}
	case "n", "N", "esc":
	default:
		return m, nil
	}

	m.deadlineToDeleteID = 0
	m.state = StateDeadlines
	return m, nil
}

func deleteError(id int, err error) string {
	switch {
	case errors.Is(err, deadlines.ErrSeededDeadline):
		return fmt.Sprintf("Deadline %d comes from the seed catalog and cannot be deleted", id)
	case errors.Is(err, deadlines.ErrDeadlineNotFound):
		return fmt.Sprintf("Deadline %d not found", id)
	}
	return err.Error()
}

// notifyInjury records that the inspectorate was told about the injury now.
func (m *Model) notifyInjury(id int) error {
	injury, err := m.ctx.Registry().Injuries.Get(id)
	if err != nil {
		return fmt.Errorf("failed to get injury %d: %w", id, err)
	}
	if injury.InspectionNotificationDate != nil {
		return fmt.Errorf("injury %d was already reported", id)
	}

	at := m.ctx.Now().In(m.engine.Location())
	injury.InspectionNotificationDate = &at
	if _, err := m.ctx.SaveInjury(injury); err != nil {
		return err
	}
	return m.refresh()
}

package deadlinelist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/models"
)

type DeleteDeadlineMsg struct {
	ID int
}

type Item struct {
	Deadline models.Deadline
	Today    time.Time
}

func (i Item) Title() string {
	return fmt.Sprintf("[%s] %s / %s", deadlines.Label(i.Deadline, i.Today, deadlines.Classify), i.Deadline.Area, i.Deadline.ObligationType)
}

func (i Item) Description() string {
	due := i.Deadline.DueDate.In(i.Today.Location()).Format(constants.DateFormat)
	desc := fmt.Sprintf("%s | %s | %s", due, i.Deadline.CompanyName, relative(i.Deadline, i.Today))
	if !i.Deadline.IsDynamic() {
		desc += " | seeded"
	}
	return desc
}

func (i Item) FilterValue() string {
	return i.Deadline.Area + " " + i.Deadline.ObligationType + " " + i.Deadline.CompanyName
}

func relative(d models.Deadline, today time.Time) string {
	if d.IsCompleted {
		return "done"
	}
	days := deadlines.DaysUntil(d.DueDate, today)
	switch {
	case days == 0:
		return "today"
	case days < 0:
		return fmt.Sprintf("%d days late", -days)
	}
	return fmt.Sprintf("in %d days", days)
}

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(ds []models.Deadline, today time.Time, width, height int) Model {
	l := list.New(toItems(ds, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Deadlines"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(ds []models.Deadline, today time.Time) []list.Item {
	sorted := deadlines.SortByUrgency(ds, today)
	items := make([]list.Item, len(sorted))
	for i, d := range sorted {
		items[i] = Item{Deadline: d, Today: today}
	}
	return items
}

// SetDeadlines replaces the list contents, most urgent first.
func (m *Model) SetDeadlines(ds []models.Deadline, today time.Time) {
	m.list.SetItems(toItems(ds, today))
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

func (m Model) Selected() (models.Deadline, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Deadline{}, false
	}
	return i.Deadline, true
}

// Filtering reports whether the filter input currently owns the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Delete) {
			if d, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteDeadlineMsg{ID: d.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No deadlines.\n  Register a company with 'rokovi company add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

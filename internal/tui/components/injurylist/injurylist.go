package injurylist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/rokovi/internal/constants"
	"github.com/julianstephens/rokovi/internal/models"
)

type AddInjuryMsg struct{}

type NotifyInjuryMsg struct {
	ID int
}

type Item struct {
	Injury models.Injury
	Loc    *time.Location
}

func (i Item) Title() string {
	return fmt.Sprintf("#%d %s (%s)", i.Injury.ID, i.Injury.EmployeeName, i.Injury.Severity)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | company %s", i.Injury.InjuryDate.In(i.Loc).Format(constants.DateTimeFormat), i.Injury.CompanyID)
	if i.Injury.InspectionNotificationDate != nil {
		return desc + " | reported " + i.Injury.InspectionNotificationDate.In(i.Loc).Format(constants.DateTimeFormat)
	}
	return desc + " | notification pending"
}

func (i Item) FilterValue() string { return i.Injury.EmployeeName }

type KeyMap struct {
	Add    key.Binding
	Notify key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "mark reported"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(injuries []models.Injury, loc *time.Location, width, height int) Model {
	l := list.New(toItems(injuries, loc), list.NewDefaultDelegate(), width, height)
	l.Title = "Injuries"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Notify}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Notify}
	}

	return Model{list: l, keys: keys}
}

func toItems(injuries []models.Injury, loc *time.Location) []list.Item {
	items := make([]list.Item, len(injuries))
	for i, inj := range injuries {
		items[i] = Item{Injury: inj, Loc: loc}
	}
	return items
}

func (m *Model) SetInjuries(injuries []models.Injury, loc *time.Location) {
	m.list.SetItems(toItems(injuries, loc))
}

func (m Model) Items() []list.Item {
	return m.list.Items()
}

func (m Model) Selected() (models.Injury, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Injury{}, false
	}
	return i.Injury, true
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
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddInjuryMsg{} }
		case key.Matches(msg, m.keys.Notify):
			if inj, ok := m.Selected(); ok && inj.InspectionNotificationDate == nil {
				return m, func() tea.Msg { return NotifyInjuryMsg{ID: inj.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No injuries recorded.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

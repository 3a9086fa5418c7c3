package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/rokovi/internal/cli"
	"github.com/julianstephens/rokovi/internal/deadlines"
	"github.com/julianstephens/rokovi/internal/tui/components/deadlinelist"
	"github.com/julianstephens/rokovi/internal/tui/components/injurylist"
)

type SessionState int

const (
	StateDeadlines SessionState = iota
	StateInjuries
	StateAddInjury
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

type InjuryFormModel struct {
	CompanyID    string
	EmployeeName string
	Date         string
	Severity     string
	Description  string
}

type Model struct {
	ctx                *cli.Context
	engine             *deadlines.Engine
	state              SessionState
	keys               KeyMap
	help               help.Model
	deadlineList       deadlinelist.Model
	injuryList         injurylist.Model
	summary            deadlines.Summary
	form               *huh.Form
	injuryForm         *InjuryFormModel
	deadlineToDeleteID int
	statusMessage      string
	errorMessage       string
	quitting           bool
	width              int
	height             int
}

func NewModel(ctx *cli.Context) (Model, error) {
	engine, err := ctx.Engine()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:          ctx,
		engine:       engine,
		state:        StateDeadlines,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		deadlineList: deadlinelist.New(nil, engine.Today(), 0, 0),
		injuryList:   injurylist.New(nil, engine.Location(), 0, 0),
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// refresh reloads deadlines and injuries from the store.
func (m *Model) refresh() error {
	today := m.engine.Today()
	all, err := m.engine.AllDeadlines()
	if err != nil {
		return fmt.Errorf("failed to load deadlines: %w", err)
	}
	m.deadlineList.SetDeadlines(all, today)
	m.summary = deadlines.Summarize(all, today)

	injuries, err := m.ctx.Registry().Injuries.List()
	if err != nil {
		return fmt.Errorf("failed to load injuries: %w", err)
	}
	m.injuryList.SetInjuries(injuries, m.engine.Location())
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDeadlines:
		keys = append(keys, m.keys.Delete)
	case StateInjuries:
		keys = append(keys, m.keys.Add, m.keys.Notify)
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateDeadlines:
		actions = []key.Binding{m.keys.Delete}
	case StateInjuries:
		actions = []key.Binding{m.keys.Add, m.keys.Notify}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

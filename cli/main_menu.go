package cli

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ms "pfeifer.dev/scurve/settings"
)

type mainState int

const (
	showMenu mainState = iota
	showExplorer
	showSettings
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type uiModel struct {
	list     list.Model
	state    mainState
	explorer explorerModel
	settings settingsModel
}

type item struct {
	title, desc string
	state       mainState
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func initialModel(state mainState) uiModel {
	items := []list.Item{
		item{title: "Explore", desc: "Plan a move and step through its samples", state: showExplorer},
		item{title: "Settings", desc: "Change the defaults used by every command", state: showSettings},
	}

	listDelegate := list.NewDefaultDelegate()
	m := uiModel{
		list:     list.New(items, listDelegate, 0, 0),
		state:    state,
		explorer: newExplorerModel(ms.Settings),
		settings: getSettingsModel(),
	}
	m.list.Title = "S-curve Actions"
	return m
}

func (m uiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter && m.state == showMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(item)
			m.state = it.state
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.settings, _ = m.settings.Update(msg, &m)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case showExplorer:
		m.explorer, cmd = m.explorer.Update(msg, &m)
	case showSettings:
		m.settings, cmd = m.settings.Update(msg, &m)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m uiModel) View() string {
	switch m.state {
	case showExplorer:
		return m.explorer.View()
	case showSettings:
		return m.settings.View()
	}
	return docStyle.Render(m.list.View())
}

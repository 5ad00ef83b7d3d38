package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	ms "pfeifer.dev/scurve/settings"
)

type settingsState int

const (
	showSettingsMenu settingsState = iota
	settingsExit
	settingsInput
	saveSettings
	loadDefaults
	loadRecommended
)

type settingsItem struct {
	title, desc string
	key         string
	state       settingsState
}

func (i settingsItem) Title() string { return i.title }
func (i settingsItem) Description() string {
	if i.key == "" {
		return i.desc
	}
	value, _ := ms.Settings.Get(i.key)
	return fmt.Sprintf("%s (current: %s)", i.desc, value)
}
func (i settingsItem) FilterValue() string { return i.title }

type settingsModel struct {
	list         list.Model
	state        settingsState
	textInput    textinput.Model
	selectedItem settingsItem
	prompt       string
	status       string
}

func (m settingsModel) Update(msg tea.Msg, mm *uiModel) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state == settingsInput {
			m.state = showSettingsMenu
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == showSettingsMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(settingsItem)
			m.selectedItem = it
			m.state = it.state
			m.status = ""
			switch m.state {
			case settingsExit:
				m.state = showSettingsMenu
				mm.state = showMenu
				mm.explorer = newExplorerModel(ms.Settings)
			case settingsInput:
				m.prompt = m.selectedItem.Title()
				value, _ := ms.Settings.Get(it.key)
				m.textInput.SetValue(value)
				m.textInput.CursorEnd()
				return m, m.textInput.Focus()
			case saveSettings:
				m.state = showSettingsMenu
				if err := ms.Settings.Save(); err != nil {
					m.status = Message(err)
				} else {
					m.status = "settings saved"
				}
			case loadDefaults:
				m.state = showSettingsMenu
				ms.Settings.Default()
				m.status = "defaults loaded, save to keep them"
			case loadRecommended:
				m.state = showSettingsMenu
				ms.Settings.Recommended()
				m.status = "recommended settings loaded, save to keep them"
			}
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == settingsInput {
			m.state = showSettingsMenu
			m.textInput.Blur()
			if err := ms.Settings.Set(m.selectedItem.key, m.textInput.Value()); err != nil {
				m.status = Message(err)
			} else {
				m.status = fmt.Sprintf("%s updated, save to keep it", m.selectedItem.key)
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == settingsInput {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m settingsModel) View() string {
	switch m.state {
	case settingsInput:
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			m.prompt,
			m.textInput.View(),
			"(enter to apply, esc to cancel)",
		) + "\n")
	default:
		view := m.list.View()
		if m.status != "" {
			view += "\n" + helpStyle.Render(m.status)
		}
		return docStyle.Render(view)
	}
}

func settingsItems() []list.Item {
	return []list.Item{
		settingsItem{title: "Distance", desc: "Default distance of a move in metres", key: "distance", state: settingsInput},
		settingsItem{title: "Max Velocity", desc: "Default velocity cap in m/s", key: "max_velocity", state: settingsInput},
		settingsItem{title: "Max Acceleration", desc: "Default acceleration cap in m/s²", key: "max_acceleration", state: settingsInput},
		settingsItem{title: "Max Jerk", desc: "Default jerk cap in m/s³", key: "max_jerk", state: settingsInput},
		settingsItem{title: "Time Step", desc: "Default sampling step in seconds", key: "dt", state: settingsInput},
		settingsItem{title: "Set Log Level", desc: "How verbose logging is: debug, info, warn or error", key: "log_level", state: settingsInput},
		settingsItem{title: "Output Directory", desc: "Where export writes by default", key: "output_directory", state: settingsInput},
		settingsItem{title: "Plot Width", desc: "Exported image width in inches", key: "plot_width", state: settingsInput},
		settingsItem{title: "Plot Height", desc: "Exported image height in inches", key: "plot_height", state: settingsInput},
		settingsItem{title: "Batch Workers", desc: "How many batch moves are planned at once", key: "batch_workers", state: settingsInput},
		settingsItem{title: "Load Recommended Settings", desc: "Finer sampling and warning logs", state: loadRecommended},
		settingsItem{title: "Load Default Settings", desc: "Restore every setting to its default", state: loadDefaults},
		settingsItem{title: "Save Settings", desc: "Persists any updates to the settings", state: saveSettings},
		settingsItem{title: "Return to Main Menu", desc: "Exit settings configuration and return to the initial actions menu", state: settingsExit},
	}
}

func getSettingsModel() settingsModel {
	listDelegate := list.NewDefaultDelegate()
	m := settingsModel{list: list.New(settingsItems(), listDelegate, 0, 0), textInput: textinput.New()}
	m.list.Title = "S-curve Settings"
	return m
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"pfeifer.dev/scurve/scurve"
	ms "pfeifer.dev/scurve/settings"
	"pfeifer.dev/scurve/utils"
)

var (
	inputErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	planErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	focusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

var explorerFields = []struct {
	label, unit string
}{
	{"distance", "m"},
	{"max velocity", "m/s"},
	{"max acceleration", "m/s²"},
	{"max jerk", "m/s³"},
	{"dt", "s"},
}

const cursorBarWidth = 40

type profileResult struct {
	profile *scurve.Profile
	err     error
}

type explorerModel struct {
	inputs []textinput.Model
	focus  int
	// memo holds the profile of the current inputs until one of them changes.
	memo   utils.Curry[profileResult]
	result profileResult
	cursor int
}

func newExplorerModel(s ms.ProfileSettings) explorerModel {
	values := []float64{s.Distance, s.MaxVelocity, s.MaxAcceleration, s.MaxJerk, s.TimeStep}
	m := explorerModel{inputs: make([]textinput.Model, len(explorerFields))}
	for i, f := range explorerFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.unit
		ti.CharLimit = 24
		ti.Width = 16
		ti.SetValue(strconv.FormatFloat(values[i], 'g', -1, 64))
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

func (m explorerModel) generate() profileResult {
	values := make([]float64, len(m.inputs))
	for i, in := range m.inputs {
		raw := strings.TrimSpace(in.Value())
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return profileResult{err: errors.Wrapf(scurve.ErrInvalidParameter, "%s must be a number, got %q", explorerFields[i].label, raw)}
		}
		values[i] = v
	}

	l, err := scurve.New(values[0], values[1], values[2], values[3])
	if err != nil {
		return profileResult{err: err}
	}
	p, err := scurve.Generate(l, values[4])
	return profileResult{profile: p, err: err}
}

func (m *explorerModel) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((i % n) + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *explorerModel) moveCursor(delta int) {
	if m.result.profile == nil {
		return
	}
	last := m.result.profile.Samples.Len() - 1
	m.cursor = max(0, min(last, m.cursor+delta))
}

func (m explorerModel) Update(msg tea.Msg, mm *uiModel) (explorerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc":
		mm.state = showMenu
		return m, nil
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "enter":
		fresh := !m.memo.IsSet()
		m.result = m.memo.Value(m.generate)
		if fresh {
			m.cursor = 0
		}
		return m, nil
	case "left":
		m.moveCursor(-1)
		return m, nil
	case "right":
		m.moveCursor(1)
		return m, nil
	case "shift+left":
		m.moveCursor(-10)
		return m, nil
	case "shift+right":
		m.moveCursor(10)
		return m, nil
	case "home":
		m.cursor = 0
		return m, nil
	case "end":
		m.moveCursor(1 << 30)
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		m.memo.Reset()
	}
	return m, cmd
}

func (m explorerModel) errorBanner() string {
	err := m.result.err
	if err == nil {
		return ""
	}
	if isInputError(err) {
		return inputErrorStyle.Render(Message(err))
	}
	return planErrorStyle.Render(Message(err))
}

func cursorBar(index, last int) string {
	filled := 0
	if last > 0 {
		filled = index * cursorBarWidth / last
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", cursorBarWidth-filled) + "]"
}

func (m explorerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("S-curve Explorer"))
	b.WriteString("\n\n")

	for i, f := range explorerFields {
		label := fmt.Sprintf("%-17s", f.label+" ("+f.unit+")")
		if i == m.focus {
			label = focusStyle.Render(label)
		}
		b.WriteString(label + " " + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	if banner := m.errorBanner(); banner != "" {
		b.WriteString(banner + "\n\n")
	}

	if p := m.result.profile; p != nil {
		b.WriteString(summary(p) + "\n\n")
		last := p.Samples.Len() - 1
		b.WriteString(cursorBar(m.cursor, last) + fmt.Sprintf(" %d/%d\n", m.cursor, last))
		b.WriteString(readout(p, p.Samples.Point(m.cursor)) + "\n\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • enter: plan • ←/→: step • shift+←/→: step 10 • esc: menu"))
	return docStyle.Render(b.String()) + "\n"
}

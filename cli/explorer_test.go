package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfeifer.dev/scurve/scurve"
	ms "pfeifer.dev/scurve/settings"
)

func defaultExplorer() explorerModel {
	var s ms.ProfileSettings
	s.Default()
	return newExplorerModel(s)
}

func press(m explorerModel, mm *uiModel, keys ...tea.KeyMsg) explorerModel {
	for _, k := range keys {
		m, _ = m.Update(k, mm)
	}
	return m
}

var (
	enter      = tea.KeyMsg{Type: tea.KeyEnter}
	tab        = tea.KeyMsg{Type: tea.KeyTab}
	right      = tea.KeyMsg{Type: tea.KeyRight}
	left       = tea.KeyMsg{Type: tea.KeyLeft}
	shiftRight = tea.KeyMsg{Type: tea.KeyShiftRight}
	end        = tea.KeyMsg{Type: tea.KeyEnd}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExplorerGenerate(t *testing.T) {
	t.Parallel()

	mm := &uiModel{state: showExplorer}
	m := press(defaultExplorer(), mm, enter)
	require.NoError(t, m.result.err)
	require.NotNil(t, m.result.profile)
	assert.Equal(t, 0.5, m.result.profile.Plan.PeakVelocity)
	assert.Contains(t, m.View(), "stage: J1 (jerk up)")

	first := m.result.profile
	m = press(m, mm, enter)
	assert.Same(t, first, m.result.profile, "unchanged inputs reuse the profile")
}

func TestExplorerCursor(t *testing.T) {
	t.Parallel()

	mm := &uiModel{state: showExplorer}
	m := press(defaultExplorer(), mm, left, enter)
	assert.Equal(t, 0, m.cursor)

	m = press(m, mm, right, shiftRight)
	assert.Equal(t, 11, m.cursor)
	m = press(m, mm, left)
	assert.Equal(t, 10, m.cursor)

	m = press(m, mm, end, right)
	assert.Equal(t, m.result.profile.Samples.Len()-1, m.cursor)
	assert.Contains(t, m.View(), "position: 1.000 m")
}

func TestExplorerInputChange(t *testing.T) {
	t.Parallel()

	mm := &uiModel{state: showExplorer}
	m := press(defaultExplorer(), mm, enter)
	first := m.result.profile

	// dt field
	m = press(m, mm, tab, tab, tab, tab)
	assert.Equal(t, 4, m.focus)
	m = press(m, mm, typed("x"), enter)
	assert.Nil(t, m.result.profile)
	assert.True(t, errors.Is(m.result.err, scurve.ErrInvalidParameter))
	assert.Contains(t, m.View(), "invalid input")

	m = press(m, mm, tea.KeyMsg{Type: tea.KeyBackspace}, enter)
	require.NoError(t, m.result.err)
	assert.NotSame(t, first, m.result.profile)
	assert.Equal(t, first.Samples, m.result.profile.Samples)
}

func TestExplorerPlanningError(t *testing.T) {
	t.Parallel()

	var s ms.ProfileSettings
	s.Default()
	s.Distance = 0.05
	mm := &uiModel{state: showExplorer}
	m := press(newExplorerModel(s), mm, enter)
	assert.True(t, errors.Is(m.result.err, scurve.ErrDistanceTooShortForRamp))
	assert.Contains(t, m.View(), "too short")
}

func TestExplorerEscReturnsToMenu(t *testing.T) {
	t.Parallel()

	mm := &uiModel{state: showExplorer}
	press(defaultExplorer(), mm, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, showMenu, mm.state)
}

func TestCursorBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "["+strings.Repeat(" ", cursorBarWidth)+"]", cursorBar(0, 300))
	assert.Equal(t, "["+strings.Repeat("=", cursorBarWidth)+"]", cursorBar(300, 300))
	assert.Equal(t, "["+strings.Repeat(" ", cursorBarWidth)+"]", cursorBar(0, 0))
}

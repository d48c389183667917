package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/cmdref/internal/catalog"
)

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, kt tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: kt})
	return next.(Model), cmd
}

func TestNewSelectsFirstCommand(t *testing.T) {
	cat := catalog.Sample()
	m := New(cat, "")

	assert.Len(t, m.Matches(), cat.Len())
	assert.Equal(t, "CMD_ARM_SYSTEM", m.Selected())
	require.NotNil(t, m.Resolved())
	assert.Equal(t, "0xAF23", m.Resolved().HexCode)
	assert.NoError(t, m.Err())
}

func TestTypingFiltersAndReselects(t *testing.T) {
	m := New(catalog.Sample(), "")
	m = typeText(t, m, "payload")

	assert.Equal(t, "payload", m.Query())
	names := make([]string, 0, len(m.Matches()))
	for _, c := range m.Matches() {
		names = append(names, c.Command)
	}
	assert.Equal(t, []string{"CMD_ACTIVATE_PAYLOAD", "CMD_SHUTDOWN_PAYLOAD"}, names)
	assert.Equal(t, "CMD_ACTIVATE_PAYLOAD", m.Selected())
}

func TestCursorMovesWithinMatches(t *testing.T) {
	m := New(catalog.Sample(), "recording")
	require.Len(t, m.Matches(), 2)

	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "CMD_STOP_RECORDING", m.Selected())
	require.NotNil(t, m.Resolved())
	assert.Equal(t, "Confirm", m.Resolved().Parameters[0].Name)

	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "CMD_STOP_RECORDING", m.Selected(), "cursor stops at the last match")

	m, _ = press(t, m, tea.KeyUp)
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "CMD_START_RECORDING", m.Selected())
}

func TestNoMatchesClearsSelection(t *testing.T) {
	m := New(catalog.Sample(), "")
	m = typeText(t, m, "warp drive")

	assert.Empty(t, m.Matches())
	assert.Empty(t, m.Selected())
	assert.Nil(t, m.Resolved())
	assert.Contains(t, m.View(), "No commands found")

	m, _ = press(t, m, tea.KeyDown)
	assert.Empty(t, m.Selected())
}

func TestClearRestoresAllCommands(t *testing.T) {
	cat := catalog.Sample()
	m := New(cat, "antenna")
	require.Len(t, m.Matches(), 1)

	m, _ = press(t, m, tea.KeyCtrlL)
	assert.Empty(t, m.Query())
	assert.Len(t, m.Matches(), cat.Len())
}

func TestQuitKeys(t *testing.T) {
	m := New(catalog.Sample(), "")

	_, cmd := press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = press(t, m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsDetailsOfSelection(t *testing.T) {
	m := New(catalog.Sample(), "CMD_SET_MODE")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Satellite Command Lookup")
	assert.Contains(t, view, "0xB104")
	assert.Contains(t, view, "SAFE")
	assert.Contains(t, view, "Found 1 matching command")
}

// Package browse is the interactive command browser: a search box, a
// filtered command list and a detail pane for the highlighted command.
package browse

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/logging"
	"github.com/aidanlsb/cmdref/internal/resolver"
	"github.com/aidanlsb/cmdref/internal/search"
	"github.com/aidanlsb/cmdref/internal/ui"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeHeight  = 9 // title, input box, status line and padding
)

// Model holds the browser state. The catalog is shared and never modified;
// each selection change resolves the highlighted command once.
type Model struct {
	cat    *catalog.Catalog
	title  string
	input  textinput.Model
	detail viewport.Model
	help   help.Model
	keys   keyMap

	matches  []catalog.CommandDef
	cursor   int
	offset   int
	selected string
	resolved *resolver.ResolvedCommand
	err      error

	width    int
	height   int
	showHelp bool
}

// New creates a browser over cat with an optional initial query.
func New(cat *catalog.Catalog, query string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type command name or description..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 120
	ti.SetValue(query)
	ti.Focus()

	m := Model{
		cat:    cat,
		title:  "Satellite Command Lookup",
		input:  ti,
		detail: viewport.New(defaultWidth/2, defaultHeight-chromeHeight),
		help:   help.New(),
		keys:   keys,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			m.move(-1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.move(1)
			return m, nil

		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd

		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			m.refilter()
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.input.Value() != before {
		m.refilter()
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{
		titleStyle.Render(ui.Bold.Render(m.title)),
		inputStyle.Width(m.contentWidth() - 2).Render(m.input.View()),
		m.renderStatus(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), m.renderDetail()),
		ui.Hint(m.help.View(m.keys)),
	}
	return appStyle.Render(strings.Join(sections, "\n"))
}

// Matches returns the commands passing the current search.
func (m Model) Matches() []catalog.CommandDef {
	return m.matches
}

// Selected returns the highlighted command name, or "" when nothing matches.
func (m Model) Selected() string {
	return m.selected
}

// Resolved returns the expansion of the highlighted command.
func (m Model) Resolved() *resolver.ResolvedCommand {
	return m.resolved
}

// Err returns the resolution error for the highlighted command, if any.
func (m Model) Err() error {
	return m.err
}

// Query returns the current search text.
func (m Model) Query() string {
	return m.input.Value()
}

func (m *Model) refilter() {
	m.matches = search.Filter(m.cat.Commands(), m.input.Value())
	m.cursor = 0
	m.offset = 0
	m.selectCurrent()
}

func (m *Model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}

	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.selectCurrent()
}

// selectCurrent resolves the highlighted command if it changed.
func (m *Model) selectCurrent() {
	name := ""
	if m.cursor < len(m.matches) {
		name = m.matches[m.cursor].Command
	}
	if name == m.selected && (m.resolved != nil || m.err != nil) {
		return
	}

	m.selected = name
	m.resolved = nil
	m.err = nil
	if name != "" {
		m.resolved, m.err = resolver.Resolve(m.cat, name)
		if m.err != nil {
			logging.WithComponent("browse").WithError(m.err).Debug("resolve failed")
		}
	}
	m.detail.SetContent(m.detailContent())
	m.detail.GotoTop()
}

func (m Model) detailContent() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(ui.Error(m.err.Error()))
	case m.resolved != nil:
		return ui.RenderCommand(m.resolved, ui.RenderOptions{Styled: true, Hints: true})
	default:
		return ui.Hint("No commands found. Try different search terms.")
	}
}

func (m *Model) updateLayout() {
	m.detail.Width = m.contentWidth() - m.listWidth() - 3
	m.detail.Height = m.listHeight()
	m.help.Width = m.contentWidth()
}

func (m Model) contentWidth() int {
	if m.width <= 4 {
		return defaultWidth
	}
	return m.width - 4
}

func (m Model) listWidth() int {
	w := m.contentWidth() * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) listHeight() int {
	h := m.height - chromeHeight
	if m.showHelp {
		h -= 2
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderStatus() string {
	total := m.cat.Len()
	if strings.TrimSpace(m.input.Value()) == "" {
		return ui.Hint(fmt.Sprintf("Showing all %s", ui.Count(total, "command", "commands")))
	}
	if len(m.matches) == 0 {
		return ui.Hint("No commands found. Try different search terms.")
	}
	return ui.Hint(fmt.Sprintf("Found %s", ui.Count(len(m.matches), "matching command", "matching commands")))
}

func (m Model) renderList() string {
	width := m.listWidth()
	rows := m.listHeight()

	var lines []string
	end := m.offset + rows
	if end > len(m.matches) {
		end = len(m.matches)
	}
	for i := m.offset; i < end; i++ {
		name := ui.TruncateWithEllipsis(m.matches[i].Command, width-4)
		if i == m.cursor {
			lines = append(lines, selectedStyle().Render("▸ "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return listStyle.Width(width).Height(rows).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetail() string {
	return detailStyle.Render(m.detail.View())
}

// Options configures Run.
type Options struct {
	Query  string
	Input  io.Reader
	Output io.Writer
}

// Run starts the browser and blocks until the user quits or ctx ends.
func Run(ctx context.Context, cat *catalog.Catalog, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(New(cat, opts.Query), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}

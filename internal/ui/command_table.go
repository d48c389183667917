package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aidanlsb/cmdref/internal/catalog"
)

// ColumnDef defines a column in a CommandTable.
type ColumnDef struct {
	WidthRatio float64        // Proportion of available width, 0 means fixed
	MinWidth   int            // Minimum width in characters
	MaxWidth   int            // Maximum width (0 = no limit)
	AlignRight bool           // Right-align cells
	Style      lipgloss.Style // Style applied to cells in this column
}

// commandColumns is the layout for command listings: [num, name, hex, description].
var commandColumns = []ColumnDef{
	{MinWidth: 4, AlignRight: true, Style: Muted},
	{WidthRatio: 0.35, MinWidth: 16, MaxWidth: 40},
	{MinWidth: 8, Style: Muted},
	{WidthRatio: 0.65, MinWidth: 20, MaxWidth: 90},
}

// CommandTable renders a list of commands. Terminals get a lipgloss table
// sized to the window; other outputs get plain aligned columns.
type CommandTable struct {
	display  *DisplayContext
	commands []catalog.CommandDef
}

// NewCommandTable creates a table for commands.
func NewCommandTable(display *DisplayContext, commands []catalog.CommandDef) *CommandTable {
	return &CommandTable{display: display, commands: commands}
}

// Render generates the table output.
func (t *CommandTable) Render() string {
	if len(t.commands) == 0 {
		return ""
	}
	if !t.display.IsTTY {
		return t.renderPlain()
	}

	widths := t.calculateWidths()
	rows := make([][]string, len(t.commands))
	for i, cmd := range t.commands {
		rows[i] = []string{
			FormatRowNum(i+1, len(t.commands)),
			Accent.Render(cmd.Command),
			cmd.HexCode,
			TruncateWithEllipsis(cmd.Description, widths[3]),
		}
	}

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			def := commandColumns[col]
			style := def.Style.Width(widths[col])
			if def.AlignRight {
				style = style.Align(lipgloss.Right)
			}
			if col < len(commandColumns)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Rows(rows...)

	return tbl.Render() + "\n"
}

// renderPlain aligns name, hex code and description with two spaces
// between columns and no styling, one command per line.
func (t *CommandTable) renderPlain() string {
	nameWidth, hexWidth := 0, 0
	for _, cmd := range t.commands {
		nameWidth = max(nameWidth, lipgloss.Width(cmd.Command))
		hexWidth = max(hexWidth, lipgloss.Width(cmd.HexCode))
	}

	var sb strings.Builder
	for _, cmd := range t.commands {
		sb.WriteString(padRight(cmd.Command, nameWidth))
		sb.WriteString("  ")
		sb.WriteString(padRight(cmd.HexCode, hexWidth))
		sb.WriteString("  ")
		sb.WriteString(cmd.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// calculateWidths distributes the terminal width over the flexible columns.
func (t *CommandTable) calculateWidths() []int {
	widths := make([]int, len(commandColumns))

	var totalRatio float64
	fixed := 0
	for i, col := range commandColumns {
		if col.WidthRatio == 0 {
			widths[i] = col.MinWidth
			fixed += col.MinWidth + 2
		} else {
			totalRatio += col.WidthRatio
		}
	}

	available := t.display.AvailableWidth(fixed + 2*(len(commandColumns)-1))
	for i, col := range commandColumns {
		if col.WidthRatio == 0 {
			continue
		}
		width := int(float64(available) * col.WidthRatio / totalRatio)
		if width < col.MinWidth {
			width = col.MinWidth
		}
		if col.MaxWidth > 0 && width > col.MaxWidth {
			width = col.MaxWidth
		}
		widths[i] = width
	}
	return widths
}

// TruncateWithEllipsis truncates a string to maxLen runes, adding an ellipsis
// if needed. It tries to break at word boundaries.
func TruncateWithEllipsis(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	truncated := string(runes[:maxLen-3])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

// FormatRowNum formats a row number with consistent width.
func FormatRowNum(num, maxNum int) string {
	width := len(fmt.Sprintf("%d", maxNum))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%*d", width, num)
}

package docgen

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/resolver"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestMarkdownGolden(t *testing.T) {
	g := newGoldie(t)

	rc, err := resolver.Resolve(catalog.Sample(), "CMD_ARM_SYSTEM")
	require.NoError(t, err)
	g.Assert(t, "cmd_arm_system", []byte(Markdown(rc)))

	ping := &resolver.ResolvedCommand{
		Command:     "CMD_PING",
		HexCode:     "0x0001",
		Description: "Checks the link",
		Parameters:  []resolver.ResolvedParameter{},
	}
	g.Assert(t, "cmd_ping", []byte(Markdown(ping)))
}

func TestMarkdownEscapesTableCells(t *testing.T) {
	rc := &resolver.ResolvedCommand{
		Command: "CMD_X",
		HexCode: "0x1",
		Parameters: []resolver.ResolvedParameter{
			{Name: "Sel", Type: "enum", EnumValues: []resolver.EnumValue{{Value: 1, Label: "A|B"}}},
		},
	}
	assert.Contains(t, Markdown(rc), "| `1` | A\\|B |\n")
}

func TestHTMLHasAnchorsAndTables(t *testing.T) {
	rc, err := resolver.Resolve(catalog.Sample(), "CMD_ARM_SYSTEM")
	require.NoError(t, err)

	out, err := HTML(rc.Command, Markdown(rc))
	require.NoError(t, err)

	page := string(out)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>CMD_ARM_SYSTEM</title>")
	assert.Contains(t, page, `id="1-mode"`)
	assert.Contains(t, page, `href="#1-mode"`)
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>SAFE</td>")
}

func TestHTMLEscapesTitle(t *testing.T) {
	out, err := HTML("<CMD>", "# x\n")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>&lt;CMD&gt;</title>")
}

func TestIndexLinksPages(t *testing.T) {
	cat := catalog.Sample()
	all, err := resolver.ResolveAll(cat, []string{"CMD_SET_MODE", "CMD_DEPLOY_ANTENNA"})
	require.NoError(t, err)

	idx := Index("Command reference", all, ".html")
	assert.True(t, strings.HasPrefix(idx, "# Command reference\n\n"))
	assert.Contains(t, idx, "| [CMD_SET_MODE](cmd_set_mode.html) | `0xB104` |")
	assert.Contains(t, idx, "| [CMD_DEPLOY_ANTENNA](cmd_deploy_antenna.html) | `0xC302` |")

	assert.Equal(t, "# Empty\n\nNo commands.\n", Index("Empty", nil, ".md"))
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "1-mode", Anchor(0, "Mode"))
	assert.Equal(t, "3-subsystemid", Anchor(2, "SubsystemID"))
	assert.Equal(t, "cmd_set_mode.md", FileName("CMD_SET_MODE", ".md"))
}

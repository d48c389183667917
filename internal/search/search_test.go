package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidanlsb/cmdref/internal/catalog"
)

func names(cmds []catalog.CommandDef) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Command
	}
	return out
}

func TestFilter(t *testing.T) {
	commands := catalog.Sample().Commands()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "matches command name ignoring case",
			query: "power_o",
			want:  []string{"CMD_POWER_ON_SUBSYSTEM", "CMD_POWER_OFF_SUBSYSTEM"},
		},
		{
			name:  "matches description",
			query: "REACTION WHEELS",
			want:  []string{"CMD_SET_ATTITUDE"},
		},
		{
			name:  "matches either field in load order",
			query: "safe",
			want:  []string{"CMD_ARM_SYSTEM", "CMD_SET_MODE", "CMD_POWER_ON_SUBSYSTEM", "CMD_ENTER_SAFE_MODE"},
		},
		{
			name:  "query is trimmed",
			query: "  antenna ",
			want:  []string{"CMD_DEPLOY_ANTENNA"},
		},
		{
			name:  "no match",
			query: "warp drive",
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(commands, tt.query)))
		})
	}
}

func TestFilterBlankQueryReturnsAll(t *testing.T) {
	commands := catalog.Sample().Commands()
	assert.Equal(t, names(commands), names(Filter(commands, "")))
	assert.Equal(t, names(commands), names(Filter(commands, "   ")))
}

func TestMatcherFoldsUnicode(t *testing.T) {
	m := NewMatcher("STRASSE")
	assert.True(t, m.Match(catalog.CommandDef{Command: "CMD_X", Description: "Ground station Straße"}))
	assert.False(t, m.Empty())
	assert.True(t, NewMatcher("").Empty())
}

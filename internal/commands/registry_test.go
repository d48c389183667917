package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasRequiredCommands(t *testing.T) {
	for _, name := range []string{"show", "search", "list", "browse", "export", "convert", "sample", "version"} {
		_, ok := Registry[name]
		assert.True(t, ok, "Registry missing required command %q", name)
	}
}

func TestRegistryMetadataComplete(t *testing.T) {
	for name, meta := range Registry {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, meta.Name)
			assert.NotEmpty(t, meta.Description)

			for i, arg := range meta.Args {
				assert.NotEmpty(t, arg.Name, "arg %d", i)
				assert.NotEmpty(t, arg.Description, "arg %q", arg.Name)
				if arg.Variadic {
					assert.Equal(t, len(meta.Args)-1, i, "variadic arg must be last")
				}
			}
			for i, flag := range meta.Flags {
				assert.NotEmpty(t, flag.Name, "flag %d", i)
				assert.NotEmpty(t, flag.Description, "flag %q", flag.Name)
				assert.NotEmpty(t, flag.Type, "flag %q", flag.Name)
			}
		})
	}
}

func TestGenerateCobraCommand(t *testing.T) {
	tests := []struct {
		name string
		use  string
	}{
		{"show", "show [command]"},
		{"search", "search <query>"},
		{"list", "list"},
		{"export", "export [command...]"},
		{"config_init", "init"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := GenerateCobraCommand(tt.name, nil)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.use, cmd.Use)
		})
	}

	assert.Nil(t, GenerateCobraCommand("nope", nil))
}

func TestGeneratedArgsValidation(t *testing.T) {
	search := GenerateCobraCommand("search", nil)
	assert.Error(t, search.Args(search, nil))
	assert.NoError(t, search.Args(search, []string{"power"}))

	show := GenerateCobraCommand("show", nil)
	assert.NoError(t, show.Args(show, nil))
	assert.Error(t, show.Args(show, []string{"A", "B"}))

	export := GenerateCobraCommand("export", nil)
	assert.NoError(t, export.Args(export, []string{"A", "B", "C"}))

	list := GenerateCobraCommand("list", nil)
	assert.Error(t, list.Args(list, []string{"x"}))
}

func TestGeneratedFlags(t *testing.T) {
	export := GenerateCobraCommand("export", nil)
	to := export.Flags().Lookup("to")
	require.NotNil(t, to)
	assert.Equal(t, "o", to.Shorthand)
	assert.Equal(t, "cmdref-docs", to.DefValue)

	show := GenerateCobraCommand("show", nil)
	md := show.Flags().Lookup("markdown")
	require.NotNil(t, md)
	assert.Equal(t, "false", md.DefValue)
}

func TestDynamicCompletion(t *testing.T) {
	var gotKind, gotPrefix string
	complete := func(kind, toComplete string) []string {
		gotKind, gotPrefix = kind, toComplete
		return []string{"CMD_SET_MODE"}
	}

	show := GenerateCobraCommand("show", complete)
	got, directive := show.ValidArgsFunction(show, nil, "CMD_S")
	assert.Equal(t, []string{"CMD_SET_MODE"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, CompleteCommands, gotKind)
	assert.Equal(t, "CMD_S", gotPrefix)

	got, _ = show.ValidArgsFunction(show, []string{"CMD_SET_MODE"}, "")
	assert.Nil(t, got, "show takes a single command")

	export := GenerateCobraCommand("export", complete)
	got, _ = export.ValidArgsFunction(export, []string{"A", "B"}, "CMD")
	assert.Equal(t, []string{"CMD_SET_MODE"}, got)
}

func TestAddFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlag(fs, FlagMeta{Name: "limit", Short: "n", Type: FlagTypeInt, Default: "5", Description: "max"})
	addFlag(fs, FlagMeta{Name: "hints", Type: FlagTypeBool, Description: "show hints"})
	addFlag(fs, FlagMeta{Name: "as", Default: "md", Description: "page format"})

	require.NoError(t, fs.Parse([]string{"-n", "9", "--hints"}))

	limit, err := fs.GetInt("limit")
	require.NoError(t, err)
	assert.Equal(t, 9, limit)

	hints, err := fs.GetBool("hints")
	require.NoError(t, err)
	assert.True(t, hints)

	as, err := fs.GetString("as")
	require.NoError(t, err)
	assert.Equal(t, "md", as)
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/cmdref/internal/docgen"
	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/testutil"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func (r result) code() int {
	return GetExitCode(r.err)
}

// envelope mirrors Response with a raw payload for decoding in tests.
type envelope struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func (r result) envelope(t *testing.T) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &env), "stdout: %s", r.stdout)
	return env
}

// isolate points the default config location at an empty temp home.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	return runWithInput(t, "", args...)
}

func runWithInput(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	isolate(t)
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

const setModeText = `Command: CMD_SET_MODE
Hex Code: 0xB104
Description: Sets mode

Parameters:
  - Mode (enum)
    0: SAFE
    1: LIVE
    2: TEST
`

func TestShowPrintsResolvedCommand(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--data", c.Path, "show", "CMD_SET_MODE")
	require.NoError(t, r.err)
	assert.Equal(t, setModeText, r.stdout)
	assert.Empty(t, r.stderr)
}

func TestRootArgumentRoutesToShow(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--data", c.Path, "CMD_SET_MODE")
	require.NoError(t, r.err)
	assert.Equal(t, setModeText, r.stdout)
}

func TestShowPromptsWithoutArgument(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := runWithInput(t, "  CMD_SET_MODE \n", "--data", c.Path)
	require.NoError(t, r.err)
	assert.Equal(t, promptCommandName+setModeText, r.stdout)
}

func TestShowPromptWithEmptyInput(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := runWithInput(t, "\n", "--data", c.Path, "show")
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, r.code())
	assert.Contains(t, r.stderr, "no command name given")
}

func TestShowNotFoundExitsOne(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--data", c.Path, "CMD_NOPE")
	require.Error(t, r.err)
	assert.Equal(t, ExitFailure, r.code())
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "command not found: CMD_NOPE")
}

func TestShowIsCaseSensitive(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--data", c.Path, "cmd_set_mode")
	assert.Equal(t, ExitFailure, r.code())
}

func TestShowHints(t *testing.T) {
	dir := testutil.WriteSample(t, loader.FormatCSV)

	r := run(t, "--data", dir, "show", "CMD_ARM_SYSTEM", "--hints")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "  - Delay (int)\n    range: 0-300\n    Enter whole numbers\n")
	assert.NotContains(t, r.stdout, "Enter text value")
}

func TestShowMarkdownWithoutTerminalPrintsSource(t *testing.T) {
	dir := testutil.WriteSample(t, loader.FormatCSV)

	r := run(t, "--data", dir, "show", "CMD_ARM_SYSTEM", "--markdown")
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "# CMD_ARM_SYSTEM\n"))
	assert.Contains(t, r.stdout, "| Parameters | [Mode](#1-mode), [Delay](#2-delay) |")
}

func TestMissingStorageExitsTwo(t *testing.T) {
	r := run(t, "--data", t.TempDir(), "CMD_SET_MODE")
	require.Error(t, r.err)
	assert.Equal(t, ExitLoadError, r.code())
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, suggestSample)
}

func TestSchemaMismatchExitsTwo(t *testing.T) {
	c := testutil.NewTestCatalog(t).
		WithEnums("EnumSet,Value,Label\nARM_MODE,zero,SAFE\n").
		Build()

	r := run(t, "--json", "--data", c.Path, "CMD_SET_MODE")
	assert.Equal(t, ExitLoadError, r.code())

	env := r.envelope(t)
	assert.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrSchemaMismatch, env.Error.Code)
	assert.Equal(t, map[string]interface{}{
		"table": string(loader.TableEnums),
		"path":  filepath.Join(c.Path, loader.DefaultFileNames.Enums),
	}, env.Error.Details)
}

func TestShowJSON(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--json", "--data", c.Path, "show", "CMD_SET_MODE")
	require.NoError(t, r.err)

	env := r.envelope(t)
	assert.True(t, env.OK)
	assert.Nil(t, env.Error)
	assert.Empty(t, env.Warnings)
	assert.JSONEq(t, `{
		"command": "CMD_SET_MODE",
		"hex_code": "0xB104",
		"description": "Sets mode",
		"parameters": [{
			"name": "Mode",
			"type": "enum",
			"range": null,
			"enum_values": [
				{"value": 0, "label": "SAFE"},
				{"value": 1, "label": "LIVE"},
				{"value": 2, "label": "TEST"}
			]
		}]
	}`, string(env.Data))
}

func TestShowJSONWarnsAboutDegradedParameters(t *testing.T) {
	c := testutil.NewTestCatalog(t).
		WithCommands("Command,HexCode,Description,Params\nCMD_X,0x01,Test,\"Ghost,Mode\"\n").
		WithEnums("EnumSet,Value,Label\n").
		Build()

	r := run(t, "--json", "--data", c.Path, "CMD_X")
	require.NoError(t, r.err)

	env := r.envelope(t)
	require.Len(t, env.Warnings, 2)
	assert.Equal(t, WarnUnknownParameter, env.Warnings[0].Code)
	assert.Equal(t, "Ghost", env.Warnings[0].Ref)
	assert.Equal(t, WarnEmptyEnum, env.Warnings[1].Code)
	assert.Equal(t, "Mode", env.Warnings[1].Ref)
}

func TestNotFoundJSONEnvelope(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--json", "--data", c.Path, "CMD_NOPE")
	assert.Equal(t, ExitFailure, r.code())
	assert.Empty(t, r.stderr)

	env := r.envelope(t)
	assert.False(t, env.OK)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCommandNotFound, env.Error.Code)
	assert.Equal(t, "command not found: CMD_NOPE", env.Error.Message)
	assert.Equal(t, map[string]interface{}{"command": "CMD_NOPE"}, env.Error.Details)
}

func TestStorageNotFoundJSONSuggestsSample(t *testing.T) {
	r := run(t, "--json", "--data", t.TempDir(), "list")
	assert.Equal(t, ExitLoadError, r.code())

	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrStorageNotFound, env.Error.Code)
	assert.Equal(t, suggestSample, env.Error.Suggestion)
}

func TestShowJSONRequiresName(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "--json", "--data", c.Path, "show")
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrInvalidInput, env.Error.Code)
}

func TestSearch(t *testing.T) {
	dir := testutil.WriteSample(t, loader.FormatCSV)

	r := run(t, "--json", "--data", dir, "search", "SAFE")
	require.NoError(t, r.err)

	env := r.envelope(t)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 4, env.Meta.Count)

	var data struct {
		Query   string           `json:"query"`
		Results []commandSummary `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "SAFE", data.Query)

	var names []string
	for _, res := range data.Results {
		names = append(names, res.Command)
	}
	assert.Equal(t, []string{
		"CMD_ARM_SYSTEM",
		"CMD_SET_MODE",
		"CMD_POWER_ON_SUBSYSTEM",
		"CMD_ENTER_SAFE_MODE",
	}, names)
	assert.Equal(t, []string{"Mode", "Delay"}, data.Results[0].Params)
}

func TestSearchTextOutput(t *testing.T) {
	dir := testutil.WriteSample(t, loader.FormatCSV)

	r := run(t, "--data", dir, "search", "antenna")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "CMD_DEPLOY_ANTENNA")
	assert.Contains(t, r.stdout, "0xC302")
	assert.Equal(t, 1, strings.Count(r.stdout, "\n"))

	r = run(t, "--data", dir, "search", "warp drive")
	require.NoError(t, r.err)
	assert.Equal(t, "No commands found for: warp drive\n", r.stdout)
}

func TestList(t *testing.T) {
	dir := testutil.WriteSample(t, loader.FormatCSV)

	r := run(t, "--json", "--data", dir, "list")
	require.NoError(t, r.err)
	env := r.envelope(t)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 14, env.Meta.Count)

	r = run(t, "--data", dir, "list")
	require.NoError(t, r.err)
	assert.Equal(t, 14, strings.Count(r.stdout, "\n"))
}

func TestSampleThenShowEveryFormat(t *testing.T) {
	for _, tc := range []struct {
		name string
		path string
	}{
		{"csv", "csv"},
		{"yaml", "catalog.yaml"},
		{"sqlite", "catalog.db"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.path)

			r := run(t, "--data", path, "sample")
			require.NoError(t, r.err, r.stderr)
			assert.Contains(t, r.stdout, "Wrote "+tc.name+" catalog")
			assert.Contains(t, r.stdout, "(14 commands)")

			r = run(t, "--data", path, "CMD_SET_MODE")
			require.NoError(t, r.err, r.stderr)
			assert.Contains(t, r.stdout, "Hex Code: 0xB104\n")
			assert.Contains(t, r.stdout, "    2: TEST\n")
		})
	}
}

func TestSampleToFlag(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	r := run(t, "--json", "sample", "--to", dir, "--to-format", "csv")
	require.NoError(t, r.err)

	var res writeResult
	require.NoError(t, json.Unmarshal(r.envelope(t).Data, &res))
	assert.Equal(t, "csv", res.Format)
	assert.Equal(t, 14, res.Commands)
	assert.FileExists(t, filepath.Join(dir, loader.DefaultFileNames.Commands))
}

func TestConvertPreservesCatalog(t *testing.T) {
	csvDir := testutil.WriteSample(t, loader.FormatCSV)
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	r := run(t, "--data", csvDir, "convert", "--to", dbPath)
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Wrote sqlite catalog")

	for _, name := range []string{"CMD_ARM_SYSTEM", "CMD_TRANSMIT_DATA", "CMD_STOP_RECORDING"} {
		fromCSV := run(t, "--json", "--data", csvDir, name)
		fromDB := run(t, "--json", "--data", dbPath, name)
		require.NoError(t, fromCSV.err)
		require.NoError(t, fromDB.err)
		assert.JSONEq(t, string(fromCSV.envelope(t).Data), string(fromDB.envelope(t).Data), name)
	}
}

func TestConvertRequiresTarget(t *testing.T) {
	csvDir := testutil.WriteSample(t, loader.FormatCSV)

	r := run(t, "--json", "--data", csvDir, "convert")
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrInvalidInput, env.Error.Code)
}

func TestExportMarkdown(t *testing.T) {
	csvDir := testutil.WriteSample(t, loader.FormatCSV)
	out := filepath.Join(t.TempDir(), "docs")

	r := run(t, "--data", csvDir, "export", "--to", out)
	require.NoError(t, r.err, r.stderr)
	assert.Contains(t, r.stdout, "Exported 14 pages")

	index, err := os.ReadFile(filepath.Join(out, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# "+exportIndexTitle)
	assert.Contains(t, string(index), "("+docgen.FileName("CMD_SET_MODE", "md")+")")

	page, err := os.ReadFile(filepath.Join(out, docgen.FileName("CMD_SET_MODE", "md")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(page), "# CMD_SET_MODE\n"))
}

func TestExportHTMLSelectedCommands(t *testing.T) {
	csvDir := testutil.WriteSample(t, loader.FormatCSV)
	out := t.TempDir()

	r := run(t, "--json", "--data", csvDir, "export", "CMD_SET_MODE", "CMD_PING_NOPE", "--to", out)
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCommandNotFound, env.Error.Code)

	r = run(t, "--json", "--data", csvDir, "export", "CMD_SET_MODE", "CMD_ARM_SYSTEM", "--to", out, "--as", "html")
	require.NoError(t, r.err, r.stderr)

	var res exportResult
	require.NoError(t, json.Unmarshal(r.envelope(t).Data, &res))
	assert.Equal(t, "html", res.Format)
	assert.Equal(t, "index.html", res.Index)
	assert.Equal(t, []string{
		docgen.FileName("CMD_SET_MODE", "html"),
		docgen.FileName("CMD_ARM_SYSTEM", "html"),
	}, res.Pages)

	page, err := os.ReadFile(filepath.Join(out, res.Pages[0]))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(page), "<!DOCTYPE html>"))
	assert.Contains(t, string(page), "<title>CMD_SET_MODE</title>")
}

func TestExportRejectsUnknownPageFormat(t *testing.T) {
	r := run(t, "--json", "export", "--as", "pdf")
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrInvalidInput, env.Error.Code)
}

func TestBrowseRejectsJSON(t *testing.T) {
	r := run(t, "--json", "browse")
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrInvalidInput, env.Error.Code)
}

func TestConfigInitAndPath(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cmdref", "config.toml")

	r := run(t, "--config", cfgPath, "config", "init")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Wrote config")
	assert.FileExists(t, cfgPath)

	r = run(t, "--config", cfgPath, "config", "init")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Config already exists")

	r = run(t, "--config", cfgPath, "config", "path")
	require.NoError(t, r.err)
	assert.Equal(t, cfgPath+"\n", r.stdout)
}

func TestConfigDataIsUsedForLookups(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	r := run(t, "--config", cfgPath, "--data", c.Path, "config", "init")
	require.NoError(t, r.err, r.stderr)

	r = run(t, "--config", cfgPath, "CMD_SET_MODE")
	require.NoError(t, r.err, r.stderr)
	assert.Equal(t, setModeText, r.stdout)
}

func TestConfigRelativeDataResolvesAgainstConfigDir(t *testing.T) {
	root := t.TempDir()
	catDir := filepath.Join(root, "catalog")
	testutil.WriteFile(t, catDir, loader.DefaultFileNames.Commands, testutil.SetModeCommandsCSV)
	testutil.WriteFile(t, catDir, loader.DefaultFileNames.Parameters, testutil.SetModeParamsCSV)
	testutil.WriteFile(t, catDir, loader.DefaultFileNames.Enums, testutil.SetModeEnumsCSV)
	cfgPath := testutil.WriteFile(t, root, "config.toml", "data = \"catalog\"\n")

	r := run(t, "--config", cfgPath, "CMD_SET_MODE")
	require.NoError(t, r.err, r.stderr)
	assert.Equal(t, setModeText, r.stdout)
}

func TestMissingConfigFileIsInvalid(t *testing.T) {
	r := run(t, "--json", "--config", filepath.Join(t.TempDir(), "nope.toml"), "list")
	assert.Equal(t, ExitLoadError, r.code())
	env := r.envelope(t)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrConfigInvalid, env.Error.Code)
}

func TestUsageErrorsAreInvalidInput(t *testing.T) {
	for _, args := range [][]string{
		{"--json", "search"},
		{"--json", "list", "extra"},
		{"--json", "--bogus"},
		{"--json", "--format", "parquet", "list"},
		{"--json", "convert", "--to", "x.db", "--to-format", "parquet"},
	} {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			r := run(t, args...)
			assert.Equal(t, ExitFailure, r.code())
			env := r.envelope(t)
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrInvalidInput, env.Error.Code)
		})
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	c := testutil.NewTestCatalog(t).Build()

	r := run(t, "-v", "--data", c.Path, "CMD_SET_MODE")
	require.NoError(t, r.err)
	assert.Equal(t, setModeText, r.stdout)
	assert.Contains(t, r.stderr, "catalog loaded")
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"show", "search", "list", "browse", "export", "convert", "sample", "config", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := root.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	sub, _, err := root.Find([]string{"config", "init"})
	require.NoError(t, err)
	assert.Equal(t, "init", sub.Name())

	verbose := root.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

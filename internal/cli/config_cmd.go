package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/config"
	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/ui"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("config", nil)
	cmd.AddCommand(newConfigInitCommand(a), newConfigPathCommand(a))
	return cmd
}

func newConfigInitCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("config_init", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := a.resolvedConfigPath()
		data := strings.TrimSpace(a.dataPath)
		format := strings.TrimSpace(a.format)

		if data == "" && format == "" {
			created, err := config.CreateDefault(path)
			if err != nil {
				return writeFailed(path, err)
			}
			return reportConfigInit(cmd, a, path, created)
		}

		cfg := &config.Config{}
		if exists(path) {
			loaded, err := config.LoadFrom(path)
			if err != nil {
				return configInvalid(err)
			}
			cfg = loaded
		}
		if data != "" {
			cfg.Data = absPath(data)
		}
		if format != "" {
			parsed, err := loader.ParseFormat(format)
			if err != nil {
				return invalidInput(err)
			}
			cfg.Format = string(parsed)
		}

		if err := config.SaveTo(path, cfg); err != nil {
			return writeFailed(path, err)
		}
		return reportConfigInit(cmd, a, path, true)
	}
	return cmd
}

func reportConfigInit(cmd *cobra.Command, a *app, path string, written bool) error {
	if a.jsonOutput {
		return outputSuccess(cmd, map[string]interface{}{
			"path":    path,
			"written": written,
		}, nil)
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintln(out, ui.Successf("Wrote config %s", ui.FilePath(path)))
	} else {
		fmt.Fprintln(out, ui.Infof("Config already exists at %s", ui.FilePath(path)))
	}
	return nil
}

func newConfigPathCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("config_path", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := a.resolvedConfigPath()
		if a.jsonOutput {
			return outputSuccess(cmd, map[string]interface{}{
				"path":   path,
				"exists": exists(path),
			}, nil)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}
	return cmd
}

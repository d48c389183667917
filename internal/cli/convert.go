package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/ui"
)

type writeResult struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	Commands   int    `json:"commands"`
	Parameters int    `json:"parameters"`
	Enums      int    `json:"enums"`
}

func newConvertCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("convert", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		to := strings.TrimSpace(flagString(cmd, "to"))
		if to == "" {
			return invalidInput(errors.New("--to is required"))
		}
		format, err := loader.ParseFormat(flagString(cmd, "to-format"))
		if err != nil {
			return invalidInput(err)
		}

		cat, err := a.catalog(cmd)
		if err != nil {
			return err
		}
		return a.writeCatalog(cmd, format, to, cat)
	}
	return cmd
}

func newSampleCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("sample", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := loader.ParseFormat(flagString(cmd, "to-format"))
		if err != nil {
			return invalidInput(err)
		}

		to := strings.TrimSpace(flagString(cmd, "to"))
		if to == "" {
			// Default to where the other commands will look.
			dataFormat, dataPath, err := a.location()
			if err != nil {
				return err
			}
			to = dataPath
			if format == loader.FormatAuto {
				format = dataFormat
			}
		}

		return a.writeCatalog(cmd, format, to, catalog.Sample())
	}
	return cmd
}

func (a *app) writeCatalog(cmd *cobra.Command, format loader.Format, path string, cat *catalog.Catalog) error {
	if format == loader.FormatAuto {
		format = loader.DetectFormat(path)
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Writing %s catalog...", format))
	spin.Start()
	err := loader.Write(cmd.Context(), format, path, a.fileNames(), cat)
	spin.Stop()
	if err != nil {
		return writeFailed(path, err)
	}

	result := writeResult{
		Path:       absPath(path),
		Format:     string(format),
		Commands:   len(cat.Commands()),
		Parameters: len(cat.Params()),
		Enums:      len(cat.Enums()),
	}
	if a.jsonOutput {
		return outputSuccess(cmd, result, nil)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Wrote %s catalog to %s (%s)",
		result.Format, ui.FilePath(result.Path), ui.Count(result.Commands, "command", "commands")))
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/atomicfile"
	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/docgen"
	"github.com/aidanlsb/cmdref/internal/resolver"
	"github.com/aidanlsb/cmdref/internal/ui"
)

const exportIndexTitle = "Command reference"

type exportResult struct {
	Dir    string   `json:"dir"`
	Format string   `json:"format"`
	Index  string   `json:"index"`
	Pages  []string `json:"pages"`
}

func newExportCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("export", a.complete)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ext, err := pageExtension(flagString(cmd, "as"))
		if err != nil {
			return invalidInput(err)
		}
		dir := flagString(cmd, "to")
		if strings.TrimSpace(dir) == "" {
			return invalidInput(fmt.Errorf("--to must name a directory"))
		}

		cat, err := a.catalog(cmd)
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			names = commandNames(cat)
		}
		resolved, err := resolver.ResolveAll(cat, names)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return writeFailed(dir, err)
		}

		result := exportResult{Dir: absPath(dir), Format: ext}
		progress := ui.NewProgress(cmd.ErrOrStderr(), "Writing pages", len(resolved))
		for _, rc := range resolved {
			name := docgen.FileName(rc.Command, ext)
			if err := writePage(filepath.Join(dir, name), rc.Command, docgen.Markdown(rc), ext); err != nil {
				progress.Done()
				return err
			}
			result.Pages = append(result.Pages, name)
			progress.Increment()
		}
		progress.Done()

		result.Index = "index." + ext
		index := docgen.Index(exportIndexTitle, resolved, ext)
		if err := writePage(filepath.Join(dir, result.Index), exportIndexTitle, index, ext); err != nil {
			return err
		}

		if a.jsonOutput {
			return outputSuccess(cmd, result, &Meta{Count: len(result.Pages)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("Exported %s to %s",
			ui.Count(len(result.Pages), "page", "pages"), ui.FilePath(result.Dir)))
		return nil
	}
	return cmd
}

func pageExtension(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return "md", nil
	case "html", "htm":
		return "html", nil
	default:
		return "", fmt.Errorf("unknown page format %q (want md or html)", format)
	}
}

// commandNames lists each distinct command name once, in catalog order.
func commandNames(cat *catalog.Catalog) []string {
	seen := make(map[string]bool)
	var names []string
	for _, def := range cat.Commands() {
		if seen[def.Command] {
			continue
		}
		seen[def.Command] = true
		names = append(names, def.Command)
	}
	return names
}

func writePage(path, title, markdown, ext string) error {
	data := []byte(markdown)
	if ext == "html" {
		var err error
		data, err = docgen.HTML(title, markdown)
		if err != nil {
			return WrapExitError(ExitFailure, ErrInternal, "", err)
		}
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return writeFailed(path, err)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/catalog"
	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/resolver"
	"github.com/aidanlsb/cmdref/internal/search"
	"github.com/aidanlsb/cmdref/internal/ui"
)

// commandSummary is the JSON form of a catalog row in search and list
// output.
type commandSummary struct {
	Command     string   `json:"command"`
	HexCode     string   `json:"hex_code"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

func newSearchCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("search", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cat, err := a.catalog(cmd)
		if err != nil {
			return err
		}

		query := args[0]
		matches := search.Filter(cat.Commands(), query)

		if a.jsonOutput {
			return outputSuccess(cmd, map[string]interface{}{
				"query":   query,
				"results": summarize(matches),
			}, &Meta{Count: len(matches)})
		}

		out := cmd.OutOrStdout()
		if len(matches) == 0 {
			fmt.Fprintf(out, "No commands found for: %s\n", query)
			return nil
		}

		display := ui.NewDisplayContext(out)
		if display.IsTTY {
			fmt.Fprintf(out, "Found %s for: %s\n\n", ui.Count(len(matches), "command", "commands"), query)
		}
		fmt.Fprint(out, ui.NewCommandTable(display, matches).Render())
		return nil
	}
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("list", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cat, err := a.catalog(cmd)
		if err != nil {
			return err
		}

		all := cat.Commands()
		if a.jsonOutput {
			return outputSuccess(cmd, summarize(all), &Meta{Count: len(all)})
		}

		out := cmd.OutOrStdout()
		if len(all) == 0 {
			fmt.Fprintln(out, "The catalog has no commands.")
			return nil
		}
		fmt.Fprint(out, ui.NewCommandTable(ui.NewDisplayContext(out), all).Render())
		return nil
	}
	return cmd
}

func summarize(defs []catalog.CommandDef) []commandSummary {
	out := make([]commandSummary, len(defs))
	for i, def := range defs {
		out[i] = commandSummary{
			Command:     def.Command,
			HexCode:     def.HexCode,
			Description: def.Description,
			Params:      resolver.ParseParamList(def.Params),
		}
	}
	return out
}

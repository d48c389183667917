package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/browse"
	"github.com/aidanlsb/cmdref/internal/commands"
)

func newBrowseCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("browse", nil)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if a.jsonOutput {
			return invalidInput(errors.New("browse is interactive and does not support --json"))
		}

		cat, err := a.catalog(cmd)
		if err != nil {
			return err
		}

		opts := browse.Options{}
		if len(args) > 0 {
			opts.Query = args[0]
		}
		// bubbletea manages the terminal itself when left on the process
		// streams.
		if in := cmd.InOrStdin(); in != os.Stdin {
			opts.Input = in
		}
		if out := cmd.OutOrStdout(); out != os.Stdout {
			opts.Output = out
		}

		if err := browse.Run(cmd.Context(), cat, opts); err != nil {
			return WrapExitError(ExitFailure, ErrInternal, "", err)
		}
		return nil
	}
	return cmd
}

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/config"
	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/logging"
	"github.com/aidanlsb/cmdref/internal/ui"
)

// app holds the global flags and the per-process session state shared by
// every subcommand.
type app struct {
	// Global flags
	configPath string
	dataPath   string
	format     string
	jsonOutput bool
	verbose    bool

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	loader *loader.Loader
}

// NewRootCommand creates the cmdref command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdref [command]",
		Short: "cmdref - satellite command reference",
		Long: `cmdref looks up satellite commands in a tabular catalog and shows their
hex code, description and parameters, with enumerated parameters expanded
to their value labels.

The catalog is a directory of CSV files (master_commands.csv,
parameter_metadata.csv, enum_definitions.csv), a YAML file or a SQLite file.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return a.complete(commands.CompleteCommands, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args, showOptions{})
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&a.dataPath, "data", "", "Catalog location: CSV directory, YAML file or SQLite file")
	root.PersistentFlags().StringVar(&a.format, "format", "", "Catalog format: auto, csv, yaml or sqlite")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format (for script use)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose diagnostic logging")

	_ = root.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "csv", "yaml", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newShowCommand(a),
		newSearchCommand(a),
		newListCommand(a),
		newBrowseCommand(a),
		newExportCommand(a),
		newConvertCommand(a),
		newSampleCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return invalidInput(err)
	})
	wrapArgErrors(root)

	return root
}

// Execute runs the CLI against the process arguments and streams.
func Execute() error {
	return Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes the CLI with the given arguments and streams. A failed
// command is reported on stdout (--json) or stderr and returned as an
// *ExitError.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	exitErr := classify(err)
	logging.WithComponent("cli").
		WithField("code", exitErr.ErrorCode).
		WithError(err).
		Debug("command failed")
	reportError(stdout, stderr, a.jsonOutput, exitErr)
	return exitErr
}

// setup loads the config file and configures logging and theming.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if !skipsConfig(cmd) {
		if err := a.loadConfig(); err != nil {
			return err
		}
		cfg = a.cfg
	}

	logCfg := cfg.Logging()
	if a.verbose {
		logCfg.Level = "debug"
	}
	logCfg.Stderr = cmd.ErrOrStderr()
	if err := logging.Init(logCfg); err != nil {
		return configInvalid(err)
	}

	ui.ConfigureTheme(cfg.UI.Accent)
	return nil
}

// skipsConfig reports whether cmd runs without reading the config file.
// The config subcommands manage the file themselves.
func skipsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	if parent := cmd.Parent(); parent != nil {
		switch parent.Name() {
		case "config", "completion":
			return true
		}
	}
	return false
}

// wrapArgErrors marks positional argument errors as invalid input.
func wrapArgErrors(cmd *cobra.Command) {
	if validate := cmd.Args; validate != nil {
		cmd.Args = func(c *cobra.Command, args []string) error {
			return invalidInput(validate(c, args))
		}
	}
	for _, sub := range cmd.Commands() {
		wrapArgErrors(sub)
	}
}

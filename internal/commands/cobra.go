package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Completer returns dynamic completions of the given kind.
type Completer func(kind, toComplete string) []string

// GenerateCobraCommand creates a Cobra command from registry metadata:
// Use, Short, Long, Args, flags and shell completion. The caller sets RunE.
// Returns nil for unknown names.
func GenerateCobraCommand(name string, complete Completer) *cobra.Command {
	meta, ok := Registry[name]
	if !ok {
		return nil
	}

	// Nested commands are registered as "parent_child"; Use is the leaf.
	use := name
	if i := strings.LastIndex(name, "_"); i >= 0 {
		use = name[i+1:]
	}
	for _, arg := range meta.Args {
		switch {
		case arg.Variadic:
			use += fmt.Sprintf(" [%s...]", arg.Name)
		case arg.Required:
			use += fmt.Sprintf(" <%s>", arg.Name)
		default:
			use += fmt.Sprintf(" [%s]", arg.Name)
		}
	}

	longDesc := meta.Description
	if meta.LongDesc != "" {
		longDesc = meta.LongDesc
	}
	if len(meta.Examples) > 0 {
		longDesc += "\n\nExamples:\n"
		for _, ex := range meta.Examples {
			longDesc += "  " + ex + "\n"
		}
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: meta.Description,
		Long:  longDesc,
		Args:  argsValidator(meta.Args),
	}

	for _, flag := range meta.Flags {
		addFlag(cmd.Flags(), flag)
		if len(flag.Examples) > 0 {
			values := flag.Examples
			_ = cmd.RegisterFlagCompletionFunc(flag.Name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return values, cobra.ShellCompDirectiveNoFileComp
			})
		}
	}

	if len(meta.Args) > 0 {
		cmd.ValidArgsFunction = generateCompletionFunc(meta.Args, complete)
	}

	return cmd
}

func addFlag(fs *pflag.FlagSet, flag FlagMeta) {
	switch flag.Type {
	case FlagTypeBool:
		fs.BoolP(flag.Name, flag.Short, flag.Default == "true", flag.Description)
	case FlagTypeInt:
		n, _ := strconv.Atoi(flag.Default)
		fs.IntP(flag.Name, flag.Short, n, flag.Description)
	default:
		fs.StringP(flag.Name, flag.Short, flag.Default, flag.Description)
	}
}

func argsValidator(args []ArgMeta) cobra.PositionalArgs {
	minArgs := 0
	for _, arg := range args {
		if arg.Required {
			minArgs++
		}
		if arg.Variadic {
			return cobra.MinimumNArgs(minArgs)
		}
	}
	maxArgs := len(args)

	switch {
	case minArgs == maxArgs && minArgs == 0:
		return cobra.NoArgs
	case minArgs == maxArgs:
		return cobra.ExactArgs(minArgs)
	default:
		return cobra.RangeArgs(minArgs, maxArgs)
	}
}

// generateCompletionFunc creates a shell completion function based on arg metadata.
func generateCompletionFunc(args []ArgMeta, complete Completer) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, completedArgs []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		argIndex := len(completedArgs)
		if argIndex >= len(args) {
			last := args[len(args)-1]
			if !last.Variadic {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			argIndex = len(args) - 1
		}

		arg := args[argIndex]

		if len(arg.Completions) > 0 {
			var matches []string
			for _, c := range arg.Completions {
				if strings.HasPrefix(c, toComplete) {
					matches = append(matches, c)
				}
			}
			return matches, cobra.ShellCompDirectiveNoFileComp
		}

		switch arg.DynamicComp {
		case CompleteCommands:
			if complete == nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return complete(arg.DynamicComp, toComplete), cobra.ShellCompDirectiveNoFileComp
		case CompleteFiles:
			return nil, cobra.ShellCompDirectiveDefault
		}

		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

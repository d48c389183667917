package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/commands"
	"github.com/aidanlsb/cmdref/internal/docgen"
	"github.com/aidanlsb/cmdref/internal/logging"
	"github.com/aidanlsb/cmdref/internal/resolver"
	"github.com/aidanlsb/cmdref/internal/ui"
)

const promptCommandName = "Enter command name: "

type showOptions struct {
	Markdown bool
	Hints    bool
}

func newShowCommand(a *app) *cobra.Command {
	cmd := commands.GenerateCobraCommand("show", a.complete)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runShow(cmd, args, showOptions{
			Markdown: flagBool(cmd, "markdown"),
			Hints:    flagBool(cmd, "hints"),
		})
	}
	return cmd
}

func (a *app) runShow(cmd *cobra.Command, args []string, opts showOptions) error {
	cat, err := a.catalog(cmd)
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		if a.jsonOutput {
			return invalidInput(errors.New("a command name is required with --json"))
		}
		name, err = promptForCommand(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return invalidInput(err)
		}
	}

	rc, err := resolver.Resolve(cat, name)
	if err != nil {
		return err
	}

	if a.jsonOutput {
		return outputSuccessWithWarnings(cmd, rc, resolveWarnings(rc), nil)
	}

	out := cmd.OutOrStdout()
	display := ui.NewDisplayContext(out)

	if opts.Markdown {
		page := docgen.Markdown(rc)
		if display.IsTTY {
			rendered, err := ui.RenderMarkdown(page, display.AvailableWidth(ui.MarkdownRenderMargin))
			if err != nil {
				logging.WithComponent("cli").WithError(err).Debug("markdown render failed, printing source")
			} else {
				page = rendered
			}
		}
		fmt.Fprint(out, page)
		return nil
	}

	fmt.Fprint(out, ui.RenderCommand(rc, ui.RenderOptions{
		Styled: display.IsTTY,
		Hints:  opts.Hints,
	}))
	return nil
}

// promptForCommand reads one line from in. Surrounding whitespace is
// dropped; the name itself is matched exactly.
func promptForCommand(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, promptCommandName)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read command name: %w", err)
	}

	name := strings.TrimSpace(line)
	if name == "" {
		return "", errors.New("no command name given")
	}
	return name, nil
}

// resolveWarnings lists the degraded parameters of rc.
func resolveWarnings(rc *resolver.ResolvedCommand) []Warning {
	var warnings []Warning
	for _, p := range rc.Parameters {
		switch {
		case p.IsUnknown():
			warnings = append(warnings, Warning{
				Code:    WarnUnknownParameter,
				Message: fmt.Sprintf("parameter %q has no metadata", p.Name),
				Ref:     p.Name,
			})
		case p.Type == resolver.EnumTypeName && !p.IsEnum():
			warnings = append(warnings, Warning{
				Code:    WarnEmptyEnum,
				Message: fmt.Sprintf("enum parameter %q has no value labels", p.Name),
				Ref:     p.Name,
			})
		}
	}
	return warnings
}

package ui

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/cmdref/internal/resolver"
)

// RenderOptions controls RenderCommand.
type RenderOptions struct {
	// Styled applies lipgloss styles. Leave false for pipes and files.
	Styled bool

	// Hints adds the entry hint under each non-enum parameter.
	Hints bool
}

// RenderCommand formats a resolved command for the terminal:
//
//	Command: CMD_SET_MODE
//	Hex Code: 0xB104
//	Description: Sets mode
//
//	Parameters:
//	  - Mode (enum)
//	    0: SAFE
//	    1: LIVE
func RenderCommand(rc *resolver.ResolvedCommand, opts RenderOptions) string {
	label := func(s string) string { return s }
	name := label
	muted := label
	if opts.Styled {
		label = func(s string) string { return Bold.Render(s) }
		name = func(s string) string { return AccentBold.Render(s) }
		muted = func(s string) string { return Muted.Render(s) }
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", label("Command:"), name(rc.Command))
	fmt.Fprintf(&sb, "%s %s\n", label("Hex Code:"), rc.HexCode)
	fmt.Fprintf(&sb, "%s %s\n", label("Description:"), rc.Description)

	if len(rc.Parameters) == 0 {
		fmt.Fprintf(&sb, "\n%s %s\n", label("Parameters:"), muted("none"))
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n%s\n", label("Parameters:"))
	for _, p := range rc.Parameters {
		fmt.Fprintf(&sb, "  - %s %s\n", name(p.Name), muted("("+p.Type+")"))
		if p.Range != nil {
			fmt.Fprintf(&sb, "    %s %s\n", muted("range:"), *p.Range)
		}
		for _, v := range p.EnumValues {
			fmt.Fprintf(&sb, "    %s: %s\n", v.Key(), v.Label)
		}
		if opts.Hints && !p.IsEnum() {
			fmt.Fprintf(&sb, "    %s\n", muted(p.InputHint()))
		}
	}
	return sb.String()
}

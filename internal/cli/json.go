package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/cmdref/internal/ui"
)

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count"`
}

func writeJSON(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// outputSuccess writes a successful JSON response to the command's stdout.
func outputSuccess(cmd *cobra.Command, data interface{}, meta *Meta) error {
	return outputSuccessWithWarnings(cmd, data, nil, meta)
}

func outputSuccessWithWarnings(cmd *cobra.Command, data interface{}, warnings []Warning, meta *Meta) error {
	return writeJSON(cmd.OutOrStdout(), Response{
		OK:       true,
		Data:     data,
		Warnings: warnings,
		Meta:     meta,
	})
}

// reportError prints a failed command's error. In JSON mode the error
// envelope goes to stdout; otherwise a message goes to stderr.
func reportError(stdout, stderr io.Writer, jsonMode bool, e *ExitError) {
	if jsonMode {
		_ = writeJSON(stdout, Response{
			OK: false,
			Error: &ErrorInfo{
				Code:       e.ErrorCode,
				Message:    e.Error(),
				Details:    errorDetails(e),
				Suggestion: e.Suggestion,
			},
		})
		return
	}

	fmt.Fprintln(stderr, ui.Error(e.Error()))
	if e.Suggestion != "" {
		fmt.Fprintln(stderr, ui.Hint(e.Suggestion))
	}
}

// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/aidanlsb/cmdref/internal/loader"
	"github.com/aidanlsb/cmdref/internal/resolver"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Catalog errors
	ErrStorageNotFound = "STORAGE_NOT_FOUND"
	ErrSchemaMismatch  = "SCHEMA_MISMATCH"

	// Lookup errors
	ErrCommandNotFound = "COMMAND_NOT_FOUND"

	// Input errors
	ErrInvalidInput  = "INVALID_INPUT"
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnUnknownParameter = "UNKNOWN_PARAMETER"
	WarnEmptyEnum        = "EMPTY_ENUM"
)

// Exit codes.
const (
	ExitSuccess   = 0
	ExitFailure   = 1 // command not found, bad input, write failures
	ExitLoadError = 2 // the catalog could not be loaded
)

const suggestSample = "Run 'cmdref sample' to generate sample data, or point --data at your catalog"

// ExitError carries the exit status and the stable error code of a failed
// command.
type ExitError struct {
	Code       int    // process exit status
	ErrorCode  string // stable code for --json output
	Message    string // optional context prepended to Err
	Suggestion string
	Err        error
}

func (e *ExitError) Error() string {
	switch {
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without an underlying error.
func NewExitError(code int, errorCode, message string) *ExitError {
	return &ExitError{Code: code, ErrorCode: errorCode, Message: message}
}

// WrapExitError wraps err with an exit status and error code.
func WrapExitError(code int, errorCode, message string, err error) *ExitError {
	return &ExitError{Code: code, ErrorCode: errorCode, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps an error returned by a command to its exit status and code.
func classify(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	switch {
	case errors.Is(err, resolver.ErrCommandNotFound):
		return WrapExitError(ExitFailure, ErrCommandNotFound, "", err)
	case errors.Is(err, loader.ErrStorageNotFound):
		e := WrapExitError(ExitLoadError, ErrStorageNotFound, "", err)
		e.Suggestion = suggestSample
		return e
	case errors.Is(err, loader.ErrSchemaMismatch):
		return WrapExitError(ExitLoadError, ErrSchemaMismatch, "", err)
	default:
		return WrapExitError(ExitFailure, ErrInternal, "", err)
	}
}

// errorDetails exposes the relation or command behind an error.
func errorDetails(e *ExitError) interface{} {
	var tableErr *loader.TableError
	if errors.As(e, &tableErr) {
		return map[string]string{
			"table": string(tableErr.Table),
			"path":  tableErr.Path,
		}
	}
	var notFound *resolver.NotFoundError
	if errors.As(e, &notFound) {
		return map[string]string{"command": notFound.Command}
	}
	return nil
}

func invalidInput(err error) error {
	if err == nil {
		return nil
	}
	return WrapExitError(ExitFailure, ErrInvalidInput, "", err)
}

func configInvalid(err error) error {
	return WrapExitError(ExitLoadError, ErrConfigInvalid, "", err)
}

func writeFailed(path string, err error) error {
	return WrapExitError(ExitFailure, ErrFileWriteError, fmt.Sprintf("failed to write %s", path), err)
}

package ui

import "fmt"

// Symbols that prefix one-line status messages.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolInfo    = "ℹ"
)

func status(symbol, msg string) string {
	return symbol + " " + msg
}

// Success marks a completed write, e.g. "✓ Wrote csv catalog to ...".
func Success(msg string) string { return status(SymbolSuccess, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...any) string { return Success(fmt.Sprintf(format, args...)) }

// Error marks a failed command on stderr.
func Error(msg string) string { return status(SymbolError, msg) }

// Info marks a note that needs no action.
func Info(msg string) string { return status(SymbolInfo, msg) }

// Infof is Info with formatting.
func Infof(format string, args ...any) string { return Info(fmt.Sprintf(format, args...)) }

// FilePath styles a path written or read by a command.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint styles secondary text such as suggestions.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns "1 command" or "3 commands".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

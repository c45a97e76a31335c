package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/progresio/internal/logger"
)

// Hint is an error that carries a suggestion for the user, e.g. which
// command fixes the problem.
type Hint struct {
	Err        error
	Suggestion string
}

func (h *Hint) Error() string {
	return h.Err.Error()
}

func (h *Hint) Unwrap() error {
	return h.Err
}

// WithHint attaches a suggestion to err. A nil err stays nil.
func WithHint(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &Hint{Err: err, Suggestion: suggestion}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	var h *Hint
	if errors.As(err, &h) && h.Suggestion != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, h.Suggestion)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

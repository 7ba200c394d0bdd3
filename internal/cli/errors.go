// Package cli provides user-facing error types.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// PreflightError is an error with guidance on how to fix it.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	return e.Message
}

// FormatError renders err for the terminal, including hints when present.
func FormatError(out io.Writer, err error) {
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(out, "Error: %s\n", preflight.Message)
	if hint := strings.TrimSpace(preflight.Hint); hint != "" {
		fmt.Fprintf(out, "Hint: %s\n", hint)
	}
	if next := strings.TrimSpace(preflight.NextStep); next != "" {
		fmt.Fprintf(out, "Next: %s\n", next)
	}
}

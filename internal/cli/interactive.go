// Package cli provides helpers for interactive mode detection and prompts.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IsNonInteractive reports whether prompts should be skipped and defaults used.
func IsNonInteractive() bool {
	if nonInteractive {
		return true
	}
	if _, ok := os.LookupEnv("SCHEMER_NON_INTERACTIVE"); ok {
		return true
	}
	return !hasTTY()
}

// IsInteractive reports whether the session can prompt for user input.
func IsInteractive() bool {
	return !IsNonInteractive()
}

// confirm asks a yes/no question on stderr. Non-interactive sessions
// answer with the default.
func confirm(prompt string, defaultYes bool) bool {
	if IsNonInteractive() {
		return defaultYes
	}
	return readConfirmation(os.Stdin, os.Stderr, prompt, defaultYes)
}

func readConfirmation(in io.Reader, out io.Writer, prompt string, defaultYes bool) bool {
	choices := "[y/N]"
	if defaultYes {
		choices = "[Y/n]"
	}
	fmt.Fprintf(out, "%s %s: ", prompt, choices)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return defaultYes
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

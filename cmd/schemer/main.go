// Command schemer edits color schemes for the code preview.
package main

import (
	"os"

	"github.com/opencode-ai/schemer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

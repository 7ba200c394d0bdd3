// Package cli provides TUI launch commands.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opencode-ai/schemer/internal/editor"
	"github.com/opencode-ai/schemer/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the scheme editor TUI",
	Long: `Launch the interactive scheme editor.

Edits are saved as you commit them. Changing a built-in scheme creates a
custom copy first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if IsNonInteractive() || !hasTTY() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use CLI subcommands",
			NextStep: "schemer --help",
		}
	}

	closer, err := initFileLogging()
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	language, err := a.settings.Language(ctx)
	if err != nil {
		language = a.config.Editor.DefaultLanguage
	}

	return tui.Run(tui.Config{
		Session:     a.session,
		Languages:   a.languages,
		Highlighter: a.highlighter,
		Resolver:    a.resolver,
		Settings:    a.settings,
		Warnings:    a.drainWarnings,
		Language:    language,
		Theme:       a.config.TUI.Theme,
	})
}

// drainWarnings hands pending warnings to the TUI, which shows them itself.
func (a *app) drainWarnings() []editor.Warning {
	warnings := a.warnings
	a.warnings = nil
	return warnings
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

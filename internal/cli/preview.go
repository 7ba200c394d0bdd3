// Package cli provides preview commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/preview"
)

var (
	previewLanguage string
	previewScheme   string
)

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.AddCommand(previewLoadCmd)

	previewCmd.PersistentFlags().StringVarP(&previewLanguage, "language", "l", "", "language alias (default: last used)")
	previewCmd.Flags().StringVarP(&previewScheme, "scheme", "s", "", "scheme to preview (default: active scheme)")
}

// PreviewResult is the payload returned by `schemer preview --json`.
type PreviewResult struct {
	Scheme   string         `json:"scheme"`
	Language string         `json:"language"`
	Source   preview.Source `json:"source"`
	Spans    []preview.Span `json:"spans"`
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the preview document highlighted with a scheme",
	Long: `Print the preview document for a language highlighted with a scheme.

The document is the stored copy for the language, else one fetched from
preview.base_url, else the built-in sample.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		scheme, err := a.lookup(previewScheme)
		if err != nil {
			return err
		}
		a.highlighter.Apply(scheme)

		alias, err := a.previewLanguage(ctx, previewLanguage)
		if err != nil {
			return err
		}

		step := startProgress("Loading preview")
		doc, err := a.resolver.Resolve(ctx, "cli", alias)
		if err != nil {
			step.Fail(err)
			return err
		}
		step.Done()

		if IsJSONOutput() || IsJSONLOutput() {
			spans, err := a.highlighter.Spans(alias, doc.Text)
			if err != nil {
				return err
			}
			return WriteOutput(os.Stdout, PreviewResult{
				Scheme:   scheme.Name,
				Language: alias,
				Source:   doc.Source,
				Spans:    spans,
			})
		}

		if doc.Text == "" {
			fmt.Fprintf(os.Stderr, "No preview document for %s.\n", alias)
			return nil
		}
		if !colorEnabled() {
			fmt.Fprint(os.Stdout, doc.Text)
			return nil
		}
		rendered, err := a.highlighter.Render(alias, doc.Text)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	},
}

var previewLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Store a file as the preview document for a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		alias, err := a.previewLanguage(ctx, previewLanguage)
		if err != nil {
			return err
		}
		if err := a.settings.SetPreview(ctx, alias, string(data)); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{"language": alias, "bytes": len(data)})
		}
		fmt.Fprintf(os.Stdout, "Stored %s as the %s preview\n", args[0], alias)
		return nil
	},
}

// previewLanguage validates an explicit alias or returns the stored one.
func (a *app) previewLanguage(ctx context.Context, explicit string) (string, error) {
	alias := strings.TrimSpace(explicit)
	if alias == "" {
		stored, err := a.settings.Language(ctx)
		if err != nil {
			return "", err
		}
		alias = stored
	}
	if _, err := a.languages.Lookup(alias); err != nil {
		return "", &PreflightError{
			Message:  err.Error(),
			Hint:     "Any chroma lexer alias works; built-in samples exist for the listed languages",
			NextStep: "schemer languages",
		}
	}
	return alias, nil
}

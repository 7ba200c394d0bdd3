// Package cli provides scheme export and import commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/schemes"
)

var (
	exportFormat string
	exportOutput string
	importFormat string
)

func init() {
	schemesCmd.AddCommand(schemesExportCmd)
	schemesCmd.AddCommand(schemesImportCmd)

	schemesExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format (json, yaml; default: from --output extension, else json)")
	schemesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	schemesImportCmd.Flags().StringVarP(&importFormat, "format", "f", "", "input format (json, yaml; default: from file extension)")
}

var schemesExportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Export a scheme",
	Long:  "Write a scheme as JSON or YAML. Defaults to the active scheme.",
	Example: `  schemer schemes export > darcula.json
  schemer schemes export "Darcula 1" -o mine.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		scheme, err := a.lookup(firstArg(args))
		if err != nil {
			return err
		}

		format, err := resolveSchemeFormat(exportFormat, exportOutput)
		if err != nil {
			return err
		}
		data, err := encodeScheme(scheme, format)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %s to %s\n", scheme.Name, exportOutput)
		return nil
	},
}

var schemesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a scheme",
	Long: `Add a scheme from a JSON or YAML file as a new custom scheme.

Unknown roles are dropped and missing ones are left unset. If the name is
taken, a numeric suffix is added. The active scheme does not change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		format, err := resolveSchemeFormat(importFormat, path)
		if err != nil {
			return err
		}
		scheme, err := decodeScheme(data, format)
		if err != nil {
			return &PreflightError{
				Message:  fmt.Sprintf("%s is not a valid scheme: %v", path, err),
				Hint:     "Export an existing scheme to see the expected format",
				NextStep: "schemer schemes export",
			}
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		imported, err := a.session.Import(ctx, scheme)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, imported)
		}
		if imported.Name != scheme.Name {
			fmt.Fprintf(os.Stdout, "Imported %s as %s\n", scheme.Name, imported.Name)
			return nil
		}
		fmt.Fprintf(os.Stdout, "Imported %s\n", imported.Name)
		return nil
	},
}

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// resolveSchemeFormat picks the explicit format, else one inferred from
// path, else JSON.
func resolveSchemeFormat(explicit, path string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("invalid format %q (use json or yaml)", explicit)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return formatJSON, nil
	}
}

func encodeScheme(scheme *models.Scheme, format string) ([]byte, error) {
	if format == formatYAML {
		return schemes.EncodeYAML(scheme)
	}
	data, err := schemes.EncodeIndent(scheme)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeScheme(data []byte, format string) (*models.Scheme, error) {
	if format == formatYAML {
		return schemes.DecodeYAML(data)
	}
	return schemes.Decode(data)
}

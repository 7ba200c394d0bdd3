// Package cli provides scheme management commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/editor"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/schemes"
)

var (
	schemesListKind  string
	schemesShowRoles string
	schemesTarget    string
	schemesRemoveYes bool
)

func init() {
	rootCmd.AddCommand(schemesCmd)
	schemesCmd.AddCommand(schemesListCmd)
	schemesCmd.AddCommand(schemesShowCmd)
	schemesCmd.AddCommand(schemesUseCmd)
	schemesCmd.AddCommand(schemesSetCmd)
	schemesCmd.AddCommand(schemesRenameCmd)
	schemesCmd.AddCommand(schemesDuplicateCmd)
	schemesCmd.AddCommand(schemesRemoveCmd)

	schemesListCmd.Flags().StringVar(&schemesListKind, "kind", "", "filter by kind (builtin, custom)")
	schemesShowCmd.Flags().StringVar(&schemesShowRoles, "namespace", "", "only show one namespace (editor, syntax)")

	for _, cmd := range []*cobra.Command{schemesSetCmd, schemesRenameCmd, schemesDuplicateCmd} {
		cmd.Flags().StringVarP(&schemesTarget, "scheme", "s", "", "scheme to edit (default: active scheme)")
	}
	schemesRemoveCmd.Flags().BoolVarP(&schemesRemoveYes, "yes", "y", false, "skip confirmation")
}

var schemesCmd = &cobra.Command{
	Use:     "schemes",
	Aliases: []string{"scheme"},
	Short:   "Manage color schemes",
	Long: `Manage color schemes.

Built-in schemes ship with schemer and never change. Editing or renaming a
built-in scheme creates a custom copy named "<name> N" and edits that instead.`,
}

// SchemeSummary is the list entry returned by `schemer schemes list`.
type SchemeSummary struct {
	Name    string `json:"name"`
	BuiltIn bool   `json:"builtIn"`
	Active  bool   `json:"active"`
	Set     int    `json:"set"`
	Total   int    `json:"total"`
}

var schemesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schemes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var list []*models.Scheme
		switch strings.ToLower(strings.TrimSpace(schemesListKind)) {
		case "":
			list = a.registry.ListSorted()
		case "builtin", "built-in":
			list = a.registry.Builtins()
		case "custom":
			list = a.registry.Customs()
		default:
			return fmt.Errorf("invalid --kind %q (use builtin or custom)", schemesListKind)
		}

		active := a.session.Active()
		summaries := make([]SchemeSummary, 0, len(list))
		for _, scheme := range list {
			set, total := countSetColors(scheme)
			summaries = append(summaries, SchemeSummary{
				Name:    scheme.Name,
				BuiltIn: scheme.BuiltIn,
				Active:  scheme == active,
				Set:     set,
				Total:   total,
			})
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, summaries)
		}

		if len(list) == 0 {
			fmt.Fprintln(os.Stdout, "No schemes found.")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for i, scheme := range list {
			rows = append(rows, []string{
				formatActiveMarker(summaries[i].Active),
				scheme.Name,
				formatSchemeKind(scheme),
				fmt.Sprintf("%d/%d", summaries[i].Set, summaries[i].Total),
			})
		}
		return writeTable(os.Stdout, []string{"", "NAME", "KIND", "COLORS"}, rows)
	},
}

var schemesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a scheme's colors",
	Long:  "Show every role and category of a scheme. Defaults to the active scheme.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		scheme, err := a.lookup(name)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, scheme)
		}

		namespace := models.Namespace(strings.ToLower(strings.TrimSpace(schemesShowRoles)))
		rows := make([][]string, 0, len(models.EditorRoles)+len(models.SyntaxCategories))
		if namespace == "" || namespace == models.NamespaceEditor {
			for _, role := range models.EditorRoles {
				rows = append(rows, []string{string(models.NamespaceEditor), role, models.CategoryLabel(role), formatColor(scheme.Editor[role])})
			}
		}
		if namespace == "" || namespace == models.NamespaceSyntax {
			for _, category := range models.SyntaxCategories {
				rows = append(rows, []string{string(models.NamespaceSyntax), category, models.CategoryLabel(category), formatColor(scheme.Syntax[category])})
			}
		}
		if len(rows) == 0 {
			return fmt.Errorf("invalid --namespace %q (use editor or syntax)", schemesShowRoles)
		}

		fmt.Fprintf(os.Stdout, "%s (%s)\n\n", scheme.Name, formatSchemeKind(scheme))
		return writeTable(os.Stdout, []string{"NAMESPACE", "ROLE", "LABEL", "COLOR"}, rows)
	},
}

var schemesUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a scheme active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.activate(ctx, args[0]); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, a.session.Active())
		}
		fmt.Fprintf(os.Stdout, "Active scheme: %s\n", a.session.Active().Name)
		return nil
	},
}

// ColorChange is the result returned by `schemer schemes set`.
type ColorChange struct {
	Scheme  string       `json:"scheme"`
	Forked  bool         `json:"forked"`
	Role    string       `json:"role"`
	Color   models.Color `json:"color"`
	Changed bool         `json:"changed"`
}

var schemesSetCmd = &cobra.Command{
	Use:   "set <role> <color>",
	Short: "Set a role's color",
	Long: `Set the color of an editor role or syntax category.

Colors are hex values with or without a leading '#'. An empty value clears
the color. Editing a built-in scheme forks it into a custom copy first.`,
	Example: `  schemer schemes set keyword cc7832
  schemer schemes set background "#2b2b2b" --scheme "Darcula 1"
  schemer schemes set comment ""`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.activate(ctx, schemesTarget); err != nil {
			return err
		}

		role := args[0]
		before := a.session.Active()
		changed, err := a.session.SetColor(ctx, role, args[1])
		if err != nil {
			if errors.Is(err, models.ErrUnknownRole) {
				return &PreflightError{
					Message:  err.Error(),
					Hint:     "Roles are editor roles (background, selection, caret) or syntax categories",
					NextStep: "schemer schemes show --namespace syntax",
				}
			}
			return err
		}

		after := a.session.Active()
		color, _ := after.ColorFor(role)
		result := ColorChange{
			Scheme:  after.Name,
			Forked:  before != after,
			Role:    role,
			Color:   color,
			Changed: changed,
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, result)
		}
		if !changed {
			fmt.Fprintf(os.Stdout, "%s is already %s in %s\n", role, formatColor(color), after.Name)
			return nil
		}
		if result.Forked {
			fmt.Fprintf(os.Stdout, "Forked %s into %s\n", before.Name, after.Name)
		}
		fmt.Fprintf(os.Stdout, "%s: %s = %s\n", after.Name, role, formatColor(color))
		return nil
	},
}

var schemesRenameCmd = &cobra.Command{
	Use:   "rename <new-name>",
	Short: "Rename a scheme",
	Long: `Rename a scheme. Renaming a built-in scheme renames a custom copy of it.
If the name is taken, a numeric suffix is added.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.activate(ctx, schemesTarget); err != nil {
			return err
		}

		oldName := a.session.Active().Name
		name, err := a.session.Rename(ctx, args[0])
		if err != nil {
			if errors.Is(err, editor.ErrNameRequired) {
				return &PreflightError{
					Message:  "scheme name cannot be blank",
					NextStep: fmt.Sprintf("schemer schemes rename %q", oldName+" copy"),
				}
			}
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]string{"old_name": oldName, "name": name})
		}
		fmt.Fprintf(os.Stdout, "Renamed %s to %s\n", oldName, name)
		return nil
	},
}

var schemesDuplicateCmd = &cobra.Command{
	Use:   "duplicate",
	Short: "Copy a scheme",
	Long:  "Copy a scheme into a new custom scheme and make the copy active.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.activate(ctx, schemesTarget); err != nil {
			return err
		}

		source := a.session.Active().Name
		copied, err := a.session.Duplicate(ctx)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, copied)
		}
		fmt.Fprintf(os.Stdout, "Duplicated %s as %s\n", source, copied.Name)
		return nil
	},
}

var schemesRemoveCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	Short:   "Remove a custom scheme",
	Long:    "Remove a custom scheme. Defaults to the active scheme. Built-in schemes cannot be removed.",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		target, err := a.lookup(firstArg(args))
		if err != nil {
			return err
		}
		if target.BuiltIn {
			return &PreflightError{
				Message:  fmt.Sprintf("%q is a built-in scheme and cannot be removed", target.Name),
				Hint:     "Only custom schemes can be removed",
				NextStep: "schemer schemes list --kind custom",
			}
		}

		if !schemesRemoveYes && !confirm(fmt.Sprintf("Remove scheme %q?", target.Name), false) {
			if IsNonInteractive() {
				return fmt.Errorf("refusing to remove %q without --yes in non-interactive mode", target.Name)
			}
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}

		name := target.Name
		if err := a.session.RemoveByName(ctx, name); err != nil {
			if errors.Is(err, schemes.ErrBuiltInScheme) {
				return fmt.Errorf("%q is a built-in scheme", name)
			}
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]string{"removed": name, "active": a.session.Active().Name})
		}
		fmt.Fprintf(os.Stdout, "Removed %s (active: %s)\n", name, a.session.Active().Name)
		return nil
	},
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

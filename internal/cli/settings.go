// Package cli provides settings commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/opencode-ai/schemer/internal/settings"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change last-used settings",
	Long: `Show or change last-used settings.

Keys: font, fontSize, language, scheme. Unset keys report their configured default.`,
}

func openSettings() (*settings.Store, *db.DB, error) {
	database, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}
	cfg := GetConfig()
	return settings.NewStore(db.NewKVRepository(database), cfg.Editor), database, nil
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, database, err := openSettings()
		if err != nil {
			return err
		}
		defer database.Close()

		if len(args) == 1 {
			value, err := store.Get(ctx, args[0])
			if err != nil {
				return settingsError(err)
			}
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, map[string]string{args[0]: value})
			}
			fmt.Fprintln(os.Stdout, value)
			return nil
		}

		all, err := store.All(ctx)
		if err != nil {
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, all)
		}

		rows := make([][]string, 0, len(models.SettingKeys))
		for _, key := range models.SettingKeys {
			rows = append(rows, []string{key, all[key]})
		}
		return writeTable(os.Stdout, []string{"KEY", "VALUE"}, rows)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Example: `  schemer settings set fontSize 16
  schemer settings set language go`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, database, err := openSettings()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := store.Set(ctx, args[0], args[1]); err != nil {
			return settingsError(err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]string{args[0]: args[1]})
		}
		fmt.Fprintf(os.Stdout, "%s = %s\n", args[0], args[1])
		return nil
	},
}

func settingsError(err error) error {
	switch {
	case errors.Is(err, settings.ErrUnknownSetting):
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Valid keys: font, fontSize, language, scheme",
			NextStep: "schemer settings get",
		}
	case errors.Is(err, settings.ErrInvalidFontSize):
		return &PreflightError{
			Message:  err.Error(),
			NextStep: "schemer settings set fontSize 14",
		}
	default:
		return err
	}
}

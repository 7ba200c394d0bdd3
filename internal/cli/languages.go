// Package cli provides preview language commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/preview"
	"github.com/opencode-ai/schemer/internal/settings"
)

func init() {
	rootCmd.AddCommand(languagesCmd)
}

// LanguageInfo is the list entry returned by `schemer languages`.
type LanguageInfo struct {
	Alias       string `json:"alias"`
	Name        string `json:"name"`
	SampleLines int    `json:"sample_lines"`
	Stored      bool   `json:"stored"`
	Active      bool   `json:"active"`
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List preview languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		languages, err := preview.NewLanguages()
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		store := settings.NewStore(db.NewKVRepository(database), GetConfig().Editor)
		current, err := store.Language(ctx)
		if err != nil {
			return err
		}

		infos := make([]LanguageInfo, 0)
		for _, lang := range languages.List() {
			_, stored, err := store.Preview(ctx, lang.Alias)
			if err != nil {
				return err
			}
			infos = append(infos, LanguageInfo{
				Alias:       lang.Alias,
				Name:        lang.Name,
				SampleLines: strings.Count(lang.Sample, "\n"),
				Stored:      stored,
				Active:      lang.Alias == current,
			})
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, infos)
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{
				formatActiveMarker(info.Active),
				info.Alias,
				info.Name,
				fmt.Sprintf("%d", info.SampleLines),
				formatYesNo(info.Stored),
			})
		}
		return writeTable(os.Stdout, []string{"", "ALIAS", "NAME", "SAMPLE LINES", "STORED"}, rows)
	},
}

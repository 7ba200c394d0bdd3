// Package cli provides the scheme history command.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/models"
)

var (
	historyLimit  int
	historyScheme string
	historyType   string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of events")
	historyCmd.Flags().StringVarP(&historyScheme, "scheme", "s", "", "only show events for this scheme")
	historyCmd.Flags().StringVarP(&historyType, "type", "t", "", "only show events of this type (e.g. scheme.renamed)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scheme changes",
	Long:  "Show forks, renames, removals, imports, color edits, and storage warnings, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		filter, err := historyFilter(historyScheme, historyType, historyLimit)
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		events, err := db.NewEventRepository(database).History(ctx, filter)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, events)
		}
		if len(events) == 0 {
			fmt.Fprintln(os.Stdout, "No history yet.")
			return nil
		}

		now := time.Now()
		rows := make([][]string, 0, len(events))
		for _, event := range events {
			rows = append(rows, []string{
				humanize.RelTime(event.Timestamp, now, "ago", "from now"),
				string(event.Type),
				event.EntityID,
				describeEvent(event),
			})
		}
		return writeTable(os.Stdout, []string{"WHEN", "EVENT", "SCHEME", "DETAILS"}, rows)
	},
}

// historyFilter validates the history flags.
func historyFilter(scheme, eventType string, limit int) (db.HistoryFilter, error) {
	if limit <= 0 {
		return db.HistoryFilter{}, fmt.Errorf("--limit must be positive")
	}
	filter := db.HistoryFilter{
		Scheme: strings.TrimSpace(scheme),
		Limit:  limit,
	}
	if eventType = strings.TrimSpace(eventType); eventType != "" {
		if !slices.Contains(models.EventTypes, models.EventType(eventType)) {
			names := make([]string, 0, len(models.EventTypes))
			for _, known := range models.EventTypes {
				names = append(names, string(known))
			}
			return db.HistoryFilter{}, &PreflightError{
				Message:  fmt.Sprintf("unknown event type %q", eventType),
				Hint:     "Known types: " + strings.Join(names, ", "),
				NextStep: "schemer history --type scheme.renamed",
			}
		}
		filter.Type = models.EventType(eventType)
	}
	return filter, nil
}

func describeEvent(event *models.Event) string {
	switch event.Type {
	case models.EventTypeSchemeForked, models.EventTypeSchemeDuplicated:
		var payload models.SchemeForkedPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			return "from " + payload.Source
		}
	case models.EventTypeSchemeRenamed:
		var payload models.SchemeRenamedPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			detail := fmt.Sprintf("%s -> %s", payload.OldName, payload.NewName)
			if payload.Requested != "" {
				detail += fmt.Sprintf(" (asked for %q)", payload.Requested)
			}
			return detail
		}
	case models.EventTypeSchemeColorChanged:
		var payload models.ColorChangedPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			return fmt.Sprintf("%s: %s -> %s", payload.Role, colorOrDash(payload.OldColor), colorOrDash(payload.NewColor))
		}
	case models.EventTypeWarning:
		var payload models.WarningPayload
		if json.Unmarshal(event.Payload, &payload) == nil {
			return strings.TrimSpace(payload.Warning + ": " + payload.Context)
		}
	}
	return ""
}

func colorOrDash(color models.Color) string {
	if !color.IsSet() {
		return "-"
	}
	return color.String()
}

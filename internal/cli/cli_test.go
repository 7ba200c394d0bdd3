package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/editor"
	"github.com/opencode-ai/schemer/internal/models"
	"github.com/rs/zerolog"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return database
}

func TestResolveSchemeFormat(t *testing.T) {
	tests := []struct {
		explicit string
		path     string
		want     string
		wantErr  bool
	}{
		{explicit: "", path: "", want: formatJSON},
		{explicit: "", path: "night.yaml", want: formatYAML},
		{explicit: "", path: "night.YML", want: formatYAML},
		{explicit: "", path: "night.json", want: formatJSON},
		{explicit: "yml", path: "night.json", want: formatYAML},
		{explicit: "JSON", path: "night.yaml", want: formatJSON},
		{explicit: "toml", path: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveSchemeFormat(tt.explicit, tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveSchemeFormat(%q, %q): expected error", tt.explicit, tt.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveSchemeFormat(%q, %q): %v", tt.explicit, tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveSchemeFormat(%q, %q) = %q, want %q", tt.explicit, tt.path, got, tt.want)
		}
	}
}

func TestEncodeDecodeScheme(t *testing.T) {
	scheme := models.NewScheme("Night")
	scheme.Editor[models.RoleBackground] = "#101010"
	scheme.Syntax["keyword"] = "#cc7832"

	for _, format := range []string{formatJSON, formatYAML} {
		data, err := encodeScheme(scheme, format)
		if err != nil {
			t.Fatalf("%s encode: %v", format, err)
		}
		decoded, err := decodeScheme(data, format)
		if err != nil {
			t.Fatalf("%s decode: %v", format, err)
		}
		if !decoded.Equal(scheme) {
			t.Errorf("%s round trip changed the scheme", format)
		}
	}
}

func TestReadConfirmation(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", defaultYes: true, want: false},
		{input: "\n", defaultYes: true, want: true},
		{input: "\n", want: false},
		{input: "", defaultYes: true, want: true},
		{input: "maybe\n", defaultYes: true, want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := readConfirmation(strings.NewReader(tt.input), &out, "Remove scheme?", tt.defaultYes)
		if got != tt.want {
			t.Errorf("readConfirmation(%q, %v) = %v, want %v", tt.input, tt.defaultYes, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Remove scheme? ") {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}

func TestWriteOutputJSONLines(t *testing.T) {
	original := jsonlOutput
	jsonlOutput = true
	defer func() { jsonlOutput = original }()

	var buf bytes.Buffer
	rows := []SchemeSummary{{Name: "Alpha"}, {Name: "Beta"}}
	if err := WriteOutput(&buf, rows); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var decoded SchemeSummary
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if decoded.Name != "Beta" {
		t.Errorf("expected Beta, got %q", decoded.Name)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTable(&buf, []string{"NAME", "KIND"}, [][]string{{"Darcula", "built-in"}}); err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "Darcula") {
		t.Errorf("unexpected table output %q", out)
	}
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, fmt.Errorf("wrapped: %w", schemeNotFound("Ghost")))

	out := buf.String()
	for _, want := range []string{`Error: scheme "Ghost" not found`, "Hint:", "Next: schemer schemes list"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}

	buf.Reset()
	FormatError(&buf, errors.New("boom"))
	if buf.String() != "Error: boom\n" {
		t.Errorf("unexpected plain error output %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(1234 * time.Millisecond); got != "1.2s" {
		t.Errorf("expected 1.2s, got %q", got)
	}
	if got := formatDuration(123456 * time.Microsecond); got != "120ms" {
		t.Errorf("expected 120ms, got %q", got)
	}
}

func TestDescribeEvent(t *testing.T) {
	payload, _ := json.Marshal(models.SchemeRenamedPayload{OldName: "Foo", NewName: "Bar 1", Requested: "Bar"})
	event := &models.Event{Type: models.EventTypeSchemeRenamed, Payload: payload}
	if got := describeEvent(event); got != `Foo -> Bar 1 (asked for "Bar")` {
		t.Errorf("unexpected rename description %q", got)
	}

	payload, _ = json.Marshal(models.ColorChangedPayload{Role: "keyword", NewColor: "#cc7832"})
	event = &models.Event{Type: models.EventTypeSchemeColorChanged, Payload: payload}
	if got := describeEvent(event); got != "keyword: - -> #cc7832" {
		t.Errorf("unexpected color description %q", got)
	}

	event = &models.Event{Type: models.EventTypeSchemeRemoved}
	if got := describeEvent(event); got != "" {
		t.Errorf("expected empty description, got %q", got)
	}
}

func TestHistoryFilter(t *testing.T) {
	filter, err := historyFilter(" Night ", "scheme.renamed", 5)
	if err != nil {
		t.Fatalf("historyFilter: %v", err)
	}
	if filter.Scheme != "Night" || filter.Type != models.EventTypeSchemeRenamed || filter.Limit != 5 {
		t.Errorf("unexpected filter %+v", filter)
	}

	if _, err := historyFilter("", "", 0); err == nil {
		t.Error("expected error for non-positive limit")
	}

	_, err = historyFilter("", "scheme.exploded", 5)
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Fatalf("expected PreflightError, got %v", err)
	}
	if !strings.Contains(preflight.Hint, "scheme.renamed") {
		t.Errorf("expected known types in hint, got %q", preflight.Hint)
	}
}

func TestHistoryCommandReadsNewestSchemeEvents(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	ctx := context.Background()
	repo := db.NewEventRepository(database)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, &models.Event{
			Timestamp:  base.Add(time.Duration(i) * time.Second),
			Type:       models.EventTypeSchemeColorChanged,
			EntityType: models.EntityTypeScheme,
			EntityID:   "Night",
			Metadata:   map[string]string{"seq": fmt.Sprint(i)},
		}); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	filter, err := historyFilter("Night", "", 3)
	if err != nil {
		t.Fatalf("historyFilter: %v", err)
	}
	events, err := repo.History(ctx, filter)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"4", "3", "2"} {
		if got := events[i].Metadata["seq"]; got != want {
			t.Errorf("event %d: expected seq %s, got %s", i, want, got)
		}
	}
}

func TestRecordWarningStoresEvent(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	repo := db.NewEventRepository(database)
	a := &app{eventRepo: repo, logger: zerolog.Nop()}
	a.recordWarning(editor.Warning{Op: "save", Scheme: "Night", Err: errors.New("disk full")})

	if len(a.warnings) != 1 {
		t.Fatalf("expected 1 pending warning, got %d", len(a.warnings))
	}
	events, err := repo.History(context.Background(), db.HistoryFilter{Type: models.EventTypeWarning})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 1 || !strings.Contains(string(events[0].Payload), "disk full") {
		t.Fatalf("expected warning event, got %+v", events)
	}
}

func TestRecordWarningLogsFailedEventWrite(t *testing.T) {
	database := setupTestDB(t)
	database.Close()

	var buf bytes.Buffer
	a := &app{
		eventRepo: db.NewEventRepository(database),
		logger:    zerolog.New(&buf).Level(zerolog.DebugLevel),
	}
	a.recordWarning(editor.Warning{Op: "remove", Scheme: "Night", Err: errors.New("locked")})

	if len(a.warnings) != 1 {
		t.Fatalf("expected warning kept in memory, got %d", len(a.warnings))
	}
	out := buf.String()
	if !strings.Contains(out, "failed to record warning event") || !strings.Contains(out, `"op":"remove"`) {
		t.Fatalf("expected debug log for failed write, got %q", out)
	}
}

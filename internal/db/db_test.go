package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMigrateUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	version, err := database.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != LatestVersion() {
		t.Fatalf("expected version %d, got %d", LatestVersion(), version)
	}

	applied, err := database.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no migrations on second run, got %d", applied)
	}
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schemer.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if database.Path() != path {
		t.Fatalf("expected path %q, got %q", path, database.Path())
	}
	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

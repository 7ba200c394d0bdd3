package schemes

import (
	"context"
	"testing"

	"github.com/opencode-ai/schemer/internal/db"
	"github.com/opencode-ai/schemer/internal/models"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()
	if _, err := database.MigrateUp(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := NewStore(db.NewKVRepository(database))

	scheme := models.NewScheme("Night Owl")
	scheme.Editor[models.RoleBackground] = "#011627"
	scheme.Syntax["keyword"] = "#c792ea"
	scheme.Syntax["string"] = "#ecc"
	scheme.Syntax["comment"] = models.NormalizeColor("aéééééééé")

	if err := store.Save(ctx, scheme); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok := store.Load(ctx, "Night Owl")
	if !ok {
		t.Fatal("expected stored scheme to load")
	}
	if !loaded.Equal(scheme) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, scheme)
	}

	keys, err := store.ListKeys(ctx)
	if err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "scheme/Night Owl" {
		t.Fatalf("unexpected keys: %v", keys)
	}

	if err := store.Remove(ctx, "Night Owl"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, "Night Owl"); err != nil {
		t.Fatalf("Remove of missing scheme should be a no-op: %v", err)
	}
	if _, ok := store.Load(ctx, "Night Owl"); ok {
		t.Fatal("expected removed scheme to be absent")
	}
}

func TestStoreLoadMalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	kv.data["scheme/Broken"] = "{not json"

	store := NewStore(kv)
	if _, ok := store.Load(ctx, "Broken"); ok {
		t.Fatal("expected malformed payload to load as absent")
	}
	if _, ok := store.Load(ctx, "Missing"); ok {
		t.Fatal("expected missing key to load as absent")
	}
}

func TestStoreLoadUsesKeyAsName(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	kv.data["scheme/Renamed"] = `{"name":"Old","editor":{"background":"#000"},"syntax":{}}`

	loaded, ok := NewStore(kv).Load(ctx, "Renamed")
	if !ok {
		t.Fatal("expected scheme to load")
	}
	if loaded.Name != "Renamed" {
		t.Fatalf("expected key name to win, got %q", loaded.Name)
	}
	if len(loaded.Syntax) != len(models.SyntaxCategories) {
		t.Fatalf("expected missing categories to be filled in, got %d", len(loaded.Syntax))
	}
}

func TestStoreSaveSurfacesWriteFailure(t *testing.T) {
	kv := newMemoryKV()
	kv.failSets = true

	err := NewStore(kv).Save(context.Background(), models.NewScheme("Full"))
	if err == nil {
		t.Fatal("expected save error")
	}
}

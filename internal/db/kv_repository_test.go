package db

import (
	"context"
	"testing"
)

func TestKVRepositorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(openTestDB(t))

	if _, ok, err := repo.Get(ctx, "font"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, "font", "Fira Code"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "font", "JetBrains Mono"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	value, ok, err := repo.Get(ctx, "font")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != "JetBrains Mono" {
		t.Fatalf("expected overwritten value, got %q ok=%v", value, ok)
	}

	if err := repo.Delete(ctx, "font"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "font"); err != nil {
		t.Fatalf("Delete missing key should be a no-op: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "font"); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestKVRepositoryKeysByPrefix(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(openTestDB(t))

	for key, value := range map[string]string{
		"scheme/Zed":     "{}",
		"scheme/Alpha":   "{}",
		"preview/cpp":    "int main() {}",
		"scheme":         "Darcula",
		"schemeless/key": "x",
	} {
		if err := repo.Set(ctx, key, value); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}

	keys, err := repo.Keys(ctx, "scheme/")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "scheme/Alpha" || keys[1] != "scheme/Zed" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestKVRepositoryRejectsEmptyKey(t *testing.T) {
	repo := NewKVRepository(openTestDB(t))
	if err := repo.Set(context.Background(), "", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

package schemes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/schemer/internal/models"
)

func newLoadedRegistry(t *testing.T, kv *memoryKV) *Registry {
	t.Helper()
	registry := NewRegistry(NewStore(kv))
	_, err := registry.LoadAll(context.Background())
	require.NoError(t, err)
	return registry
}

func addCustom(t *testing.T, registry *Registry, name string) *models.Scheme {
	t.Helper()
	scheme := models.NewScheme(name)
	require.NoError(t, registry.Add(scheme))
	return scheme
}

func TestRegistryLoadAllMergesStoredSchemes(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store := NewStore(kv)

	require.NoError(t, store.Save(ctx, models.NewScheme("Mine")))
	kv.data["scheme/Garbage"] = "]]"
	shadow := models.NewScheme(models.DefaultSchemeName)
	require.NoError(t, store.Save(ctx, shadow))
	claimsBuiltin := models.NewScheme("Sneaky")
	claimsBuiltin.BuiltIn = true
	require.NoError(t, store.Save(ctx, claimsBuiltin))

	registry := NewRegistry(store)
	all, err := registry.LoadAll(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(all))
	for _, scheme := range all {
		names = append(names, scheme.Name)
	}
	require.Contains(t, names, "Mine")
	require.Contains(t, names, "Sneaky")
	require.NotContains(t, names, "Garbage")

	darcula, ok := registry.Get(models.DefaultSchemeName)
	require.True(t, ok)
	require.True(t, darcula.BuiltIn, "stored entry must not shadow the built-in")

	sneaky, _ := registry.Get("Sneaky")
	require.False(t, sneaky.BuiltIn)
}

func TestRegistryNamesAreUnique(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())
	addCustom(t, registry, "Mine")

	err := registry.Add(models.NewScheme("Mine"))
	require.True(t, errors.Is(err, ErrDuplicateName))

	seen := make(map[string]bool)
	for _, scheme := range registry.ListSorted() {
		require.False(t, seen[scheme.Name], "duplicate name %q", scheme.Name)
		seen[scheme.Name] = true
	}
}

func TestRegistryListSortedIsCaseSensitive(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())
	addCustom(t, registry, "alpha")
	addCustom(t, registry, "Zebra")

	list := registry.ListSorted()
	for i := 1; i < len(list); i++ {
		require.Less(t, list[i-1].Name, list[i].Name)
	}
	// Upper-case sorts before lower-case.
	require.Equal(t, "alpha", list[len(list)-1].Name)
}

func TestResolveUniqueName(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())

	require.Equal(t, "Fresh", registry.ResolveUniqueName("Fresh"))
	require.Equal(t, "Darcula 1", registry.ResolveUniqueName("Darcula"))

	addCustom(t, registry, "Darcula 1")
	require.Equal(t, "Darcula 2", registry.ResolveUniqueName("Darcula"))
	require.Equal(t, "Darcula 2", registry.ResolveUniqueName("Darcula 1"))

	addCustom(t, registry, "Darcula 7")
	require.Equal(t, "Darcula 8", registry.ResolveUniqueName("Darcula"))

	addCustom(t, registry, "Bar")
	require.Equal(t, "Bar 1", registry.ResolveUniqueName("Bar"))

	// Names that merely end in a word are not counters.
	addCustom(t, registry, "Dark Mode")
	require.Equal(t, "Dark Mode 1", registry.ResolveUniqueName("Dark Mode"))
}

func TestResolveUniqueNameWithHugeSuffix(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())
	addCustom(t, registry, "Foo")
	addCustom(t, registry, "Foo 9223372036854775807")

	require.Equal(t, "Foo 1", registry.ResolveUniqueName("Foo"))
	require.Equal(t, "Foo 9223372036854775807 1", registry.ResolveUniqueName("Foo 9223372036854775807"))

	addCustom(t, registry, "Foo 999999999")
	require.Equal(t, "Foo 1000000000", registry.ResolveUniqueName("Foo"))
}

func TestResolveUniqueNameForIgnoresSelf(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())
	bar := addCustom(t, registry, "Bar")
	addCustom(t, registry, "Bar 5")

	require.Equal(t, "Bar", registry.ResolveUniqueNameFor("Bar", bar))
	require.Equal(t, "Bar 6", registry.ResolveUniqueName("Bar"))
}

func TestRegistryRemove(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	registry := newLoadedRegistry(t, kv)
	mine := addCustom(t, registry, "Mine")
	require.NoError(t, registry.Store().Save(ctx, mine))

	require.NoError(t, registry.Remove(ctx, mine))
	require.False(t, registry.Has("Mine"))
	_, stored := kv.data["scheme/Mine"]
	require.False(t, stored)

	darcula, _ := registry.Get(models.DefaultSchemeName)
	require.ErrorIs(t, registry.Remove(ctx, darcula), ErrBuiltInScheme)
	require.ErrorIs(t, registry.Remove(ctx, models.NewScheme("Ghost")), ErrSchemeNotFound)
}

func TestRegistryNeighbor(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())

	_, ok := registry.Neighbor("Anything")
	require.False(t, ok)

	addCustom(t, registry, "B")
	addCustom(t, registry, "D")

	name, ok := registry.Neighbor("C")
	require.True(t, ok)
	require.Equal(t, "B", name)

	name, ok = registry.Neighbor("A")
	require.True(t, ok)
	require.Equal(t, "B", name)

	name, ok = registry.Neighbor("D")
	require.True(t, ok)
	require.Equal(t, "B", name)
}

func TestRegistryRekey(t *testing.T) {
	registry := newLoadedRegistry(t, newMemoryKV())
	foo := addCustom(t, registry, "Foo")

	foo.Name = "Qux"
	require.NoError(t, registry.Rekey("Foo", foo))
	require.False(t, registry.Has("Foo"))
	got, ok := registry.Get("Qux")
	require.True(t, ok)
	require.Same(t, foo, got)
}

package schemes

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/opencode-ai/schemer/internal/models"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinSchemes returns the built-in schemes bundled with schemer,
// sorted by name. Every call returns fresh copies.
func LoadBuiltinSchemes() ([]*models.Scheme, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin schemes: %w", err)
	}

	schemes := make([]*models.Scheme, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := "builtin/" + entry.Name()
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read builtin scheme %s: %w", entry.Name(), err)
		}
		scheme, err := parseBuiltin(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin scheme %s: %w", entry.Name(), err)
		}
		schemes = append(schemes, scheme)
	}

	sort.Slice(schemes, func(i, j int) bool {
		return schemes[i].Name < schemes[j].Name
	})

	return schemes, nil
}

func parseBuiltin(data []byte) (*models.Scheme, error) {
	scheme, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	scheme.BuiltIn = true
	return scheme, nil
}

package schemes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencode-ai/schemer/internal/logging"
	"github.com/opencode-ai/schemer/internal/models"
)

// PresetSearchPaths returns preset scheme directories in precedence order.
func PresetSearchPaths(configDir string) []string {
	paths := make([]string, 0, 2)
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, "schemes"))
	}
	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "schemer", "schemes"))
	return paths
}

// LoadPresetFile reads a read-only scheme from a YAML file.
func LoadPresetFile(path string) (*models.Scheme, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("preset path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset %s: %w", path, err)
	}

	scheme, err := parseBuiltin(data)
	if err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return scheme, nil
}

// LoadPresetsFromDir loads every .yaml/.yml scheme in dir. A missing
// directory yields no schemes. A file that fails to load is logged and
// skipped so one bad preset does not hide its neighbours.
func LoadPresetsFromDir(dir string) ([]*models.Scheme, error) {
	if strings.TrimSpace(dir) == "" {
		return []*models.Scheme{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Scheme{}, nil
		}
		return nil, fmt.Errorf("read presets dir %s: %w", dir, err)
	}

	logger := logging.Component("presets")
	presets := make([]*models.Scheme, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		scheme, err := LoadPresetFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping preset file")
			continue
		}
		presets = append(presets, scheme)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})

	return presets, nil
}

// LoadPresets returns the bundled schemes plus presets found in dirs, sorted
// by name. Bundled schemes always win a name clash; among dirs the first
// hit wins. A directory that fails to load is skipped.
func LoadPresets(dirs []string) ([]*models.Scheme, error) {
	builtins, err := LoadBuiltinSchemes()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]*models.Scheme, len(builtins))
	for _, scheme := range builtins {
		seen[scheme.Name] = scheme
	}

	logger := logging.Component("presets")
	for _, dir := range dirs {
		presets, err := LoadPresetsFromDir(dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("skipping preset directory")
			continue
		}
		for _, scheme := range presets {
			if _, exists := seen[scheme.Name]; exists {
				logger.Debug().Str("scheme", scheme.Name).Str("dir", dir).Msg("preset shadowed, skipping")
				continue
			}
			seen[scheme.Name] = scheme
		}
	}

	resolved := make([]*models.Scheme, 0, len(seen))
	for _, scheme := range seen {
		resolved = append(resolved, scheme)
	}
	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].Name < resolved[j].Name
	})
	return resolved, nil
}

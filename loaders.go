package dateformat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileLoader registers locale payload files with a repository. The file
// name minus its extension is the locale id, so "de_CH.json" supplies
// de-CH. JSON, YAML and TOML payloads decode into the same raw shape the
// fallback merge consumes.
type FileLoader struct {
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// Discover expands directories among the loader paths into the payload
// files they contain, sorted for determinism.
func (l *FileLoader) Discover() ([]string, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("dateformat: no loader paths configured")
	}

	var files []string
	for _, path := range l.paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("dateformat: stat %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("dateformat: read dir %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !supportedPayloadExt(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func supportedPayloadExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// localeIDFromPath derives the locale id from a payload file name.
func localeIDFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return normalizeLocale(base)
}

// RegisterAll wires every discovered payload file into the repository as
// a lazy loader keyed by its locale id.
func (l *FileLoader) RegisterAll(repo *LocaleDataRepository) error {
	if repo == nil {
		return fmt.Errorf("dateformat: nil repository: %w", ErrInvalidArgument)
	}
	files, err := l.Discover()
	if err != nil {
		return err
	}
	for _, path := range files {
		locale := localeIDFromPath(path)
		if locale == "" {
			return fmt.Errorf("dateformat: cannot derive locale from %s", path)
		}
		file := path
		repo.RegisterLoader(locale, func(ctx context.Context, localeID string) (map[string]any, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return decodePayloadFile(file)
		})
	}
	return nil
}

func decodePayloadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dateformat: read %s: %w", path, err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("dateformat: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("dateformat: decode %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("dateformat: decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("dateformat: unsupported payload extension %s", filepath.Ext(path))
	}
	return raw, nil
}

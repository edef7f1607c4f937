package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses every JSON/YAML overlay.
// A field configured in more than one file is an error. When fsys is nil or
// holds no overlay files the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]FieldConfig)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		return store.loadFile(fsys, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Load parses a single overlay file.
func Load(fsys fs.FS, path string) (*Store, error) {
	if fsys == nil {
		return nil, fmt.Errorf("uischema: filesystem is nil")
	}
	store := &Store{fields: make(map[string]FieldConfig)}
	if err := store.loadFile(fsys, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Field returns the overlay for the named field.
func (s *Store) Field(name string) (FieldConfig, bool) {
	if s == nil {
		return FieldConfig{}, false
	}
	cfg, ok := s.fields[name]
	return cfg, ok
}

// Names lists the configured field names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

type documentFile struct {
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func (s *Store) loadFile(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("uischema: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return err
	}

	for key, cfg := range doc.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return fmt.Errorf("uischema: file %s defines a field with an empty name", path)
		}
		if existing, exists := s.fields[name]; exists {
			return fmt.Errorf("uischema: field %q configured in both %s and %s", name, existing.Source, path)
		}
		cfg.Label = strings.TrimSpace(cfg.Label)
		cfg.Widget = strings.TrimSpace(cfg.Widget)
		cfg.Help = strings.TrimSpace(cfg.Help)
		if cfg.empty() {
			continue
		}
		cfg.Source = path
		s.fields[name] = cfg
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

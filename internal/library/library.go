// Package library loads pattern documents from a directory tree.
// This package depends on codec but codec does not depend on library.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/barrage-tui/barrage/internal/codec"
	"github.com/barrage-tui/barrage/internal/pattern"
)

// Entry is one pattern file found under the library root.
type Entry struct {
	// Name is the file's path relative to the root, without extension.
	Name     string
	FilePath string
	Pattern  pattern.Pattern
}

// Loader handles loading pattern documents from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pattern loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and parses all pattern files.
// Returns entries sorted by name for deterministic ordering. Files that
// fail to parse are skipped.
func (l *Loader) LoadAll() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !supportedExtension(filepath.Ext(path)) {
			return nil
		}

		entry, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		entries = append(entries, entry)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// LoadFile loads a single pattern file, routed by extension.
func (l *Loader) LoadFile(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	p, err := ParseBytes(data, filepath.Ext(path))
	if err != nil {
		return Entry{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Entry{
		Name:     l.entryName(path),
		FilePath: path,
		Pattern:  p,
	}, nil
}

// LoadByName loads a specific pattern by its library name.
func (l *Loader) LoadByName(name string) (Entry, error) {
	entries, err := l.LoadAll()
	if err != nil {
		return Entry{}, err
	}

	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("pattern not found: %s", name)
}

// ListNames returns all pattern names in sorted order.
func (l *Loader) ListNames() ([]string, error) {
	entries, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

func (l *Loader) entryName(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// ParseBytes decodes a pattern document, routed by file extension.
func ParseBytes(data []byte, ext string) (pattern.Pattern, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return codec.Unmarshal(data)
	case ".yaml", ".yml":
		return codec.UnmarshalYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func supportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

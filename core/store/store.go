// Package store handles artifact persistence for gutenshad.
// Each book is one pretty-printed JSON document at <root>/<key>.json, keyed
// by the catalog slug. Writes go through a temp file and rename so a failed
// entry never leaves a partial artifact behind.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tdavies-dev/gutenshad/core"
)

// FileStore persists books as JSON files under a root directory.
type FileStore struct {
	Root string
}

// New creates a FileStore rooted at dir, creating it if absent.
// If dir is empty it defaults to "data/books".
func New(dir string) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join("data", "books")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{Root: dir}, nil
}

// Path returns the artifact path for a catalog key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.Root, sanitize(key)+".json")
}

// Has reports whether an artifact exists for the key.
func (s *FileStore) Has(key string) bool {
	info, err := os.Stat(s.Path(key))
	return err == nil && !info.IsDir()
}

// Read loads the book stored under the key. TotalChapters is recomputed from
// the chapter count rather than trusted from the artifact.
func (s *FileStore) Read(key string) (core.Book, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return core.Book{}, &core.StoreError{Op: "read", Key: key, Err: err}
	}
	var book core.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return core.Book{}, &core.StoreError{Op: "read", Key: key, Err: err}
	}
	book.TotalChapters = len(book.Chapters)
	return book, nil
}

// Write serializes the book under the key, replacing any existing artifact.
// The JSON is written to a temp file first and renamed into place.
func (s *FileStore) Write(key string, book core.Book) error {
	book.TotalChapters = len(book.Chapters)

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return &core.StoreError{Op: "write", Key: key, Err: err}
	}

	path := s.Path(key)
	tmp, err := os.CreateTemp(s.Root, "."+sanitize(key)+"-*.tmp")
	if err != nil {
		return &core.StoreError{Op: "write", Key: key, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &core.StoreError{Op: "write", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &core.StoreError{Op: "write", Key: key, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &core.StoreError{Op: "write", Key: key, Err: err}
	}
	return nil
}

// Keys lists the catalog keys of all stored artifacts, sorted.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, &core.StoreError{Op: "read", Key: "", Err: err}
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		if name == manifestFile || name == statisticsFile {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

// sanitize replaces path-hostile characters in a key with underscores.
func sanitize(key string) string {
	var b strings.Builder
	for _, ch := range key {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

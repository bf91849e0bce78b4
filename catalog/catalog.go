// Package catalog provides the source catalog: an immutable mapping from a
// human-readable slug to a Project Gutenberg ID plus title and author.
// The catalog is loaded once at startup, either from the built-in table or
// from a YAML file, and never mutated afterwards.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tdavies-dev/gutenshad/core"
)

// Catalog is an ordered, read-only set of catalog entries.
type Catalog struct {
	keys    []string
	entries map[string]core.BookInfo
}

// defaultEntries is the built-in catalog: a selection of frequently read
// public-domain classics with their Gutenberg ebook IDs.
var defaultEntries = map[string]core.BookInfo{
	"pride-and-prejudice":   {ExternalID: 1342, Title: "Pride and Prejudice", Author: "Jane Austen"},
	"moby-dick":             {ExternalID: 2701, Title: "Moby Dick; Or, The Whale", Author: "Herman Melville"},
	"frankenstein":          {ExternalID: 84, Title: "Frankenstein; Or, The Modern Prometheus", Author: "Mary Wollstonecraft Shelley"},
	"a-tale-of-two-cities":  {ExternalID: 98, Title: "A Tale of Two Cities", Author: "Charles Dickens"},
	"dracula":               {ExternalID: 345, Title: "Dracula", Author: "Bram Stoker"},
	"alice-in-wonderland":   {ExternalID: 11, Title: "Alice's Adventures in Wonderland", Author: "Lewis Carroll"},
	"sherlock-holmes":       {ExternalID: 1661, Title: "The Adventures of Sherlock Holmes", Author: "Arthur Conan Doyle"},
	"great-expectations":    {ExternalID: 1400, Title: "Great Expectations", Author: "Charles Dickens"},
	"dorian-gray":           {ExternalID: 174, Title: "The Picture of Dorian Gray", Author: "Oscar Wilde"},
	"count-of-monte-cristo": {ExternalID: 1184, Title: "The Count of Monte Cristo", Author: "Alexandre Dumas"},
	"war-and-peace":         {ExternalID: 2600, Title: "War and Peace", Author: "Leo Tolstoy"},
	"the-odyssey":           {ExternalID: 1727, Title: "The Odyssey", Author: "Homer"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return fromMap(defaultEntries)
}

// Load reads a catalog from a YAML file mapping slugs to entries:
//
//	moby-dick:
//	  id: 2701
//	  title: Moby Dick; Or, The Whale
//	  author: Herman Melville
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var entries map[string]core.BookInfo
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no entries", path)
	}
	for key, info := range entries {
		if info.ExternalID < 1 {
			return nil, fmt.Errorf("catalog entry %q: id must be >= 1", key)
		}
		if info.Title == "" || info.Author == "" {
			return nil, fmt.Errorf("catalog entry %q: title and author are required", key)
		}
	}
	return fromMap(entries), nil
}

// fromMap builds a Catalog with keys in sorted order for deterministic runs.
func fromMap(entries map[string]core.BookInfo) *Catalog {
	keys := make([]string, 0, len(entries))
	copied := make(map[string]core.BookInfo, len(entries))
	for key, info := range entries {
		keys = append(keys, key)
		copied[key] = info
	}
	sort.Strings(keys)
	return &Catalog{keys: keys, entries: copied}
}

// Lookup returns the entry for a key, or *core.UnknownKeyError if absent.
func (c *Catalog) Lookup(key string) (core.BookInfo, error) {
	info, ok := c.entries[key]
	if !ok {
		return core.BookInfo{}, &core.UnknownKeyError{Key: key}
	}
	return info, nil
}

// Subset returns a catalog restricted to the given keys. Any key absent from
// the catalog yields *core.UnknownKeyError.
func (c *Catalog) Subset(keys []string) (*Catalog, error) {
	entries := make(map[string]core.BookInfo, len(keys))
	for _, key := range keys {
		info, err := c.Lookup(key)
		if err != nil {
			return nil, err
		}
		entries[key] = info
	}
	return fromMap(entries), nil
}

// Keys returns the catalog keys in deterministic (sorted) order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// ToYAML serializes the catalog in the Load format.
func (c *Catalog) ToYAML() ([]byte, error) {
	return yaml.Marshal(c.entries)
}

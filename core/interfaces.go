// Package core defines the data model and pipeline interfaces for gutenshad.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// BookInfo identifies a catalog entry: the remote source's numeric ID plus
// descriptive metadata. Immutable once the catalog is loaded.
type BookInfo struct {
	ExternalID int    `json:"externalId" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Author     string `json:"author" yaml:"author"`
}

// Chapter is one titled unit of a book's text. Order within a book is
// reading order and must be preserved end-to-end.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Book is the fully assembled artifact: catalog metadata plus the segmented
// chapters. TotalChapters is derived and recomputed on every assembly, never
// trusted from storage alone.
type Book struct {
	ExternalID    int       `json:"externalId"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Chapters      []Chapter `json:"chapters"`
	TotalChapters int       `json:"totalChapters"`
}

// NewBook assembles a Book from catalog info and chapters, deriving
// TotalChapters from the chapter count.
func NewBook(info BookInfo, chapters []Chapter) Book {
	return Book{
		ExternalID:    info.ExternalID,
		Title:         info.Title,
		Author:        info.Author,
		Chapters:      chapters,
		TotalChapters: len(chapters),
	}
}

// Fetcher retrieves the raw text of one book from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context, externalID int) (string, error)
}

// Normalizer strips boilerplate and whitespace noise from raw text.
// It is total: the worst case returns the input trimmed.
type Normalizer interface {
	Normalize(raw string) string
}

// Segmenter splits clean text into an ordered sequence of chapters.
// It is total: texts with no recognizable headings yield a single chapter.
type Segmenter interface {
	Segment(clean string) []Chapter
}

// Store persists assembled books as keyed artifacts on durable storage.
// Keys are catalog slugs; one book maps to exactly one entry, and a re-write
// under the same key replaces the previous artifact.
type Store interface {
	Has(key string) bool
	Read(key string) (Book, error)
	Write(key string, book Book) error
	Keys() ([]string, error)
}

// Package store — manifest and statistics generation.
// Both files are regenerable convenience indexes produced by scanning the
// store; neither is authoritative over the per-book artifacts.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	manifestFile   = "manifest.json"
	statisticsFile = "statistics.json"
)

// ManifestEntry describes one cached book for downstream consumers.
type ManifestEntry struct {
	Filename     string `json:"filename"`
	ExternalID   int    `json:"externalId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ChapterCount int    `json:"chapterCount"`
}

// Manifest lists all successfully cached books.
type Manifest struct {
	TotalBooks int             `json:"totalBooks"`
	ExportedAt string          `json:"exportedAt"`
	Books      []ManifestEntry `json:"books"`
}

// BookStats summarizes one book's size.
type BookStats struct {
	ExternalID         int     `json:"externalId"`
	Title              string  `json:"title"`
	Author             string  `json:"author"`
	ChapterCount       int     `json:"chapterCount"`
	TotalWords         int     `json:"totalWords"`
	AvgWordsPerChapter float64 `json:"avgWordsPerChapter"`
}

// Statistics aggregates size information across the whole store.
type Statistics struct {
	TotalBooks    int         `json:"totalBooks"`
	TotalChapters int         `json:"totalChapters"`
	TotalWords    int         `json:"totalWords"`
	Books         []BookStats `json:"books"`
}

// BuildManifest scans the store and returns a manifest of every readable
// artifact. Unreadable artifacts are skipped rather than aborting the scan.
func (s *FileStore) BuildManifest() (Manifest, error) {
	keys, err := s.Keys()
	if err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Books:      []ManifestEntry{},
	}
	for _, key := range keys {
		book, err := s.Read(key)
		if err != nil {
			continue
		}
		m.Books = append(m.Books, ManifestEntry{
			Filename:     filepath.Base(s.Path(key)),
			ExternalID:   book.ExternalID,
			Title:        book.Title,
			Author:       book.Author,
			ChapterCount: book.TotalChapters,
		})
	}
	m.TotalBooks = len(m.Books)
	return m, nil
}

// WriteManifest writes manifest.json into the store root and returns its path.
func (s *FileStore) WriteManifest() (string, error) {
	m, err := s.BuildManifest()
	if err != nil {
		return "", err
	}
	return s.writeIndex(manifestFile, m)
}

// BuildStatistics scans the store and computes word-count statistics.
func (s *FileStore) BuildStatistics() (Statistics, error) {
	keys, err := s.Keys()
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{Books: []BookStats{}}
	for _, key := range keys {
		book, err := s.Read(key)
		if err != nil {
			continue
		}
		words := 0
		for _, ch := range book.Chapters {
			words += len(strings.Fields(ch.Content))
		}
		bs := BookStats{
			ExternalID:   book.ExternalID,
			Title:        book.Title,
			Author:       book.Author,
			ChapterCount: book.TotalChapters,
			TotalWords:   words,
		}
		if bs.ChapterCount > 0 {
			bs.AvgWordsPerChapter = float64(words) / float64(bs.ChapterCount)
		}
		stats.Books = append(stats.Books, bs)
		stats.TotalBooks++
		stats.TotalChapters += bs.ChapterCount
		stats.TotalWords += words
	}
	return stats, nil
}

// WriteStatistics writes statistics.json into the store root.
func (s *FileStore) WriteStatistics() (string, error) {
	stats, err := s.BuildStatistics()
	if err != nil {
		return "", err
	}
	return s.writeIndex(statisticsFile, stats)
}

// writeIndex marshals an index document into the store root.
func (s *FileStore) writeIndex(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", name, err)
	}
	path := filepath.Join(s.Root, name)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

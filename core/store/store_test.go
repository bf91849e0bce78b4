package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdavies-dev/gutenshad/core"
)

func testBook(id int, title string, chapters ...core.Chapter) core.Book {
	return core.NewBook(core.BookInfo{ExternalID: id, Title: title, Author: "Test Author"}, chapters)
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "books"))
	require.NoError(t, err)
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	book := testBook(2701, "Moby Dick",
		core.Chapter{Title: "CHAPTER I.", Content: "CHAPTER I.\nLoomings."},
		core.Chapter{Title: "CHAPTER II.", Content: "CHAPTER II.\nThe Carpet-Bag."},
	)

	require.NoError(t, s.Write("moby-dick", book))

	got, err := s.Read("moby-dick")
	require.NoError(t, err)
	require.Equal(t, book, got)
	require.Equal(t, 2, got.TotalChapters)
}

func TestStore_HasReflectsWrites(t *testing.T) {
	s := newTestStore(t)

	require.False(t, s.Has("dracula"))
	require.NoError(t, s.Write("dracula", testBook(345, "Dracula", core.Chapter{Title: "I.", Content: "I.\nJonathan's journal."})))
	require.True(t, s.Has("dracula"))
}

func TestStore_WriteOverwrites(t *testing.T) {
	s := newTestStore(t)
	key := "frankenstein"

	require.NoError(t, s.Write(key, testBook(84, "Frankenstein", core.Chapter{Title: "I.", Content: "old"})))
	require.NoError(t, s.Write(key, testBook(84, "Frankenstein",
		core.Chapter{Title: "I.", Content: "new"},
		core.Chapter{Title: "II.", Content: "newer"},
	)))

	got, err := s.Read(key)
	require.NoError(t, err)
	require.Equal(t, 2, got.TotalChapters)
	require.Equal(t, "new", got.Chapters[0].Content)

	keys, err := s.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{key}, keys)
}

func TestStore_ReadMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read("nope")

	var storeErr *core.StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "read", storeErr.Op)
}

func TestStore_ReadCorruptArtifact(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path("bad"), []byte("{not json"), 0644))

	_, err := s.Read("bad")

	var storeErr *core.StoreError
	require.ErrorAs(t, err, &storeErr)
}

func TestStore_ArtifactIsPrettyPrintedJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("moby-dick", testBook(2701, "Moby Dick", core.Chapter{Title: "I.", Content: "text"})))

	data, err := os.ReadFile(s.Path("moby-dick"))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  \"externalId\": 2701")
	require.Contains(t, string(data), "\"totalChapters\": 1")
}

func TestStore_KeysSortedAndFiltered(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("zeta", testBook(2, "Z", core.Chapter{Title: "I.", Content: "z"})))
	require.NoError(t, s.Write("alpha", testBook(1, "A", core.Chapter{Title: "I.", Content: "a"})))
	_, err := s.WriteManifest()
	require.NoError(t, err)

	keys, err := s.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "zeta"}, keys)
}

func TestStore_SanitizesKeys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("weird/key name", testBook(1, "W", core.Chapter{Title: "I.", Content: "w"})))

	require.True(t, s.Has("weird/key name"))
	require.False(t, strings.ContainsAny(filepath.Base(s.Path("weird/key name")), "/ "))
}

func TestManifest_ListsCachedBooks(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("moby-dick", testBook(2701, "Moby Dick",
		core.Chapter{Title: "I.", Content: "one two three"},
		core.Chapter{Title: "II.", Content: "four five"},
	)))
	require.NoError(t, s.Write("dracula", testBook(345, "Dracula", core.Chapter{Title: "I.", Content: "six"})))

	m, err := s.BuildManifest()
	require.NoError(t, err)
	require.Equal(t, 2, m.TotalBooks)
	require.Len(t, m.Books, 2)

	// Keys() sorts, so dracula comes first.
	require.Equal(t, "dracula.json", m.Books[0].Filename)
	require.Equal(t, 345, m.Books[0].ExternalID)
	require.Equal(t, 1, m.Books[0].ChapterCount)
	require.Equal(t, "moby-dick.json", m.Books[1].Filename)
	require.Equal(t, 2, m.Books[1].ChapterCount)
}

func TestStatistics_CountsWords(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("a", testBook(1, "A",
		core.Chapter{Title: "I.", Content: "one two three"},
		core.Chapter{Title: "II.", Content: "four five"},
	)))

	stats, err := s.BuildStatistics()
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalBooks)
	require.Equal(t, 2, stats.TotalChapters)
	require.Equal(t, 5, stats.TotalWords)
	require.InDelta(t, 2.5, stats.Books[0].AvgWordsPerChapter, 0.001)
}

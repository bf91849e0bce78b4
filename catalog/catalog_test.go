package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdavies-dev/gutenshad/core"
)

func TestDefault_LookupKnownKey(t *testing.T) {
	cat := Default()

	info, err := cat.Lookup("moby-dick")
	require.NoError(t, err)
	require.Equal(t, 2701, info.ExternalID)
	require.Equal(t, "Herman Melville", info.Author)
}

func TestLookup_UnknownKey(t *testing.T) {
	cat := Default()

	_, err := cat.Lookup("definitely-not-a-book")

	var unknownErr *core.UnknownKeyError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "definitely-not-a-book", unknownErr.Key)
}

func TestKeys_SortedAndStable(t *testing.T) {
	cat := Default()

	keys := cat.Keys()
	require.Len(t, keys, cat.Len())
	require.True(t, sort.StringsAreSorted(keys))

	// Mutating the returned slice must not affect the catalog.
	keys[0] = "mutated"
	require.NotEqual(t, "mutated", cat.Keys()[0])
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `moby-dick:
  id: 2701
  title: Moby Dick
  author: Herman Melville
dracula:
  id: 345
  title: Dracula
  author: Bram Stoker
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"dracula", "moby-dick"}, cat.Keys())

	info, err := cat.Lookup("dracula")
	require.NoError(t, err)
	require.Equal(t, 345, info.ExternalID)
}

func TestLoad_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing id", "bad:\n  title: T\n  author: A\n"},
		{"missing title", "bad:\n  id: 5\n  author: A\n"},
		{"empty file", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSubset(t *testing.T) {
	cat := Default()

	sub, err := cat.Subset([]string{"dracula", "moby-dick"})
	require.NoError(t, err)
	require.Equal(t, []string{"dracula", "moby-dick"}, sub.Keys())

	_, err = cat.Subset([]string{"dracula", "missing"})
	var unknownErr *core.UnknownKeyError
	require.ErrorAs(t, err, &unknownErr)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Moby Dick; Or, The Whale", "moby-dick-or-the-whale"},
		{"Alice's Adventures in Wonderland", "alice-s-adventures-in-wonderland"},
		{"  A   Tale of Two Cities  ", "a-tale-of-two-cities"},
		{"1984", "1984"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Slugify(tc.in))
	}
}

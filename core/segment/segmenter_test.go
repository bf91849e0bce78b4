package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegment_TwoKeywordChapters(t *testing.T) {
	clean := "CHAPTER I.\nIt was the best of times.\nCHAPTER II.\nIt was the worst of times."

	chapters := New().Segment(clean)

	require.Len(t, chapters, 2)
	require.Equal(t, "CHAPTER I.", chapters[0].Title)
	require.Equal(t, "CHAPTER I.\nIt was the best of times.", chapters[0].Content)
	require.Equal(t, "CHAPTER II.", chapters[1].Title)
	require.Equal(t, "CHAPTER II.\nIt was the worst of times.", chapters[1].Content)
}

func TestSegment_NoHeadingsFallsBackToSingleChapter(t *testing.T) {
	clean := "  Some prose without any structure.\nMore of the same.  "

	chapters := New().Segment(clean)

	require.Len(t, chapters, 1)
	require.Equal(t, FallbackTitle, chapters[0].Title)
	require.Equal(t, strings.TrimSpace(clean), chapters[0].Content)
}

func TestSegment_HeadingVariants(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		match bool
	}{
		{"keyword decimal", "Chapter 12", true},
		{"keyword roman", "CHAPTER IV.", true},
		{"lowercase keyword", "chapter 3", true},
		{"book keyword", "BOOK II", true},
		{"part keyword", "Part 1", true},
		{"bare roman with period", "XII.", true},
		{"bare roman alone on line", "XII", true},
		{"bare decimal with period", "7.", true},
		{"bare decimal without period", "7", false},
		{"sentence starting with I", "It was a dark night", false},
		{"prose line", "The chapter ended quietly", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.match, IsHeading(tc.line))
		})
	}
}

func TestSegment_ChapterCountMatchesHeadings(t *testing.T) {
	clean := "BOOK I\nopening text\nChapter 1\nalpha\nChapter 2\nbeta\nXII.\ngamma"

	chapters := New().Segment(clean)

	require.Len(t, chapters, 4)
	require.Equal(t, []string{"BOOK I", "Chapter 1", "Chapter 2", "XII."},
		[]string{chapters[0].Title, chapters[1].Title, chapters[2].Title, chapters[3].Title})
}

func TestSegment_ContentsAreContiguous(t *testing.T) {
	clean := "CHAPTER I.\nalpha\nCHAPTER II.\nbeta\nCHAPTER III.\ngamma"

	matches := HeadingPattern.FindAllStringIndex(clean, -1)
	chapters := New().Segment(clean)
	require.Len(t, chapters, len(matches))

	for i, m := range matches {
		end := len(clean)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		require.Equal(t, strings.TrimSpace(clean[m[0]:end]), chapters[i].Content)
	}
}

func TestSegment_TitleOnlyChapter(t *testing.T) {
	// Two adjacent headings yield a chapter whose content is just its own
	// heading line. The source text's structure dictates this.
	clean := "CHAPTER I.\nCHAPTER II.\nactual text"

	chapters := New().Segment(clean)

	require.Len(t, chapters, 2)
	require.Equal(t, "CHAPTER I.", chapters[0].Content)
}

func TestSegment_EmptyInput(t *testing.T) {
	chapters := New().Segment("")

	require.Len(t, chapters, 1)
	require.Equal(t, FallbackTitle, chapters[0].Title)
	require.Empty(t, chapters[0].Content)
}

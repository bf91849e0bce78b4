// Package segment implements the Segmenter interface.
// It splits normalized prose into chapters by matching heading lines with a
// heuristic pattern. Heading detection is best-effort by design: texts with
// non-standard conventions fall back to a single chapter covering the whole
// text, which downstream consumers treat as a one-chapter book.
package segment

import (
	"regexp"
	"strings"

	"github.com/tdavies-dev/gutenshad/core"
)

// FallbackTitle is the chapter title used when no headings are found.
const FallbackTitle = "Full Text"

// HeadingPattern matches a chapter heading at the start of a line:
// a Chapter/Book/Part keyword followed by a roman or decimal numeral, a bare
// roman numeral (terminated by a period or end of line), or a decimal numeral
// with a trailing period. Roman numerals are matched uppercase only; a
// lowercase "i" opening a sentence is far more common than a lowercase
// chapter number. Lines like "1. Introduction" are accepted as headings even
// when they are really list items — the known cost of the heuristic.
var HeadingPattern = regexp.MustCompile(
	`(?m)^(?:(?i:chapter|book|part)[ \t]+(?:\d+|[IVXLCDM]+)\.?|[IVXLCDM]+\.|[IVXLCDM]+[ \t]*$|\d+\.)`,
)

// IsHeading reports whether the line begins with a chapter heading.
func IsHeading(line string) bool {
	loc := HeadingPattern.FindStringIndex(line)
	return loc != nil && loc[0] == 0
}

// HeadingSegmenter splits clean text into chapters at heading boundaries.
type HeadingSegmenter struct{}

// New creates a HeadingSegmenter.
func New() *HeadingSegmenter {
	return &HeadingSegmenter{}
}

// Segment splits the text into chapters. Each chapter spans from one heading
// match to the next (the heading line itself is part of the chapter content);
// the chapter title is the matched heading text. Always returns at least one
// chapter: with zero heading matches the whole text becomes a single chapter
// titled FallbackTitle.
func (s *HeadingSegmenter) Segment(clean string) []core.Chapter {
	matches := HeadingPattern.FindAllStringIndex(clean, -1)
	if len(matches) == 0 {
		return []core.Chapter{{
			Title:   FallbackTitle,
			Content: strings.TrimSpace(clean),
		}}
	}

	chapters := make([]core.Chapter, 0, len(matches))
	for i, m := range matches {
		end := len(clean)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		chapters = append(chapters, core.Chapter{
			Title:   strings.TrimSpace(clean[m[0]:m[1]]),
			Content: strings.TrimSpace(clean[m[0]:end]),
		})
	}
	return chapters
}

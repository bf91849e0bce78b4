// Package normalize implements the Normalizer interface.
// It strips the licensing/provenance banners that surround Project Gutenberg
// texts and normalizes whitespace, producing clean prose for segmentation.
// Normalization is total: with no recognizable markers the input is kept
// whole, which is safer than discarding unknown content.
package normalize

import (
	"regexp"
	"strings"

	"github.com/tdavies-dev/gutenshad/core/segment"
)

// Banner tokens marking the boundaries of the actual work. Both spaced and
// unspaced variants appear in the wild.
var (
	startBanner = regexp.MustCompile(`(?i)\*\*\*\s*START OF`)
	endBanner   = regexp.MustCompile(`(?i)\*\*\*\s*END OF`)

	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// BoilerplateNormalizer strips header/footer boilerplate and whitespace noise.
type BoilerplateNormalizer struct{}

// New creates a BoilerplateNormalizer.
func New() *BoilerplateNormalizer {
	return &BoilerplateNormalizer{}
}

// Normalize cleans raw text:
//  1. Line endings are normalized to LF.
//  2. Everything up to and including the start-of-content banner is dropped.
//     The banner wins even when a heading-like line precedes it; only in
//     banner-less texts does the first chapter heading count as the
//     content-start signal (the heading itself is kept), which can trim a
//     preface that precedes the first heading.
//  3. Everything from the end-of-content banner onward is dropped.
//  4. Runs of 3+ newlines collapse to 2 and the result is trimmed.
func (n *BoilerplateNormalizer) Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	start := 0
	bannerFound := false
	for i, line := range lines {
		if startBanner.MatchString(line) {
			start = i + 1 // banner line itself is boilerplate
			bannerFound = true
			break
		}
	}
	if !bannerFound {
		for i, line := range lines {
			if segment.IsHeading(strings.TrimSpace(line)) {
				start = i
				break
			}
		}
	}

	end := len(lines)
	for i := len(lines) - 1; i >= start; i-- {
		if endBanner.MatchString(lines[i]) {
			end = i
			break
		}
	}

	text = strings.Join(lines[start:end], "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

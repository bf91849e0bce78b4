// Package fetch implements the Fetcher interface against Project Gutenberg.
// It performs HTTP GET requests with sensible defaults for batch ingestion
// and classifies failures into transport and status errors.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/tdavies-dev/gutenshad/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "gutenshad/1.0 (https://github.com/tdavies-dev/gutenshad)"

	// Deterministic edition addresses. The plain-text edition is the one
	// supported source convention; the HTML edition exists only as an
	// opt-in fallback for books with no plain-text file.
	textURLFormat = "https://www.gutenberg.org/cache/epub/%d/pg%d.txt"
	htmlURLFormat = "https://www.gutenberg.org/cache/epub/%d/pg%d-images.html"
)

// GutenbergFetcher fetches book texts from Project Gutenberg.
type GutenbergFetcher struct {
	client       *http.Client
	baseText     string
	baseHTML     string
	htmlFallback bool
}

// Option configures a GutenbergFetcher.
type Option func(*GutenbergFetcher)

// WithBaseURLs overrides the edition URL formats. Used by tests to point the
// fetcher at a local server; each format must contain two %d verbs.
func WithBaseURLs(textFormat, htmlFormat string) Option {
	return func(f *GutenbergFetcher) {
		f.baseText = textFormat
		f.baseHTML = htmlFormat
	}
}

// WithHTMLFallback enables fetching the HTML edition when the plain-text
// edition returns 404. The HTML is converted to text before being returned.
func WithHTMLFallback(enabled bool) Option {
	return func(f *GutenbergFetcher) { f.htmlFallback = enabled }
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *GutenbergFetcher) { f.client.Timeout = d }
}

// New creates a GutenbergFetcher with a sensible timeout.
func New(opts ...Option) *GutenbergFetcher {
	f := &GutenbergFetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		baseText: textURLFormat,
		baseHTML: htmlURLFormat,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the raw text of the book with the given external ID.
// Non-2xx responses become *core.StatusError; network failures become
// *core.TransportError.
func (f *GutenbergFetcher) Fetch(ctx context.Context, externalID int) (string, error) {
	url := fmt.Sprintf(f.baseText, externalID, externalID)
	body, err := f.get(ctx, url)
	if err == nil {
		return body, nil
	}

	var statusErr *core.StatusError
	if f.htmlFallback && errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return f.fetchHTML(ctx, externalID)
	}
	return "", err
}

// fetchHTML retrieves the HTML edition and converts it to plain text.
func (f *GutenbergFetcher) fetchHTML(ctx context.Context, externalID int) (string, error) {
	url := fmt.Sprintf(f.baseHTML, externalID, externalID)
	html, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	text, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML edition: %w", err)
	}
	return text, nil
}

// get performs a single GET and classifies the failure modes.
func (f *GutenbergFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/plain,text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &core.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &core.StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.TransportError{URL: url, Err: err}
	}
	return string(body), nil
}

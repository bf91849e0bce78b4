// Package catalog — discovery of new catalog entries.
// Scrapes the Project Gutenberg "top 100" page for titles and ebook IDs,
// keeping scraping logic separate from the ingest pipeline. Entries whose ID
// cannot be read from the page link are resolved through the gutendex API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tdavies-dev/gutenshad/core"
)

const (
	topBooksURL = "https://www.gutenberg.org/browse/scores/top"
	gutendexURL = "https://gutendex.com/books/"
)

var ebookHref = regexp.MustCompile(`/ebooks/(\d+)$`)

// Discoverer finds catalog entries from Gutenberg's popularity listings.
type Discoverer struct {
	client  *http.Client
	listURL string
	apiURL  string
}

// NewDiscoverer creates a Discoverer with a sensible timeout.
func NewDiscoverer() *Discoverer {
	return &Discoverer{
		client:  &http.Client{Timeout: 30 * time.Second},
		listURL: topBooksURL,
		apiURL:  gutendexURL,
	}
}

// NewDiscovererWithURLs creates a Discoverer against custom endpoints.
// Used by tests to point discovery at a local server.
func NewDiscovererWithURLs(listURL, apiURL string) *Discoverer {
	d := NewDiscoverer()
	d.listURL = listURL
	d.apiURL = apiURL
	return d
}

// DiscoverTop scrapes the top-books page and returns up to limit entries
// keyed by a slug derived from the title. Duplicate titles are dropped.
func (d *Discoverer) DiscoverTop(ctx context.Context, limit int) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &core.TransportError{URL: d.listURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.StatusError{URL: d.listURL, Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing top books page: %w", err)
	}

	entries := make(map[string]core.BookInfo)
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(entries) >= limit {
			return false
		}
		href, _ := s.Attr("href")
		m := ebookHref.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id < 1 {
			return true
		}

		title, author := splitTitleAuthor(s.Text())
		if title == "" || seen[title] {
			return true
		}
		seen[title] = true

		// A title with no slug-safe characters would produce an empty
		// catalog key; skip it rather than store under "".
		slug := Slugify(title)
		if slug == "" {
			return true
		}

		entries[slug] = core.BookInfo{
			ExternalID: id,
			Title:      title,
			Author:     author,
		}
		return true
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("no ebook links found on %s", d.listURL)
	}
	return fromMap(entries), nil
}

// ResolveID searches the gutendex API for a book and returns its Gutenberg
// ID. Used when an entry is known by title/author only.
func (d *Discoverer) ResolveID(ctx context.Context, title, author string) (int, error) {
	query := url.Values{}
	query.Set("search", strings.TrimSpace(title+" "+author))
	query.Set("languages", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return 0, &core.TransportError{URL: d.apiURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &core.StatusError{URL: d.apiURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &core.TransportError{URL: d.apiURL, Err: err}
	}

	var result struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("parsing gutendex response: %w", err)
	}
	if len(result.Results) == 0 {
		return 0, fmt.Errorf("no gutendex results for %q by %q", title, author)
	}
	return result.Results[0].ID, nil
}

// splitTitleAuthor parses the "Title by Author (12345)" convention used on
// the top-books page. The trailing parenthesized download count is dropped.
func splitTitleAuthor(text string) (title, author string) {
	text = strings.TrimSpace(text)
	// Strip the trailing "(download count)".
	if i := strings.LastIndex(text, "("); i > 0 {
		text = strings.TrimSpace(text[:i])
	}
	if i := strings.LastIndex(text, " by "); i > 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(" by "):])
	}
	return text, "Unknown"
}

// Slugify converts a title into a stable catalog key: lowercase, alphanumeric
// runs joined by hyphens, capped to a filesystem-friendly length.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, ch := range strings.ToLower(title) {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'):
			b.WriteRune(ch)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 100 {
		slug = strings.Trim(slug[:100], "-")
	}
	return slug
}

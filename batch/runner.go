// Package batch drives the full catalog through the ingest pipeline:
// cache-check → fetch → normalize → segment → store, one entry at a time or
// with bounded concurrency. Entry failures are isolated: a bad book is
// recorded in its outcome and the run continues.
package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tdavies-dev/gutenshad/catalog"
	"github.com/tdavies-dev/gutenshad/core"
)

// Status is the terminal state of one catalog entry's pipeline run.
type Status string

const (
	// StatusDone — fetched, processed, and stored in this run.
	StatusDone Status = "done"
	// StatusCached — artifact already present; the fetcher was not invoked.
	StatusCached Status = "cached"
	// StatusFailed — a fetch or store boundary failed; see Outcome.Err.
	StatusFailed Status = "failed"
	// StatusSkipped — the run was cancelled before this entry was dispatched.
	StatusSkipped Status = "skipped"
)

// Outcome records the result of one catalog entry.
type Outcome struct {
	Key      string
	Info     core.BookInfo
	Status   Status
	Chapters int
	Err      error
}

// Runner owns the pipeline stages and processes a whole catalog.
type Runner struct {
	Catalog    *catalog.Catalog
	Fetcher    core.Fetcher
	Normalizer core.Normalizer
	Segmenter  core.Segmenter
	Store      core.Store

	// Concurrency bounds the number of in-flight entries; values < 1 mean
	// sequential. Distinct entries never share a storage key, so no
	// locking is needed between them.
	Concurrency int

	// Limiter paces fetches against the shared remote source. Nil means
	// no pacing.
	Limiter *rate.Limiter

	Logger *slog.Logger
}

// Run processes every catalog entry and returns one outcome per entry, in
// catalog key order. Cancellation stops dispatching new entries; in-flight
// entries finish and undispatched ones are reported as skipped.
func (r *Runner) Run(ctx context.Context) []Outcome {
	keys := r.Catalog.Keys()
	outcomes := make([]Outcome, len(keys))

	g := new(errgroup.Group)
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, key := range keys {
		if ctx.Err() != nil {
			outcomes[i] = Outcome{Key: key, Status: StatusSkipped, Err: ctx.Err()}
			continue
		}
		g.Go(func() error {
			outcomes[i] = r.processEntry(ctx, key)
			return nil
		})
	}
	g.Wait()

	return outcomes
}

// processEntry runs the pipeline for a single catalog key.
func (r *Runner) processEntry(ctx context.Context, key string) Outcome {
	log := r.logger().With("key", key)

	info, err := r.Catalog.Lookup(key)
	if err != nil {
		return Outcome{Key: key, Status: StatusFailed, Err: err}
	}

	// Cache-first: never re-fetch a key that is already stored.
	if r.Store.Has(key) {
		book, err := r.Store.Read(key)
		if err != nil {
			log.Warn("cached artifact unreadable", "error", err)
			return Outcome{Key: key, Info: info, Status: StatusFailed, Err: err}
		}
		log.Debug("cache hit", "chapters", book.TotalChapters)
		return Outcome{Key: key, Info: info, Status: StatusCached, Chapters: book.TotalChapters}
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			return Outcome{Key: key, Info: info, Status: StatusSkipped, Err: err}
		}
	}

	log.Info("fetching", "id", info.ExternalID)
	raw, err := r.Fetcher.Fetch(ctx, info.ExternalID)
	if err != nil {
		log.Warn("fetch failed", "error", err)
		return Outcome{Key: key, Info: info, Status: StatusFailed, Err: err}
	}

	clean := r.Normalizer.Normalize(raw)
	chapters := r.Segmenter.Segment(clean)
	book := core.NewBook(info, chapters)

	if err := r.Store.Write(key, book); err != nil {
		log.Warn("store write failed", "error", err)
		return Outcome{Key: key, Info: info, Status: StatusFailed, Err: err}
	}

	log.Info("stored", "chapters", book.TotalChapters)
	return Outcome{Key: key, Info: info, Status: StatusDone, Chapters: book.TotalChapters}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Summary tallies outcomes by status.
type Summary struct {
	Done    int
	Cached  int
	Failed  int
	Skipped int
}

// Summarize counts outcomes by terminal status.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusDone:
			s.Done++
		case StatusCached:
			s.Cached++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

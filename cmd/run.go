// Package cmd — run command.
// This is the main command that orchestrates the batch pipeline:
// catalog → cache-check → fetch → normalize → segment → store, with a
// per-entry outcome table at the end of the run.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/tdavies-dev/gutenshad/batch"
	"github.com/tdavies-dev/gutenshad/catalog"
	"github.com/tdavies-dev/gutenshad/core/fetch"
	"github.com/tdavies-dev/gutenshad/core/normalize"
	"github.com/tdavies-dev/gutenshad/core/segment"
	"github.com/tdavies-dev/gutenshad/core/store"
)

// Flag variables.
var (
	flagCatalog      string
	flagStoreDir     string
	flagKeys         []string
	flagConcurrency  int
	flagRate         float64
	flagTimeout      time.Duration
	flagHTMLFallback bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingest pipeline over the catalog",
	Long: `Run processes every catalog entry: entries already cached are skipped,
the rest are fetched from Project Gutenberg, cleaned, segmented into
chapters, and stored as JSON artifacts. One entry's failure never aborts
the batch.

Examples:
  gutenshad run
  gutenshad run --store-dir ./data/books --concurrency 4
  gutenshad run --catalog catalog.yaml --key moby-dick --key dracula`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Catalog YAML file (default: built-in catalog)")
	runCmd.Flags().StringVar(&flagStoreDir, "store-dir", "", "Artifact directory (default: data/books)")
	runCmd.Flags().StringArrayVar(&flagKeys, "key", nil, "Process only the given catalog key (repeatable)")
	runCmd.Flags().IntVar(&flagConcurrency, "concurrency", 1, "Max in-flight entries")
	runCmd.Flags().Float64Var(&flagRate, "rate", 0.5, "Max fetches per second (0 disables pacing)")
	runCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Per-request HTTP timeout")
	runCmd.Flags().BoolVar(&flagHTMLFallback, "html-fallback", false, "Fetch the HTML edition when no plain-text file exists")
}

func runRun(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	// --key narrows the run but still validates against the catalog.
	if len(flagKeys) > 0 {
		cat, err = cat.Subset(flagKeys)
		if err != nil {
			return err
		}
	}

	st, err := store.New(flagStoreDir)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	var limiter *rate.Limiter
	if flagRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(flagRate), 1)
	}

	runner := &batch.Runner{
		Catalog: cat,
		Fetcher: fetch.New(
			fetch.WithTimeout(flagTimeout),
			fetch.WithHTMLFallback(flagHTMLFallback),
		),
		Normalizer:  normalize.New(),
		Segmenter:   segment.New(),
		Store:       st,
		Concurrency: flagConcurrency,
		Limiter:     limiter,
	}

	// Ctrl-C stops dispatching new entries; in-flight ones finish.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stdout, "Processing %d catalog entries into %s\n", cat.Len(), st.Root)
	outcomes := runner.Run(ctx)
	printOutcomes(outcomes)

	summary := batch.Summarize(outcomes)
	fmt.Fprintf(os.Stdout, "\n✓ %d stored, %d cached, %d failed, %d skipped\n",
		summary.Done, summary.Cached, summary.Failed, summary.Skipped)
	return failureErr(summary, len(outcomes))
}

// failureErr converts the batch summary into the command's exit status so
// scripted runs can detect partial failure.
func failureErr(s batch.Summary, total int) error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d entries failed", s.Failed, total)
}

// loadCatalog returns the catalog from --catalog if set, else the built-in.
func loadCatalog() (*catalog.Catalog, error) {
	if flagCatalog != "" {
		return catalog.Load(flagCatalog)
	}
	return catalog.Default(), nil
}

// printOutcomes renders the per-entry outcome table.
func printOutcomes(outcomes []batch.Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Key", "Title", "Status", "Chapters", "Error"})
	for _, o := range outcomes {
		t.AppendRow(table.Row{o.Key, o.Info.Title, o.Status, o.Chapters, describeErr(o.Err)})
	}
	t.Render()
}

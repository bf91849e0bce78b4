// Package cmd — discover command.
// Builds a catalog YAML from Project Gutenberg's top-100 listing so the run
// command has something richer than the built-in table to work from.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdavies-dev/gutenshad/catalog"
)

var (
	flagDiscoverLimit int
	flagDiscoverOut   string
	flagResolveTitle  string
	flagResolveAuthor string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scrape the Gutenberg top-100 page into a catalog file",
	Long: `Discover scrapes the Project Gutenberg "top 100" listing, derives a slug
for each title, and writes the result as a catalog YAML usable with
"gutenshad run --catalog".

Examples:
  gutenshad discover --out catalog.yaml
  gutenshad discover --limit 25`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().IntVar(&flagDiscoverLimit, "limit", 100, "Max entries to discover")
	discoverCmd.Flags().StringVar(&flagDiscoverOut, "out", "catalog.yaml", "Output catalog file")
	discoverCmd.Flags().StringVar(&flagResolveTitle, "resolve", "", "Resolve one title to its ebook ID via gutendex instead of scraping")
	discoverCmd.Flags().StringVar(&flagResolveAuthor, "author", "", "Author hint used with --resolve")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	d := catalog.NewDiscoverer()

	if flagResolveTitle != "" {
		id, err := d.ResolveID(context.Background(), flagResolveTitle, flagResolveAuthor)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", flagResolveTitle, err)
		}
		fmt.Fprintf(os.Stdout, "%s: %d\n", flagResolveTitle, id)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Discovering up to %d books...\n", flagDiscoverLimit)
	cat, err := d.DiscoverTop(context.Background(), flagDiscoverLimit)
	if err != nil {
		return fmt.Errorf("discovering catalog: %w", err)
	}

	data, err := cat.ToYAML()
	if err != nil {
		return fmt.Errorf("serializing catalog: %w", err)
	}
	if err := os.WriteFile(flagDiscoverOut, data, 0644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s (%d entries)\n", flagDiscoverOut, cat.Len())
	return nil
}

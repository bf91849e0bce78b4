// Package cmd — export command.
// Regenerates consumer-facing indexes (manifest.json, statistics.json) by
// scanning the store, and optionally renders a single cached book as a PDF.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tdavies-dev/gutenshad/core/render"
	"github.com/tdavies-dev/gutenshad/core/store"
)

var (
	flagExportStats bool
	flagExportPDF   string
	flagExportDir   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the manifest and optional extras from the store",
	Long: `Export scans the artifact store and writes manifest.json, an index of
every cached book for downstream consumers. Both the manifest and the
optional statistics file are regenerable at any time and never
authoritative over the per-book artifacts.

Examples:
  gutenshad export
  gutenshad export --stats
  gutenshad export --pdf moby-dick --output-dir ./out`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&flagStoreDir, "store-dir", "", "Artifact directory (default: data/books)")
	exportCmd.Flags().BoolVar(&flagExportStats, "stats", false, "Also write statistics.json")
	exportCmd.Flags().StringVar(&flagExportPDF, "pdf", "", "Render the given catalog key as a PDF")
	exportCmd.Flags().StringVar(&flagExportDir, "output-dir", ".", "Directory for PDF output")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := store.New(flagStoreDir)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	path, err := st.WriteManifest()
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)

	if flagExportStats {
		path, err := st.WriteStatistics()
		if err != nil {
			return fmt.Errorf("writing statistics: %w", err)
		}
		fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	}

	if flagExportPDF != "" {
		if err := exportPDF(st, flagExportPDF, flagExportDir); err != nil {
			return err
		}
	}
	return nil
}

// exportPDF renders one cached book as a PDF next to the other outputs.
func exportPDF(st *store.FileStore, key, dir string) error {
	book, err := st.Read(key)
	if err != nil {
		return fmt.Errorf("reading %q: %w", key, err)
	}

	renderer := render.NewPDFRenderer()
	data, err := renderer.Render(book)
	if err != nil {
		return fmt.Errorf("rendering %q: %w", key, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, key+renderer.Extension())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

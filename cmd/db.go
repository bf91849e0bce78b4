// Package cmd — db command.
// Loads every cached artifact into a SQLite database for consumers that want
// relational queries over books and chapters.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdavies-dev/gutenshad/core/db"
	"github.com/tdavies-dev/gutenshad/core/store"
)

var flagDBPath string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Populate a SQLite database from the store",
	Long: `Db scans the artifact store and loads each book and its chapters into a
SQLite database. Re-running replaces existing rows, so the database always
mirrors the store.

Examples:
  gutenshad db
  gutenshad db --db data/books.db --store-dir ./data/books`,
	Args: cobra.NoArgs,
	RunE: runDB,
}

func init() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.Flags().StringVar(&flagStoreDir, "store-dir", "", "Artifact directory (default: data/books)")
	dbCmd.Flags().StringVar(&flagDBPath, "db", "data/books.db", "SQLite database path")
}

func runDB(cmd *cobra.Command, args []string) error {
	st, err := store.New(flagStoreDir)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	bdb, err := db.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer bdb.Close()

	ctx := context.Background()
	inserted, err := bdb.Populate(ctx, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Some books failed: %v\n", err)
	}

	books, chapters, words, err := bdb.Counts(ctx)
	if err != nil {
		return fmt.Errorf("reading counts: %w", err)
	}

	fmt.Fprintf(os.Stdout, "✓ Inserted %d books (%d total, %d chapters, %d words) into %s\n",
		inserted, books, chapters, words, flagDBPath)
	return nil
}

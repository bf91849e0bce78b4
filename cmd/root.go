// Package cmd implements the CLI commands for gutenshad using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "gutenshad",
	Short: "gutenshad — ingest public-domain books into structured artifacts",
	Long: `gutenshad is a batch pipeline that fetches public-domain texts from
Project Gutenberg, strips their boilerplate, segments them into chapters,
and caches each book as a JSON artifact keyed by a catalog slug.

Usage:
  gutenshad run [flags]`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// describeErr renders an error for table output; nil becomes empty.
func describeErr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

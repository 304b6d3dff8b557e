package cmd

import (
	"fmt"
	"log/slog"

	"github.com/pagemend/pagemend/internal/batch"
	"github.com/pagemend/pagemend/internal/layout"
	"github.com/pagemend/pagemend/internal/pagexml"
	"github.com/spf13/cobra"
)

// statsCmd prints element counts for the given pages.
var statsCmd = &cobra.Command{
	Use:   "stats [files...]",
	Short: "Print element statistics for PAGE XML files",
	Long: `Collect statistics about PAGE XML files.

Counts text regions, table regions, text lines, words, and glyphs per
file and summed over all files.

Examples:
  pagemend stats pages/
  pagemend stats pages/ --format json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runStatsCommand,
}

func runStatsCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	recursive, _ := cmd.Flags().GetBool("recursive")
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	files, err := batch.CollectXMLFiles(args, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return batch.ErrNoFiles
	}

	log := slog.Default()
	var totals layout.Totals
	for _, path := range files {
		file, err := pagexml.Load(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		doc, err := pagexml.BuildDocument(file, log)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		t := doc.CountAll()
		t.LogStatistics(log, path)
		totals.Add(t)
	}

	out, err := batch.FormatTotals(totals, format)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Statistics for %d files:\n%s", len(files), out)
	return nil
}

func init() {
	statsCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	statsCmd.Flags().String("format", "text", "output format (text, json)")
	rootCmd.AddCommand(statsCmd)
}

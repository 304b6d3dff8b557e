package cmd

import (
	"github.com/pagemend/pagemend/internal/batch"
	"github.com/spf13/cobra"
)

// sortMergeCmd sorts lines into reading order and merges split lines.
var sortMergeCmd = &cobra.Command{
	Use:   "sort-merge [files...]",
	Short: "Sort lines into reading order and merge wrongly split lines",
	Long: `Sort and merge text lines in PAGE XML files.

Within each region, lines are sorted top to bottom with side-by-side lines
ordered left to right. Neighbouring lines whose baselines nearly touch are
merged into one line, joining shapes, baselines, and text.

Examples:
  pagemend sort-merge pages/
  pagemend sort-merge pages/ --merge-gap-x 64 --merge-gap-y 10`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runSortMergeCommand,
}

func runSortMergeCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	mc := cfg.Merge
	if cmd.Flags().Changed("merge-gap-x") {
		mc.MaxXGap, _ = cmd.Flags().GetInt("merge-gap-x")
	}
	if cmd.Flags().Changed("merge-gap-y") {
		mc.MaxYGap, _ = cmd.Flags().GetInt("merge-gap-y")
	}

	return runBatch(cmd, args, batch.SortMergeOperation(mc), batchConfigFrom(cfg, cmd))
}

func init() {
	addBatchFlags(sortMergeCmd)
	sortMergeCmd.Flags().Int("merge-gap-x", 64, "maximum horizontal baseline gap for merging")
	sortMergeCmd.Flags().Int("merge-gap-y", 10, "maximum vertical baseline gap for merging")
	rootCmd.AddCommand(sortMergeCmd)
}

package cmd

import (
	"github.com/pagemend/pagemend/internal/batch"
	"github.com/spf13/cobra"
)

// splitCmd splits multi-column regions along the detected divide.
var splitCmd = &cobra.Command{
	Use:   "split [files...]",
	Short: "Split multi-column regions along the column divide",
	Long: `Split text regions that span multiple columns.

The x positions of the line centroids are clustered; when the outer
clusters are far enough apart, the region is split at their mean and each
side gets a padded hull of its lines. Regions that do not look multi-column
are left unchanged.

Examples:
  pagemend split pages/
  pagemend split pages/ --min-distance 300 --padding 8`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runSplitCommand,
}

func runSplitCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	sc := cfg.Split
	if cmd.Flags().Changed("columns") {
		sc.Columns, _ = cmd.Flags().GetInt("columns")
	}
	if cmd.Flags().Changed("padding") {
		sc.Padding, _ = cmd.Flags().GetFloat64("padding")
	}
	if cmd.Flags().Changed("min-distance") {
		sc.MinMeanGroupDistance, _ = cmd.Flags().GetInt("min-distance")
	}
	if cmd.Flags().Changed("subtract-overlap") {
		sc.SubtractSmallFromBig, _ = cmd.Flags().GetBool("subtract-overlap")
	}

	return runBatch(cmd, args, batch.SplitOperation(sc), batchConfigFrom(cfg, cmd))
}

func init() {
	addBatchFlags(splitCmd)
	splitCmd.Flags().Int("columns", 2, "number of columns to split into")
	splitCmd.Flags().Float64("padding", 12, "padding around each split region")
	splitCmd.Flags().Int("min-distance", 500, "minimum distance between column cluster means")
	splitCmd.Flags().Bool("subtract-overlap", true, "carve the smaller region out of the larger")
	rootCmd.AddCommand(splitCmd)
}

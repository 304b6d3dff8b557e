package cmd

import (
	"github.com/pagemend/pagemend/internal/batch"
	"github.com/spf13/cobra"
)

// extendCmd grows line shapes and baselines to their usable extent.
var extendCmd = &cobra.Command{
	Use:   "extend [files...]",
	Short: "Extend line shapes and baselines",
	Long: `Extend the text lines and baselines in PAGE XML files.

Each line shape is padded horizontally into a rectangle, clipped to its
parent region, and cut against the preceding line where the two overlap.
Baselines are extended to the new shape bounds; missing baselines can be
derived from the line shape.

Examples:
  pagemend extend pages/
  pagemend extend pages/ --distance 8 --cut-overlaps=false`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runExtendCommand,
}

func runExtendCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	ec := cfg.Extend
	if cmd.Flags().Changed("distance") {
		ec.Distance, _ = cmd.Flags().GetFloat64("distance")
	}
	if cmd.Flags().Changed("cut-overlaps") {
		ec.CutOverlaps, _ = cmd.Flags().GetBool("cut-overlaps")
	}
	if cmd.Flags().Changed("create-missing") {
		ec.CreateMissing, _ = cmd.Flags().GetBool("create-missing")
	}

	return runBatch(cmd, args, batch.ExtendOperation(ec), batchConfigFrom(cfg, cmd))
}

func init() {
	addBatchFlags(extendCmd)
	extendCmd.Flags().Float64("distance", 16, "padding distance for line shapes")
	extendCmd.Flags().Bool("cut-overlaps", true, "resolve overlap with the preceding line")
	extendCmd.Flags().Bool("create-missing", true, "derive a baseline where none exists")
	rootCmd.AddCommand(extendCmd)
}

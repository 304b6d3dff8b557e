package cmd

import (
	"github.com/pagemend/pagemend/internal/batch"
	"github.com/spf13/cobra"
)

// repairCmd fixes broken line shapes and baselines.
var repairCmd = &cobra.Command{
	Use:   "repair [files...]",
	Short: "Repair broken line shapes and baselines",
	Long: `Repair PAGE XML files by fixing common geometry defects.

Per text line, repeated points are removed, self-intersecting or otherwise
invalid shapes are replaced by their convex hull, and baselines are
validated and repaired against the line shape. Regions without any text
line are reported.

Examples:
  pagemend repair pages/
  pagemend repair pages/ --output-dir fixed/ --dedup-tolerance 2
  pagemend repair pages/ --dry-run`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runRepairCommand,
}

func runRepairCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	rc := cfg.Repair
	if cmd.Flags().Changed("dedup-tolerance") {
		rc.DedupTolerance, _ = cmd.Flags().GetFloat64("dedup-tolerance")
	}
	if cmd.Flags().Changed("simplify-tolerance") {
		rc.SimplifyTolerance, _ = cmd.Flags().GetFloat64("simplify-tolerance")
	}
	if cmd.Flags().Changed("fit-into-parent") {
		rc.FitIntoParent, _ = cmd.Flags().GetBool("fit-into-parent")
	}
	if cmd.Flags().Changed("update-baselines") {
		rc.UpdateBaseline, _ = cmd.Flags().GetBool("update-baselines")
	}

	return runBatch(cmd, args, batch.RepairOperation(rc), batchConfigFrom(cfg, cmd))
}

func init() {
	addBatchFlags(repairCmd)
	repairCmd.Flags().Float64("dedup-tolerance", 1, "distance below which consecutive points collapse")
	repairCmd.Flags().Float64("simplify-tolerance", 0, "simplify shapes with this tolerance (0 disables)")
	repairCmd.Flags().Bool("fit-into-parent", false, "clip line shapes to their parent region")
	repairCmd.Flags().Bool("update-baselines", true, "rewrite baselines with repairable points")
	rootCmd.AddCommand(repairCmd)
}

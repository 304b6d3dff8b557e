package cmd

import (
	"github.com/pagemend/pagemend/internal/batch"
	"github.com/spf13/cobra"
)

// validateCmd checks documents without modifying them.
var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate line shapes, baselines, and transcriptions",
	Long: `Validate PAGE XML files without modifying them.

Every text line is checked for a usable transcription, a valid closed
polygon without self-intersections, containment in its parent region, and
a baseline covered by the line shape. Findings are logged; regions without
any text line are reported.

Examples:
  pagemend validate page_0001.xml
  pagemend validate pages/ --recursive`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runValidateCommand,
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	bc := batchConfigFrom(cfg, cmd)
	// Validation never writes.
	bc.DryRun = true
	return runBatch(cmd, args, batch.ValidateOperation(), bc)
}

func init() {
	addBatchFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

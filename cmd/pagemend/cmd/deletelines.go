package cmd

import (
	"github.com/pagemend/pagemend/internal/batch"
	"github.com/spf13/cobra"
)

// deleteLinesCmd strips all text line elements.
var deleteLinesCmd = &cobra.Command{
	Use:   "delete-lines [files...]",
	Short: "Delete all text line elements",
	Long: `Delete every TextLine element from PAGE XML files, keeping the
regions themselves.

Examples:
  pagemend delete-lines pages/
  pagemend delete-lines pages/ --output-dir stripped/`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runDeleteLinesCommand,
}

func runDeleteLinesCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	return runBatch(cmd, args, batch.DeleteLinesOperation(), batchConfigFrom(cfg, cmd))
}

func init() {
	addBatchFlags(deleteLinesCmd)
	rootCmd.AddCommand(deleteLinesCmd)
}

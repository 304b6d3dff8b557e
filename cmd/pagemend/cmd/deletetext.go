package cmd

import (
	"fmt"

	"github.com/pagemend/pagemend/internal/batch"
	"github.com/pagemend/pagemend/internal/layout"
	"github.com/spf13/cobra"
)

// deleteTextCmd removes text content at a chosen level.
var deleteTextCmd = &cobra.Command{
	Use:   "delete-text [files...]",
	Short: "Delete text content at the region, line, or word level",
	Long: `Delete text elements at the specified level in PAGE XML files.

Level region removes region-level transcriptions, line removes line-level
transcriptions, and word removes the word elements themselves.

Examples:
  pagemend delete-text pages/ --level region
  pagemend delete-text pages/ --level word --output-dir stripped/`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runDeleteTextCommand,
}

func runDeleteTextCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	levelFlag, _ := cmd.Flags().GetString("level")
	level := layout.TextLevel(levelFlag)
	switch level {
	case layout.LevelRegion, layout.LevelLine, layout.LevelWord:
	default:
		return fmt.Errorf("invalid level %q (expected region, line, or word)", levelFlag)
	}

	return runBatch(cmd, args, batch.DeleteTextOperation(level), batchConfigFrom(cfg, cmd))
}

func init() {
	addBatchFlags(deleteTextCmd)
	deleteTextCmd.Flags().String("level", "region", "deletion level (region, line, word)")
	rootCmd.AddCommand(deleteTextCmd)
}

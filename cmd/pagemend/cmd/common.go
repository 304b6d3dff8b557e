package cmd

import (
	"fmt"
	"time"

	"github.com/pagemend/pagemend/internal/batch"
	"github.com/pagemend/pagemend/internal/config"
	"github.com/spf13/cobra"
)

// addBatchFlags registers the flags shared by every file-processing command.
func addBatchFlags(c *cobra.Command) {
	c.Flags().String("output-dir", "",
		"output directory (default is a PagemendOutput directory next to each input)")
	c.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	c.Flags().Bool("dry-run", false, "process without writing any files")
	c.Flags().Int("workers", 0, "number of parallel workers (default from config)")
	c.Flags().Bool("continue-on-error", true, "keep processing remaining files after a failure")
}

// batchConfigFrom maps the centralized configuration to batch.Config.
// CLI flags override config file values.
func batchConfigFrom(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	bc := &batch.Config{
		Workers:         cfg.Batch.Workers,
		ContinueOnError: cfg.Batch.ContinueOnError,
		OutputDir:       cfg.Output.Dir,
		DryRun:          cfg.Output.DryRun,
	}

	if cmd.Flags().Changed("workers") {
		bc.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("continue-on-error") {
		bc.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}
	if cmd.Flags().Changed("output-dir") {
		bc.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("dry-run") {
		bc.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	bc.Recursive, _ = cmd.Flags().GetBool("recursive")

	return bc
}

// runBatch runs an operation over the input paths and reports failures.
func runBatch(cmd *cobra.Command, args []string, op batch.Operation, bc *batch.Config) error {
	res, err := batch.ProcessPaths(args, op, bc, nil)
	if err != nil {
		return err
	}
	if failed := res.FailedCount(); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(res.Files))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Processed %d files in %s\n",
		len(res.Files), res.Duration.Round(time.Millisecond))
	return nil
}

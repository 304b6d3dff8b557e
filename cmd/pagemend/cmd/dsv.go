package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pagemend/pagemend/internal/batch"
	"github.com/pagemend/pagemend/internal/pagexml"
	"github.com/spf13/cobra"
)

// dsvCmd exports line texts and geometry to delimiter-separated files.
var dsvCmd = &cobra.Command{
	Use:   "dsv [files...]",
	Short: "Export line text and geometry as delimiter-separated values",
	Long: `Extract per-line text and geometry from PAGE XML files into
delimiter-separated value files.

Columns: line id, text, region index, baseline start, mean, and end
points, and the area, width, and length of the line's minimum rotated
rectangle. Geometry columns are -1 where the baseline or shape is missing.
Output goes into a TSV directory next to each input unless an output
directory is given.

Examples:
  pagemend dsv pages/
  pagemend dsv pages/ --delimiter ';' --dehyphenate=false`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runDSVCommand,
}

func runDSVCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	recursive, _ := cmd.Flags().GetBool("recursive")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	dehyphenate, _ := cmd.Flags().GetBool("dehyphenate")

	delimiter := cfg.Output.Delimiter
	if cmd.Flags().Changed("delimiter") {
		delimiter, _ = cmd.Flags().GetString("delimiter")
	}
	if delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}

	files, err := batch.CollectXMLFiles(args, recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return batch.ErrNoFiles
	}

	log := slog.Default()
	for _, path := range files {
		file, err := pagexml.Load(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		doc, err := pagexml.BuildDocument(file, log)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rows := batch.CollectLineInfos(doc, dehyphenate)

		out := batch.DSVPathFor(path, outputDir)
		if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		f, err := os.Create(out) //nolint:gosec // output path derived from CLI arguments
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		err = batch.WriteDSV(f, rows, []rune(delimiter)[0])
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		log.Info("wrote separated value file", "file", out)
	}
	return nil
}

func init() {
	dsvCmd.Flags().String("output-dir", "",
		"output directory (default is a TSV directory next to each input)")
	dsvCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	dsvCmd.Flags().String("delimiter", "\t", "value delimiter")
	dsvCmd.Flags().Bool("dehyphenate", true, "dehyphenate the text column")
	rootCmd.AddCommand(dsvCmd)
}

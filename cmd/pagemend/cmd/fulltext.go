package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pagemend/pagemend/internal/batch"
	"github.com/pagemend/pagemend/internal/layout"
	"github.com/pagemend/pagemend/internal/pagexml"
	"github.com/spf13/cobra"
)

// fulltextCmd extracts the plain text of each page.
var fulltextCmd = &cobra.Command{
	Use:   "fulltext [files...]",
	Short: "Extract the plain text of PAGE XML files",
	Long: `Extract full text from PAGE XML files and save it as text files.

Lines are emitted in reading order when the document carries one.
Dehyphenation joins hyphen-terminated lines with the following line's
first word unless that word is capitalized. Output goes into a Fulltext
directory next to each input unless an output directory is given.

Examples:
  pagemend fulltext pages/
  pagemend fulltext pages/ --output-dir text/ --dehyphenate=false`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runFulltextCommand,
}

func runFulltextCommand(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	dehyphenate, _ := cmd.Flags().GetBool("dehyphenate")
	orderMode, _ := cmd.Flags().GetString("order")

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

		text := doc.FullText(dehyphenate, true, layout.ReadingOrderMode(orderMode), "\n")

		out := batch.FulltextPathFor(path, outputDir)
		if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(out, []byte(text), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		log.Info("wrote text file", "file", out)
	}
	return nil
}

func init() {
	fulltextCmd.Flags().String("output-dir", "",
		"output directory (default is a Fulltext directory next to each input)")
	fulltextCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	fulltextCmd.Flags().Bool("dehyphenate", true, "join hyphen-terminated lines")
	fulltextCmd.Flags().String("order", "auto", "reading order mode (auto, document, reading-order)")
	rootCmd.AddCommand(fulltextCmd)
}

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pagemend/pagemend/internal/pagexml"
)

// DefaultOutputDirName is the sibling directory processed files are written
// to when no explicit output directory is configured.
const DefaultOutputDirName = "PagemendOutput"

// excludedNames are well-known non-page files that share the .xml extension.
var excludedNames = map[string]struct{}{
	"metadata.xml": {},
	"mets.xml":     {},
	"METS.xml":     {},
}

// CollectXMLFiles expands the given file and directory arguments into a
// sorted list of PAGE XML files. Directories are walked recursively when
// requested; known metadata files and XML files whose root element is not
// in the PAGE namespace are skipped.
func CollectXMLFiles(args []string, recursive bool) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			found, err := collectInDirectory(arg, recursive)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if isPageXMLCandidate(arg) {
			files = append(files, arg)
		}
	}

	sort.Strings(files)
	return files, nil
}

// collectInDirectory discovers PAGE XML files in a directory.
func collectInDirectory(dir string, recursive bool) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Never descend into previously produced output.
			if info.Name() == DefaultOutputDirName {
				return filepath.SkipDir
			}
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		if isPageXMLCandidate(path) {
			files = append(files, path)
		}
		return nil
	}

	return files, filepath.Walk(dir, walkFn)
}

// isPageXMLCandidate reports whether the file looks like a PAGE XML page.
func isPageXMLCandidate(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".xml") {
		return false
	}
	if _, excluded := excludedNames[filepath.Base(path)]; excluded {
		return false
	}

	f, err := os.Open(path) //nolint:gosec // path comes from CLI arguments
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	return pagexml.Sniff(f)
}

// OutputPathFor returns the destination path for a processed input file.
// With an empty outputDir the file goes into a sibling PagemendOutput
// directory next to the input.
func OutputPathFor(inputPath, outputDir string) string {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(inputPath), DefaultOutputDirName)
	}
	return filepath.Join(outputDir, filepath.Base(inputPath))
}

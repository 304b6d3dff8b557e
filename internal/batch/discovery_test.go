package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPage = `<?xml version="1.0" encoding="UTF-8"?>
<PcGts xmlns="http://schema.primaresearch.org/PAGE/gts/pagecontent/2019-07-15">
  <Page imageFilename="p.png" imageWidth="1000" imageHeight="1400">
    <TextRegion id="r1">
      <Coords points="0,0 500,0 500,200 0,200"/>
      <TextLine id="l1">
        <Coords points="10,10 490,10 490,40 10,40"/>
        <Baseline points="10,30 490,30"/>
        <TextEquiv><Unicode>hallo welt</Unicode></TextEquiv>
      </TextLine>
    </TextRegion>
  </Page>
</PcGts>
`

func writeTestPage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o600))
}

func TestCollectXMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestPage(t, filepath.Join(dir, "b_page.xml"))
	writeTestPage(t, filepath.Join(dir, "a_page.xml"))
	writeTestPage(t, filepath.Join(dir, "sub", "nested.xml"))
	writeTestPage(t, filepath.Join(dir, "mets.xml"))
	writeTestPage(t, filepath.Join(dir, DefaultOutputDirName, "processed.xml"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.xml"), []byte(`<notes/>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte(`text`), 0o600))

	t.Run("flat", func(t *testing.T) {
		files, err := CollectXMLFiles([]string{dir}, false)
		require.NoError(t, err)
		require.Equal(t, []string{
			filepath.Join(dir, "a_page.xml"),
			filepath.Join(dir, "b_page.xml"),
		}, files)
	})

	t.Run("recursive", func(t *testing.T) {
		files, err := CollectXMLFiles([]string{dir}, true)
		require.NoError(t, err)
		require.Equal(t, []string{
			filepath.Join(dir, "a_page.xml"),
			filepath.Join(dir, "b_page.xml"),
			filepath.Join(dir, "sub", "nested.xml"),
		}, files)
	})

	t.Run("explicit file", func(t *testing.T) {
		files, err := CollectXMLFiles([]string{filepath.Join(dir, "a_page.xml")}, false)
		require.NoError(t, err)
		require.Len(t, files, 1)
	})

	t.Run("explicit non-page file skipped", func(t *testing.T) {
		files, err := CollectXMLFiles([]string{filepath.Join(dir, "notes.xml")}, false)
		require.NoError(t, err)
		require.Empty(t, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := CollectXMLFiles([]string{filepath.Join(dir, "nope")}, false)
		require.Error(t, err)
	})
}

func TestOutputPathFor(t *testing.T) {
	in := filepath.Join("data", "pages", "p_0001.xml")

	require.Equal(t,
		filepath.Join("data", "pages", DefaultOutputDirName, "p_0001.xml"),
		OutputPathFor(in, ""))
	require.Equal(t,
		filepath.Join("out", "p_0001.xml"),
		OutputPathFor(in, "out"))
}

func TestExportPathsFor(t *testing.T) {
	in := filepath.Join("data", "pages", "p_0001.xml")

	require.Equal(t,
		filepath.Join("data", "pages", "Fulltext", "p_0001.txt"),
		FulltextPathFor(in, ""))
	require.Equal(t,
		filepath.Join("txt", "p_0001.txt"),
		FulltextPathFor(in, "txt"))

	require.Equal(t,
		filepath.Join("data", "pages", "TSV", "p_0001.tsv"),
		DSVPathFor(in, ""))
	require.Equal(t,
		filepath.Join("tab", "p_0001.tsv"),
		DSVPathFor(in, "tab"))
}

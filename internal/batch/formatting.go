package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/geometry"
	"github.com/pagemend/pagemend/internal/layout"
)

// LineInfo is one row of the delimiter-separated line export.
type LineInfo struct {
	ID     string
	Text   string
	Region int
	Start  coords.Point
	Mean   coords.Point
	End    coords.Point
	Area   int
	Width  int
	Length int
}

// CollectLineInfos gathers the export rows for every transcribed line.
// Geometry columns fall back to -1 where the baseline or boundary is
// unusable; dehyphenation rewrites the text column only.
func CollectLineInfos(doc *layout.Document, dehyphenate bool) []LineInfo {
	var rows []LineInfo
	for rid, tr := range doc.TextRegions {
		for _, l := range tr.Lines {
			text, ok := l.Text()
			if !ok {
				continue
			}
			row := LineInfo{
				ID:     l.ID,
				Text:   text,
				Region: rid,
				Start:  coords.Point{X: -1, Y: -1},
				Mean:   coords.Point{X: -1, Y: -1},
				End:    coords.Point{X: -1, Y: -1},
				Area:   -1,
				Width:  -1,
				Length: -1,
			}
			fillBaselineColumns(&row, l)
			fillShapeColumns(&row, l)
			rows = append(rows, row)
		}
	}

	if dehyphenate && len(rows) > 0 {
		texts := make([]string, len(rows))
		for i := range rows {
			texts[i] = rows[i].Text
		}
		for i, t := range layout.DehyphenateRows(texts) {
			rows[i].Text = t
		}
	}
	return rows
}

func fillBaselineColumns(row *LineInfo, l *layout.Line) {
	bl, ok := l.Baseline()
	if !ok || len(bl) < 2 {
		return
	}
	pts := bl.Points()
	minX, minY, maxX, maxY := geometry.LineBounds(pts)
	centroid := geometry.LineCentroid(pts)
	row.Start = coords.Point{X: int(minX), Y: int(minY)}
	row.Mean = coords.Point{X: int(centroid.X), Y: int(centroid.Y)}
	row.End = coords.Point{X: int(maxX), Y: int(maxY)}
}

func fillShapeColumns(row *LineInfo, l *layout.Line) {
	rect, err := l.Boundary.MinRotatedRect()
	if err != nil {
		return
	}
	ring := geometry.LargestRing(rect)
	if len(ring) < 3 {
		return
	}
	lengths := make([]float64, 0, len(ring))
	for _, e := range geometry.Edges(ring) {
		lengths = append(lengths, geometry.Dist(e[0], e[1]))
	}
	sort.Float64s(lengths)
	row.Area = int(rect.Area())
	row.Width = int(lengths[0])
	row.Length = int(lengths[len(lengths)-1])
}

// WriteDSV writes the rows as delimiter-separated values with a header.
func WriteDSV(w io.Writer, rows []LineInfo, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	header := []string{"id", "text", "region", "start", "mean", "end", "area", "width", "length"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.Text,
			strconv.Itoa(r.Region),
			formatPoint(r.Start),
			formatPoint(r.Mean),
			formatPoint(r.End),
			strconv.Itoa(r.Area),
			strconv.Itoa(r.Width),
			strconv.Itoa(r.Length),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPoint(p coords.Point) string {
	return fmt.Sprintf("[%d, %d]", p.X, p.Y)
}

// FulltextPathFor returns the text file destination for an input page.
// Without an explicit output directory the file goes into a sibling
// Fulltext directory.
func FulltextPathFor(inputPath, outputDir string) string {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(inputPath), "Fulltext")
	}
	base := filepath.Base(inputPath)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".txt")
}

// DSVPathFor returns the table file destination for an input page. Without
// an explicit output directory the file goes into a sibling TSV directory.
func DSVPathFor(inputPath, outputDir string) string {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(inputPath), "TSV")
	}
	base := filepath.Base(inputPath)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".tsv")
}

// FormatTotals renders aggregated counts in the requested format.
func FormatTotals(t layout.Totals, format string) (string, error) {
	switch format {
	case "json":
		bts, err := json.MarshalIndent(struct {
			TextRegions  int `json:"textregions"`
			TableRegions int `json:"tableregions"`
			TextLines    int `json:"textlines"`
			Words        int `json:"words"`
			Glyphs       int `json:"glyphs"`
		}{t.TextRegions, t.TableRegions, t.TextLines, t.Words, t.Glyphs}, "", "  ")
		return string(bts), err
	default: // text
		var b strings.Builder
		fmt.Fprintf(&b, "text regions:  %d\n", t.TextRegions)
		fmt.Fprintf(&b, "table regions: %d\n", t.TableRegions)
		fmt.Fprintf(&b, "text lines:    %d\n", t.TextLines)
		fmt.Fprintf(&b, "words:         %d\n", t.Words)
		fmt.Fprintf(&b, "glyphs:        %d\n", t.Glyphs)
		return b.String(), nil
	}
}

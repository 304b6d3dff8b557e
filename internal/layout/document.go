// Package layout implements the document-geometry engine for scanned-page
// layout: a typed document/region/line model plus validation, repair,
// overlap resolution, baseline handling, reading-order sorting, line
// merging and column splitting.
package layout

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/pagemend/pagemend/internal/coords"
)

// TextEquiv is one ranked transcription of a region, line or word.
// Rank 0 is the canonical transcription.
type TextEquiv struct {
	Index int
	Text  string
}

// Word is a word-level element within a text line. It is carried for
// counting and text-level deletion; no geometry operation runs on words.
type Word struct {
	ID       string
	Boundary coords.Sequence
	Texts    []TextEquiv
}

// Region is the common shape of every coordinate-bearing element: an
// identifier, an open boundary point sequence and a weak back-reference to
// the owning container's region.
type Region struct {
	ID       string
	Custom   string
	Boundary coords.Sequence
	Texts    []TextEquiv

	parent *Region
	log    *slog.Logger
}

// Parent returns the non-owning back-reference to the containing region,
// or nil for top-level regions whose container has no boundary.
func (r *Region) Parent() *Region { return r.parent }

// SetParent installs the weak back-reference. Ownership always flows
// downward; the parent pointer is for lookup only.
func (r *Region) SetParent(p *Region) { r.parent = p }

// SetLogger injects the logging capability used for structured warnings.
func (r *Region) SetLogger(log *slog.Logger) { r.log = log }

func (r *Region) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return slog.Default()
}

// Text returns the canonical (rank 0) transcription. The second return is
// false when no rank-0 entry exists.
func (r *Region) Text() (string, bool) {
	for _, t := range r.Texts {
		if t.Index == 0 {
			return t.Text, true
		}
	}
	return "", false
}

// SetText stores the transcription at the given rank, creating the entry
// when absent.
func (r *Region) SetText(text string, index int) {
	for i, t := range r.Texts {
		if t.Index == index {
			r.Texts[i].Text = text
			return
		}
	}
	r.Texts = append(r.Texts, TextEquiv{Index: index, Text: text})
}

// HasText reports whether a canonical transcription exists.
func (r *Region) HasText() bool {
	_, ok := r.Text()
	return ok
}

// IsTextEmpty reports whether the canonical transcription is missing or
// blank.
func (r *Region) IsTextEmpty() bool {
	t, ok := r.Text()
	return !ok || strings.TrimSpace(t) == ""
}

// ValidateText reports whether the canonical transcription is non-empty,
// logging a warning when it is not.
func (r *Region) ValidateText() bool {
	if r.IsTextEmpty() {
		r.logger().Warn("text is empty", "id", r.ID)
		return false
	}
	return true
}

// Line is a text line: a boundary polygon, an optional baseline polyline
// and ranked transcriptions.
type Line struct {
	Region
	Words []*Word

	baseline    coords.Sequence
	hasBaseline bool
}

// Baseline returns the baseline polyline and whether one is present.
func (l *Line) Baseline() (coords.Sequence, bool) {
	if !l.hasBaseline {
		return nil, false
	}
	return l.baseline, true
}

// SetBaseline stores the baseline polyline.
func (l *Line) SetBaseline(seq coords.Sequence) {
	l.baseline = seq
	l.hasBaseline = true
}

// ClearBaseline removes the baseline.
func (l *Line) ClearBaseline() {
	l.baseline = nil
	l.hasBaseline = false
}

// TranslateLine shifts the line boundary by (dx, dy).
func (l *Line) TranslateLine(dx, dy int) {
	l.Boundary = l.Boundary.Translate(dx, dy)
}

// TranslateBaseline shifts the baseline by (dx, dy). No-op when absent.
func (l *Line) TranslateBaseline(dx, dy int) {
	if !l.hasBaseline {
		return
	}
	l.baseline = l.baseline.Translate(dx, dy)
}

// TextRegion owns an ordered sequence of text lines. The order is reading
// order once sorted, document order otherwise.
type TextRegion struct {
	Region
	Lines []*Line
}

// CountLevel selects what a counter counts.
type CountLevel string

const (
	CountTextLines   CountLevel = "textlines"
	CountWords       CountLevel = "words"
	CountGlyphs      CountLevel = "glyphs"
	CountTableCells  CountLevel = "tablecells"
	CountTextRegions CountLevel = "textregions"
	CountTableRows   CountLevel = "tableregions"
)

// Count returns the number of elements at the given level within the
// region.
func (tr *TextRegion) Count(level CountLevel) int {
	if len(tr.Lines) == 0 {
		return 0
	}
	switch level {
	case CountTextLines:
		return len(tr.Lines)
	case CountWords:
		n := 0
		for _, l := range tr.Lines {
			if l.IsTextEmpty() {
				continue
			}
			t, _ := l.Text()
			n += len(strings.Fields(t))
		}
		return n
	case CountGlyphs:
		n := 0
		for _, l := range tr.Lines {
			if l.IsTextEmpty() {
				continue
			}
			t, _ := l.Text()
			n += len([]rune(t))
		}
		return n
	}
	return 0
}

// DeleteLines removes the lines at the given indices.
func (tr *TextRegion) DeleteLines(indices []int) {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		if idx < 0 || idx >= len(tr.Lines) {
			continue
		}
		tr.Lines = append(tr.Lines[:idx], tr.Lines[idx+1:]...)
	}
}

// ContainsLine reports whether the region owns a line with the given id.
func (tr *TextRegion) ContainsLine(id string) bool {
	for _, l := range tr.Lines {
		if l.ID == id {
			return true
		}
	}
	return false
}

// TableCell is a table cell behaving exactly like a text region, with its
// position in the table grid.
type TableCell struct {
	TextRegion
	Row int
	Col int
}

// TableRegion is a region of regions: it owns table cells.
type TableRegion struct {
	Region
	Cells []*TableCell
}

// Document is the root container. It exclusively owns all descendant
// regions and lines; discarding the document discards the whole graph.
type Document struct {
	ImageFilename string
	PageWidth     int
	PageHeight    int

	TextRegions  []*TextRegion
	TableRegions []*TableRegion

	// ReadingOrder holds region ids from an explicit OrderedGroup, already
	// sorted by index. Empty when the source declares none.
	ReadingOrder []string

	docOrder []string
	log      *slog.Logger
}

// NewDocument creates an empty document with the injected logger. A nil
// logger falls back to slog.Default().
func NewDocument(log *slog.Logger) *Document {
	return &Document{log: log}
}

// Logger returns the document's injected logger.
func (d *Document) Logger() *slog.Logger {
	if d.log != nil {
		return d.log
	}
	return slog.Default()
}

// AddTextRegion appends a text region in document order and wires parent
// references and logging into its lines.
func (d *Document) AddTextRegion(tr *TextRegion) {
	tr.log = d.log
	for _, l := range tr.Lines {
		l.SetParent(&tr.Region)
		l.log = d.log
	}
	d.TextRegions = append(d.TextRegions, tr)
	d.docOrder = append(d.docOrder, tr.ID)
}

// AddTableRegion appends a table region in document order and wires parent
// references and logging into its cells and their lines.
func (d *Document) AddTableRegion(tb *TableRegion) {
	tb.log = d.log
	for _, c := range tb.Cells {
		c.SetParent(&tb.Region)
		c.log = d.log
		for _, l := range c.Lines {
			l.SetParent(&c.Region)
			l.log = d.log
		}
	}
	d.TableRegions = append(d.TableRegions, tb)
	d.docOrder = append(d.docOrder, tb.ID)
}

// DocumentOrder returns the region ids in source document order.
func (d *Document) DocumentOrder() []string {
	return append([]string(nil), d.docOrder...)
}

// PageBoundary returns the page rectangle as a coordinate sequence.
func (d *Document) PageBoundary() coords.Sequence {
	return coords.Sequence{
		{X: 0, Y: 0},
		{X: d.PageWidth, Y: 0},
		{X: d.PageWidth, Y: d.PageHeight},
		{X: 0, Y: d.PageHeight},
	}
}

// TextRegionByID finds a text region or table cell by id.
func (d *Document) TextRegionByID(id string) *TextRegion {
	for _, tr := range d.TextRegions {
		if tr.ID == id {
			return tr
		}
	}
	for _, tb := range d.TableRegions {
		for _, c := range tb.Cells {
			if c.ID == id {
				return &c.TextRegion
			}
		}
	}
	return nil
}

// textRegionsForRegionID resolves a region id to the text regions holding
// lines: the region itself, or all cells for a table region.
func (d *Document) textRegionsForRegionID(id string) []*TextRegion {
	for _, tr := range d.TextRegions {
		if tr.ID == id {
			return []*TextRegion{tr}
		}
	}
	for _, tb := range d.TableRegions {
		if tb.ID != id {
			continue
		}
		out := make([]*TextRegion, 0, len(tb.Cells))
		for _, c := range tb.Cells {
			out = append(out, &c.TextRegion)
		}
		return out
	}
	return nil
}

// Count returns the number of elements at the given level across the
// document, including table cells.
func (d *Document) Count(level CountLevel) int {
	switch level {
	case CountTextLines, CountWords, CountGlyphs:
		n := 0
		for _, tr := range d.TextRegions {
			n += tr.Count(level)
		}
		for _, tb := range d.TableRegions {
			for _, c := range tb.Cells {
				n += c.Count(level)
			}
		}
		return n
	case CountTableCells:
		n := 0
		for _, tb := range d.TableRegions {
			n += len(tb.Cells)
		}
		return n
	case CountTextRegions:
		return len(d.TextRegions)
	case CountTableRows:
		return len(d.TableRegions)
	}
	return 0
}

// Totals aggregates per-document counts across a batch.
type Totals struct {
	TextRegions  int
	TableRegions int
	TextLines    int
	Words        int
	Glyphs       int
}

// CountAll collects the totals for a single document.
func (d *Document) CountAll() Totals {
	return Totals{
		TextRegions:  d.Count(CountTextRegions),
		TableRegions: d.Count(CountTableRows),
		TextLines:    d.Count(CountTextLines),
		Words:        d.Count(CountWords),
		Glyphs:       d.Count(CountGlyphs),
	}
}

// Add accumulates another document's totals.
func (t *Totals) Add(o Totals) {
	t.TextRegions += o.TextRegions
	t.TableRegions += o.TableRegions
	t.TextLines += o.TextLines
	t.Words += o.Words
	t.Glyphs += o.Glyphs
}

// LogStatistics emits the aggregated counts through the given logger.
func (t Totals) LogStatistics(log *slog.Logger, context string) {
	if log == nil {
		log = slog.Default()
	}
	log.Info("layout statistics",
		"context", context,
		"textregions", t.TextRegions,
		"tableregions", t.TableRegions,
		"textlines", t.TextLines,
		"words", t.Words,
		"glyphs", t.Glyphs,
	)
}

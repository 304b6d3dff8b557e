package pagexml

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/layout"
)

// BuildDocument converts the parsed element tree into the typed layout
// document. Malformed coordinate strings are logged and leave the owning
// element without a boundary; a document without any region is rejected.
func BuildDocument(f *File, log *slog.Logger) (*layout.Document, error) {
	if log == nil {
		log = slog.Default()
	}
	if len(f.Page.Regions) == 0 {
		return nil, layout.ErrNoRegions
	}

	d := layout.NewDocument(log)
	d.ImageFilename = f.Page.ImageFilename
	d.PageWidth = f.Page.ImageWidth
	d.PageHeight = f.Page.ImageHeight
	d.ReadingOrder = readingOrderIDs(f.Page.ReadingOrder)

	for _, region := range f.Page.Regions {
		switch {
		case region.Text != nil:
			d.AddTextRegion(buildTextRegion(region.Text, log))
		case region.Table != nil:
			d.AddTableRegion(buildTableRegion(region.Table, log))
		}
	}
	return d, nil
}

func readingOrderIDs(ro *ReadingOrder) []string {
	if ro == nil || ro.OrderedGroup == nil || len(ro.OrderedGroup.Refs) == 0 {
		return nil
	}
	refs := append([]RegionRefIndexed(nil), ro.OrderedGroup.Refs...)
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Index < refs[j].Index })
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.RegionRef)
	}
	return ids
}

func buildTextRegion(src *TextRegion, log *slog.Logger) *layout.TextRegion {
	tr := &layout.TextRegion{}
	tr.ID = src.ID
	tr.Custom = src.Custom
	tr.Boundary = parseBoundary(src.Coords, src.ID, log)
	tr.Texts = buildTexts(src.TextEquivs)
	for i := range src.TextLines {
		tr.Lines = append(tr.Lines, buildLine(&src.TextLines[i], log))
	}
	return tr
}

func buildTableRegion(src *TableRegion, log *slog.Logger) *layout.TableRegion {
	tb := &layout.TableRegion{}
	tb.ID = src.ID
	tb.Custom = src.Custom
	tb.Boundary = parseBoundary(src.Coords, src.ID, log)
	for i := range src.Cells {
		cell := &src.Cells[i]
		lc := &layout.TableCell{Row: cell.Row, Col: cell.Col}
		lc.ID = cell.ID
		lc.Custom = cell.Custom
		lc.Boundary = parseBoundary(cell.Coords, cell.ID, log)
		lc.Texts = buildTexts(cell.TextEquivs)
		for j := range cell.TextLines {
			lc.Lines = append(lc.Lines, buildLine(&cell.TextLines[j], log))
		}
		tb.Cells = append(tb.Cells, lc)
	}
	return tb
}

func buildLine(src *TextLine, log *slog.Logger) *layout.Line {
	l := &layout.Line{}
	l.ID = src.ID
	l.Custom = src.Custom
	l.Boundary = parseBoundary(src.Coords, src.ID, log)
	l.Texts = buildTexts(src.TextEquivs)
	if src.Baseline != nil {
		if seq, err := coords.Parse(src.Baseline.Points); err != nil {
			log.Warn("malformed baseline points", "id", src.ID, "error", err)
		} else if len(seq) > 0 {
			l.SetBaseline(seq)
		}
	}
	for i := range src.Words {
		w := &src.Words[i]
		l.Words = append(l.Words, &layout.Word{
			ID:       w.ID,
			Boundary: parseBoundary(w.Coords, w.ID, log),
			Texts:    buildTexts(w.TextEquivs),
		})
	}
	return l
}

func parseBoundary(c *Coords, id string, log *slog.Logger) coords.Sequence {
	if c == nil {
		return nil
	}
	seq, err := coords.Parse(c.Points)
	if err != nil {
		log.Warn("malformed boundary points", "id", id, "error", err)
		return nil
	}
	return seq
}

func buildTexts(src []TextEquiv) []layout.TextEquiv {
	out := make([]layout.TextEquiv, 0, len(src))
	for _, t := range src {
		out = append(out, layout.TextEquiv{Index: t.Rank(), Text: t.Unicode})
	}
	return out
}

// ApplyDocument writes the layout document back into the element tree,
// rebuilding the region subtrees and the ordered reading-order group while
// keeping metadata and page attributes.
func ApplyDocument(d *layout.Document, f *File) {
	f.Page.ImageFilename = d.ImageFilename
	f.Page.ImageWidth = d.PageWidth
	f.Page.ImageHeight = d.PageHeight

	groupID, caption := "", ""
	if f.Page.ReadingOrder != nil && f.Page.ReadingOrder.OrderedGroup != nil {
		groupID = f.Page.ReadingOrder.OrderedGroup.ID
		caption = f.Page.ReadingOrder.OrderedGroup.Caption
	}
	if len(d.ReadingOrder) > 0 {
		group := &OrderedGroup{ID: groupID, Caption: caption}
		for i, id := range d.ReadingOrder {
			group.Refs = append(group.Refs, RegionRefIndexed{Index: i, RegionRef: id})
		}
		f.Page.ReadingOrder = &ReadingOrder{OrderedGroup: group}
	} else {
		f.Page.ReadingOrder = nil
	}

	textByID := make(map[string]*layout.TextRegion, len(d.TextRegions))
	for _, tr := range d.TextRegions {
		textByID[tr.ID] = tr
	}
	tableByID := make(map[string]*layout.TableRegion, len(d.TableRegions))
	for _, tb := range d.TableRegions {
		tableByID[tb.ID] = tb
	}

	var regions []Region
	for _, id := range d.DocumentOrder() {
		if tr, ok := textByID[id]; ok {
			regions = append(regions, Region{Text: writeTextRegion(tr)})
			continue
		}
		if tb, ok := tableByID[id]; ok {
			regions = append(regions, Region{Table: writeTableRegion(tb)})
		}
	}
	f.Page.Regions = regions
}

func writeTextRegion(tr *layout.TextRegion) *TextRegion {
	out := &TextRegion{
		ID:         tr.ID,
		Custom:     tr.Custom,
		Coords:     writeBoundary(tr.Boundary),
		TextEquivs: writeTexts(tr.Texts),
	}
	for _, l := range tr.Lines {
		out.TextLines = append(out.TextLines, writeLine(l))
	}
	return out
}

func writeTableRegion(tb *layout.TableRegion) *TableRegion {
	out := &TableRegion{
		ID:     tb.ID,
		Custom: tb.Custom,
		Coords: writeBoundary(tb.Boundary),
	}
	for _, c := range tb.Cells {
		cell := TableCell{
			ID:         c.ID,
			Custom:     c.Custom,
			Row:        c.Row,
			Col:        c.Col,
			Coords:     writeBoundary(c.Boundary),
			TextEquivs: writeTexts(c.Texts),
		}
		for _, l := range c.Lines {
			cell.TextLines = append(cell.TextLines, writeLine(l))
		}
		out.Cells = append(out.Cells, cell)
	}
	return out
}

func writeLine(l *layout.Line) TextLine {
	out := TextLine{
		ID:         l.ID,
		Custom:     l.Custom,
		Coords:     writeBoundary(l.Boundary),
		TextEquivs: writeTexts(l.Texts),
	}
	if bl, ok := l.Baseline(); ok {
		out.Baseline = &Baseline{Points: bl.String()}
	}
	for _, w := range l.Words {
		out.Words = append(out.Words, Word{
			ID:         w.ID,
			Coords:     writeBoundary(w.Boundary),
			TextEquivs: writeTexts(w.Texts),
		})
	}
	return out
}

func writeBoundary(seq coords.Sequence) *Coords {
	if len(seq) == 0 {
		return nil
	}
	return &Coords{Points: seq.String()}
}

func writeTexts(src []layout.TextEquiv) []TextEquiv {
	out := make([]TextEquiv, 0, len(src))
	for _, t := range src {
		out = append(out, TextEquiv{Index: strconv.Itoa(t.Index), Unicode: t.Text})
	}
	return out
}

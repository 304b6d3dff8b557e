package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagemend/pagemend/internal/coords"
)

func sampleDocument() *Document {
	d := NewDocument(discardLogger())
	d.ImageFilename = "page_001.png"
	d.PageWidth = 1000
	d.PageHeight = 1400

	d.AddTextRegion(newTextRegion("r1", rectSeq(0, 0, 500, 200),
		newTextLine("r1l1", "hello world"),
		newTextLine("r1l2", "foo"),
	))

	cell := &TableCell{Row: 0, Col: 0}
	cell.ID = "c1"
	cell.Boundary = rectSeq(0, 300, 200, 400)
	cell.Lines = []*Line{newTextLine("c1l1", "cell")}
	tb := &TableRegion{Cells: []*TableCell{cell}}
	tb.ID = "t1"
	tb.Boundary = rectSeq(0, 300, 500, 500)
	d.AddTableRegion(tb)

	return d
}

func TestDocumentCount(t *testing.T) {
	d := sampleDocument()

	require.Equal(t, 1, d.Count(CountTextRegions))
	require.Equal(t, 1, d.Count(CountTableRows))
	require.Equal(t, 1, d.Count(CountTableCells))
	require.Equal(t, 3, d.Count(CountTextLines))
	require.Equal(t, 4, d.Count(CountWords))
	require.Equal(t, 18, d.Count(CountGlyphs))
}

func TestCountAll(t *testing.T) {
	d := sampleDocument()
	totals := d.CountAll()
	require.Equal(t, Totals{
		TextRegions:  1,
		TableRegions: 1,
		TextLines:    3,
		Words:        4,
		Glyphs:       18,
	}, totals)

	var sum Totals
	sum.Add(totals)
	sum.Add(totals)
	require.Equal(t, 6, sum.TextLines)
	require.Equal(t, 8, sum.Words)
}

func TestTextRegionByID(t *testing.T) {
	d := sampleDocument()

	require.NotNil(t, d.TextRegionByID("r1"))
	require.Equal(t, "c1", d.TextRegionByID("c1").ID)
	require.Nil(t, d.TextRegionByID("missing"))
}

func TestDocumentOrder(t *testing.T) {
	d := sampleDocument()
	require.Equal(t, []string{"r1", "t1"}, d.DocumentOrder())

	// The returned slice is a copy.
	order := d.DocumentOrder()
	order[0] = "mutated"
	require.Equal(t, []string{"r1", "t1"}, d.DocumentOrder())
}

func TestPageBoundary(t *testing.T) {
	d := sampleDocument()
	require.Equal(t, coords.Sequence{
		{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1400}, {X: 0, Y: 1400},
	}, d.PageBoundary())
}

func TestRegionText(t *testing.T) {
	r := newRegion("r1", rectSeq(0, 0, 10, 10))

	_, ok := r.Text()
	require.False(t, ok)
	require.True(t, r.IsTextEmpty())
	require.False(t, r.ValidateText())

	r.SetText("zweite", 1)
	require.False(t, r.HasText())

	r.SetText("erste", 0)
	text, ok := r.Text()
	require.True(t, ok)
	require.Equal(t, "erste", text)
	require.True(t, r.ValidateText())

	r.SetText("geändert", 0)
	text, _ = r.Text()
	require.Equal(t, "geändert", text)
	require.Len(t, r.Texts, 2)
}

func TestTextRegionLines(t *testing.T) {
	tr := newTextRegion("r1", rectSeq(0, 0, 100, 100),
		newTextLine("a", "one"),
		newTextLine("b", "two"),
		newTextLine("c", "three"),
	)

	require.True(t, tr.ContainsLine("b"))
	require.False(t, tr.ContainsLine("z"))

	tr.DeleteLines([]int{0, 2})
	require.Equal(t, []string{"b"}, lineIDs(tr))

	// Out-of-range indices are ignored.
	tr.DeleteLines([]int{5})
	require.Len(t, tr.Lines, 1)
}

func TestParentWiring(t *testing.T) {
	d := sampleDocument()

	tr := d.TextRegionByID("r1")
	require.Equal(t, "r1", tr.Lines[0].Parent().ID)

	cell := d.TextRegionByID("c1")
	require.Equal(t, "t1", cell.Parent().ID)
	require.Equal(t, "c1", cell.Lines[0].Parent().ID)
}

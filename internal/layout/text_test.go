package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDehyphenate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "hyphenated word joined",
			lines:    []string{"exam-", "ple text"},
			expected: []string{"example", "text"},
		},
		{
			name:     "uppercase continuation keeps hyphen",
			lines:    []string{"Nord-", "Berlin liegt"},
			expected: []string{"Nord-", "Berlin liegt"},
		},
		{
			name:     "unicode hyphen glyph",
			lines:    []string{"Wör‐", "ter"},
			expected: []string{"Wörter", ""},
		},
		{
			name:     "double oriented hyphen",
			lines:    []string{"Zei⸗", "len und mehr"},
			expected: []string{"Zeilen", "und mehr"},
		},
		{
			name:     "empty lines dropped",
			lines:    []string{"", "first", "", "second"},
			expected: []string{"first", "second"},
		},
		{
			name:     "whitespace trimmed",
			lines:    []string{"  first  ", "second "},
			expected: []string{"first", "second"},
		},
		{
			name:     "last line hyphen kept",
			lines:    []string{"first", "unfinish-"},
			expected: []string{"first", "unfinish-"},
		},
		{
			name:     "nil input",
			lines:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Dehyphenate(tt.lines))
		})
	}
}

func TestDehyphenateRows(t *testing.T) {
	// The row count never changes so rows stay aligned with per-row
	// geometry, even when a join empties a row.
	in := []string{"exam-", "ple", "more text"}
	out := DehyphenateRows(in)
	require.Len(t, out, len(in))
	require.Equal(t, []string{"example", "", "more text"}, out)

	require.Equal(t, []string{}, DehyphenateRows([]string{}))
}

func newTextLine(id, text string) *Line {
	l := newLine(id, rectSeq(0, 0, 100, 20))
	l.SetText(text, 0)
	return l
}

func TestFullText(t *testing.T) {
	d := NewDocument(discardLogger())
	d.AddTextRegion(newTextRegion("a", rectSeq(0, 0, 100, 100),
		newTextLine("a1", "first line"),
		newTextLine("a2", "second line"),
	))
	d.AddTextRegion(newTextRegion("b", rectSeq(0, 200, 100, 300),
		newTextLine("b1", "third line"),
	))

	t.Run("document order", func(t *testing.T) {
		got := d.FullText(false, false, OrderAuto, "\n")
		require.Equal(t, "first line\nsecond line\nthird line", got)
	})

	t.Run("explicit reading order", func(t *testing.T) {
		d.ReadingOrder = []string{"b", "a"}
		defer func() { d.ReadingOrder = nil }()
		got := d.FullText(false, true, OrderAuto, "\n")
		require.Equal(t, "third line\nfirst line\nsecond line", got)
	})

	t.Run("dehyphenated", func(t *testing.T) {
		d2 := NewDocument(discardLogger())
		d2.AddTextRegion(newTextRegion("a", rectSeq(0, 0, 100, 100),
			newTextLine("a1", "exam-"),
			newTextLine("a2", "ple text"),
		))
		got := d2.FullText(true, true, OrderAuto, "\n")
		require.Equal(t, "example\ntext", got)
	})

	t.Run("table cells included", func(t *testing.T) {
		d3 := NewDocument(discardLogger())
		cell := &TableCell{Row: 0, Col: 0}
		cell.ID = "c1"
		cell.Boundary = rectSeq(0, 0, 50, 50)
		cell.Lines = []*Line{newTextLine("c1l1", "cell text")}
		tb := &TableRegion{Cells: []*TableCell{cell}}
		tb.ID = "t1"
		tb.Boundary = rectSeq(0, 0, 100, 100)
		d3.AddTableRegion(tb)
		got := d3.FullText(false, true, OrderAuto, "\n")
		require.Equal(t, "cell text", got)
	})
}

func TestDeleteTextLevel(t *testing.T) {
	build := func() *Document {
		d := NewDocument(discardLogger())
		line := newTextLine("a1", "some text")
		line.Words = []*Word{{ID: "w1"}}
		tr := newTextRegion("a", rectSeq(0, 0, 100, 100), line)
		tr.SetText("region text", 0)
		d.AddTextRegion(tr)
		return d
	}

	t.Run("word level", func(t *testing.T) {
		d := build()
		d.DeleteTextLevel(LevelWord)
		require.Empty(t, d.TextRegions[0].Lines[0].Words)
		require.True(t, d.TextRegions[0].Lines[0].HasText())
	})

	t.Run("line level", func(t *testing.T) {
		d := build()
		d.DeleteTextLevel(LevelLine)
		require.False(t, d.TextRegions[0].Lines[0].HasText())
		require.True(t, d.TextRegions[0].HasText())
	})

	t.Run("region level", func(t *testing.T) {
		d := build()
		d.DeleteTextLevel(LevelRegion)
		require.False(t, d.TextRegions[0].HasText())
		require.True(t, d.TextRegions[0].Lines[0].HasText())
	})
}

func TestAllTextRegions(t *testing.T) {
	d := NewDocument(discardLogger())
	d.AddTextRegion(newTextRegion("a", rectSeq(0, 0, 100, 100)))
	cell := &TableCell{}
	cell.ID = "c1"
	tb := &TableRegion{Cells: []*TableCell{cell}}
	tb.ID = "t1"
	d.AddTableRegion(tb)

	all := d.AllTextRegions()
	require.Len(t, all, 2)
	require.Equal(t, "a", all[0].ID)
	require.Equal(t, "c1", all[1].ID)
}

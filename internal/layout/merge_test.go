package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagemend/pagemend/internal/coords"
)

func TestMergeSplitLines(t *testing.T) {
	makeRegion := func() *TextRegion {
		first := newLine("l1", rectSeq(0, -5, 50, 5))
		first.SetBaseline(coords.Sequence{{X: 0, Y: 0}, {X: 50, Y: 0}})
		first.SetText("hello", 0)

		second := newLine("l2", rectSeq(60, -3, 120, 7))
		second.SetBaseline(coords.Sequence{{X: 60, Y: 2}, {X: 120, Y: 2}})
		second.SetText("world", 0)

		return newTextRegion("r1", rectSeq(0, -10, 200, 10), first, second)
	}

	t.Run("adjacent baselines merge", func(t *testing.T) {
		tr := makeRegion()
		tr.MergeSplitLines(64, 10)
		require.Len(t, tr.Lines, 1)

		merged := tr.Lines[0]
		require.Equal(t, "l2", merged.ID)

		text, ok := merged.Text()
		require.True(t, ok)
		require.Equal(t, "hello world", text)

		bl, ok := merged.Baseline()
		require.True(t, ok)
		require.Equal(t, coords.Sequence{
			{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 60, Y: 2}, {X: 120, Y: 2},
		}, bl)

		minX, minY, maxX, maxY := merged.Boundary.Bounds()
		require.Equal(t, 0, minX)
		require.Equal(t, 120, maxX)
		require.LessOrEqual(t, minY, -3)
		require.GreaterOrEqual(t, maxY, 5)
	})

	t.Run("horizontal gap too wide", func(t *testing.T) {
		tr := makeRegion()
		tr.MergeSplitLines(9, 10)
		require.Len(t, tr.Lines, 2)
	})

	t.Run("vertical gap too wide", func(t *testing.T) {
		tr := makeRegion()
		tr.MergeSplitLines(64, 1)
		require.Len(t, tr.Lines, 2)
	})

	t.Run("missing baseline never merges", func(t *testing.T) {
		first := newLine("l1", rectSeq(0, -5, 50, 5))
		first.SetText("hello", 0)
		second := newLine("l2", rectSeq(60, -3, 120, 7))
		second.SetBaseline(coords.Sequence{{X: 60, Y: 2}, {X: 120, Y: 2}})
		second.SetText("world", 0)

		tr := newTextRegion("r1", rectSeq(0, -10, 200, 10), first, second)
		tr.MergeSplitLines(64, 10)
		require.Len(t, tr.Lines, 2)
	})

	t.Run("chain of three lines", func(t *testing.T) {
		a := newLine("a", rectSeq(0, -5, 40, 5))
		a.SetBaseline(coords.Sequence{{X: 0, Y: 0}, {X: 40, Y: 0}})
		a.SetText("one", 0)
		b := newLine("b", rectSeq(50, -5, 90, 5))
		b.SetBaseline(coords.Sequence{{X: 50, Y: 0}, {X: 90, Y: 0}})
		b.SetText("two", 0)
		c := newLine("c", rectSeq(100, -5, 140, 5))
		c.SetBaseline(coords.Sequence{{X: 100, Y: 0}, {X: 140, Y: 0}})
		c.SetText("three", 0)

		tr := newTextRegion("r1", rectSeq(0, -10, 200, 10), a, b, c)
		tr.MergeSplitLines(64, 10)
		require.Len(t, tr.Lines, 1)
		text, _ := tr.Lines[0].Text()
		require.Equal(t, "one two three", text)
	})
}

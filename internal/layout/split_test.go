package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// twoColumnRegion builds a region with three lines per column, centered
// around x=100 and x=700.
func twoColumnRegion() *TextRegion {
	lines := []*Line{
		newLine("left-1", rectSeq(50, 0, 150, 20)),
		newLine("right-1", rectSeq(650, 0, 750, 20)),
		newLine("left-2", rectSeq(50, 30, 150, 50)),
		newLine("right-2", rectSeq(650, 30, 750, 50)),
		newLine("left-3", rectSeq(50, 60, 150, 80)),
		newLine("right-3", rectSeq(650, 60, 750, 80)),
	}
	return newTextRegion("r1", rectSeq(0, 0, 800, 100), lines...)
}

func TestSplitByLineCoords(t *testing.T) {
	t.Run("two columns", func(t *testing.T) {
		tr := twoColumnRegion()
		parts := tr.SplitByLineCoords(DefaultSplitConfig())
		require.Len(t, parts, 2)

		var left, right *SplitRegion
		for i := range parts {
			minX, _, _, _ := parts[i].Boundary.Bounds()
			if minX < 400 {
				left = &parts[i]
			} else {
				right = &parts[i]
			}
		}
		require.NotNil(t, left)
		require.NotNil(t, right)
		require.Len(t, left.Lines, 3)
		require.Len(t, right.Lines, 3)
		for _, l := range left.Lines {
			require.Contains(t, l.ID, "left")
		}
		for _, l := range right.Lines {
			require.Contains(t, l.ID, "right")
		}

		// Padding grows each column hull outward.
		minX, _, maxX, _ := left.Boundary.Bounds()
		require.Less(t, minX, 50)
		require.Greater(t, maxX, 150)
	})

	t.Run("columns too close", func(t *testing.T) {
		lines := []*Line{
			newLine("a", rectSeq(50, 0, 150, 20)),
			newLine("b", rectSeq(200, 0, 300, 20)),
			newLine("c", rectSeq(50, 30, 150, 50)),
		}
		tr := newTextRegion("r1", rectSeq(0, 0, 400, 100), lines...)
		require.Nil(t, tr.SplitByLineCoords(DefaultSplitConfig()))
	})

	t.Run("too few lines", func(t *testing.T) {
		tr := newTextRegion("r1", rectSeq(0, 0, 800, 100),
			newLine("a", rectSeq(50, 0, 150, 20)),
			newLine("b", rectSeq(650, 0, 750, 20)),
		)
		require.Nil(t, tr.SplitByLineCoords(DefaultSplitConfig()))
	})

	t.Run("invalid config", func(t *testing.T) {
		tr := twoColumnRegion()
		cfg := DefaultSplitConfig()
		cfg.Columns = 1
		require.Nil(t, tr.SplitByLineCoords(cfg))

		cfg = DefaultSplitConfig()
		cfg.CenterIndices = []int{0, 9}
		require.Nil(t, tr.SplitByLineCoords(cfg))
	})
}

func TestReplaceTextRegion(t *testing.T) {
	d := NewDocument(discardLogger())
	tr := twoColumnRegion()
	d.AddTextRegion(tr)
	other := newTextRegion("r2", rectSeq(0, 200, 800, 300))
	d.AddTextRegion(other)
	d.ReadingOrder = []string{"r1", "r2"}

	parts := tr.SplitByLineCoords(DefaultSplitConfig())
	require.Len(t, parts, 2)

	d.ReplaceTextRegion(tr, parts)

	require.Len(t, d.TextRegions, 3)
	require.Equal(t, []string{"r1_1", "r1_2", "r2"}, d.DocumentOrder())
	require.Equal(t, []string{"r1_1", "r1_2", "r2"}, d.ReadingOrder)
	require.Nil(t, d.TextRegionByID("r1"))

	first := d.TextRegionByID("r1_1")
	require.NotNil(t, first)
	require.Len(t, first.Lines, 3)
	// Lines now point at their new owner.
	require.Equal(t, "r1_1", first.Lines[0].Parent().ID)
}

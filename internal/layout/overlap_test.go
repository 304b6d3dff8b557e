package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagemend/pagemend/internal/coords"
)

func overlapArea(t *testing.T, a, b coords.Sequence) float64 {
	t.Helper()
	pa, err := a.Polygon()
	require.NoError(t, err)
	pb, err := b.Polygon()
	require.NoError(t, err)
	return pa.Intersection(pb).Area()
}

func TestSplitOverlappingRings(t *testing.T) {
	log := discardLogger()

	t.Run("overlapping rings shrink", func(t *testing.T) {
		first := coords.Sequence{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0},
			{X: 200, Y: 50}, {X: 100, Y: 50}, {X: 0, Y: 50},
		}
		second := coords.Sequence{
			{X: 50, Y: 30}, {X: 150, Y: 30}, {X: 250, Y: 30},
			{X: 250, Y: 80}, {X: 150, Y: 80}, {X: 50, Y: 80},
		}
		before := overlapArea(t, first, second)
		require.Greater(t, before, 0.0)

		newFirst, newSecond := SplitOverlappingRings(first, second, log)
		require.GreaterOrEqual(t, len(newFirst), 3)
		require.GreaterOrEqual(t, len(newSecond), 3)
		require.NotEqual(t, first, newFirst)
		require.NotEqual(t, second, newSecond)
		require.Less(t, seqArea(t, newFirst), seqArea(t, first))
		require.Less(t, seqArea(t, newSecond), seqArea(t, second))
		require.Less(t, overlapArea(t, newFirst, newSecond), before)
	})

	t.Run("disjoint rings unchanged", func(t *testing.T) {
		first := rectSeq(0, 0, 10, 10)
		second := rectSeq(100, 100, 110, 110)
		newFirst, newSecond := SplitOverlappingRings(first, second, log)
		require.Equal(t, first, newFirst)
		require.Equal(t, second, newSecond)
	})

	t.Run("edge contact only unchanged", func(t *testing.T) {
		first := rectSeq(0, 0, 100, 100)
		second := rectSeq(100, 0, 200, 100)
		newFirst, newSecond := SplitOverlappingRings(first, second, log)
		require.Equal(t, first, newFirst)
		require.Equal(t, second, newSecond)
	})

	t.Run("degenerate input unchanged", func(t *testing.T) {
		first := coords.Sequence{{X: 0, Y: 0}, {X: 10, Y: 0}}
		second := rectSeq(0, 0, 100, 100)
		newFirst, newSecond := SplitOverlappingRings(first, second, log)
		require.Equal(t, first, newFirst)
		require.Equal(t, second, newSecond)
	})
}

func TestFitFirstIntoSecondRing(t *testing.T) {
	log := discardLogger()

	t.Run("protruding ring is clipped", func(t *testing.T) {
		fitted := FitFirstIntoSecondRing(rectSeq(0, 0, 100, 100), rectSeq(50, 0, 200, 100), log, "r1")
		minX, _, maxX, _ := fitted.Bounds()
		require.Equal(t, 50, minX)
		require.Equal(t, 100, maxX)
		require.InDelta(t, 5000.0, seqArea(t, fitted), 1e-6)
	})

	t.Run("no intersection unchanged", func(t *testing.T) {
		first := rectSeq(0, 0, 10, 10)
		require.Equal(t, first, FitFirstIntoSecondRing(first, rectSeq(100, 100, 200, 200), log, "r1"))
	})

	t.Run("self-intersecting ring unchanged", func(t *testing.T) {
		bowtie := coords.Sequence{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
		require.Equal(t, bowtie, FitFirstIntoSecondRing(bowtie, rectSeq(0, 0, 100, 100), log, "r1"))
	})

	t.Run("degenerate input unchanged", func(t *testing.T) {
		first := coords.Sequence{{X: 0, Y: 0}, {X: 10, Y: 0}}
		require.Equal(t, first, FitFirstIntoSecondRing(first, rectSeq(0, 0, 100, 100), log, "r1"))
	})
}

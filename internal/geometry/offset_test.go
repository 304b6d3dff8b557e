package geometry

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/require"
)

func TestOffsetRing(t *testing.T) {
	t.Run("grow", func(t *testing.T) {
		out := OffsetRing(square(10), 2)
		require.Len(t, out, 4)
		require.Greater(t, RingArea(out), RingArea(square(10)))
		// Corners move diagonally outward by 2 along the averaged normal.
		require.InDelta(t, -2/sqrt2, out[0].X, 1e-9)
		require.InDelta(t, -2/sqrt2, out[0].Y, 1e-9)
	})

	t.Run("shrink", func(t *testing.T) {
		out := OffsetRing(square(10), -2)
		require.Less(t, RingArea(out), RingArea(square(10)))
	})

	t.Run("clockwise input grows too", func(t *testing.T) {
		cw := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
		out := OffsetRing(cw, 2)
		require.Greater(t, RingArea(out), 100.0)
	})

	t.Run("zero distance copies", func(t *testing.T) {
		require.Equal(t, square(10), OffsetRing(square(10), 0))
	})

	t.Run("degenerate input unchanged", func(t *testing.T) {
		line := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
		require.Equal(t, line, OffsetRing(line, 5))
	})
}

const sqrt2 = 1.4142135623730951

func TestCorridor(t *testing.T) {
	line := []geom.Point{{X: 0, Y: 5}, {X: 10, Y: 5}}
	poly := Corridor(line, 1)
	require.Len(t, poly, 1)

	ring := poly[0]
	require.Equal(t, ring[0], ring[len(ring)-1])

	// 10 long plus two 2-wide square caps, 2 wide: area 28.
	require.InDelta(t, 28.0, RingArea(ring), 1e-6)

	// The corridor covers the line and sticks out past both ends.
	require.True(t, PointCovered(geom.Point{X: 5, Y: 5}, poly))
	require.True(t, PointCovered(geom.Point{X: -1, Y: 5}, poly))
	require.True(t, PointCovered(geom.Point{X: 11, Y: 5}, poly))

	require.Nil(t, Corridor([]geom.Point{{X: 3, Y: 3}}, 1))
	require.Nil(t, Corridor(nil, 1))
}

func TestSplitRingByLine(t *testing.T) {
	poly := geom.Polygon{append(square(10), geom.Point{})}

	t.Run("vertical cut", func(t *testing.T) {
		parts := SplitRingByLine(poly, []geom.Point{{X: 4, Y: -2}, {X: 4, Y: 12}})
		require.Len(t, parts, 2)
		// Descending area: the right part (width 6) comes first.
		require.Greater(t, RingArea(parts[0]), RingArea(parts[1]))
		require.Greater(t, RingArea(parts[0]), 50.0)
		require.Less(t, RingArea(parts[1]), 50.0)
	})

	t.Run("miss leaves one part", func(t *testing.T) {
		parts := SplitRingByLine(poly, []geom.Point{{X: 20, Y: -2}, {X: 20, Y: 12}})
		require.Len(t, parts, 1)
		require.InDelta(t, 100.0, RingArea(parts[0]), 1e-6)
	})

	t.Run("degenerate line", func(t *testing.T) {
		require.Nil(t, SplitRingByLine(poly, []geom.Point{{X: 4, Y: 4}}))
	})
}

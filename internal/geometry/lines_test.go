package geometry

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/require"
)

func TestNearestPointOnSegment(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 10, Y: 0}

	tests := []struct {
		name     string
		p        geom.Point
		expected geom.Point
	}{
		{"projection inside", geom.Point{X: 5, Y: 3}, geom.Point{X: 5, Y: 0}},
		{"clamped to start", geom.Point{X: -4, Y: 2}, geom.Point{X: 0, Y: 0}},
		{"clamped to end", geom.Point{X: 14, Y: -2}, geom.Point{X: 10, Y: 0}},
		{"on segment", geom.Point{X: 7, Y: 0}, geom.Point{X: 7, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestPointOnSegment(tt.p, a, b)
			require.InDelta(t, tt.expected.X, got.X, 1e-9)
			require.InDelta(t, tt.expected.Y, got.Y, 1e-9)
		})
	}

	// Zero-length segment projects onto its single point.
	got := NearestPointOnSegment(geom.Point{X: 3, Y: 3}, a, a)
	require.Equal(t, a, got)
}

func TestNearestPointOnRing(t *testing.T) {
	ring := square(10)
	got := NearestPointOnRing(geom.Point{X: 5, Y: -3}, ring)
	require.InDelta(t, 5.0, got.X, 1e-9)
	require.InDelta(t, 0.0, got.Y, 1e-9)

	// Interior points project onto the outline, not themselves.
	got = NearestPointOnRing(geom.Point{X: 5, Y: 1}, ring)
	require.InDelta(t, 5.0, got.X, 1e-9)
	require.InDelta(t, 0.0, got.Y, 1e-9)
}

func TestDistanceToRing(t *testing.T) {
	ring := square(10)
	require.InDelta(t, 3.0, DistanceToRing(geom.Point{X: 5, Y: -3}, ring), 1e-9)
	require.InDelta(t, 0.0, DistanceToRing(geom.Point{X: 0, Y: 5}, ring), 1e-9)
}

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d geom.Point
		expected   geom.Point
		ok         bool
	}{
		{
			name: "proper crossing",
			a:    geom.Point{X: 0, Y: 0}, b: geom.Point{X: 10, Y: 10},
			c: geom.Point{X: 0, Y: 10}, d: geom.Point{X: 10, Y: 0},
			expected: geom.Point{X: 5, Y: 5}, ok: true,
		},
		{
			name: "touch at endpoint",
			a:    geom.Point{X: 0, Y: 0}, b: geom.Point{X: 5, Y: 5},
			c: geom.Point{X: 5, Y: 5}, d: geom.Point{X: 10, Y: 0},
			expected: geom.Point{X: 5, Y: 5}, ok: true,
		},
		{
			name: "parallel disjoint",
			a:    geom.Point{X: 0, Y: 0}, b: geom.Point{X: 10, Y: 0},
			c: geom.Point{X: 0, Y: 5}, d: geom.Point{X: 10, Y: 5},
			ok: false,
		},
		{
			name: "disjoint",
			a:    geom.Point{X: 0, Y: 0}, b: geom.Point{X: 1, Y: 1},
			c: geom.Point{X: 5, Y: 0}, d: geom.Point{X: 6, Y: 1},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SegmentIntersection(tt.a, tt.b, tt.c, tt.d)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.InDelta(t, tt.expected.X, got.X, 1e-9)
				require.InDelta(t, tt.expected.Y, got.Y, 1e-9)
			}
		})
	}
}

func TestSegmentRingIntersections(t *testing.T) {
	ring := square(10)
	// A horizontal cut through the middle crosses two edges.
	pts := SegmentRingIntersections(geom.Point{X: -5, Y: 5}, geom.Point{X: 15, Y: 5}, ring)
	require.Len(t, pts, 2)
}

func TestLineIntersectsRing(t *testing.T) {
	ring := square(10)

	require.True(t, LineIntersectsRing([]geom.Point{{X: 2, Y: 2}, {X: 8, Y: 8}}, ring))
	require.True(t, LineIntersectsRing([]geom.Point{{X: -5, Y: 5}, {X: 15, Y: 5}}, ring))
	require.False(t, LineIntersectsRing([]geom.Point{{X: 20, Y: 20}, {X: 30, Y: 30}}, ring))
	require.False(t, LineIntersectsRing(nil, ring))
}

func TestPointPredicates(t *testing.T) {
	poly := geom.Polygon{append(square(10), geom.Point{X: 0, Y: 0})}

	require.True(t, PointInside(geom.Point{X: 5, Y: 5}, poly))
	require.True(t, PointCovered(geom.Point{X: 5, Y: 5}, poly))
	require.False(t, PointInside(geom.Point{X: 20, Y: 20}, poly))
	require.False(t, PointCovered(geom.Point{X: 20, Y: 20}, poly))
}

func TestLineCentroid(t *testing.T) {
	// Centroid is length-weighted: the long segment dominates.
	line := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	c := LineCentroid(line)
	require.InDelta(t, 5.0, c.X, 1e-9)
	require.InDelta(t, 0.0, c.Y, 1e-9)

	require.Equal(t, geom.Point{X: 3, Y: 4}, LineCentroid([]geom.Point{{X: 3, Y: 4}}))
	require.Equal(t, geom.Point{}, LineCentroid(nil))
}

func TestLineBounds(t *testing.T) {
	minX, minY, maxX, maxY := LineBounds([]geom.Point{{X: 3, Y: 7}, {X: -2, Y: 11}, {X: 9, Y: 1}})
	require.InDelta(t, -2.0, minX, 1e-9)
	require.InDelta(t, 1.0, minY, 1e-9)
	require.InDelta(t, 9.0, maxX, 1e-9)
	require.InDelta(t, 11.0, maxY, 1e-9)
}

func TestSelfIntersection(t *testing.T) {
	t.Run("simple ring", func(t *testing.T) {
		_, crossed := SelfIntersection(square(10))
		require.False(t, crossed)
	})

	t.Run("bowtie", func(t *testing.T) {
		bowtie := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}
		p, crossed := SelfIntersection(bowtie)
		require.True(t, crossed)
		require.InDelta(t, 5.0, p.X, 1e-9)
		require.InDelta(t, 5.0, p.Y, 1e-9)
	})
}

package geometry

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// OffsetRing grows (d > 0) or shrinks (d < 0) a ring by moving every vertex
// along the averaged outward normal of its adjacent edges. The input may be
// open or closed; the result is open.
func OffsetRing(ring []geom.Point, d float64) []geom.Point {
	r := openRing(ring)
	n := len(r)
	if n < 3 || d == 0 {
		return append([]geom.Point(nil), r...)
	}
	sign := 1.0
	if ringSignedArea(r) < 0 {
		sign = -1.0
	}
	out := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		prev := r[(i+n-1)%n]
		cur := r[i]
		next := r[(i+1)%n]
		n1x, n1y := edgeNormal(prev, cur, sign)
		n2x, n2y := edgeNormal(cur, next, sign)
		nx, ny := n1x+n2x, n1y+n2y
		l := math.Hypot(nx, ny)
		if l == 0 {
			out[i] = cur
			continue
		}
		out[i] = geom.Point{X: cur.X + nx/l*d, Y: cur.Y + ny/l*d}
	}
	return out
}

// edgeNormal returns the unit outward normal of the edge ab for a ring with
// the given orientation sign (+1 for CCW by signed area).
func edgeNormal(a, b geom.Point, sign float64) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return sign * dy / l, sign * -dx / l
}

// Corridor converts an open polyline into a thin closed polygon of the
// given half width with square end caps. Used to carve a polygon apart
// along a dividing line via polygon difference.
func Corridor(line []geom.Point, halfWidth float64) geom.Polygon {
	pts := removeDuplicatePoints(append([]geom.Point(nil), line...))
	if len(pts) < 2 {
		return nil
	}
	// Square caps: extend both ends along the end segment directions so the
	// corridor fully crosses shapes the line is anchored on.
	first, second := pts[0], pts[1]
	last, beforeLast := pts[len(pts)-1], pts[len(pts)-2]
	pts[0] = extendPoint(second, first, halfWidth*2)
	pts[len(pts)-1] = extendPoint(beforeLast, last, halfWidth*2)

	n := len(pts)
	left := make([]geom.Point, n)
	right := make([]geom.Point, n)
	for i := 0; i < n; i++ {
		var dx, dy float64
		switch {
		case i == 0:
			dx, dy = pts[1].X-pts[0].X, pts[1].Y-pts[0].Y
		case i == n-1:
			dx, dy = pts[n-1].X-pts[n-2].X, pts[n-1].Y-pts[n-2].Y
		default:
			dx, dy = pts[i+1].X-pts[i-1].X, pts[i+1].Y-pts[i-1].Y
		}
		l := math.Hypot(dx, dy)
		if l == 0 {
			l = 1
		}
		nx, ny := dy/l, -dx/l
		left[i] = geom.Point{X: pts[i].X + nx*halfWidth, Y: pts[i].Y + ny*halfWidth}
		right[i] = geom.Point{X: pts[i].X - nx*halfWidth, Y: pts[i].Y - ny*halfWidth}
	}
	ring := make([]geom.Point, 0, 2*n+1)
	ring = append(ring, left...)
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

func extendPoint(from, to geom.Point, d float64) geom.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return to
	}
	return geom.Point{X: to.X + dx/l*d, Y: to.Y + dy/l*d}
}

// SplitRingByLine divides a polygon along an open polyline and returns the
// resulting pieces as open rings ordered by descending area. The cut is
// realized as the difference with a thin corridor around the line; an empty
// or unchanged result yields nil.
func SplitRingByLine(poly geom.Polygon, line []geom.Point) [][]geom.Point {
	corridor := Corridor(line, 0.25)
	if corridor == nil {
		return nil
	}
	diff := Flatten(poly.Difference(corridor))
	if len(diff) == 0 {
		return nil
	}
	var parts [][]geom.Point
	for _, ring := range diff {
		if RingArea(ring) > 1e-9 {
			parts = append(parts, openRing(ring))
		}
	}
	sort.Slice(parts, func(i, j int) bool {
		return RingArea(parts[i]) > RingArea(parts[j])
	})
	return parts
}

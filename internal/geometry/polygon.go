// Package geometry provides the geometric primitives the layout engine
// needs beyond boolean polygon clipping: convex hulls, minimum rotated
// rectangles, ring offsetting, point projection and ring splitting.
package geometry

import (
	"math"

	"github.com/ctessum/geom"
)

// Cross returns the z-component of (a-o) x (b-o).
func Cross(o, a, b geom.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Dist returns the euclidean distance between two points.
func Dist(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// RingArea returns the unsigned area of a ring. The ring may be open or
// closed; closure is implied.
func RingArea(ring []geom.Point) float64 {
	return math.Abs(ringSignedArea(ring))
}

func ringSignedArea(ring []geom.Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// RingCentroid returns the area centroid of a ring, falling back to the
// vertex mean for degenerate rings.
func RingCentroid(ring []geom.Point) geom.Point {
	n := len(ring)
	if n == 0 {
		return geom.Point{}
	}
	area := ringSignedArea(ring)
	if area == 0 {
		return vertexMean(ring)
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		f := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * f
		cy += (a.Y + b.Y) * f
	}
	f := 1 / (6 * area)
	return geom.Point{X: cx * f, Y: cy * f}
}

func vertexMean(pts []geom.Point) geom.Point {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(pts))
	return geom.Point{X: cx / n, Y: cy / n}
}

// Flatten collects the rings of all member polygons of p into a single
// polygon. Boolean operations return the Polygonal interface, possibly
// holding a multi-polygon; flattening makes the rings rangeable again.
func Flatten(p geom.Polygonal) geom.Polygon {
	if p == nil {
		return nil
	}
	var out geom.Polygon
	for _, poly := range p.Polygons() {
		out = append(out, poly...)
	}
	return out
}

// LargestRing returns the ring of p with the largest unsigned area, open
// (without the duplicated closing point). Returns nil for an empty polygon.
func LargestRing(p geom.Polygonal) []geom.Point {
	var best []geom.Point
	bestArea := -1.0
	for _, ring := range Flatten(p) {
		a := RingArea(ring)
		if a > bestArea {
			bestArea = a
			best = ring
		}
	}
	return openRing(best)
}

// RingCount returns the number of non-degenerate rings in p. It is used to
// detect disconnected clipping results.
func RingCount(p geom.Polygonal) int {
	n := 0
	for _, ring := range Flatten(p) {
		if RingArea(ring) > 1e-9 {
			n++
		}
	}
	return n
}

func openRing(ring []geom.Point) []geom.Point {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// ConvexHull computes the convex hull of a point set using the monotone
// chain algorithm. Returns the hull in CCW order without duplicating the
// first point at the end.
func ConvexHull(pts []geom.Point) []geom.Point {
	n := len(pts)
	if n <= 1 {
		return append([]geom.Point(nil), pts...)
	}
	p := make([]geom.Point, n)
	copy(p, pts)
	sortPoints(p)
	p = removeDuplicatePoints(p)
	n = len(p)
	if n <= 2 {
		return append([]geom.Point(nil), p...)
	}
	lower := buildLowerHull(p)
	upper := buildUpperHull(p)
	hull := make([]geom.Point, 0, len(lower)+len(upper)-2)
	hull = append(hull, lower[:len(lower)-1]...)
	hull = append(hull, upper[:len(upper)-1]...)
	return hull
}

func removeDuplicatePoints(p []geom.Point) []geom.Point {
	q := p[:0]
	var last geom.Point
	hasLast := false
	for _, pt := range p {
		if !hasLast || pt.X != last.X || pt.Y != last.Y {
			q = append(q, pt)
			last = pt
			hasLast = true
		}
	}
	return q
}

func buildLowerHull(p []geom.Point) []geom.Point {
	lower := make([]geom.Point, 0, len(p))
	for _, pt := range p {
		for len(lower) >= 2 && Cross(lower[len(lower)-2], lower[len(lower)-1], pt) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}
	return lower
}

func buildUpperHull(p []geom.Point) []geom.Point {
	upper := make([]geom.Point, 0, len(p))
	for i := len(p) - 1; i >= 0; i-- {
		pt := p[i]
		for len(upper) >= 2 && Cross(upper[len(upper)-2], upper[len(upper)-1], pt) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}
	return upper
}

func sortPoints(p []geom.Point) {
	for i := 1; i < len(p); i++ {
		v := p[i]
		j := i - 1
		for j >= 0 && (p[j].X > v.X || (p[j].X == v.X && p[j].Y > v.Y)) {
			p[j+1] = p[j]
			j--
		}
		p[j+1] = v
	}
}

// MinimumRotatedRectangle computes the minimum-area enclosing rectangle
// using rotating calipers over the convex hull. Returns 4 corner points in
// CCW order. Falls back to a degenerate unit-extent rectangle for point and
// segment inputs.
func MinimumRotatedRectangle(pts []geom.Point) []geom.Point {
	if len(pts) == 0 {
		return nil
	}
	hull := ConvexHull(pts)
	if len(hull) == 0 {
		return nil
	}
	if len(hull) == 1 {
		p := hull[0]
		return []geom.Point{p, {X: p.X + 1, Y: p.Y}, {X: p.X + 1, Y: p.Y + 1}, {X: p.X, Y: p.Y + 1}}
	}
	if len(hull) == 2 {
		a, b := hull[0], hull[1]
		return []geom.Point{a, b, {X: b.X, Y: b.Y + 1}, {X: a.X, Y: a.Y + 1}}
	}
	return minAreaRect(hull)
}

func minAreaRect(hull []geom.Point) []geom.Point {
	bestArea := math.Inf(1)
	var bestU, bestV geom.Point
	var bestMinS, bestMaxS, bestMinT, bestMaxT float64
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		dx := b.X - a.X
		dy := b.Y - a.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		ux, uy := dx/l, dy/l
		vx, vy := -uy, ux
		minS, maxS := math.Inf(1), math.Inf(-1)
		minT, maxT := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.X*ux + p.Y*uy
			t := p.X*vx + p.Y*vy
			minS = math.Min(minS, s)
			maxS = math.Max(maxS, s)
			minT = math.Min(minT, t)
			maxT = math.Max(maxT, t)
		}
		area := (maxS - minS) * (maxT - minT)
		if area < bestArea {
			bestArea = area
			bestU = geom.Point{X: ux, Y: uy}
			bestV = geom.Point{X: vx, Y: vy}
			bestMinS, bestMaxS, bestMinT, bestMaxT = minS, maxS, minT, maxT
		}
	}
	if math.IsInf(bestArea, 1) {
		return nil
	}
	corner := func(s, t float64) geom.Point {
		return geom.Point{X: bestU.X*s + bestV.X*t, Y: bestU.Y*s + bestV.Y*t}
	}
	return []geom.Point{
		corner(bestMinS, bestMinT),
		corner(bestMaxS, bestMinT),
		corner(bestMaxS, bestMaxT),
		corner(bestMinS, bestMaxT),
	}
}

// Edges decomposes a ring (open or closed) into its segments.
func Edges(ring []geom.Point) [][2]geom.Point {
	r := openRing(ring)
	n := len(r)
	if n < 2 {
		return nil
	}
	edges := make([][2]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]geom.Point{r[i], r[(i+1)%n]})
	}
	return edges
}

// ScaleAbout scales pts by the given factors about the center point.
func ScaleAbout(pts []geom.Point, center geom.Point, xfact, yfact float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{
			X: center.X + (p.X-center.X)*xfact,
			Y: center.Y + (p.Y-center.Y)*yfact,
		}
	}
	return out
}

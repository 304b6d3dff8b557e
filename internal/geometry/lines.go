package geometry

import (
	"math"

	"github.com/ctessum/geom"
)

// NearestPointOnSegment projects p onto the segment ab and returns the
// closest point of the segment.
func NearestPointOnSegment(p, a, b geom.Point) geom.Point {
	vx, vy := b.X-a.X, b.Y-a.Y
	l2 := vx*vx + vy*vy
	if l2 == 0 {
		return a
	}
	t := ((p.X-a.X)*vx + (p.Y-a.Y)*vy) / l2
	t = math.Max(0, math.Min(1, t))
	return geom.Point{X: a.X + t*vx, Y: a.Y + t*vy}
}

// NearestPointOnLine returns the point of the polyline closest to p.
func NearestPointOnLine(p geom.Point, line []geom.Point) geom.Point {
	if len(line) == 0 {
		return p
	}
	if len(line) == 1 {
		return line[0]
	}
	best := line[0]
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		q := NearestPointOnSegment(p, line[i], line[i+1])
		if d := Dist(p, q); d < bestDist {
			bestDist = d
			best = q
		}
	}
	return best
}

// NearestPointOnRing returns the point of the ring outline closest to p.
func NearestPointOnRing(p geom.Point, ring []geom.Point) geom.Point {
	best := p
	bestDist := math.Inf(1)
	for _, e := range Edges(ring) {
		q := NearestPointOnSegment(p, e[0], e[1])
		if d := Dist(p, q); d < bestDist {
			bestDist = d
			best = q
		}
	}
	return best
}

// DistanceToRing returns the distance from p to the ring outline, 0 when p
// lies on it.
func DistanceToRing(p geom.Point, ring []geom.Point) float64 {
	return Dist(p, NearestPointOnRing(p, ring))
}

// SegmentIntersection returns the intersection point of segments ab and cd
// when they properly intersect or touch, and reports whether one exists.
// Collinear overlaps report the first shared endpoint.
func SegmentIntersection(a, b, c, d geom.Point) (geom.Point, bool) {
	d1 := Cross(c, d, a)
	d2 := Cross(c, d, b)
	d3 := Cross(a, b, c)
	d4 := Cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		t := d1 / (d1 - d2)
		return geom.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}, true
	}

	switch {
	case d1 == 0 && onSegment(c, d, a):
		return a, true
	case d2 == 0 && onSegment(c, d, b):
		return b, true
	case d3 == 0 && onSegment(a, b, c):
		return c, true
	case d4 == 0 && onSegment(a, b, d):
		return d, true
	}
	return geom.Point{}, false
}

func onSegment(a, b, p geom.Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentRingIntersections collects every intersection point between the
// segment ab and the ring outline.
func SegmentRingIntersections(a, b geom.Point, ring []geom.Point) []geom.Point {
	var pts []geom.Point
	for _, e := range Edges(ring) {
		if p, ok := SegmentIntersection(a, b, e[0], e[1]); ok {
			pts = append(pts, p)
		}
	}
	return pts
}

// LineIntersectsRing reports whether the polyline touches or crosses the
// ring outline or has a vertex inside the ring's polygon.
func LineIntersectsRing(line []geom.Point, ring []geom.Point) bool {
	if len(line) == 0 || len(ring) < 3 {
		return false
	}
	poly := geom.Polygon{append(append([]geom.Point(nil), ring...), ring[0])}
	for _, p := range line {
		if PointCovered(p, poly) {
			return true
		}
	}
	for i := 0; i+1 < len(line); i++ {
		if len(SegmentRingIntersections(line[i], line[i+1], ring)) > 0 {
			return true
		}
	}
	return false
}

// PointCovered reports whether p lies inside or on the edge of poly.
func PointCovered(p geom.Point, poly geom.Polygon) bool {
	return p.Within(poly) != geom.Outside
}

// PointInside reports whether p lies strictly inside poly.
func PointInside(p geom.Point, poly geom.Polygon) bool {
	return p.Within(poly) == geom.Inside
}

// LineCentroid returns the length-weighted centroid of a polyline. A
// single-point line yields that point.
func LineCentroid(line []geom.Point) geom.Point {
	if len(line) == 0 {
		return geom.Point{}
	}
	if len(line) == 1 {
		return line[0]
	}
	var cx, cy, total float64
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		l := Dist(a, b)
		cx += (a.X + b.X) / 2 * l
		cy += (a.Y + b.Y) / 2 * l
		total += l
	}
	if total == 0 {
		return vertexMean(line)
	}
	return geom.Point{X: cx / total, Y: cy / total}
}

// LineBounds returns the axis-aligned bounds of a polyline.
func LineBounds(line []geom.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range line {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// TranslatePoints shifts all points by (dx, dy).
func TranslatePoints(pts []geom.Point, dx, dy float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// SelfIntersection checks whether the ring (open or closed) is
// geometrically simple. It returns the first crossing point of two
// non-adjacent edges and true when the ring self-intersects.
func SelfIntersection(ring []geom.Point) (geom.Point, bool) {
	edges := Edges(ring)
	n := len(edges)
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through closure
			}
			if p, ok := SegmentIntersection(edges[i][0], edges[i][1], edges[j][0], edges[j][1]); ok {
				return p, true
			}
		}
	}
	return geom.Point{}, false
}

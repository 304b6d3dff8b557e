package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/geometry"
)

// Direction selects how Buffer grows a boundary.
type Direction string

const (
	// DirectionAll grows the boundary uniformly.
	DirectionAll Direction = "all"
	// DirectionHorizontal restricts growth to the two longest sides of the
	// minimum rotated rectangle, extending the shape lengthwise only.
	DirectionHorizontal Direction = "horizontal"
	// DirectionWidth behaves like DirectionHorizontal but picks the
	// restricting sides by edge length instead of horizontal alignment.
	DirectionWidth Direction = "width"
)

const areaEps = 1e-9

// ValidateRegion checks that the boundary forms a geometrically simple
// ring with at least 3 distinct points and is not disjoint from the parent
// boundary. Failures are logged with the owning id and reported as false.
func (r *Region) ValidateRegion() bool {
	ring, err := r.Boundary.Ring()
	if err != nil || len(ring) < 4 {
		r.logger().Warn("region is missing or has insufficient coord points", "id", r.ID)
		return false
	}

	if p, ok := geometry.SelfIntersection(ring); ok {
		r.logger().Warn("region ring is not valid",
			"id", r.ID,
			"reason", fmt.Sprintf("ring self-intersection at (%.0f, %.0f)", p.X, p.Y))
		r.logger().Warn("use the repair operation to remove the self-intersecting part", "id", r.ID)
		return false
	}

	parent := r.parent
	if parent == nil || len(parent.Boundary) == 0 {
		return true
	}
	parentRing, err := parent.Boundary.Ring()
	if err != nil {
		r.logger().Warn("parent region has insufficient coord points", "id", parent.ID)
		return false
	}
	if _, bad := geometry.SelfIntersection(parentRing); bad {
		r.logger().Warn("region is invalid or outside of the parent region", "id", r.ID, "parent", parent.ID)
		return false
	}
	if r.disjointFrom(parent.Boundary) {
		r.logger().Warn("region is invalid or outside of the parent region", "id", r.ID, "parent", parent.ID)
		return false
	}
	return true
}

// disjointFrom reports whether the boundary shares no interior area and no
// outline contact with the other boundary. Fails open (not disjoint) when
// either shape is degenerate, so that disjointness is only asserted on
// evidence.
func (r *Region) disjointFrom(other coords.Sequence) bool {
	rp, err := r.Boundary.Polygon()
	if err != nil {
		return false
	}
	op, err := other.Polygon()
	if err != nil {
		return false
	}
	if rp.Intersection(op).Area() > areaEps {
		return false
	}
	ring, err := other.Ring()
	if err != nil {
		return false
	}
	return !geometry.LineIntersectsRing(r.Boundary.Canonical().Points(), ring[:len(ring)-1])
}

// WithinParent reports whether the boundary is fully contained in the
// parent boundary. Any geometric failure yields false.
func (r *Region) WithinParent() bool {
	if r.parent == nil {
		return false
	}
	rp, err := r.Boundary.Polygon()
	if err != nil {
		return false
	}
	pp, err := r.parent.Boundary.Polygon()
	if err != nil {
		return false
	}
	area := rp.Area()
	if area <= areaEps {
		return false
	}
	return pp.Intersection(rp).Area() >= area*(1-1e-6)
}

// Overlaps reports whether the intersection with the given polygon exceeds
// the given ratio of the boundary's own area. Any geometric failure yields
// false.
func (r *Region) Overlaps(other geom.Polygon, ratio float64) bool {
	rp, err := r.Boundary.Polygon()
	if err != nil || len(other) == 0 {
		return false
	}
	return rp.Area()*ratio < other.Intersection(rp).Area()
}

// RemoveRepeatedPoints collapses consecutive boundary points closer than
// the tolerance.
func (r *Region) RemoveRepeatedPoints(tolerance float64) {
	pts := r.Boundary.Canonical()
	if len(pts) < 2 {
		return
	}
	kept := coords.Sequence{pts[0]}
	for _, p := range pts[1:] {
		last := kept[len(kept)-1]
		if math.Hypot(float64(p.X-last.X), float64(p.Y-last.Y)) > tolerance {
			kept = append(kept, p)
		}
	}
	r.Boundary = kept.Canonical()
}

// ConvexHull replaces the boundary with its convex hull. This is the blunt
// repair for self-intersecting rings.
func (r *Region) ConvexHull() {
	pts := r.Boundary.Canonical()
	if len(pts) < 3 {
		r.logger().Warn("convex hull skipped", "id", r.ID, "reason", ErrInsufficientPoints.Error())
		return
	}
	hull := geometry.ConvexHull(pts.Points())
	if len(hull) < 3 {
		r.logger().Warn("convex hull skipped", "id", r.ID, "reason", ErrDegenerateOperation.Error())
		return
	}
	r.Boundary = coords.FromPoints(hull)
}

// Simplify reduces the boundary with Douglas–Peucker simplification at the
// given tolerance. The boundary is left unchanged on a degenerate result.
func (r *Region) Simplify(tolerance float64) {
	poly, err := r.Boundary.Polygon()
	if err != nil {
		r.logger().Warn("simplify skipped", "id", r.ID, "reason", err.Error())
		return
	}
	simplified, ok := poly.Simplify(tolerance).(geom.Polygon)
	if !ok || len(simplified) == 0 {
		r.logger().Warn("simplify skipped", "id", r.ID, "reason", ErrDegenerateOperation.Error())
		return
	}
	seq := coords.FromPolygon(simplified)
	if len(seq) < 3 {
		r.logger().Warn("simplify skipped", "id", r.ID, "reason", ErrDegenerateOperation.Error())
		return
	}
	r.Boundary = seq
}

// FitIntoParent replaces the boundary with its intersection with the
// parent boundary when it protrudes. A nil parent sequence resolves the
// parent's boundary; the operation is a no-op when no usable parent
// boundary exists (including the degenerate "0,0 0,0" placeholder).
func (r *Region) FitIntoParent(parent coords.Sequence) {
	if parent == nil {
		if r.parent == nil {
			return
		}
		parent = r.parent.Boundary
	}
	if len(parent.Canonical()) < 3 {
		return
	}
	r.Boundary = FitFirstIntoSecondRing(r.Boundary, parent, r.logger(), r.ID)
}

// Translate rigidly shifts the boundary.
func (r *Region) Translate(dx, dy int) {
	r.Boundary = r.Boundary.Translate(dx, dy)
}

// Buffer grows (or for a negative distance shrinks) the boundary by the
// given distance. Horizontal and width directions restrict growth to the
// two longest sides of the minimum rotated rectangle so the shape only
// extends lengthwise; a disconnected restricted result abandons the
// operation and keeps the original boundary. With rectangle set the result
// is replaced by its minimum rotated rectangle; with simplify set it is
// simplified and convex-hulled.
func (r *Region) Buffer(distance float64, direction Direction, simplify, rectangle bool) {
	res, err := bufferSequence(r.Boundary, distance, direction, simplify, rectangle)
	if err != nil {
		r.logger().Warn("buffer skipped", "id", r.ID, "reason", err.Error())
		return
	}
	r.Boundary = res
}

func bufferSequence(seq coords.Sequence, distance float64, direction Direction, simplify, rectangle bool) (coords.Sequence, error) {
	ring, err := seq.Ring()
	if err != nil {
		return nil, geomErr("buffer", "", ErrInsufficientPoints)
	}
	open := ring[:len(ring)-1]
	original := geom.Polygon{ring}

	padded := original
	if distance != 0 {
		off := geometry.OffsetRing(open, distance)
		if geometry.RingArea(off) <= areaEps {
			return nil, geomErr("buffer", "", ErrDegenerateOperation)
		}
		padded = geom.Polygon{append(off, off[0])}
	}

	if direction == DirectionHorizontal || direction == DirectionWidth {
		restricted, err := restrictToLongSides(padded, original, open, direction)
		if err != nil {
			return nil, err
		}
		padded = restricted
	}

	if rectangle {
		rect := geometry.MinimumRotatedRectangle(geometry.LargestRing(padded))
		if len(rect) < 3 {
			return nil, geomErr("buffer", "", ErrDegenerateOperation)
		}
		return coords.FromPoints(rect), nil
	}

	if simplify {
		if sp, ok := padded.Simplify(0.95).(geom.Polygon); ok && len(sp) > 0 {
			padded = sp
		}
		hull := geometry.ConvexHull(geometry.LargestRing(padded))
		if len(hull) < 3 {
			return nil, geomErr("buffer", "", ErrDegenerateOperation)
		}
		return coords.FromPoints(hull), nil
	}

	res := coords.FromPolygon(padded)
	if len(res) < 3 {
		return nil, geomErr("buffer", "", ErrDegenerateOperation)
	}
	return res, nil
}

// restrictToLongSides clips the padded polygon to the band spanned by the
// two longest sides of the shape's minimum rotated rectangle and re-unions
// it with the original shape, so growth happens lengthwise only.
func restrictToLongSides(padded, original geom.Polygon, open []geom.Point, direction Direction) (geom.Polygon, error) {
	mrr := geometry.MinimumRotatedRectangle(open)
	if len(mrr) < 4 {
		return nil, geomErr("buffer", "", ErrDegenerateOperation)
	}
	shrunk := geometry.ScaleAbout(mrr, geometry.RingCentroid(mrr), 0.9, 0.9)
	edges := geometry.Edges(shrunk)
	sort.Slice(edges, func(i, j int) bool {
		return edgeSortKey(edges[i], direction) < edgeSortKey(edges[j], direction)
	})
	// The two longest edges bound the band the shape may grow within.
	var bandPts []geom.Point
	for _, e := range edges[len(edges)-2:] {
		scaled := geometry.ScaleAbout(e[:], geometry.RingCentroid(e[:]), 10, 10)
		bandPts = append(bandPts, scaled...)
	}
	bandHull := geometry.ConvexHull(bandPts)
	if len(bandHull) < 3 {
		return nil, geomErr("buffer", "", ErrDegenerateOperation)
	}
	band := geom.Polygon{append(bandHull, bandHull[0])}

	clipped := padded.Intersection(band)
	if geometry.RingCount(clipped) != 1 {
		return nil, geomErr("buffer", "", fmt.Errorf("%w: clipping to the length band produced multiple areas", ErrDegenerateOperation))
	}
	union := clipped.Union(original)
	if geometry.RingCount(union) != 1 {
		return nil, geomErr("buffer", "", fmt.Errorf("%w: restricted growth is disconnected", ErrDegenerateOperation))
	}
	return geometry.Flatten(union), nil
}

func edgeSortKey(e [2]geom.Point, direction Direction) float64 {
	if direction == DirectionWidth {
		return geometry.Dist(e[0], e[1])
	}
	return math.Abs(e[0].X - e[1].X)
}

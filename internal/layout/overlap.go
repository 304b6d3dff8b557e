package layout

import (
	"log/slog"
	"sort"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/geometry"
)

// SplitOverlappingRings divides two overlapping boundary rings into
// disjoint rings along a computed centerline. If the rings are already
// disjoint, if either overlap subset is empty, or if any step yields a
// degenerate geometry, both inputs are returned unchanged; the operation
// never partially mutates.
func SplitOverlappingRings(first, second coords.Sequence, log *slog.Logger) (coords.Sequence, coords.Sequence) {
	if log == nil {
		log = slog.Default()
	}
	firstPoly, err := first.Polygon()
	if err != nil {
		return first, second
	}
	secondPoly, err := second.Polygon()
	if err != nil {
		return first, second
	}

	firstInside := pointsInside(first.Canonical(), secondPoly)
	secondInside := pointsInside(second.Canonical(), firstPoly)
	if len(firstInside) == 0 || len(secondInside) == 0 {
		return first, second
	}

	center := centerline(firstInside, secondInside)
	firstCut := anchorLine(firstInside, center)
	secondCut := anchorLine(secondInside, center)

	firstParts := geometry.SplitRingByLine(firstPoly, firstCut)
	secondParts := geometry.SplitRingByLine(secondPoly, secondCut)
	if len(firstParts) == 0 || len(secondParts) == 0 {
		log.Warn("overlap split produced a degenerate result, keeping original rings")
		return first, second
	}
	newFirst := coords.FromPoints(firstParts[0])
	newSecond := coords.FromPoints(secondParts[0])
	if len(newFirst) < 3 || len(newSecond) < 3 {
		log.Warn("overlap split produced a degenerate result, keeping original rings")
		return first, second
	}
	return newFirst, newSecond
}

// pointsInside returns the ring points strictly inside the other polygon,
// sorted by x.
func pointsInside(seq coords.Sequence, other geom.Polygon) []geom.Point {
	var inside []geom.Point
	for _, p := range seq.Points() {
		if geometry.PointInside(p, other) {
			inside = append(inside, p)
		}
	}
	sort.SliceStable(inside, func(i, j int) bool { return inside[i].X < inside[j].X })
	return inside
}

// centerline builds the dividing line between two point subsequences: for
// every point of the longer one, the midpoint toward its nearest point on
// the shorter one.
func centerline(first, second []geom.Point) []geom.Point {
	more, less := first, second
	if len(second) > len(first) {
		more, less = second, first
	}
	mids := make([]geom.Point, 0, len(more))
	for _, p := range more {
		q := geometry.NearestPointOnLine(p, less)
		mids = append(mids, geom.Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2})
	}
	return mids
}

// anchorLine anchors the centerline at the endpoints of the ring's own
// overlap subset.
func anchorLine(subset, center []geom.Point) []geom.Point {
	line := make([]geom.Point, 0, len(center)+2)
	line = append(line, subset[0])
	line = append(line, center...)
	line = append(line, subset[len(subset)-1])
	return line
}

// FitFirstIntoSecondRing replaces the first ring with the intersection of
// both (largest piece for a multi-part result). The first ring is returned
// unchanged when either input is degenerate or the intersection is empty.
func FitFirstIntoSecondRing(first, second coords.Sequence, log *slog.Logger, id string) coords.Sequence {
	if log == nil {
		log = slog.Default()
	}
	firstRing, err := first.Ring()
	if err != nil {
		return first
	}
	secondRing, err := second.Ring()
	if err != nil {
		return first
	}
	if _, bad := geometry.SelfIntersection(firstRing); bad {
		log.Warn("fit into parent skipped", "id", id, "reason", ErrInvalidGeometry.Error())
		return first
	}
	if _, bad := geometry.SelfIntersection(secondRing); bad {
		log.Warn("fit into parent skipped", "id", id, "reason", ErrInvalidGeometry.Error())
		return first
	}

	intersection := geom.Polygon{secondRing}.Intersection(geom.Polygon{firstRing})
	if intersection.Area() <= areaEps {
		log.Warn("fit into parent found no intersection", "id", id)
		return first
	}
	fitted := coords.FromPolygon(intersection)
	if len(fitted) < 3 {
		log.Warn("fit into parent produced a degenerate result", "id", id)
		return first
	}
	return fitted
}

package layout

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/geometry"
)

// ComputeBaseline derives a baseline from the line's boundary: the midline
// between the two longest parallel sides of the minimum rotated rectangle,
// i.e. the segment connecting the midpoints of the two shortest rectangle
// edges, ordered by ascending average vertical position. Returns nil when
// the boundary is degenerate.
func (l *Line) ComputeBaseline() coords.Sequence {
	pts := l.Boundary.Canonical()
	if len(pts) < 3 {
		return nil
	}
	rect := geometry.MinimumRotatedRectangle(pts.Points())
	if len(rect) < 3 {
		return nil
	}
	edges := geometry.Edges(rect)
	sort.SliceStable(edges, func(i, j int) bool {
		return geometry.Dist(edges[i][0], edges[i][1]) < geometry.Dist(edges[j][0], edges[j][1])
	})
	short := edges[:2]
	sort.SliceStable(short, func(i, j int) bool {
		return math.Round((short[i][0].Y+short[i][1].Y)/2) < math.Round((short[j][0].Y+short[j][1].Y)/2)
	})
	mids := make([]geom.Point, 0, 2)
	for _, e := range short {
		mids = append(mids, geom.Point{X: (e[0].X + e[1].X) / 2, Y: (e[0].Y + e[1].Y) / 2})
	}
	return coords.FromPoints(mids)
}

// ValidateBaseline checks that the baseline has at least 2 distinct points
// and intersects the owning boundary, and that every baseline point is
// covered by the boundary. With update set, uncovered points are replaced
// by their nearest boundary point when that point is strictly closer than
// both neighboring baseline points, and dropped otherwise; the repaired
// baseline is written back. Returns false with a logged reason on failure
// and never partially mutates.
func (l *Line) ValidateBaseline(update bool) bool {
	bl, ok := l.Baseline()
	if !ok || len(bl) == 0 {
		l.logger().Warn("missing baseline", "id", l.ID)
		return false
	}
	pts := bl.DedupAdjacent()
	if len(pts) < 2 {
		l.logger().Warn("baseline has just one point", "id", l.ID)
		return false
	}

	poly, err := l.Boundary.Polygon()
	if err != nil {
		l.logger().Warn("baseline or owning boundary is invalid", "id", l.ID)
		return false
	}
	ring := l.Boundary.Canonical().Points()
	if !geometry.LineIntersectsRing(pts.Points(), ring) {
		l.logger().Warn("baseline is outside of the textline boundary", "id", l.ID, "parent", l.parentID())
		return false
	}

	kept := make(coords.Sequence, 0, len(pts))
	var outside, replaced, dropped []coords.Point
	for idx, p := range pts {
		fp := geom.Point{X: float64(p.X), Y: float64(p.Y)}
		if geometry.PointCovered(fp, poly) {
			kept = append(kept, p)
			continue
		}
		outside = append(outside, p)
		if !update {
			continue
		}
		boundaryDist := geometry.DistanceToRing(fp, ring)
		predDist := math.Inf(1)
		if len(kept) > 0 {
			prev := kept[len(kept)-1]
			predDist = math.Hypot(float64(p.X-prev.X), float64(p.Y-prev.Y))
		}
		succDist := math.Inf(1)
		if idx < len(pts)-1 {
			next := pts[idx+1]
			succDist = math.Hypot(float64(p.X-next.X), float64(p.Y-next.Y))
		}
		// Replace with the nearest boundary point only when it is closer
		// than both neighbors, protecting against drift.
		if boundaryDist < predDist && boundaryDist < succDist {
			nearest := geometry.NearestPointOnRing(fp, ring)
			np := coords.Point{X: int(nearest.X), Y: int(nearest.Y)}
			kept = append(kept, np)
			replaced = append(replaced, np)
		} else {
			dropped = append(dropped, p)
		}
	}

	if len(outside) > 0 {
		l.logger().Warn("baseline points are outside of the textline boundary",
			"id", l.ID, "parent", l.parentID(), "points", outside)
		if !update {
			return false
		}
		l.logger().Warn("baseline points got replaced or dropped",
			"id", l.ID, "replaced", replaced, "dropped", dropped)
	}

	if update {
		if len(kept.DedupAdjacent()) < 2 {
			l.logger().Warn("baseline repair left fewer than two points", "id", l.ID)
			return false
		}
		l.SetBaseline(kept)
	}
	return true
}

// ExtendBaseline stretches the first and last baseline points outward to
// the boundary's horizontal extremes, keeping intermediate points that fall
// within the minimum rotated rectangle. When no usable baseline exists and
// createMissing is set, one is computed first.
func (l *Line) ExtendBaseline(createMissing bool) {
	poly, err := l.Boundary.Polygon()
	if err != nil {
		l.logger().Warn("baseline could not be extended", "id", l.ID, "reason", err.Error())
		return
	}
	ring := l.Boundary.Canonical().Points()

	bl, ok := l.Baseline()
	var base coords.Sequence
	if !ok || !baselineTouchesShape(bl.Points(), ring, poly) {
		if !ok && !createMissing {
			return
		}
		base = l.ComputeBaseline()
		if len(base) == 0 {
			l.logger().Warn("baseline could not be extended", "id", l.ID, "reason", ErrInsufficientPoints.Error())
			return
		}
	} else {
		base = bl
	}

	bounds := poly.Bounds()
	minX, maxX := bounds.Min.X, bounds.Max.X

	first := base[0]
	last := base[len(base)-1]
	extended := coords.Sequence{
		nearestRingIntersection(ring,
			geom.Point{X: minX, Y: float64(first.Y)},
			geom.Point{X: float64(first.X), Y: float64(first.Y)}),
	}

	if len(base) > 2 {
		if rectPoly, err := l.Boundary.MinRotatedRect(); err == nil {
			for _, p := range base[1 : len(base)-1] {
				fp := geom.Point{X: float64(p.X), Y: float64(p.Y)}
				if geometry.PointInside(fp, rectPoly) {
					extended = append(extended, p)
				}
			}
		}
	}

	extended = append(extended, nearestRingIntersection(ring,
		geom.Point{X: maxX, Y: float64(last.Y)},
		geom.Point{X: float64(last.X), Y: float64(last.Y)}))

	if len(extended) > 0 {
		l.SetBaseline(extended)
	}
}

// baselineTouchesShape reports whether the baseline intersects the line
// shape as an area: it either crosses the outline or runs inside it.
func baselineTouchesShape(bl, ring []geom.Point, poly geom.Polygon) bool {
	if geometry.LineIntersectsRing(bl, ring) {
		return true
	}
	for _, p := range bl {
		if geometry.PointCovered(p, poly) {
			return true
		}
	}
	return false
}

// nearestRingIntersection intersects the extension ray from the horizontal
// extreme toward the baseline endpoint with the boundary outline and
// returns the intersection nearest to the extreme. Without an intersection
// the extreme itself is returned.
func nearestRingIntersection(ring []geom.Point, extreme, endpoint geom.Point) coords.Point {
	hits := geometry.SegmentRingIntersections(extreme, endpoint, ring)
	if len(hits) == 0 {
		return coords.Point{X: int(extreme.X), Y: int(extreme.Y)}
	}
	best := hits[0]
	bestDist := geometry.Dist(extreme, best)
	for _, h := range hits[1:] {
		if d := geometry.Dist(extreme, h); d < bestDist {
			bestDist = d
			best = h
		}
	}
	return coords.Point{X: int(best.X), Y: int(best.Y)}
}

// PlaceOverBaseline horizontally centers the line boundary over its
// baseline. No-op when either geometry is missing.
func (l *Line) PlaceOverBaseline() {
	bl, ok := l.Baseline()
	if !ok || len(bl) == 0 || len(l.Boundary.Canonical()) < 3 {
		return
	}
	blMinX, _, blMaxX, _ := bl.Bounds()
	tlMinX, _, tlMaxX, _ := l.Boundary.Bounds()
	dx := int(math.Round(float64((blMinX-tlMinX)+(blMaxX-tlMaxX)) / 2))
	l.Boundary = l.Boundary.Translate(dx, 0)
}

// PseudoPolygonFromBaseline replaces the line boundary with the minimum
// rotated rectangle of the baseline buffered by the given size. No-op when
// the baseline is absent.
func (l *Line) PseudoPolygonFromBaseline(buffer float64) {
	bl, ok := l.Baseline()
	if !ok || len(bl) < 2 {
		return
	}
	corridor := geometry.Corridor(bl.Points(), buffer)
	if corridor == nil {
		return
	}
	rect := geometry.MinimumRotatedRectangle(geometry.LargestRing(corridor))
	if len(rect) < 3 {
		return
	}
	l.Boundary = coords.FromPoints(rect)
}

func (l *Line) parentID() string {
	if l.parent == nil {
		return ""
	}
	return l.parent.ID
}

package layout

import (
	"sort"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/geometry"
)

// ReadingOrderMode selects how region-level reading order is resolved.
type ReadingOrderMode string

const (
	// OrderAuto prefers the explicit reading-order group, falling back to
	// document order.
	OrderAuto ReadingOrderMode = "auto"
	// OrderDocument forces raw document order of region elements.
	OrderDocument ReadingOrderMode = "document"
	// OrderGroup reads only the explicit ordered group.
	OrderGroup ReadingOrderMode = "reading-order"
)

// ReadingOrderIDs returns region ids in reading order for the given mode.
func (d *Document) ReadingOrderIDs(mode ReadingOrderMode) []string {
	switch mode {
	case OrderGroup:
		return append([]string(nil), d.ReadingOrder...)
	case OrderDocument:
		return d.DocumentOrder()
	default:
		if len(d.ReadingOrder) > 0 {
			return append([]string(nil), d.ReadingOrder...)
		}
		return d.DocumentOrder()
	}
}

// sortEntry carries one line through the ordering passes. The
// representative is either the boundary's minimum rotated rectangle or the
// baseline polyline depending on the sort variant.
type sortEntry struct {
	idx      int
	ring     []geom.Point // polygon representative, nil for baseline sort
	line     []geom.Point // baseline representative, nil for polygon sort
	centroid geom.Point
}

// SortLines orders the region's lines top to bottom by the vertical
// centroid of each line's minimum rotated rectangle, followed by a
// pairwise same-height correction pass. The pairwise pass is a bubble
// style local correction: later swaps may undo earlier ones within the
// same pass, so the outcome depends on the comparison order, which is kept
// fixed for compatibility.
func (tr *TextRegion) SortLines() {
	entries := make([]sortEntry, 0, len(tr.Lines))
	for idx, line := range tr.Lines {
		ring := polygonRepresentative(line)
		entries = append(entries, sortEntry{idx: idx, ring: ring, centroid: geometry.RingCentroid(ring)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].centroid.Y < entries[j].centroid.Y
	})

	for i := 0; i < len(entries)-1; i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if !ringsNearSameHeight(a, b) {
				continue
			}
			tr.logger().Info("lines at same height",
				"region", tr.ID,
				"first", tr.Lines[a.idx].ID,
				"second", tr.Lines[b.idx].ID)
			if shouldSwap(ringBoundsOf(a), ringBoundsOf(b)) {
				tr.logger().Info("lines swapped",
					"region", tr.ID,
					"first", tr.Lines[a.idx].ID,
					"second", tr.Lines[b.idx].ID)
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	tr.applyOrder(entries)
}

// SortLinesByBaseline is the baseline variant of SortLines: lines are
// represented by their baseline polyline, falling back to a computed
// baseline when absent, and same-height detection uses the buffered
// distance between the centroid-aligned baselines.
func (tr *TextRegion) SortLinesByBaseline() {
	entries := make([]sortEntry, 0, len(tr.Lines))
	for idx, line := range tr.Lines {
		bl, ok := line.Baseline()
		if !ok || len(bl) == 0 {
			bl = line.ComputeBaseline()
		}
		if len(bl) == 0 {
			continue
		}
		pts := bl.Points()
		entries = append(entries, sortEntry{idx: idx, line: pts, centroid: geometry.LineCentroid(pts)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].centroid.Y < entries[j].centroid.Y
	})

	for i := 0; i < len(entries)-1; i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if !baselinesNearSameHeight(a, b) {
				continue
			}
			tr.logger().Info("lines at same height",
				"region", tr.ID,
				"first", tr.Lines[a.idx].ID,
				"second", tr.Lines[b.idx].ID)
			if shouldSwap(lineBoundsOf(a), lineBoundsOf(b)) {
				tr.logger().Info("lines swapped",
					"region", tr.ID,
					"first", tr.Lines[a.idx].ID,
					"second", tr.Lines[b.idx].ID)
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	tr.applyOrder(entries)
}

// applyOrder rewrites the line sequence when the pass changed it. Lines
// without an entry (degenerate representatives in the baseline variant)
// keep their relative position at the end.
func (tr *TextRegion) applyOrder(entries []sortEntry) {
	order := make([]int, 0, len(tr.Lines))
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		order = append(order, e.idx)
		seen[e.idx] = true
	}
	for idx := range tr.Lines {
		if !seen[idx] {
			order = append(order, idx)
		}
	}
	changed := false
	for i, idx := range order {
		if i != idx {
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	reordered := make([]*Line, 0, len(tr.Lines))
	for _, idx := range order {
		reordered = append(reordered, tr.Lines[idx])
	}
	tr.Lines = reordered
}

// polygonRepresentative returns the line's minimum rotated rectangle, or
// the raw boundary points when the boundary is too degenerate for one.
func polygonRepresentative(line *Line) []geom.Point {
	pts := line.Boundary.Canonical().Points()
	rect := geometry.MinimumRotatedRectangle(pts)
	if len(rect) >= 3 {
		return rect
	}
	return pts
}

// ringsNearSameHeight aligns the second rectangle's centroid onto the
// first's x position and tests whether the shapes then overlap with one
// centroid contained in the other.
func ringsNearSameHeight(a, b sortEntry) bool {
	if len(a.ring) < 3 || len(b.ring) < 3 {
		return false
	}
	dx := a.centroid.X - b.centroid.X
	moved := geometry.TranslatePoints(b.ring, dx, 0)
	pa := geom.Polygon{closeRing(a.ring)}
	pb := geom.Polygon{closeRing(moved)}
	if pa.Intersection(pb).Area() <= areaEps {
		return false
	}
	movedCentroid := geom.Point{X: b.centroid.X + dx, Y: b.centroid.Y}
	return geometry.PointCovered(a.centroid, pb) || geometry.PointCovered(movedCentroid, pa)
}

// baselinesNearSameHeight aligns the second baseline's centroid onto the
// first's x position and tests whether the 5px-buffered baselines
// intersect, i.e. whether the polylines come within 10px of each other.
func baselinesNearSameHeight(a, b sortEntry) bool {
	const tolerance = 5.0
	dx := a.centroid.X - b.centroid.X
	moved := geometry.TranslatePoints(b.line, dx, 0)
	return lineToLineDistance(a.line, moved) <= 2*tolerance
}

// lineToLineDistance returns the minimum distance between two polylines.
// Crossing polylines have distance zero even when no vertex of one lies
// near the other, so segment pairs are checked for intersection before the
// vertex-to-segment minimum.
func lineToLineDistance(a, b []geom.Point) float64 {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if _, ok := geometry.SegmentIntersection(a[i], a[i+1], b[j], b[j+1]); ok {
				return 0
			}
		}
	}
	best := geometry.Dist(a[0], geometry.NearestPointOnLine(a[0], b))
	for _, p := range a {
		if d := geometry.Dist(p, geometry.NearestPointOnLine(p, b)); d < best {
			best = d
		}
	}
	for _, p := range b {
		if d := geometry.Dist(p, geometry.NearestPointOnLine(p, a)); d < best {
			best = d
		}
	}
	return best
}

// shouldSwap reports whether the second shape's left bound precedes the
// first shape's right bound.
func shouldSwap(aBounds, bBounds [4]float64) bool {
	return bBounds[0] < aBounds[2]
}

func ringBoundsOf(e sortEntry) [4]float64 {
	minX, minY, maxX, maxY := geometry.LineBounds(e.ring)
	return [4]float64{minX, minY, maxX, maxY}
}

func lineBoundsOf(e sortEntry) [4]float64 {
	minX, minY, maxX, maxY := geometry.LineBounds(e.line)
	return [4]float64{minX, minY, maxX, maxY}
}

func closeRing(pts []geom.Point) []geom.Point {
	if len(pts) == 0 {
		return pts
	}
	if pts[0] == pts[len(pts)-1] {
		return pts
	}
	return append(append([]geom.Point(nil), pts...), pts[0])
}

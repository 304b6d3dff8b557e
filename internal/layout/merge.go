package layout

import (
	"sort"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/geometry"
)

// MergeSplitLines scans the region's lines in their current order and
// fuses consecutive lines whose adjoining baseline endpoints are within
// the given horizontal and vertical gaps. The merged line keeps the later
// line's place: its boundary becomes the union of both polygons and a
// bridge region, its baseline the concatenation of both baselines, its
// text the two texts joined by a single space; the earlier line is
// deleted. A pair whose merge degenerates is skipped with a logged warning
// and scanning continues.
func (tr *TextRegion) MergeSplitLines(maxXGap, maxYGap int) {
	baselines := make([]coords.Sequence, len(tr.Lines))
	for i, l := range tr.Lines {
		if bl, ok := l.Baseline(); ok {
			baselines[i] = bl
		}
	}

	i := 1
	for i < len(tr.Lines) {
		prev, cur := baselines[i-1], baselines[i]
		if !canMergeBaselines(prev, cur, maxXGap, maxYGap) {
			i++
			continue
		}
		boundary, baseline, err := tr.mergeLinePair(i, prev, cur)
		if err != nil {
			tr.logger().Warn("conflict while merging lines",
				"region", tr.ID,
				"first", tr.Lines[i-1].ID,
				"second", tr.Lines[i].ID,
				"reason", err.Error())
			i++
			continue
		}
		line := tr.Lines[i]
		prevText, _ := tr.Lines[i-1].Text()
		curText, _ := line.Text()
		line.Boundary = boundary
		line.SetBaseline(baseline)
		line.SetText(prevText+" "+curText, 0)
		tr.DeleteLines([]int{i - 1})
		baselines[i] = baseline
		baselines = append(baselines[:i-1], baselines[i:]...)
	}
}

// canMergeBaselines reports whether the gap between the first baseline's
// last point and the second baseline's first point is within both
// thresholds. Lines without a baseline never merge.
func canMergeBaselines(prev, cur coords.Sequence, maxXGap, maxYGap int) bool {
	if len(prev) == 0 || len(cur) == 0 {
		return false
	}
	last := prev[len(prev)-1]
	first := cur[0]
	return abs(last.X-first.X) <= maxXGap && abs(last.Y-first.Y) <= maxYGap
}

// mergeLinePair builds the merged boundary and baseline for the lines at
// index-1 and index.
func (tr *TextRegion) mergeLinePair(index int, prevBL, curBL coords.Sequence) (coords.Sequence, coords.Sequence, error) {
	prevLine := tr.Lines[index-1]
	curLine := tr.Lines[index]

	width, err := medianRectEdge(prevLine, curLine)
	if err != nil {
		return nil, nil, err
	}

	bridge, err := bridgeRegion(prevBL, prevLine.Boundary, curBL, curLine.Boundary, width)
	if err != nil {
		return nil, nil, err
	}

	prevPoly, err := prevLine.Boundary.Polygon()
	if err != nil {
		return nil, nil, geomErr("merge", prevLine.ID, ErrTopologicalFailure)
	}
	curPoly, err := curLine.Boundary.Polygon()
	if err != nil {
		return nil, nil, geomErr("merge", curLine.ID, ErrTopologicalFailure)
	}

	union := prevPoly.Union(bridge).Union(curPoly)
	if geometry.RingCount(union) != 1 {
		return nil, nil, geomErr("merge", curLine.ID, ErrDegenerateOperation)
	}
	boundary := coords.FromPolygon(union)
	if len(boundary) < 3 {
		return nil, nil, geomErr("merge", curLine.ID, ErrDegenerateOperation)
	}

	baseline := append(prevBL.Clone(), curBL...)
	return boundary, baseline, nil
}

// medianRectEdge returns the median edge length over both lines' minimum
// rotated rectangles.
func medianRectEdge(lines ...*Line) (float64, error) {
	var widths []float64
	for _, l := range lines {
		pts := l.Boundary.Canonical()
		if len(pts) < 3 {
			return 0, geomErr("merge", l.ID, ErrInsufficientPoints)
		}
		rect := geometry.MinimumRotatedRectangle(pts.Points())
		if len(rect) < 3 {
			return 0, geomErr("merge", l.ID, ErrDegenerateOperation)
		}
		for _, e := range geometry.Edges(rect) {
			widths = append(widths, geometry.Dist(e[0], e[1]))
		}
	}
	return median(widths), nil
}

// bridgeRegion synthesizes the polygon connecting the two line boundaries:
// the convex hull of each boundary's points within 0.75 of the median
// width of the adjoining baseline endpoint. A relaxed concave hull with
// ratio 1.0 degenerates to the convex hull, which is what is built.
func bridgeRegion(prevBL coords.Sequence, prevBoundary coords.Sequence, curBL coords.Sequence, curBoundary coords.Sequence, medianWidth float64) (geom.Polygon, error) {
	reach := int(medianWidth * 0.75)
	prevAnchor := prevBL[len(prevBL)-1]
	curAnchor := curBL[0]

	var pts []geom.Point
	for _, p := range prevBoundary {
		if p.X > prevAnchor.X-reach {
			pts = append(pts, geom.Point{X: float64(p.X), Y: float64(p.Y)})
		}
	}
	for _, p := range curBoundary {
		if p.X < curAnchor.X+reach {
			pts = append(pts, geom.Point{X: float64(p.X), Y: float64(p.Y)})
		}
	}

	hull := geometry.ConvexHull(pts)
	if len(hull) < 3 {
		return nil, geomErr("merge", "", ErrDegenerateOperation)
	}
	return geom.Polygon{append(hull, hull[0])}, nil
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

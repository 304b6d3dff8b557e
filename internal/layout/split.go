package layout

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/coords"
	"github.com/pagemend/pagemend/internal/geometry"
)

// SplitConfig tunes SplitByLineCoords.
type SplitConfig struct {
	// Columns is the number of buckets lines are partitioned into.
	Columns int
	// CenterGroups is the number of clusters the sorted line-centroid x
	// positions are split into.
	CenterGroups int
	// CenterIndices selects which cluster means are compared and averaged
	// into the dividing position.
	CenterIndices []int
	// Padding grows each resulting region boundary outward.
	Padding float64
	// MinMeanGroupDistance rejects the split when the selected cluster
	// means are closer than this.
	MinMeanGroupDistance int
	// SubtractSmallFromBig carves the smaller region out of the larger one
	// when exactly two regions result.
	SubtractSmallFromBig bool
}

// DefaultSplitConfig mirrors the conventional two-column split: three
// centroid clusters, dividing position from the outer two.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		Columns:              2,
		CenterGroups:         3,
		CenterIndices:        []int{0, 2},
		Padding:              12,
		MinMeanGroupDistance: 500,
		SubtractSmallFromBig: true,
	}
}

// SplitRegion is one partition produced by SplitByLineCoords: the lines
// assigned to it and the boundary synthesized around them.
type SplitRegion struct {
	Lines    []*Line
	Boundary coords.Sequence
}

// SplitByLineCoords partitions the region's lines into column groups by
// clustering line-centroid x positions. It returns nil when there are too
// few lines or the selected cluster means are not separated by at least
// the configured distance.
func (tr *TextRegion) SplitByLineCoords(cfg SplitConfig) []SplitRegion {
	if cfg.Columns < 2 || cfg.CenterGroups < 1 {
		return nil
	}
	centers := make([]int, 0, len(tr.Lines))
	for _, l := range tr.Lines {
		centers = append(centers, lineCenterX(l))
	}
	if len(centers) < cfg.CenterGroups {
		return nil
	}

	sorted := append([]int(nil), centers...)
	sort.Ints(sorted)
	groups := splitEven(sorted, cfg.CenterGroups)

	var means []float64
	for _, idx := range cfg.CenterIndices {
		if idx < 0 || idx >= len(groups) || len(groups[idx]) == 0 {
			return nil
		}
		means = append(means, meanInts(groups[idx]))
	}
	if len(means) == 0 {
		return nil
	}
	if len(means) > 1 && means[1]-means[0] < float64(cfg.MinMeanGroupDistance) {
		return nil
	}
	divide := int(meanFloats(means))

	buckets := make([]SplitRegion, cfg.Columns)
	bucketPts := make([][]geom.Point, cfg.Columns)
	for i, l := range tr.Lines {
		b := 0
		if centers[i] < divide {
			b = 1
		}
		if b >= cfg.Columns {
			b = cfg.Columns - 1
		}
		buckets[b].Lines = append(buckets[b].Lines, l)
		bucketPts[b] = append(bucketPts[b], l.Boundary.Canonical().Points()...)
	}

	var result []SplitRegion
	for b := range buckets {
		if len(buckets[b].Lines) == 0 {
			continue
		}
		hull := geometry.ConvexHull(bucketPts[b])
		if len(hull) < 3 {
			tr.logger().Warn("column split produced a degenerate region", "region", tr.ID)
			continue
		}
		padded := geometry.OffsetRing(hull, cfg.Padding)
		buckets[b].Boundary = coords.FromPoints(padded)
		result = append(result, buckets[b])
	}

	if cfg.SubtractSmallFromBig && len(result) == 2 {
		subtractOverlap(result, tr.logger())
	}
	return result
}

// subtractOverlap removes the smaller region's area from the larger one,
// falling back to the larger region's convex hull when the difference
// degenerates to a non-areal result.
func subtractOverlap(regions []SplitRegion, log *slog.Logger) {
	big, small := 0, 1
	if rectArea(regions[0].Boundary) < rectArea(regions[1].Boundary) {
		big, small = 1, 0
	}
	bigPoly, err := regions[big].Boundary.Polygon()
	if err != nil {
		return
	}
	smallPoly, err := regions[small].Boundary.Polygon()
	if err != nil {
		return
	}
	diff := bigPoly.Difference(smallPoly)
	if diff.Area() > areaEps {
		if seq := coords.FromPolygon(diff); len(seq) >= 3 {
			regions[big].Boundary = seq
			return
		}
	}
	log.Warn("column subtraction degenerated, keeping convex hull")
	hull := geometry.ConvexHull(regions[big].Boundary.Points())
	if len(hull) >= 3 {
		regions[big].Boundary = coords.FromPoints(hull)
	}
}

// ReplaceTextRegion swaps a region for the given split parts in place.
// Part ids derive from the original id; document order and the reading
// order list keep the original position.
func (d *Document) ReplaceTextRegion(tr *TextRegion, parts []SplitRegion) {
	if len(parts) == 0 {
		return
	}
	replacements := make([]*TextRegion, 0, len(parts))
	for i, p := range parts {
		nr := &TextRegion{Lines: p.Lines}
		nr.ID = fmt.Sprintf("%s_%d", tr.ID, i+1)
		nr.Custom = tr.Custom
		nr.Boundary = p.Boundary
		nr.log = d.log
		for _, l := range nr.Lines {
			l.SetParent(&nr.Region)
		}
		replacements = append(replacements, nr)
	}

	replaceIDs := func(ids []string) []string {
		out := make([]string, 0, len(ids)+len(replacements)-1)
		for _, id := range ids {
			if id != tr.ID {
				out = append(out, id)
				continue
			}
			for _, nr := range replacements {
				out = append(out, nr.ID)
			}
		}
		return out
	}
	d.docOrder = replaceIDs(d.docOrder)
	if len(d.ReadingOrder) > 0 {
		d.ReadingOrder = replaceIDs(d.ReadingOrder)
	}

	regions := make([]*TextRegion, 0, len(d.TextRegions)+len(replacements)-1)
	for _, existing := range d.TextRegions {
		if existing != tr {
			regions = append(regions, existing)
			continue
		}
		regions = append(regions, replacements...)
	}
	d.TextRegions = regions
}

// rectArea is the area of the boundary's minimum rotated rectangle, used
// to rank the two split regions by extent.
func rectArea(seq coords.Sequence) float64 {
	rect, err := seq.MinRotatedRect()
	if err != nil {
		return 0
	}
	return rect.Area()
}

// lineCenterX returns the integer x position of the line's polygon
// centroid, falling back to the bounding-box center for degenerate
// boundaries.
func lineCenterX(l *Line) int {
	if poly, err := l.Boundary.Polygon(); err == nil && poly.Area() > areaEps {
		return int(poly.Centroid().X)
	}
	minX, _, maxX, _ := l.Boundary.Bounds()
	return (minX + maxX) / 2
}

// splitEven splits a sorted slice into n near-equal groups, earlier groups
// taking the extra element.
func splitEven(values []int, n int) [][]int {
	groups := make([][]int, 0, n)
	size := len(values) / n
	rem := len(values) % n
	start := 0
	for i := 0; i < n; i++ {
		l := size
		if i < rem {
			l++
		}
		groups = append(groups, values[start:start+l])
		start += l
	}
	return groups
}

func meanInts(v []int) float64 {
	sum := 0
	for _, x := range v {
		sum += x
	}
	return float64(sum) / float64(len(v))
}

func meanFloats(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

package batch

import (
	"github.com/pagemend/pagemend/internal/config"
	"github.com/pagemend/pagemend/internal/layout"
)

// ValidateOperation checks every line's text, shape, and baseline and logs
// findings without mutating the document.
func ValidateOperation() Operation {
	return func(doc *layout.Document) error {
		log := doc.Logger()
		for _, tr := range doc.AllTextRegions() {
			for _, l := range tr.Lines {
				l.ValidateText()
				l.ValidateRegion()
				l.ValidateBaseline(false)
			}
			if tr.Count(layout.CountTextLines) == 0 {
				log.Info("region contains no text", "id", tr.ID)
			}
		}
		return nil
	}
}

// RepairOperation fixes line shapes: repeated points are removed, invalid
// shapes are replaced by their convex hull, and baselines are validated and
// optionally repaired.
func RepairOperation(rc config.RepairConfig) Operation {
	return func(doc *layout.Document) error {
		log := doc.Logger()
		for _, tr := range doc.AllTextRegions() {
			for _, l := range tr.Lines {
				l.RemoveRepeatedPoints(rc.DedupTolerance)
				if !l.ValidateRegion() {
					l.ConvexHull()
				}
				if rc.SimplifyTolerance > 0 {
					l.Simplify(rc.SimplifyTolerance)
				}
				if rc.FitIntoParent {
					l.FitIntoParent(nil)
				}
				l.ValidateBaseline(rc.UpdateBaseline)
			}
			if tr.Count(layout.CountTextLines) == 0 {
				log.Info("region contains no text", "id", tr.ID)
			}
		}
		return nil
	}
}

// ExtendOperation grows each line shape into a padded rectangle, clips it to
// its parent region, resolves overlap with the preceding line, and extends
// the baseline to the new bounds.
func ExtendOperation(ec config.ExtendConfig) Operation {
	return func(doc *layout.Document) error {
		for _, tr := range doc.TextRegions {
			for idx, l := range tr.Lines {
				l.Buffer(ec.Distance, layout.DirectionHorizontal, false, true)
				l.FitIntoParent(nil)
				if ec.CutOverlaps && idx > 0 {
					prev := tr.Lines[idx-1]
					prevSeq, curSeq := layout.SplitOverlappingRings(prev.Boundary, l.Boundary, doc.Logger())
					prev.Boundary = prevSeq
					l.Boundary = curSeq
				}
				l.ExtendBaseline(ec.CreateMissing)
			}
		}
		return nil
	}
}

// SortMergeOperation sorts the lines of each region into reading order and
// merges wrongly split neighbours within the configured gaps.
func SortMergeOperation(mc config.MergeConfig) Operation {
	return func(doc *layout.Document) error {
		for _, tr := range doc.TextRegions {
			tr.SortLines()
			tr.MergeSplitLines(mc.MaxXGap, mc.MaxYGap)
		}
		return nil
	}
}

// SplitOperation splits multi-column regions along the detected column
// divide and replaces each split region with its parts.
func SplitOperation(sc config.SplitConfig) Operation {
	cfg := layout.DefaultSplitConfig()
	cfg.Columns = sc.Columns
	cfg.Padding = sc.Padding
	cfg.MinMeanGroupDistance = sc.MinMeanGroupDistance
	cfg.SubtractSmallFromBig = sc.SubtractSmallFromBig

	return func(doc *layout.Document) error {
		for _, tr := range doc.TextRegions {
			parts := tr.SplitByLineCoords(cfg)
			if len(parts) == 0 {
				continue
			}
			doc.ReplaceTextRegion(tr, parts)
		}
		return nil
	}
}

// PseudoPolygonOperation sorts each region's lines and rebuilds every line
// polygon from its baseline: the buffered pseudo polygon replaces the
// boundary, the baseline shifts down by the configured offset, the shape is
// clipped to its parent region, and the baseline is extended to the new
// bounds. Lines without a baseline keep their boundary.
func PseudoPolygonOperation(pc config.PseudoConfig) Operation {
	return func(doc *layout.Document) error {
		for _, tr := range doc.TextRegions {
			tr.SortLines()
			for _, l := range tr.Lines {
				l.PseudoPolygonFromBaseline(pc.Width)
				if bl, ok := l.Baseline(); ok {
					l.SetBaseline(bl.Translate(0, pc.BaselineShift))
				}
				l.FitIntoParent(nil)
				l.ExtendBaseline(false)
			}
		}
		return nil
	}
}

// DeleteLinesOperation strips every text line element from all regions,
// table cells included.
func DeleteLinesOperation() Operation {
	return func(doc *layout.Document) error {
		for _, tr := range doc.AllTextRegions() {
			indices := make([]int, len(tr.Lines))
			for i := range indices {
				indices[i] = i
			}
			tr.DeleteLines(indices)
		}
		return nil
	}
}

// DeleteTextOperation removes text content at the given level.
func DeleteTextOperation(level layout.TextLevel) Operation {
	return func(doc *layout.Document) error {
		doc.DeleteTextLevel(level)
		return nil
	}
}

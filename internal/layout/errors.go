package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for the geometry failure taxonomy. Every geometric
// operation converts library- and shape-level failures into one of these;
// they are contained at the single shape being processed and never abort
// sibling shapes.
var (
	// ErrInsufficientPoints marks a boundary with fewer than 3 distinct
	// points or a baseline with fewer than 2.
	ErrInsufficientPoints = errors.New("insufficient coordinate points")

	// ErrInvalidGeometry marks a self-intersecting or otherwise non-simple
	// ring.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrOutsideParent marks a boundary disjoint from its container's
	// boundary.
	ErrOutsideParent = errors.New("boundary outside parent")

	// ErrDegenerateOperation marks a geometric primitive that produced an
	// empty or multi-part result where a single part was required.
	ErrDegenerateOperation = errors.New("degenerate geometric result")

	// ErrTopologicalFailure marks a geometry-library-level failure caught at
	// the shape boundary.
	ErrTopologicalFailure = errors.New("topological failure")

	// ErrNoRegions marks a structurally unusable document.
	ErrNoRegions = errors.New("document contains no regions")
)

// GeometryError wraps a taxonomy sentinel with the failing operation and
// the owning element id.
type GeometryError struct {
	Op  string
	ID  string
	Err error
}

func (e *GeometryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GeometryError) Unwrap() error {
	return e.Err
}

func geomErr(op, id string, err error) *GeometryError {
	return &GeometryError{Op: op, ID: id, Err: err}
}

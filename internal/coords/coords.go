// Package coords implements the coordinate model shared by all layout
// operations: parsing and serializing PAGE-style point sequences and
// deriving geometric views (polyline, ring, polygon, minimum rotated
// rectangle, convex polygon, multipoint) from them.
package coords

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/pagemend/pagemend/internal/geometry"
)

// ErrInsufficientPoints is returned when a ring or polygon view is requested
// from a sequence with fewer than three points.
var ErrInsufficientPoints = errors.New("insufficient coordinate points")

// Point is a single integer page coordinate.
type Point struct {
	X int
	Y int
}

// Sequence is an ordered list of integer points. A boundary sequence is
// stored open: the duplicate closing point is never part of the stored
// representation, ring closure is a derived view.
type Sequence []Point

// Parse converts a whitespace-separated "x,y x,y ..." string into a
// Sequence. Fractional values are truncated toward zero.
func Parse(s string) (Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		x, y, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("malformed coordinate token %q", f)
		}
		px, err := parseCoord(x)
		if err != nil {
			return nil, fmt.Errorf("malformed coordinate token %q: %w", f, err)
		}
		py, err := parseCoord(y)
		if err != nil {
			return nil, fmt.Errorf("malformed coordinate token %q: %w", f, err)
		}
		seq = append(seq, Point{X: px, Y: py})
	}
	return seq, nil
}

func parseCoord(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// String serializes the sequence to its canonical form: integers, comma
// between x and y, single space between points, adjacent duplicates
// collapsed and the closing duplicate point omitted.
func (s Sequence) String() string {
	c := s.Canonical()
	var b strings.Builder
	for i, p := range c {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(p.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.Y))
	}
	return b.String()
}

// Canonical returns a copy with adjacent duplicate points collapsed and a
// duplicated closing point removed.
func (s Sequence) Canonical() Sequence {
	if len(s) == 0 {
		return nil
	}
	out := make(Sequence, 0, len(s))
	out = append(out, s[0])
	for _, p := range s[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// DedupAdjacent returns a copy with adjacent duplicate points collapsed.
// Unlike Canonical it keeps a duplicated closing point, making it safe for
// open polylines such as baselines.
func (s Sequence) DedupAdjacent() Sequence {
	if len(s) == 0 {
		return nil
	}
	out := make(Sequence, 0, len(s))
	out = append(out, s[0])
	for _, p := range s[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Translate returns the sequence shifted by (dx, dy).
func (s Sequence) Translate(dx, dy int) Sequence {
	out := make(Sequence, len(s))
	for i, p := range s {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// Points converts the sequence to float geometry points.
func (s Sequence) Points() []geom.Point {
	pts := make([]geom.Point, len(s))
	for i, p := range s {
		pts[i] = geom.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return pts
}

// MultiPoint returns the sequence as an unordered point set.
func (s Sequence) MultiPoint() geom.MultiPoint {
	return geom.MultiPoint(s.Points())
}

// LineString returns the sequence as an open polyline.
func (s Sequence) LineString() geom.LineString {
	return geom.LineString(s.Points())
}

// Ring returns the closed ring view of the sequence, auto-closing it when
// the first and last points differ. Fails for fewer than 3 distinct points.
func (s Sequence) Ring() ([]geom.Point, error) {
	c := s.Canonical()
	if len(c) < 3 {
		return nil, ErrInsufficientPoints
	}
	pts := c.Points()
	return append(pts, pts[0]), nil
}

// Polygon returns the sequence as a single-ring polygon.
func (s Sequence) Polygon() (geom.Polygon, error) {
	ring, err := s.Ring()
	if err != nil {
		return nil, err
	}
	return geom.Polygon{ring}, nil
}

// MinRotatedRect returns the minimum rotated rectangle enclosing the
// sequence as a 4-corner polygon.
func (s Sequence) MinRotatedRect() (geom.Polygon, error) {
	c := s.Canonical()
	if len(c) < 3 {
		return nil, ErrInsufficientPoints
	}
	rect := geometry.MinimumRotatedRectangle(c.Points())
	if len(rect) < 3 {
		return nil, ErrInsufficientPoints
	}
	return geom.Polygon{append(rect, rect[0])}, nil
}

// ConvexPolygon returns the convex hull of the sequence as a polygon.
func (s Sequence) ConvexPolygon() (geom.Polygon, error) {
	c := s.Canonical()
	if len(c) < 3 {
		return nil, ErrInsufficientPoints
	}
	hull := geometry.ConvexHull(c.Points())
	if len(hull) < 3 {
		return nil, ErrInsufficientPoints
	}
	return geom.Polygon{append(hull, hull[0])}, nil
}

// Bounds returns the axis-aligned bounding box of the sequence.
func (s Sequence) Bounds() (minX, minY, maxX, maxY int) {
	if len(s) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = s[0].X, s[0].Y
	maxX, maxY = s[0].X, s[0].Y
	for _, p := range s[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}

// FromPoints converts float geometry points back to an integer sequence,
// truncating toward zero and collapsing duplicates introduced by the
// truncation.
func FromPoints(pts []geom.Point) Sequence {
	seq := make(Sequence, 0, len(pts))
	for _, p := range pts {
		seq = append(seq, Point{X: int(p.X), Y: int(p.Y)})
	}
	return seq.Canonical()
}

// FromPolygon converts the largest ring of a polygonal result back to an
// integer sequence.
func FromPolygon(p geom.Polygonal) Sequence {
	ring := geometry.LargestRing(p)
	return FromPoints(ring)
}

// FromLineString converts an open polyline back to an integer sequence.
func FromLineString(ls geom.LineString) Sequence {
	return FromPoints([]geom.Point(ls))
}

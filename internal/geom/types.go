package geom

import (
	"math"
	"strconv"
)

// Point is a location on the canvas. Y grows downward.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return "[" + strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64) + "]"
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func (p Point) finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Segment is a line segment. Src == Dst and axis-parallel segments are valid.
type Segment struct {
	Src Point
	Dst Point
}

func (s Segment) Length() float64 {
	return s.Src.Dist(s.Dst)
}

func (s Segment) finite() bool {
	return s.Src.finite() && s.Dst.finite()
}

// Bound is an axis-aligned box. LT is the minimum corner and RB the maximum
// corner: LT.X <= RB.X and LT.Y <= RB.Y.
type Bound struct {
	LT Point
	RB Point
}

func (b Bound) finite() bool {
	return b.LT.finite() && b.RB.finite()
}

// Axis selects the coordinate a cut or comparison applies to.
type Axis int

const (
	// Horizontal cuts along x.
	Horizontal Axis = iota
	// Vertical cuts along y.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
}

// Coord returns the coordinate of p selected by a.
func (a Axis) Coord(p Point) float64 {
	if a == Vertical {
		return p.Y
	}
	return p.X
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// point builds a Point from an (axis, off-axis) coordinate pair.
func (a Axis) point(on, off float64) Point {
	if a == Vertical {
		return Point{X: off, Y: on}
	}
	return Point{X: on, Y: off}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

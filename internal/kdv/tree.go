// Package kdv is a kd-tree over the bounding volumes of arbitrary shapes.
// Shapes that straddle a cut are split into fragments by an injected Oracle,
// so every fragment lives in exactly one node.
package kdv

import (
	"iter"

	"segkd/internal/geom"
)

// MaxDepth caps the depth of a tree regardless of what the oracle allows.
const MaxDepth = 48

const (
	ErrTypeSplit  = "kdv-split"
	ErrTypeNoAxes = "kdv-no-axes"
)

// Oracle supplies the geometry of a shape kind to the tree. Implementations
// are shared between build goroutines and must not keep state across calls.
type Oracle[S any] interface {
	// BoundingVolume returns the axis-aligned box of a shape.
	BoundingVolume(shape S) geom.Bound

	// CutPoint picks a cut on axis from representative points of a node.
	CutPoint(axis geom.Axis, points iter.Seq[geom.Point]) (geom.Cut, bool)

	// Split divides a fragment of shape at cut. Not ok means the fragment
	// cannot be split on that axis.
	Split(shape S, fragment geom.Bound, axis geom.Axis, cut geom.Point) (geom.Halves, bool, error)

	// PointDistance is a lower bound, along axis, from a box to a cut.
	PointDistance(axis geom.Axis, b geom.Bound, cut geom.Point) float64

	// BoundDistance is the distance between two boxes.
	BoundDistance(a, b geom.Bound) float64
}

// Fragment is a region of one shape's bounding volume.
type Fragment struct {
	ShapeID int
	Bound   geom.Bound
}

// Intersection is a pair of overlapping fragments reported by Intersects.
type Intersection struct {
	ShapeID        int
	ShapeFragment  geom.Bound
	NeedleFragment geom.Bound
}

// Neighbour is a fragment reported by Nearest.
type Neighbour struct {
	Distance      float64
	ShapeID       int
	ShapeFragment geom.Bound
}

// CutLine is the cut of an inner node.
type CutLine struct {
	Axis  geom.Axis
	Depth int
	Cut   geom.Cut
}

// Segment returns the cut as a drawable segment.
func (c CutLine) Segment() geom.Segment {
	return c.Cut.Line(c.Axis)
}

// Stats describes the shape of a built tree.
type Stats struct {
	Shapes    int
	Nodes     int
	Leaves    int
	Fragments int
	Depth     int
}

type node struct {
	axis  geom.Axis
	depth int
	leaf  bool
	cut   geom.Cut

	// Leaves hold all their fragments. Inner nodes hold the fragments that
	// could not be split at their cut.
	frags []Fragment

	left  *node
	right *node
}

// Tree is an immutable kd-tree. Queries are safe for concurrent use.
type Tree[S any] struct {
	shapes []S
	oracle Oracle[S]
	axes   []geom.Axis
	root   *node
	stats  Stats
}

// Len returns the number of shapes in the tree.
func (t *Tree[S]) Len() int {
	return len(t.shapes)
}

// Shape returns the shape with the given id.
func (t *Tree[S]) Shape(id int) S {
	return t.shapes[id]
}

func (t *Tree[S]) Stats() Stats {
	return t.stats
}

// Cuts returns the cuts of every inner node, parents before children.
func (t *Tree[S]) Cuts() iter.Seq[CutLine] {
	return func(yield func(CutLine) bool) {
		walk(t.root, func(n *node) bool {
			if n.leaf {
				return true
			}
			return yield(CutLine{Axis: n.axis, Depth: n.depth, Cut: n.cut})
		})
	}
}

// Fragments returns every fragment stored in the tree.
func (t *Tree[S]) Fragments() iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		walk(t.root, func(n *node) bool {
			for _, f := range n.frags {
				if !yield(f) {
					return false
				}
			}
			return true
		})
	}
}

// walk visits n and its descendants in pre-order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	return walk(n.left, visit) && walk(n.right, visit)
}

func computeStats(root *node, shapes int) Stats {
	s := Stats{Shapes: shapes}
	walk(root, func(n *node) bool {
		s.Nodes++
		s.Fragments += len(n.frags)
		s.Depth = max(s.Depth, n.depth)
		if n.leaf {
			s.Leaves++
		}
		return true
	})
	return s
}

package kdv

import (
	"iter"

	"segkd/internal/geom"
)

// Intersects returns the pairs of tree and needle fragments that overlap.
// The needle is split at every cut it crosses, the same way indexed shapes
// are. A shape may be reported once per overlapping fragment pair.
func (t *Tree[S]) Intersects(needle S) iter.Seq[Intersection] {
	return func(yield func(Intersection) bool) {
		if t.root == nil {
			return
		}
		t.intersects(t.root, needle, t.oracle.BoundingVolume(needle), yield)
	}
}

func (t *Tree[S]) intersects(n *node, needle S, frag geom.Bound, yield func(Intersection) bool) bool {
	for _, f := range n.frags {
		if !f.Bound.Intersects(frag) {
			continue
		}
		intersectsResults.Inc()
		if !yield(Intersection{
			ShapeID:        f.ShapeID,
			ShapeFragment:  f.Bound,
			NeedleFragment: frag,
		}) {
			return false
		}
	}
	if n.leaf {
		return true
	}

	halves, ok, err := t.oracle.Split(needle, frag, n.axis, n.cut.Coord)
	if err == nil && ok {
		if n.left != nil && !t.intersects(n.left, needle, halves.Left, yield) {
			return false
		}
		if n.right != nil && !t.intersects(n.right, needle, halves.Right, yield) {
			return false
		}
		return true
	}

	// The needle fragment stays whole and visits every side it touches.
	at := n.axis.Coord(n.cut.Coord)
	if n.left != nil && n.axis.Coord(frag.LT) <= at {
		if !t.intersects(n.left, needle, frag, yield) {
			return false
		}
	}
	if n.right != nil && n.axis.Coord(frag.RB) >= at {
		if !t.intersects(n.right, needle, frag, yield) {
			return false
		}
	}
	return true
}

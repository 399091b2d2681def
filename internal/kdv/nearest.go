package kdv

import (
	"container/heap"
	"iter"
)

// Nearest returns every fragment in the tree ordered by ascending distance
// to the needle's bounding volume. Nodes are expanded lazily, so pulling only
// the first few results touches only the relevant part of the tree.
func (t *Tree[S]) Nearest(needle S) iter.Seq[Neighbour] {
	return func(yield func(Neighbour) bool) {
		if t.root == nil {
			return
		}

		nb := t.oracle.BoundingVolume(needle)
		q := &queue{{node: t.root}}

		for q.Len() > 0 {
			e := heap.Pop(q).(entry)
			if e.node == nil {
				nearestResults.Inc()
				if !yield(Neighbour{
					Distance:      e.dist,
					ShapeID:       e.frag.ShapeID,
					ShapeFragment: e.frag.Bound,
				}) {
					return
				}
				continue
			}

			n := e.node
			for _, f := range n.frags {
				heap.Push(q, entry{
					dist: t.oracle.BoundDistance(f.Bound, nb),
					frag: f,
				})
			}
			if n.leaf {
				continue
			}

			// The child on the far side of the cut from the whole needle is at
			// least the gap to the cut away.
			leftBound, rightBound := e.dist, e.dist
			at := n.axis.Coord(n.cut.Coord)
			gap := t.oracle.PointDistance(n.axis, nb, n.cut.Coord)
			switch {
			case n.axis.Coord(nb.RB) <= at:
				rightBound = max(e.dist, gap)
			case n.axis.Coord(nb.LT) >= at:
				leftBound = max(e.dist, gap)
			}

			if n.left != nil {
				heap.Push(q, entry{dist: leftBound, node: n.left})
			}
			if n.right != nil {
				heap.Push(q, entry{dist: rightBound, node: n.right})
			}
		}
	}
}

// entry is either a node to expand or a fragment to report. For nodes dist
// is a lower bound of every fragment below.
type entry struct {
	dist float64
	node *node
	frag Fragment
}

type queue []entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node == nil && q[j].node != nil
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) {
	*q = append(*q, x.(entry))
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

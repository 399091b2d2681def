package geom

import "math"

// BoundToPointDist returns the smaller distance, along axis alone, from the
// two edges of b to p.
func BoundToPointDist(axis Axis, b Bound, p Point) float64 {
	at := axis.Coord(p)
	return min(
		math.Abs(axis.Coord(b.LT)-at),
		math.Abs(axis.Coord(b.RB)-at),
	)
}

// BoundToBoundDist returns the minimum euclidean distance between a and b. It
// is zero when the boxes overlap or touch.
func BoundToBoundDist(a, b Bound) float64 {
	left := b.RB.X < a.LT.X  // b entirely left of a
	right := b.LT.X > a.RB.X // b entirely right of a
	above := b.RB.Y < a.LT.Y // b entirely above a
	below := b.LT.Y > a.RB.Y // b entirely below a

	switch {
	case left && above:
		return a.LT.Dist(b.RB)
	case right && above:
		return Point{X: a.RB.X, Y: a.LT.Y}.Dist(Point{X: b.LT.X, Y: b.RB.Y})
	case left && below:
		return Point{X: a.LT.X, Y: a.RB.Y}.Dist(Point{X: b.RB.X, Y: b.LT.Y})
	case right && below:
		return a.RB.Dist(b.LT)
	case left:
		return a.LT.X - b.RB.X
	case right:
		return b.LT.X - a.RB.X
	case above:
		return a.LT.Y - b.RB.Y
	case below:
		return b.LT.Y - a.RB.Y
	}
	return 0
}

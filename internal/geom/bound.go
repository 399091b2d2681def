package geom

// ComputeBound returns the smallest Bound holding both endpoints of s.
func ComputeBound(s Segment) Bound {
	return Bound{
		LT: Point{X: min(s.Src.X, s.Dst.X), Y: min(s.Src.Y, s.Dst.Y)},
		RB: Point{X: max(s.Src.X, s.Dst.X), Y: max(s.Src.Y, s.Dst.Y)},
	}
}

// Extent returns the size of b along a.
func (b Bound) Extent(a Axis) float64 {
	return a.Coord(b.RB) - a.Coord(b.LT)
}

// Contains reports whether p lies inside b, edges included.
func (b Bound) Contains(p Point) bool {
	return p.X >= b.LT.X && p.X <= b.RB.X &&
		p.Y >= b.LT.Y && p.Y <= b.RB.Y
}

// Intersects reports whether b and other share at least one point. Touching
// edges count.
func (b Bound) Intersects(other Bound) bool {
	return b.LT.X <= other.RB.X && b.RB.X >= other.LT.X &&
		b.LT.Y <= other.RB.Y && b.RB.Y >= other.LT.Y
}

// Union returns the smallest Bound holding both b and other.
func (b Bound) Union(other Bound) Bound {
	return Bound{
		LT: Point{X: min(b.LT.X, other.LT.X), Y: min(b.LT.Y, other.LT.Y)},
		RB: Point{X: max(b.RB.X, other.RB.X), Y: max(b.RB.Y, other.RB.Y)},
	}
}

func (b Bound) Width() float64  { return b.RB.X - b.LT.X }
func (b Bound) Height() float64 { return b.RB.Y - b.LT.Y }

// Center returns the middle of b.
func (b Bound) Center() Point {
	return Point{X: (b.LT.X + b.RB.X) / 2, Y: (b.LT.Y + b.RB.Y) / 2}
}

package geom

import "iter"

// Cut is the result of a cut point selection. Coord carries the cut on the
// selected axis; its other coordinate is the mean of the other axis and must
// not be used as a cut. Min and Max are the component-wise extremes of the
// points the cut was chosen from.
type Cut struct {
	Coord Point
	Min   Point
	Max   Point
}

// Line returns the cut as a segment spanning Min to Max across the cut axis.
func (c Cut) Line(a Axis) Segment {
	on := a.Coord(c.Coord)
	o := a.Other()
	return Segment{
		Src: a.point(on, o.Coord(c.Min)),
		Dst: a.point(on, o.Coord(c.Max)),
	}
}

// CutPoint picks a split coordinate on axis as the arithmetic mean of the
// points. The sequence is consumed once. It returns false when points is
// empty.
func CutPoint(axis Axis, points iter.Seq[Point]) (Cut, bool) {
	var (
		sum      Point
		pmin     Point
		pmax     Point
		total    int
		nonEmpty bool
	)

	for p := range points {
		if !nonEmpty {
			pmin, pmax = p, p
			nonEmpty = true
		}
		pmin.X = min(pmin.X, p.X)
		pmin.Y = min(pmin.Y, p.Y)
		pmax.X = max(pmax.X, p.X)
		pmax.Y = max(pmax.Y, p.Y)
		sum.X += p.X
		sum.Y += p.Y
		total++
	}

	if total == 0 {
		return Cut{}, false
	}

	mid := Point{
		X: sum.X / float64(total),
		Y: sum.Y / float64(total),
	}
	// Keep the mean on the selected axis inside the observed range when the
	// sum rounds outside it.
	switch axis {
	case Vertical:
		mid.Y = min(max(mid.Y, pmin.Y), pmax.Y)
	default:
		mid.X = min(max(mid.X, pmin.X), pmax.X)
	}

	return Cut{Coord: mid, Min: pmin, Max: pmax}, true
}

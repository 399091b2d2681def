package geom

import "iter"

// SegmentOracle supplies the segment geometry a kd-tree needs. It holds no
// state and is safe for concurrent use.
type SegmentOracle struct{}

func (SegmentOracle) BoundingVolume(s Segment) Bound {
	return ComputeBound(s)
}

func (SegmentOracle) CutPoint(axis Axis, points iter.Seq[Point]) (Cut, bool) {
	return CutPoint(axis, points)
}

func (SegmentOracle) Split(s Segment, fragment Bound, axis Axis, cut Point) (Halves, bool, error) {
	return SplitFragment(s, fragment, axis, cut)
}

func (SegmentOracle) PointDistance(axis Axis, b Bound, p Point) float64 {
	return BoundToPointDist(axis, b, p)
}

func (SegmentOracle) BoundDistance(a, b Bound) float64 {
	return BoundToBoundDist(a, b)
}

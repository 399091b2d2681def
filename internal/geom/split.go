package geom

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// MinSubdivisionExtent is the smallest fragment extent, along the cut axis,
// that is still split. Smaller fragments are terminal.
const MinSubdivisionExtent = 10.0

const (
	ErrTypeNonFinite = "geom-non-finite"
)

// Halves are the two children of a split fragment. Left holds the lower
// coordinates on the cut axis (left for Horizontal cuts, upper for Vertical
// ones).
type Halves struct {
	Left  Bound
	Right Bound
}

// SplitFragment divides fragment, a region of shape's bounding volume, at the
// cut coordinate on axis. It returns false when the cut does not cross the
// fragment, when the fragment is thinner than MinSubdivisionExtent on axis,
// or when shape is parallel to the cut. Non-finite shape or fragment
// coordinates are reported as an error.
func SplitFragment(shape Segment, fragment Bound, axis Axis, cut Point) (Halves, bool, error) {
	if !shape.finite() || !fragment.finite() {
		return Halves{}, false, errors.New("non-finite coordinate").
			WithType(ErrTypeNonFinite).
			WithTag("shape", shape).
			WithTag("fragment", fragment)
	}

	at := axis.Coord(cut)
	lo, hi := axis.Coord(fragment.LT), axis.Coord(fragment.RB)
	if !(at >= lo && at <= hi) {
		return Halves{}, false, nil
	}
	if hi-lo < MinSubdivisionExtent {
		return Halves{}, false, nil
	}

	src, dst := axis.Coord(shape.Src), axis.Coord(shape.Dst)
	if src == dst {
		return Halves{}, false, nil
	}

	o := axis.Other()
	olo, ohi := o.Coord(fragment.LT), o.Coord(fragment.RB)
	t := (at - src) / (dst - src)
	other := o.Coord(shape.Src) + t*(o.Coord(shape.Dst)-o.Coord(shape.Src))
	other = min(max(other, olo), ohi)

	near, far := shape.Src, shape.Dst
	if src > dst {
		near, far = far, near
	}

	// Each child spans from the crossing toward the side its endpoint is on.
	span := func(end Point) (float64, float64) {
		if o.Coord(end) < other {
			return olo, other
		}
		return other, ohi
	}

	l0, l1 := span(near)
	r0, r1 := span(far)
	return Halves{
		Left: Bound{
			LT: axis.point(lo, l0),
			RB: axis.point(at, l1),
		},
		Right: Bound{
			LT: axis.point(at, r0),
			RB: axis.point(hi, r1),
		},
	}, true, nil
}

package geom

import "math"

// parallelSin is the sine of the angle below which two segments are treated
// as parallel.
const parallelSin = 1e-12

// Intersection returns the point where a and b meet. Collinear segments that
// overlap report the first shared point along the longer one. A zero-length
// segment meets the other one when it lies on it.
func Intersection(a, b Segment) (Point, bool) {
	adx := a.Dst.X - a.Src.X
	ady := a.Dst.Y - a.Src.Y
	bdx := b.Dst.X - b.Src.X
	bdy := b.Dst.Y - b.Src.Y

	denominator := cross(adx, ady, bdx, bdy)
	if math.Abs(denominator) <= parallelSin*math.Hypot(adx, ady)*math.Hypot(bdx, bdy) {
		return collinearIntersection(a, b)
	}

	diffX := b.Src.X - a.Src.X
	diffY := b.Src.Y - a.Src.Y
	t := cross(diffX, diffY, bdx, bdy) / denominator
	u := cross(diffX, diffY, adx, ady) / denominator
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}

	return Point{
		X: a.Src.X + t*adx,
		Y: a.Src.Y + t*ady,
	}, true
}

// collinearIntersection handles parallel and degenerate segments. The other
// segment's endpoints are projected on the longer one and the parameter
// ranges are overlapped.
func collinearIntersection(a, b Segment) (Point, bool) {
	long, short := a, b
	if b.Length() > a.Length() {
		long, short = b, a
	}

	dx := long.Dst.X - long.Src.X
	dy := long.Dst.Y - long.Src.Y
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return long.Src, long.Src == short.Src
	}

	param := func(p Point) (float64, bool) {
		px, py := p.X-long.Src.X, p.Y-long.Src.Y
		// cross/|d| is the distance to the line, kept relative to |d|.
		if math.Abs(cross(px, py, dx, dy)) > 1e-9*len2 {
			return 0, false
		}
		return (px*dx + py*dy) / len2, true
	}

	t0, ok0 := param(short.Src)
	t1, ok1 := param(short.Dst)
	if !ok0 || !ok1 {
		return Point{}, false
	}

	lo := max(0, min(t0, t1))
	hi := min(1, max(t0, t1))
	switch {
	case lo > hi:
		return Point{}, false
	case lo == 0:
		return long.Src, true
	case lo == 1:
		return long.Dst, true
	}
	return Point{X: long.Src.X + lo*dx, Y: long.Src.Y + lo*dy}, true
}

func cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

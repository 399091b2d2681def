package geom

import "github.com/paulmach/orb"

// fitMargin leaves a border around fitted data.
const fitMargin = 0.9

// Fit maps segments given in data coordinates (y up) onto canvas (y down),
// centered and scaled uniformly so the data fills the canvas.
func Fit(segs []Segment, canvas Bound) []Segment {
	if len(segs) == 0 {
		return nil
	}

	mp := make(orb.MultiPoint, 0, 2*len(segs))
	for _, s := range segs {
		mp = append(mp, orb.Point{s.Src.X, s.Src.Y}, orb.Point{s.Dst.X, s.Dst.Y})
	}
	b := mp.Bound()
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]

	scale := 1.0
	switch {
	case w > 0 && h > 0:
		scale = min(canvas.Width()/w, canvas.Height()/h) * fitMargin
	case w > 0:
		scale = canvas.Width() / w * fitMargin
	case h > 0:
		scale = canvas.Height() / h * fitMargin
	}

	c := b.Center()
	cc := canvas.Center()
	project := func(p Point) Point {
		return Point{
			X: cc.X + (p.X-c[0])*scale,
			Y: cc.Y - (p.Y-c[1])*scale,
		}
	}

	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{Src: project(s.Src), Dst: project(s.Dst)}
	}
	return out
}

package kdv

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/dhconnelly/rtreego"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"segkd/internal/geom"
)

var axes = []geom.Axis{geom.Horizontal, geom.Vertical}

// randomSegments mixes long segments spanning the canvas with short ones and
// a few axis-parallel and degenerate ones.
func randomSegments(rng *rand.Rand, n int) []geom.Segment {
	segs := make([]geom.Segment, 0, n)
	for i := 0; i < n; i++ {
		src := geom.Point{X: rng.Float64() * 640, Y: rng.Float64() * 480}
		var dst geom.Point
		switch i % 10 {
		case 0:
			dst = geom.Point{X: src.X, Y: rng.Float64() * 480}
		case 1:
			dst = geom.Point{X: rng.Float64() * 640, Y: src.Y}
		case 2:
			dst = src
		case 3, 4, 5:
			dst = geom.Point{X: rng.Float64() * 640, Y: rng.Float64() * 480}
		default:
			dst = geom.Point{
				X: src.X + (rng.Float64()-0.5)*80,
				Y: src.Y + (rng.Float64()-0.5)*80,
			}
		}
		segs = append(segs, geom.Segment{Src: src, Dst: dst})
	}
	return segs
}

func buildTree(t *testing.T, segs []geom.Segment, opts ...Option) *Tree[geom.Segment] {
	t.Helper()

	tree, err := Build(axes, segs, geom.SegmentOracle{}, opts...)
	require.NoError(t, err)
	return tree
}

func near(b geom.Bound, p geom.Point) bool {
	const eps = 1e-9
	return p.X >= b.LT.X-eps && p.X <= b.RB.X+eps &&
		p.Y >= b.LT.Y-eps && p.Y <= b.RB.Y+eps
}

func TestBuild(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	segs := randomSegments(rng, 300)
	tree := buildTree(t, segs)

	stats := tree.Stats()
	require.Equal(t, 300, stats.Shapes)
	require.Equal(t, 300, tree.Len())
	require.Greater(t, stats.Nodes, 1)
	require.Greater(t, stats.Leaves, 1)
	require.GreaterOrEqual(t, stats.Fragments, 300)
	require.LessOrEqual(t, stats.Depth, MaxDepth)

	byShape := make(map[int][]geom.Bound)
	for f := range tree.Fragments() {
		byShape[f.ShapeID] = append(byShape[f.ShapeID], f.Bound)
	}
	require.Len(t, byShape, 300)

	count := 0
	for id, frags := range byShape {
		seg := tree.Shape(id)
		whole := geom.ComputeBound(seg)
		count += len(frags)

		for _, f := range frags {
			require.True(t, near(whole, f.LT))
			require.True(t, near(whole, f.RB))
		}

		// Every point of the segment is covered by one of its fragments.
		for i := 0; i <= 16; i++ {
			k := float64(i) / 16
			p := geom.Point{
				X: seg.Src.X + k*(seg.Dst.X-seg.Src.X),
				Y: seg.Src.Y + k*(seg.Dst.Y-seg.Src.Y),
			}
			require.True(t, slices.ContainsFunc(frags, func(b geom.Bound) bool {
				return near(b, p)
			}), "shape %d point %v", id, p)
		}
	}
	require.Equal(t, stats.Fragments, count)
}

func TestBuildCuts(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	tree := buildTree(t, randomSegments(rng, 100))

	cuts := slices.Collect(tree.Cuts())
	require.NotEmpty(t, cuts)
	require.Equal(t, tree.Stats().Nodes-tree.Stats().Leaves, len(cuts))
	require.Equal(t, 0, cuts[0].Depth)

	for _, c := range cuts {
		require.Equal(t, axes[c.Depth%len(axes)], c.Axis)

		line := c.Segment()
		require.Equal(t, c.Axis.Coord(line.Src), c.Axis.Coord(line.Dst))
		require.Equal(t, c.Axis.Coord(c.Cut.Coord), c.Axis.Coord(line.Src))
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("no axes", func(t *testing.T) {
		_, err := Build(nil, []geom.Segment{{}}, geom.SegmentOracle{})
		require.Error(t, err)
		require.Equal(t, ErrTypeNoAxes, errors.Type(err))
	})

	t.Run("non-finite shape", func(t *testing.T) {
		segs := []geom.Segment{
			{Src: geom.Point{X: 0, Y: 0}, Dst: geom.Point{X: 100, Y: 100}},
			{Src: geom.Point{X: 50, Y: 0}, Dst: geom.Point{X: math.NaN(), Y: 40}},
		}

		for _, parallelism := range []int{1, 4} {
			_, err := Build(axes, segs, geom.SegmentOracle{}, WithParallelism(parallelism))
			require.Error(t, err)
			require.Equal(t, ErrTypeSplit, errors.Type(err))
		}
	})
}

func TestBuildSmall(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		tree := buildTree(t, nil)
		require.Equal(t, 0, tree.Len())
		require.Equal(t, 1, tree.Stats().Nodes)
		require.Empty(t, slices.Collect(tree.Intersects(geom.Segment{Dst: geom.Point{X: 10, Y: 10}})))
		require.Empty(t, slices.Collect(tree.Nearest(geom.Segment{})))
	})

	t.Run("identical degenerate shapes", func(t *testing.T) {
		p := geom.Point{X: 5, Y: 5}
		tree := buildTree(t, []geom.Segment{{Src: p, Dst: p}, {Src: p, Dst: p}})
		require.Equal(t, 1, tree.Stats().Nodes)
		require.Len(t, slices.Collect(tree.Intersects(geom.Segment{Src: p, Dst: p})), 2)
	})

	t.Run("crossing diagonals", func(t *testing.T) {
		tree := buildTree(t, []geom.Segment{
			{Src: geom.Point{X: 0, Y: 0}, Dst: geom.Point{X: 100, Y: 100}},
			{Src: geom.Point{X: 0, Y: 100}, Dst: geom.Point{X: 100, Y: 0}},
		})

		hits := map[int]bool{}
		for hit := range tree.Intersects(geom.Segment{Src: geom.Point{X: 0, Y: 50}, Dst: geom.Point{X: 100, Y: 50}}) {
			hits[hit.ShapeID] = true
		}
		require.Equal(t, map[int]bool{0: true, 1: true}, hits)

		// Shape 0 runs parallel to this needle, far from it.
		for hit := range tree.Intersects(geom.Segment{Src: geom.Point{X: 80, Y: 0}, Dst: geom.Point{X: 100, Y: 20}}) {
			require.Equal(t, 1, hit.ShapeID)
		}
	})
}

type indexed struct {
	id   int
	rect rtreego.Rect
}

func (i indexed) Bounds() rtreego.Rect {
	return i.rect
}

// rect pads b so touching boxes overlap and degenerate boxes are valid.
func rect(t *testing.T, b geom.Bound) rtreego.Rect {
	const pad = 1e-6
	r, err := rtreego.NewRect(
		rtreego.Point{b.LT.X - pad, b.LT.Y - pad},
		[]float64{b.Width() + 2*pad, b.Height() + 2*pad},
	)
	require.NoError(t, err)
	return r
}

func TestIntersects(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	segs := randomSegments(rng, 400)
	tree := buildTree(t, segs)

	index := rtreego.NewTree(2, 25, 50)
	for i, s := range segs {
		index.Insert(indexed{id: i, rect: rect(t, geom.ComputeBound(s))})
	}

	// Needles lying on existing segments: one collinear, one zero-length.
	mid := geom.Point{X: segs[0].Src.X, Y: (segs[0].Src.Y + segs[0].Dst.Y) / 2}
	needles := append(randomSegments(rng, 60),
		segs[1],
		geom.Segment{Src: mid, Dst: mid},
	)

	for _, needle := range needles {
		got := map[int]bool{}
		for hit := range tree.Intersects(needle) {
			require.True(t, hit.ShapeFragment.Intersects(hit.NeedleFragment))
			got[hit.ShapeID] = true
		}

		// Complete: every exact intersection is found.
		for i, s := range segs {
			if _, ok := geom.Intersection(s, needle); ok {
				require.True(t, got[i], "missing shape %d for needle %v-%v", i, needle.Src, needle.Dst)
			}
		}

		// Sound: every hit is a bounding box candidate.
		candidates := map[int]bool{}
		for _, c := range index.SearchIntersect(rect(t, geom.ComputeBound(needle))) {
			candidates[c.(indexed).id] = true
		}
		for id := range got {
			require.True(t, candidates[id], "shape %d is not a candidate", id)
		}
	}
}

func TestIntersectsEarlyBreak(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	tree := buildTree(t, randomSegments(rng, 200))
	needle := geom.Segment{Src: geom.Point{X: 0, Y: 0}, Dst: geom.Point{X: 640, Y: 480}}

	all := slices.Collect(tree.Intersects(needle))
	require.Greater(t, len(all), 2)

	var first []Intersection
	for hit := range tree.Intersects(needle) {
		first = append(first, hit)
		if len(first) == 2 {
			break
		}
	}
	require.Equal(t, all[:2], first)
}

func TestNearest(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	tree := buildTree(t, randomSegments(rng, 300))

	needles := append(randomSegments(rng, 10), geom.Segment{
		Src: geom.Point{X: 320, Y: 240},
		Dst: geom.Point{X: 320, Y: 240},
	})

	for _, needle := range needles {
		nb := geom.ComputeBound(needle)

		var want []float64
		for f := range tree.Fragments() {
			want = append(want, geom.BoundToBoundDist(f.Bound, nb))
		}
		slices.Sort(want)

		var got []float64
		for n := range tree.Nearest(needle) {
			require.Equal(t, geom.BoundToBoundDist(n.ShapeFragment, nb), n.Distance)
			got = append(got, n.Distance)
		}
		require.Equal(t, want, got)
		require.True(t, slices.IsSorted(got))
	}
}

func TestNearestLazy(t *testing.T) {
	segs := []geom.Segment{
		{Src: geom.Point{X: 0, Y: 0}, Dst: geom.Point{X: 5, Y: 5}},
		{Src: geom.Point{X: 600, Y: 400}, Dst: geom.Point{X: 620, Y: 460}},
		{Src: geom.Point{X: 100, Y: 100}, Dst: geom.Point{X: 140, Y: 90}},
	}
	tree := buildTree(t, segs)

	on := geom.Point{X: 610, Y: 430}
	for n := range tree.Nearest(geom.Segment{Src: on, Dst: on}) {
		require.Equal(t, 1, n.ShapeID)
		require.Zero(t, n.Distance)
		break
	}
}

func TestParallelBuild(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	segs := randomSegments(rng, 500)

	sequential := buildTree(t, segs)
	parallel := buildTree(t, segs, WithParallelism(8))

	require.Equal(t, sequential.Stats(), parallel.Stats())
	require.Equal(t, slices.Collect(sequential.Cuts()), slices.Collect(parallel.Cuts()))
	require.Equal(t, slices.Collect(sequential.Fragments()), slices.Collect(parallel.Fragments()))
}

func TestConcurrentQueries(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	tree := buildTree(t, randomSegments(rng, 200))
	needles := randomSegments(rng, 16)

	want := make([][]Neighbour, len(needles))
	for i, n := range needles {
		want[i] = slices.Collect(tree.Nearest(n))
	}

	var g errgroup.Group
	got := make([][]Neighbour, len(needles))
	for i, n := range needles {
		g.Go(func() error {
			got[i] = slices.Collect(tree.Nearest(n))
			for range tree.Intersects(n) {
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := range needles {
		require.Equal(t,
			distances(want[i]),
			distances(got[i]),
		)
	}
}

func distances(ns []Neighbour) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.Distance
	}
	return slices.SortedFunc(slices.Values(out), cmp.Compare[float64])
}

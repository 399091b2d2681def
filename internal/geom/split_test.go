package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSplitFragment(t *testing.T) {
	square := Bound{LT: Point{0, 0}, RB: Point{10, 10}}

	tests := []struct {
		name     string
		shape    Segment
		fragment Bound
		axis     Axis
		cut      Point
		want     Halves
	}{
		{
			name:     "diagonal",
			shape:    Segment{Src: Point{0, 0}, Dst: Point{10, 10}},
			fragment: square,
			axis:     Horizontal,
			cut:      Point{5, 0},
			want: Halves{
				Left:  Bound{LT: Point{0, 0}, RB: Point{5, 5}},
				Right: Bound{LT: Point{5, 5}, RB: Point{10, 10}},
			},
		},
		{
			name:     "reversed diagonal",
			shape:    Segment{Src: Point{10, 10}, Dst: Point{0, 0}},
			fragment: square,
			axis:     Horizontal,
			cut:      Point{5, 0},
			want: Halves{
				Left:  Bound{LT: Point{0, 0}, RB: Point{5, 5}},
				Right: Bound{LT: Point{5, 5}, RB: Point{10, 10}},
			},
		},
		{
			name:     "anti diagonal",
			shape:    Segment{Src: Point{0, 10}, Dst: Point{10, 0}},
			fragment: square,
			axis:     Horizontal,
			cut:      Point{5, 0},
			want: Halves{
				Left:  Bound{LT: Point{0, 5}, RB: Point{5, 10}},
				Right: Bound{LT: Point{5, 0}, RB: Point{10, 5}},
			},
		},
		{
			name:     "vertical axis",
			shape:    Segment{Src: Point{0, 0}, Dst: Point{20, 10}},
			fragment: Bound{LT: Point{0, 0}, RB: Point{20, 10}},
			axis:     Vertical,
			cut:      Point{0, 5},
			want: Halves{
				Left:  Bound{LT: Point{0, 0}, RB: Point{10, 5}},
				Right: Bound{LT: Point{10, 5}, RB: Point{20, 10}},
			},
		},
		{
			name:     "cut on fragment edge",
			shape:    Segment{Src: Point{0, 0}, Dst: Point{10, 10}},
			fragment: square,
			axis:     Horizontal,
			cut:      Point{10, 0},
			want: Halves{
				Left:  Bound{LT: Point{0, 0}, RB: Point{10, 10}},
				Right: Bound{LT: Point{10, 10}, RB: Point{10, 10}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			halves, ok, err := SplitFragment(test.shape, test.fragment, test.axis, test.cut)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, test.want, halves)
		})
	}
}

func TestSplitFragmentNoSplit(t *testing.T) {
	diagonal := Segment{Src: Point{0, 0}, Dst: Point{10, 10}}
	square := Bound{LT: Point{0, 0}, RB: Point{10, 10}}

	tests := []struct {
		name     string
		shape    Segment
		fragment Bound
		axis     Axis
		cut      Point
	}{
		{
			name:     "cut before fragment",
			shape:    diagonal,
			fragment: square,
			axis:     Horizontal,
			cut:      Point{-1, 5},
		},
		{
			name:     "cut after fragment",
			shape:    diagonal,
			fragment: square,
			axis:     Vertical,
			cut:      Point{5, 10.5},
		},
		{
			name:     "below threshold",
			shape:    Segment{Src: Point{0, 0}, Dst: Point{9.99, 30}},
			fragment: Bound{LT: Point{0, 0}, RB: Point{9.99, 30}},
			axis:     Horizontal,
			cut:      Point{5, 0},
		},
		{
			name:     "parallel to cut",
			shape:    Segment{Src: Point{3, 0}, Dst: Point{3, 20}},
			fragment: Bound{LT: Point{0, 0}, RB: Point{20, 20}},
			axis:     Horizontal,
			cut:      Point{3, 0},
		},
		{
			name:     "parallel away from cut",
			shape:    Segment{Src: Point{3, 0}, Dst: Point{3, 20}},
			fragment: Bound{LT: Point{0, 0}, RB: Point{20, 20}},
			axis:     Horizontal,
			cut:      Point{12, 0},
		},
		{
			name:     "horizontal segment on vertical axis",
			shape:    Segment{Src: Point{0, 7}, Dst: Point{40, 7}},
			fragment: Bound{LT: Point{0, 0}, RB: Point{40, 20}},
			axis:     Vertical,
			cut:      Point{0, 7},
		},
		{
			name:     "degenerate segment",
			shape:    Segment{Src: Point{5, 5}, Dst: Point{5, 5}},
			fragment: square,
			axis:     Horizontal,
			cut:      Point{5, 5},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			halves, ok, err := SplitFragment(test.shape, test.fragment, test.axis, test.cut)
			require.NoError(t, err)
			require.False(t, ok)
			require.Zero(t, halves)
		})
	}
}

func TestSplitFragmentAtThreshold(t *testing.T) {
	shape := Segment{Src: Point{0, 0}, Dst: Point{MinSubdivisionExtent, 4}}

	_, ok, err := SplitFragment(shape, ComputeBound(shape), Horizontal, Point{5, 0})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSplitFragmentNonFinite(t *testing.T) {
	shape := Segment{Src: Point{0, 0}, Dst: Point{math.NaN(), 10}}

	_, ok, err := SplitFragment(shape, Bound{RB: Point{10, 10}}, Horizontal, Point{5, 0})
	require.Error(t, err)
	require.False(t, ok)
	require.Equal(t, ErrTypeNonFinite, errors.Type(err))

	shape = Segment{Src: Point{0, 0}, Dst: Point{10, 10}}
	_, _, err = SplitFragment(shape, Bound{RB: Point{math.Inf(1), 10}}, Horizontal, Point{5, 0})
	require.Equal(t, ErrTypeNonFinite, errors.Type(err))
}

func TestSplitFragmentPartitions(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		shape := Segment{
			Src: Point{rng.Float64() * 640, rng.Float64() * 480},
			Dst: Point{rng.Float64() * 640, rng.Float64() * 480},
		}
		fragment := ComputeBound(shape)
		axis := Axis(i % 2)
		lo, hi := axis.Coord(fragment.LT), axis.Coord(fragment.RB)
		if hi-lo < MinSubdivisionExtent {
			continue
		}
		at := lo + (hi-lo)*(0.05+0.9*rng.Float64())

		halves, ok, err := SplitFragment(shape, fragment, axis, axis.point(at, 0))
		require.NoError(t, err)
		require.True(t, ok)

		require.Equal(t, lo, axis.Coord(halves.Left.LT))
		require.Equal(t, at, axis.Coord(halves.Left.RB))
		require.Equal(t, at, axis.Coord(halves.Right.LT))
		require.Equal(t, hi, axis.Coord(halves.Right.RB))
		require.Equal(t, fragment, halves.Left.Union(halves.Right))

		for _, child := range []Bound{halves.Left, halves.Right} {
			require.LessOrEqual(t, child.LT.X, child.RB.X)
			require.LessOrEqual(t, child.LT.Y, child.RB.Y)
		}
	}
}

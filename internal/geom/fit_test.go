package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	canvas := Bound{RB: Point{640, 480}}

	t.Run("scales and flips", func(t *testing.T) {
		segs := Fit([]Segment{{Src: Point{0, 0}, Dst: Point{100, 50}}}, canvas)
		require.Len(t, segs, 1)
		require.InDelta(t, 32, segs[0].Src.X, 1e-9)
		require.InDelta(t, 384, segs[0].Src.Y, 1e-9)
		require.InDelta(t, 608, segs[0].Dst.X, 1e-9)
		require.InDelta(t, 96, segs[0].Dst.Y, 1e-9)
	})

	t.Run("stays inside canvas", func(t *testing.T) {
		in := []Segment{
			{Src: Point{-73.99, 40.73}, Dst: Point{-73.98, 40.75}},
			{Src: Point{-74.01, 40.70}, Dst: Point{-73.95, 40.71}},
			{Src: Point{-73.97, 40.80}, Dst: Point{-73.97, 40.80}},
		}

		for _, s := range Fit(in, canvas) {
			require.True(t, canvas.Contains(s.Src), s.Src.String())
			require.True(t, canvas.Contains(s.Dst), s.Dst.String())
		}
	})

	t.Run("single point", func(t *testing.T) {
		segs := Fit([]Segment{{Src: Point{7, 7}, Dst: Point{7, 7}}}, canvas)
		require.Equal(t, []Segment{{Src: Point{320, 240}, Dst: Point{320, 240}}}, segs)
	})

	t.Run("empty", func(t *testing.T) {
		require.Nil(t, Fit(nil, canvas))
	})
}

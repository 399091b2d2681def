package tui

import "math"

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dotBits maps a micro-pixel position inside a cell to its braille dot.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	if !b.clip(&x0, &y0, &x1, &y1) {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip trims a line to the microgrid with Liang-Barsky. It returns false when
// the line misses the grid.
func (b *brailleBuf) clip(x0, y0, x1, y1 *int) bool {
	xmin, ymin := 0.0, 0.0
	xmax, ymax := float64(b.w*2-1), float64(b.h*4-1)
	fx0, fy0 := float64(*x0), float64(*y0)
	dx, dy := float64(*x1-*x0), float64(*y1-*y0)

	t0, t1 := 0.0, 1.0
	for _, e := range [...][2]float64{
		{-dx, fx0 - xmin},
		{dx, xmax - fx0},
		{-dy, fy0 - ymin},
		{dy, ymax - fy0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return false
		}
	}

	*x0, *y0, *x1, *y1 = int(math.Round(fx0+t0*dx)), int(math.Round(fy0+t0*dy)),
		int(math.Round(fx0+t1*dx)), int(math.Round(fy0+t1*dy))
	return true
}

// drawCircleMicro draws a circle outline of radius r micro-pixels.
func (b *brailleBuf) drawCircleMicro(cx, cy, r int) {
	steps := max(8, r*8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		b.setPixel(cx+int(math.Round(float64(r)*math.Cos(a))), cy+int(math.Round(float64(r)*math.Sin(a))))
	}
}

func brailleRune(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

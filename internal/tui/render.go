package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"segkd/internal/geom"
)

// viewport maps world coordinates onto the braille microgrid (2x4 per cell)
// of a w x h cell map, considering zoom and pan.
type viewport struct {
	scale   float64
	originX float64
	originY float64
}

func (m Model) viewport(w, h int) viewport {
	wMic := float64(w * 2)
	hMic := float64(h * 4)
	scale := min(wMic/canvas.Width(), hMic/canvas.Height()) * m.zoom
	c := canvas.Center()
	return viewport{
		scale:   scale,
		originX: wMic/2 + float64(m.offsetX*2) - c.X*scale,
		originY: hMic/2 + float64(m.offsetY*4) - c.Y*scale,
	}
}

// toMicro returns the micro pixel holding p.
func (v viewport) toMicro(p geom.Point) (int, int) {
	return int(math.Floor(v.originX + p.X*v.scale)), int(math.Floor(v.originY + p.Y*v.scale))
}

// cellToWorld returns the world position at the center of a map cell.
func (v viewport) cellToWorld(cx, cy int) geom.Point {
	return geom.Point{
		X: (float64(cx*2+1) - v.originX) / v.scale,
		Y: (float64(cy*4+2) - v.originY) / v.scale,
	}
}

func (v viewport) drawSegment(b *brailleBuf, s geom.Segment) {
	x0, y0 := v.toMicro(s.Src)
	x1, y1 := v.toMicro(s.Dst)
	b.drawLineMicro(x0, y0, x1, y1)
}

// drawMarker draws a circle of radius r world units around p.
func (v viewport) drawMarker(b *brailleBuf, p geom.Point, r float64) {
	cx, cy := v.toMicro(p)
	b.drawCircleMicro(cx, cy, max(1, int(math.Round(r*v.scale))))
}

type layer struct {
	buf   *brailleBuf
	style lipgloss.Style
}

func (m Model) renderCanvas(w, h int) string {
	vp := m.viewport(w, h)
	newLayer := func(style lipgloss.Style) layer {
		return layer{buf: newBrailleBuf(w, h), style: style}
	}

	cutsX := newLayer(cutXStyle)
	cutsY := newLayer(cutYStyle)
	segs := newLayer(segmentStyle)
	nearest := newLayer(nearestStyle)
	hits := newLayer(hitStyle)
	needle := newLayer(needleStyle)
	pen := newLayer(constructPen)
	if m.mode == modeCollide {
		pen.style = collidePen
	}

	// Canvas outline
	corners := []geom.Point{
		canvas.LT,
		{X: canvas.RB.X, Y: canvas.LT.Y},
		canvas.RB,
		{X: canvas.LT.X, Y: canvas.RB.Y},
	}
	for i := range corners {
		vp.drawSegment(cutsX.buf, geom.Segment{Src: corners[i], Dst: corners[(i+1)%len(corners)]})
	}

	if m.showCuts {
		for _, c := range m.cuts {
			dst := cutsX
			if c.Axis == geom.Vertical {
				dst = cutsY
			}
			vp.drawSegment(dst.buf, c.Segment())
		}
	}

	if m.showSegments {
		for _, s := range m.segments {
			vp.drawSegment(segs.buf, s)
		}
	}

	if m.showQuery && m.tree != nil {
		for _, n := range m.nearest {
			vp.drawSegment(nearest.buf, m.tree.Shape(n.ShapeID))
		}
		for _, h := range m.hits {
			vp.drawSegment(hits.buf, m.tree.Shape(h.shapeID))
			vp.drawMarker(needle.buf, h.at, 4)
		}
		if m.needle != nil {
			vp.drawSegment(needle.buf, *m.needle)
		}
	}

	// Cursor: a pending object follows the pointer, otherwise a small circle.
	if m.hovering {
		if m.objStart != nil {
			vp.drawSegment(pen.buf, geom.Segment{Src: *m.objStart, Dst: m.hoverWorld})
		} else {
			vp.drawMarker(pen.buf, m.hoverWorld, 5)
		}
	}

	lines := compose(w, h, []layer{cutsX, cutsY, segs, nearest, hits, needle, pen})
	return strings.Join(lines, "\n")
}

// compose merges layers cell by cell. A cell takes the style of the highest
// layer that has a dot in it.
func compose(w, h int, layers []layer) []string {
	out := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		var run []rune
		top := -1

		flush := func() {
			if len(run) == 0 {
				return
			}
			if top < 0 {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(layers[top].style.Render(string(run)))
			}
			run = run[:0]
		}

		for x := 0; x < w; x++ {
			var mask uint8
			cellTop := -1
			for i, l := range layers {
				if bits := l.buf.m[y][x]; bits != 0 {
					mask |= bits
					cellTop = i
				}
			}
			if cellTop != top {
				flush()
				top = cellTop
			}
			run = append(run, brailleRune(mask))
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

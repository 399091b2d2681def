package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/logs"

	"segkd/internal/geom"
	"segkd/internal/kdv"
)

// rebuild indexes the current segments. Query results refer to shape ids of
// the previous tree and are dropped.
func (m *Model) rebuild() {
	m.resetQuery()

	tree, err := kdv.Build(axes, m.segments, geom.SegmentOracle{}, kdv.WithParallelism(m.conf.Parallelism))
	if err != nil {
		logs.Warn(err)
		m.tree = nil
		m.cuts = nil
		m.status = "build error: " + err.Error()
		return
	}

	m.tree = tree
	m.cuts = slices.Collect(tree.Cuts())

	st := tree.Stats()
	logs.WithTag("segments", st.Shapes).
		WithTag("nodes", st.Nodes).
		WithTag("fragments", st.Fragments).
		WithTag("depth", st.Depth).
		Debug("kd-tree rebuilt")
}

func (m *Model) resetQuery() {
	m.needle = nil
	m.hits = nil
	m.nearest = nil
	m.showResults = false
}

// setSegments replaces the scene and resets the viewport.
func (m *Model) setSegments(segs []geom.Segment) {
	m.segments = segs
	m.objStart = nil
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.rebuild()
}

func (m *Model) clear() {
	m.segments = nil
	m.objStart = nil
	m.inspectPopup = ""
	m.rebuild()
	m.status = "cleared"
}

func (m *Model) toggleMode() {
	if m.mode == modeConstruct {
		m.mode = modeCollide
	} else {
		m.mode = modeConstruct
	}
	m.objStart = nil
	m.status = "mode: " + m.mode.String()
}

// place handles a click at p. The first click starts an object, the second
// one completes it according to the current mode.
func (m *Model) place(p geom.Point) {
	if !canvas.Contains(p) {
		m.status = "outside canvas"
		return
	}

	if m.objStart == nil {
		m.objStart = &p
		m.status = "first endpoint at " + p.String()
		return
	}

	seg := geom.Segment{Src: p, Dst: *m.objStart}
	m.objStart = nil

	switch m.mode {
	case modeConstruct:
		m.segments = append(m.segments, seg)
		m.rebuild()
		m.status = fmt.Sprintf("added segment %s-%s  segments=%d", seg.Src, seg.Dst, len(m.segments))

	case modeCollide:
		m.collide(seg)
	}
}

// collide runs the tree queries for needle. Fragment level candidates from
// Intersects are confirmed with the exact segment intersection.
func (m *Model) collide(needle geom.Segment) {
	m.resetQuery()
	m.needle = &needle
	if m.tree == nil {
		m.status = "no tree"
		return
	}

	var (
		candidates int
		byShape    = make(map[int]int)
	)
	for x := range m.tree.Intersects(needle) {
		candidates++
		if i, ok := byShape[x.ShapeID]; ok {
			if i >= 0 {
				m.hits[i].fragments++
			}
			continue
		}

		byShape[x.ShapeID] = -1
		if p, ok := geom.Intersection(m.tree.Shape(x.ShapeID), needle); ok {
			byShape[x.ShapeID] = len(m.hits)
			m.hits = append(m.hits, hit{shapeID: x.ShapeID, at: p, fragments: 1})
		}
	}
	slices.SortFunc(m.hits, func(a, b hit) int {
		return a.shapeID - b.shapeID
	})

	seen := make(map[int]bool)
	for n := range m.tree.Nearest(needle) {
		if seen[n.ShapeID] {
			continue
		}
		seen[n.ShapeID] = true
		m.nearest = append(m.nearest, n)
		if len(m.nearest) == m.conf.NearestCount {
			break
		}
	}

	logs.WithTag("needle_src", needle.Src.String()).
		WithTag("needle_dst", needle.Dst.String()).
		WithTag("candidates", candidates).
		WithTag("hits", len(m.hits)).
		WithTag("nearest", len(m.nearest)).
		Debug("collide query")

	m.status = fmt.Sprintf("collide: %d hits from %d candidate fragments, %d nearest",
		len(m.hits), candidates, len(m.nearest))
}

// inspect describes the segment nearest to the hovered position.
func (m *Model) inspect() {
	if !m.hovering || m.tree == nil || m.tree.Len() == 0 {
		m.inspectPopup = ""
		m.status = "no segment nearby"
		return
	}

	p := m.hoverWorld
	for n := range m.tree.Nearest(geom.Segment{Src: p, Dst: p}) {
		seg := m.tree.Shape(n.ShapeID)
		meta := []string{
			fmt.Sprintf("segment: #%d", n.ShapeID),
			fmt.Sprintf("src: %s", seg.Src),
			fmt.Sprintf("dst: %s", seg.Dst),
			fmt.Sprintf("length: %.2f", seg.Length()),
			fmt.Sprintf("fragment: %s %s", n.ShapeFragment.LT, n.ShapeFragment.RB),
			fmt.Sprintf("distance: %.2f", n.Distance),
		}
		m.inspectPopup = strings.Join(meta, "\n")
		m.status = "inspect popup"
		return
	}
}

package geom

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT parses WKT text into segments. Every pair of consecutive vertices
// of a LINESTRING, MULTILINESTRING, POLYGON, MULTIPOLYGON or
// GEOMETRYCOLLECTION member becomes one segment. Points are ignored.
func ParseWKT(text string) ([]Segment, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.New("empty wkt").
			WithType(ErrTypeNoSegments)
	}

	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.New("parsing wkt failed").
			WithType(ErrTypeUnsupportedFormat).
			Wrap(err)
	}

	segs := segmentsOf(g)
	if len(segs) == 0 {
		return nil, errors.New("wkt: no segments parsed").
			WithType(ErrTypeNoSegments).
			WithTag("geometry", g.GeoJSONType())
	}
	return segs, nil
}

// segmentsOf flattens g into the segments joining its consecutive vertices.
func segmentsOf(g orb.Geometry) []Segment {
	var segs []Segment
	var walk func(g orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.LineString:
			segs = appendChain(segs, g)
		case orb.Ring:
			segs = appendChain(segs, orb.LineString(g))
		case orb.MultiLineString:
			for _, ls := range g {
				segs = appendChain(segs, ls)
			}
		case orb.Polygon:
			for _, r := range g {
				segs = appendChain(segs, orb.LineString(r))
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		case orb.Bound:
			walk(g.ToRing())
		}
	}
	if g != nil {
		walk(g)
	}
	return segs
}

// appendChain joins consecutive vertices. Non-finite vertices break the
// chain.
func appendChain(segs []Segment, ls orb.LineString) []Segment {
	var prev *Point
	for _, v := range ls {
		p := Point{X: v[0], Y: v[1]}
		if !p.finite() {
			prev = nil
			continue
		}
		if prev != nil {
			segs = append(segs, Segment{Src: *prev, Dst: p})
		}
		prev = &p
	}
	return segs
}

package geom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlRing struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlGeometry struct {
	LineStrings []kmlCoords   `xml:"LineString"`
	Rings       []kmlCoords   `xml:"LinearRing"`
	Polygons    []kmlPolygon  `xml:"Polygon"`
	Multi       []kmlGeometry `xml:"MultiGeometry"`
}

// LoadKML extracts segments from the LineString, LinearRing and Polygon
// elements of every Placemark in a KML file, wherever the Placemark is nested.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening kml failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	segs, err := parseKML(f)
	if err != nil {
		return nil, errors.New("reading kml failed").
			WithType(errors.Type(err)).
			WithTag("path", path).
			Wrap(err)
	}
	return segs, nil
}

func parseKML(r io.Reader) ([]Segment, error) {
	var segs []Segment
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New("invalid kml").
				WithType(ErrTypeUnsupportedFormat).
				Wrap(err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Placemark" {
			continue
		}
		var pm kmlGeometry
		if err := dec.DecodeElement(&pm, &start); err != nil {
			return nil, errors.New("invalid kml placemark").
				WithType(ErrTypeUnsupportedFormat).
				Wrap(err)
		}
		segs = pm.appendSegments(segs)
	}

	if len(segs) == 0 {
		return nil, errors.New("kml: no segments found").
			WithType(ErrTypeNoSegments)
	}
	return segs, nil
}

func (g kmlGeometry) appendSegments(segs []Segment) []Segment {
	for _, ls := range g.LineStrings {
		segs = appendKMLChain(segs, ls.Coordinates)
	}
	for _, r := range g.Rings {
		segs = appendKMLChain(segs, r.Coordinates)
	}
	for _, p := range g.Polygons {
		segs = appendKMLChain(segs, p.Outer.LinearRing.Coordinates)
		for _, in := range p.Inner {
			segs = appendKMLChain(segs, in.LinearRing.Coordinates)
		}
	}
	for _, m := range g.Multi {
		segs = m.appendSegments(segs)
	}
	return segs
}

// appendKMLChain joins consecutive coordinate tuples. Tuples that do not
// parse break the chain.
func appendKMLChain(segs []Segment, coords string) []Segment {
	var prev *Point
	for _, tuple := range strings.Fields(coords) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			prev = nil
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil || !isFinite(lon) || !isFinite(lat) {
			prev = nil
			continue
		}
		p := Point{X: lon, Y: lat}
		if prev != nil {
			segs = append(segs, Segment{Src: *prev, Dst: p})
		}
		prev = &p
	}
	return segs
}

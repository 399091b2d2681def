package geom

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb/geojson"
	"github.com/segmentio/encoding/json"
)

// LoadGeoJSON reads a GeoJSON file and returns the segments of its line and
// polygon geometries. FeatureCollection, Feature and bare geometries are
// supported.
func LoadGeoJSON(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading geojson failed").
			WithTag("path", path).
			Wrap(err)
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON is LoadGeoJSON for in-memory documents.
func ParseGeoJSON(data []byte) ([]Segment, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.New("invalid geojson").
			WithType(ErrTypeUnsupportedFormat).
			Wrap(err)
	}

	var segs []Segment
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type").
			WithType(ErrTypeUnsupportedFormat)

	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.New("invalid geojson feature collection").
				WithType(ErrTypeUnsupportedFormat).
				Wrap(err)
		}
		for _, f := range fc.Features {
			segs = append(segs, segmentsOf(f.Geometry)...)
		}

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.New("invalid geojson feature").
				WithType(ErrTypeUnsupportedFormat).
				Wrap(err)
		}
		segs = segmentsOf(f.Geometry)

	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.New("invalid geojson geometry").
				WithType(ErrTypeUnsupportedFormat).
				WithTag("type", head.Type).
				Wrap(err)
		}
		segs = segmentsOf(g.Geometry())
	}

	if len(segs) == 0 {
		return nil, errors.New("no line geometries found in geojson").
			WithType(ErrTypeNoSegments).
			WithTag("type", head.Type)
	}
	return segs, nil
}

package geom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	ErrTypeUnsupportedFormat = "geom-unsupported-format"
	ErrTypeNoSegments        = "geom-no-segments"
)

// SupportedExts lists the file extensions Load understands.
var SupportedExts = []string{".wkt", ".txt", ".geojson", ".json", ".csv", ".kml"}

// IsSupported reports whether Load can read the file at path.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the segments stored in path, choosing the loader by extension.
func Load(path string) ([]Segment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wkt", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.New("reading wkt failed").
				WithTag("path", path).
				Wrap(err)
		}
		segs, err := ParseWKT(string(data))
		if err != nil {
			return nil, errors.New("loading wkt failed").
				WithType(errors.Type(err)).
				WithTag("path", path).
				Wrap(err)
		}
		return segs, nil

	case ".geojson", ".json":
		return LoadGeoJSON(path)

	case ".csv":
		return LoadCSV(path)

	case ".kml":
		return LoadKML(path)

	default:
		return nil, errors.New("unsupported file format").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("path", path)
	}
}

package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// LoadCSV reads one segment per row. Column detection is case-insensitive:
// x1|src_x|ax, y1|src_y|ay, x2|dst_x|bx and y2|dst_y|by. Rows that do not
// parse are skipped.
func LoadCSV(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("opening csv failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.New("reading csv failed").
			WithType(ErrTypeUnsupportedFormat).
			WithTag("path", path).
			Wrap(err)
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv").
			WithType(ErrTypeNoSegments).
			WithTag("path", path)
	}

	idx := [4]int{-1, -1, -1, -1}
	for i, h := range recs[0] {
		var col int
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x1", "src_x", "ax":
			col = 0
		case "y1", "src_y", "ay":
			col = 1
		case "x2", "dst_x", "bx":
			col = 2
		case "y2", "dst_y", "by":
			col = 3
		default:
			continue
		}
		if idx[col] == -1 {
			idx[col] = i
		}
	}
	for _, i := range idx {
		if i == -1 {
			return nil, errors.New("csv: segment columns not found").
				WithType(ErrTypeUnsupportedFormat).
				WithTag("path", path).
				WithTag("header", recs[0])
		}
	}

	var segs []Segment
rows:
	for _, row := range recs[1:] {
		var v [4]float64
		for c, i := range idx {
			if i >= len(row) {
				continue rows
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil || !isFinite(f) {
				continue rows
			}
			v[c] = f
		}
		segs = append(segs, Segment{
			Src: Point{X: v[0], Y: v[1]},
			Dst: Point{X: v[2], Y: v[3]},
		})
	}

	if len(segs) == 0 {
		return nil, errors.New("csv: no valid segments parsed").
			WithType(ErrTypeNoSegments).
			WithTag("path", path)
	}
	return segs, nil
}

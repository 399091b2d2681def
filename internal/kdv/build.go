package kdv

import (
	"context"
	"iter"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/sync/errgroup"

	"segkd/internal/geom"
)

// Option configures Build.
type Option func(*config)

type config struct {
	parallelism int
}

// WithParallelism builds independent subtrees on up to n goroutines.
func WithParallelism(n int) Option {
	return func(c *config) {
		c.parallelism = max(n, 1)
	}
}

// Build indexes shapes, identified by their slice index. The axis of a node
// at depth d is axes[d%len(axes)].
func Build[S any](axes []geom.Axis, shapes []S, oracle Oracle[S], opts ...Option) (*Tree[S], error) {
	if len(axes) == 0 {
		return nil, errors.New("no split axes").
			WithType(ErrTypeNoAxes)
	}

	cfg := config{parallelism: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()

	frags := make([]Fragment, len(shapes))
	for i, s := range shapes {
		frags[i] = Fragment{
			ShapeID: i,
			Bound:   oracle.BoundingVolume(s),
		}
	}

	b := builder[S]{
		shapes: shapes,
		oracle: oracle,
		axes:   axes,
	}

	root := &node{}
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.parallelism)
	g.Go(func() error {
		return b.build(ctx, g, root, frags, 0)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &Tree[S]{
		shapes: shapes,
		oracle: oracle,
		axes:   axes,
		root:   root,
		stats:  computeStats(root, len(shapes)),
	}
	instrumentBuild(start, t.stats)
	return t, nil
}

type builder[S any] struct {
	shapes []S
	oracle Oracle[S]
	axes   []geom.Axis
}

// build fills n with frags. Each call writes only to its own node, so
// subtrees can be built on separate goroutines.
func (b *builder[S]) build(ctx context.Context, g *errgroup.Group, n *node, frags []Fragment, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	axis := b.axes[depth%len(b.axes)]
	n.axis = axis
	n.depth = depth

	if len(frags) == 0 || depth >= MaxDepth {
		n.leaf = true
		n.frags = frags
		return nil
	}

	cut, ok := b.oracle.CutPoint(axis, corners(frags))
	if !ok {
		n.leaf = true
		n.frags = frags
		return nil
	}

	at := axis.Coord(cut.Coord)
	var left, right, stuck []Fragment
	split := false

	for _, f := range frags {
		switch {
		case axis.Coord(f.Bound.RB) <= at:
			left = append(left, f)

		case axis.Coord(f.Bound.LT) >= at:
			right = append(right, f)

		default:
			halves, ok, err := b.oracle.Split(b.shapes[f.ShapeID], f.Bound, axis, cut.Coord)
			if err != nil {
				return errors.New("splitting fragment failed").
					WithType(ErrTypeSplit).
					WithTag("shape_id", f.ShapeID).
					WithTag("depth", depth).
					WithTag("axis", axis.String()).
					Wrap(err)
			}
			if !ok {
				stuck = append(stuck, f)
				continue
			}
			left = append(left, Fragment{ShapeID: f.ShapeID, Bound: halves.Left})
			right = append(right, Fragment{ShapeID: f.ShapeID, Bound: halves.Right})
			split = true
		}
	}

	// Without a split or a real partition the children would repeat this
	// node forever.
	if !split && (len(left) == 0 || len(right) == 0) {
		n.leaf = true
		n.frags = frags
		return nil
	}

	n.cut = cut
	n.frags = stuck

	if len(right) > 0 {
		n.right = &node{}
		buildRight := func() error {
			return b.build(ctx, g, n.right, right, depth+1)
		}
		if !g.TryGo(buildRight) {
			if err := buildRight(); err != nil {
				return err
			}
		}
	}
	if len(left) > 0 {
		n.left = &node{}
		return b.build(ctx, g, n.left, left, depth+1)
	}
	return nil
}

// corners yields the LT and RB corners of every fragment.
func corners(frags []Fragment) iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for _, f := range frags {
			if !yield(f.Bound.LT) || !yield(f.Bound.RB) {
				return
			}
		}
	}
}

package meshgo

import (
	"context"
	"time"

	"github.com/hupe1980/meshgo/mesh"
)

// Factory collects the input boundary of each named segment and builds a
// partitioned System from it.
//
// Every segment is a view of one shared input mesh of topological dimension
// top-1, so points and boundary elements used by several segments are stored
// once.
type Factory struct {
	dim, top int
	input    *mesh.Mesh
	segments []factorySegment
	byName   map[string]int
	opts     options
}

type factorySegment struct {
	name string
	mesh *mesh.Mesh
}

// NewFactory creates a factory for systems of the given shape.
func NewFactory(dim, top int, opts ...Option) (*Factory, error) {
	if top > dim {
		return nil, &mesh.RangeError{What: "topological dimension", Index: top, Len: dim + 1}
	}
	input, err := mesh.New(dim, top-1)
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	o.logger = o.logger.WithSystem(dim, top)
	return &Factory{
		dim:    dim,
		top:    top,
		input:  input,
		byName: make(map[string]int),
		opts:   o,
	}, nil
}

// Mesh returns the shared input mesh.
func (f *Factory) Mesh() *mesh.Mesh { return f.input }

// Segment returns the input view of the named segment, creating it on first
// use. Boundary elements inserted into the view define the segment.
func (f *Factory) Segment(name string) *mesh.Mesh {
	if i, ok := f.byName[name]; ok {
		return f.segments[i].mesh
	}
	// a view at the parent's own top always exists
	view, _ := f.input.View(f.input.Top())
	f.byName[name] = len(f.segments)
	f.segments = append(f.segments, factorySegment{name: name, mesh: view})
	return view
}

// SegmentNames returns the segment names in creation order.
func (f *Factory) SegmentNames() []string {
	names := make([]string, len(f.segments))
	for i, s := range f.segments {
		names[i] = s.name
	}
	return names
}

// Create triangulates the input and reconstructs segments, interfaces and
// the Voronoi dual into a new System. Only dim=2, top=2 is implemented.
func (f *Factory) Create(ctx context.Context) (*System, error) {
	if f.dim != 2 || f.top != 2 {
		return nil, &ErrDimension{Dim: f.dim, Top: f.top}
	}

	start := time.Now()
	r := &reconstruction{f: f, log: f.opts.logger}
	sys, err := r.run(ctx)
	f.opts.metricsCollector.RecordReconstruct(r.stats, time.Since(start), err)
	f.opts.logger.LogReconstruct(ctx, r.stats, err)
	if err != nil {
		return nil, err
	}
	return sys, nil
}

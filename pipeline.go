package reed

// postStage pairs a post-process kernel with its padding mode.
type postStage struct {
	kernel  Kernel
	padding Padding
}

// Pipeline orchestrates stroke stabilization: an ordered list of real-time
// filters, an ordered list of post-process kernels, and a growing buffer of
// accepted points for the current stroke.
//
// Order of addition is order of execution. Filters compose sequentially (the
// output of one is the input of the next), so reordering changes results.
// Finish feeds the buffer through the post-process kernels in order and
// resets the pipeline for the next stroke.
//
// A Pipeline is always executable; there is no build step. Filters and
// post-processors may be added, removed, or retuned at any time, including
// mid-stroke. A Pipeline owns its filters and buffer exclusively and is not
// safe for concurrent use; multi-touch callers create one Pipeline per
// pointer stream.
type Pipeline struct {
	filters []Filter
	posts   []postStage
	buffer  []PointerPoint
}

// NewPipeline creates an empty pipeline. With no filters and no
// post-processors it is a pass-through that simply buffers points.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddFilter appends a real-time filter to the chain. Returns the pipeline
// for chaining.
func (p *Pipeline) AddFilter(f Filter) *Pipeline {
	p.filters = append(p.filters, f)
	return p
}

// AddPostProcess appends a post-process smoothing stage applied by Finish.
// Returns the pipeline for chaining.
func (p *Pipeline) AddPostProcess(k Kernel, padding Padding) *Pipeline {
	p.posts = append(p.posts, postStage{kernel: k, padding: padding})
	return p
}

// RemoveFilter removes the first filter with the given type tag and reports
// whether one was found.
func (p *Pipeline) RemoveFilter(t FilterType) bool {
	for i, f := range p.filters {
		if f.Type() == t {
			p.filters = append(p.filters[:i], p.filters[i+1:]...)
			return true
		}
	}
	return false
}

// RemovePostProcess removes the first post-process stage whose kernel has the
// given type tag and reports whether one was found.
func (p *Pipeline) RemovePostProcess(t KernelType) bool {
	for i, st := range p.posts {
		if st.kernel.Type() == t {
			p.posts = append(p.posts[:i], p.posts[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateFilter applies a partial parameter update to the first filter with
// the given type tag, preserving its running internal state. Reports whether
// a filter was found and updated; a filter without the Updatable capability
// is left untouched and reported as false.
func (p *Pipeline) UpdateFilter(t FilterType, params FilterParams) bool {
	for _, f := range p.filters {
		if f.Type() != t {
			continue
		}
		if u, ok := f.(Updatable); ok {
			u.UpdateParams(params)
			return true
		}
		return false
	}
	return false
}

// Filters returns the current real-time filter chain in execution order.
// The slice is a snapshot; the filter instances are shared.
func (p *Pipeline) Filters() []Filter {
	out := make([]Filter, len(p.filters))
	copy(out, p.filters)
	return out
}

// Process threads a point through each real-time filter in order. Any filter
// may reject, which short-circuits the chain and returns false; the point is
// then neither forwarded nor buffered. On acceptance the final result is
// appended to the stroke buffer and returned.
func (p *Pipeline) Process(pt PointerPoint) (PointerPoint, bool) {
	for _, f := range p.filters {
		var ok bool
		pt, ok = f.Process(pt)
		if !ok {
			return PointerPoint{}, false
		}
	}
	p.buffer = append(p.buffer, pt)
	return pt, true
}

// ProcessAll applies Process to each point in order and collects the accepted
// results. Acceptance of each point is independent and order-preserving.
func (p *Pipeline) ProcessAll(points []PointerPoint) []PointerPoint {
	out := make([]PointerPoint, 0, len(points))
	for _, pt := range points {
		if res, ok := p.Process(pt); ok {
			out = append(out, res)
		}
	}
	return out
}

// Buffer returns a snapshot copy of the accepted points of the current
// stroke.
func (p *Pipeline) Buffer() []PointerPoint {
	out := make([]PointerPoint, len(p.buffer))
	copy(out, p.buffer)
	return out
}

// FlushBuffer empties the stroke buffer and returns its prior contents.
func (p *Pipeline) FlushBuffer() []PointerPoint {
	out := p.buffer
	p.buffer = nil
	return out
}

// Reset clears the stroke buffer and every filter's internal memory. The
// filter and post-processor lists are untouched, so the pipeline is
// immediately ready for the next stroke.
func (p *Pipeline) Reset() {
	for _, f := range p.filters {
		f.Reset()
	}
	p.buffer = p.buffer[:0]
}

// Clear empties the filter list, the post-processor list, and the stroke
// buffer, tearing the pipeline down to a pass-through.
func (p *Pipeline) Clear() {
	p.filters = nil
	p.posts = nil
	p.buffer = nil
}

// Finish ends the current stroke: the buffered points are run through each
// post-process kernel in list order (the output of one stage feeds the
// next), the pipeline is fully Reset, and the smoothed geometry is returned.
// This is the only operation that produces the final, display-quality
// stroke. Timestamps and pressure are dropped at the buffer-to-geometry
// boundary; the result is not re-timeable.
func (p *Pipeline) Finish() []Point {
	points := make([]Point, len(p.buffer))
	for i, pt := range p.buffer {
		points[i] = pt.Pos()
	}
	for _, st := range p.posts {
		points = Smooth(points, SmoothConfig{Kernel: st.kernel, Padding: st.padding})
	}
	p.Reset()
	return points
}

// Package reed smooths noisy pointer and stylus input into visually stable
// strokes for [Ebitengine] drawing and handwriting applications.
//
// Reed operates in two layers. A [Pipeline] threads each incoming timestamped
// sample through an ordered chain of causal, real-time filters (noise gate,
// exponential smoothing, Kalman estimation, dead-zone anchoring, one-euro
// adaptive low-pass, least-squares motion prediction) for a responsive live
// preview, and accumulates accepted points in a per-stroke buffer. When the
// stroke ends, [Pipeline.Finish] runs the buffer through an ordered list of
// convolution kernels (box, triangle, gaussian, bilateral) via [Smooth] and
// returns the final display-quality geometry.
//
// # Quick start
//
//	pipe := reed.NewPipeline().
//		AddFilter(reed.NewNoiseGate(1.5)).
//		AddFilter(reed.NewOneEuro(1.0, 0.007)).
//		AddPostProcess(reed.GaussianKernel(7, 0), reed.PaddingReflect)
//
//	// Per input event:
//	if pt, ok := pipe.Process(reed.PointerPoint{X: x, Y: y, Timestamp: t}); ok {
//		drawPreview(pt)
//	}
//
//	// On pointer release:
//	stroke := pipe.Finish()
//	commitStroke(stroke)
//
// Everything is synchronous and single-threaded; a Pipeline owns its filters
// and buffer exclusively. Multi-touch callers create one Pipeline per pointer
// stream ([Capture] does this automatically).
//
// # Ebitengine integration
//
// [Capture] polls mouse and touch state from an Update tick and drives one
// Pipeline per pointer, firing stroke lifecycle callbacks. [Batcher] defers
// filtering to the next rendering opportunity via an injected [Scheduler].
// [Level] maps a single 0-100 stabilization intensity to a ready-made
// Pipeline for apps that do not want to hand-tune filter parameters.
//
// Reed never validates configuration defensively: out-of-range parameters
// produce degenerate but defined behavior, numeric edge cases (zero time
// deltas, singular fit matrices, zero-sum kernel weights) are recovered
// locally, and point rejection by a filter is a normal boolean result, not an
// error.
//
// [Ebitengine]: https://ebitengine.org
package reed

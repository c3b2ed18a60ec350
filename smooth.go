package reed

// Padding selects how out-of-range neighbor points are synthesized at stroke
// boundaries during convolution.
type Padding uint8

const (
	// PaddingReflect mirrors interior points back across the boundary
	// (index-based reflection). The default.
	PaddingReflect Padding = iota
	// PaddingEdge repeats the first/last point.
	PaddingEdge
	// PaddingZero pads with the origin point (0, 0).
	PaddingZero
)

// SmoothConfig configures a Smooth call.
//
// The zero value of FreeEndpoints means endpoint preservation is on by
// default: padding modes can pull stroke endpoints away from where the user
// actually lifted the pen, which is visually wrong for a finished stroke, so
// after convolution the first and last output point are forced to exactly
// equal the first and last input point. Set FreeEndpoints to let them drift.
type SmoothConfig struct {
	Kernel        Kernel
	Padding       Padding
	FreeEndpoints bool
}

// Smooth applies a convolution kernel to a finite point sequence. It is
// non-causal (each output may reference later input points) and side-effect
// free. The output length always equals the input length.
//
// Empty input returns nil. A size-1 kernel (or nil kernel) is the identity:
// the input is returned as a copy.
func Smooth(points []Point, cfg SmoothConfig) []Point {
	n := len(points)
	if n == 0 {
		return nil
	}

	size := 1
	if cfg.Kernel != nil {
		size = cfg.Kernel.Size()
	}
	if size <= 1 {
		out := make([]Point, n)
		copy(out, points)
		return out
	}

	half := size / 2
	padded := make([]Point, n+2*half)
	copy(padded[half:], points)
	for i := 1; i <= half; i++ {
		padded[half-i] = padPoint(points, -i, cfg.Padding)
		padded[half+n-1+i] = padPoint(points, n-1+i, cfg.Padding)
	}

	out := make([]Point, n)
	switch k := cfg.Kernel.(type) {
	case FixedKernel:
		for i := 0; i < n; i++ {
			out[i] = convolve(padded[i:i+size], k.Weights)
		}
	case AdaptiveKernel:
		for i := 0; i < n; i++ {
			window := padded[i : i+size]
			weights := k.ComputeWeights(points[i], window)
			out[i] = convolve(window, weights)
		}
	default:
		copy(out, points)
	}

	if !cfg.FreeEndpoints {
		out[0] = points[0]
		out[n-1] = points[n-1]
	}
	return out
}

// convolve returns the weighted sum of window points. The two slices may
// differ in length; only the overlapping prefix contributes.
func convolve(window []Point, weights []float64) Point {
	var p Point
	m := len(weights)
	if len(window) < m {
		m = len(window)
	}
	for j := 0; j < m; j++ {
		p.X += weights[j] * window[j].X
		p.Y += weights[j] * window[j].Y
	}
	return p
}

// padPoint synthesizes the point at virtual index i (outside [0, n)) for the
// given padding mode.
func padPoint(points []Point, i int, mode Padding) Point {
	n := len(points)
	switch mode {
	case PaddingEdge:
		if i < 0 {
			return points[0]
		}
		return points[n-1]
	case PaddingZero:
		return Point{}
	default: // PaddingReflect
		return points[reflectIndex(i, n)]
	}
}

// reflectIndex maps an out-of-range index into [0, n) by mirroring across the
// sequence boundaries. Repeated reflection handles windows wider than the
// sequence itself.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

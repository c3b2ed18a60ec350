package reed

import "math"

// KernelType identifies a convolution kernel algorithm.
type KernelType uint8

const (
	KernelBox       KernelType = iota // uniform weights
	KernelTriangle                    // weights increase linearly toward the center
	KernelGaussian                    // normal-distribution weights
	KernelBilateral                   // spatial x value-similarity weights (adaptive)
)

// Kernel is a set of convolution weights applied by Smooth along a stroke's
// point index (sequence position, not a spatial grid). Two variants exist:
// FixedKernel carries its weights up front; AdaptiveKernel recomputes them
// per window from run-time data. Smooth resolves the variant by type switch.
type Kernel interface {
	// Type returns the kernel's algorithm tag.
	Type() KernelType
	// Size returns the window length. Always odd.
	Size() int
}

// FixedKernel is a kernel whose weights are known at construction time.
// Weights have odd length and sum to 1.
type FixedKernel struct {
	Kind    KernelType
	Weights []float64
}

// Type returns the kernel's algorithm tag.
func (k FixedKernel) Type() KernelType { return k.Kind }

// Size returns the window length.
func (k FixedKernel) Size() int { return len(k.Weights) }

// AdaptiveKernel is a kernel whose weights depend on the data under the
// window. ComputeWeights receives the window's center point and its Span
// neighbors (the center included, at index Span/2) and returns Span weights
// summing to 1 for any non-degenerate neighbor set.
type AdaptiveKernel struct {
	Kind           KernelType
	Span           int
	ComputeWeights func(center Point, neighbors []Point) []float64
}

// Type returns the kernel's algorithm tag.
func (k AdaptiveKernel) Type() KernelType { return k.Kind }

// Size returns the window length.
func (k AdaptiveKernel) Size() int { return k.Span }

// forceOdd coerces a requested kernel size to the nearest odd value >= 1.
// Even sizes round up (4 -> 5), never down.
func forceOdd(size int) int {
	if size < 1 {
		return 1
	}
	if size%2 == 0 {
		return size + 1
	}
	return size
}

// BoxKernel returns a uniform kernel: every point in the window contributes
// equally. Even sizes are rounded up to the next odd value.
func BoxKernel(size int) FixedKernel {
	size = forceOdd(size)
	weights := make([]float64, size)
	w := 1.0 / float64(size)
	for i := range weights {
		weights[i] = w
	}
	return FixedKernel{Kind: KernelBox, Weights: weights}
}

// TriangleKernel returns a kernel whose weights increase linearly toward the
// window center, normalized to sum 1. Even sizes are rounded up.
func TriangleKernel(size int) FixedKernel {
	size = forceOdd(size)
	half := size / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		w := float64(half + 1 - abs(i-half))
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return FixedKernel{Kind: KernelTriangle, Weights: weights}
}

// GaussianKernel returns a kernel with normal-distribution weights,
// normalized to sum 1. Even sizes are rounded up. A sigma <= 0 selects the
// default of size/3 (computed after odd coercion).
func GaussianKernel(size int, sigma float64) FixedKernel {
	size = forceOdd(size)
	if size == 1 {
		return FixedKernel{Kind: KernelGaussian, Weights: []float64{1}}
	}
	if sigma <= 0 {
		sigma = float64(size) / 3
	}
	half := size / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		d := float64(i - half)
		w := math.Exp(-(d * d) / (2 * sigma * sigma))
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return FixedKernel{Kind: KernelGaussian, Weights: weights}
}

// BilateralKernel returns an adaptive kernel that multiplies a fixed spatial
// weight (gaussian over index distance, sigmaSpace) with a per-call value
// weight (gaussian over Euclidean distance from the window center,
// sigmaValue). Neighbors far from the center's position are down-weighted
// regardless of index proximity, so sharp direction changes survive smoothing
// that a fixed kernel would blur away.
//
// Even sizes are rounded up. A sigmaSpace <= 0 selects the default of size/3.
func BilateralKernel(size int, sigmaValue, sigmaSpace float64) AdaptiveKernel {
	size = forceOdd(size)
	if sigmaSpace <= 0 {
		sigmaSpace = float64(size) / 3
	}
	if sigmaValue <= 0 {
		sigmaValue = 1e-9
	}
	spatial := GaussianKernel(size, sigmaSpace).Weights

	compute := func(center Point, neighbors []Point) []float64 {
		weights := make([]float64, size)
		var sum float64
		for i := range weights {
			if i >= len(neighbors) {
				break
			}
			d := dist(neighbors[i].X, neighbors[i].Y, center.X, center.Y)
			w := spatial[i] * math.Exp(-(d*d)/(2*sigmaValue*sigmaValue))
			weights[i] = w
			sum += w
		}
		// The weight at the center is always spatial[half]*1 > 0, so a zero
		// sum should not occur; skip normalization rather than divide by zero.
		if sum > 0 {
			for i := range weights {
				weights[i] /= sum
			}
		}
		return weights
	}

	return AdaptiveKernel{Kind: KernelBilateral, Span: size, ComputeWeights: compute}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

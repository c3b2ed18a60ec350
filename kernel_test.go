package reed

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertWeightsSum(t *testing.T, name string, weights []float64) {
	t.Helper()
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1) > epsilon {
		t.Errorf("%s weights sum = %v, want 1 (weights %v)", name, sum, weights)
	}
}

// --- Odd-size coercion ---

func TestKernelOddSizeCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"even rounds up", 4, 5},
		{"odd unchanged", 5, 5},
		{"one", 1, 1},
		{"two rounds up", 2, 3},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoxKernel(tt.in).Size(); got != tt.want {
				t.Errorf("BoxKernel(%d).Size() = %d, want %d", tt.in, got, tt.want)
			}
			if got := TriangleKernel(tt.in).Size(); got != tt.want {
				t.Errorf("TriangleKernel(%d).Size() = %d, want %d", tt.in, got, tt.want)
			}
			if got := GaussianKernel(tt.in, 0).Size(); got != tt.want {
				t.Errorf("GaussianKernel(%d).Size() = %d, want %d", tt.in, got, tt.want)
			}
			if got := BilateralKernel(tt.in, 1, 0).Size(); got != tt.want {
				t.Errorf("BilateralKernel(%d).Size() = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// --- Normalization ---

func TestFixedKernelNormalization(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7, 9, 15, 31} {
		assertWeightsSum(t, "box", BoxKernel(size).Weights)
		assertWeightsSum(t, "triangle", TriangleKernel(size).Weights)
		assertWeightsSum(t, "gaussian", GaussianKernel(size, 0).Weights)
	}
}

// --- Box ---

func TestBoxKernelUniform(t *testing.T) {
	k := BoxKernel(5)
	for i, w := range k.Weights {
		assertNear(t, "box weight", w, 0.2)
		_ = i
	}
	if k.Type() != KernelBox {
		t.Errorf("Type() = %v, want KernelBox", k.Type())
	}
}

// --- Triangle ---

func TestTriangleKernelShape(t *testing.T) {
	k := TriangleKernel(5)
	// Raw weights 1,2,3,2,1 normalized by 9.
	want := []float64{1.0 / 9, 2.0 / 9, 3.0 / 9, 2.0 / 9, 1.0 / 9}
	for i := range want {
		assertNear(t, "triangle weight", k.Weights[i], want[i])
	}
}

func TestTriangleKernelSymmetricIncreasing(t *testing.T) {
	k := TriangleKernel(9)
	half := len(k.Weights) / 2
	for i := 0; i < half; i++ {
		if k.Weights[i] >= k.Weights[i+1] {
			t.Errorf("weights not strictly increasing toward center: w[%d]=%v >= w[%d]=%v",
				i, k.Weights[i], i+1, k.Weights[i+1])
		}
		assertNear(t, "symmetry", k.Weights[i], k.Weights[len(k.Weights)-1-i])
	}
}

// --- Gaussian ---

func TestGaussianKernelDegenerate(t *testing.T) {
	k := GaussianKernel(1, 0)
	if len(k.Weights) != 1 {
		t.Fatalf("size-1 gaussian has %d weights, want 1", len(k.Weights))
	}
	assertNear(t, "degenerate weight", k.Weights[0], 1)
}

func TestGaussianKernelPeakAtCenter(t *testing.T) {
	k := GaussianKernel(7, 0)
	center := len(k.Weights) / 2
	for i, w := range k.Weights {
		if i != center && w >= k.Weights[center] {
			t.Errorf("weight[%d]=%v not below center weight %v", i, w, k.Weights[center])
		}
		assertNear(t, "symmetry", w, k.Weights[len(k.Weights)-1-i])
	}
}

func TestGaussianKernelExplicitSigma(t *testing.T) {
	// Larger sigma flattens the kernel.
	narrow := GaussianKernel(7, 0.5)
	wide := GaussianKernel(7, 10)
	if narrow.Weights[3] <= wide.Weights[3] {
		t.Errorf("narrow center %v should exceed wide center %v", narrow.Weights[3], wide.Weights[3])
	}
}

// --- Bilateral ---

func TestBilateralKernelWeightsSum(t *testing.T) {
	k := BilateralKernel(5, 10, 0)
	neighbors := []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {40, 40}}
	w := k.ComputeWeights(Point{2, 2}, neighbors)
	assertWeightsSum(t, "bilateral", w)
}

func TestBilateralKernelDownweightsOutliers(t *testing.T) {
	k := BilateralKernel(5, 5, 0)
	// Symmetric index positions, but the last neighbor is far away in value.
	neighbors := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {200, 0}}
	w := k.ComputeWeights(Point{2, 0}, neighbors)
	if w[4] >= w[0] {
		t.Errorf("distant neighbor weight %v should be below the symmetric near one %v", w[4], w[0])
	}
}

func TestBilateralKernelIdenticalNeighbors(t *testing.T) {
	// All neighbors at the center: pure spatial weights, still normalized.
	k := BilateralKernel(5, 1, 0)
	p := Point{7, 7}
	w := k.ComputeWeights(p, []Point{p, p, p, p, p})
	assertWeightsSum(t, "identical-neighbor bilateral", w)
	spatial := GaussianKernel(5, 0).Weights
	for i := range w {
		assertNear(t, "spatial fallback", w[i], spatial[i])
	}
}

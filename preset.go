package reed

import "github.com/tanema/gween/ease"

// Level maps a single 0-100 stabilization intensity to a ready-made
// Pipeline, for applications that expose one slider instead of raw filter
// parameters. Intensity 0 returns an empty pass-through pipeline; values are
// clamped to [0, 100].
//
// The parameter curves are eased rather than linear so the low end of the
// slider stays responsive while the high end ramps smoothing steeply:
//
//   - NoiseGate minDistance ramps 0.5 -> 3.5 px (InQuad)
//   - OneEuro minCutoff falls 2.5 -> 0.25 Hz (OutQuad), beta falls
//     0.05 -> 0.002 (OutQuad)
//   - Above intensity 40 a gaussian post-process is added, window 5 -> 13
//     (InQuad, coerced odd)
//   - Above intensity 70 a StringAnchor dead zone is added, string length
//     4 -> 24 px (InQuad over the 70-100 span)
//
// Every choice here is plain configuration over the public constructors;
// callers wanting different trade-offs should build their own Pipeline.
func Level(intensity float64) *Pipeline {
	if intensity < 0 {
		intensity = 0
	} else if intensity > 100 {
		intensity = 100
	}

	pipe := NewPipeline()
	if intensity == 0 {
		return pipe
	}
	t := float32(intensity / 100)

	minDistance := float64(ease.InQuad(t, 0.5, 3.0, 1))
	minCutoff := float64(ease.OutQuad(t, 2.5, -2.25, 1))
	beta := float64(ease.OutQuad(t, 0.05, -0.048, 1))

	pipe.AddFilter(NewNoiseGate(minDistance))
	pipe.AddFilter(NewOneEuro(minCutoff, beta))

	if intensity > 70 {
		// Re-span the 70-100 range so the dead zone eases in from zero.
		tt := float32((intensity - 70) / 30)
		stringLength := float64(ease.InQuad(tt, 4, 20, 1))
		pipe.AddFilter(NewStringAnchor(stringLength))
	}

	if intensity > 40 {
		size := int(ease.InQuad(t, 5, 8, 1))
		pipe.AddPostProcess(GaussianKernel(size, 0), PaddingReflect)
	}

	return pipe
}

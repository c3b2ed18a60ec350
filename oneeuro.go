package reed

import "math"

// defaultSampleRate is assumed when no usable time delta exists (first
// sample, or zero/decreasing timestamps). 60Hz matches typical display and
// pointer event rates.
const defaultSampleRate = 60.0

// OneEuro is a velocity-adaptive low-pass filter (the "1€ filter"): at low
// speeds it smooths aggressively to kill jitter, at high speeds it raises its
// cutoff frequency to minimize lag. Per axis it low-passes the value's
// derivative, derives an adaptive cutoff MinCutoff + Beta*|derivative|, and
// applies an exponential smoothing whose coefficient follows from that
// cutoff and the sample interval.
//
// MinCutoff (Hz) sets smoothing at rest; lower is smoother. Beta sets how
// fast the cutoff opens with speed; higher is more responsive. DCutoff (Hz)
// smooths the derivative estimate itself and rarely needs changing from its
// default of 1. Typical drawing values: MinCutoff around 1, Beta 0.001-0.1.
//
// Pressure, when present, uses a fixed (non-adaptive) coefficient derived
// from MinCutoff alone. Timestamps are milliseconds.
type OneEuro struct {
	MinCutoff float64
	Beta      float64
	DCutoff   float64

	ax, ay   oneEuroAxis
	pressure lowPass
	lastT    float64
	started  bool
}

// lowPass is a first-order exponential smoother with lazy initialization.
type lowPass struct {
	value  float64
	primed bool
}

// filter smooths x with coefficient alpha and returns the new value.
func (l *lowPass) filter(x, alpha float64) float64 {
	if !l.primed {
		l.value = x
		l.primed = true
		return x
	}
	l.value = alpha*x + (1-alpha)*l.value
	return l.value
}

// oneEuroAxis holds the value and derivative smoothers for one axis.
type oneEuroAxis struct {
	val   lowPass
	deriv lowPass
}

// NewOneEuro creates a OneEuro filter. A minCutoff <= 0 selects the default
// of 1.0; DCutoff defaults to 1.0.
func NewOneEuro(minCutoff, beta float64) *OneEuro {
	if minCutoff <= 0 {
		minCutoff = 1.0
	}
	return &OneEuro{MinCutoff: minCutoff, Beta: beta, DCutoff: 1.0}
}

// smoothingAlpha converts a cutoff frequency (Hz) and a sample interval
// (seconds) to an exponential smoothing coefficient:
// alpha = 1 / (1 + tau/dt) with tau = 1/(2*pi*cutoff).
func smoothingAlpha(cutoff, dt float64) float64 {
	tau := 1 / (2 * math.Pi * cutoff)
	return 1 / (1 + tau/dt)
}

// Process filters the point. The first sample primes the smoothers and
// passes through unchanged.
func (f *OneEuro) Process(p PointerPoint) (PointerPoint, bool) {
	dt := 1 / defaultSampleRate
	if f.started {
		if d := (p.Timestamp - f.lastT) / 1000; d > 0 {
			dt = d
		}
	}
	f.lastT = p.Timestamp
	f.started = true

	out := p
	out.X = f.ax.filter(p.X, dt, f.MinCutoff, f.Beta, f.DCutoff)
	out.Y = f.ay.filter(p.Y, dt, f.MinCutoff, f.Beta, f.DCutoff)
	if p.HasPressure {
		out.Pressure = f.pressure.filter(p.Pressure, smoothingAlpha(f.MinCutoff, dt))
	}
	return out, true
}

// filter runs the adaptive-cutoff smoothing for one axis.
func (a *oneEuroAxis) filter(x, dt, minCutoff, beta, dCutoff float64) float64 {
	var dx float64
	if a.val.primed {
		dx = (x - a.val.value) / dt
	}
	edx := a.deriv.filter(dx, smoothingAlpha(dCutoff, dt))
	cutoff := minCutoff + beta*math.Abs(edx)
	return a.val.filter(x, smoothingAlpha(cutoff, dt))
}

// Reset clears all smoothers and the last timestamp.
func (f *OneEuro) Reset() {
	f.ax = oneEuroAxis{}
	f.ay = oneEuroAxis{}
	f.pressure = lowPass{}
	f.lastT = 0
	f.started = false
}

// Type returns FilterOneEuro.
func (f *OneEuro) Type() FilterType { return FilterOneEuro }

// UpdateParams applies a partial parameter update.
func (f *OneEuro) UpdateParams(p FilterParams) {
	if p.MinCutoff != nil {
		f.MinCutoff = *p.MinCutoff
	}
	if p.Beta != nil {
		f.Beta = *p.Beta
	}
	if p.DCutoff != nil {
		f.DCutoff = *p.DCutoff
	}
}

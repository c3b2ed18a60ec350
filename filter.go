package reed

// FilterType identifies a real-time filter algorithm. Pipeline lookups
// (remove, update) match on this tag.
type FilterType uint8

const (
	FilterNoiseGate     FilterType = iota // distance threshold rejection
	FilterEMA                             // exponential moving average
	FilterKalman                          // position+velocity Kalman estimate
	FilterMovingAverage                   // sliding-window arithmetic mean
	FilterStringAnchor                    // dead-zone anchor tracking
	FilterOneEuro                         // velocity-adaptive low-pass
	FilterPrediction                      // least-squares motion prediction
)

// Filter is a stateful, causal point transformer. Process consumes samples
// one at a time in arrival order; it returns the transformed point and true,
// or the zero point and false when the sample is rejected. Rejection is a
// normal, silent result, not an error.
//
// Each filter instance owns its internal state exclusively; nothing is shared
// across instances. Reset clears all internal memory, so the next point is
// treated as a fresh stream start.
type Filter interface {
	Process(p PointerPoint) (PointerPoint, bool)
	Reset()
	Type() FilterType
}

// FilterParams is a partial parameter update for a running filter. Nil
// fields are left unchanged; the names mirror the public fields on the
// filter structs. Applied via the Updatable capability, typically through
// Pipeline.UpdateFilter.
type FilterParams struct {
	MinDistance      *float64 // NoiseGate
	Alpha            *float64 // EMA
	ProcessNoise     *float64 // Kalman
	MeasurementNoise *float64 // Kalman
	MaxVelocity      *float64 // Kalman
	WindowSize       *int     // MovingAverage
	StringLength     *float64 // StringAnchor
	MinCutoff        *float64 // OneEuro
	Beta             *float64 // OneEuro
	DCutoff          *float64 // OneEuro
	HistorySize      *int     // Prediction
	PredictionFactor *float64 // Prediction
	Smoothing        *float64 // Prediction
}

// Updatable is the capability of accepting live parameter updates without
// losing running internal state. Updates take effect on the next Process
// call, except MovingAverage, which trims its window immediately when
// WindowSize shrinks.
type Updatable interface {
	UpdateParams(p FilterParams)
}

// --- NoiseGate ---

// NoiseGate rejects points closer than MinDistance to the last accepted
// point, suppressing sensor jitter while the pointer is at rest. A point at
// exactly MinDistance is accepted. The first point of a stream is always
// accepted.
type NoiseGate struct {
	MinDistance float64

	last    PointerPoint
	hasLast bool
}

// NewNoiseGate creates a NoiseGate. Typical minDistance values are 0.5-5
// pixels; zero accepts everything.
func NewNoiseGate(minDistance float64) *NoiseGate {
	return &NoiseGate{MinDistance: minDistance}
}

// Process accepts or rejects the point by distance from the last accepted one.
func (f *NoiseGate) Process(p PointerPoint) (PointerPoint, bool) {
	if f.hasLast && dist(p.X, p.Y, f.last.X, f.last.Y) < f.MinDistance {
		return PointerPoint{}, false
	}
	f.last = p
	f.hasLast = true
	return p, true
}

// Reset clears the last-accepted point.
func (f *NoiseGate) Reset() {
	f.last = PointerPoint{}
	f.hasLast = false
}

// Type returns FilterNoiseGate.
func (f *NoiseGate) Type() FilterType { return FilterNoiseGate }

// UpdateParams applies a partial parameter update.
func (f *NoiseGate) UpdateParams(p FilterParams) {
	if p.MinDistance != nil {
		f.MinDistance = *p.MinDistance
	}
}

// --- EMA ---

// EMA applies an exponential moving average per axis:
// y = alpha*x + (1-alpha)*yPrev. Alpha in [0, 1]: 1 passes input through
// unchanged, 0 freezes the output at its current value. Pressure is blended
// the same way when both the incoming sample and the previous output carry
// pressure. The first point of a stream passes unchanged.
type EMA struct {
	Alpha float64

	last    PointerPoint
	hasLast bool
}

// NewEMA creates an EMA filter. Typical alpha values are 0.1-0.6.
func NewEMA(alpha float64) *EMA {
	return &EMA{Alpha: alpha}
}

// Process blends the point with the previous output.
func (f *EMA) Process(p PointerPoint) (PointerPoint, bool) {
	if !f.hasLast {
		f.last = p
		f.hasLast = true
		return p, true
	}
	out := p
	a := f.Alpha
	out.X = a*p.X + (1-a)*f.last.X
	out.Y = a*p.Y + (1-a)*f.last.Y
	if p.HasPressure && f.last.HasPressure {
		out.Pressure = a*p.Pressure + (1-a)*f.last.Pressure
	}
	f.last = out
	return out, true
}

// Reset clears the previous output.
func (f *EMA) Reset() {
	f.last = PointerPoint{}
	f.hasLast = false
}

// Type returns FilterEMA.
func (f *EMA) Type() FilterType { return FilterEMA }

// UpdateParams applies a partial parameter update.
func (f *EMA) UpdateParams(p FilterParams) {
	if p.Alpha != nil {
		f.Alpha = *p.Alpha
	}
}

// --- MovingAverage ---

// MovingAverage outputs the arithmetic mean of the last WindowSize accepted
// points. Pressure is averaged only over the window points that carry one.
// A WindowSize of 1 (or less) is a pass-through.
type MovingAverage struct {
	WindowSize int

	window []PointerPoint
}

// NewMovingAverage creates a MovingAverage over the given window size.
// Typical values are 2-10; larger windows smooth more but lag more.
func NewMovingAverage(windowSize int) *MovingAverage {
	return &MovingAverage{WindowSize: windowSize}
}

// Process appends the point to the window, evicts beyond WindowSize, and
// returns the window mean.
func (f *MovingAverage) Process(p PointerPoint) (PointerPoint, bool) {
	f.window = append(f.window, p)
	f.trim()

	out := p
	var sx, sy, sp float64
	np := 0
	for _, w := range f.window {
		sx += w.X
		sy += w.Y
		if w.HasPressure {
			sp += w.Pressure
			np++
		}
	}
	n := float64(len(f.window))
	out.X = sx / n
	out.Y = sy / n
	out.HasPressure = np > 0
	if np > 0 {
		out.Pressure = sp / float64(np)
	} else {
		out.Pressure = 0
	}
	return out, true
}

// trim evicts the oldest points until the window fits WindowSize.
func (f *MovingAverage) trim() {
	limit := f.WindowSize
	if limit < 1 {
		limit = 1
	}
	if over := len(f.window) - limit; over > 0 {
		f.window = append(f.window[:0], f.window[over:]...)
	}
}

// Reset empties the window.
func (f *MovingAverage) Reset() {
	f.window = f.window[:0]
}

// Type returns FilterMovingAverage.
func (f *MovingAverage) Type() FilterType { return FilterMovingAverage }

// UpdateParams applies a partial parameter update. Shrinking WindowSize
// trims the running window immediately.
func (f *MovingAverage) UpdateParams(p FilterParams) {
	if p.WindowSize != nil {
		f.WindowSize = *p.WindowSize
		f.trim()
	}
}

// --- StringAnchor ---

// StringAnchor implements dead-zone ("lazy brush") stabilization: the output
// is an anchor tethered to the pointer by a string of length StringLength.
// While the pointer stays within the string's reach, the anchor (and the
// output position) does not move at all; once the pointer pulls further, the
// anchor follows along the direction vector by exactly the excess distance.
// A point at exactly StringLength away leaves the anchor in place.
//
// Pressure and timestamp always come from the incoming sample.
type StringAnchor struct {
	StringLength float64

	anchor    Point
	hasAnchor bool
}

// NewStringAnchor creates a StringAnchor. Typical string lengths are 5-40
// pixels; larger values trade responsiveness for stability.
func NewStringAnchor(stringLength float64) *StringAnchor {
	return &StringAnchor{StringLength: stringLength}
}

// Process pulls the anchor toward the point when the string is taut.
func (f *StringAnchor) Process(p PointerPoint) (PointerPoint, bool) {
	if !f.hasAnchor {
		f.anchor = p.Pos()
		f.hasAnchor = true
		return p, true
	}
	d := dist(p.X, p.Y, f.anchor.X, f.anchor.Y)
	if d > f.StringLength {
		pull := (d - f.StringLength) / d
		f.anchor.X += (p.X - f.anchor.X) * pull
		f.anchor.Y += (p.Y - f.anchor.Y) * pull
	}
	out := p
	out.X = f.anchor.X
	out.Y = f.anchor.Y
	return out, true
}

// Reset clears the anchor; the next point becomes the new anchor.
func (f *StringAnchor) Reset() {
	f.anchor = Point{}
	f.hasAnchor = false
}

// Type returns FilterStringAnchor.
func (f *StringAnchor) Type() FilterType { return FilterStringAnchor }

// UpdateParams applies a partial parameter update.
func (f *StringAnchor) UpdateParams(p FilterParams) {
	if p.StringLength != nil {
		f.StringLength = *p.StringLength
	}
}

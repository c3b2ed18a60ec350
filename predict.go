package reed

import "math"

// singularDetThreshold is the determinant magnitude below which the normal
// equations of the quadratic fit are treated as singular and the filter falls
// back to a plain linear slope.
const singularDetThreshold = 1e-10

// minPredictDT is the time-delta floor in seconds for extrapolation.
const minPredictDT = 1e-3

// Prediction extrapolates the pointer slightly ahead of its measured
// position to hide filter-induced lag. It keeps a bounded history of recent
// samples, fits a quadratic to (time, x) and (time, y) by closed-form least
// squares, evaluates velocity and acceleration at the latest sample, and
// predicts
//
//	current + v*dt*PredictionFactor + 0.5*a*dt^2*PredictionFactor
//
// The prediction is then blended with the previous output by Smoothing
// (0 = raw prediction, 1 = frozen). With only two samples a linear fit is
// used; a single sample passes through unchanged. A singular fit matrix
// falls back to the linear slope.
//
// PredictionFactor in [0, 1] scales how far ahead to reach; typical values
// are 0.3-0.8. HistorySize bounds the fit window (the filter keeps
// HistorySize+1 samples); typical values are 4-10.
type Prediction struct {
	PredictionFactor float64
	Smoothing        float64
	HistorySize      int

	history []PointerPoint
	last    PointerPoint
	hasLast bool
}

// NewPrediction creates a Prediction filter.
func NewPrediction(predictionFactor, smoothing float64, historySize int) *Prediction {
	return &Prediction{
		PredictionFactor: predictionFactor,
		Smoothing:        smoothing,
		HistorySize:      historySize,
	}
}

// Process appends the sample to the history and returns the blended
// prediction.
func (f *Prediction) Process(p PointerPoint) (PointerPoint, bool) {
	f.history = append(f.history, p)
	limit := f.HistorySize + 1
	if limit < 2 {
		limit = 2
	}
	if over := len(f.history) - limit; over > 0 {
		f.history = append(f.history[:0], f.history[over:]...)
	}

	if len(f.history) == 1 {
		f.last = p
		f.hasLast = true
		return p, true
	}

	prev := f.history[len(f.history)-2]
	dt := (p.Timestamp - prev.Timestamp) / 1000
	if dt < minPredictDT {
		dt = minPredictDT
	}

	vx, axx := f.fitAxis(func(q PointerPoint) float64 { return q.X })
	vy, ayy := f.fitAxis(func(q PointerPoint) float64 { return q.Y })

	step := dt * f.PredictionFactor
	predicted := p
	predicted.X = p.X + vx*step + 0.5*axx*dt*dt*f.PredictionFactor
	predicted.Y = p.Y + vy*step + 0.5*ayy*dt*dt*f.PredictionFactor

	out := predicted
	if f.hasLast {
		s := f.Smoothing
		out.X = predicted.X*(1-s) + f.last.X*s
		out.Y = predicted.Y*(1-s) + f.last.Y*s
	}
	f.last = out
	f.hasLast = true
	return out, true
}

// fitAxis fits the history on one axis and returns the velocity and
// acceleration evaluated at the latest sample's time.
func (f *Prediction) fitAxis(value func(PointerPoint) float64) (vel, accel float64) {
	n := len(f.history)
	t0 := f.history[0].Timestamp
	tN := (f.history[n-1].Timestamp - t0) / 1000

	if n < 3 {
		return f.linearSlope(value), 0
	}

	// Quadratic least squares x(t) = c0 + c1*t + c2*t^2 via the normal
	// equations, solved with Cramer's rule.
	var s0, s1, s2, s3, s4 float64
	var y0, y1, y2 float64
	for _, q := range f.history {
		t := (q.Timestamp - t0) / 1000
		v := value(q)
		t2 := t * t
		s0++
		s1 += t
		s2 += t2
		s3 += t2 * t
		s4 += t2 * t2
		y0 += v
		y1 += t * v
		y2 += t2 * v
	}

	det := det3(s0, s1, s2, s1, s2, s3, s2, s3, s4)
	if math.Abs(det) < singularDetThreshold {
		return f.linearSlope(value), 0
	}
	c1 := det3(s0, y0, s2, s1, y1, s3, s2, y2, s4) / det
	c2 := det3(s0, s1, y0, s1, s2, y1, s2, s3, y2) / det

	return c1 + 2*c2*tN, 2 * c2
}

// linearSlope returns the simple least-squares slope of value over time, the
// degenerate fallback when a quadratic fit is unavailable or singular.
func (f *Prediction) linearSlope(value func(PointerPoint) float64) float64 {
	n := len(f.history)
	t0 := f.history[0].Timestamp
	var sx, sy, sxy, sxx float64
	for _, q := range f.history {
		t := (q.Timestamp - t0) / 1000
		v := value(q)
		sx += t
		sy += v
		sxy += t * v
		sxx += t * t
	}
	fn := float64(n)
	denom := fn*sxx - sx*sx
	if math.Abs(denom) < singularDetThreshold {
		return 0
	}
	return (fn*sxy - sx*sy) / denom
}

// det3 is the determinant of a 3x3 matrix given in row-major order.
func det3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Reset clears the history and the previous output.
func (f *Prediction) Reset() {
	f.history = f.history[:0]
	f.last = PointerPoint{}
	f.hasLast = false
}

// Type returns FilterPrediction.
func (f *Prediction) Type() FilterType { return FilterPrediction }

// UpdateParams applies a partial parameter update.
func (f *Prediction) UpdateParams(p FilterParams) {
	if p.PredictionFactor != nil {
		f.PredictionFactor = *p.PredictionFactor
	}
	if p.Smoothing != nil {
		f.Smoothing = *p.Smoothing
	}
	if p.HistorySize != nil {
		f.HistorySize = *p.HistorySize
	}
}

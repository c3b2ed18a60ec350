package reed

// DefaultMaxVelocity is the Kalman velocity clamp applied when none is set
// explicitly, in coordinate units per second. Rapid direction reversals
// otherwise leave the velocity estimate with a huge magnitude (the innovation
// is divided by a near-minimum dt) and the next prediction overshoots wildly.
// The value is an empirical tuning constant; it is exposed as a field rather
// than hard-coded because it may need adjustment for unusual unit spaces.
const DefaultMaxVelocity = 5000.0

// minKalmanDT is the time-delta floor in seconds (1ms). Zero or decreasing
// timestamps must not divide by zero or produce negative gains.
const minKalmanDT = 1e-3

// Kalman estimates the pointer's true position with a per-axis 1D Kalman
// filter over a [position, velocity] state. Each step predicts the position
// forward by the elapsed time, then corrects prediction and velocity by the
// measurement innovation, weighted by the Kalman gain derived from the
// running covariance.
//
// ProcessNoise (Q) raises agility: higher values trust the motion model
// less and track measurements faster. MeasurementNoise (R) raises smoothing:
// higher values trust measurements less. Typical drawing values are Q in
// 0.01-1 and R in 0.1-5.
//
// Timestamps are milliseconds; velocities are coordinate units per second.
type Kalman struct {
	ProcessNoise     float64
	MeasurementNoise float64
	// MaxVelocity bounds the velocity estimate's magnitude. This is a
	// required stability safeguard, not a tuning knob: without it a sharp
	// reversal at a small dt leaves a runaway velocity in the state.
	MaxVelocity float64

	ax, ay  kalmanAxis
	lastT   float64
	started bool
}

// kalmanAxis is the per-axis [position, velocity] state with a scalar
// covariance.
type kalmanAxis struct {
	pos, vel, cov float64
}

// NewKalman creates a Kalman filter with the given noise parameters and the
// default velocity clamp.
func NewKalman(processNoise, measurementNoise float64) *Kalman {
	return &Kalman{
		ProcessNoise:     processNoise,
		MeasurementNoise: measurementNoise,
		MaxVelocity:      DefaultMaxVelocity,
	}
}

// Process advances the estimate with a new measurement. The first point of a
// stream initializes the state and passes through unchanged.
func (f *Kalman) Process(p PointerPoint) (PointerPoint, bool) {
	if !f.started {
		f.ax = kalmanAxis{pos: p.X, cov: 1}
		f.ay = kalmanAxis{pos: p.Y, cov: 1}
		f.lastT = p.Timestamp
		f.started = true
		return p, true
	}

	dt := (p.Timestamp - f.lastT) / 1000
	if dt < minKalmanDT {
		dt = minKalmanDT
	}
	f.lastT = p.Timestamp

	out := p
	out.X = f.ax.step(p.X, dt, f.ProcessNoise, f.MeasurementNoise, f.MaxVelocity)
	out.Y = f.ay.step(p.Y, dt, f.ProcessNoise, f.MeasurementNoise, f.MaxVelocity)
	return out, true
}

// step runs one predict/update cycle for a single axis and returns the new
// position estimate.
func (a *kalmanAxis) step(z, dt, q, r, maxVel float64) float64 {
	// Predict.
	a.pos += a.vel * dt
	a.cov += q

	// Update.
	denom := a.cov + r
	if denom <= 0 {
		return a.pos
	}
	k := a.cov / denom
	innov := z - a.pos
	a.pos += k * innov
	a.vel += k * innov / dt
	if a.vel > maxVel {
		a.vel = maxVel
	} else if a.vel < -maxVel {
		a.vel = -maxVel
	}
	a.cov *= 1 - k
	return a.pos
}

// Reset clears position, velocity, covariance, and the last timestamp.
func (f *Kalman) Reset() {
	f.ax = kalmanAxis{}
	f.ay = kalmanAxis{}
	f.lastT = 0
	f.started = false
}

// Type returns FilterKalman.
func (f *Kalman) Type() FilterType { return FilterKalman }

// UpdateParams applies a partial parameter update.
func (f *Kalman) UpdateParams(p FilterParams) {
	if p.ProcessNoise != nil {
		f.ProcessNoise = *p.ProcessNoise
	}
	if p.MeasurementNoise != nil {
		f.MeasurementNoise = *p.MeasurementNoise
	}
	if p.MaxVelocity != nil {
		f.MaxVelocity = *p.MaxVelocity
	}
}

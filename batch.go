package reed

import "time"

// Token identifies an outstanding scheduled callback. The zero value means
// "no callback pending".
type Token uint64

// Scheduler supplies the "next rendering opportunity" notification that a
// Batcher defers to. Request schedules fn to run at the next opportunity and
// returns a token; Cancel discards a pending callback. Implementations are
// expected to fire callbacks on the same logical thread that queues points
// (UI-thread-like, per the single-threaded model of this package).
type Scheduler interface {
	Request(fn func()) Token
	Cancel(t Token)
}

// --- TickScheduler ---

// tickEntry is one pending TickScheduler callback.
type tickEntry struct {
	token Token
	fn    func()
}

// TickScheduler fires pending callbacks when the host pumps Tick, typically
// once per frame from an Ebitengine Update method. This is the natural
// scheduler for game-loop hosts: a Batcher on a TickScheduler coalesces all
// points queued between two frames into one ProcessAll call.
type TickScheduler struct {
	pending []tickEntry
	next    Token
}

// NewTickScheduler creates a TickScheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// Request schedules fn to run on the next Tick.
func (s *TickScheduler) Request(fn func()) Token {
	s.next++
	s.pending = append(s.pending, tickEntry{token: s.next, fn: fn})
	return s.next
}

// Cancel discards a pending callback. Unknown tokens are a no-op.
func (s *TickScheduler) Cancel(t Token) {
	for i := range s.pending {
		if s.pending[i].token == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Tick fires all pending callbacks in request order. Callbacks scheduled
// from within a callback run on the following Tick.
func (s *TickScheduler) Tick() {
	fired := s.pending
	s.pending = nil
	for _, e := range fired {
		e.fn()
	}
}

// --- TimerScheduler ---

// TimerScheduler is the fixed-delay fallback for hosts without a frame loop:
// callbacks fire on a ~16ms timer via time.AfterFunc. The timer goroutine
// invokes the callback directly, so hosts using this scheduler must
// serialize access to the Batcher themselves.
type TimerScheduler struct {
	// Delay between Request and the callback. Zero selects ~16ms (one
	// 60Hz frame).
	Delay time.Duration

	next   Token
	timers map[Token]*time.Timer
}

// NewTimerScheduler creates a TimerScheduler with the default ~16ms delay.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[Token]*time.Timer)}
}

// Request schedules fn to run after the configured delay.
func (s *TimerScheduler) Request(fn func()) Token {
	delay := s.Delay
	if delay <= 0 {
		delay = 16 * time.Millisecond
	}
	if s.timers == nil {
		s.timers = make(map[Token]*time.Timer)
	}
	s.next++
	t := s.next
	s.timers[t] = time.AfterFunc(delay, func() {
		delete(s.timers, t)
		fn()
	})
	return t
}

// Cancel stops a pending timer. Unknown tokens are a no-op.
func (s *TimerScheduler) Cancel(t Token) {
	if timer, ok := s.timers[t]; ok {
		timer.Stop()
		delete(s.timers, t)
	}
}

// --- Batcher ---

// Batcher queues points and coalesces them into a single Pipeline.ProcessAll
// call at the next rendering opportunity, instead of filtering synchronously
// inside every input event. This is a throughput optimization only; results
// are identical to calling Process directly.
//
// A Batcher keeps at most one outstanding scheduled callback: queueing while
// one is pending only appends to the queue. Disabling batching synchronously
// flushes any queued points and cancels the pending callback, so no input is
// lost.
type Batcher struct {
	pipeline  *Pipeline
	scheduler Scheduler

	queue     []PointerPoint
	token     Token
	scheduled bool
	disabled  bool
}

// NewBatcher creates an enabled Batcher feeding the given pipeline through
// the given scheduler.
func NewBatcher(pipeline *Pipeline, scheduler Scheduler) *Batcher {
	return &Batcher{pipeline: pipeline, scheduler: scheduler}
}

// Queue adds a point. When batching is enabled the point is held until the
// next scheduled flush; when disabled it is processed synchronously.
func (b *Batcher) Queue(p PointerPoint) {
	if b.disabled {
		b.pipeline.Process(p)
		return
	}
	b.queue = append(b.queue, p)
	if !b.scheduled {
		b.scheduled = true
		b.token = b.scheduler.Request(b.flushScheduled)
	}
}

// flushScheduled is the scheduler callback.
func (b *Batcher) flushScheduled() {
	b.scheduled = false
	b.token = 0
	b.Flush()
}

// Flush drains the queue through the pipeline immediately and returns the
// accepted points. Flushing with an empty queue returns nil.
func (b *Batcher) Flush() []PointerPoint {
	if len(b.queue) == 0 {
		return nil
	}
	queued := b.queue
	b.queue = nil
	return b.pipeline.ProcessAll(queued)
}

// Pending returns how many points are queued but not yet flushed.
func (b *Batcher) Pending() int {
	return len(b.queue)
}

// SetEnabled turns batching on or off. Disabling synchronously flushes any
// queued points and cancels the pending scheduled callback.
func (b *Batcher) SetEnabled(enabled bool) {
	if enabled {
		b.disabled = false
		return
	}
	if b.disabled {
		return
	}
	b.disabled = true
	if b.scheduled {
		b.scheduler.Cancel(b.token)
		b.scheduled = false
		b.token = 0
	}
	b.Flush()
}

// Enabled reports whether batching is active.
func (b *Batcher) Enabled() bool {
	return !b.disabled
}

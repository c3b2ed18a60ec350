package reed

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// pointerStream is the per-pointer capture state.
type pointerStream struct {
	down         bool
	lastX, lastY float64
}

// Capture connects Ebitengine pointer input to stabilization pipelines.
// Call Update once per frame from the host's ebiten.Game Update method; it
// polls mouse and touch state, stamps monotonic timestamps, and drives one
// Pipeline per pointer stream (pipelines are never shared across concurrent
// touches). Stroke lifecycle is reported through the callback fields.
//
//	cap := reed.NewCapture(func() *reed.Pipeline {
//		return reed.Level(60)
//	})
//	cap.OnStrokeEnd = func(id int, stroke []reed.Point) { commit(stroke) }
//
// Ebitengine does not expose stylus pressure, so captured points carry none.
type Capture struct {
	// OnStrokeStart fires when a pointer goes down, with the first accepted
	// point of the stroke.
	OnStrokeStart func(pointerID int, p PointerPoint)
	// OnStrokePoint fires for every accepted point — the real-time preview.
	OnStrokePoint func(pointerID int, p PointerPoint)
	// OnStrokeEnd fires when the pointer lifts, with the finished,
	// post-processed geometry. Not fired for strokes whose every point was
	// rejected.
	OnStrokeEnd func(pointerID int, stroke []Point)

	// Clock returns the current monotonic time in milliseconds. Defaults to
	// time elapsed since NewCapture. Override for deterministic replay.
	Clock func() float64

	newPipeline func() *Pipeline
	pipelines   [maxPointers]*Pipeline
	streams     [maxPointers]pointerStream

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// syntheticPointerEvent is a single injected pointer event, consumed one per
// Update in place of real input. Mirrors what a frame of real polling
// produces, so captures are testable without a display.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// NewCapture creates a Capture. newPipeline is called once per pointer
// stream to build that stream's Pipeline; it must return a fresh instance
// each call.
func NewCapture(newPipeline func() *Pipeline) *Capture {
	start := time.Now()
	return &Capture{
		Clock:       func() float64 { return float64(time.Since(start).Microseconds()) / 1000 },
		newPipeline: newPipeline,
	}
}

// Update polls input and advances every pointer stream. Call once per frame
// from the host's Update method. If synthetic events are queued, one is
// consumed instead of polling real input.
func (c *Capture) Update() {
	if c.processInjected() {
		return
	}
	c.processMouse()
	c.processTouches()
}

// Pipeline returns the pipeline owned by the given pointer stream, creating
// it on first use. Useful for retuning a live stream's filters.
func (c *Capture) Pipeline(pointerID int) *Pipeline {
	if pointerID < 0 || pointerID >= maxPointers {
		return nil
	}
	if c.pipelines[pointerID] == nil {
		c.pipelines[pointerID] = c.newPipeline()
	}
	return c.pipelines[pointerID]
}

// --- Synthetic input ---

// InjectPress queues a pointer-down event at (x, y) on the mouse pointer.
// The event is consumed by the next Update call.
func (c *Capture) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a stroke.
func (c *Capture) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer-up event at (x, y).
func (c *Capture) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// processInjected pops one queued synthetic event and feeds it through the
// pointer state machine. Returns true if an event was consumed (real input
// is skipped for this frame).
func (c *Capture) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	c.processPointer(0, evt.x, evt.y, evt.pressed)
	return true
}

// --- Polling ---

// processMouse handles the mouse (pointer 0). Only the left button draws.
func (c *Capture) processMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	c.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouches handles touch input (pointers 1-9).
func (c *Capture) processTouches() {
	touchIDs := ebiten.AppendTouchIDs(c.prevTouchIDs[:0])
	c.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := c.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		c.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release slots whose touch ended this frame.
	for i := 1; i < maxPointers; i++ {
		if c.touchUsed[i] && !activeSlots[i] {
			st := &c.streams[i]
			if st.down {
				c.processPointer(i, st.lastX, st.lastY, false)
			}
			c.touchUsed[i] = false
			c.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one; -1 if all slots are taken.
func (c *Capture) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if c.touchUsed[i] && c.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !c.touchUsed[i] {
			c.touchUsed[i] = true
			c.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// --- Pointer state machine ---

// processPointer advances one pointer stream with a polled or injected
// sample.
func (c *Capture) processPointer(pointerID int, x, y float64, pressed bool) {
	st := &c.streams[pointerID]
	pipe := c.Pipeline(pointerID)

	switch {
	case pressed && !st.down:
		// Stroke start.
		st.down = true
		st.lastX, st.lastY = x, y
		pipe.Reset()
		pt, ok := pipe.Process(PointerPoint{X: x, Y: y, Timestamp: c.Clock()})
		if ok {
			if c.OnStrokeStart != nil {
				c.OnStrokeStart(pointerID, pt)
			}
			if c.OnStrokePoint != nil {
				c.OnStrokePoint(pointerID, pt)
			}
		}

	case pressed && st.down:
		// Mid-stroke: feed only on movement. Ebitengine polls per frame, so
		// a resting pointer would otherwise flood the buffer with duplicate
		// positions.
		if x == st.lastX && y == st.lastY {
			return
		}
		st.lastX, st.lastY = x, y
		pt, ok := pipe.Process(PointerPoint{X: x, Y: y, Timestamp: c.Clock()})
		if ok && c.OnStrokePoint != nil {
			c.OnStrokePoint(pointerID, pt)
		}

	case !pressed && st.down:
		// Stroke end.
		st.down = false
		stroke := pipe.Finish()
		if len(stroke) > 0 && c.OnStrokeEnd != nil {
			c.OnStrokeEnd(pointerID, stroke)
		}
	}
}

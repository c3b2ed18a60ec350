package reed

import "testing"

func diagonalStroke(n int) []PointerPoint {
	pts := make([]PointerPoint, n)
	for i := range pts {
		pts[i] = pt(float64(i)*10, float64(i)*10, float64(i)*100)
	}
	return pts
}

// --- Construction and list management ---

func TestPipelineEmptyIsPassThrough(t *testing.T) {
	p := NewPipeline()
	out, ok := p.Process(pt(5, 6, 7))
	if !ok || out.X != 5 || out.Y != 6 {
		t.Errorf("empty pipeline should pass through, got %v accepted=%v", out, ok)
	}
	if len(p.Buffer()) != 1 {
		t.Errorf("buffer length = %d, want 1", len(p.Buffer()))
	}
}

func TestPipelineChaining(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewNoiseGate(1)).
		AddFilter(NewEMA(0.5)).
		AddPostProcess(BoxKernel(3), PaddingReflect)
	if got := len(p.Filters()); got != 2 {
		t.Errorf("filter count = %d, want 2", got)
	}
}

func TestPipelineRemoveFilter(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewNoiseGate(1)).
		AddFilter(NewEMA(0.5))
	if !p.RemoveFilter(FilterNoiseGate) {
		t.Error("RemoveFilter should find the noise gate")
	}
	if p.RemoveFilter(FilterNoiseGate) {
		t.Error("second RemoveFilter should report not found")
	}
	if got := len(p.Filters()); got != 1 {
		t.Errorf("filter count = %d, want 1", got)
	}
}

func TestPipelineRemoveFirstMatchOnly(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewEMA(0.2)).
		AddFilter(NewEMA(0.8))
	p.RemoveFilter(FilterEMA)
	fs := p.Filters()
	if len(fs) != 1 {
		t.Fatalf("filter count = %d, want 1", len(fs))
	}
	if fs[0].(*EMA).Alpha != 0.8 {
		t.Errorf("remaining alpha = %v, want 0.8 (first match removed)", fs[0].(*EMA).Alpha)
	}
}

func TestPipelineRemovePostProcess(t *testing.T) {
	p := NewPipeline().
		AddPostProcess(BoxKernel(3), PaddingReflect).
		AddPostProcess(GaussianKernel(5, 0), PaddingEdge)
	if !p.RemovePostProcess(KernelBox) {
		t.Error("RemovePostProcess should find the box kernel")
	}
	if p.RemovePostProcess(KernelBox) {
		t.Error("second RemovePostProcess should report not found")
	}
	if !p.RemovePostProcess(KernelGaussian) {
		t.Error("gaussian stage should still be present")
	}
}

func TestPipelineUpdateFilter(t *testing.T) {
	p := NewPipeline().AddFilter(NewNoiseGate(10))
	if !p.UpdateFilter(FilterNoiseGate, FilterParams{MinDistance: floatPtr(2)}) {
		t.Error("UpdateFilter should find the noise gate")
	}
	if p.UpdateFilter(FilterKalman, FilterParams{}) {
		t.Error("UpdateFilter on an absent type should report false")
	}
	gate := p.Filters()[0].(*NoiseGate)
	if gate.MinDistance != 2 {
		t.Errorf("MinDistance = %v, want 2", gate.MinDistance)
	}
}

func TestPipelineUpdateFilterPreservesState(t *testing.T) {
	p := NewPipeline().AddFilter(NewNoiseGate(10))
	p.Process(pt(0, 0, 0))
	p.UpdateFilter(FilterNoiseGate, FilterParams{MinDistance: floatPtr(3)})
	// Last-accepted state survived: (2, 0) is within the new threshold of
	// the remembered origin.
	if _, ok := p.Process(pt(2, 0, 1)); ok {
		t.Error("updated gate should still remember the pre-update anchor")
	}
}

// --- Processing ---

func TestPipelineShortCircuitOnReject(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewNoiseGate(100)).
		AddFilter(NewEMA(0.5))
	p.Process(pt(0, 0, 0))
	if _, ok := p.Process(pt(1, 1, 1)); ok {
		t.Error("gated point should be rejected")
	}
	if got := len(p.Buffer()); got != 1 {
		t.Errorf("buffer length = %d, want 1 (rejected point not buffered)", got)
	}
	// The EMA behind the gate never saw the rejected point.
	out, _ := p.Process(pt(200, 0, 2))
	assertNear(t, "x", out.X, 100)
}

func TestPipelineProcessAll(t *testing.T) {
	p := NewPipeline().AddFilter(NewNoiseGate(15))
	in := []PointerPoint{pt(0, 0, 0), pt(5, 0, 1), pt(20, 0, 2), pt(21, 0, 3)}
	out := p.ProcessAll(in)
	if len(out) != 2 {
		t.Fatalf("accepted %d points, want 2", len(out))
	}
	if out[0].X != 0 || out[1].X != 20 {
		t.Errorf("accepted xs = %v, %v, want 0, 20 in order", out[0].X, out[1].X)
	}
}

func TestPipelineOrderingMatters(t *testing.T) {
	input := []PointerPoint{
		pt(0, 0, 0), pt(4, 0, 100), pt(12, 0, 200), pt(13, 0, 300), pt(30, 0, 400),
	}
	run := func(build func() *Pipeline) []PointerPoint {
		return build().ProcessAll(input)
	}
	gateFirst := run(func() *Pipeline {
		return NewPipeline().AddFilter(NewNoiseGate(5)).AddFilter(NewKalman(0.1, 0.5))
	})
	kalmanFirst := run(func() *Pipeline {
		return NewPipeline().AddFilter(NewKalman(0.1, 0.5)).AddFilter(NewNoiseGate(5))
	})
	if len(gateFirst) == len(kalmanFirst) {
		same := true
		for i := range gateFirst {
			if gateFirst[i].X != kalmanFirst[i].X {
				same = false
				break
			}
		}
		if same {
			t.Error("swapping filter order should change the output sequence")
		}
	}
}

// --- Buffer access ---

func TestPipelineBufferSnapshotIsCopy(t *testing.T) {
	p := NewPipeline()
	p.Process(pt(1, 1, 0))
	snap := p.Buffer()
	snap[0].X = 999
	if p.Buffer()[0].X != 1 {
		t.Error("mutating the snapshot must not affect the pipeline buffer")
	}
}

func TestPipelineFlushBuffer(t *testing.T) {
	p := NewPipeline()
	p.ProcessAll(diagonalStroke(3))
	got := p.FlushBuffer()
	if len(got) != 3 {
		t.Errorf("flushed %d points, want 3", len(got))
	}
	if len(p.Buffer()) != 0 {
		t.Error("buffer should be empty after FlushBuffer")
	}
}

// --- Lifecycle ---

func TestPipelineResetClearsFilterStateKeepsLists(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewNoiseGate(50)).
		AddPostProcess(BoxKernel(3), PaddingReflect)
	p.Process(pt(0, 0, 0))
	p.Reset()
	if len(p.Buffer()) != 0 {
		t.Error("buffer should be empty after Reset")
	}
	if len(p.Filters()) != 1 {
		t.Error("filter list should survive Reset")
	}
	// Gate state was cleared: a point within the old threshold passes as a
	// fresh stream start.
	if _, ok := p.Process(pt(1, 1, 1)); !ok {
		t.Error("first point after Reset should be accepted")
	}
}

func TestPipelineClear(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewNoiseGate(50)).
		AddPostProcess(BoxKernel(3), PaddingReflect)
	p.Process(pt(0, 0, 0))
	p.Clear()
	if len(p.Filters()) != 0 || len(p.Buffer()) != 0 {
		t.Error("Clear should empty filters and buffer")
	}
	// Post-processors are gone too: Finish on a re-filled buffer is raw.
	p.Process(pt(0, 0, 0))
	p.Process(pt(3, 3, 100))
	out := p.Finish()
	if len(out) != 2 || out[1] != (Point{3, 3}) {
		t.Errorf("Finish after Clear = %v, want raw points", out)
	}
}

func TestPipelineFinishLifecycle(t *testing.T) {
	p := NewPipeline().AddFilter(NewNoiseGate(50))
	p.Process(pt(0, 0, 0))
	p.Process(pt(100, 0, 100))
	out := p.Finish()
	if len(out) != 2 {
		t.Fatalf("finished stroke has %d points, want 2", len(out))
	}
	if len(p.Buffer()) != 0 {
		t.Error("buffer should be empty after Finish")
	}
	// Filter state was reset: a point the old gate state would reject
	// passes as the very first point of a new stream.
	if _, ok := p.Process(pt(99, 0, 200)); !ok {
		t.Error("point right after Finish should pass as a fresh stream start")
	}
}

func TestPipelineFinishAppliesPostProcessInOrder(t *testing.T) {
	// Two stages compose: box(3) then box(3) is not the same as one box(3).
	in := diagonalStroke(5)
	in[2].Y = 100 // spike

	single := NewPipeline().AddPostProcess(BoxKernel(3), PaddingEdge)
	single.ProcessAll(in)
	one := single.Finish()

	double := NewPipeline().
		AddPostProcess(BoxKernel(3), PaddingEdge).
		AddPostProcess(BoxKernel(3), PaddingEdge)
	double.ProcessAll(in)
	two := double.Finish()

	if one[1].Y == two[1].Y {
		t.Error("stacked post-process stages should compound smoothing")
	}
	if two[1].Y >= one[1].Y {
		t.Errorf("double-smoothed shoulder %v should be flatter than single %v", two[1].Y, one[1].Y)
	}
}

func TestPipelineFinishEmptyBuffer(t *testing.T) {
	p := NewPipeline().AddPostProcess(BoxKernel(3), PaddingReflect)
	out := p.Finish()
	if len(out) != 0 {
		t.Errorf("Finish with empty buffer = %v, want empty", out)
	}
}

// --- End-to-end scenario ---

func TestPipelineEndToEnd(t *testing.T) {
	p := NewPipeline().
		AddFilter(NewNoiseGate(1)).
		AddFilter(NewKalman(0.1, 0.5))
	in := []PointerPoint{
		pt(0, 0, 0), pt(10, 10, 100), pt(20, 20, 200), pt(30, 30, 300),
	}
	out := p.ProcessAll(in)
	if len(out) != 4 {
		t.Fatalf("accepted %d points, want all 4 (distances exceed the gate)", len(out))
	}

	finished := p.Finish()
	if len(finished) != 4 {
		t.Fatalf("finished stroke has %d points, want the 4 buffered ones", len(finished))
	}
	for i, b := range out {
		if finished[i].X != b.X || finished[i].Y != b.Y {
			t.Errorf("point %d = %v, want buffered %v unchanged (no post-processors)", i, finished[i], b)
		}
	}

	// Reprocessing after Finish treats the next point as fresh: it passes
	// unconditionally even though it is identical to the last one seen.
	if _, ok := p.Process(pt(30, 30, 400)); !ok {
		t.Error("point after Finish should pass through unconditionally")
	}
}

package pacer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock advances virtual time instantly on Sleep.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recorder collects callbacks and lets a test stop the pacer from inside
// the Run goroutine.
type recorder struct {
	mu       sync.Mutex
	batches  []BatchResult
	windows  []WindowSummary
	stops    []State
	rest     time.Duration
	onWindow func(WindowSummary)
}

func (r *recorder) OnPlan(_ Plan, rest time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rest = rest
}

func (r *recorder) OnBatch(res BatchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, res)
}

func (r *recorder) OnWindow(s WindowSummary) {
	r.mu.Lock()
	r.windows = append(r.windows, s)
	hook := r.onWindow
	r.mu.Unlock()
	if hook != nil {
		hook(s)
	}
}

func (r *recorder) OnStop(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops = append(r.stops, s)
}

var examplePlan = Plan{TotalCount: 10, BatchSize: 5, Window: 240 * time.Second, PerItem: time.Second}

func TestRunRejectsInvalidPlanWithoutStarting(t *testing.T) {
	clock := newFakeClock()
	p := New(WithClock(clock))
	called := false

	err := p.Run(context.Background(), Plan{TotalCount: 0, BatchSize: 5, Window: time.Hour}, func(context.Context, int) (int, error) {
		called = true
		return 0, nil
	})

	if !errors.Is(err, ErrInvalidPlan) {
		t.Fatalf("Run() error = %v, want ErrInvalidPlan", err)
	}
	if called {
		t.Error("BatchFunc was called for an invalid plan")
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("Run() slept %d times, want 0", len(clock.sleeps))
	}
	if got := p.Snapshot().Phase; got != PhaseIdle {
		t.Errorf("Snapshot().Phase = %v, want %v", got, PhaseIdle)
	}
}

func TestRunRejectsShortIntervalWithoutStarting(t *testing.T) {
	clock := newFakeClock()
	p := New(WithClock(clock), WithMinRest(120*time.Second))
	called := false

	err := p.Run(context.Background(), examplePlan, func(context.Context, int) (int, error) {
		called = true
		return 0, nil
	})

	if !errors.Is(err, ErrIntervalTooShort) {
		t.Fatalf("Run() error = %v, want ErrIntervalTooShort", err)
	}
	if called {
		t.Error("BatchFunc was called for a rejected plan")
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("Run() slept %d times, want 0", len(clock.sleeps))
	}
}

func TestRunCancelBeforeFirstSleep(t *testing.T) {
	clock := newFakeClock()
	p := New(WithClock(clock))
	calls := 0

	err := p.Run(context.Background(), examplePlan, func(_ context.Context, n int) (int, error) {
		calls++
		p.Cancel()
		return n, nil
	})

	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("BatchFunc calls = %d, want 1", calls)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("Run() slept %v after cancellation, want no sleeps", clock.sleeps)
	}
}

func TestRunResetsDoneCountEachWindow(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	p := New(WithClock(clock), WithObserver(rec))
	rec.onWindow = func(s WindowSummary) {
		if s.Window == 2 {
			p.Cancel()
		}
	}

	err := p.Run(context.Background(), examplePlan, func(_ context.Context, n int) (int, error) {
		clock.Advance(time.Duration(n) * time.Second)
		return n, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	if rec.rest != 115*time.Second {
		t.Errorf("rest interval = %v, want 115s", rec.rest)
	}
	if len(rec.windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(rec.windows))
	}
	for i, w := range rec.windows {
		if w.Done != examplePlan.TotalCount {
			t.Errorf("window %d done = %d, want %d", i, w.Done, examplePlan.TotalCount)
		}
		if w.Batches != 2 {
			t.Errorf("window %d batches = %d, want 2", i, w.Batches)
		}
		wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * examplePlan.Window)
		if !w.Start.Equal(wantStart) {
			t.Errorf("window %d start = %v, want %v", i, w.Start, wantStart)
		}
	}

	// The first batch of every window starts counting from zero again.
	for _, b := range rec.batches {
		want := (b.Batch + 1) * examplePlan.BatchSize
		if b.DoneCount != want {
			t.Errorf("window %d batch %d DoneCount = %d, want %d", b.Window, b.Batch, b.DoneCount, want)
		}
	}
}

func TestRunContinuesAfterBatchErrors(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	p := New(WithClock(clock), WithObserver(rec))
	rec.onWindow = func(s WindowSummary) {
		if s.Window == 1 {
			p.Cancel()
		}
	}
	boom := errors.New("selector not found")

	err := p.Run(context.Background(), examplePlan, func(context.Context, int) (int, error) {
		return 3, boom
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	if len(rec.windows) != 2 {
		t.Fatalf("windows = %d, want 2 (pacer must move on to the next window)", len(rec.windows))
	}
	for i, w := range rec.windows {
		if w.Done != 0 {
			t.Errorf("window %d done = %d, want 0", i, w.Done)
		}
		// 240s window with 115s rests: batches at 0s, 115s and 230s.
		if w.Batches != 3 || w.Failures != 3 {
			t.Errorf("window %d batches/failures = %d/%d, want 3/3", i, w.Batches, w.Failures)
		}
	}
	for _, b := range rec.batches {
		var batchErr *BatchExecutionError
		if !errors.As(b.Err, &batchErr) {
			t.Fatalf("BatchResult.Err = %v, want *BatchExecutionError", b.Err)
		}
		if !errors.Is(b.Err, boom) {
			t.Errorf("BatchResult.Err does not wrap the BatchFunc error: %v", b.Err)
		}
		if b.Completed != 0 {
			t.Errorf("failed batch Completed = %d, want 0", b.Completed)
		}
	}
}

func TestRunRestNeverPassesWindowEnd(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	p := New(WithClock(clock), WithObserver(rec))
	rec.onWindow = func(WindowSummary) { p.Cancel() }

	plan := Plan{TotalCount: 30, BatchSize: 10, Window: 10 * time.Minute, PerItem: 5 * time.Second}
	err := p.Run(context.Background(), plan, func(context.Context, int) (int, error) {
		clock.Advance(90 * time.Second)
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	var slept time.Duration
	for _, d := range clock.sleeps {
		slept += d
	}
	elapsed := clock.Now().Sub(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if elapsed > plan.Window {
		t.Errorf("window ran %v, longer than %v (slept %v in %v)", elapsed, plan.Window, slept, clock.sleeps)
	}
	if rec.windows[0].Done >= plan.TotalCount {
		t.Errorf("done = %d, expected the window to end before the budget", rec.windows[0].Done)
	}
}

func TestRunRequestsOnlyRemainingCount(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	p := New(WithClock(clock), WithObserver(rec))
	rec.onWindow = func(WindowSummary) { p.Cancel() }

	var requested []int
	plan := Plan{TotalCount: 7, BatchSize: 3, Window: 3 * time.Hour, PerItem: time.Second}
	err := p.Run(context.Background(), plan, func(_ context.Context, n int) (int, error) {
		requested = append(requested, n)
		return n, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	want := []int{3, 3, 1}
	if len(requested) != len(want) {
		t.Fatalf("requested = %v, want %v", requested, want)
	}
	for i := range want {
		if requested[i] != want[i] {
			t.Errorf("requested[%d] = %d, want %d", i, requested[i], want[i])
		}
	}
}

func TestRunTreatsNegativeCountAsZero(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	p := New(WithClock(clock), WithObserver(rec))
	rec.onWindow = func(WindowSummary) { p.Cancel() }

	err := p.Run(context.Background(), examplePlan, func(context.Context, int) (int, error) {
		return -4, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if rec.windows[0].Done != 0 {
		t.Errorf("done = %d, want 0", rec.windows[0].Done)
	}
}

func TestRunAlreadyRunning(t *testing.T) {
	p := New(WithClock(newFakeClock()))
	started := make(chan struct{})
	release := make(chan struct{})

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run(context.Background(), examplePlan, func(ctx context.Context, n int) (int, error) {
			select {
			case <-started:
			default:
				close(started)
			}
			<-release
			return n, ctx.Err()
		})
	}()

	<-started
	err := p.Run(context.Background(), examplePlan, func(context.Context, int) (int, error) { return 0, nil })
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}

	if s := p.Snapshot(); !s.Running || s.Phase != PhaseRunning {
		t.Errorf("Snapshot() = %+v, want running", s)
	}

	p.Cancel()
	close(release)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("first Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after Cancel")
	}
}

func TestRunStopsOnParentContextDuringSleep(t *testing.T) {
	// Real clock: the rest interval is an hour, so returning at all proves
	// the sleep is interruptible.
	p := New()
	ctx, cancel := context.WithCancel(context.Background())
	performed := make(chan struct{}, 1)

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run(ctx, Plan{TotalCount: 2, BatchSize: 1, Window: 2 * time.Hour}, func(_ context.Context, n int) (int, error) {
			performed <- struct{}{}
			return n, nil
		})
	}()

	<-performed
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not observe context cancellation during sleep")
	}
}

func TestSnapshotAfterStop(t *testing.T) {
	clock := newFakeClock()
	rec := &recorder{}
	p := New(WithClock(clock), WithObserver(rec))

	err := p.Run(context.Background(), examplePlan, func(_ context.Context, n int) (int, error) {
		p.Cancel()
		return n, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	s := p.Snapshot()
	if s.Phase != PhaseStopped {
		t.Errorf("Phase = %v, want %v", s.Phase, PhaseStopped)
	}
	if s.Running {
		t.Error("Running = true after stop")
	}
	if s.DoneCount != 0 {
		t.Errorf("DoneCount = %d after stop, want 0", s.DoneCount)
	}
	if len(rec.stops) != 1 {
		t.Errorf("OnStop calls = %d, want 1", len(rec.stops))
	}
}

func TestRunCanRestartAfterStop(t *testing.T) {
	p := New(WithClock(newFakeClock()))
	for i := 0; i < 2; i++ {
		calls := 0
		err := p.Run(context.Background(), examplePlan, func(_ context.Context, n int) (int, error) {
			calls++
			p.Cancel()
			return n, nil
		})
		if err != nil {
			t.Fatalf("run %d: Run() error = %v, want nil", i, err)
		}
		if calls != 1 {
			t.Errorf("run %d: calls = %d, want 1", i, calls)
		}
	}
}

func TestCancelWhenIdleIsNoop(t *testing.T) {
	p := New()
	p.Cancel()
	if got := p.Snapshot().Phase; got != PhaseIdle {
		t.Errorf("Phase = %v, want %v", got, PhaseIdle)
	}
}

func TestCancelBeforeRunDoesNotCarryOver(t *testing.T) {
	p := New(WithClock(newFakeClock()))
	p.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	err := p.Run(ctx, examplePlan, func(_ context.Context, n int) (int, error) {
		calls++
		cancel()
		return n, nil
	})

	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("BatchFunc calls = %d, want 1", calls)
	}
	if p.Snapshot().Running {
		t.Error("Snapshot().Running = true after context cancellation")
	}
}

func TestContextCancelBeforeRunStarts(t *testing.T) {
	p := New(WithClock(newFakeClock()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := p.Run(ctx, examplePlan, func(_ context.Context, n int) (int, error) {
		calls++
		return n, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if calls != 0 {
		t.Errorf("BatchFunc calls = %d, want 0", calls)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:           "idle",
		PhaseRunning:        "running",
		PhaseWindowBoundary: "window_boundary",
		PhaseStopped:        "stopped",
		Phase(42):           "unknown",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(phase), got, want)
		}
	}
}

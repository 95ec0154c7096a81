package pacer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Phase is the pacer's position in its lifecycle:
// Idle -> Running -> {WindowBoundary -> Running}* -> Stopped.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseWindowBoundary
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWindowBoundary:
		return "window_boundary"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase by name in JSON and logs.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is a point-in-time view of a pacing session.
type State struct {
	Phase        Phase         `json:"phase"`
	Running      bool          `json:"running"`
	DoneCount    int           `json:"done_count"`
	TotalCount   int           `json:"total_count"`
	WindowIndex  int           `json:"window_index"`
	WindowStart  time.Time     `json:"window_start"`
	RestInterval time.Duration `json:"rest_interval"`
}

// BatchFunc performs up to n actions and reports how many completed.
type BatchFunc func(ctx context.Context, n int) (int, error)

// BatchResult describes one call to a BatchFunc.
type BatchResult struct {
	Window    int
	Batch     int
	Requested int
	Completed int
	DoneCount int
	Duration  time.Duration
	Err       error
}

// WindowSummary describes a finished (or cancelled) window.
type WindowSummary struct {
	Window   int
	Start    time.Time
	Done     int
	Batches  int
	Failures int
}

// Observer receives progress callbacks from the Run goroutine.
// Callbacks must not block for long; they run between batches.
type Observer interface {
	OnPlan(plan Plan, rest time.Duration)
	OnBatch(result BatchResult)
	OnWindow(summary WindowSummary)
	OnStop(final State)
}

type nopObserver struct{}

func (nopObserver) OnPlan(Plan, time.Duration) {}
func (nopObserver) OnBatch(BatchResult)        {}
func (nopObserver) OnWindow(WindowSummary)     {}
func (nopObserver) OnStop(State)               {}

// Option configures a Pacer.
type Option func(*Pacer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(p *Pacer) { p.clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pacer) { p.logger = logger }
}

// WithMinRest overrides DefaultMinRest.
func WithMinRest(d time.Duration) Option {
	return func(p *Pacer) { p.minRest = d }
}

// WithObserver registers progress callbacks.
func WithObserver(o Observer) Option {
	return func(p *Pacer) {
		if o != nil {
			p.observer = o
		}
	}
}

// Pacer drives a BatchFunc at the cadence a Plan allows, window after
// window, until cancelled. The zero value is not usable; call New.
type Pacer struct {
	clock    Clock
	logger   zerolog.Logger
	minRest  time.Duration
	observer Observer

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// New creates an idle pacer.
func New(opts ...Option) *Pacer {
	p := &Pacer{
		clock:    realClock{},
		logger:   zerolog.Nop(),
		minRest:  DefaultMinRest,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MinRest returns the configured rest floor.
func (p *Pacer) MinRest() time.Duration {
	return p.minRest
}

// Snapshot returns a consistent copy of the current state.
func (p *Pacer) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Cancel stops a session that has already started (Snapshot().Running).
// A Cancel issued before Run has begun is dropped and does not carry over
// to the next Run; callers that launch Run on another goroutine should
// stop it by cancelling the context they passed in.
func (p *Pacer) Cancel() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()

	if cancel == nil {
		p.logger.Warn().Msg("cancel requested but pacer is not running")
		return
	}
	cancel()
}

// Run validates plan and then paces perform until Cancel is called or ctx
// is done. Plan errors are returned before any waiting; cancellation is
// not an error and yields nil.
func (p *Pacer) Run(ctx context.Context, plan Plan, perform BatchFunc) error {
	rest, err := ComputeRestInterval(plan, p.minRest)
	if err != nil {
		return err
	}
	if perform == nil {
		return errors.New("pacer: nil batch func")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.begin(plan, rest, cancel); err != nil {
		return err
	}
	defer p.finish()

	p.observer.OnPlan(plan, rest)
	p.logger.Info().
		Int("total", plan.TotalCount).
		Int("batch_size", plan.BatchSize).
		Dur("window", plan.Window).
		Dur("per_item", plan.PerItem).
		Dur("rest", rest).
		Msg("pacing started")

	for window := 0; ; window++ {
		start := p.clock.Now()
		end := start.Add(plan.Window)
		p.startWindow(window, start)

		summary := p.runWindow(ctx, plan, rest, window, end, perform)
		p.observer.OnWindow(summary)
		p.logger.Info().
			Int("window", window).
			Int("done", summary.Done).
			Int("batches", summary.Batches).
			Int("failures", summary.Failures).
			Msg("window finished")

		if ctx.Err() != nil {
			return nil
		}

		p.setPhase(PhaseWindowBoundary)
		if err := p.clock.Sleep(ctx, end.Sub(p.clock.Now())); err != nil {
			return nil
		}
	}
}

// runWindow performs batches until the budget is met, the window ends or
// ctx is done.
func (p *Pacer) runWindow(ctx context.Context, plan Plan, rest time.Duration, window int, end time.Time, perform BatchFunc) WindowSummary {
	summary := WindowSummary{Window: window, Start: end.Add(-plan.Window)}
	done := 0

	for batch := 0; ctx.Err() == nil && done < plan.TotalCount && p.clock.Now().Before(end); batch++ {
		n := min(plan.BatchSize, plan.TotalCount-done)
		began := p.clock.Now()

		completed, err := perform(ctx, n)
		if err != nil && ctx.Err() != nil {
			break
		}
		if completed < 0 || err != nil {
			completed = 0
		}

		result := BatchResult{
			Window:    window,
			Batch:     batch,
			Requested: n,
			Completed: completed,
			Duration:  p.clock.Now().Sub(began),
		}
		if err != nil {
			result.Err = &BatchExecutionError{Window: window, Batch: batch, Err: err}
			summary.Failures++
			p.logger.Error().Err(err).Int("window", window).Int("batch", batch).Msg("batch failed, continuing")
		}

		done += completed
		summary.Batches++
		result.DoneCount = done
		p.setDone(done)
		p.observer.OnBatch(result)
		p.logger.Debug().
			Int("window", window).
			Int("batch", batch).
			Int("completed", completed).
			Int("done", done).
			Msg("batch finished")

		if done >= plan.TotalCount {
			break
		}

		wait := rest
		if remaining := end.Sub(p.clock.Now()); remaining < wait {
			wait = remaining
		}
		if err := p.clock.Sleep(ctx, wait); err != nil {
			break
		}
	}

	summary.Done = done
	return summary
}

func (p *Pacer) begin(plan Plan, rest time.Duration, cancel context.CancelFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Running {
		return ErrAlreadyRunning
	}
	p.state = State{
		Phase:        PhaseRunning,
		Running:      true,
		TotalCount:   plan.TotalCount,
		RestInterval: rest,
	}
	p.cancel = cancel
	return nil
}

func (p *Pacer) finish() {
	p.mu.Lock()
	p.state.Phase = PhaseStopped
	p.state.Running = false
	p.state.DoneCount = 0
	p.cancel = nil
	final := p.state
	p.mu.Unlock()

	p.observer.OnStop(final)
	p.logger.Info().Int("windows", final.WindowIndex+1).Msg("pacing stopped")
}

func (p *Pacer) startWindow(window int, start time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Phase = PhaseRunning
	p.state.WindowIndex = window
	p.state.WindowStart = start
	p.state.DoneCount = 0
}

func (p *Pacer) setPhase(phase Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Phase = phase
}

func (p *Pacer) setDone(done int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.DoneCount = done
}

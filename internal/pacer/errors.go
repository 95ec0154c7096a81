package pacer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPlan matches any *InvalidPlanError.
	ErrInvalidPlan = errors.New("invalid pacing plan")
	// ErrIntervalTooShort matches any *IntervalTooShortError.
	ErrIntervalTooShort = errors.New("rest interval too short")
	// ErrAlreadyRunning is returned by Run while another session is active.
	ErrAlreadyRunning = errors.New("pacer already running")
)

// InvalidPlanError reports a plan field that is out of range. Reason is
// empty when the field simply must be positive.
type InvalidPlanError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidPlanError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid pacing plan: %s %v %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid pacing plan: %s must be positive, got %v", e.Field, e.Value)
}

func (e *InvalidPlanError) Is(target error) bool {
	return target == ErrInvalidPlan
}

// IntervalTooShortError reports a derived rest interval below the floor.
type IntervalTooShortError struct {
	Interval time.Duration
	Minimum  time.Duration
}

func (e *IntervalTooShortError) Error() string {
	return fmt.Sprintf("rest interval %s is below the %s minimum: reduce the batch size or total count, or widen the window",
		e.Interval, e.Minimum)
}

func (e *IntervalTooShortError) Is(target error) bool {
	return target == ErrIntervalTooShort
}

// BatchExecutionError wraps a failure returned by a BatchFunc.
// The pacer recovers from it and counts the batch as zero progress.
type BatchExecutionError struct {
	Window int
	Batch  int
	Err    error
}

func (e *BatchExecutionError) Error() string {
	return fmt.Sprintf("batch %d of window %d failed: %v", e.Batch, e.Window, e.Err)
}

func (e *BatchExecutionError) Unwrap() error {
	return e.Err
}

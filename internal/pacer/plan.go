// Package pacer spreads a budget of actions across a time window in
// fixed-size batches separated by a computed rest interval.
package pacer

import (
	"math"
	"time"
)

// DefaultMinRest is the shortest rest interval a plan may produce.
const DefaultMinRest = 60 * time.Second

// Plan describes one pacing session: TotalCount actions per Window,
// performed BatchSize at a time, each action expected to take PerItem.
type Plan struct {
	TotalCount int
	BatchSize  int
	Window     time.Duration
	PerItem    time.Duration
}

// Batches returns how many batches it takes to reach TotalCount, or 0
// when either count is not positive.
func (p Plan) Batches() int {
	if p.TotalCount <= 0 || p.BatchSize <= 0 {
		return 0
	}
	return 1 + (p.TotalCount-1)/p.BatchSize
}

func (p Plan) validate() error {
	switch {
	case p.BatchSize <= 0:
		return &InvalidPlanError{Field: "batch size", Value: p.BatchSize}
	case p.TotalCount <= 0:
		return &InvalidPlanError{Field: "total count", Value: p.TotalCount}
	case p.Window <= 0:
		return &InvalidPlanError{Field: "window", Value: p.Window}
	case p.PerItem < 0:
		return &InvalidPlanError{Field: "per-item duration", Value: p.PerItem}
	case p.PerItem > 0 && int64(p.BatchSize) > math.MaxInt64/int64(p.PerItem):
		return &InvalidPlanError{
			Field:  "per-item duration",
			Value:  p.PerItem,
			Reason: "times batch size overflows a duration",
		}
	}
	return nil
}

// ComputeRestInterval returns the pause between batches:
//
//	Window/ceil(TotalCount/BatchSize) - PerItem*BatchSize
//
// It fails with *InvalidPlanError for non-positive counts or window, and
// with *IntervalTooShortError when the result is below minRest.
func ComputeRestInterval(plan Plan, minRest time.Duration) (time.Duration, error) {
	if err := plan.validate(); err != nil {
		return 0, err
	}

	raw := plan.Window / time.Duration(plan.Batches())
	rest := raw - plan.PerItem*time.Duration(plan.BatchSize)
	if rest < minRest {
		return 0, &IntervalTooShortError{Interval: rest, Minimum: minRest}
	}
	return rest, nil
}

package xclient

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// spacer keeps clicks and keystrokes apart: a token bucket with burst 1
// sets the minimum gap and a random jitter is added on top, so X never
// sees a steady machine rhythm.
type spacer struct {
	limiter *rate.Limiter
	jitter  time.Duration
	rand    func(n int64) int64
}

func newSpacer(every, jitter time.Duration) *spacer {
	limit := rate.Inf
	if every > 0 {
		limit = rate.Every(every)
	}
	return &spacer{
		limiter: rate.NewLimiter(limit, 1),
		jitter:  jitter,
		rand:    rand.Int64N,
	}
}

// Wait blocks until the next action may run or ctx is done.
func (s *spacer) Wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	if s.jitter <= 0 {
		return nil
	}
	return sleep(ctx, time.Duration(s.rand(int64(s.jitter))))
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Package follow runs the paced auto-follow loop: a pacer decides when to
// follow and how many, a Follower does the clicking and a Recorder keeps
// the history.
package follow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/pacer"
	"github.com/ibeckermayer/xbot/internal/types"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

// DefaultBatchSlack is added to PerItem×n when bounding one batch.
const DefaultBatchSlack = 2 * time.Minute

// Status is a snapshot of the service.
type Status struct {
	State     pacer.State `json:"state"`
	SessionID uuid.UUID   `json:"session_id"`
	Followed  int         `json:"followed"`
	Keywords  []string    `json:"keywords"`
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithPacer replaces the default pacer.
func WithPacer(p *pacer.Pacer) Option {
	return func(s *Service) { s.pacer = p }
}

// WithBatchSlack overrides DefaultBatchSlack.
func WithBatchSlack(d time.Duration) Option {
	return func(s *Service) { s.batchSlack = d }
}

// WithNow replaces the wall clock used for timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service owns one pacer and one pacing session at a time.
type Service struct {
	follower   Follower
	recorder   Recorder
	keywords   []string
	pacer      *pacer.Pacer
	batchSlack time.Duration
	logger     zerolog.Logger
	now        func() time.Time

	mu       sync.Mutex
	session  *types.PacingSession
	cancel   context.CancelFunc
	followed int
}

// New creates a Service that follows accounts matching keywords.
func New(follower Follower, recorder Recorder, keywords []string, opts ...Option) *Service {
	s := &Service{
		follower:   follower,
		recorder:   recorder,
		keywords:   keywords,
		batchSlack: DefaultBatchSlack,
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pacer == nil {
		s.pacer = pacer.New(pacer.WithLogger(s.logger))
	}
	return s
}

// Start records a new pacing session and paces follows until ctx is done
// or Stop is called. Plan errors are returned before anything is recorded.
func (s *Service) Start(ctx context.Context, plan pacer.Plan) error {
	rest, err := pacer.ComputeRestInterval(plan, s.pacer.MinRest())
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.session != nil {
		s.mu.Unlock()
		return pacer.ErrAlreadyRunning
	}
	sess := &types.PacingSession{
		ID:           uuid.New(),
		TotalCount:   plan.TotalCount,
		BatchSize:    plan.BatchSize,
		Window:       plan.Window,
		PerItem:      plan.PerItem,
		RestInterval: rest,
		StartedAt:    s.now(),
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.session = sess
	s.cancel = cancel
	s.followed = 0
	s.mu.Unlock()

	if err := s.recorder.StartSession(ctx, sess); err != nil {
		s.clearSession()
		return err
	}
	s.logger.Info().Str("session", sess.ID.String()).Strs("keywords", s.keywords).Msg("auto-follow session started")

	defer s.closeSession(ctx, sess)
	return s.pacer.Run(ctx, plan, s.batchFunc(sess))
}

// Stop cancels the running session, if any.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		s.logger.Warn().Msg("stop requested but no auto-follow session is running")
		return
	}
	cancel()
}

// Running reports whether a session is active.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Status returns the pacer snapshot with session totals.
func (s *Service) Status() Status {
	st := Status{State: s.pacer.Snapshot(), Keywords: s.keywords}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		st.SessionID = s.session.ID
	}
	st.Followed = s.followed
	return st
}

func (s *Service) batchFunc(sess *types.PacingSession) pacer.BatchFunc {
	return func(ctx context.Context, n int) (int, error) {
		batchCtx, cancel := context.WithTimeout(ctx, sess.PerItem*time.Duration(n)+s.batchSlack)
		defer cancel()

		links, err := s.follower.FollowByKeywords(batchCtx, s.keywords, n)
		if len(links) > n {
			links = links[:n]
		}

		recCtx := context.WithoutCancel(ctx)
		for _, link := range links {
			rec := types.FollowRecord{SessionID: sess.ID, ProfileLink: link, FollowedAt: s.now()}
			if recErr := s.recorder.RecordFollow(recCtx, rec); recErr != nil {
				s.logger.Error().Err(recErr).Str("link", link).Msg("failed to record follow")
			}
		}

		s.mu.Lock()
		s.followed += len(links)
		s.mu.Unlock()

		switch {
		case err == nil:
			return len(links), nil
		case errors.Is(err, xclient.ErrFollowLimitReached):
			s.logger.Warn().Int("followed", len(links)).Msg("follow limit reached, ending batch early")
			return len(links), nil
		case len(links) > 0:
			// follows that happened count against the window budget
			s.logger.Warn().Err(err).Int("followed", len(links)).Msg("batch ended early after partial progress")
			return len(links), nil
		}
		return 0, err
	}
}

func (s *Service) closeSession(ctx context.Context, sess *types.PacingSession) {
	s.mu.Lock()
	followed := s.followed
	s.mu.Unlock()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.recorder.StopSession(stopCtx, sess.ID, s.now(), followed); err != nil {
		s.logger.Error().Err(err).Str("session", sess.ID.String()).Msg("failed to close session")
	}
	s.logger.Info().Str("session", sess.ID.String()).Int("followed", followed).Msg("auto-follow session stopped")
	s.clearSession()
}

func (s *Service) clearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.cancel = nil
}

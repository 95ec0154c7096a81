package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultJobTimeout bounds one job run when no timeout is configured.
const DefaultJobTimeout = 30 * time.Minute

// ErrUnknownJob is returned by RunNow for a name that was never added.
var ErrUnknownJob = errors.New("unknown job")

// Job represents a scheduled task
type Job func(ctx context.Context) error

type entry struct {
	id       cron.EntryID
	schedule string
	job      Job
}

// Scheduler manages periodic tasks
type Scheduler struct {
	cron       *cron.Cron
	timezone   *time.Location
	jobTimeout time.Duration
	logger     zerolog.Logger

	mu   sync.Mutex
	jobs map[string]entry
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithJobTimeout sets the per-run timeout of every job.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.jobTimeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// New creates a new scheduler with the given timezone
func New(timezone string, opts ...Option) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", timezone, err)
	}

	s := &Scheduler{
		timezone:   loc,
		jobTimeout: DefaultJobTimeout,
		logger:     zerolog.Nop(),
		jobs:       make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}

	cl := cronLogger{s.logger}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	return s, nil
}

// AddJob adds a job with a cron schedule, replacing any job of the same
// name. schedule format: "0 */6 * * *" (every six hours).
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		_ = s.execute(context.Background(), name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.mu.Lock()
	old, replaced := s.jobs[name]
	s.jobs[name] = entry{id: entryID, schedule: schedule, job: job}
	s.mu.Unlock()

	if replaced {
		s.cron.Remove(old.id)
	}
	s.logger.Info().Str("job", name).Str("schedule", schedule).Msg("added job")
	return nil
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(name string) {
	s.mu.Lock()
	e, ok := s.jobs[name]
	delete(s.jobs, name)
	s.mu.Unlock()

	if ok {
		s.cron.Remove(e.id)
		s.logger.Info().Str("job", name).Msg("removed job")
	}
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.logger.Info().Str("timezone", s.timezone.String()).Msg("starting scheduler")
	s.cron.Start()
}

// Stop halts the scheduler. The returned context is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info().Msg("stopping scheduler")
	return s.cron.Stop()
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	<-s.Stop().Done()
	return nil
}

// RunNow immediately executes a registered job under ctx and the job
// timeout.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	e, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.execute(ctx, name, e.job)
}

func (s *Scheduler) execute(ctx context.Context, name string, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	s.logger.Info().Str("job", name).Msg("starting job")
	start := time.Now()

	if err := job(ctx); err != nil {
		s.logger.Error().Err(err).Str("job", name).Msg("job failed")
		return err
	}
	s.logger.Info().Str("job", name).Dur("took", time.Since(start)).Msg("job completed")
	return nil
}

// ListJobs returns info about scheduled jobs, sorted by name.
func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for name, e := range s.jobs {
		ce := s.cron.Entry(e.id)
		infos = append(infos, JobInfo{
			Name:     name,
			Schedule: e.schedule,
			NextRun:  ce.Next,
			LastRun:  ce.Prev,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// JobInfo contains information about a scheduled job
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	NextRun  time.Time `json:"next_run"`
	LastRun  time.Time `json:"last_run"`
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// Package app wires configuration, storage and the browser into the
// follow, engage and refresh processes, and enforces that at most one
// process of each kind runs at a time.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/engage"
	"github.com/ibeckermayer/xbot/internal/follow"
	"github.com/ibeckermayer/xbot/internal/metrics"
	"github.com/ibeckermayer/xbot/internal/pacer"
	"github.com/ibeckermayer/xbot/internal/scheduler"
	"github.com/ibeckermayer/xbot/internal/store"
	"github.com/ibeckermayer/xbot/internal/types"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

// Process names.
const (
	ProcessFollow        = "follow"
	ProcessEngage        = "engage"
	ProcessRefresh       = "refresh"
	ProcessUnfollow      = "unfollow"
	ProcessDeleteReplies = "delete_replies"
	ProcessDeleteLikes   = "delete_likes"
)

// JobRefreshFollowing is the scheduler job that runs RefreshFollowing.
const JobRefreshFollowing = "refresh_following"

var (
	// ErrProcessRunning is returned when a process of the same kind is
	// already running.
	ErrProcessRunning = errors.New("process already running")
	// ErrNoProcess is returned by Stop when nothing of that name runs.
	ErrNoProcess = errors.New("no such process running")
	// ErrNoAccount is returned when an operation needs account.username.
	ErrNoAccount = errors.New("account.username is not configured")
	// ErrNoKeywords is returned by StartFollow without follow.keywords.
	ErrNoKeywords = errors.New("follow.keywords is empty")
	// ErrNotTarget is returned when removing a profile that was not added
	// as a target.
	ErrNotTarget = errors.New("profile is not an added target")
)

// TabOpener opens a browser tab. The returned func closes it.
type TabOpener func(ctx context.Context) (Browser, func(), error)

// ProcessInfo describes a running process.
type ProcessInfo struct {
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
}

// Status is what the status API and CLI report.
type Status struct {
	Processes []ProcessInfo       `json:"processes"`
	Follow    *follow.Status      `json:"follow,omitempty"`
	Engage    *engage.Status      `json:"engage,omitempty"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
}

type process struct {
	started time.Time
	cancel  context.CancelFunc
}

// App holds the application state.
type App struct {
	store   Store
	tabs    TabOpener
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	config    *config.Config
	processes map[string]*process
	follow    *follow.Service
	engage    *engage.Loop
	sched     *scheduler.Scheduler
}

// Option configures an App.
type Option func(*App)

// WithMetrics feeds pacer and engagement events into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// New creates a new App instance.
func New(cfg *config.Config, st Store, tabs TabOpener, opts ...Option) *App {
	a := &App{
		store:     st,
		tabs:      tabs,
		logger:    zerolog.Nop(),
		now:       time.Now,
		config:    cfg,
		processes: make(map[string]*process),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the current configuration.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// ReloadConfig reloads the configuration from path. Running processes
// keep the settings they started with.
func (a *App) ReloadConfig(path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.config = cfg
	a.mu.Unlock()

	a.logger.Info().Msg("configuration reloaded")
	return nil
}

// claim registers name as running. The returned context is cancelled by
// Stop(name); release must be called when the process ends.
func (a *App) claim(ctx context.Context, name string) (context.Context, func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.processes[name]; ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrProcessRunning, name)
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &process{started: a.now(), cancel: cancel}
	a.processes[name] = p

	release := func() {
		cancel()
		a.mu.Lock()
		if a.processes[name] == p {
			delete(a.processes, name)
		}
		a.mu.Unlock()
	}
	return ctx, release, nil
}

// Stop cancels the named process.
func (a *App) Stop(name string) error {
	a.mu.RLock()
	p, ok := a.processes[name]
	a.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoProcess, name)
	}
	a.logger.Info().Str("process", name).Msg("stopping process")
	p.cancel()
	return nil
}

// Running reports whether the named process is running.
func (a *App) Running(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.processes[name]
	return ok
}

// Status returns running processes and the latest follow, engage and
// scheduler state.
func (a *App) Status() Status {
	a.mu.RLock()
	st := Status{Processes: make([]ProcessInfo, 0, len(a.processes))}
	for name, p := range a.processes {
		st.Processes = append(st.Processes, ProcessInfo{Name: name, StartedAt: p.started})
	}
	svc, loop, sched := a.follow, a.engage, a.sched
	a.mu.RUnlock()

	sort.Slice(st.Processes, func(i, j int) bool { return st.Processes[i].Name < st.Processes[j].Name })
	if svc != nil {
		fs := svc.Status()
		st.Follow = &fs
	}
	if loop != nil {
		es := loop.Status()
		st.Engage = &es
	}
	if sched != nil {
		st.Jobs = sched.ListJobs()
	}
	return st
}

// Ping checks the store.
func (a *App) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

func (a *App) openTab(ctx context.Context) (Browser, func(), error) {
	tab, closeTab, err := a.tabs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open browser tab: %w", err)
	}
	return tab, closeTab, nil
}

// StartFollow runs the paced auto-follow loop until it is stopped or ctx
// is done.
func (a *App) StartFollow(ctx context.Context) error {
	cfg := a.Config()
	if len(cfg.Follow.Keywords) == 0 {
		return ErrNoKeywords
	}

	ctx, release, err := a.claim(ctx, ProcessFollow)
	if err != nil {
		return err
	}
	defer release()

	tab, closeTab, err := a.openTab(ctx)
	if err != nil {
		return err
	}
	defer closeTab()

	logger := a.logger.With().Str("component", "follow").Logger()
	pacerOpts := []pacer.Option{
		pacer.WithLogger(logger),
		pacer.WithMinRest(cfg.Follow.MinRest.Std()),
	}
	if a.metrics != nil {
		pacerOpts = append(pacerOpts, pacer.WithObserver(a.metrics.PacerObserver()))
	}
	svc := follow.New(tab, a.store, cfg.Follow.Keywords,
		follow.WithLogger(logger),
		follow.WithPacer(pacer.New(pacerOpts...)),
	)

	a.mu.Lock()
	a.follow = svc
	a.mu.Unlock()

	return svc.Start(ctx, cfg.FollowPlan())
}

// StartEngage runs the engagement loop until it is stopped or ctx is done.
func (a *App) StartEngage(ctx context.Context) error {
	cfg := a.Config()

	ctx, release, err := a.claim(ctx, ProcessEngage)
	if err != nil {
		return err
	}
	defer release()

	tab, closeTab, err := a.openTab(ctx)
	if err != nil {
		return err
	}
	defer closeTab()

	opts := []engage.Option{engage.WithLogger(a.logger.With().Str("component", "engage").Logger())}
	if a.metrics != nil {
		opts = append(opts, engage.WithObserver(a.metrics.EngageObserver()))
	}
	loop := engage.New(tab, a.store, cfg.Engage, opts...)

	a.mu.Lock()
	a.engage = loop
	a.mu.Unlock()

	return loop.Run(ctx)
}

// RefreshFollowing scrapes the accounts the configured user follows,
// stores the ones not seen before and drops those no longer followed.
// It returns how many profiles were added.
func (a *App) RefreshFollowing(ctx context.Context) (int, error) {
	username := a.Config().Account.Username
	if username == "" {
		return 0, ErrNoAccount
	}

	ctx, release, err := a.claim(ctx, ProcessRefresh)
	if err != nil {
		return 0, err
	}
	defer release()

	tab, closeTab, err := a.openTab(ctx)
	if err != nil {
		return 0, err
	}
	defer closeTab()

	links, err := tab.FollowingLinks(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("read following list: %w", err)
	}
	a.logger.Info().Int("following", len(links)).Msg("following list read")

	added := 0
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		known, err := a.store.IsProfileInFollowing(ctx, link)
		if err != nil {
			return added, err
		}
		if known {
			continue
		}

		p, err := tab.ScrapeProfile(ctx, link)
		if err != nil {
			if ctx.Err() != nil {
				return added, ctx.Err()
			}
			a.logger.Warn().Err(err).Str("link", link).Msg("failed to scrape profile")
			continue
		}
		p.Source = types.SourceFollowing
		if err := a.store.SaveProfile(ctx, p); err != nil {
			return added, fmt.Errorf("save profile %s: %w", link, err)
		}
		added++
	}

	// an empty list is more likely a page failure than an account that
	// unfollowed everyone
	if len(links) > 0 {
		pruned, err := a.store.PruneFollowing(ctx, links)
		if err != nil {
			return added, fmt.Errorf("prune following: %w", err)
		}
		if pruned > 0 {
			a.logger.Info().Int("pruned", pruned).Msg("removed profiles no longer followed")
		}
	}

	a.logger.Info().Int("added", added).Msg("following refreshed")
	return added, nil
}

// Unfollow unfollows up to count accounts and forgets them.
func (a *App) Unfollow(ctx context.Context, count int) ([]string, error) {
	username := a.Config().Account.Username
	if username == "" {
		return nil, ErrNoAccount
	}

	ctx, release, err := a.claim(ctx, ProcessUnfollow)
	if err != nil {
		return nil, err
	}
	defer release()

	tab, closeTab, err := a.openTab(ctx)
	if err != nil {
		return nil, err
	}
	defer closeTab()

	links, err := tab.Unfollow(ctx, username, count)

	forgetCtx := context.WithoutCancel(ctx)
	for _, link := range links {
		p, getErr := a.store.GetProfile(forgetCtx, link)
		if getErr != nil || p.Source != types.SourceFollowing {
			continue
		}
		if delErr := a.store.DeleteProfile(forgetCtx, link); delErr != nil {
			a.logger.Warn().Err(delErr).Str("link", link).Msg("failed to forget unfollowed profile")
		}
	}
	return links, err
}

// DeleteReplies deletes the account's replies, at most limit of them when
// limit is positive. Stored tweet history is kept, so engage does not
// reply again to posts whose replies were deleted.
func (a *App) DeleteReplies(ctx context.Context, limit int) (int, error) {
	return a.purge(ctx, ProcessDeleteReplies, limit, Browser.DeleteReplies)
}

// DeleteLikes unlikes the posts the account has liked, at most limit of
// them when limit is positive.
func (a *App) DeleteLikes(ctx context.Context, limit int) (int, error) {
	return a.purge(ctx, ProcessDeleteLikes, limit, Browser.Unlike)
}

func (a *App) purge(ctx context.Context, name string, limit int, do func(Browser, context.Context, string, int) (int, error)) (int, error) {
	username := a.Config().Account.Username
	if username == "" {
		return 0, ErrNoAccount
	}

	ctx, release, err := a.claim(ctx, name)
	if err != nil {
		return 0, err
	}
	defer release()

	tab, closeTab, err := a.openTab(ctx)
	if err != nil {
		return 0, err
	}
	defer closeTab()

	n, err := do(tab, ctx, username, limit)
	a.logger.Info().Str("process", name).Int("count", n).Err(err).Msg("purge finished")
	return n, err
}

// AddTarget verifies that username exists, scrapes its profile and stores
// it as an engagement target with replies enabled.
func (a *App) AddTarget(ctx context.Context, username string) (*types.Profile, error) {
	link := xclient.NormalizeProfileURL(username)
	if link == "" {
		return nil, fmt.Errorf("invalid username %q", username)
	}
	handle := xclient.UsernameFromLink(link)

	tab, closeTab, err := a.openTab(ctx)
	if err != nil {
		return nil, err
	}
	defer closeTab()

	if _, err := tab.UserExists(ctx, handle); err != nil {
		return nil, err
	}
	p, err := tab.ScrapeProfile(ctx, link)
	if err != nil {
		return nil, err
	}
	p.Source = types.SourceAdded
	p.Reply = true

	if err := a.store.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save target %s: %w", handle, err)
	}
	a.logger.Info().Str("username", handle).Msg("target added")
	return p, nil
}

// RemoveTarget deletes an added target.
func (a *App) RemoveTarget(ctx context.Context, username string) error {
	link, err := a.targetLink(ctx, username)
	if err != nil {
		return err
	}
	return a.store.DeleteProfile(ctx, link)
}

// SetTargetReply turns replies to an added target on or off.
func (a *App) SetTargetReply(ctx context.Context, username string, reply bool) error {
	link, err := a.targetLink(ctx, username)
	if err != nil {
		return err
	}
	return a.store.SetReply(ctx, link, reply)
}

// Targets lists the added targets.
func (a *App) Targets(ctx context.Context) ([]types.Profile, error) {
	return a.store.ListProfiles(ctx, types.SourceAdded)
}

// Following lists the stored following profiles.
func (a *App) Following(ctx context.Context) ([]types.Profile, error) {
	return a.store.ListProfiles(ctx, types.SourceFollowing)
}

func (a *App) targetLink(ctx context.Context, username string) (string, error) {
	link := xclient.NormalizeProfileURL(username)
	if link == "" {
		return "", fmt.Errorf("invalid username %q", username)
	}
	p, err := a.store.GetProfile(ctx, link)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", strings.TrimPrefix(username, "@"), ErrNotTarget)
		}
		return "", err
	}
	if p.Source != types.SourceAdded {
		return "", fmt.Errorf("%s: %w", p.Username, ErrNotTarget)
	}
	return link, nil
}

// Daemon runs the cron refresh, the engagement loop, the follow loop (when
// keywords are configured) and any extra servers until ctx is done or one
// of them fails.
func (a *App) Daemon(ctx context.Context, servers ...func(context.Context) error) error {
	cfg := a.Config()

	sched, err := scheduler.New(cfg.Schedule.Timezone,
		scheduler.WithJobTimeout(cfg.Schedule.JobTimeout.Std()),
		scheduler.WithLogger(a.logger.With().Str("component", "scheduler").Logger()),
	)
	if err != nil {
		return err
	}

	refresh := cfg.Schedule.RefreshFollowing != "" && cfg.Account.Username != ""
	if refresh {
		err := sched.AddJob(JobRefreshFollowing, cfg.Schedule.RefreshFollowing, func(ctx context.Context) error {
			_, err := a.RefreshFollowing(ctx)
			if errors.Is(err, ErrProcessRunning) {
				return nil
			}
			return err
		})
		if err != nil {
			return err
		}
	}

	a.mu.Lock()
	a.sched = sched
	a.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(ctx) })
	if refresh {
		g.Go(func() error {
			if err := sched.RunNow(ctx, JobRefreshFollowing); err != nil && ctx.Err() == nil {
				a.logger.Warn().Err(err).Msg("initial following refresh failed")
			}
			return nil
		})
	}
	g.Go(func() error { return a.StartEngage(ctx) })
	if len(cfg.Follow.Keywords) > 0 {
		g.Go(func() error { return a.StartFollow(ctx) })
	} else {
		a.logger.Info().Msg("no follow keywords configured, auto-follow disabled")
	}
	for _, serve := range servers {
		g.Go(func() error { return serve(ctx) })
	}

	a.logger.Info().Msg("daemon started")
	err = g.Wait()
	a.logger.Info().Err(err).Msg("daemon stopped")
	return err
}

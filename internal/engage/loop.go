// Package engage likes, and optionally replies to, the latest post of every
// target profile, round after round until stopped.
package engage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/store"
	"github.com/ibeckermayer/xbot/internal/types"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

// DefaultIdleWait is how long Run waits before re-reading an empty
// profile list.
const DefaultIdleWait = time.Minute

// Result is the outcome of one profile visit.
type Result struct {
	Link    string `json:"link"`
	TweetID string `json:"tweet_id,omitempty"`
	Liked   bool   `json:"liked"`
	Replied bool   `json:"replied"`
	Skipped bool   `json:"skipped"`
	Err     error  `json:"-"`
}

// Summary totals profile visits.
type Summary struct {
	Passes  int `json:"passes"`
	Visited int `json:"visited"`
	Liked   int `json:"liked"`
	Replied int `json:"replied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

func (s *Summary) add(r Result) {
	s.Visited++
	switch {
	case r.Err != nil:
		s.Failed++
	case r.Skipped:
		s.Skipped++
	}
	if r.Liked {
		s.Liked++
	}
	if r.Replied {
		s.Replied++
	}
}

// Observer is notified after each profile visit.
type Observer interface {
	OnResult(Result)
}

// Status is a snapshot of the loop.
type Status struct {
	Running bool    `json:"running"`
	Current string  `json:"current,omitempty"`
	Totals  Summary `json:"totals"`
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithObserver registers an Observer.
func WithObserver(obs Observer) Option {
	return func(l *Loop) { l.observer = obs }
}

// WithIdleWait overrides DefaultIdleWait.
func WithIdleWait(d time.Duration) Option {
	return func(l *Loop) { l.idleWait = d }
}

// WithSleep replaces the context-aware sleep used between retries.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(l *Loop) { l.sleep = sleep }
}

// WithNow replaces the wall clock used for timestamps.
func WithNow(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// Loop visits target profiles one by one.
type Loop struct {
	browser  Browser
	store    Store
	cfg      config.EngageConfig
	observer Observer
	idleWait time.Duration
	logger   zerolog.Logger
	sleep    func(context.Context, time.Duration) error
	now      func() time.Time

	mu      sync.Mutex
	running bool
	current string
	totals  Summary
}

// New creates a Loop.
func New(browser Browser, st Store, cfg config.EngageConfig, opts ...Option) *Loop {
	l := &Loop{
		browser:  browser,
		store:    st,
		cfg:      cfg,
		idleWait: DefaultIdleWait,
		logger:   zerolog.Nop(),
		sleep:    sleepCtx,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run repeats passes over the target list until ctx is done. It returns
// nil on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	l.setRunning(true)
	defer l.setRunning(false)

	l.logger.Info().Bool("include_following", l.cfg.IncludeFollowing).Msg("engagement loop started")
	defer l.logger.Info().Msg("engagement loop stopped")

	for ctx.Err() == nil {
		sum, err := l.RunOnce(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			l.logger.Error().Err(err).Msg("engagement pass failed")
			if l.sleep(ctx, l.cfg.RetryDelay.Std()) != nil {
				return nil
			}
		case sum.Visited == 0:
			l.logger.Debug().Dur("wait", l.idleWait).Msg("no profiles to engage")
			if l.sleep(ctx, l.idleWait) != nil {
				return nil
			}
		}
	}
	return nil
}

// RunOnce makes one pass over the profile list. A failure on one profile
// is logged and followed by the retry delay; the pass continues.
func (l *Loop) RunOnce(ctx context.Context) (Summary, error) {
	var sum Summary

	profiles, err := l.Profiles(ctx)
	if err != nil {
		return sum, err
	}

	for _, p := range profiles {
		if ctx.Err() != nil {
			break
		}
		res := l.EngageProfile(ctx, p)
		if ctx.Err() != nil {
			break
		}
		sum.add(res)
		l.record(res)

		if res.Err != nil {
			l.logger.Warn().Err(res.Err).Str("link", p.Link).Msg("engagement failed")
			if l.sleep(ctx, l.cfg.RetryDelay.Std()) != nil {
				break
			}
		}
	}
	sum.Passes = 1

	l.mu.Lock()
	l.totals.Passes++
	l.mu.Unlock()

	l.logger.Info().
		Int("visited", sum.Visited).
		Int("liked", sum.Liked).
		Int("replied", sum.Replied).
		Int("failed", sum.Failed).
		Msg("engagement pass finished")
	return sum, nil
}

// Profiles returns the targets of one pass: added profiles first, then
// followed ones when enabled.
func (l *Loop) Profiles(ctx context.Context) ([]types.Profile, error) {
	added, err := l.store.ListProfiles(ctx, types.SourceAdded)
	if err != nil {
		return nil, fmt.Errorf("list added profiles: %w", err)
	}
	if !l.cfg.IncludeFollowing {
		return added, nil
	}
	following, err := l.store.ListProfiles(ctx, types.SourceFollowing)
	if err != nil {
		return nil, fmt.Errorf("list following profiles: %w", err)
	}
	return append(added, following...), nil
}

// EngageProfile opens p, waits out any rate-limit notice, likes the latest
// post and replies to it when p.Reply is set and it was not replied to
// before. A profile without posts is skipped.
func (l *Loop) EngageProfile(ctx context.Context, p types.Profile) Result {
	res := Result{Link: p.Link}
	l.setCurrent(p.Link)
	defer l.setCurrent("")

	if err := l.browser.OpenProfile(ctx, p.Link); err != nil {
		res.Err = err
		return res
	}
	if _, err := l.browser.WaitOutRetry(ctx, l.cfg.RateLimitWait.Std()); err != nil {
		res.Err = err
		return res
	}

	post, err := l.browser.LatestPost(ctx)
	if errors.Is(err, xclient.ErrNoPost) {
		l.logger.Debug().Str("link", p.Link).Msg("no post to engage")
		res.Skipped = true
		return res
	}
	if err != nil {
		res.Err = err
		return res
	}
	res.TweetID = post.TweetID

	prior, err := l.store.GetTweet(ctx, post.TweetID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		res.Err = fmt.Errorf("load tweet %s: %w", post.TweetID, err)
		return res
	}

	liked, err := l.browser.Like(ctx, post)
	if err != nil {
		res.Err = err
		return res
	}
	res.Liked = liked

	tweet := &types.Tweet{
		TweetID:      post.TweetID,
		Link:         post.Link,
		Username:     post.Author,
		Liked:        true,
		InteractedAt: l.now(),
	}
	if tweet.Username == "" {
		tweet.Username = p.Username
	}

	alreadyReplied := prior != nil && prior.Replied
	if p.Reply && l.cfg.ReplyText != "" && !alreadyReplied {
		if err := l.browser.Reply(ctx, post, l.cfg.ReplyText); err != nil {
			res.Err = err
		} else {
			res.Replied = true
			tweet.Replied = true
		}
	}

	if _, err := l.store.SaveTweet(context.WithoutCancel(ctx), tweet); err != nil {
		res.Err = errors.Join(res.Err, fmt.Errorf("save tweet %s: %w", tweet.TweetID, err))
		return res
	}

	if res.Err == nil {
		l.logger.Info().
			Str("tweet", tweet.TweetID).
			Str("user", tweet.Username).
			Bool("liked", res.Liked).
			Bool("replied", res.Replied).
			Msg("engaged")
	}
	return res
}

// Status returns the running flag, current profile and lifetime totals.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Status{Running: l.running, Current: l.current, Totals: l.totals}
}

func (l *Loop) record(res Result) {
	l.mu.Lock()
	l.totals.add(res)
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.OnResult(res)
	}
}

func (l *Loop) setRunning(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = v
}

func (l *Loop) setCurrent(link string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = link
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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

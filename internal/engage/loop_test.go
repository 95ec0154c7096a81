package engage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/ibeckermayer/xbot/internal/config"
	"github.com/ibeckermayer/xbot/internal/store"
	"github.com/ibeckermayer/xbot/internal/types"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.EngageConfig {
	return config.EngageConfig{
		ReplyText:        "great post",
		IncludeFollowing: true,
		RetryDelay:       config.Duration(5 * time.Second),
		RateLimitWait:    config.Duration(2 * time.Minute),
	}
}

// sleepLog records requested sleeps without waiting.
type sleepLog struct {
	mu    sync.Mutex
	slept []time.Duration
	hook  func()
}

func (s *sleepLog) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.slept = append(s.slept, d)
	hook := s.hook
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return ctx.Err()
}

type resultLog struct {
	results []Result
}

func (r *resultLog) OnResult(res Result) { r.results = append(r.results, res) }

func newTestLoop(t *testing.T, cfg config.EngageConfig, opts ...Option) (*Loop, *MockBrowser, *MockStore, *sleepLog) {
	t.Helper()
	ctrl := gomock.NewController(t)
	browser := NewMockBrowser(ctrl)
	st := NewMockStore(ctrl)
	sl := &sleepLog{}
	opts = append([]Option{WithSleep(sl.sleep), WithNow(func() time.Time { return fixedNow })}, opts...)
	return New(browser, st, cfg, opts...), browser, st, sl
}

func post(id string) xclient.Post {
	return xclient.Post{Link: "https://x.com/alice/status/" + id, TweetID: id, Author: "alice"}
}

func TestProfilesOrder(t *testing.T) {
	added := []types.Profile{{Link: "https://x.com/target", Source: types.SourceAdded}}
	following := []types.Profile{{Link: "https://x.com/friend", Source: types.SourceFollowing}}

	tests := []struct {
		name             string
		includeFollowing bool
		want             []string
	}{
		{"added then following", true, []string{"https://x.com/target", "https://x.com/friend"}},
		{"added only", false, []string{"https://x.com/target"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.IncludeFollowing = tt.includeFollowing
			l, _, st, _ := newTestLoop(t, cfg)

			st.EXPECT().ListProfiles(gomock.Any(), types.SourceAdded).Return(added, nil)
			if tt.includeFollowing {
				st.EXPECT().ListProfiles(gomock.Any(), types.SourceFollowing).Return(following, nil)
			}

			got, err := l.Profiles(context.Background())
			if err != nil {
				t.Fatalf("Profiles() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Profiles() returned %d profiles, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Link != tt.want[i] {
					t.Errorf("Profiles()[%d] = %s, want %s", i, p.Link, tt.want[i])
				}
			}
		})
	}
}

func TestEngageProfileLikesAndReplies(t *testing.T) {
	l, browser, st, _ := newTestLoop(t, testConfig())
	p := types.Profile{Link: "https://x.com/alice", Username: "alice", Reply: true}
	latest := post("100")

	gomock.InOrder(
		browser.EXPECT().OpenProfile(gomock.Any(), p.Link).Return(nil),
		browser.EXPECT().WaitOutRetry(gomock.Any(), 2*time.Minute).Return(false, nil),
		browser.EXPECT().LatestPost(gomock.Any()).Return(latest, nil),
		st.EXPECT().GetTweet(gomock.Any(), "100").Return(nil, store.ErrNotFound),
		browser.EXPECT().Like(gomock.Any(), latest).Return(true, nil),
		browser.EXPECT().Reply(gomock.Any(), latest, "great post").Return(nil),
		st.EXPECT().SaveTweet(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tw *types.Tweet) (bool, error) {
			if !tw.Liked || !tw.Replied {
				t.Errorf("saved tweet liked=%v replied=%v, want both true", tw.Liked, tw.Replied)
			}
			if tw.Username != "alice" || !tw.InteractedAt.Equal(fixedNow) {
				t.Errorf("saved tweet = %+v", tw)
			}
			return true, nil
		}),
	)

	res := l.EngageProfile(context.Background(), p)
	if res.Err != nil {
		t.Fatalf("EngageProfile() error = %v", res.Err)
	}
	if !res.Liked || !res.Replied || res.TweetID != "100" {
		t.Errorf("EngageProfile() = %+v, want liked and replied tweet 100", res)
	}
}

func TestEngageProfileDoesNotReplyTwice(t *testing.T) {
	l, browser, st, _ := newTestLoop(t, testConfig())
	p := types.Profile{Link: "https://x.com/alice", Reply: true}
	latest := post("101")

	browser.EXPECT().OpenProfile(gomock.Any(), p.Link).Return(nil)
	browser.EXPECT().WaitOutRetry(gomock.Any(), gomock.Any()).Return(false, nil)
	browser.EXPECT().LatestPost(gomock.Any()).Return(latest, nil)
	st.EXPECT().GetTweet(gomock.Any(), "101").Return(&types.Tweet{TweetID: "101", Liked: true, Replied: true}, nil)
	browser.EXPECT().Like(gomock.Any(), latest).Return(false, nil)
	st.EXPECT().SaveTweet(gomock.Any(), gomock.Any()).Return(false, nil)

	res := l.EngageProfile(context.Background(), p)
	if res.Err != nil || res.Replied || res.Liked {
		t.Errorf("EngageProfile() = %+v, want no new like or reply", res)
	}
}

func TestEngageProfileWithoutReplyFlag(t *testing.T) {
	l, browser, st, _ := newTestLoop(t, testConfig())
	p := types.Profile{Link: "https://x.com/alice", Reply: false}
	latest := post("102")

	browser.EXPECT().OpenProfile(gomock.Any(), p.Link).Return(nil)
	browser.EXPECT().WaitOutRetry(gomock.Any(), gomock.Any()).Return(true, nil)
	browser.EXPECT().LatestPost(gomock.Any()).Return(latest, nil)
	st.EXPECT().GetTweet(gomock.Any(), "102").Return(nil, store.ErrNotFound)
	browser.EXPECT().Like(gomock.Any(), latest).Return(true, nil)
	st.EXPECT().SaveTweet(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tw *types.Tweet) (bool, error) {
		if tw.Replied {
			t.Error("saved tweet marked replied without reply flag")
		}
		return true, nil
	})

	if res := l.EngageProfile(context.Background(), p); res.Err != nil || !res.Liked {
		t.Errorf("EngageProfile() = %+v, want liked", res)
	}
}

func TestEngageProfileSkipsWithoutPost(t *testing.T) {
	l, browser, _, _ := newTestLoop(t, testConfig())
	p := types.Profile{Link: "https://x.com/quiet"}

	browser.EXPECT().OpenProfile(gomock.Any(), p.Link).Return(nil)
	browser.EXPECT().WaitOutRetry(gomock.Any(), gomock.Any()).Return(false, nil)
	browser.EXPECT().LatestPost(gomock.Any()).Return(xclient.Post{}, xclient.ErrNoPost)

	res := l.EngageProfile(context.Background(), p)
	if !res.Skipped || res.Err != nil {
		t.Errorf("EngageProfile() = %+v, want skipped without error", res)
	}
}

func TestEngageProfileSavesLikeWhenReplyFails(t *testing.T) {
	l, browser, st, _ := newTestLoop(t, testConfig())
	p := types.Profile{Link: "https://x.com/alice", Reply: true}
	latest := post("103")
	replyErr := errors.New("send reply: timeout")

	browser.EXPECT().OpenProfile(gomock.Any(), p.Link).Return(nil)
	browser.EXPECT().WaitOutRetry(gomock.Any(), gomock.Any()).Return(false, nil)
	browser.EXPECT().LatestPost(gomock.Any()).Return(latest, nil)
	st.EXPECT().GetTweet(gomock.Any(), "103").Return(nil, store.ErrNotFound)
	browser.EXPECT().Like(gomock.Any(), latest).Return(true, nil)
	browser.EXPECT().Reply(gomock.Any(), latest, gomock.Any()).Return(replyErr)
	st.EXPECT().SaveTweet(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tw *types.Tweet) (bool, error) {
		if !tw.Liked || tw.Replied {
			t.Errorf("saved tweet liked=%v replied=%v, want true/false", tw.Liked, tw.Replied)
		}
		return true, nil
	})

	res := l.EngageProfile(context.Background(), p)
	if !errors.Is(res.Err, replyErr) {
		t.Errorf("EngageProfile() error = %v, want %v", res.Err, replyErr)
	}
}

func TestRunOnceContinuesAfterFailure(t *testing.T) {
	obs := &resultLog{}
	cfg := testConfig()
	cfg.IncludeFollowing = false
	l, browser, st, sl := newTestLoop(t, cfg, WithObserver(obs))

	broken := types.Profile{Link: "https://x.com/broken"}
	ok := types.Profile{Link: "https://x.com/alice"}
	openErr := errors.New("open profile: deadline exceeded")
	latest := post("200")

	st.EXPECT().ListProfiles(gomock.Any(), types.SourceAdded).Return([]types.Profile{broken, ok}, nil)
	gomock.InOrder(
		browser.EXPECT().OpenProfile(gomock.Any(), broken.Link).Return(openErr),
		browser.EXPECT().OpenProfile(gomock.Any(), ok.Link).Return(nil),
	)
	browser.EXPECT().WaitOutRetry(gomock.Any(), gomock.Any()).Return(false, nil)
	browser.EXPECT().LatestPost(gomock.Any()).Return(latest, nil)
	st.EXPECT().GetTweet(gomock.Any(), "200").Return(nil, store.ErrNotFound)
	browser.EXPECT().Like(gomock.Any(), latest).Return(true, nil)
	st.EXPECT().SaveTweet(gomock.Any(), gomock.Any()).Return(true, nil)

	sum, err := l.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	want := Summary{Passes: 1, Visited: 2, Liked: 1, Failed: 1}
	if sum != want {
		t.Errorf("RunOnce() = %+v, want %+v", sum, want)
	}
	if len(sl.slept) != 1 || sl.slept[0] != 5*time.Second {
		t.Errorf("slept %v, want one retry delay of 5s", sl.slept)
	}
	if len(obs.results) != 2 || !errors.Is(obs.results[0].Err, openErr) {
		t.Errorf("observer results = %+v", obs.results)
	}
	if got := l.Status().Totals; got != want {
		t.Errorf("Status().Totals = %+v, want %+v", got, want)
	}
}

func TestRunOnceListError(t *testing.T) {
	l, _, st, _ := newTestLoop(t, testConfig())
	dbErr := errors.New("database is locked")
	st.EXPECT().ListProfiles(gomock.Any(), types.SourceAdded).Return(nil, dbErr)

	if _, err := l.RunOnce(context.Background()); !errors.Is(err, dbErr) {
		t.Errorf("RunOnce() error = %v, want %v", err, dbErr)
	}
}

func TestRunReturnsNilWhenCancelled(t *testing.T) {
	l, _, st, sl := newTestLoop(t, testConfig(), WithIdleWait(30*time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st.EXPECT().ListProfiles(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	sl.hook = cancel

	if err := l.Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if len(sl.slept) != 1 || sl.slept[0] != 30*time.Second {
		t.Errorf("slept %v, want one idle wait", sl.slept)
	}
	if l.Status().Running {
		t.Error("Status().Running = true after Run returned")
	}
}

func TestRunRetriesAfterListError(t *testing.T) {
	l, _, st, sl := newTestLoop(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st.EXPECT().ListProfiles(gomock.Any(), types.SourceAdded).Return(nil, errors.New("disk I/O error"))
	sl.hook = cancel

	if err := l.Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if len(sl.slept) != 1 || sl.slept[0] != 5*time.Second {
		t.Errorf("slept %v, want one retry delay", sl.slept)
	}
}

func TestSleepCtx(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx() error = %v, want context.Canceled", err)
	}
	if err := sleepCtx(context.Background(), 0); err != nil {
		t.Errorf("sleepCtx(0) error = %v, want nil", err)
	}
}

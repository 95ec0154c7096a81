package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ibeckermayer/xbot/internal/types"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=app

// Browser is one tab of the automation browser.
type Browser interface {
	UserExists(ctx context.Context, username string) (string, error)
	ScrapeProfile(ctx context.Context, link string) (*types.Profile, error)
	FollowingLinks(ctx context.Context, username string) ([]string, error)
	FollowByKeywords(ctx context.Context, keywords []string, limit int) ([]string, error)
	Unfollow(ctx context.Context, username string, count int) ([]string, error)
	OpenProfile(ctx context.Context, link string) error
	WaitOutRetry(ctx context.Context, wait time.Duration) (bool, error)
	LatestPost(ctx context.Context) (xclient.Post, error)
	Like(ctx context.Context, post xclient.Post) (bool, error)
	Reply(ctx context.Context, post xclient.Post, text string) error
	DeleteReplies(ctx context.Context, username string, limit int) (int, error)
	Unlike(ctx context.Context, username string, limit int) (int, error)
}

// Store is the persistence the processes share.
type Store interface {
	SaveProfile(ctx context.Context, p *types.Profile) error
	GetProfile(ctx context.Context, link string) (*types.Profile, error)
	IsProfileInFollowing(ctx context.Context, link string) (bool, error)
	ListProfiles(ctx context.Context, source types.Source) ([]types.Profile, error)
	DeleteProfile(ctx context.Context, link string) error
	SetReply(ctx context.Context, link string, reply bool) error
	PruneFollowing(ctx context.Context, keep []string) (int, error)
	GetTweet(ctx context.Context, tweetID string) (*types.Tweet, error)
	SaveTweet(ctx context.Context, t *types.Tweet) (bool, error)
	StartSession(ctx context.Context, sess *types.PacingSession) error
	StopSession(ctx context.Context, id uuid.UUID, stoppedAt time.Time, followed int) error
	RecordFollow(ctx context.Context, rec types.FollowRecord) error
	Ping(ctx context.Context) error
}

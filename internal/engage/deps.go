package engage

import (
	"context"
	"time"

	"github.com/ibeckermayer/xbot/internal/types"
	"github.com/ibeckermayer/xbot/internal/xclient"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=engage

// Browser is the subset of the X controller the loop drives.
type Browser interface {
	OpenProfile(ctx context.Context, link string) error
	WaitOutRetry(ctx context.Context, wait time.Duration) (bool, error)
	LatestPost(ctx context.Context) (xclient.Post, error)
	Like(ctx context.Context, post xclient.Post) (bool, error)
	Reply(ctx context.Context, post xclient.Post, text string) error
}

// Store lists targets and remembers engaged tweets.
type Store interface {
	ListProfiles(ctx context.Context, source types.Source) ([]types.Profile, error)
	GetTweet(ctx context.Context, tweetID string) (*types.Tweet, error)
	SaveTweet(ctx context.Context, t *types.Tweet) (bool, error)
}

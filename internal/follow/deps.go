package follow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ibeckermayer/xbot/internal/types"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=follow

// Follower follows suggested accounts whose bio matches keywords and
// returns the links it followed.
type Follower interface {
	FollowByKeywords(ctx context.Context, keywords []string, limit int) ([]string, error)
}

// Recorder persists pacing sessions and the follows made in them.
type Recorder interface {
	StartSession(ctx context.Context, sess *types.PacingSession) error
	StopSession(ctx context.Context, id uuid.UUID, stoppedAt time.Time, followed int) error
	RecordFollow(ctx context.Context, rec types.FollowRecord) error
}

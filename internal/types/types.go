package types

import (
	"time"

	"github.com/google/uuid"
)

// Source records how a profile entered the store.
type Source string

const (
	// SourceFollowing profiles were scraped from the account's following list.
	SourceFollowing Source = "following"
	// SourceAdded profiles were added by hand as engagement targets.
	SourceAdded Source = "added"
)

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	return s == SourceFollowing || s == SourceAdded
}

// Profile represents an X account the bot knows about
type Profile struct {
	Link           string    `json:"link"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Website        string    `json:"website"`
	Joined         string    `json:"joined"`
	FollowingCount int       `json:"following_count"`
	FollowersCount int       `json:"followers_count"`
	Reply          bool      `json:"reply"` // reply to the latest post as well as liking it
	Source         Source    `json:"source"`
	ScrapedAt      time.Time `json:"scraped_at"`
}

// Tweet is a post the bot has interacted with
type Tweet struct {
	TweetID      string    `json:"tweet_id"`
	Link         string    `json:"link"`
	Username     string    `json:"username"`
	Liked        bool      `json:"liked"`
	Replied      bool      `json:"replied"`
	InteractedAt time.Time `json:"interacted_at"`
}

// FollowRecord is one successful follow made during a pacing session
type FollowRecord struct {
	SessionID   uuid.UUID `json:"session_id"`
	ProfileLink string    `json:"profile_link"`
	FollowedAt  time.Time `json:"followed_at"`
}

// PacingSession is a persisted run of the auto-follow pacer
type PacingSession struct {
	ID           uuid.UUID     `json:"id"`
	TotalCount   int           `json:"total_count"`
	BatchSize    int           `json:"batch_size"`
	Window       time.Duration `json:"window"`
	PerItem      time.Duration `json:"per_item"`
	RestInterval time.Duration `json:"rest_interval"`
	StartedAt    time.Time     `json:"started_at"`
	StoppedAt    *time.Time    `json:"stopped_at,omitempty"`
	Followed     int           `json:"followed"`
}

// Active reports whether the session has not been stopped.
func (s PacingSession) Active() bool {
	return s.StoppedAt == nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ibeckermayer/xbot/internal/types"
)

// SaveTweet records an interaction with a tweet. The first save inserts the
// row and reports inserted; later saves keep any earlier like or reply and
// bump the interaction time.
func (s *Store) SaveTweet(ctx context.Context, t *types.Tweet) (inserted bool, err error) {
	if t.TweetID == "" {
		return false, errors.New("save tweet: empty tweet id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO tweets (tweet_id, link, username, liked, replied, interacted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(tweet_id) DO NOTHING
	`, t.TweetID, t.Link, t.Username, t.Liked, t.Replied, t.InteractedAt)
	if err != nil {
		return false, fmt.Errorf("save tweet %s: %w", t.TweetID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if n == 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE tweets SET
				liked = liked OR ?,
				replied = replied OR ?,
				interacted_at = ?
			WHERE tweet_id = ?
		`, t.Liked, t.Replied, t.InteractedAt, t.TweetID)
		if err != nil {
			return false, fmt.Errorf("update tweet %s: %w", t.TweetID, err)
		}
	}

	return n > 0, tx.Commit()
}

// GetTweet returns a stored tweet by id.
func (s *Store) GetTweet(ctx context.Context, tweetID string) (*types.Tweet, error) {
	var t types.Tweet
	var username sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT tweet_id, link, username, liked, replied, interacted_at
		FROM tweets WHERE tweet_id = ?
	`, tweetID).Scan(&t.TweetID, &t.Link, &username, &t.Liked, &t.Replied, &t.InteractedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Username = username.String
	return &t, nil
}

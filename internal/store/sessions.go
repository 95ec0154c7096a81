package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ibeckermayer/xbot/internal/types"
)

// StartSession persists a new pacing session. A zero ID is replaced with a
// fresh UUID and a zero StartedAt with the current time.
func (s *Store) StartSession(ctx context.Context, sess *types.PacingSession) error {
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pacing_sessions (id, total_count, batch_size, window_ns,
			per_item_ns, rest_interval_ns, started_at, followed)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, sess.ID.String(), sess.TotalCount, sess.BatchSize, int64(sess.Window),
		int64(sess.PerItem), int64(sess.RestInterval), sess.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// StopSession closes a session with its final follow count.
func (s *Store) StopSession(ctx context.Context, id uuid.UUID, stoppedAt time.Time, followed int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pacing_sessions SET stopped_at = ?, followed = ?
		WHERE id = ?
	`, stoppedAt.UTC(), followed, id.String())
	if err != nil {
		return fmt.Errorf("stop session %s: %w", id, err)
	}
	return affectedOrNotFound(res)
}

// GetSession loads a session by id.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*types.PacingSession, error) {
	row := s.db.QueryRowContext(ctx, sessionSelect+` WHERE id = ?`, id.String())
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return sess, err
}

// ListSessions returns the most recent sessions first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]types.PacingSession, error) {
	rows, err := s.db.QueryContext(ctx, sessionSelect+` ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []types.PacingSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// RecordFollow stores one follow made during a session.
func (s *Store) RecordFollow(ctx context.Context, rec types.FollowRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO follows (session_id, profile_link, followed_at)
		VALUES (?, ?, ?)
	`, rec.SessionID.String(), rec.ProfileLink, rec.FollowedAt.UTC())
	if err != nil {
		return fmt.Errorf("record follow %s: %w", rec.ProfileLink, err)
	}
	return nil
}

// CountFollowsSince counts follows made at or after since, across sessions.
func (s *Store) CountFollowsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE followed_at >= ?`, since.UTC()).Scan(&n)
	return n, err
}

const sessionSelect = `
	SELECT id, total_count, batch_size, window_ns, per_item_ns,
		rest_interval_ns, started_at, stopped_at, followed
	FROM pacing_sessions`

func scanSession(row rowScanner) (*types.PacingSession, error) {
	var sess types.PacingSession
	var id string
	var window, perItem, rest int64
	var stopped sql.NullTime

	err := row.Scan(&id, &sess.TotalCount, &sess.BatchSize, &window, &perItem,
		&rest, &sess.StartedAt, &stopped, &sess.Followed)
	if err != nil {
		return nil, err
	}

	sess.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("session id %q: %w", id, err)
	}
	sess.Window = time.Duration(window)
	sess.PerItem = time.Duration(perItem)
	sess.RestInterval = time.Duration(rest)
	if stopped.Valid {
		t := stopped.Time
		sess.StoppedAt = &t
	}
	return &sess, nil
}

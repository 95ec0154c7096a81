package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ibeckermayer/xbot/internal/types"
)

// SaveProfile inserts or updates a profile. A profile added by hand stays
// an added target even when it later shows up in the following list, and
// its reply flag is only changed by another manual add or SetReply.
func (s *Store) SaveProfile(ctx context.Context, p *types.Profile) error {
	if !p.Source.Valid() {
		return fmt.Errorf("save profile %s: invalid source %q", p.Link, p.Source)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (link, username, name, bio, location, website, joined,
			following_count, followers_count, reply, source, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			username = excluded.username,
			name = excluded.name,
			bio = excluded.bio,
			location = excluded.location,
			website = excluded.website,
			joined = excluded.joined,
			following_count = excluded.following_count,
			followers_count = excluded.followers_count,
			reply = CASE WHEN excluded.source = 'added' THEN excluded.reply ELSE profiles.reply END,
			source = CASE WHEN profiles.source = 'added' THEN profiles.source ELSE excluded.source END,
			scraped_at = excluded.scraped_at
	`, p.Link, p.Username, p.Name, p.Bio, p.Location, p.Website, p.Joined,
		p.FollowingCount, p.FollowersCount, p.Reply, string(p.Source), p.ScrapedAt)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", p.Link, err)
	}
	return nil
}

// GetProfile returns the profile stored under link.
func (s *Store) GetProfile(ctx context.Context, link string) (*types.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT link, username, name, bio, location, website, joined,
			following_count, followers_count, reply, source, scraped_at
		FROM profiles WHERE link = ?
	`, link)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// IsProfileInFollowing reports whether link was scraped from the following list.
func (s *Store) IsProfileInFollowing(ctx context.Context, link string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE link = ? AND source = 'following')`,
		link).Scan(&exists)
	return exists, err
}

// ListProfiles returns profiles of the given source, or all profiles when
// source is empty. Added targets come first.
func (s *Store) ListProfiles(ctx context.Context, source types.Source) ([]types.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT link, username, name, bio, location, website, joined,
			following_count, followers_count, reply, source, scraped_at
		FROM profiles
		WHERE ? = '' OR source = ?
		ORDER BY CASE source WHEN 'added' THEN 0 ELSE 1 END, scraped_at, link
	`, string(source), string(source))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []types.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile.
func (s *Store) DeleteProfile(ctx context.Context, link string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE link = ?`, link)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// SetReply turns replying on or off for a profile.
func (s *Store) SetReply(ctx context.Context, link string, reply bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE profiles SET reply = ? WHERE link = ?`, reply, link)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// PruneFollowing deletes following-list profiles whose link is not in keep,
// returning how many were removed. Added targets are never pruned.
func (s *Store) PruneFollowing(ctx context.Context, keep []string) (int, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, link := range keep {
		keepSet[link] = struct{}{}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT link FROM profiles WHERE source = 'following'`)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			rows.Close()
			return 0, err
		}
		if _, ok := keepSet[link]; !ok {
			stale = append(stale, link)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, link := range stale {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM profiles WHERE link = ? AND source = 'following'`, link); err != nil {
			return 0, fmt.Errorf("prune %s: %w", link, err)
		}
	}
	return len(stale), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*types.Profile, error) {
	var p types.Profile
	var name, bio, location, website, joined sql.NullString
	var following, followers sql.NullInt64
	var source string

	err := row.Scan(
		&p.Link, &p.Username, &name, &bio, &location, &website, &joined,
		&following, &followers, &p.Reply, &source, &p.ScrapedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Name = name.String
	p.Bio = bio.String
	p.Location = location.String
	p.Website = website.String
	p.Joined = joined.String
	p.FollowingCount = int(following.Int64)
	p.FollowersCount = int(followers.Int64)
	p.Source = types.Source(source)
	return &p, nil
}

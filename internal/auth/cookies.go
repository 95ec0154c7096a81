package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/ibeckermayer/xbot/internal/config"
)

const (
	authTokenCookie = "auth_token"
	csrfCookie      = "ct0"
	xDomain         = "x.com"
)

// requiredCookies must all be present and non-empty for a session to be
// usable. Their earliest expiry is the session's expiry.
var requiredCookies = []string{authTokenCookie, csrfCookie}

// Session is the cookie file's content.
type Session struct {
	Cookies   []*network.Cookie `json:"cookies"`
	SavedAt   time.Time         `json:"saved_at"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// usable reports whether every required cookie is set and the session has
// not expired at now.
func (s *Session) usable(now time.Time) bool {
	if !now.Before(s.ExpiresAt) {
		return false
	}
	for _, name := range requiredCookies {
		i := slices.IndexFunc(s.Cookies, func(c *network.Cookie) bool { return c.Name == name })
		if i < 0 || s.Cookies[i].Value == "" {
			return false
		}
	}
	return true
}

// CookieStore keeps the X session in a JSON file readable only by the
// current user.
type CookieStore struct {
	path string
	now  func() time.Time
}

func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path, now: time.Now}
}

// DefaultCookieStorePath is cookies.json in the config dir.
func DefaultCookieStorePath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cookies.json"), nil
}

// Path returns the file the store reads and writes.
func (cs *CookieStore) Path() string {
	return cs.path
}

// Save replaces the stored session with cookies. The file is written to a
// temporary name first so a crash never leaves half a session behind.
func (cs *CookieStore) Save(cookies []*network.Cookie) error {
	dir := filepath.Dir(cs.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create cookie dir: %w", err)
	}

	data, err := json.MarshalIndent(Session{
		Cookies:   cookies,
		SavedAt:   cs.now(),
		ExpiresAt: sessionExpiry(cookies),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cookies-*.json")
	if err != nil {
		return fmt.Errorf("write cookies: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cookies: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cookies: %w", err)
	}
	// CreateTemp already uses 0600
	return os.Rename(tmp.Name(), cs.path)
}

// Load reads the stored session. A missing file matches fs.ErrNotExist.
func (cs *CookieStore) Load() (*Session, error) {
	data, err := os.ReadFile(cs.path)
	if err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", cs.path, err)
	}
	return &s, nil
}

// Valid reports whether a stored session exists and is still usable.
func (cs *CookieStore) Valid() bool {
	s, err := cs.Load()
	return err == nil && s.usable(cs.now())
}

// Clear deletes the stored session. Clearing an empty store is not an
// error.
func (cs *CookieStore) Clear() error {
	if err := os.Remove(cs.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// XCookies returns the stored cookies set for x.com or its subdomains.
func (cs *CookieStore) XCookies() ([]*network.Cookie, error) {
	s, err := cs.Load()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(s.Cookies, func(c *network.Cookie) bool {
		return !isXDomain(c.Domain)
	}), nil
}

func isXDomain(domain string) bool {
	d := strings.TrimPrefix(domain, ".")
	return d == xDomain || strings.HasSuffix(d, "."+xDomain)
}

// sessionExpiry is the earliest expiry among the required cookies, or the
// zero time when none of them is present.
func sessionExpiry(cookies []*network.Cookie) time.Time {
	var earliest time.Time
	for _, c := range cookies {
		if !slices.Contains(requiredCookies, c.Name) {
			continue
		}
		exp := time.Unix(int64(c.Expires), 0)
		if earliest.IsZero() || exp.Before(earliest) {
			earliest = exp
		}
	}
	return earliest
}

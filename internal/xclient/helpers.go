package xclient

import (
	"net/url"
	"strconv"
	"strings"
)

// parseCount converts abbreviated counts like "1.2K", "5.7M" or "1,234"
// to integers. Unparseable input yields 0.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch strings.ToUpper(s[len(s)-1:]) {
	case "K":
		multiplier = 1_000
		s = s[:len(s)-1]
	case "M":
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case "B":
		multiplier = 1_000_000_000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value*multiplier + 0.5)
}

// tweetIDFromLink returns the status id of a tweet link, or "" when link
// is not a status URL.
func tweetIDFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "status" {
			id := parts[i+1]
			if _, err := strconv.ParseUint(id, 10, 64); err != nil {
				return ""
			}
			return id
		}
	}
	return ""
}

// matchesKeywords reports whether bio contains any keyword as a whole
// word, case-insensitively. An empty keyword list matches every bio.
func matchesKeywords(bio string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	padded := " " + strings.Join(strings.FieldsFunc(strings.ToLower(bio), isSeparator), " ") + " "
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(padded, " "+kw+" ") {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '.', ';', ':', '!', '?', '|', '(', ')', '"':
		return true
	}
	return false
}

// normalizeProfileURL turns "@user", "user", "x.com/user" or a
// twitter.com link into the canonical "https://x.com/user" form.
// It returns "" when no username can be found.
func normalizeProfileURL(s string) string {
	user := usernameFromLink(s)
	if user == "" {
		return ""
	}
	return "https://x.com/" + user
}

// usernameFromLink extracts the handle from a profile link or handle.
func usernameFromLink(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return ""
	}

	if !strings.Contains(s, "/") {
		return validHandle(s)
	}

	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "x.com" && host != "twitter.com" && host != "mobile.twitter.com" {
		return ""
	}
	first, _, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	return validHandle(first)
}

func validHandle(h string) string {
	if h == "" || len(h) > 15 {
		return ""
	}
	for _, r := range h {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return ""
		}
	}
	switch strings.ToLower(h) {
	case "home", "i", "explore", "notifications", "messages", "settings", "search", "login", "logout":
		return ""
	}
	return h
}

// NormalizeProfileURL is the exported form of normalizeProfileURL for
// commands that accept user input.
func NormalizeProfileURL(s string) string { return normalizeProfileURL(s) }

// UsernameFromLink is the exported form of usernameFromLink.
func UsernameFromLink(s string) string { return usernameFromLink(s) }

// TweetIDFromLink is the exported form of tweetIDFromLink.
func TweetIDFromLink(link string) string { return tweetIDFromLink(link) }

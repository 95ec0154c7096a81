package xclient

import "testing"

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"423", 423},
		{"1,234", 1234},
		{"1.2K", 1200},
		{"32.1K", 32100},
		{"5.7M", 5700000},
		{"2k", 2000},
		{" 15 ", 15},
		{"1B", 1000000000},
		{"abc", 0},
		{"K", 0},
		{"-4", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTweetIDFromLink(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://x.com/gopher/status/1790000000000000000", "1790000000000000000"},
		{"https://x.com/gopher/status/1790000000000000000/photo/1", "1790000000000000000"},
		{"https://twitter.com/gopher/status/42?s=20", "42"},
		{"https://x.com/gopher", ""},
		{"https://x.com/gopher/status/", ""},
		{"https://x.com/gopher/status/abc", ""},
		{"::not a url", ""},
	}
	for _, tt := range tests {
		if got := tweetIDFromLink(tt.link); got != tt.want {
			t.Errorf("tweetIDFromLink(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}

func TestMatchesKeywords(t *testing.T) {
	tests := []struct {
		name     string
		bio      string
		keywords []string
		want     bool
	}{
		{"no keywords matches all", "anything", nil, true},
		{"empty bio with keywords", "", []string{"go"}, false},
		{"whole word", "I write Go every day", []string{"go"}, true},
		{"case insensitive keyword", "crypto trader", []string{"Crypto"}, true},
		{"substring is not a word", "google engineer", []string{"go"}, false},
		{"punctuation boundary", "founder, investor.", []string{"investor"}, true},
		{"keyword at start", "developer and writer", []string{"developer"}, true},
		{"any of several", "photographer", []string{"dev", "photographer"}, true},
		{"blank keywords ignored", "photographer", []string{" ", ""}, false},
		{"multi word keyword", "open source maintainer", []string{"open source"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesKeywords(tt.bio, tt.keywords); got != tt.want {
				t.Errorf("matchesKeywords(%q, %q) = %v, want %v", tt.bio, tt.keywords, got, tt.want)
			}
		})
	}
}

func TestNormalizeProfileURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gopher", "https://x.com/gopher"},
		{"@gopher", "https://x.com/gopher"},
		{"x.com/gopher", "https://x.com/gopher"},
		{"https://x.com/gopher/", "https://x.com/gopher"},
		{"https://twitter.com/gopher/status/1", "https://x.com/gopher"},
		{"https://www.x.com/Go_Pher", "https://x.com/Go_Pher"},
		{"https://example.com/gopher", ""},
		{"https://x.com/home", ""},
		{"way_too_long_handle_name", ""},
		{"bad-handle", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeProfileURL(tt.in); got != tt.want {
			t.Errorf("normalizeProfileURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

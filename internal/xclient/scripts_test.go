package xclient

import (
	"strings"
	"testing"
)

func TestSelectors(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"mark", markSelector("r3"), `[data-xbot-mark="r3"]`},
		{"post unlike", postSelector("l1", UnlikeButton), `[data-xbot-mark="l1"] button[data-testid="unlike"]`},
		{"post menu", postSelector("r2", TweetMenu), `[data-xbot-mark="r2"] button[data-testid="caret"]`},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s selector = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestOwnReplyJS(t *testing.T) {
	script := ownReplyJS(`bad"name`)
	if !strings.Contains(script, `"bad\"name"`) {
		t.Errorf("ownReplyJS() does not quote the handle:\n%s", script)
	}
	for _, want := range []string{`"Replying to"`, `"data-xbot-mark"`, `"article[data-testid=\"tweet\"]"`} {
		if !strings.Contains(script, want) {
			t.Errorf("ownReplyJS() missing %s", want)
		}
	}
}

func TestLikedPostJS(t *testing.T) {
	script := likedPostJS()
	if !strings.Contains(script, `"button[data-testid=\"unlike\"]"`) {
		t.Errorf("likedPostJS() does not look for the unlike button:\n%s", script)
	}
}

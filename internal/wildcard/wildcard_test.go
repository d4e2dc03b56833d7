package wildcard

import "testing"

func TestToRegex(t *testing.T) {
	testCases := []struct {
		pattern, want string
	}{
		{"*.ads.example.com", `^.*\.ads\.example\.com$`},
		{"cdn?.example.com", `^cdn.\.example\.com$`},
		{"plain.example.com", `^plain\.example\.com$`},
	}
	for _, tc := range testCases {
		if got := ToRegex(tc.pattern); got != tc.want {
			t.Errorf("ToRegex(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		pattern, domain string
		want            bool
	}{
		{"*.ads.example.com", "x.ads.example.com", true},
		{"*.ads.example.com", "a.b.ads.example.com", true},
		{"*.ads.example.com", "ads.example.com", false},
		{"*.track.example.com", "a1c3.track.example.com", true},
		{"cdn?.example.com", "cdn1.example.com", true},
		{"cdn?.example.com", "cdn10.example.com", false},
	}
	for _, tc := range testCases {
		if got := Match(tc.pattern, tc.domain); got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.pattern, tc.domain, got, tc.want)
		}
	}
}

func TestMatchRegex(t *testing.T) {
	pattern := `^[^.]+\.[^.]+\.tracker\.net$`
	if !MatchRegex(pattern, "p.q.tracker.net") {
		t.Errorf("%q should match p.q.tracker.net", pattern)
	}
	if MatchRegex(pattern, "q.tracker.net") {
		t.Errorf("%q should not match q.tracker.net", pattern)
	}
	if MatchRegex("(", "anything") {
		t.Error("invalid pattern must not match")
	}
}

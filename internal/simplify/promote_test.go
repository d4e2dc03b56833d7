package simplify

import (
	"testing"

	"github.com/xxxbrian/surge-reject/internal/rule"
)

func TestPromoteDynamicLabels(t *testing.T) {
	testCases := []struct {
		name string
		in   rule.Rule
		want string // expected wildcard value, "" when not promoted
	}{
		{
			name: "digit label long enough",
			in:   rule.Rule{Type: rule.Domain, Value: "a1c3.track.example.com"},
			want: "*.track.example.com",
		},
		{
			name: "multiple dynamic labels",
			in:   rule.Rule{Type: rule.Domain, Value: "cdn01.node99.example.com"},
			want: "*.*.example.com",
		},
		{
			name: "short digit label stays",
			in:   rule.Rule{Type: rule.Domain, Value: "a1.track.example.com"},
			want: "",
		},
		{
			name: "no digits stays",
			in:   rule.Rule{Type: rule.Domain, Value: "static.track.example.com"},
			want: "",
		},
		{
			name: "registrable domain protected",
			in:   rule.Rule{Type: rule.Domain, Value: "www.host42.com"},
			want: "",
		},
		{
			name: "two labels only",
			in:   rule.Rule{Type: rule.Domain, Value: "host4242.com"},
			want: "",
		},
		{
			name: "non-domain type ignored",
			in:   rule.Rule{Type: rule.DomainSuffix, Value: "a1c3.track.example.com"},
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, promoted := PromoteDynamicLabels(tc.in)
			if tc.want == "" {
				if promoted {
					t.Fatalf("unexpected promotion to %q", got.Value)
				}
				return
			}
			if !promoted {
				t.Fatalf("expected promotion to %q, got none", tc.want)
			}
			if got.Type != rule.DomainWildcard {
				t.Errorf("type = %s, want DOMAIN-WILDCARD", got.Type)
			}
			if got.Value != tc.want {
				t.Errorf("value = %q, want %q", got.Value, tc.want)
			}
		})
	}
}

func TestPromoteDynamicLabelsKeepsOptions(t *testing.T) {
	in := rule.Rule{Type: rule.Domain, Value: "a1c3.track.example.com", Options: []string{"extended-matching"}}
	got, promoted := PromoteDynamicLabels(in)
	if !promoted {
		t.Fatal("expected promotion")
	}
	if !rule.EqualOptions(got.Options, in.Options) {
		t.Errorf("options = %v, want %v", got.Options, in.Options)
	}
}

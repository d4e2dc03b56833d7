package geoip_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/xxxbrian/surge-reject/internal/fetcher"
	"github.com/xxxbrian/surge-reject/internal/geoip"
	"github.com/xxxbrian/surge-reject/internal/rule"
)

func TestGeoIPIntegration(t *testing.T) {
	// 1. Download real DB
	resp, err := http.Get(fetcher.DefaultGeoIPURL)
	if err != nil {
		t.Skipf("Skipping test due to network error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Skipf("Skipping test due to download failure: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read DB: %v", err)
	}

	// 2. Load DB
	g := geoip.NewGeoIP()
	if err := g.Load(data); err != nil {
		t.Fatalf("Failed to load DB: %v", err)
	}

	// 3. Lookups
	testCases := []struct {
		code      string
		expectHit bool
	}{
		{"CN", true},
		{"JP", true},
		{"INVALIDXXXX", false},
	}
	for _, tc := range testCases {
		cidrs, found := g.GetCIDRs(tc.code)
		if found != tc.expectHit {
			t.Errorf("GetCIDRs(%s) = %v, want %v", tc.code, found, tc.expectHit)
		}
		if found && len(cidrs) == 0 {
			t.Errorf("GetCIDRs(%s) returned empty list", tc.code)
		}
	}

	// 4. Rule emission
	rules, found := g.Rules("CN", []string{"no-resolve"})
	if !found || len(rules) == 0 {
		t.Fatal("Rules(CN) returned nothing")
	}
	for _, r := range rules[:min(len(rules), 50)] {
		switch r.Type {
		case rule.IPCIDR:
			if strings.Contains(r.Value, ":") {
				t.Errorf("IPv6 CIDR typed as IP-CIDR: %s", r.Line())
			}
		case rule.IPCIDR6:
			if !strings.Contains(r.Value, ":") {
				t.Errorf("IPv4 CIDR typed as IP-CIDR6: %s", r.Line())
			}
		default:
			t.Errorf("unexpected rule type: %s", r.Line())
		}
		if len(r.Options) != 1 || r.Options[0] != "no-resolve" {
			t.Errorf("options not carried: %s", r.Line())
		}
	}
}

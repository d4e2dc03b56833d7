// Package geoip turns a GeoIP MMDB into IP-CIDR rules for the requested
// country codes.
package geoip

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/oschwald/maxminddb-golang"

	"github.com/xxxbrian/surge-reject/internal/rule"
)

// GeoIP indexes MMDB networks by country or category code.
type GeoIP struct {
	mu    sync.RWMutex
	cidrs map[string][]string
}

func NewGeoIP() *GeoIP {
	return &GeoIP{
		cidrs: make(map[string][]string),
	}
}

// Load parses the MMDB bytes and builds the in-memory index.
func (g *GeoIP) Load(data []byte) error {
	db, err := maxminddb.FromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to open mmdb: %w", err)
	}
	defer db.Close()

	newCIDRs := make(map[string][]string)

	networks := db.Networks(maxminddb.SkipAliasedNetworks)
	count := 0
	for networks.Next() {
		var record interface{}
		subnet, err := networks.Network(&record)
		if err != nil {
			continue
		}

		code := countryCode(record)
		if code == "" {
			continue
		}
		newCIDRs[code] = append(newCIDRs[code], subnet.String())
		count++
	}
	log.Printf("GeoIP DB loaded: %d networks, %d codes", count, len(newCIDRs))

	g.mu.Lock()
	g.cidrs = newCIDRs
	g.mu.Unlock()

	return nil
}

// countryCode extracts the ISO code from an MMDB record. Different databases
// store it under different shapes.
func countryCode(record interface{}) string {
	switch v := record.(type) {
	case string:
		return strings.ToUpper(v)
	case map[string]interface{}:
		if country, ok := v["country"].(map[string]interface{}); ok {
			if iso, ok := country["iso_code"].(string); ok {
				return strings.ToUpper(iso)
			}
		}
		if iso, ok := v["iso_code"].(string); ok {
			return strings.ToUpper(iso)
		}
		if code, ok := v["code"].(string); ok {
			return strings.ToUpper(code)
		}
	}
	return ""
}

// GetCIDRs returns the CIDR list for the given country code or category.
func (g *GeoIP) GetCIDRs(code string) ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cidrs, ok := g.cidrs[strings.ToUpper(code)]
	return cidrs, ok
}

// Rules converts the CIDR list for a country code into IP-CIDR and IP-CIDR6
// rules carrying the given options.
func (g *GeoIP) Rules(code string, options []string) ([]rule.Rule, bool) {
	cidrs, ok := g.GetCIDRs(code)
	if !ok {
		return nil, false
	}

	rules := make([]rule.Rule, 0, len(cidrs))
	for _, cidr := range cidrs {
		ruleType := rule.IPCIDR
		if strings.Contains(cidr, ":") {
			ruleType = rule.IPCIDR6
		}
		rules = append(rules, rule.Rule{Type: ruleType, Value: cidr, Options: options})
	}
	return rules, true
}

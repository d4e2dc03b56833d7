// Package builder runs the full generation pipeline: fetch every source,
// normalize, deduplicate, simplify, and render the final ruleset.
package builder

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/xxxbrian/surge-reject/internal/config"
	"github.com/xxxbrian/surge-reject/internal/converter"
	"github.com/xxxbrian/surge-reject/internal/fetcher"
	"github.com/xxxbrian/surge-reject/internal/geoip"
	"github.com/xxxbrian/surge-reject/internal/rule"
	"github.com/xxxbrian/surge-reject/internal/simplify"
)

// Builder assembles the reject ruleset from the configured sources.
type Builder struct {
	cfg        *config.Config
	fetcher    *fetcher.Fetcher
	geoFetcher *fetcher.GeoIPFetcher
	now        func() time.Time
}

// New creates a Builder. The clock is injectable so generated timestamps are
// testable; nil means time.Now.
func New(cfg *config.Config, f *fetcher.Fetcher, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	b := &Builder{cfg: cfg, fetcher: f, now: now}
	if cfg.GeoIP.Enabled() && cfg.GeoIP.Path == "" {
		b.geoFetcher = fetcher.NewGeoIPFetcher(cfg.GeoIP.URL)
	}
	return b
}

// Build fetches all sources and returns the rendered ruleset. Any fetch
// failure aborts the whole build; no partial result is produced and nothing
// is retried.
func (b *Builder) Build() (string, error) {
	var collected []rule.Rule
	sources := b.cfg.ConverterSources()
	for _, src := range sources {
		text, err := b.fetcher.Text(src.URL)
		if err != nil {
			return "", fmt.Errorf("failed to download %s: %w", src.URL, err)
		}
		collected = append(collected, converter.Parse(src.Dialect, text)...)
	}

	if b.cfg.GeoIP.Enabled() {
		geoRules, err := b.geoIPRules()
		if err != nil {
			return "", err
		}
		collected = append(collected, geoRules...)
	}

	simplified := simplify.Simplify(simplify.Dedupe(collected))
	return converter.Render(simplified, sources, b.now()), nil
}

func (b *Builder) geoIPRules() ([]rule.Rule, error) {
	cfg := b.cfg.GeoIP

	var data []byte
	var err error
	if cfg.Path != "" {
		data, err = os.ReadFile(cfg.Path)
	} else {
		data, err = b.geoFetcher.GetDB()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load GeoIP database: %w", err)
	}

	g := geoip.NewGeoIP()
	if err := g.Load(data); err != nil {
		return nil, err
	}

	var rules []rule.Rule
	for _, code := range cfg.Countries {
		countryRules, ok := g.Rules(code, cfg.Options)
		if !ok {
			log.Printf("[warn] no GeoIP networks for %q", code)
			continue
		}
		rules = append(rules, countryRules...)
	}
	return rules, nil
}

// WriteOutput writes the rendered ruleset to path, creating the parent
// directory when absent and replacing the file atomically.
func WriteOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

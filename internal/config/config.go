// Package config loads the generator configuration. A missing config file
// means the compiled-in defaults; a present file replaces them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xxxbrian/surge-reject/internal/converter"
)

// SourceConfig describes one upstream rule list.
type SourceConfig struct {
	Dialect     string `yaml:"dialect"` // "quanx" or "surge"
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// GeoIPConfig enables the optional GeoIP source. When Path is empty the
// database is downloaded from URL (or the default mirror).
type GeoIPConfig struct {
	Path      string   `yaml:"path,omitempty"`
	URL       string   `yaml:"url,omitempty"`
	Countries []string `yaml:"countries"`
	Options   []string `yaml:"options,omitempty"`
}

// Enabled reports whether the GeoIP source should run.
func (g *GeoIPConfig) Enabled() bool {
	return g != nil && len(g.Countries) > 0
}

// Config is the top-level generator configuration.
type Config struct {
	Output  string         `yaml:"output"`
	Timeout time.Duration  `yaml:"timeout,omitempty"`
	Sources []SourceConfig `yaml:"sources"`
	GeoIP   *GeoIPConfig   `yaml:"geoip,omitempty"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Output:  "ruleset/reject.list",
		Timeout: 30 * time.Second,
		Sources: []SourceConfig{
			{
				Dialect:     "quanx",
				URL:         "https://raw.githubusercontent.com/enriquephl/QuantumultX_config/main/filters/NoMalwares.conf",
				Description: "NoMalwares (Quantumult X)",
			},
			{
				Dialect:     "quanx",
				URL:         "https://raw.githubusercontent.com/Elysian-Realme/FuGfConfig/main/ConfigFile/QuantumultX/FuckRogueSoftwareRules.conf",
				Description: "FuckRogueSoftwareRules (Quantumult X)",
			},
			{
				Dialect:     "surge",
				URL:         "https://raw.githubusercontent.com/SukkaLab/ruleset.skk.moe/master/List/non_ip/reject-no-drop.conf",
				Description: "Reject No Drop (Surge)",
			},
		},
	}
}

// Load reads a YAML config file, filling omitted fields from defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	def := Default()
	if cfg.Output == "" {
		cfg.Output = def.Output
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = def.Sources
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, src := range c.Sources {
		switch converter.Dialect(src.Dialect) {
		case converter.DialectQuanX, converter.DialectSurge:
		default:
			return fmt.Errorf("unknown source dialect: %q", src.Dialect)
		}
		if src.URL == "" {
			return fmt.Errorf("source %q has no url", src.Description)
		}
	}
	return nil
}

// ConverterSources maps the configured sources onto converter descriptors.
func (c *Config) ConverterSources() []converter.Source {
	out := make([]converter.Source, 0, len(c.Sources))
	for _, src := range c.Sources {
		out = append(out, converter.Source{
			Dialect:     converter.Dialect(src.Dialect),
			URL:         src.URL,
			Description: src.Description,
		})
	}
	return out
}

// Package config assembles runtime settings for the labctl client from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence.
package config

import "time"

// Config holds runtime settings for the labctl CLI.
type Config struct {
	// BaseURL is the root URL of the Lab Journal service.
	BaseURL string
	// RequestTimeout is the fixed per-request timeout applied by the API
	// client.
	RequestTimeout time.Duration
	// DatabaseDSN locates the local SQLite database holding the persisted
	// session credential.
	DatabaseDSN string
	// StrictRestore makes a failed session restoration visible to the user
	// instead of silently starting anonymous.
	StrictRestore bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "labctl.db"
	c.StrictRestore = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

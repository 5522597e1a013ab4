package config

import "time"

// Config holds runtime settings for the catalog CLI.
//
// Fields:
//   - ServerBaseURL: base endpoint of the remote catalog API.
//   - DatabasePath: SQLite file holding the durable session storage.
//   - RequestTimeout: per-request timeout; zero keeps the transport default.
//   - RateLimit: outbound requests per second; zero disables limiting.
//   - LogLevel / LogFormat: slog level name and handler ("text" or "json").
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
	RateLimit      float64
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://dummyjson.com"
	c.DatabasePath = "catalog.db"
	c.RequestTimeout = 0
	c.RateLimit = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
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

// Package config handles configuration for the interactive client.
package config

import "time"

// Config holds runtime settings for the gateline client.
//
// Fields:
//   - ServerAddr: host:port of the server.
//   - ResponseTimeout: how long to wait for a server reply before giving up.
type Config struct {
	ServerAddr      string
	ResponseTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "localhost:1337"
	c.ResponseTimeout = 5 * time.Second
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

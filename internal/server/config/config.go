// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the gateline server.
//
// Fields:
//   - EndpointAddr: TCP bind address for the listener.
//   - UsersFile: path to the tab-delimited credentials file. Required;
//     startup fails when it is empty or the file is missing.
//   - PollTimeout: upper bound on one readiness wait. It only bounds how
//     quickly the loop notices shutdown; there is no other periodic work.
type Config struct {
	EndpointAddr string
	UsersFile    string
	PollTimeout  time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":1337"
	c.UsersFile = ""
	c.PollTimeout = 250 * time.Millisecond
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

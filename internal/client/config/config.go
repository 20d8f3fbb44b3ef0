// Package config holds runtime settings for the SightPass CLI.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend API (scheme://host:port).
//   - RequestTimeout: per-request HTTP timeout.
//   - StorePath: sqlite file holding the persisted session.
//   - CaptureCommand: external grabber command producing one still on stdout.
//   - CaptureFile: still image file used instead of a camera, when set.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	StorePath          string
	CaptureCommand     string
	CaptureFile        string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.StorePath = "session.db"
	c.CaptureCommand = "fswebcam --no-banner --save -"
	c.CaptureFile = ""
	c.LogLevel = "info"
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

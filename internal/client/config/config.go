package config

import "time"

// Config holds runtime settings for the session client CLI.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	RequestTimeout      time.Duration
	MountDebounce       time.Duration
	PollAttempts        int
	PollInterval        time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	// Ephemeral keeps token and hint in memory only.
	Ephemeral           bool
}

// LoadDefaults populates c with defaults matching the web client.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.DatabasePath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.MountDebounce = 100 * time.Millisecond
	c.PollAttempts = 3
	c.PollInterval = 350 * time.Millisecond
	c.OnlineCheckInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then JSON (if -c/-config is given), then flags.
// Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/edusession/internal/flagx"
	"github.com/dmitrijs2005/edusession/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields tell "absent" from zero.
type JsonConfig struct {
	ServerBaseURL       *string         `json:"server_base_url"`
	DatabasePath        *string         `json:"database_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	MountDebounce       *timex.Duration `json:"mount_debounce"`
	PollAttempts        *int            `json:"poll_attempts"`
	PollInterval        *timex.Duration `json:"poll_interval"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
	Ephemeral           *bool           `json:"ephemeral"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. It panics on
// read or decode errors; a broken config file is fatal at start-up.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MountDebounce != nil {
		cfg.MountDebounce = jc.MountDebounce.Duration
	}
	if jc.PollAttempts != nil {
		cfg.PollAttempts = *jc.PollAttempts
	}
	if jc.PollInterval != nil {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
}

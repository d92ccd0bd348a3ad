// Package config loads runtime configuration for the session client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-d string   path of the local SQLite database (":memory:" for none)
//	-t int      request timeout for the current-user check (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations are timex.Duration values, so "350ms" and integer nanoseconds both work.
// Keys that are absent keep their default:
//
//	{
//	  "server_base_url": "https://learn.example.com",
//	  "database_path": "session.db",
//	  "request_timeout": "10s",
//	  "mount_debounce": "100ms",
//	  "poll_attempts": 3,
//	  "poll_interval": "350ms",
//	  "online_check_interval": "30s",
//	  "log_level": "info"
//	}
package config

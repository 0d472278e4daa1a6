package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the notify daemon.
type Config struct {
	DBPath         string
	NotifyInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// TALLY_DB overrides the database path; TALLY_NOTIFY_INTERVAL_HOURS the
// sweep cadence (default hourly).
func Load() Config {
	cfg := Config{
		DBPath:         strings.TrimSpace(os.Getenv("TALLY_DB")),
		NotifyInterval: parseIntervalHours(strings.TrimSpace(os.Getenv("TALLY_NOTIFY_INTERVAL_HOURS"))),
	}
	if cfg.NotifyInterval == 0 {
		cfg.NotifyInterval = time.Hour
	}
	return cfg
}

func parseIntervalHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

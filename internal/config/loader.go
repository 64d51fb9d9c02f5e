package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the horario
// service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	FeedSource       string
	ReminderInterval time.Duration
	LogPollInterval  time.Duration
}

// Load parses configuration values from the current process environment.
//
// Every field has a sensible default; values that are present but malformed
// are reported together rather than silently replaced.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:horario.db?_foreign_keys=on",
		FeedSource:       "data.csv",
		ReminderInterval: time.Minute,
		LogPollInterval:  5 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("HORARIO_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "HORARIO_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("HORARIO_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if source := strings.TrimSpace(os.Getenv("HORARIO_FEED_SOURCE")); source != "" {
		cfg.FeedSource = source
	}

	if value := strings.TrimSpace(os.Getenv("HORARIO_REMINDER_INTERVAL")); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "HORARIO_REMINDER_INTERVAL")
		} else {
			cfg.ReminderInterval = interval
		}
	}

	if value := strings.TrimSpace(os.Getenv("HORARIO_LOG_POLL_INTERVAL")); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "HORARIO_LOG_POLL_INTERVAL")
		} else {
			cfg.LogPollInterval = interval
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

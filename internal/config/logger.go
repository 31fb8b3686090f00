package config

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// NewLogger builds the service logger. Every record carries service,
// environment and instance_id; the instance id falls back to a short
// random value when INSTANCE_ID is unset.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Log.level()}

	var handler slog.Handler
	if c.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	instanceID := c.Env.InstanceID
	if instanceID == "" {
		instanceID = uuid.NewString()[:8]
	}

	return slog.New(handler).With(
		"service", c.Env.Service,
		"environment", c.Env.Env,
		"instance_id", instanceID,
	)
}

func (l LogConfig) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

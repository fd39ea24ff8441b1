package http

import (
	"time"

	"github.com/NYTimes/activity/config"
)

// Config holds the settings for this package's handlers.
type Config struct {
	// StatusPath is where RegisterHandlers will mount the JSON status
	// handler. If empty, this will default to '/activity/status'.
	StatusPath string `envconfig:"ACTIVITY_STATUS_PATH"`

	// StreamPath is where RegisterHandlers will mount the websocket stream
	// handler. If empty, this will default to '/activity/stream'.
	StreamPath string `envconfig:"ACTIVITY_STREAM_PATH"`

	// PingInterval is how often StreamHandler pings its websocket clients
	// to keep connections alive. The default is 5s.
	PingInterval time.Duration `envconfig:"ACTIVITY_PING_INTERVAL"`

	// WriteTimeout bounds every websocket write. The default is 30s.
	WriteTimeout time.Duration `envconfig:"ACTIVITY_WRITE_TIMEOUT"`

	// OriginSuffix limits websocket upgrades to origins whose host ends
	// with the given suffix. If empty, any origin is allowed.
	OriginSuffix string `envconfig:"ACTIVITY_ORIGIN_SUFFIX"`
}

// LoadConfigFromEnv will attempt to load a Config from environment
// variables, filling in defaults for anything unset.
func LoadConfigFromEnv() Config {
	var cfg Config
	config.LoadEnvConfig(&cfg)
	return setConfigDefaults(cfg)
}

func setConfigDefaults(cfg Config) Config {
	if cfg.StatusPath == "" {
		cfg.StatusPath = "/activity/status"
	}
	if cfg.StreamPath == "" {
		cfg.StreamPath = "/activity/stream"
	}
	if cfg.PingInterval.Nanoseconds() == 0 {
		cfg.PingInterval = 5 * time.Second
	}
	if cfg.WriteTimeout.Nanoseconds() == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	return cfg
}

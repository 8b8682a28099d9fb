package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"time"

	"github.com/angeloszaimis/static-server/internal/contenttype"
)

// Settings is the immutable runtime configuration, built once at startup.
type Settings struct {
	Host        string
	Port        int
	Environment string

	// Root is absolute and cleaned.
	Root        string
	DefaultFile string
	Types       contenttype.Table
	Debug       bool

	AdminAddress string

	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
	HealthCheckInterval time.Duration
	MetricsBufferSize   int
	LogLevel            string
}

// Settings resolves the root directory and parses durations.
// It assumes c has passed Validate.
func (c *Config) Settings() (Settings, error) {
	root, err := filepath.Abs(c.Static.Root)
	if err != nil {
		return Settings{}, fmt.Errorf("resolve root %q: %w", c.Static.Root, err)
	}

	durations := map[string]string{
		"server.read_timeout":   c.Server.ReadTimeout,
		"server.write_timeout":  c.Server.WriteTimeout,
		"server.idle_timeout":   c.Server.IdleTimeout,
		"health_check.interval": c.HealthCheck.Interval,
	}
	parsed := make(map[string]time.Duration, len(durations))
	for key, raw := range durations {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("parse %s: %w", key, err)
		}
		parsed[key] = d
	}

	return Settings{
		Host:                c.Server.Host,
		Port:                c.Server.Port,
		Environment:         c.Server.Environment,
		Root:                filepath.Clean(root),
		DefaultFile:         c.Static.DefaultFile,
		Types:               contenttype.Default(),
		Debug:               c.Static.Debug,
		AdminAddress:        c.Admin.Address,
		ReadTimeout:         parsed["server.read_timeout"],
		WriteTimeout:        parsed["server.write_timeout"],
		IdleTimeout:         parsed["server.idle_timeout"],
		HealthCheckInterval: parsed["health_check.interval"],
		MetricsBufferSize:   c.Metrics.BufferSize,
		LogLevel:            c.Logging.Level,
	}, nil
}

// Address is the file server listen address, e.g. ":8000".
func (s Settings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

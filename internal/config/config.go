package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const HardcodedVersion string = "V0.1"

type Config struct {
	ListenAddr         string
	ProbeListenAddr    string
	ServersFile        string
	FetchTimeout       time.Duration
	FetchConcurrency   int
	ShutdownTimeout    time.Duration
	ReadHeaderTimeout  time.Duration
	AllowEmptyRegistry bool
	HubVersion         string
	LogJSON            bool
	LogLevel           string
}

func Load() (Config, error) {
	cfg := Config{
		ListenAddr:         env("HUB_LISTEN_ADDR", "0.0.0.0:8000"),
		ProbeListenAddr:    env("HUB_PROBE_ADDR", "0.0.0.0:8001"),
		ServersFile:        env("HUB_SERVERS_FILE", "config.yaml"),
		FetchTimeout:       envDuration("HUB_FETCH_TIMEOUT", 5*time.Second),
		FetchConcurrency:   envInt("HUB_FETCH_CONCURRENCY", 0),
		ShutdownTimeout:    envDuration("HUB_SHUTDOWN_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout:  envDuration("HUB_READ_HEADER_TIMEOUT", 5*time.Second),
		AllowEmptyRegistry: envBool("HUB_ALLOW_EMPTY_REGISTRY", false),
		HubVersion:         HardcodedVersion,
		LogJSON:            envBool("HUB_LOG_JSON", false),
		LogLevel:           strings.ToLower(env("HUB_LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("HUB_LISTEN_ADDR is required")
	}
	if strings.TrimSpace(c.ServersFile) == "" {
		return errors.New("HUB_SERVERS_FILE is required")
	}
	if strings.TrimSpace(c.HubVersion) == "" {
		return errors.New("hub version must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("HUB_FETCH_TIMEOUT must be > 0")
	}
	if c.FetchConcurrency < 0 {
		return errors.New("HUB_FETCH_CONCURRENCY must be >= 0")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("HUB_SHUTDOWN_TIMEOUT must be > 0")
	}
	if c.ReadHeaderTimeout <= 0 {
		return errors.New("HUB_READ_HEADER_TIMEOUT must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	return nil
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

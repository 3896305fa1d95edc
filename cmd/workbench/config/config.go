// Package config implements the oscillab workbench config.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all workbench configuration.
type Config struct {
	Listen        string
	Manifest      string
	RunOnStart    bool
	Storage       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
	LogFormat     string
	LogLevel      string
}

// ParseFlags parses command-line flags and environment variables into a Config.
// Exits with status 1 when the combination is unusable (run-on-start without a
// manifest, or an unknown storage backend). Environment variables are used as
// fallbacks when flags are not provided.
func ParseFlags() *Config {
	cfg := &Config{}

	// Server
	flag.StringVar(&cfg.Listen, "listen", getEnv("LISTEN", ":8080"), "HTTP listen address")

	// Experiment
	flag.StringVar(&cfg.Manifest, "manifest", getEnv("MANIFEST", ""), "Path to an experiment manifest (YAML)")
	flag.BoolVar(&cfg.RunOnStart, "run-on-start", getEnvBool("RUN_ON_START", false), "Run the manifest once at startup")

	// Storage
	flag.StringVar(&cfg.Storage, "storage", getEnv("STORAGE", "memory"), "Snapshot store: memory or redis")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", getEnv("REDIS_ADDR", "localhost:6379"), "Redis address")
	flag.StringVar(&cfg.RedisPassword, "redis-password", getEnv("REDIS_PASSWORD", ""), "Redis password")
	flag.IntVar(&cfg.RedisDB, "redis-db", getEnvInt("REDIS_DB", 0), "Redis database number")
	flag.DurationVar(&cfg.RedisTTL, "redis-ttl", getEnvDuration("REDIS_TTL", 24*time.Hour), "Snapshot TTL in redis (0 disables expiry)")

	// Logging
	flag.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "text"), "Log format: text or json")
	flag.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	flag.Parse()

	if cfg.RunOnStart && cfg.Manifest == "" {
		fmt.Fprintln(os.Stderr, "Error: --run-on-start requires --manifest")
		os.Exit(1)
	}
	if cfg.Storage != "memory" && cfg.Storage != "redis" {
		fmt.Fprintf(os.Stderr, "Error: unknown storage backend %q (want memory or redis)\n", cfg.Storage)
		os.Exit(1)
	}
	if cfg.Storage == "redis" && cfg.RedisAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: --redis-addr is required with --storage=redis")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

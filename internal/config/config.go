// Package config handles driver configuration
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by Load.
const (
	EnvLogLevel = "CARD_TOOLS_LOG_LEVEL"
	EnvWorkers  = "CARD_TOOLS_WORKERS"
	EnvDumpDir  = "CARD_TOOLS_DUMP_DIR"
)

type Config struct {
	LogLevel string
	Workers  int    // 0 lets the batch runner pick one per CPU
	DumpDir  string // segmented cards are written here when set
}

func Load() *Config {
	workers := getEnvInt(EnvWorkers, 0)
	if workers < 0 {
		workers = 0
	}
	return &Config{
		LogLevel: strings.ToLower(getEnv(EnvLogLevel, "info")),
		Workers:  workers,
		DumpDir:  getEnv(EnvDumpDir, ""),
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process-level settings. Everything game-related lives in
// the session itself; these only locate external resources.
type Config struct {
	// DatabasePath is the SQLite file holding saved sessions.
	DatabasePath string
	// LogLevel is a logrus level name.
	LogLevel string
	// DotInvocation selects how graphs are rendered: "dot", "bash" or
	// empty to only write .dot files.
	DotInvocation string
}

// Load reads the configuration, sourcing a .env file first if present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		DatabasePath:  getEnv("SH_SUPPORT_DB", "sh-support.db"),
		LogLevel:      getEnv("SH_SUPPORT_LOG_LEVEL", "info"),
		DotInvocation: getEnv("SH_SUPPORT_DOT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

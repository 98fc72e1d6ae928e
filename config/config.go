package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	BackendAPIBase string // upload/remove/schema-preview/generate/execute collaborators
	DBPath         string
	ExportsDir     string
	SuggestLimit   int
	Database       DatabaseConfig
}

// DatabaseConfig holds the default connection credentials forwarded to the
// upload and remove collaborators when the frontend provides none.
type DatabaseConfig struct {
	Host     string
	User     string
	Password string
}

func GetConfig() Config {
	return Config{
		Port:           getEnv("PORT", "9090"),
		BackendAPIBase: getEnv("BACKEND_API_BASE", "http://localhost:5001"),
		DBPath:         getEnv("DB_PATH", "./data/badger"),
		ExportsDir:     getEnv("EXPORTS_DIR", "./exports"),
		SuggestLimit:   getEnvInt("SUGGEST_LIMIT", 10),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "mysql"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", "root"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// Package config reads runtime settings from the environment.
// Binaries use these values as flag defaults; flags win.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DBPath       string
	ResendAPIKey string // empty means emails are logged, not sent
	EmailFrom    string
}

// Load reads an optional .env file (".env.$ENV", then ".env") and the process
// environment. Missing files are not an error.
func Load() *Config {
	if env := os.Getenv("ENV"); env != "" {
		if err := godotenv.Load(".env." + env); err == nil {
			log.Println("Loaded environment variables from .env." + env)
		}
	}
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		Port:         8080,
		DBPath:       "grants.db",
		ResendAPIKey: getenv("RESEND_API_KEY"),
		EmailFrom:    getenv("EMAIL_FROM"),
	}
	if v := getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		} else {
			log.Printf("Warning: ignoring invalid PORT %q", v)
		}
	}
	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "HR <hr@example.com>"
	}
	return cfg
}

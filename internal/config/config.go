// Package config holds all daybook configuration. Values come from the
// environment, optionally seeded from a .env file in the working
// directory, matching how the original deployment was configured.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all daybook configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Uploads UploadsConfig
}

type ServerConfig struct {
	Bind string // BIND
	Port int    // PORT
}

type StoreConfig struct {
	Path string // DB_PATH
}

type UploadsConfig struct {
	Dir string // UPLOAD_DIR
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 5002,
		},
		Store: StoreConfig{
			Path: "db.json",
		},
		Uploads: UploadsConfig{
			Dir: "uploads",
		},
	}
}

// Load returns the default config with .env and environment overrides
// applied. A missing .env file is fine; plain environment variables work
// the same.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	if v := os.Getenv("BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Uploads.Dir = v
	}
	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/llm"
)

// Config is everything asman reads from the environment.
type Config struct {
	Port        string
	LogMode     string
	CORSOrigins []string

	LLM     llm.Config
	Lessons lessons.Config
}

// DefaultCORSOrigins allows any localhost port.
var DefaultCORSOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// Load reads an optional .env from the working directory, then the
// environment. A missing .env or a missing credential is not an error.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		Port:        getEnv("ASMAN_PORT", "8080"),
		LogMode:     getEnv("ASMAN_LOG_MODE", "dev"),
		CORSOrigins: DefaultCORSOrigins,
		LLM:         llm.ConfigFromEnv(),
		Lessons:     lessons.DefaultConfig(),
	}
	if v := os.Getenv("ASMAN_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	// The provider chain already carries a timeout; keep the client's own
	// bound in step with it.
	cfg.Lessons.Timeout = cfg.LLM.Timeout
	return cfg
}

// Addr is the listen address for the HTTP API.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

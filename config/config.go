// Package config provides configuration for the honeypot service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the honeypot service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// LLM completion backend. An empty API key selects the templated
	// response strategy.
	LLMBaseURL  string
	LLMAPIKey   string
	LLMModel    string
	LLMTimeout  time.Duration
	TypingDelay time.Duration

	// External report collector. Empty URL disables final report delivery.
	CollectorURL     string
	CollectorTimeout time.Duration

	// Handoff key accepted on the honeypot message endpoint.
	HoneypotAPIKey string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:      getEnv("DATABASE_URL", "file:honeypot.db?cache=shared&mode=rwc"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:       time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		TypingDelay:      time.Duration(getEnvInt("TYPING_DELAY_MS", 1500)) * time.Millisecond,
		CollectorURL:     getEnv("COLLECTOR_URL", ""),
		CollectorTimeout: time.Duration(getEnvInt("COLLECTOR_TIMEOUT_MS", 10000)) * time.Millisecond,
		HoneypotAPIKey:   getEnv("HONEYPOT_API_KEY", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

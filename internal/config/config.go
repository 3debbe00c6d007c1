// Package config provides environment configuration for the chat client.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all settings the client and the demo binary need.
type Config struct {
	// Backend endpoints
	BackendURL string
	WSURL      string

	// Credentials for the demo binary. Token wins when set; otherwise the
	// client logs in with email/password.
	Token    string
	Email    string
	Password string
	Group    int

	// Typing indicator inactivity window.
	TypingWindow time.Duration

	// Telemetry
	AMQPURL      string
	AMQPExchange string
	Environment  string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool

	// Debug HTTP surface of the demo binary
	DebugAddr    string
	DebugEnabled bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		BackendURL: getEnv("BACKEND_URL", "http://localhost:8000"),
		WSURL:      getEnv("WS_URL", "ws://localhost:8000"),

		Token:    getEnv("CHAT_TOKEN", ""),
		Email:    getEnv("CHAT_EMAIL", ""),
		Password: getEnv("CHAT_PASSWORD", ""),
		Group:    getIntEnv("CHAT_GROUP", 1),

		TypingWindow: getDurationEnv("TYPING_WINDOW", 2*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "chat_client_events"),
		Environment:  getEnv("ENVIRONMENT", "development"),

		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),

		DebugAddr:    getEnv("DEBUG_ADDR", ":8091"),
		DebugEnabled: getBoolEnv("DEBUG_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variable names recognized by the demo server.
const (
	// EnvListenAddr overrides the HTTP listen address.
	EnvListenAddr = "LISTEN_ADDR"

	// EnvGreetingMessage is read per /sayhello request, not at load
	// time. It is listed here so the surface is documented in one place.
	EnvGreetingMessage = "GREETING_MESSAGE"
)

// applyEnvOverrides overrides config values with environment variables if set.
// Returns an error for invalid environment variable values to fail fast.
func applyEnvOverrides(cfg *ServerConfig) error {
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		cfg.HTTP.ListenAddr = addr
	}

	if timeout := os.Getenv("HTTP_READ_HEADER_TIMEOUT"); timeout != "" {
		t, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid HTTP_READ_HEADER_TIMEOUT %q: %w", timeout, err)
		}
		cfg.HTTP.ReadHeaderTimeout = t
	}
	if timeout := os.Getenv("HTTP_READ_TIMEOUT"); timeout != "" {
		t, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid HTTP_READ_TIMEOUT %q: %w", timeout, err)
		}
		cfg.HTTP.ReadTimeout = t
	}
	if timeout := os.Getenv("HTTP_WRITE_TIMEOUT"); timeout != "" {
		t, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid HTTP_WRITE_TIMEOUT %q: %w", timeout, err)
		}
		cfg.HTTP.WriteTimeout = t
	}
	if timeout := os.Getenv("HTTP_IDLE_TIMEOUT"); timeout != "" {
		t, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid HTTP_IDLE_TIMEOUT %q: %w", timeout, err)
		}
		cfg.HTTP.IdleTimeout = t
	}

	return nil
}

// GreetingMessage returns the current greeting: the GREETING_MESSAGE
// environment variable when set, otherwise the configured default.
func (c ServerConfig) GreetingMessage() string {
	if msg := os.Getenv(EnvGreetingMessage); msg != "" {
		return msg
	}
	if c.Greeting.Default != "" {
		return c.Greeting.Default
	}
	return "Hello!"
}

// Package config holds the demo server's runtime configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML
// file, then environment variable overrides. The greeting message is
// deliberately not cached here; the /sayhello handler reads it from the
// environment on every call so an updated env map takes effect on the
// next request.
package config

import "time"

// HTTPSection contains the resolved HTTP server configuration.
type HTTPSection struct {
	// ListenAddr is the address the server binds, e.g. ":8080".
	// The container image contract fixes the port to 8080.
	ListenAddr string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// GreetingSection contains /sayhello configuration.
type GreetingSection struct {
	// Default is returned when GREETING_MESSAGE is unset.
	Default string
}

// ServerConfig is the resolved demo server configuration.
type ServerConfig struct {
	HTTP     HTTPSection
	Greeting GreetingSection
}

// Defaults returns the built-in configuration.
func Defaults() ServerConfig {
	return ServerConfig{
		HTTP: HTTPSection{
			ListenAddr:        ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Greeting: GreetingSection{
			Default: "Hello!",
		},
	}
}

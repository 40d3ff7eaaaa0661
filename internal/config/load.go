package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk YAML shape. Timeouts are Go duration
// strings ("5s", "1m") parsed during load so a typo fails startup
// instead of silently binding with a zero timeout.
type fileConfig struct {
	Version int `yaml:"version,omitempty"`
	HTTP    struct {
		ListenAddr        string `yaml:"listen_addr"`
		ReadHeaderTimeout string `yaml:"read_header_timeout"`
		ReadTimeout       string `yaml:"read_timeout"`
		WriteTimeout      string `yaml:"write_timeout"`
		IdleTimeout       string `yaml:"idle_timeout"`
	} `yaml:"http"`
	Greeting struct {
		Default string `yaml:"default"`
	} `yaml:"greeting"`
}

// Load returns the effective server configuration.
//
// Defaults are applied first, then the YAML file at path (skipped when
// path is empty), then environment overrides. File and environment
// values that fail to parse abort startup rather than being silently
// ignored.
func Load(path string) (ServerConfig, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *ServerConfig) error {
	// Clean the path to prevent directory traversal attacks
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - Config file path is trusted (from admin/user)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.HTTP.ListenAddr != "" {
		cfg.HTTP.ListenAddr = fc.HTTP.ListenAddr
	}
	if fc.Greeting.Default != "" {
		cfg.Greeting.Default = fc.Greeting.Default
	}

	durations := []struct {
		field string
		value string
		dst   *time.Duration
	}{
		{"read_header_timeout", fc.HTTP.ReadHeaderTimeout, &cfg.HTTP.ReadHeaderTimeout},
		{"read_timeout", fc.HTTP.ReadTimeout, &cfg.HTTP.ReadTimeout},
		{"write_timeout", fc.HTTP.WriteTimeout, &cfg.HTTP.WriteTimeout},
		{"idle_timeout", fc.HTTP.IdleTimeout, &cfg.HTTP.IdleTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		t, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s %q in %s: %w", d.field, d.value, cleanPath, err)
		}
		*d.dst = t
	}

	return nil
}

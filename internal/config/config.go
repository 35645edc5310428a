// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

// Package config loads the tunnelctl configuration: where the Kubarr
// backend lives and how to authenticate against it. Values resolve in
// order: flags (handled by the CLI), environment, config file, defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvServerURL    = "KUBARR_SERVER_URL"
	EnvSessionToken = "KUBARR_SESSION_TOKEN"
)

const defaultServerURL = "http://localhost:8000"

// Config is the resolved tunnelctl configuration.
type Config struct {
	// ServerURL is the base URL of the Kubarr backend API.
	ServerURL string `yaml:"server_url"`
	// SessionToken is the dashboard session Bearer token.
	SessionToken string `yaml:"session_token"`
	// PollInterval overrides the reconciliation interval. Zero keeps the
	// built-in default.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DefaultPath returns the default config file location
// (~/.kubarr/tunnelctl.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kubarr", "tunnelctl.yaml")
}

// Load reads the config file at path (missing file is not an error) and
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{ServerURL: defaultServerURL}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to env and defaults.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvSessionToken); v != "" {
		cfg.SessionToken = v
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	return cfg, nil
}

// Validate checks that the configuration is usable for authenticated calls.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required (set %s or server_url)", EnvServerURL)
	}
	if c.SessionToken == "" {
		return fmt.Errorf("session token is required (set %s or session_token)", EnvSessionToken)
	}
	return nil
}

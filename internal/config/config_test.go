// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Empty(t, cfg.SessionToken)
	assert.Zero(t, cfg.PollInterval)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnelctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_url: https://kubarr.home.lan\n"+
			"session_token: sess-1\n"+
			"poll_interval: 10s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://kubarr.home.lan", cfg.ServerURL)
	assert.Equal(t, "sess-1", cfg.SessionToken)
	assert.Equal(t, 10*time.Second, cfg.PollInterval)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnelctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_url: https://from-file\nsession_token: file-token\n"), 0o600))

	t.Setenv(EnvServerURL, "https://from-env")
	t.Setenv(EnvSessionToken, "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env", cfg.ServerURL)
	assert.Equal(t, "env-token", cfg.SessionToken)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunnelctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [oops\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := &Config{ServerURL: "http://localhost:8000"}
	assert.ErrorContains(t, cfg.Validate(), "session token")

	cfg.SessionToken = "sess-1"
	assert.NoError(t, cfg.Validate())

	cfg.ServerURL = ""
	assert.ErrorContains(t, cfg.Validate(), "server URL")
}

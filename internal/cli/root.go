// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

// Package cli implements the tunnelctl commands.
package cli

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
	"github.com/kubarr/tunnelctl/internal/config"
	"github.com/kubarr/tunnelctl/internal/tunnel"
)

// app carries the resolved configuration and collaborators shared by all
// commands.
type app struct {
	log        logr.Logger
	configPath string
	serverURL  string

	cfg     *config.Config
	client  kubarr.Client
	manager *tunnel.Manager
}

// NewRootCmd builds the tunnelctl command tree.
func NewRootCmd(log logr.Logger) *cobra.Command {
	a := &app{log: log}

	root := &cobra.Command{
		Use:   "tunnelctl",
		Short: "Manage the Kubarr Cloudflare tunnel",
		Long: `tunnelctl drives the Kubarr dashboard's Cloudflare tunnel lifecycle:
validate a Cloudflare API token, provision a tunnel through the guided
wizard, watch reconciliation status, and tear the tunnel down.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(),
		"Path to the tunnelctl config file")
	root.PersistentFlags().StringVar(&a.serverURL, "server", "",
		"Kubarr backend base URL (overrides config and environment)")

	root.AddCommand(
		newValidateCmd(a),
		newDeployCmd(a),
		newStatusCmd(a),
		newWatchCmd(a),
		newRemoveCmd(a),
	)
	return root
}

// setup resolves configuration and wires the client and lifecycle manager.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.ServerURL = a.serverURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.client = kubarr.NewHTTPClient(cfg.ServerURL, cfg.SessionToken, a.log)
	a.manager = tunnel.NewManager(a.client, a.log,
		tunnel.WithPollInterval(cfg.PollInterval))

	// Tear down with the command: no timers survive the process's view of
	// the tunnel.
	cobra.OnFinalize(a.manager.Close)
	return nil
}

// fail converts session expiry into actionable guidance and wraps anything
// else unchanged.
func fail(err error) error {
	if kubarr.IsSessionExpiredError(err) {
		return fmt.Errorf("session expired: log in to the dashboard and update %s", config.EnvSessionToken)
	}
	return err
}

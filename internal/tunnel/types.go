// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

// Package tunnel implements the Cloudflare tunnel lifecycle manager for the
// Kubarr dashboard: the guided provisioning wizard, the status
// reconciliation poller, and tunnel removal. It is independent of any
// rendering framework; callers drive it from a CLI, TUI, or service loop.
package tunnel

import "github.com/kubarr/tunnelctl/internal/clients/kubarr"

// Status is the lifecycle status of the managed tunnel.
type Status string

const (
	// StatusNotDeployed means no tunnel resource exists in the cluster.
	StatusNotDeployed Status = "not_deployed"
	// StatusDeploying means provisioning is in progress.
	StatusDeploying Status = "deploying"
	// StatusRunning means the tunnel is up and the hostname is reachable.
	StatusRunning Status = "running"
	// StatusFailed means the last provisioning attempt failed; the record's
	// Error field carries the reason.
	StatusFailed Status = "failed"
	// StatusRemoving means teardown is in progress.
	StatusRemoving Status = "removing"
)

// Terminal reports whether no further autonomous backend transition is
// expected without new user action. The poller runs only while the status
// is non-terminal.
func (s Status) Terminal() bool {
	switch s {
	case StatusDeploying, StatusRemoving:
		return false
	default:
		return true
	}
}

// EffectiveStatus merges the two read streams with the display priority
// rule: the live status wins over the store's possibly-stale status field
// once both exist. With neither present the tunnel is not deployed.
func EffectiveStatus(config *kubarr.TunnelConfig, live *kubarr.TunnelStatus) Status {
	if live != nil && live.Status != "" {
		return Status(live.Status)
	}
	if config != nil && config.Status != "" {
		return Status(config.Status)
	}
	return StatusNotDeployed
}

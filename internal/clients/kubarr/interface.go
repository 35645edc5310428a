// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

//go:generate mockgen -destination=mock/mock_client.go -package=mock github.com/kubarr/tunnelctl/internal/clients/kubarr Client

package kubarr

import "context"

// Client defines the interface for the Kubarr backend's Cloudflare tunnel
// endpoints. This interface enables dependency injection and mocking for
// unit tests.
type Client interface {
	// GetTunnelConfig reads the persisted tunnel record. Returns (nil, nil)
	// when no tunnel has ever been provisioned.
	GetTunnelConfig(ctx context.Context) (*TunnelConfig, error)

	// PutTunnelConfig replaces the tunnel record and starts provisioning.
	// The returned config has status "deploying".
	PutTunnelConfig(ctx context.Context, req ProvisionRequest) (*TunnelConfig, error)

	// DeleteTunnelConfig deletes the tunnel record and starts teardown of
	// the underlying resources.
	DeleteTunnelConfig(ctx context.Context) error

	// GetTunnelStatus reads the live pod-level status of the cloudflared
	// deployment. The read is idempotent.
	GetTunnelStatus(ctx context.Context) (*TunnelStatus, error)

	// ValidateToken validates a Cloudflare API token and lists the zones it
	// can manage. No server-side state is written.
	ValidateToken(ctx context.Context, apiToken string) (*ValidationResult, error)
}

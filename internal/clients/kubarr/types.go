// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package kubarr

import "time"

// RedactedToken is the sentinel the backend substitutes for the real tunnel
// token in every read response. The real secret is write-only.
const RedactedToken = "****"

// TunnelConfig is the single persisted tunnel record, as returned by
// GET /api/cloudflare/config. Secrets are always masked; TunnelToken is
// RedactedToken on every read.
type TunnelConfig struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	TunnelToken string    `json:"tunnel_token"`
	Status      string    `json:"status"`
	Error       *string   `json:"error"`
	TunnelID    *string   `json:"tunnel_id"`
	ZoneID      *string   `json:"zone_id"`
	ZoneName    *string   `json:"zone_name"`
	Subdomain   *string   `json:"subdomain"`
	Hostname    *string   `json:"hostname"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProvisionRequest is the body of PUT /api/cloudflare/config. This is the
// only request that ever carries the provider API token.
type ProvisionRequest struct {
	Name      string `json:"name"`
	APIToken  string `json:"api_token"`
	AccountID string `json:"account_id"`
	ZoneID    string `json:"zone_id"`
	ZoneName  string `json:"zone_name"`
	Subdomain string `json:"subdomain"`
}

// TunnelStatus is the live pod-level status reported by
// GET /api/cloudflare/status. It reflects the cluster's view of the
// cloudflared deployment and may disagree transiently with
// TunnelConfig.Status right after a mutation.
type TunnelStatus struct {
	Status    string  `json:"status"`
	ReadyPods int32   `json:"ready_pods"`
	TotalPods int32   `json:"total_pods"`
	Message   *string `json:"message"`
}

// Zone is a DNS zone visible to a validated credential.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValidationResult is the response of POST /api/cloudflare/validate-token:
// the account the token belongs to and all zones it can manage, in
// provider-returned order. Never persisted.
type ValidationResult struct {
	AccountID string `json:"account_id"`
	Zones     []Zone `json:"zones"`
}

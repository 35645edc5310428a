// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// Remover mirrors the provisioning orchestrator for teardown. It issues the
// delete against the configuration store; observing the underlying resource
// disappear is left to the reconciliation poller. Deletion of the record is
// synchronous even though resource teardown continues in the background.
type Remover struct {
	client kubarr.Client
	log    logr.Logger
}

// NewRemover creates a removal controller.
func NewRemover(client kubarr.Client, log logr.Logger) *Remover {
	return &Remover{
		client: client,
		log:    log.WithName("remover"),
	}
}

// Remove deletes the tunnel record. On failure the existing record and its
// status are untouched server-side; the error is surfaced to the caller.
func (r *Remover) Remove(ctx context.Context) error {
	if err := r.client.DeleteTunnelConfig(ctx); err != nil {
		r.log.Error(err, "Tunnel removal failed")
		return err
	}
	r.log.Info("Tunnel removal accepted, teardown continues in the background")
	return nil
}

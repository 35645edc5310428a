// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// ErrBusy is returned when a deploy or remove is requested while another
// lifecycle operation is in flight or the tunnel is in a non-terminal
// state. Destructive actions are disabled until the state settles.
var ErrBusy = errors.New("a tunnel operation is already in progress")

// Manager owns the tunnel lifecycle: the wizard, the reconciliation poller,
// the removal path, and the local snapshot of the configuration record and
// live status. The snapshot is display state only; the configuration store
// remains the single source of truth.
type Manager struct {
	client kubarr.Client
	wizard *Wizard
	poller *Poller
	log    logr.Logger

	mu     sync.Mutex
	config *kubarr.TunnelConfig
	live   *kubarr.TunnelStatus
	busy   bool
	closed bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	pollInterval time.Duration
}

// WithPollInterval overrides the reconciliation interval, typically for
// tests.
func WithPollInterval(d time.Duration) ManagerOption {
	return func(o *managerOptions) { o.pollInterval = d }
}

// NewManager creates a tunnel lifecycle manager.
func NewManager(client kubarr.Client, log logr.Logger, opts ...ManagerOption) *Manager {
	options := managerOptions{pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		opt(&options)
	}

	m := &Manager{
		client: client,
		wizard: NewWizard(client, log),
		log:    log.WithName("tunnel-manager"),
	}
	m.poller = NewPoller(client, options.pollInterval, m.applyLiveStatus, log)
	return m
}

// Wizard returns the provisioning wizard for this manager.
func (m *Manager) Wizard() *Wizard {
	return m.wizard
}

// Refresh re-reads the configuration store and re-evaluates the polling
// loop. Call it on view entry and after any mutation.
func (m *Manager) Refresh(ctx context.Context) error {
	config, err := m.client.GetTunnelConfig(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.config = config
	if config == nil {
		m.live = nil
	}
	effective := EffectiveStatus(m.config, m.live)
	m.mu.Unlock()

	m.poller.Evaluate(effective)
	return nil
}

// Snapshot returns the current configuration record and live status. Either
// may be nil.
func (m *Manager) Snapshot() (*kubarr.TunnelConfig, *kubarr.TunnelStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config, m.live
}

// EffectiveStatus returns the merged display status: live status wins over
// the stored status field once both exist.
func (m *Manager) EffectiveStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return EffectiveStatus(m.config, m.live)
}

// Busy reports whether a lifecycle operation is in flight or the tunnel is
// in a non-terminal state.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy || !EffectiveStatus(m.config, m.live).Terminal()
}

// Deploy runs the wizard's deploy step. It is rejected with ErrBusy while
// another operation is in flight or an existing tunnel is still deploying
// or removing; a deploy over a terminal tunnel is a redundant upsert and
// replaces the record.
func (m *Manager) Deploy(ctx context.Context, name, subdomain string) (*kubarr.TunnelConfig, error) {
	if err := m.acquire(); err != nil {
		return nil, err
	}
	defer m.release()

	config, err := m.wizard.Deploy(ctx, name, subdomain)
	if err != nil {
		// Nothing was written; wizard retains its validated session.
		return nil, err
	}

	m.mu.Lock()
	m.config = config
	m.live = nil
	effective := EffectiveStatus(m.config, m.live)
	m.mu.Unlock()

	m.poller.Evaluate(effective)
	return config, nil
}

// Remove deletes the tunnel record. On success the local snapshot is
// cleared immediately (optimistic: record deletion is synchronous, resource
// teardown keeps running underneath). On failure the snapshot and status
// are preserved unchanged and the poller continues unaffected.
func (m *Manager) Remove(ctx context.Context) error {
	if err := m.acquire(); err != nil {
		return err
	}
	defer m.release()

	if err := NewRemover(m.client, m.log).Remove(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.config = nil
	m.live = nil
	m.mu.Unlock()

	m.poller.Evaluate(StatusNotDeployed)
	return nil
}

// applyLiveStatus receives fresh live status from the poller. A status
// observed after the local config is gone has nothing to attach to and is
// dropped.
func (m *Manager) applyLiveStatus(status *kubarr.TunnelStatus) {
	m.mu.Lock()
	if m.config == nil {
		m.mu.Unlock()
		return
	}
	m.live = status
	effective := EffectiveStatus(m.config, m.live)
	m.mu.Unlock()

	m.poller.Evaluate(effective)
}

// acquire claims the single operation slot, enforcing the busy-state
// invariant for destructive actions.
func (m *Manager) acquire() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrBusy
	}
	if m.busy || !EffectiveStatus(m.config, m.live).Terminal() {
		return ErrBusy
	}
	m.busy = true
	return nil
}

func (m *Manager) release() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

// Close tears the manager down, cancelling any scheduled reconciliation
// work. Idempotent; no timers survive past this call.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.poller.Close()
}

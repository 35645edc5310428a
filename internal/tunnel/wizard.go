// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-logr/logr"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// WizardState is the client-local state of the provisioning wizard.
type WizardState string

const (
	// WizardIdle means no credential has been validated yet.
	WizardIdle WizardState = "idle"
	// WizardValidating means a validation round trip is in flight.
	WizardValidating WizardState = "validating"
	// WizardValidated means a credential was accepted and zones are available.
	WizardValidated WizardState = "validated"
)

// Local validation errors. None of these trigger a remote call.
var (
	ErrNotValidated      = errors.New("validate a Cloudflare API token first")
	ErrNameRequired      = errors.New("please enter a tunnel name")
	ErrZoneRequired      = errors.New("please select a zone")
	ErrSubdomainRequired = errors.New("please enter a subdomain")
	ErrUnknownZone       = errors.New("selected zone is not in the validated set")
)

// Wizard is the provisioning orchestrator: it sequences credential
// validation, zone selection, and the deploy write. The validated credential
// lives only inside an active wizard session; it is transmitted exactly once
// (in the deploy request) and discarded on success or reset.
type Wizard struct {
	validator *Validator
	client    kubarr.Client
	log       logr.Logger

	mu           sync.Mutex
	state        WizardState
	apiToken     string
	validation   *kubarr.ValidationResult
	selectedZone *kubarr.Zone
	lastErr      string
}

// NewWizard creates a wizard in the idle state.
func NewWizard(client kubarr.Client, log logr.Logger) *Wizard {
	return &Wizard{
		validator: NewValidator(client, log),
		client:    client,
		log:       log.WithName("wizard"),
		state:     WizardIdle,
	}
}

// State returns the current wizard state.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError returns the display text of the most recent failure, or "".
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Zones returns the zones of the validated credential, in provider order.
func (w *Wizard) Zones() []kubarr.Zone {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.validation == nil {
		return nil
	}
	return w.validation.Zones
}

// SelectedZone returns the currently selected zone, or nil.
func (w *Wizard) SelectedZone() *kubarr.Zone {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedZone
}

// Validate runs wizard step 1. On success the wizard moves to validated and
// defaults the zone selection to the first returned zone (nil if the
// credential controls no zones). On failure the wizard returns to idle with
// the error text retained for display.
func (w *Wizard) Validate(ctx context.Context, apiToken string) error {
	w.mu.Lock()
	w.state = WizardValidating
	w.mu.Unlock()

	result, err := w.validator.Validate(ctx, apiToken)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = WizardIdle
		w.apiToken = ""
		w.validation = nil
		w.selectedZone = nil
		w.lastErr = err.Error()
		return err
	}

	w.state = WizardValidated
	w.apiToken = strings.TrimSpace(apiToken)
	w.validation = result
	w.lastErr = ""
	w.selectedZone = nil
	if len(result.Zones) > 0 {
		zone := result.Zones[0]
		w.selectedZone = &zone
	}
	return nil
}

// SelectZone selects a zone by ID from the validated set.
func (w *Wizard) SelectZone(zoneID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != WizardValidated || w.validation == nil {
		return ErrNotValidated
	}
	for _, zone := range w.validation.Zones {
		if zone.ID == zoneID {
			zone := zone
			w.selectedZone = &zone
			return nil
		}
	}
	return ErrUnknownZone
}

// Deploy runs wizard step 2: the replace-write against the configuration
// store. This is the only point at which the credential leaves the wizard.
// On success the wizard resets entirely and the returned store record (with
// status "deploying") drives the view. On failure the wizard stays
// validated so the user can retry without re-entering the credential, and
// no record is written.
func (w *Wizard) Deploy(ctx context.Context, name, subdomain string) (*kubarr.TunnelConfig, error) {
	w.mu.Lock()
	if w.state != WizardValidated || w.validation == nil {
		w.mu.Unlock()
		return nil, ErrNotValidated
	}
	if strings.TrimSpace(name) == "" {
		w.mu.Unlock()
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(subdomain) == "" {
		w.mu.Unlock()
		return nil, ErrSubdomainRequired
	}
	if w.selectedZone == nil {
		w.mu.Unlock()
		return nil, ErrZoneRequired
	}

	req := kubarr.ProvisionRequest{
		Name:      strings.TrimSpace(name),
		APIToken:  w.apiToken,
		AccountID: w.validation.AccountID,
		ZoneID:    w.selectedZone.ID,
		ZoneName:  w.selectedZone.Name,
		Subdomain: strings.TrimSpace(subdomain),
	}
	w.mu.Unlock()

	config, err := w.client.PutTunnelConfig(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		// Keep the validated session so the user can retry.
		w.lastErr = err.Error()
		return nil, err
	}

	w.log.Info("Tunnel deploy accepted", "name", req.Name,
		"zone", req.ZoneName, "subdomain", req.Subdomain, "status", config.Status)
	w.resetLocked()
	return config, nil
}

// Reset discards all validation data and the credential without contacting
// the remote system.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *Wizard) resetLocked() {
	w.state = WizardIdle
	w.apiToken = ""
	w.validation = nil
	w.selectedZone = nil
	w.lastErr = ""
}

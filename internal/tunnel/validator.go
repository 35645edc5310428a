// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"context"
	"errors"
	"strings"

	"github.com/go-logr/logr"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// ErrEmptyToken is returned when the credential is empty after trimming.
// It never triggers a remote call.
var ErrEmptyToken = errors.New("Please enter your Cloudflare API token")

// Validator checks a Cloudflare API credential against the control plane
// through the backend's validate-token endpoint. It is stateless, performs
// exactly one round trip, and writes nothing.
type Validator struct {
	client kubarr.Client
	log    logr.Logger
}

// NewValidator creates a credential validator.
func NewValidator(client kubarr.Client, log logr.Logger) *Validator {
	return &Validator{
		client: client,
		log:    log.WithName("validator"),
	}
}

// Validate validates the token and returns the account identity plus all
// zones visible to it, in provider-returned order. Provider errors surface
// verbatim; no partial state is retained on failure.
func (v *Validator) Validate(ctx context.Context, apiToken string) (*kubarr.ValidationResult, error) {
	apiToken = strings.TrimSpace(apiToken)
	if apiToken == "" {
		return nil, ErrEmptyToken
	}

	result, err := v.client.ValidateToken(ctx, apiToken)
	if err != nil {
		v.log.V(1).Info("Token validation failed", "error", err.Error())
		return nil, err
	}

	v.log.Info("Token validated", "accountId", result.AccountID, "zones", len(result.Zones))
	return result, nil
}

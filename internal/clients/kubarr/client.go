// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package kubarr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const defaultTimeout = 30 * time.Second

// HTTPClient is the Client implementation backed by the Kubarr backend's
// REST API. Every request carries the session Bearer token; a 401 response
// converts to ErrSessionExpired, which is this client's rendition of the
// dashboard's login-redirect interceptor.
type HTTPClient struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     logr.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying http.Client, typically for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpc = hc }
}

// NewHTTPClient creates a client for the Kubarr backend at baseURL,
// authenticating with the given session token.
func NewHTTPClient(baseURL, sessionToken string, log logr.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   sessionToken,
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     log.WithName("kubarr-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTunnelConfig implements Client.
func (c *HTTPClient) GetTunnelConfig(ctx context.Context) (*TunnelConfig, error) {
	// The backend returns a JSON null when no tunnel was ever provisioned;
	// that decodes to a nil pointer here.
	var config *TunnelConfig
	if err := c.doJSON(ctx, http.MethodGet, "/api/cloudflare/config", nil, &config); err != nil {
		return nil, err
	}
	return config, nil
}

// PutTunnelConfig implements Client.
func (c *HTTPClient) PutTunnelConfig(ctx context.Context, req ProvisionRequest) (*TunnelConfig, error) {
	var config TunnelConfig
	if err := c.doJSON(ctx, http.MethodPut, "/api/cloudflare/config", req, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DeleteTunnelConfig implements Client.
func (c *HTTPClient) DeleteTunnelConfig(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/cloudflare/config", nil, nil)
}

// GetTunnelStatus implements Client.
func (c *HTTPClient) GetTunnelStatus(ctx context.Context) (*TunnelStatus, error) {
	var status TunnelStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/cloudflare/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ValidateToken implements Client.
func (c *HTTPClient) ValidateToken(ctx context.Context, apiToken string) (*ValidationResult, error) {
	req := struct {
		APIToken string `json:"api_token"`
	}{APIToken: apiToken}

	var result ValidationResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/cloudflare/validate-token", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

// doJSON performs a single round trip. No retries happen here; retry policy
// belongs to the caller (the poller retries only at its own interval).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return c.decodeError(method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError converts a non-2xx response into an *APIError, preserving the
// backend's detail message verbatim.
func (c *HTTPClient) decodeError(method, path string, resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var body errorResponse
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil && body.Detail != "" {
			apiErr.Message = body.Detail
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("%s %s failed with HTTP %d", method, path, resp.StatusCode)
	}

	c.log.V(1).Info("API request failed", "method", method, "path", path,
		"status", resp.StatusCode, "detail", apiErr.Message)
	return apiErr
}

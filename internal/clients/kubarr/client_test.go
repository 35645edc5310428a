// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package kubarr_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// fakeBackend is a minimal Kubarr backend for client tests. Handlers mirror
// the real endpoint shapes, including the {"detail": ...} error body.
type fakeBackend struct {
	t *testing.T

	config     *kubarr.TunnelConfig
	status     *kubarr.TunnelStatus
	validation *kubarr.ValidationResult

	failWith   int
	failDetail string

	lastAuth string
	lastBody []byte
	requests []string
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/cloudflare/config", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.maybeFail(w) {
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(f.t, w, f.config)
		case http.MethodPut:
			writeJSON(f.t, w, f.config)
		case http.MethodDelete:
			writeJSON(f.t, w, map[string]bool{"success": true})
		}
	})

	mux.HandleFunc("/api/cloudflare/status", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.maybeFail(w) {
			return
		}
		writeJSON(f.t, w, f.status)
	})

	mux.HandleFunc("/api/cloudflare/validate-token", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.maybeFail(w) {
			return
		}
		writeJSON(f.t, w, f.validation)
	})

	return mux
}

func (f *fakeBackend) record(r *http.Request) {
	f.lastAuth = r.Header.Get("Authorization")
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	if r.Body != nil {
		var buf [4096]byte
		n, _ := r.Body.Read(buf[:])
		f.lastBody = buf[:n]
	}
}

func (f *fakeBackend) maybeFail(w http.ResponseWriter) bool {
	if f.failWith == 0 {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.failWith)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": f.failDetail})
	return true
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, backend *fakeBackend) *kubarr.HTTPClient {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return kubarr.NewHTTPClient(srv.URL, "session-token-1", logr.Discard())
}

func strPtr(s string) *string { return &s }

func TestGetTunnelConfigAbsent(t *testing.T) {
	backend := &fakeBackend{t: t}
	client := newTestClient(t, backend)

	config, err := client.GetTunnelConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, config, "a never-provisioned system returns a nil config")
	assert.Equal(t, "Bearer session-token-1", backend.lastAuth)
}

func TestGetTunnelConfigPresent(t *testing.T) {
	backend := &fakeBackend{t: t, config: &kubarr.TunnelConfig{
		ID:          1,
		Name:        "Home",
		TunnelToken: kubarr.RedactedToken,
		Status:      "running",
		ZoneName:    strPtr("example.com"),
		Subdomain:   strPtr("kubarr"),
		Hostname:    strPtr("kubarr.example.com"),
	}}
	client := newTestClient(t, backend)

	config, err := client.GetTunnelConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "Home", config.Name)
	assert.Equal(t, kubarr.RedactedToken, config.TunnelToken,
		"read responses never carry the real secret")
	assert.Equal(t, "kubarr.example.com", *config.Hostname)
}

func TestPutTunnelConfigSendsSnakeCaseBody(t *testing.T) {
	backend := &fakeBackend{t: t, config: &kubarr.TunnelConfig{
		ID: 1, Name: "Home", Status: "deploying", TunnelToken: kubarr.RedactedToken,
	}}
	client := newTestClient(t, backend)

	config, err := client.PutTunnelConfig(context.Background(), kubarr.ProvisionRequest{
		Name:      "Home",
		APIToken:  "tok_valid",
		AccountID: "acct1",
		ZoneID:    "z1",
		ZoneName:  "example.com",
		Subdomain: "kubarr",
	})
	require.NoError(t, err)
	assert.Equal(t, "deploying", config.Status)

	var body map[string]string
	require.NoError(t, json.Unmarshal(backend.lastBody, &body))
	assert.Equal(t, "tok_valid", body["api_token"])
	assert.Equal(t, "acct1", body["account_id"])
	assert.Equal(t, "z1", body["zone_id"])
	assert.Equal(t, "example.com", body["zone_name"])
	assert.Equal(t, "kubarr", body["subdomain"])
}

func TestDeleteTunnelConfig(t *testing.T) {
	backend := &fakeBackend{t: t}
	client := newTestClient(t, backend)

	require.NoError(t, client.DeleteTunnelConfig(context.Background()))
	assert.Equal(t, []string{"DELETE /api/cloudflare/config"}, backend.requests)
}

func TestGetTunnelStatus(t *testing.T) {
	backend := &fakeBackend{t: t, status: &kubarr.TunnelStatus{
		Status: "running", ReadyPods: 1, TotalPods: 1,
	}}
	client := newTestClient(t, backend)

	status, err := client.GetTunnelStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "running", status.Status)
	assert.Equal(t, int32(1), status.ReadyPods)
}

func TestValidateToken(t *testing.T) {
	backend := &fakeBackend{t: t, validation: &kubarr.ValidationResult{
		AccountID: "acct1",
		Zones:     []kubarr.Zone{{ID: "z1", Name: "example.com"}},
	}}
	client := newTestClient(t, backend)

	result, err := client.ValidateToken(context.Background(), "tok_valid")
	require.NoError(t, err)
	assert.Equal(t, "acct1", result.AccountID)
	require.Len(t, result.Zones, 1)
	assert.Equal(t, "example.com", result.Zones[0].Name)

	var body map[string]string
	require.NoError(t, json.Unmarshal(backend.lastBody, &body))
	assert.Equal(t, "tok_valid", body["api_token"])
}

func TestErrorDetailSurfacesVerbatim(t *testing.T) {
	backend := &fakeBackend{t: t, failWith: 400,
		failDetail: "Cloudflare API error (verify token): Invalid API Token"}
	client := newTestClient(t, backend)

	_, err := client.ValidateToken(context.Background(), "tok_bad")
	require.Error(t, err)
	assert.Equal(t, "Cloudflare API error (verify token): Invalid API Token", err.Error())
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	backend := &fakeBackend{t: t, failWith: 401, failDetail: "Invalid or expired token"}
	client := newTestClient(t, backend)

	_, err := client.GetTunnelConfig(context.Background())
	require.Error(t, err)
	assert.True(t, kubarr.IsSessionExpiredError(err))
}

func TestServiceUnavailableClassified(t *testing.T) {
	backend := &fakeBackend{t: t, failWith: 503, failDetail: "upstream unavailable"}
	client := newTestClient(t, backend)

	err := client.DeleteTunnelConfig(context.Background())
	require.Error(t, err)
	assert.True(t, kubarr.IsServerUnavailableError(err))
	assert.Equal(t, "upstream unavailable", err.Error())
}

func TestNotFoundClassified(t *testing.T) {
	backend := &fakeBackend{t: t, failWith: 404, failDetail: "No Cloudflare tunnel configured"}
	client := newTestClient(t, backend)

	err := client.DeleteTunnelConfig(context.Background())
	require.Error(t, err)
	assert.True(t, kubarr.IsNotFoundError(err))
}

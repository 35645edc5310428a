// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// stubClient is a hand-rolled Client for concurrency tests, where mock
// expectation counting would fight the nondeterministic call counts of a
// live polling loop.
type stubClient struct {
	mu         sync.Mutex
	config     *kubarr.TunnelConfig
	status     *kubarr.TunnelStatus
	validation *kubarr.ValidationResult

	configErr error
	statusErr error
	deleteErr error

	statusCalls atomic.Int64
	deleteCalls atomic.Int64
}

func (s *stubClient) GetTunnelConfig(context.Context) (*kubarr.TunnelConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config, s.configErr
}

func (s *stubClient) PutTunnelConfig(_ context.Context, req kubarr.ProvisionRequest) (*kubarr.TunnelConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = &kubarr.TunnelConfig{ID: 1, Name: req.Name, Status: "deploying",
		TunnelToken: kubarr.RedactedToken}
	return s.config, nil
}

func (s *stubClient) DeleteTunnelConfig(context.Context) error {
	s.deleteCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.config = nil
	return nil
}

func (s *stubClient) GetTunnelStatus(context.Context) (*kubarr.TunnelStatus, error) {
	s.statusCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusErr
}

func (s *stubClient) ValidateToken(context.Context, string) (*kubarr.ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validation, nil
}

func (s *stubClient) setStatus(status *kubarr.TunnelStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.statusErr = err
}

func TestPollerRunsWhileNonTerminal(t *testing.T) {
	g := NewWithT(t)

	client := &stubClient{status: &kubarr.TunnelStatus{Status: "deploying"}}
	var applied atomic.Int64
	p := NewPoller(client, 5*time.Millisecond, func(*kubarr.TunnelStatus) {
		applied.Add(1)
	}, logr.Discard())
	defer p.Close()

	p.Evaluate(StatusDeploying)
	assert.True(t, p.Active())

	g.Eventually(func() int64 { return client.statusCalls.Load() }).
		Should(BeNumerically(">=", 3), "the loop keeps polling on every tick")
	g.Eventually(func() int64 { return applied.Load() }).
		Should(BeNumerically(">=", 1))
}

func TestPollerStopsOnTerminalStatus(t *testing.T) {
	g := NewWithT(t)

	client := &stubClient{status: &kubarr.TunnelStatus{Status: "deploying"}}
	p := NewPoller(client, 5*time.Millisecond, func(*kubarr.TunnelStatus) {}, logr.Discard())
	defer p.Close()

	p.Evaluate(StatusDeploying)
	g.Eventually(func() int64 { return client.statusCalls.Load() }).
		Should(BeNumerically(">=", 1))

	p.Evaluate(StatusRunning)
	assert.False(t, p.Active())

	settled := client.statusCalls.Load()
	g.Consistently(func() int64 { return client.statusCalls.Load() }, 50*time.Millisecond).
		Should(BeNumerically("<=", settled+1), "at most one in-flight read finishes after stop")
}

func TestPollerSwallowsTransientFailures(t *testing.T) {
	g := NewWithT(t)

	client := &stubClient{statusErr: errors.New("connection refused")}
	var applied atomic.Int64
	p := NewPoller(client, 5*time.Millisecond, func(*kubarr.TunnelStatus) {
		applied.Add(1)
	}, logr.Discard())
	defer p.Close()

	p.Evaluate(StatusDeploying)
	g.Eventually(func() int64 { return client.statusCalls.Load() }).
		Should(BeNumerically(">=", 3), "failures do not stop the loop")
	assert.Zero(t, applied.Load())

	// Recovery on a later tick delivers again.
	client.setStatus(&kubarr.TunnelStatus{Status: "running"}, nil)
	g.Eventually(func() int64 { return applied.Load() }).
		Should(BeNumerically(">=", 1))
}

func TestPollerDiscardsLateResponseAfterClose(t *testing.T) {
	client := &stubClient{status: &kubarr.TunnelStatus{Status: "removing"}}
	var applied atomic.Int64
	p := NewPoller(client, time.Hour, func(*kubarr.TunnelStatus) {
		applied.Add(1)
	}, logr.Discard())

	p.Close()

	// A read that was already in flight when Close ran completes afterwards;
	// its result must not reach apply.
	p.pollOnce()
	assert.Zero(t, applied.Load())
}

func TestPollerEvaluateAfterCloseIsNoop(t *testing.T) {
	client := &stubClient{}
	p := NewPoller(client, 5*time.Millisecond, func(*kubarr.TunnelStatus) {}, logr.Discard())
	p.Close()

	p.Evaluate(StatusDeploying)
	assert.False(t, p.Active())
	assert.Zero(t, p.starts.Load())
}

func TestPollerCloseIsIdempotent(t *testing.T) {
	client := &stubClient{}
	p := NewPoller(client, 5*time.Millisecond, func(*kubarr.TunnelStatus) {}, logr.Discard())
	p.Evaluate(StatusDeploying)

	p.Close()
	p.Close()
	p.Close()
	assert.Equal(t, p.starts.Load(), p.stops.Load())
}

// Any interleaving of start and stop evaluations leaves at most one live
// timer: starts-stops is always 0 or 1, and exactly 0 after Close.
func TestPollerTimerBalanceUnderConcurrentEvaluate(t *testing.T) {
	client := &stubClient{status: &kubarr.TunnelStatus{Status: "deploying"}}
	p := NewPoller(client, time.Hour, func(*kubarr.TunnelStatus) {}, logr.Discard())

	statuses := []Status{
		StatusDeploying, StatusRunning, StatusRemoving,
		StatusNotDeployed, StatusDeploying, StatusFailed,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				p.Evaluate(statuses[(seed+j)%len(statuses)])
			}
		}(i)
	}
	wg.Wait()

	balance := p.starts.Load() - p.stops.Load()
	assert.Contains(t, []int64{0, 1}, balance)

	p.Close()
	assert.Equal(t, p.starts.Load(), p.stops.Load(),
		"no timer survives Close")
	assert.False(t, p.Active())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// DefaultPollInterval is the fixed reconciliation interval.
const DefaultPollInterval = 5 * time.Second

// Poller keeps the live status fresh while the tunnel is in a non-terminal
// state. At most one polling loop is active per poller, no matter how often
// Evaluate is invoked. Individual poll failures are logged and swallowed;
// the next tick retries. The poller only reads, it never writes.
type Poller struct {
	client   kubarr.Client
	timer    *intervalTimer
	interval time.Duration
	apply    func(*kubarr.TunnelStatus)
	log      logr.Logger

	ctx    context.Context
	cancel context.CancelFunc
	alive  atomic.Bool

	starts atomic.Int64
	stops  atomic.Int64
}

// NewPoller creates a poller that delivers every fresh status to apply.
// apply is called from the poll goroutine; it must be safe for concurrent
// use.
func NewPoller(client kubarr.Client, interval time.Duration, apply func(*kubarr.TunnelStatus), log logr.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		client:   client,
		timer:    &intervalTimer{},
		interval: interval,
		apply:    apply,
		log:      log.WithName("poller"),
		ctx:      ctx,
		cancel:   cancel,
	}
	p.alive.Store(true)
	return p
}

// Evaluate starts or stops the polling loop based on the effective status:
// a loop runs exactly while the status is non-terminal. Safe to call from
// any goroutine, any number of times.
func (p *Poller) Evaluate(effective Status) {
	if !p.alive.Load() {
		return
	}

	if effective.Terminal() {
		if p.timer.StopIfPresent() {
			p.stops.Add(1)
			timerStops.Inc()
			p.log.V(1).Info("Reconciliation loop stopped", "status", string(effective))
		}
		return
	}

	if p.timer.StartIfAbsent(p.interval, p.tick) {
		p.starts.Add(1)
		timerStarts.Inc()
		p.log.Info("Reconciliation loop started", "status", string(effective), "interval", p.interval.String())
	}
}

// tick launches the status read in its own goroutine. Ticks are
// time-triggered, not request-triggered: a slow response may overlap the
// next tick's request. The status read is idempotent, so overlap is
// accepted rather than serialized (serializing would only add latency).
func (p *Poller) tick() {
	go p.pollOnce()
}

func (p *Poller) pollOnce() {
	pollTotal.Inc()

	status, err := p.client.GetTunnelStatus(p.ctx)
	if err != nil {
		// Transient; never surfaced to the user. Retried on the next tick.
		pollFailures.Inc()
		p.log.V(1).Info("Status poll failed, retrying next tick", "error", err.Error())
		return
	}

	// A response that arrives after teardown must be discarded, never
	// applied to released state.
	if !p.alive.Load() {
		return
	}
	p.apply(status)
}

// Active reports whether a polling loop is currently scheduled.
func (p *Poller) Active() bool {
	return p.timer.Active()
}

// Close tears the poller down: the timer is cancelled synchronously and any
// in-flight read is abandoned. Idempotent.
func (p *Poller) Close() {
	p.alive.Store(false)
	p.cancel()
	if p.timer.StopIfPresent() {
		p.stops.Add(1)
		timerStops.Inc()
	}
}

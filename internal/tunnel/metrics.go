// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package tunnel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunnelctl_status_polls_total",
		Help: "Number of live-status polls issued by the reconciliation poller.",
	})

	pollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunnelctl_status_poll_failures_total",
		Help: "Number of live-status polls that failed and were retried on the next tick.",
	})

	timerStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunnelctl_poll_timer_starts_total",
		Help: "Number of times the reconciliation timer was started.",
	})

	timerStops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunnelctl_poll_timer_stops_total",
		Help: "Number of times the reconciliation timer was stopped.",
	})
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
)

// newStatusCmd prints the tunnel record and the live pod status once.
func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current tunnel configuration and live status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			config, err := a.client.GetTunnelConfig(ctx)
			if err != nil {
				return fail(err)
			}

			var live *kubarr.TunnelStatus
			if config != nil {
				// Live status is best effort here; the record alone is
				// still worth showing.
				if s, err := a.client.GetTunnelStatus(ctx); err == nil {
					live = s
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), renderConfig(config, live))
			return nil
		},
	}
}

// newWatchCmd follows reconciliation until the tunnel reaches a terminal
// status.
func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow tunnel reconciliation until it settles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return watchUntilTerminal(cmd.Context(), a, cmd.OutOrStdout())
		},
	}
}

// watchUntilTerminal refreshes the manager and renders the merged status
// until it becomes terminal. The manager's poller does the actual status
// reads; this loop only re-renders the snapshot.
func watchUntilTerminal(ctx context.Context, a *app, out io.Writer) error {
	if err := a.manager.Refresh(ctx); err != nil {
		return fail(err)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var last string
	for {
		config, live := a.manager.Snapshot()
		if line := renderConfig(config, live); line != last {
			fmt.Fprint(out, "\n"+line)
			last = line
		}

		if a.manager.EffectiveStatus().Terminal() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

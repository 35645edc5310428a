// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// newRemoveCmd tears the tunnel down after explicit confirmation.
func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Delete the tunnel and tear down its resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := a.manager.Refresh(ctx); err != nil {
				return fail(err)
			}

			config, _ := a.manager.Snapshot()
			if config == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No tunnel configured.")
				return nil
			}

			if !yes {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Remove tunnel %q?", config.Name)).
						Description("The public hostname stops working and the Cloudflare resources are deleted.").
						Affirmative("Remove").
						Negative("Cancel").
						Value(&confirmed),
				))
				if err := form.RunWithContext(ctx); err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}

			if err := a.manager.Remove(ctx); err != nil {
				return fail(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Tunnel removed. Resource teardown continues in the background.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

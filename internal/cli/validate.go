// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kubarr/tunnelctl/internal/tunnel"
)

// newValidateCmd checks a Cloudflare API token and lists its zones without
// touching the configuration store.
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a Cloudflare API token and list its zones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := promptToken(cmd.Context())
			if err != nil {
				return err
			}

			validator := tunnel.NewValidator(a.client, a.log)
			result, err := validator.Validate(cmd.Context(), token)
			if err != nil {
				return fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Token valid for account %s\n", result.AccountID)
			if len(result.Zones) == 0 {
				fmt.Fprintln(out, "No zones are visible to this token.")
				return nil
			}
			fmt.Fprintln(out, "Zones:")
			for _, zone := range result.Zones {
				fmt.Fprintf(out, "  %s (%s)\n", zone.Name, zone.ID)
			}
			return nil
		},
	}
}

// promptToken asks for the API token interactively; input is masked.
func promptToken(ctx context.Context) (string, error) {
	var token string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cloudflare API Token").
				Description("Needs Tunnel:Edit, DNS:Edit and Zone:Read permissions").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		).Title("Cloudflare Credential"),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return token, nil
}

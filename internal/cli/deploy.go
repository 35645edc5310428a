// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
	"github.com/kubarr/tunnelctl/internal/tunnel"
)

// newDeployCmd runs the guided provisioning wizard.
func newDeployCmd(a *app) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the Cloudflare tunnel through the guided wizard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := a.manager.Refresh(ctx); err != nil {
				return fail(err)
			}
			if a.manager.Busy() {
				return tunnel.ErrBusy
			}

			config, err := runDeployWizard(ctx, a.manager)
			if err != nil {
				return fail(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tunnel %q is deploying.\n", config.Name)
			if !wait {
				fmt.Fprintln(out, "Run 'tunnelctl watch' to follow reconciliation.")
				return nil
			}
			return watchUntilTerminal(ctx, a, out)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Wait until the tunnel reaches a terminal status")
	return cmd
}

// runDeployWizard drives the wizard: credential validation, zone selection,
// then the deploy write.
func runDeployWizard(ctx context.Context, m *tunnel.Manager) (*kubarr.TunnelConfig, error) {
	wizard := m.Wizard()

	// Step 1: credential. Retry in place on remote rejection so the user
	// can correct the token.
	for {
		token, err := promptToken(ctx)
		if err != nil {
			return nil, err
		}
		if err := wizard.Validate(ctx, token); err != nil {
			if errors.Is(err, tunnel.ErrEmptyToken) || kubarr.IsSessionExpiredError(err) {
				return nil, err
			}
			var retry bool
			confirm := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Token rejected: " + wizard.LastError()).
					Affirmative("Try again").
					Negative("Abort").
					Value(&retry),
			))
			if err := confirm.RunWithContext(ctx); err != nil {
				return nil, err
			}
			if !retry {
				return nil, err
			}
			continue
		}
		break
	}

	zones := wizard.Zones()
	if len(zones) == 0 {
		wizard.Reset()
		return nil, errors.New("this token has no zones; add a zone to the Cloudflare account first")
	}

	// Step 2: deployment parameters.
	options := make([]huh.Option[string], 0, len(zones))
	for _, zone := range zones {
		options = append(options, huh.NewOption(zone.Name, zone.ID))
	}

	selected := wizard.SelectedZone().ID
	name := "Kubarr"
	subdomain := "kubarr"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Zone").
				Description("DNS zone the public hostname is created under").
				Options(options...).
				Value(&selected),
			huh.NewInput().
				Title("Tunnel Name").
				Value(&name).
				Validate(notEmpty("tunnel name")),
			huh.NewInput().
				Title("Subdomain").
				Description("The dashboard becomes https://<subdomain>.<zone>").
				Value(&subdomain).
				Validate(notEmpty("subdomain")),
		).Title("Tunnel Settings"),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}
	if err := wizard.SelectZone(selected); err != nil {
		return nil, err
	}

	return m.Deploy(ctx, name, subdomain)
}

func notEmpty(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("please enter a %s", field)
		}
		return nil
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kubarr/tunnelctl/internal/clients/kubarr"
	"github.com/kubarr/tunnelctl/internal/tunnel"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(12)
	dimStyle   = lipgloss.NewStyle().Faint(true)

	statusStyles = map[tunnel.Status]lipgloss.Style{
		tunnel.StatusRunning:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		tunnel.StatusFailed:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		tunnel.StatusDeploying:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		tunnel.StatusRemoving:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		tunnel.StatusNotDeployed: lipgloss.NewStyle().Faint(true),
	}
)

func renderStatus(s tunnel.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// renderConfig formats the tunnel record plus live status for the terminal.
func renderConfig(config *kubarr.TunnelConfig, live *kubarr.TunnelStatus) string {
	if config == nil {
		return dimStyle.Render("No tunnel configured.")
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	row("Name", config.Name)
	row("Status", renderStatus(tunnel.EffectiveStatus(config, live)))
	if config.Error != nil && *config.Error != "" {
		row("Error", statusStyles[tunnel.StatusFailed].Render(*config.Error))
	}
	if config.ZoneName != nil {
		row("Zone", *config.ZoneName)
	}
	if config.Subdomain != nil {
		row("Subdomain", *config.Subdomain)
	}
	// The hostname is only meaningful once the tunnel runs.
	if config.Hostname != nil && tunnel.EffectiveStatus(config, live) == tunnel.StatusRunning {
		row("Hostname", fmt.Sprintf("https://%s", *config.Hostname))
	}
	if live != nil {
		row("Pods", fmt.Sprintf("%d/%d ready", live.ReadyPods, live.TotalPods))
		if live.Message != nil && *live.Message != "" {
			row("Message", *live.Message)
		}
	}
	return b.String()
}

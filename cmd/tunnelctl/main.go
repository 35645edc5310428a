// SPDX-License-Identifier: Apache-2.0
// Copyright 2025-2026 The Kubarr Authors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/kubarr/tunnelctl/internal/cli"
)

func main() {
	verbose := os.Getenv("TUNNELCTL_VERBOSE") != ""

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stderr"}
	if verbose {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.OutputPaths = []string{"stderr"}
	} else {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	zapLog, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer zapLog.Sync() //nolint:errcheck

	log := zapr.NewLogger(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(log)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

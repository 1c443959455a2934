// Package main provides the tenants CLI for creating, updating, deleting, and
// inspecting tenant descriptors stored in a local event log.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	tenantscmd "github.com/polycoder/tenants/internal/cmd/tenants"
	"github.com/polycoder/tenants/internal/platform/config"
)

func main() {
	cfg, err := tenantscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Usagef("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tenantscmd.Run(ctx, cfg, os.Stdout); err != nil {
		stop()
		config.Exitf("%s", tenantscmd.Describe(err, cfg.Locale))
	}
}

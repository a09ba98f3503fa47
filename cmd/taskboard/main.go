// Package main is the entry point for the taskboard CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/backend/rest"
	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		log := logging.Nop()
		if !cfg.Interactive {
			log = logging.New(cfg.Debug, os.Stderr)
		}
		switch cfg.Backend {
		case config.BackendGoogleTasks:
			return googletasks.New(ctx, cfg, log)
		case config.BackendREST:
			return rest.New(ctx, cfg, log)
		}
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

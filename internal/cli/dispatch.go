// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/store"
)

// StoreFactory creates a Store from config.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (store.Store, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> show the board
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// interactive is implemented by commands that take over the terminal.
type interactive interface {
	Interactive() bool
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
	apiURL    string
	backend   string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
	fs.StringVar(&f.apiURL, "api", "", "")
	fs.StringVar(&f.backend, "backend", "", "")
}

// apply overrides environment settings with the flags that were given.
func (f *commonFlags) apply(cfg *config.Config) {
	cfg.Quiet = f.quiet
	cfg.Debug = f.debug
	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	if f.backend != "" {
		cfg.Backend = f.backend
	}
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are reported below

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leading dash left after parsing was not a known flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}
	common.apply(cfg)
	if ic, ok := cmd.(interactive); ok {
		cfg.Interactive = ic.Interactive()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}

	var st store.Store
	if cmd.NeedsStore() {
		if code := preflight(cfg, errOut); code != exitcode.Success {
			return code
		}
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no store configured")
			return exitcode.AuthError
		}
		st, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError
		}
	}

	return cmd.Run(ctx, cfg, st, positionalArgs, out, errOut)
}

// preflight reports missing credential files before a store is built.
func preflight(cfg *config.Config, errOut io.Writer) int {
	if cfg.Backend != config.BackendGoogleTasks {
		return exitcode.Success
	}
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
		return exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintf(errOut, "error: not logged in (run: %s login)\n", config.AppName)
		return exitcode.AuthError
	}
	return exitcode.Success
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if name, ok := strings.CutPrefix(errStr, "flag needs an argument: "); ok {
		return "flag needs an argument: " + name
	}
	if name, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return errStr
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/store"
	"taskboard/internal/tui"
	"taskboard/internal/view"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"board"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive board" }
func (c *UICmd) Usage() string     { return "taskboard ui [common flags]" }
func (c *UICmd) NeedsStore() bool  { return true }

// Interactive keeps store logging off the terminal while the board is shown.
func (c *UICmd) Interactive() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	log, closeLog, err := uiLogger(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	defer closeLog()

	b := view.New(ctx, st,
		view.WithLogger(log),
		view.WithBannerDelay(cfg.BannerDelay),
	)
	if err := tui.Run(ctx, b); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// uiLogger sends logs to the debug file while the board owns the terminal.
func uiLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	if !cfg.Debug {
		return logging.Nop(), func() {}, nil
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(cfg.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	log := logging.New(true, f)
	return log, func() {
		_ = log.Sync()
		_ = f.Close()
	}, nil
}

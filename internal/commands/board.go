package commands

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/store"
	"taskboard/internal/view"
)

// openBoard creates a board on st and loads the collection into it.
// On failure the error has been reported and the exit code is returned.
func openBoard(ctx context.Context, cfg *config.Config, st store.Store, errOut io.Writer) (*view.Board, int) {
	log := logging.Nop()
	if cfg.Debug {
		log = logging.New(true, errOut)
	}
	b := view.New(ctx, st,
		view.WithLogger(log),
		view.WithBannerDelay(cfg.BannerDelay),
	)
	if code := runBoard(ctx, b, errOut, b.Load()); code != exitcode.Success {
		return nil, code
	}
	return b, exitcode.Success
}

// runBoard drives cmds to completion. A raised banner is printed as the error.
func runBoard(ctx context.Context, b *view.Board, errOut io.Writer, cmds ...tea.Cmd) int {
	if err := view.Run(ctx, b, cmds...); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if err := b.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", b.Banner().Text)
		return exitcode.ForStoreError(err)
	}
	return exitcode.Success
}

// resolveArgs loads the board and resolves the task reference at the head of
// args. It returns the remaining args.
func resolveArgs(ctx context.Context, cfg *config.Config, st store.Store, args []string, errOut io.Writer) (*view.Board, view.Item, []string, int) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, view.Item{}, nil, exitcode.UserError
	}

	b, code := openBoard(ctx, cfg, st, errOut)
	if code != exitcode.Success {
		return nil, view.Item{}, nil, code
	}

	it, err := ResolveTaskRef(b, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, view.Item{}, nil, exitcode.UserError
	}
	return b, it, rest, exitcode.Success
}

// printOK reports success unless quiet.
func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}

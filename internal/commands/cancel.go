package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/store"
)

func init() {
	Register(&CancelCmd{})
}

// CancelCmd implements the cancel command.
type CancelCmd struct{}

func (c *CancelCmd) Name() string      { return "cancel" }
func (c *CancelCmd) Aliases() []string { return nil }
func (c *CancelCmd) Synopsis() string  { return "Cancel a pending task" }
func (c *CancelCmd) Usage() string     { return "taskboard cancel [common flags] <ref>" }
func (c *CancelCmd) NeedsStore() bool  { return true }

func (c *CancelCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CancelCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	b, it, rest, code := resolveArgs(ctx, cfg, st, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	cmd := b.Cancel(it.Task.ID)
	if cmd == nil {
		fmt.Fprintln(errOut, "error: only pending tasks can be canceled")
		return exitcode.UserError
	}
	if code := runBoard(ctx, b, errOut, cmd); code != exitcode.Success {
		return code
	}

	printOK(cfg, out)
	return exitcode.Success
}

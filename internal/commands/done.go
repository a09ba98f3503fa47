package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles a task between pending
// and completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task between pending and completed" }
func (c *DoneCmd) Usage() string     { return "taskboard done [common flags] <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	b, it, rest, code := resolveArgs(ctx, cfg, st, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}
	if it.Task.Status == task.Canceled {
		fmt.Fprintln(errOut, "error: canceled tasks cannot be toggled")
		return exitcode.UserError
	}

	if code := runBoard(ctx, b, errOut, b.Toggle(it.Task.ID)); code != exitcode.Success {
		return code
	}

	printOK(cfg, out)
	return exitcode.Success
}

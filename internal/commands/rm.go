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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskboard rm [common flags] <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	b, it, rest, code := resolveArgs(ctx, cfg, st, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	if code := runBoard(ctx, b, errOut, b.Delete(it.Task.ID)); code != exitcode.Success {
		return code
	}

	printOK(cfg, out)
	return exitcode.Success
}

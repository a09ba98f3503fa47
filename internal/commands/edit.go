package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/store"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's description" }
func (c *EditCmd) Usage() string     { return "taskboard edit [common flags] <ref> <description...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	b, it, rest, code := resolveArgs(ctx, cfg, st, args, errOut)
	if code != exitcode.Success {
		return code
	}
	desc := strings.Join(rest, " ")
	if strings.TrimSpace(desc) == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	id := it.Task.ID
	if !b.Edit(id) || !b.SetEditText(id, desc) {
		fmt.Fprintf(errOut, "error: task cannot be edited: #%s\n", id)
		return exitcode.UserError
	}
	if code := runBoard(ctx, b, errOut, b.ConfirmEdit(id)); code != exitcode.Success {
		return code
	}

	printOK(cfg, out)
	return exitcode.Success
}

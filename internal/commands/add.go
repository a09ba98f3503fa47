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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a pending task" }
func (c *AddCmd) Usage() string     { return "taskboard add [common flags] <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	desc := strings.Join(args, " ")
	if strings.TrimSpace(desc) == "" {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	b, code := openBoard(ctx, cfg, st, errOut)
	if code != exitcode.Success {
		return code
	}

	b.SetInput(desc)
	if code := runBoard(ctx, b, errOut, b.Add()); code != exitcode.Success {
		return code
	}

	printOK(cfg, out)
	return exitcode.Success
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	only string
}

// SetOnly restricts output to one list letter (for testing).
func (c *ListCmd) SetOnly(letter string) {
	c.only = letter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Show the task board" }
func (c *ListCmd) Usage() string     { return "taskboard list [common flags] [--only p|c|x]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.only, "only", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var only *task.List
	if c.only != "" {
		l, ok := output.ListForLetter(rune(c.only[0]))
		if !ok || len(c.only) != 1 {
			fmt.Fprintf(errOut, "error: unknown list letter: %s\n", c.only)
			return exitcode.UserError
		}
		only = &l
	}

	b, code := openBoard(ctx, cfg, st, errOut)
	if code != exitcode.Success {
		return code
	}

	if only != nil {
		items := b.Items(*only)
		output.FormatListHeader(out, *only, len(items))
		for i, it := range items {
			output.FormatItem(out, output.ListLetter(*only), i+1, it)
		}
		return exitcode.Success
	}

	if b.Len() == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	output.FormatBoard(out, b)
	return exitcode.Success
}

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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. It lists the commands of Registry,
// or of DefaultRegistry when Registry is nil.
type HelpCmd struct {
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	r := c.Registry
	if r == nil {
		r = DefaultRegistry
	}
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  taskboard                Show the task board")
	r.WriteUsage(out)
	fmt.Fprintln(out, "\nCommands:")
	_ = r.WriteSummary(out)
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `
Task references:
  3        third pending task
  p3, c1   task by list letter (p pending, c completed, x canceled)
  x 2      same, separated
  #42      task by id

Common flags:
  --config <dir>     Override config directory
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
  --api <url>        Task collection URL (env TASKBOARD_API_URL)
  --backend <name>   rest or googletasks (env TASKBOARD_BACKEND)
`

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/store"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command for the Google Tasks backend.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google Tasks" }
func (c *LoginCmd) Usage() string     { return "taskboard login [common flags]" }
func (c *LoginCmd) NeedsStore() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, st store.Store, args []string, out, errOut io.Writer) int {
	if cfg.Backend != config.BackendGoogleTasks {
		fmt.Fprintf(errOut, "error: login is only used by the %s backend (the %s backend reads %s)\n",
			config.BackendGoogleTasks, config.BackendREST, config.EnvToken)
		return exitcode.UserError
	}

	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: %s not found in %s\n\n", config.OAuthClientFile, cfg.Dir)
		fmt.Fprint(errOut, oauthSetupText)
		fmt.Fprintf(errOut, "   %s/%s\n\n", cfg.Dir, config.OAuthClientFile)
		fmt.Fprintln(errOut, "Then run 'taskboard login' again.")
		return exitcode.AuthError
	}

	if cfg.HasToken() && googletasks.TokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := googletasks.LoadOAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	token, err := googletasks.Authorize(ctx, oauthConfig, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if err := googletasks.SaveToken(cfg, token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	printOK(cfg, out)
	return exitcode.Success
}

const oauthSetupText = `To use Google Tasks as the store, you need OAuth credentials:

1. Go to https://console.cloud.google.com/apis/credentials
2. Create a project (or select an existing one)
3. Enable the Google Tasks API:
   https://console.cloud.google.com/apis/library/tasks.googleapis.com
4. Create OAuth 2.0 credentials:
   - Click 'Create Credentials' > 'OAuth client ID'
   - Choose 'Desktop app' as application type
   - Download the JSON file
5. Save it as:
`

package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/store"
	"taskboard/internal/task"
	"taskboard/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeStore and
// records the config it was called with.
func testFactory(st *testutil.FakeStore, seen **config.Config) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		if seen != nil {
			*seen = cfg
		}
		return st, nil
	}
}

func run(t *testing.T, factory cli.StoreFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	for _, env := range []string{config.EnvAPIURL, config.EnvBackend, config.EnvToken, config.EnvTimeout} {
		t.Setenv(env, "")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected 'taskboard 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil), "list", "--api")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -api\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsBoard(t *testing.T) {
	st := testutil.NewFakeStore(task.Task{Description: "Buy milk", Status: task.Pending})

	stdout, stderr, code := run(t, testFactory(st, nil))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "p1   [ ] Buy milk  #1") {
		t.Errorf("expected board output, got %q", stdout)
	}
}

func TestDispatcher_CommonFlagsReachConfig(t *testing.T) {
	var seen *config.Config
	dir := t.TempDir()

	_, _, code := run(t, testFactory(testutil.NewFakeStore(), &seen),
		"list", "--config", dir, "--quiet", "--api", "http://localhost:9/tasks")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if seen.Dir != dir {
		t.Errorf("expected config dir %q, got %q", dir, seen.Dir)
	}
	if !seen.Quiet {
		t.Error("expected quiet to be set")
	}
	if seen.APIURL != "http://localhost:9/tasks" {
		t.Errorf("expected api url override, got %q", seen.APIURL)
	}
	if seen.Backend != config.BackendREST {
		t.Errorf("expected rest backend, got %q", seen.Backend)
	}
}

func TestDispatcher_UnknownBackend(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil), "list", "--backend", "carrier-pigeon")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: unknown backend: carrier-pigeon\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_GoogleTasksNeedsCredentials(t *testing.T) {
	dir := t.TempDir()

	_, stderr, code := run(t, testFactory(testutil.NewFakeStore(), nil),
		"list", "--backend", "googletasks", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("unexpected stderr %q", stderr)
	}

	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	_, stderr, code = run(t, testFactory(testutil.NewFakeStore(), nil),
		"list", "--backend", "googletasks", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskboard login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		return nil, errors.New("invalid api url")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: invalid api url\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_BackendErrorExitCode(t *testing.T) {
	st := testutil.NewFakeStore()
	st.CreateErr = &store.RemoteError{StatusCode: 503}

	_, stderr, code := run(t, testFactory(st, nil), "add", "Buy", "milk")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: La tarea no ha podido ser añadida.") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/store"
	"taskpad/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	// Keep the user's config out of the tests
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvBackend, "")

	var outBuf, errBuf bytes.Buffer
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "Buy milk")

	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  Buy milk  [Pending]  due 01/01/2024\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_Alias(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := run(t, testFactory(svc), "ls")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_HelpDoesNotOpenStore(t *testing.T) {
	calls := 0
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		calls++
		return testutil.NewFakeService(), nil
	}

	stdout, stderr, code := run(t, factory, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
	if calls != 0 {
		t.Errorf("help should not open storage, factory called %d times", calls)
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
	if stdout != "taskpad 0.1.0\n" {
		t.Errorf("expected 'taskpad 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "add", "--due")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -due\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_StorageUnavailable(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, fmt.Errorf("%w: database is locked", store.ErrStorageUnavailable)
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if !strings.Contains(stderr, "database is locked") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_ConfigLayers(t *testing.T) {
	dir := t.TempDir()
	toml := "backend = \"bolt\"\ndate_format = \"2006-01-02\"\ncheck_revision = true\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	var got *config.Config
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		got = cfg
		return testutil.NewFakeService(), nil
	}

	_, _, code := run(t, factory, "list", "--config", dir, "--backend", "memory", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got.Backend != "memory" {
		t.Errorf("flag should override file backend, got %q", got.Backend)
	}
	if got.DateFormat != "2006-01-02" || !got.CheckRevision {
		t.Errorf("file settings not applied: %+v", got)
	}
	if !got.Quiet {
		t.Error("expected quiet")
	}
}

// closingService records whether the dispatcher closed it.
type closingService struct {
	*testutil.FakeService
	closed bool
}

func (c *closingService) Close() error {
	c.closed = true
	return nil
}

func TestDispatcher_ClosesService(t *testing.T) {
	svc := &closingService{FakeService: testutil.NewFakeService()}
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}

	run(t, factory, "list")

	if !svc.closed {
		t.Error("expected service to be closed after the command")
	}
}

// TestDispatcher_EndToEnd drives the real repository on each on-disk backend
// through separate invocations, the way a user would.
func TestDispatcher_EndToEnd(t *testing.T) {
	for _, backend := range []string{store.BackendFile, store.BackendSQLite, store.BackendBolt} {
		t.Run(backend, func(t *testing.T) {
			dataDir := t.TempDir()
			invoke := func(args ...string) (string, string, int) {
				t.Helper()
				args = append([]string{args[0], "--backend", backend}, args[1:]...)
				stdout, stderr, code := run(t, cli.OpenRepository, args...)
				return stdout, stderr, code
			}
			t.Setenv(config.EnvDataDir, dataDir)

			_, stderr, code := invoke("add", "-d", "Milk and eggs", "--due", "2024-05-01", "Buy", "groceries")
			if code != exitcode.Success {
				t.Fatalf("add failed (%d): %s", code, stderr)
			}
			_, stderr, code = invoke("add", "-d", "Around the block", "--due", "02/05/2024", "-s", "InProgress", "Walk", "dog")
			if code != exitcode.Success {
				t.Fatalf("add failed (%d): %s", code, stderr)
			}

			_, _, code = invoke("done", "1")
			if code != exitcode.Success {
				t.Fatalf("done failed (%d)", code)
			}

			stdout, _, _ := invoke("list")
			expected := "   1  Buy groceries  [Completed]  due 01/05/2024\n" +
				"   2  Walk dog  [In Progress]  due 02/05/2024\n"
			if stdout != expected {
				t.Errorf("expected %q, got %q", expected, stdout)
			}

			_, _, code = invoke("rm", "2")
			if code != exitcode.Success {
				t.Fatalf("rm failed (%d)", code)
			}
			stdout, _, _ = invoke("list", "--status", "completed")
			if stdout != "   1  Buy groceries  [Completed]  due 01/05/2024\n" {
				t.Errorf("unexpected list after rm: %q", stdout)
			}
		})
	}
}

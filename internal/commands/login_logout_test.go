package commands_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// writeFiles writes name -> content pairs into a fresh config dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func runAuthCommand(ctx context.Context, cmd commands.Command, dir string, quiet bool) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: dir, Quiet: quiet}
	code = cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LoginCmd{}, t.TempDir(), false)

	expectCode(t, exitcode.AuthError, code)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") || !strings.Contains(stderr, "taskpad login") {
		t.Errorf("expected setup instructions, got %q", stderr)
	}
}

// A stored token that cannot be refreshed must not count as logged in.
func TestLoginCommand_UnusableToken(t *testing.T) {
	tokens := map[string]string{
		"no refresh token": `{"access_token":"expired","token_type":"Bearer"}`,
		"expired":          `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
		"corrupt":          `{not json`,
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{
				"oauth_client.json": testOAuthClient,
				"token.json":        token,
			})

			// Cancelled so the command does not wait for the OAuth callback
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, _, code := runAuthCommand(ctx, &commands.LoginCmd{}, dir, false)
			if stdout == "already logged in\n" {
				t.Error("should not say 'already logged in'")
			}
			expectCode(t, exitcode.AuthError, code)
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"oauth_client.json": testOAuthClient,
		"token.json":        `{"access_token":"test","refresh_token":"test"}`,
	})

	stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, dir, false)

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "logged out\n" {
		t.Errorf("expected %q, got %q", "logged out\n", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "token.json")); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, "oauth_client.json")); err != nil {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

func TestLogoutCommand_AllRemovesClient(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"oauth_client.json": testOAuthClient,
		"token.json":        `{"access_token":"test","refresh_token":"test"}`,
	})

	cmd := &commands.LogoutCmd{}
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"--all"}); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}

	stdout, _, code := runAuthCommand(context.Background(), cmd, dir, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "logged out\n" {
		t.Errorf("expected %q, got %q", "logged out\n", stdout)
	}
	for _, name := range []string{"token.json", "oauth_client.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should have been deleted", name)
		}
	}
}

// Only the client file present still counts as a logout under --all.
func TestLogoutCommand_AllWithoutToken(t *testing.T) {
	dir := writeFiles(t, map[string]string{"oauth_client.json": testOAuthClient})

	cmd := &commands.LogoutCmd{}
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"--all"}); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}

	stdout, _, code := runAuthCommand(context.Background(), cmd, dir, false)

	expectCode(t, exitcode.Success, code)
	if stdout != "logged out\n" {
		t.Errorf("expected %q, got %q", "logged out\n", stdout)
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		quiet bool
		want  string
	}{
		{false, "not logged in\n"},
		{true, ""},
	}
	for _, tt := range tests {
		stdout, stderr, code := runAuthCommand(context.Background(), &commands.LogoutCmd{}, t.TempDir(), tt.quiet)

		expectCode(t, exitcode.Success, code)
		if stderr != "" {
			t.Errorf("expected no stderr, got %q", stderr)
		}
		if stdout != tt.want {
			t.Errorf("quiet=%v: expected %q, got %q", tt.quiet, tt.want, stdout)
		}
	}
}

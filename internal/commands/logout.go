package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd forgets the stored Google token so the next export has to
// log in again. With --all the OAuth client file goes too.
type LogoutCmd struct {
	all bool
}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored Google credentials" }
func (c *LogoutCmd) Usage() string     { return "taskpad logout [common flags] [--all]" }
func (c *LogoutCmd) NeedsStore() bool  { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "Also remove oauth_client.json")
}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	logger := cfg.Logger()

	removed := 0
	steps := []struct {
		path   string
		remove func() error
		wanted bool
	}{
		{cfg.TokenPath(), cfg.RemoveToken, true},
		{cfg.OAuthClientPath(), cfg.RemoveOAuthClient, c.all},
	}
	for _, s := range steps {
		if !s.wanted {
			continue
		}
		err := s.remove()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("nothing to remove", "path", s.path)
		case err != nil:
			fmt.Fprintf(errOut, "error: failed to remove %s: %v\n", s.path, err)
			return exitcode.AuthError
		default:
			logger.Debug("removed", "path", s.path)
			removed++
		}
	}

	if !cfg.Quiet {
		if removed == 0 {
			fmt.Fprintln(out, "not logged in")
		} else {
			fmt.Fprintln(out, "logged out")
		}
	}
	return exitcode.Success
}

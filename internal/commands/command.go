// Package commands implements the taskpad subcommands. Each command
// registers itself with DefaultRegistry from an init function.
package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/service"
)

// Command is one taskpad subcommand.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis and Usage feed the help command.
	Synopsis() string
	Usage() string

	// NeedsStore reports whether Run touches the task collection. The
	// dispatcher opens storage only for commands that return true, so
	// help, version, login and logout keep working when it is broken.
	NeedsStore() bool

	RegisterFlags(fs *flag.FlagSet)

	// Run receives the positional arguments left after flag parsing and
	// returns an exitcode value. svc is nil unless NeedsStore is true.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the version, and with --verbose where tasks are kept.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "taskpad version [--verbose]" }
func (c *VersionCmd) NeedsStore() bool  { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "Show build and storage details")
	fs.BoolVar(&c.verbose, "v", false, "Show build and storage details (shorthand)")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
	if !c.verbose {
		return exitcode.Success
	}

	fmt.Fprintf(out, "  go:       %s\n", runtime.Version())
	if rev := vcsRevision(); rev != "" {
		fmt.Fprintf(out, "  commit:   %s\n", rev)
	}
	fmt.Fprintf(out, "  config:   %s\n", cfg.ConfigPath())
	fmt.Fprintf(out, "  backend:  %s\n", cfg.Backend)
	fmt.Fprintf(out, "  data dir: %s\n", cfg.DataDir)
	return exitcode.Success
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

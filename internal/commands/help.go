package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpad help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)

	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		line := fmt.Sprintf("  %-8s %s", cmd.Name(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += fmt.Sprintf(" (alias: %s)", strings.Join(aliases, ", "))
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out, "\nExit codes:")
	for _, ec := range exitcode.All() {
		fmt.Fprintf(out, "  %d  %s\n", ec.Value, ec.Description)
	}
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                   List all tasks
  taskpad list [common flags] [--status <status>]
  taskpad show [common flags] <ref>
  taskpad add [common flags] --description <text> --due <date> [--status <status>] <title...>
  taskpad edit [common flags] [--title <text>] [--description <text>] [--due <date>] [--status <status>] <ref>
  taskpad done [common flags] <ref>
  taskpad rm [common flags] <ref>
  taskpad export [common flags] [--list <list-name>]
  taskpad ui [common flags]
  taskpad login [common flags]
  taskpad logout [common flags] [--all]
  taskpad help
  taskpad version [--verbose]

Task references:
  <n>              Position in the task list (1-based), unless a task has id <n>
  <id>             Task id, or a unique prefix of at least 4 characters

Dates are YYYY-MM-DD or DD/MM/YYYY. Status is Pending, InProgress or Completed.

Common flags:
  --config <dir>    Override config directory
  --backend <name>  Storage backend: file, sqlite, bolt or memory
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`

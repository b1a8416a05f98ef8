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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	title       string
	description string
	due         string
	status      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpad add --description <text> --due <date> [--status <status>] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = AddCmd{}
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.status, "status", string(service.StatusPending), "")
	fs.StringVar(&c.status, "s", string(service.StatusPending), "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := c.title
	if title == "" {
		// Join args to form title
		title = strings.Join(args, " ")
	} else if len(args) > 0 {
		fmt.Fprintln(errOut, "error: cannot use both --title and a positional title")
		return exitcode.UserError
	}

	draft := service.Draft{
		Title:       title,
		Description: c.description,
		DueDate:     c.due,
		Status:      c.status,
	}

	task, err := svc.CreateTask(ctx, draft)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, task.ID)
	}
	return exitcode.Success
}

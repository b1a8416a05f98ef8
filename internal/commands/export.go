package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/backend/googletasks"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// Exporter pushes tasks into a remote task list.
type Exporter interface {
	EnsureList(ctx context.Context, name string) (string, error)
	PushTask(ctx context.Context, listID string, t service.Task) error
}

// ExporterFactory creates an Exporter from config.
type ExporterFactory func(ctx context.Context, cfg *config.Config) (Exporter, error)

// GoogleExporter is the default ExporterFactory.
func GoogleExporter(ctx context.Context, cfg *config.Config) (Exporter, error) {
	if !cfg.HasOAuthClient() {
		return nil, fmt.Errorf("oauth_client.json not found in %s", cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, fmt.Errorf("not logged in (run: taskpad login)")
	}
	client, err := googletasks.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ExportCmd implements the export command.
type ExportCmd struct {
	listName string

	// NewExporter overrides GoogleExporter (for testing).
	NewExporter ExporterFactory
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Copy all tasks into a Google Tasks list" }
func (c *ExportCmd) Usage() string     { return "taskpad export [--list <list-name>]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	c.listName = ""
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.ExportList
	}
	if listName == "" {
		listName = config.DefaultExportList
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks to export")
		}
		return exitcode.Success
	}

	factory := c.NewExporter
	if factory == nil {
		factory = GoogleExporter
	}
	exp, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	listID, err := exp.EnsureList(ctx, listName)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	logger := cfg.Logger()
	for i, t := range tasks {
		if err := exp.PushTask(ctx, listID, t); err != nil {
			fmt.Fprintf(errOut, "error: exported %d of %d tasks\n", i, len(tasks))
			return reportRemoteError(errOut, err)
		}
		logger.Debug("exported task", "id", t.ID, "list", listName)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(tasks), listName)
	}
	return exitcode.Success
}

func reportRemoteError(errOut io.Writer, err error) int {
	if errors.Is(err, googletasks.ErrUnauthorized) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: remote error: %v\n", err)
	return exitcode.RemoteError
}

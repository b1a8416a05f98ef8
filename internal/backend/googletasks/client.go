// Package googletasks pushes local tasks into a Google Tasks list.
// Export is one-way: nothing is read back into the local collection.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/service"
)

// APITimeout is the timeout for each API call.
const APITimeout = 5 * time.Second

// Google Tasks status values.
const (
	statusNeedsAction = "needsAction"
	statusCompleted   = "completed"
)

// ErrUnauthorized is returned when the API rejects the stored token.
var ErrUnauthorized = errors.New("token expired or revoked (run: taskpad login)")

// Client talks to the Google Tasks API.
type Client struct {
	svc    *tasks.Service
	logger *log.Logger
}

// New creates a client from the stored OAuth client and token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes automatically
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	c, err := NewWithHTTPClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	c.logger = cfg.Logger()
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and extra
// options such as option.WithEndpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, logger: logging.Discard()}, nil
}

// EnsureList returns the ID of the list titled name (case-insensitive,
// trimmed), creating it if no list matches. More than one match is an error.
func (c *Client) EnsureList(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("list name required")
	}

	lctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var matches []string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(lctx, func(resp *tasks.TaskLists) error {
		for _, l := range resp.Items {
			if strings.EqualFold(strings.TrimSpace(l.Title), name) {
				matches = append(matches, l.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
	default:
		return "", fmt.Errorf("ambiguous list name: %s", name)
	}

	ictx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: name}).Context(ictx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	c.logger.Debug("created google task list", "name", name, "id", created.Id)
	return created.Id, nil
}

// PushTask inserts t into the list.
func (c *Client) PushTask(ctx context.Context, listID string, t service.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, toGoogle(t)).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	c.logger.Debug("pushed task", "id", t.ID, "list", listID)
	return nil
}

// toGoogle maps a local task onto the Google Tasks resource. Due dates are
// sent as midnight UTC; the API ignores the time part.
func toGoogle(t service.Task) *tasks.Task {
	status := statusNeedsAction
	if t.Status == service.StatusCompleted {
		status = statusCompleted
	}
	return &tasks.Task{
		Title:  t.Title,
		Notes:  t.Description,
		Due:    t.DueDate.Time().Format(time.RFC3339),
		Status: status,
	}
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrUnauthorized
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}
	return err
}

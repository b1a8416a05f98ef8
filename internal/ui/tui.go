// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskpad/internal/logging"
	"taskpad/internal/service"
	"taskpad/internal/validate"
)

// Options configures the terminal interface.
type Options struct {
	// Layout is the time layout due dates are shown in.
	Layout string
	Logger *log.Logger
}

// Run starts the interface on the terminal and blocks until the user quits.
func Run(ctx context.Context, svc service.Service, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("ui requires a TTY")
	}
	program := tea.NewProgram(New(ctx, svc, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// IsTTY reports whether w is a character device.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
)

// Model is the Bubble Tea model. Each screen keeps only a read-only copy of
// what it last loaded; every change of screen loads again.
type Model struct {
	ctx    context.Context
	svc    service.Service
	layout string
	logger *log.Logger

	screen screen
	// visit increments on every screen change. Results tagged with an older
	// visit belong to a screen the user already left and are dropped.
	visit int

	loading bool
	loadErr error
	flash   string

	tasks  []service.Task
	cursor int

	taskID   string
	task     *service.Task
	notFound bool

	form *form
}

type tasksMsg struct {
	visit int
	tasks []service.Task
	err   error
}

type taskMsg struct {
	visit int
	task  service.Task
	err   error
}

type savedMsg struct {
	visit   int
	task    service.Task
	created bool
	err     error
}

type deletedMsg struct {
	visit int
	err   error
}

// New returns a model showing the task list.
func New(ctx context.Context, svc service.Service, opts Options) *Model {
	if opts.Layout == "" {
		opts.Layout = service.DisplayDate
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Model{
		ctx:    ctx,
		svc:    svc,
		layout: opts.Layout,
		logger: opts.Logger,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.show(screenList)
}

// show switches to s and starts loading what it displays.
func (m *Model) show(s screen) tea.Cmd {
	m.screen = s
	m.visit++
	m.loadErr = nil
	m.loading = false
	m.logger.Debug("screen", "screen", s, "visit", m.visit)

	switch s {
	case screenList:
		m.loading = true
		return m.loadTasks()
	case screenDetail:
		m.task = nil
		m.notFound = false
		m.loading = true
		return m.loadTask()
	case screenForm:
		if m.form != nil && m.form.editID != "" {
			m.notFound = false
			m.loading = true
			return m.loadTask()
		}
	}
	return nil
}

func (m *Model) loadTasks() tea.Cmd {
	visit, ctx, svc := m.visit, m.ctx, m.svc
	return func() tea.Msg {
		tasks, err := svc.ListTasks(ctx)
		return tasksMsg{visit: visit, tasks: tasks, err: err}
	}
}

func (m *Model) loadTask() tea.Cmd {
	visit, ctx, svc, id := m.visit, m.ctx, m.svc, m.taskID
	return func() tea.Msg {
		task, err := svc.FindTask(ctx, id)
		return taskMsg{visit: visit, task: task, err: err}
	}
}

func (m *Model) save(id string, draft service.Draft) tea.Cmd {
	visit, ctx, svc := m.visit, m.ctx, m.svc
	return func() tea.Msg {
		if id == "" {
			task, err := svc.CreateTask(ctx, draft)
			return savedMsg{visit: visit, task: task, created: true, err: err}
		}
		task, err := svc.UpdateTask(ctx, id, draft)
		return savedMsg{visit: visit, task: task, err: err}
	}
}

func (m *Model) remove(id string) tea.Cmd {
	visit, ctx, svc := m.visit, m.ctx, m.svc
	return func() tea.Msg {
		return deletedMsg{visit: visit, err: svc.DeleteTask(ctx, id)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenList:
			return m, m.updateList(msg)
		case screenDetail:
			return m, m.updateDetail(msg)
		case screenForm:
			return m, m.updateForm(msg)
		}

	case tasksMsg:
		if msg.visit != m.visit {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		m.tasks = msg.tasks
		m.cursor = clampCursor(m.cursor, len(m.tasks))

	case taskMsg:
		if msg.visit != m.visit {
			return m, nil
		}
		m.loading = false
		switch {
		case errors.Is(msg.err, service.ErrNotFound):
			m.notFound = true
		case msg.err != nil:
			m.loadErr = msg.err
		case m.screen == screenForm:
			m.form = newForm(validate.FromTask(msg.task), msg.task.ID)
		default:
			task := msg.task
			m.task = &task
		}

	case savedMsg:
		if msg.visit != m.visit {
			return m, nil
		}
		return m, m.saved(msg)

	case deletedMsg:
		if msg.visit != m.visit {
			return m, nil
		}
		if msg.err != nil {
			m.flash = "Failed to delete task: " + msg.err.Error()
			return m, nil
		}
		m.flash = "Task deleted successfully"
		return m, m.show(screenList)
	}

	return m, nil
}

func (m *Model) saved(msg savedMsg) tea.Cmd {
	if m.form != nil {
		m.form.saving = false
	}

	var verr *service.ValidationError
	switch {
	case errors.As(msg.err, &verr):
		if m.form != nil {
			m.form.errors = verr.Fields
		}
		return nil
	case errors.Is(msg.err, service.ErrNotFound):
		m.flash = "Task not found"
		return nil
	case msg.err != nil:
		m.flash = "Failed to save task: " + msg.err.Error()
		return nil
	}

	m.form = nil
	m.taskID = msg.task.ID
	if msg.created {
		m.flash = "Task added successfully"
		return m.show(screenList)
	}
	m.flash = "Task updated successfully"
	return m.show(screenDetail)
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "r":
		m.flash = ""
		return m.show(screenList)
	case "n":
		m.flash = ""
		m.form = newForm(service.Draft{Status: string(service.StatusPending)}, "")
		return m.show(screenForm)
	case "enter":
		if len(m.tasks) == 0 {
			return nil
		}
		m.flash = ""
		m.taskID = m.tasks[m.cursor].ID
		return m.show(screenDetail)
	}
	return nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace", "b":
		m.flash = ""
		return m.show(screenList)
	}
	if m.task == nil {
		return nil
	}

	switch msg.String() {
	case "e":
		m.flash = ""
		m.form = &form{editID: m.task.ID}
		return m.show(screenForm)
	case "d":
		return m.remove(m.task.ID)
	case "c":
		if m.task.Status == service.StatusCompleted {
			return nil
		}
		draft := validate.FromTask(*m.task)
		draft.Status = string(service.StatusCompleted)
		return m.save(m.task.ID, draft)
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.flash = ""
		if m.form != nil && m.form.editID != "" {
			m.taskID = m.form.editID
			m.form = nil
			return m.show(screenDetail)
		}
		m.form = nil
		return m.show(screenList)
	}
	if m.form == nil || !m.form.ready || m.loading || m.loadErr != nil || m.notFound || m.form.saving {
		return nil
	}

	f := m.form
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return nil
	case "ctrl+s":
		f.status = f.status.Next()
		return nil
	case "enter":
		draft := f.draft()
		res := validate.Validate(draft)
		if !res.Valid() {
			f.errors = res.Errors
			return nil
		}
		f.errors = nil
		f.saving = true
		return m.save(f.editID, draft)
	}

	if f.focus == fieldStatus {
		switch msg.String() {
		case " ", "right", "l":
			f.status = f.status.Next()
		case "left", "h":
			f.status = f.status.Prev()
		}
		return nil
	}
	return f.updateInput(msg)
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

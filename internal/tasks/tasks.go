package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Task is a unit of post-commit work.
type Task interface {
	// Name identifies the task in logs.
	Name() string
	// Run executes the task in env.
	Run(ctx context.Context, env Env) error
}

// Env is the execution context handed to each task.
type Env struct {
	// Dir is the workspace root the tree was committed to.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Queue is an ordered, append-only list of tasks.
type Queue struct {
	tasks []Task
}

// Add appends t and returns its position in the queue.
func (q *Queue) Add(t Task) int {
	q.tasks = append(q.tasks, t)
	return len(q.tasks) - 1
}

// Tasks returns the queued tasks in order.
func (q *Queue) Tasks() []Task {
	return append([]Task(nil), q.tasks...)
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Runner drains a Queue.
type Runner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run executes every queued task in order. A failing task does not stop the
// ones after it; all failures are returned joined.
func (r *Runner) Run(ctx context.Context, q *Queue) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	env := Env{Dir: r.Dir, Stdout: r.Stdout, Stderr: r.Stderr}
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}

	var errs []error
	for _, t := range q.Tasks() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		logger.Info("running task", "task", t.Name())
		if err := t.Run(ctx, env); err != nil {
			logger.Warn("task failed", "task", t.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
			continue
		}
		logger.Debug("task finished", "task", t.Name())
	}
	return errors.Join(errs...)
}

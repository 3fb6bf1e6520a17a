package schematic

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/richapps/ngtron/internal/logging"
	"github.com/richapps/ngtron/internal/schema"
	"github.com/richapps/ngtron/internal/tasks"
	"github.com/richapps/ngtron/internal/tree"
)

//go:embed schema/options.schema.json
var optionsSchema []byte

var optionsValidator = schema.New("options.schema.json", optionsSchema)

// ErrNoProject is returned when neither the options nor the workspace's
// defaultProject name a project.
var ErrNoProject = errors.New("no project specified")

// Options are the inputs of the ng-add schematic.
type Options struct {
	// Project names the workspace project to modify. Empty means the
	// workspace's defaultProject.
	Project string `json:"project,omitempty"`
}

// Validate checks the options against the embedded options schema.
func (o Options) Validate() error {
	res, err := optionsValidator.ValidateValue(o)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Context carries what rules need besides the tree.
type Context struct {
	Logger *slog.Logger
	// Tasks receives work to run after the tree is committed.
	Tasks *tasks.Queue
	// PackageManager overrides the workspace's cli.packageManager.
	PackageManager string
	// DefaultPackageManager applies when neither the override nor the
	// workspace names one.
	DefaultPackageManager string
	// Project is set to the resolved project name once it is located.
	Project string
}

// NewContext returns a Context with an empty task queue.
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Context{Logger: logger, Tasks: &tasks.Queue{}}
}

// Rule is one step applied to the tree.
type Rule func(t *tree.Tree, ctx *Context) error

// Chain runs rules in order and stops at the first error.
func Chain(rules ...Rule) Rule {
	return func(t *tree.Tree, ctx *Context) error {
		for _, rule := range rules {
			if err := rule(t, ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// NgAdd returns the rule that adds Electron support to opts.Project.
func NgAdd(opts Options) Rule {
	return func(t *tree.Tree, ctx *Context) error {
		if err := opts.Validate(); err != nil {
			return err
		}
		if ctx.Logger == nil {
			ctx.Logger = logging.Discard()
		}
		if ctx.Tasks == nil {
			ctx.Tasks = &tasks.Queue{}
		}

		r := &run{opts: opts}
		return Chain(
			r.locateProject,
			r.updateArchitect,
			r.addElectronMain,
			r.addPackageJSONDependencies,
			r.installPackageJSONDependencies,
		)(t, ctx)
	}
}

package schematic

import (
	"fmt"

	"github.com/richapps/ngtron/internal/packagejson"
	"github.com/richapps/ngtron/internal/scaffold"
	"github.com/richapps/ngtron/internal/tasks"
	"github.com/richapps/ngtron/internal/tree"
	"github.com/richapps/ngtron/internal/workspace"
)

// Dependencies are added to package.json by every run.
var Dependencies = []packagejson.Dependency{
	{Type: packagejson.Dev, Name: "electron", Version: "~4.0.0"},
	{Type: packagejson.Dev, Name: "electron-packager", Version: "13.1.1"},
}

// run holds the state shared by the steps of one NgAdd invocation.
type run struct {
	opts    Options
	ws      *workspace.Workspace
	project *workspace.Project
}

func (r *run) locateProject(t *tree.Tree, ctx *Context) error {
	ws, err := workspace.Read(t)
	if err != nil {
		return err
	}
	name := r.opts.Project
	if name == "" {
		name = ws.DefaultProject()
	}
	if name == "" {
		return fmt.Errorf("%w: pass a project name or set defaultProject in %s", ErrNoProject, ws.Path)
	}
	p, err := ws.Project(name)
	if err != nil {
		return err
	}
	r.ws, r.project = ws, p
	ctx.Project = p.Name
	ctx.Logger.Debug("project located", "project", p.Name, "root", p.Root, "sourceRoot", p.SourceRoot)
	return nil
}

func (r *run) updateArchitect(t *tree.Tree, ctx *Context) error {
	arch, err := r.project.Architect()
	if err != nil {
		return err
	}
	if err := arch.Set(ServeTargetName, ServeTarget(r.project)); err != nil {
		return fmt.Errorf("setting %s: %w", ServeTargetName, err)
	}
	if err := arch.Set(BuildTargetName, BuildTarget(r.project)); err != nil {
		return fmt.Errorf("setting %s: %w", BuildTargetName, err)
	}
	if err := workspace.Write(t, r.ws); err != nil {
		return fmt.Errorf("writing %s: %w", r.ws.Path, err)
	}
	ctx.Logger.Debug("architect targets written", "project", r.project.Name, "targets", []string{ServeTargetName, BuildTargetName})
	return nil
}

func (r *run) addElectronMain(t *tree.Tree, ctx *Context) error {
	res, err := scaffold.Materialize(t, r.project.SourceRoot, scaffold.MainFile)
	if err != nil {
		return fmt.Errorf("adding %s: %w", scaffold.MainFile, err)
	}
	if res.Created {
		ctx.Logger.Debug("bootstrap file created", "path", res.Path)
	} else {
		ctx.Logger.Debug("bootstrap file already present", "path", res.Path)
	}
	return nil
}

func (r *run) addPackageJSONDependencies(t *tree.Tree, ctx *Context) error {
	for _, dep := range Dependencies {
		changed, err := packagejson.Add(t, dep)
		if err != nil {
			return err
		}
		if changed {
			ctx.Logger.Info("dependency added", "dependency", dep.Name, "version", dep.Version, "type", dep.Type)
		} else {
			ctx.Logger.Info("dependency already present", "dependency", dep.Name, "type", dep.Type)
		}
	}
	return nil
}

func (r *run) installPackageJSONDependencies(_ *tree.Tree, ctx *Context) error {
	pm := r.packageManager(ctx)
	if !tasks.SupportedPackageManager(pm) {
		return fmt.Errorf("%w: %q", tasks.ErrUnsupportedPackageManager, pm)
	}
	ctx.Tasks.Add(tasks.NodePackageInstall{PackageManager: pm})
	ctx.Logger.Info("installing packages", "packageManager", pm)
	return nil
}

// packageManager picks the first of: the context override, the workspace's
// cli.packageManager, the context default, npm.
func (r *run) packageManager(ctx *Context) string {
	for _, pm := range []string{ctx.PackageManager, r.ws.PackageManager(), ctx.DefaultPackageManager} {
		if pm != "" {
			return pm
		}
	}
	return tasks.DefaultPackageManager
}

package doctor

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/richapps/ngtron/internal/packagejson"
	"github.com/richapps/ngtron/internal/schematic"
	"github.com/richapps/ngtron/internal/tasks"
	"github.com/richapps/ngtron/internal/workspace"
)

// Status is the outcome of one check.
type Status string

const (
	StatusOK   Status = " OK "
	StatusWarn Status = "WARN"
	StatusMiss Status = "MISS"
	StatusFail Status = "FAIL"
)

// Check is one line of the report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report collects check results in the order they ran.
type Report struct {
	Checks []Check
}

// Healthy reports whether no check missed or failed. Warnings are allowed.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status == StatusMiss || c.Status == StatusFail {
			return false
		}
	}
	return true
}

// Print writes the report in "[STATUS] name: detail" lines.
func (r *Report) Print(w io.Writer) {
	for _, c := range r.Checks {
		if c.Detail == "" {
			fmt.Fprintf(w, "  [%s] %s\n", c.Status, c.Name)
			continue
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", c.Status, c.Name, c.Detail)
	}
}

func (r *Report) add(name string, status Status, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Tree is the read side of a workspace file tree.
type Tree interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
}

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

// Run checks the workspace in t. packageManager is the one the install step
// would use when the workspace names none; "" means npm.
func Run(t Tree, packageManager string) *Report {
	r := &Report{}

	pm := checkWorkspace(r, t)
	if pm == "" {
		pm = packageManager
	}
	if pm == "" {
		pm = tasks.DefaultPackageManager
	}

	checkPackageJSON(r, t)
	checkBinary(r, "node")
	checkBinary(r, pm)
	return r
}

// checkWorkspace returns the workspace's cli.packageManager, if any.
func checkWorkspace(r *Report, t Tree) string {
	name, err := workspace.Find(t)
	if err != nil {
		r.add("workspace", StatusMiss, "no %v found", workspace.FileNames)
		return ""
	}

	data, err := t.Read(name)
	if err != nil {
		r.add("workspace", StatusFail, "%v", err)
		return ""
	}
	ws, err := workspace.Parse(data)
	if err != nil {
		r.add(name, StatusFail, "%v", err)
		return ""
	}
	r.add(name, StatusOK, "version %d, %d project(s)", ws.Version(), len(ws.ProjectNames()))

	if def := ws.DefaultProject(); def != "" {
		if _, err := ws.Project(def); err != nil {
			r.add("defaultProject", StatusWarn, "%v", err)
		} else {
			r.add("defaultProject", StatusOK, "%s", def)
		}
	}

	for _, pn := range ws.ProjectNames() {
		p, err := ws.Project(pn)
		if err != nil {
			r.add("project "+pn, StatusFail, "%v", err)
			continue
		}
		arch, err := p.Architect()
		if err != nil {
			r.add("project "+pn, StatusWarn, "no architect section")
			continue
		}
		if arch.Has(schematic.ServeTargetName) && arch.Has(schematic.BuildTargetName) {
			r.add("project "+pn, StatusOK, "electron targets present")
		} else {
			r.add("project "+pn, StatusOK, "electron targets not added")
		}
	}
	return ws.PackageManager()
}

func checkPackageJSON(r *Report, t Tree) {
	if !t.Exists(packagejson.FileName) {
		r.add(packagejson.FileName, StatusMiss, "not found in workspace root")
		return
	}
	for _, dep := range schematic.Dependencies {
		got, err := packagejson.Get(t, dep.Name)
		if err != nil {
			r.add(packagejson.FileName, StatusFail, "%v", err)
			return
		}
		if got == nil {
			r.add(dep.Name, StatusWarn, "not in %s", packagejson.FileName)
			continue
		}
		r.add(dep.Name, StatusOK, "%s %s", got.Type, got.Version)
	}
}

func checkBinary(r *Report, name string) {
	path, err := lookPath(name)
	if err != nil {
		r.add(name, StatusMiss, "not found on PATH")
		return
	}
	r.add(name, StatusOK, "%s", path)
}

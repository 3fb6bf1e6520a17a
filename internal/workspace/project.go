package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/richapps/ngtron/internal/jsonobj"
)

// DefaultSourceDir is the source directory used when a project declares none.
const DefaultSourceDir = "src"

var (
	// ErrProjectNotFound is returned for names absent from "projects".
	ErrProjectNotFound = errors.New("project not found")
	// ErrArchitectMissing is returned when a project has no target table.
	ErrArchitectMissing = errors.New("architect section missing")
)

// Project is one entry of the workspace "projects" map.
type Project struct {
	Name string
	// Root is the project base path as written in the file ("" when absent).
	Root string
	// SourceRoot is always resolved; see ResolveSourceRoot.
	SourceRoot string

	architect *Architect
	raw       jsonobj.Object
}

// ResolveSourceRoot is the single place source directories are defaulted:
// an explicit sourceRoot wins, otherwise root/src, otherwise "src".
func ResolveSourceRoot(root, sourceRoot string) string {
	switch {
	case sourceRoot != "":
		return sourceRoot
	case root == "":
		return DefaultSourceDir
	default:
		return path.Join(root, DefaultSourceDir)
	}
}

// Project returns the named project with its directories resolved. The
// project body is checked against the project schema here, so a malformed
// sibling project never blocks this one. Repeated
// calls return the same *Project. The resolved sourceRoot is kept in memory
// only and is not written back to the file.
func (w *Workspace) Project(name string) (*Project, error) {
	if p, ok := w.loaded[name]; ok {
		return p, nil
	}

	rawProject, ok := w.projects.Get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrProjectNotFound)
	}
	res, err := ValidateProject(rawProject)
	if err != nil {
		return nil, fmt.Errorf("projects/%s: %w", name, err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("projects/%s: %w: %v", name, ErrInvalidWorkspace, res.Err())
	}
	raw, err := jsonobj.Decode(rawProject)
	if err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", name, err)
	}

	p := &Project{Name: name, raw: raw}

	var sourceRoot string
	jsonobj.Field(raw, "root", &p.Root)
	jsonobj.Field(raw, "sourceRoot", &sourceRoot)
	p.SourceRoot = ResolveSourceRoot(p.Root, sourceRoot)

	if rawArchitect, ok := raw.Get("architect"); ok {
		targets, err := jsonobj.Decode(rawArchitect)
		if err != nil {
			return nil, fmt.Errorf("parsing projects/%s/architect: %w", name, err)
		}
		p.architect = &Architect{targets: targets}
	}

	w.loaded[name] = p
	w.order = append(w.order, name)
	return p, nil
}

// Architect returns the project's target table. A project without one is
// malformed host state and yields ErrArchitectMissing.
func (p *Project) Architect() (*Architect, error) {
	if p.architect == nil {
		return nil, fmt.Errorf("expected node projects/%s/architect in angular.json: %w", p.Name, ErrArchitectMissing)
	}
	return p.architect, nil
}

func (p *Project) marshal() (json.RawMessage, error) {
	if p.architect != nil {
		if err := jsonobj.SetObject(p.raw, "architect", p.architect.targets); err != nil {
			return nil, err
		}
	}
	return jsonobj.Encode(p.raw)
}

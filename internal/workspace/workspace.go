package workspace

import (
	"errors"
	"fmt"

	"github.com/richapps/ngtron/internal/jsonobj"
	"github.com/tidwall/jsonc"
)

// FileNames lists the workspace file names in lookup order.
var FileNames = []string{"angular.json", ".angular.json"}

var (
	// ErrWorkspaceNotFound is returned when no workspace file exists at the root.
	ErrWorkspaceNotFound = errors.New("workspace file not found")
	// ErrInvalidWorkspace wraps structural schema violations.
	ErrInvalidWorkspace = errors.New("invalid workspace")
)

// Source is the read side of a file tree.
type Source interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
}

// Sink is the write side of a file tree.
type Sink interface {
	Overwrite(path string, data []byte) error
}

// Workspace is a parsed workspace file. Projects handed out by Project are
// owned by the Workspace; their edits are folded back in by Marshal.
type Workspace struct {
	// Path is the tree-relative location the workspace was read from.
	Path string

	root     jsonobj.Object
	projects jsonobj.Object
	loaded   map[string]*Project
	order    []string
}

// Find returns the first workspace file name present in src.
func Find(src Source) (string, error) {
	for _, name := range FileNames {
		if src.Exists(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("looking for %v: %w", FileNames, ErrWorkspaceNotFound)
}

// Read locates, reads, and parses the workspace file in src.
func Read(src Source) (*Workspace, error) {
	name, err := Find(src)
	if err != nil {
		return nil, err
	}
	data, err := src.Read(name)
	if err != nil {
		return nil, err
	}
	ws, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	ws.Path = name
	return ws, nil
}

// Write serializes ws and stages it at ws.Path.
func Write(dst Sink, ws *Workspace) error {
	data, err := ws.Marshal()
	if err != nil {
		return err
	}
	return dst.Overwrite(ws.Path, data)
}

// Parse decodes workspace JSON. Comments and trailing commas are accepted.
// The document is checked against the embedded structural schema first.
func Parse(data []byte) (*Workspace, error) {
	stripped := jsonc.ToJSON(data)

	res, err := Validate(stripped)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkspace, res.Err())
	}

	root, err := jsonobj.Decode(stripped)
	if err != nil {
		return nil, fmt.Errorf("parsing workspace: %w", err)
	}

	rawProjects, _ := root.Get("projects")
	projects, err := jsonobj.Decode(rawProjects)
	if err != nil {
		return nil, fmt.Errorf("parsing projects: %w", err)
	}

	return &Workspace{
		root:     root,
		projects: projects,
		loaded:   make(map[string]*Project),
	}, nil
}

// Version returns the workspace format version.
func (w *Workspace) Version() int {
	var v int
	jsonobj.Field(w.root, "version", &v)
	return v
}

// DefaultProject returns the "defaultProject" entry, or "" when unset.
func (w *Workspace) DefaultProject() string {
	var name string
	jsonobj.Field(w.root, "defaultProject", &name)
	return name
}

// PackageManager returns cli.packageManager, or "" when unset.
func (w *Workspace) PackageManager() string {
	var cli struct {
		PackageManager string `json:"packageManager"`
	}
	jsonobj.Field(w.root, "cli", &cli)
	return cli.PackageManager
}

// ProjectNames returns the project names in file order.
func (w *Workspace) ProjectNames() []string {
	return jsonobj.Keys(w.projects)
}

// Marshal folds loaded projects back into the document and returns it as
// two-space indented JSON with a trailing newline.
func (w *Workspace) Marshal() ([]byte, error) {
	for _, name := range w.order {
		raw, err := w.loaded[name].marshal()
		if err != nil {
			return nil, fmt.Errorf("encoding project %s: %w", name, err)
		}
		w.projects.Set(name, raw)
	}

	if err := jsonobj.SetObject(w.root, "projects", w.projects); err != nil {
		return nil, err
	}

	data, err := jsonobj.Format(w.root)
	if err != nil {
		return nil, fmt.Errorf("encoding workspace: %w", err)
	}
	return data, nil
}

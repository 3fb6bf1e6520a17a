// Package tree is a staged view of a workspace directory. Reads fall through
// to the underlying filesystem, writes are held in memory until Commit, so a
// failed run leaves the disk untouched and a dry run can be rendered as a diff.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ActionKind classifies a staged change.
type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionOverwrite
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreate:
		return "CREATE"
	case ActionOverwrite:
		return "UPDATE"
	default:
		return "UNKNOWN"
	}
}

// Action is one staged file change, in the order it was first recorded.
type Action struct {
	Kind ActionKind
	Path string
}

// ErrOutsideRoot is returned for paths that escape the workspace root.
var ErrOutsideRoot = errors.New("path escapes workspace root")

// Tree stages file changes relative to a root directory on an afero.Fs.
// Paths are slash-separated and relative to the root.
type Tree struct {
	fs      afero.Fs
	root    string
	staged  map[string][]byte
	actions []Action
}

// New returns a Tree rooted at root on the given filesystem.
func New(fsys afero.Fs, root string) *Tree {
	return &Tree{
		fs:     fsys,
		root:   root,
		staged: make(map[string][]byte),
	}
}

// NewOS returns a Tree over the real filesystem.
func NewOS(root string) *Tree {
	return New(afero.NewOsFs(), root)
}

// Root returns the directory the tree is rooted at.
func (t *Tree) Root() string {
	return t.root
}

// Exists reports whether a file (not a directory) exists at p, either staged
// or on disk.
func (t *Tree) Exists(p string) bool {
	key, err := normalize(p)
	if err != nil {
		return false
	}
	if _, ok := t.staged[key]; ok {
		return true
	}
	info, err := t.fs.Stat(t.diskPath(key))
	return err == nil && !info.IsDir()
}

// Read returns the current content at p, staged content first.
func (t *Tree) Read(p string) ([]byte, error) {
	key, err := normalize(p)
	if err != nil {
		return nil, err
	}
	if data, ok := t.staged[key]; ok {
		return append([]byte(nil), data...), nil
	}
	data, err := afero.ReadFile(t.fs, t.diskPath(key))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Create stages a new file. It fails with fs.ErrExist if p already exists.
func (t *Tree) Create(p string, data []byte) error {
	key, err := normalize(p)
	if err != nil {
		return err
	}
	if t.Exists(key) {
		return fmt.Errorf("creating %s: %w", key, fs.ErrExist)
	}
	t.stage(ActionCreate, key, data)
	return nil
}

// Overwrite stages new content for an existing file. It fails with
// fs.ErrNotExist if p does not exist.
func (t *Tree) Overwrite(p string, data []byte) error {
	key, err := normalize(p)
	if err != nil {
		return err
	}
	if !t.Exists(key) {
		return fmt.Errorf("overwriting %s: %w", key, fs.ErrNotExist)
	}
	t.stage(ActionOverwrite, key, data)
	return nil
}

// Actions returns the staged changes in recording order. A file created and
// later overwritten in the same run is reported once, as a create.
func (t *Tree) Actions() []Action {
	return append([]Action(nil), t.actions...)
}

// Commit writes every staged file to the underlying filesystem, creating
// parent directories as needed, and clears the staging area.
func (t *Tree) Commit() error {
	for _, a := range t.actions {
		full := t.diskPath(a.Path)
		if err := t.fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.Path, err)
		}
		if err := afero.WriteFile(t.fs, full, t.staged[a.Path], 0644); err != nil {
			return fmt.Errorf("writing %s: %w", a.Path, err)
		}
	}
	t.staged = make(map[string][]byte)
	t.actions = nil
	return nil
}

func (t *Tree) stage(kind ActionKind, key string, data []byte) {
	if _, ok := t.staged[key]; !ok {
		t.actions = append(t.actions, Action{Kind: kind, Path: key})
	}
	t.staged[key] = append([]byte(nil), data...)
}

// original returns the on-disk content for key, or nil when absent.
func (t *Tree) original(key string) []byte {
	data, err := afero.ReadFile(t.fs, t.diskPath(key))
	if err != nil {
		return nil
	}
	return data
}

func (t *Tree) diskPath(key string) string {
	return filepath.Join(t.root, filepath.FromSlash(key))
}

// normalize cleans p into a root-relative slash path. A leading slash means
// the workspace root, as in "/package.json".
func normalize(p string) (string, error) {
	clean := strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid path %q", p)
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%q: %w", p, ErrOutsideRoot)
	}
	return clean, nil
}

package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

//go:embed files
var filesFS embed.FS

// MainFile is the Electron bootstrap script copied into a project.
const MainFile = "electron.main.js"

// Tree is the part of a file tree the scaffolder needs.
type Tree interface {
	Exists(path string) bool
	Create(path string, data []byte) error
}

// Result holds the outcome of a materialization.
type Result struct {
	Path    string
	Created bool
}

// Asset returns the embedded content of the named file.
func Asset(name string) ([]byte, error) {
	data, err := fs.ReadFile(filesFS, path.Join("files", name))
	if err != nil {
		return nil, fmt.Errorf("reading embedded %s: %w", name, err)
	}
	return data, nil
}

// Materialize copies the embedded file name into dir unless a file already
// exists there. An existing file is never overwritten and is not an error.
func Materialize(t Tree, dir, name string) (*Result, error) {
	target := path.Join(dir, name)
	if t.Exists(target) {
		return &Result{Path: target}, nil
	}

	data, err := Asset(name)
	if err != nil {
		return nil, err
	}
	if err := t.Create(target, data); err != nil {
		return nil, err
	}
	return &Result{Path: target, Created: true}, nil
}

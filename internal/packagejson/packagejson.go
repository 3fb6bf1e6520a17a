package packagejson

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/richapps/ngtron/internal/jsonobj"
)

// FileName is the manifest location relative to the workspace root.
const FileName = "package.json"

// Type is a package.json dependency section.
type Type string

const (
	Default Type = "dependencies"
	Dev     Type = "devDependencies"
	Peer    Type = "peerDependencies"
)

// sections lists the dependency sections in lookup order.
var sections = []Type{Default, Dev, Peer}

// ErrInvalidDependency is returned for records with a missing name, an unknown
// section, or a version that is not a semver range.
var ErrInvalidDependency = errors.New("invalid dependency")

// Dependency is one package.json dependency record.
type Dependency struct {
	Type    Type
	Name    string
	Version string
}

// Validate checks that the record can be written.
func (d Dependency) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDependency)
	}
	switch d.Type {
	case Default, Dev, Peer:
	default:
		return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidDependency, d.Name, d.Type)
	}
	if _, err := semver.NewConstraint(d.Version); err != nil {
		return fmt.Errorf("%w: %s version %q: %v", ErrInvalidDependency, d.Name, d.Version, err)
	}
	return nil
}

// Reader is the read side of a file tree.
type Reader interface {
	Read(path string) ([]byte, error)
}

// Editor reads and stages package.json.
type Editor interface {
	Reader
	Overwrite(path string, data []byte) error
}

// Add writes dep into its section of package.json. It reports whether the
// file changed: an existing entry with the same name and type is kept as is.
func Add(t Editor, dep Dependency) (bool, error) {
	if err := dep.Validate(); err != nil {
		return false, err
	}

	root, err := read(t)
	if err != nil {
		return false, err
	}

	section, err := decodeSection(root, dep.Type)
	if err != nil {
		return false, err
	}
	if _, ok := section.Get(dep.Name); ok {
		return false, nil
	}

	section, err = jsonobj.InsertSorted(section, dep.Name, dep.Version)
	if err != nil {
		return false, err
	}
	if err := jsonobj.SetObject(root, string(dep.Type), section); err != nil {
		return false, err
	}

	data, err := jsonobj.Format(root)
	if err != nil {
		return false, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := t.Overwrite(FileName, data); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the first record named name, searching dependencies,
// devDependencies and peerDependencies in that order.
func Get(t Reader, name string) (*Dependency, error) {
	root, err := read(t)
	if err != nil {
		return nil, err
	}

	for _, typ := range sections {
		section, err := decodeSection(root, typ)
		if err != nil {
			return nil, err
		}
		var version string
		if jsonobj.Field(section, name, &version) {
			return &Dependency{Type: typ, Name: name, Version: version}, nil
		}
	}
	return nil, nil
}

func read(t Reader) (jsonobj.Object, error) {
	data, err := t.Read(FileName)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", FileName, err)
	}
	root, err := jsonobj.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return root, nil
}

// decodeSection returns the named dependency section. A missing or null
// section is an empty one.
func decodeSection(root jsonobj.Object, typ Type) (jsonobj.Object, error) {
	raw, ok := root.Get(string(typ))
	if !ok || jsonobj.IsNull(raw) {
		return jsonobj.New(), nil
	}
	section, err := jsonobj.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s in %s: %w", typ, FileName, err)
	}
	return section, nil
}

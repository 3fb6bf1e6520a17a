package workspace

import (
	"encoding/json"
	"fmt"

	"github.com/richapps/ngtron/internal/jsonobj"
)

// Target is one architect entry: a builder and its options.
type Target struct {
	Builder string `json:"builder"`
	Options any    `json:"options,omitempty"`
}

// Architect is a project's target table, keyed by target name.
type Architect struct {
	targets jsonobj.Object
}

// Names returns the target names in file order.
func (a *Architect) Names() []string {
	return jsonobj.Keys(a.targets)
}

// Has reports whether a target with the given name exists.
func (a *Architect) Has(name string) bool {
	_, ok := a.targets.Get(name)
	return ok
}

// Raw returns the encoded target, as stored.
func (a *Architect) Raw(name string) (json.RawMessage, bool) {
	return a.targets.Get(name)
}

// Decode unmarshals the named target into v.
func (a *Architect) Decode(name string, v any) error {
	raw, ok := a.targets.Get(name)
	if !ok {
		return fmt.Errorf("target %q not found", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding target %q: %w", name, err)
	}
	return nil
}

// Set stores t under name, replacing any existing target in place. New
// targets are appended after existing ones.
func (a *Architect) Set(name string, t Target) error {
	return jsonobj.Set(a.targets, name, t)
}

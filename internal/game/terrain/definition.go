// Package terrain provides terrain definitions and the tile grid queried
// by the combat engine for dodge and defense bonuses.
package terrain

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Def is the static definition of a terrain type, loaded from YAML.
type Def struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	MoveCost int    `yaml:"move_cost"` // movement layer only; the combat engine never reads it
	Dodge    int    `yaml:"dodge"`     // subtracted from an attacker's hit chance
	Defense  int    `yaml:"defense"`   // subtracted from incoming damage
}

// Validate checks the definition's invariants.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("terrain: def has empty id")
	}
	if d.MoveCost < 1 {
		return fmt.Errorf("terrain %q: move_cost must be >= 1, got %d", d.ID, d.MoveCost)
	}
	if d.Dodge < 0 {
		return fmt.Errorf("terrain %q: dodge must be >= 0, got %d", d.ID, d.Dodge)
	}
	if d.Defense < 0 {
		return fmt.Errorf("terrain %q: defense must be >= 0, got %d", d.ID, d.Defense)
	}
	return nil
}

// Registry holds all known terrain Defs keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds def to the registry, overwriting any existing entry with
// the same ID.
//
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Def) {
	r.defs[def.ID] = def
}

// Get returns the Def for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered Defs.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Def, and
// returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails
// to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading terrain dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}

// DefaultRegistry returns a Registry pre-populated with the standard five
// terrain types. Useful for tests and the demo binary when no content
// directory is supplied.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(&Def{ID: "plain", Name: "Plain", MoveCost: 1, Dodge: 0, Defense: 0})
	reg.Register(&Def{ID: "forest", Name: "Forest", MoveCost: 2, Dodge: 20, Defense: 1})
	reg.Register(&Def{ID: "mountain", Name: "Mountain", MoveCost: 3, Dodge: 10, Defense: 2})
	reg.Register(&Def{ID: "water", Name: "Water", MoveCost: 4, Dodge: 0, Defense: 0})
	reg.Register(&Def{ID: "wall", Name: "Wall", MoveCost: 999, Dodge: 0, Defense: 0})
	return reg
}

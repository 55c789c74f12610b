package skill

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Def is the immutable definition of a skill: one trigger, one effect, and
// an optional finite duration. "Active" is per-encounter transient state
// tracked by ActiveSet, never stored here.
type Def struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Trigger     Trigger `yaml:"trigger"`
	Effect      Effect  `yaml:"effect"`
	// Duration is the number of applications before the skill deactivates;
	// -1 (or 0) means unlimited for the encounter.
	Duration int `yaml:"duration,omitempty"`
}

// Validate checks the definition and its trigger/effect payloads.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("skill: def has empty id")
	}
	if err := d.Trigger.Validate(); err != nil {
		return fmt.Errorf("skill %q: %w", d.ID, err)
	}
	if err := d.Effect.Validate(); err != nil {
		return fmt.Errorf("skill %q: %w", d.ID, err)
	}
	if d.Duration < -1 {
		return fmt.Errorf("skill %q: duration must be >= -1, got %d", d.ID, d.Duration)
	}
	return nil
}

// Registry holds all known skill Defs keyed by ID.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register adds def to the registry.
//
// Precondition:  def must not be nil.
// Postcondition: Get(def.ID) returns def; returns error if def.ID already registered.
func (r *Registry) Register(def *Def) error {
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("skill: Registry.Register: skill ID %q already registered", def.ID)
	}
	r.defs[def.ID] = def
	return nil
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
		return nil, fmt.Errorf("reading skill dir %q: %w", dir, err)
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
		if err := reg.Register(&def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

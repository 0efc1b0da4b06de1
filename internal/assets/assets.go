// Package assets loads the placeable asset definitions the placement mode cycles
// through (e.g. config/assets.yaml).
package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Def is the YAML definition for one placeable asset. Size is the unscaled collision
// box extents; Color is display-only.
type Def struct {
	Name  string     `yaml:"name"`
	Type  string     `yaml:"type"`
	Size  [3]float32 `yaml:"size,omitempty"`
	Color string     `yaml:"color,omitempty"`
}

// builtins are used when no assets file exists, so placement mode always has
// something to cycle.
var builtins = []Def{
	{Name: "cube", Type: "cube", Size: [3]float32{1, 1, 1}},
	{Name: "sphere", Type: "sphere", Size: [3]float32{1, 1, 1}},
	{Name: "cylinder", Type: "cylinder", Size: [3]float32{1, 2, 1}},
	{Name: "slab", Type: "cube", Size: [3]float32{2, 0.25, 2}},
}

// Registry holds the ordered asset list. Order matters: it is the cycling order.
type Registry struct {
	defs []Def
}

// Load reads asset defs from a YAML file. A missing path returns the builtins; an
// invalid file is an error so typos don't silently drop the user's asset list.
func Load(path string) (*Registry, error) {
	if path == "" {
		return &Registry{defs: builtins}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &Registry{defs: builtins}, nil
	}
	var defs []Def
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse assets %s: %w", path, err)
	}
	if len(defs) == 0 {
		defs = builtins
	}
	return &Registry{defs: defs}, nil
}

// NewRegistry wraps an explicit def list (tests, callers with their own source).
func NewRegistry(defs []Def) *Registry {
	if len(defs) == 0 {
		defs = builtins
	}
	return &Registry{defs: defs}
}

// Len returns the number of defs.
func (r *Registry) Len() int { return len(r.defs) }

// At returns the def at index i, wrapping in both directions.
func (r *Registry) At(i int) Def {
	n := len(r.defs)
	i = ((i % n) + n) % n
	return r.defs[i]
}

// Wrap normalizes an index into range, wrapping in both directions.
func (r *Registry) Wrap(i int) int {
	n := len(r.defs)
	return ((i % n) + n) % n
}

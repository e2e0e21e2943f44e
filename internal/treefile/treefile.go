// Package treefile loads a YAML description of an object tree and builds a
// memtree from it. The document is a nested structure of "fields" (scalars)
// and "children" (sub-objects); every built object carries the memtree
// built-in actions.
package treefile

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/pkg/adapters/memtree"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ObjectSpec describes one object of the tree.
// It uses "mapstructure" tags so the same shape can be decoded from YAML
// documents and from generic map payloads alike.
type ObjectSpec struct {
	Fields   map[string]any        `yaml:"fields" mapstructure:"fields"`
	Children map[string]ObjectSpec `yaml:"children" mapstructure:"children"`
}

// Parse decodes a YAML treefile document into an ObjectSpec.
func Parse(data []byte) (*ObjectSpec, error) {
	// Decode to a generic map first, then map onto the typed spec. This
	// keeps unknown keys detectable and matches how other generic payloads
	// enter the system.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid treefile YAML: %w", err)
	}

	var spec ObjectSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &spec,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build treefile decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid treefile structure: %w", err)
	}
	return &spec, nil
}

// Load reads and parses a treefile from disk.
func Load(path string) (*ObjectSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read treefile: %w", err)
	}
	return Parse(data)
}

// Build constructs a memtree from the spec.
func Build(spec *ObjectSpec) *memtree.Tree {
	tree := memtree.NewTree()
	populate(tree.Root(), spec)
	return tree
}

func populate(obj *memtree.Object, spec *ObjectSpec) {
	for key, value := range spec.Fields {
		obj.Set(key, value)
	}
	for key, childSpec := range spec.Children {
		child := obj.AddChild(key)
		populate(child, &childSpec)
	}
}

// Package loader reads form definitions from JSON or YAML files and turns
// them into field lists and orchestrator props.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition wraps every structural problem found in a definition.
var ErrInvalidDefinition = errors.New("loader: invalid form definition")

// Definition is the on-disk shape of a form.
type Definition struct {
	Name        string            `json:"name" yaml:"name"`
	Title       string            `json:"title" yaml:"title"`
	ClassName   string            `json:"className" yaml:"className"`
	InputStyle  string            `json:"inputStyle" yaml:"inputStyle"`
	ButtonStyle string            `json:"buttonStyle" yaml:"buttonStyle"`
	Defaults    map[string]any    `json:"defaults" yaml:"defaults"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
}

// FieldDefinition describes one field. Rules use the validation.FromSpec
// token syntax; VisibleWhen uses the visibility/expr syntax.
type FieldDefinition struct {
	Name        string             `json:"name" yaml:"name"`
	Label       string             `json:"label" yaml:"label"`
	Type        string             `json:"type" yaml:"type"`
	Rules       []string           `json:"rules" yaml:"rules"`
	Options     []OptionDefinition `json:"options" yaml:"options"`
	VisibleWhen string             `json:"visibleWhen" yaml:"visibleWhen"`
	ClassName   string             `json:"className" yaml:"className"`
	Placeholder string             `json:"placeholder" yaml:"placeholder"`
}

// OptionDefinition is a select or radio option. A bare string in the file is
// used as both value and label.
type OptionDefinition struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// UnmarshalYAML accepts both `- US` and `- {value: US, label: United States}`.
func (o *OptionDefinition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Value = node.Value
		o.Label = node.Value
		return nil
	}
	type plain OptionDefinition
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*o = OptionDefinition(out)
	return nil
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON documents.
func (o *OptionDefinition) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		o.Value = scalar
		o.Label = scalar
		return nil
	}
	type plain OptionDefinition
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*o = OptionDefinition(out)
	return nil
}

// Parse decodes a JSON or YAML document. source is only used in errors.
func Parse(data []byte, source string) (*Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidDefinition, source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidDefinition, source, yerr)
		}
	}
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s declares no fields", ErrInvalidDefinition, source)
	}
	if strings.TrimSpace(def.Name) == "" {
		def.Name = nameFromPath(source)
	}
	return &def, nil
}

// LoadFile reads a single definition from disk.
func LoadFile(filename string) (*Definition, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", filename, err)
	}
	return Parse(data, filename)
}

// LoadFS walks fsys and parses every .json, .yaml and .yml file. Definitions
// are keyed by Name, which defaults to the file name without extension.
func LoadFS(fsys fs.FS) (map[string]*Definition, error) {
	out := make(map[string]*Definition)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", p, err)
		}
		def, err := Parse(data, p)
		if err != nil {
			return err
		}
		if _, exists := out[def.Name]; exists {
			return fmt.Errorf("%w: duplicate form name %q (file %s)", ErrInvalidDefinition, def.Name, p)
		}
		out[def.Name] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Names returns the sorted keys of a LoadFS result.
func Names(defs map[string]*Definition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isDefinitionFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func nameFromPath(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

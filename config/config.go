// Package config provides YAML parsing for drawstore session files.
//
// A session file declares a set of shapes and a script of store operations.
// The drawstore CLI replays the script against a fresh Store and prints
// what each step returned and fired.
//
// Example session:
//
//	title: Selection basics
//
//	features:
//	  - id: p
//	    kind: point
//	    properties:
//	      name: ${SITE_NAME:-depot}
//	  - id: l
//	    kind: line
//
//	steps:
//	  - op: add
//	  - op: select
//	    ids: [p, l]
//	  - op: flush
//	  - op: delete
//	    ids: l
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jpalmerr/drawstore"
	"gopkg.in/yaml.v3"
)

// Op names a store operation in a session script.
type Op string

// Supported operations.
const (
	OpAdd           Op = "add"
	OpGet           Op = "get"
	OpGetAll        Op = "get_all"
	OpSelect        Op = "select"
	OpDeselect      Op = "deselect"
	OpSetSelected   Op = "set_selected"
	OpClearSelected Op = "clear_selected"
	OpGetSelected   Op = "get_selected"
	OpIsSelected    Op = "is_selected"
	OpFlush         Op = "flush"
	OpDelete        Op = "delete"
	OpChanged       Op = "changed"
	OpGetChanged    Op = "get_changed"
	OpClearChanged  Op = "clear_changed"
	OpDirty         Op = "dirty"
	OpRender        Op = "render"
)

// idArity describes how many ids an op accepts.
type idArity int

const (
	idsNone idArity = iota
	idsOptional
	idsAtLeastOne
	idsExactlyOne
)

var ops = map[Op]idArity{
	OpAdd:           idsOptional,
	OpGet:           idsExactlyOne,
	OpGetAll:        idsNone,
	OpSelect:        idsAtLeastOne,
	OpDeselect:      idsAtLeastOne,
	OpSetSelected:   idsOptional,
	OpClearSelected: idsNone,
	OpGetSelected:   idsNone,
	OpIsSelected:    idsExactlyOne,
	OpFlush:         idsNone,
	OpDelete:        idsAtLeastOne,
	OpChanged:       idsAtLeastOne,
	OpGetChanged:    idsNone,
	OpClearChanged:  idsNone,
	OpDirty:         idsNone,
	OpRender:        idsNone,
}

// Valid reports whether o is a supported operation.
func (o Op) Valid() bool {
	_, ok := ops[o]
	return ok
}

// Config is the root structure of a session file.
//
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is printed at the top of a replay transcript. Optional.
	Title string `yaml:"title"`

	// Features declares the shapes available to the script.
	Features []FeatureConfig `yaml:"features"`

	// Steps is the ordered script of store operations.
	Steps []StepConfig `yaml:"steps"`
}

// FeatureConfig declares a single shape.
type FeatureConfig struct {
	// ID is the shape id. If empty a random UUID is assigned at build time,
	// which means steps cannot refer to the shape by id.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	ID string `yaml:"id"`

	// Kind is the geometry type: point, line or polygon.
	Kind string `yaml:"kind"`

	// Properties are free-form key-value metadata.
	// Values support environment variable substitution.
	Properties map[string]string `yaml:"properties"`
}

// StepConfig is a single operation in the script.
type StepConfig struct {
	// Op is the operation to run.
	Op Op `yaml:"op"`

	// IDs are the operation arguments. A single id may be written as a scalar.
	IDs IDList `yaml:"ids"`
}

// IDList is a list of feature ids that also accepts a single scalar in YAML.
//
//	ids: p
//	ids: [p, l]
type IDList []string

// UnmarshalYAML implements yaml.Unmarshaler for IDList.
func (l *IDList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = IDList{s}
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		*l = IDList(ids)
		return nil
	}
	return fmt.Errorf("ids must be a string or a list, got %v", node.Kind)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML session file.
//
// Returns an error if the file cannot be read, parsed, or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML session data.
//
// Environment variables are expanded in feature ids, property values and
// step ids before validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	declared := make(map[string]struct{}, len(c.Features))

	for i := range c.Features {
		f := &c.Features[i]

		expanded, err := expandEnvVars(f.ID)
		if err != nil {
			return fmt.Errorf("features[%d]: id: %w", i, err)
		}
		f.ID = expanded

		if f.Kind == "" {
			return fmt.Errorf("features[%d]: kind is required", i)
		}
		if !drawstore.Kind(f.Kind).Valid() {
			return fmt.Errorf("features[%d]: kind must be point, line, or polygon, got %q", i, f.Kind)
		}

		for k, v := range f.Properties {
			if k == "" {
				return fmt.Errorf("features[%d]: property key cannot be empty", i)
			}
			expanded, err := expandEnvVars(v)
			if err != nil {
				return fmt.Errorf("features[%d]: properties[%s]: %w", i, k, err)
			}
			f.Properties[k] = expanded
		}

		if f.ID == "" {
			continue
		}
		if _, dup := declared[f.ID]; dup {
			return fmt.Errorf("features[%d]: duplicate id %q", i, f.ID)
		}
		declared[f.ID] = struct{}{}
	}

	if len(c.Steps) == 0 {
		return errors.New("at least one step must be defined")
	}

	for i := range c.Steps {
		st := &c.Steps[i]

		if st.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		arity, ok := ops[st.Op]
		if !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, st.Op)
		}

		for j, id := range st.IDs {
			expanded, err := expandEnvVars(id)
			if err != nil {
				return fmt.Errorf("steps[%d] (%s): ids[%d]: %w", i, st.Op, j, err)
			}
			if strings.TrimSpace(expanded) == "" {
				return fmt.Errorf("steps[%d] (%s): ids[%d] is empty", i, st.Op, j)
			}
			st.IDs[j] = expanded
		}

		switch arity {
		case idsNone:
			if len(st.IDs) > 0 {
				return fmt.Errorf("steps[%d] (%s): op takes no ids", i, st.Op)
			}
		case idsAtLeastOne:
			if len(st.IDs) == 0 {
				return fmt.Errorf("steps[%d] (%s): ids are required", i, st.Op)
			}
		case idsExactlyOne:
			if len(st.IDs) != 1 {
				return fmt.Errorf("steps[%d] (%s): op takes exactly one id, got %d", i, st.Op, len(st.IDs))
			}
		}

		if st.Op == OpAdd {
			for _, id := range st.IDs {
				if _, ok := declared[id]; !ok {
					return fmt.Errorf("steps[%d] (%s): feature %q is not declared", i, st.Op, id)
				}
			}
		}
	}

	return nil
}

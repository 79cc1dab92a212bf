// Package manifest loads and validates scaffold manifests. A manifest
// (scaffold.yaml at the scaffold root) declares the variables a scaffold
// consumes, which renderer engine it targets, and housekeeping such as ignore
// globs and the post-generate message.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scaffold/pkg/template"
)

// FileName is the manifest location relative to the scaffold root.
const FileName = "scaffold.yaml"

// Variable declares one named value a scaffold consumes. Required variables
// with no default must be supplied by the caller (or prompted for) before
// generation starts. Pattern, when set, is a regular expression every
// supplied value must match.
type Variable struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Default     string `yaml:"default,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
}

// Check reports whether value satisfies the variable's pattern constraint.
// Variables without a pattern accept any value.
func (v Variable) Check(value string) error {
	if v.Pattern == "" {
		return nil
	}
	re, err := regexp.Compile(v.Pattern)
	if err != nil {
		return fmt.Errorf("manifest: variable %q has invalid pattern %q: %w", v.Name, v.Pattern, err)
	}
	if !re.MatchString(value) {
		return fmt.Errorf("manifest: value %q for variable %q does not match pattern %q", value, v.Name, v.Pattern)
	}
	return nil
}

// Manifest describes a scaffold.
type Manifest struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Engine      string     `yaml:"engine,omitempty"`
	Variables   []Variable `yaml:"variables,omitempty"`
	Ignore      []string   `yaml:"ignore,omitempty"`
	Message     string     `yaml:"message,omitempty"`
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Load reads scaffold.yaml from the scaffold filesystem. A scaffold without a
// manifest is legal: Load returns an empty manifest and fs.ErrNotExist so
// callers can distinguish the two cases.
func Load(fsys fs.FS) (Manifest, error) {
	f, err := fsys.Open(FileName)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Validate checks structural rules: variable names must be unique, legal
// placeholder identifiers, a variable cannot be required while carrying a
// default (the default would make the requirement unreachable), and patterns
// must compile and accept their own defaults.
func (m Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Variables))
	for _, v := range m.Variables {
		if v.Name == "" {
			return errors.New("manifest: variable with empty name")
		}
		if !template.ValidName(v.Name) {
			return fmt.Errorf("manifest: invalid variable name %q", v.Name)
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("manifest: duplicate variable %q", v.Name)
		}
		seen[v.Name] = struct{}{}

		if v.Required && v.Default != "" {
			return fmt.Errorf("manifest: variable %q is required but has a default", v.Name)
		}
		if v.Pattern != "" {
			if _, err := regexp.Compile(v.Pattern); err != nil {
				return fmt.Errorf("manifest: variable %q has invalid pattern %q: %w", v.Name, v.Pattern, err)
			}
			if v.Default != "" {
				if err := v.Check(v.Default); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Defaults returns the declared default values as a parameter set.
func (m Manifest) Defaults() template.Params {
	out := make(template.Params)
	for _, v := range m.Variables {
		if v.Default != "" {
			out[v.Name] = v.Default
		}
	}
	return out
}

// Missing returns the declared variables that have no value in params and no
// default, in declaration order. These are the ones a caller must supply or
// prompt for.
func (m Manifest) Missing(params template.Params) []Variable {
	var out []Variable
	for _, v := range m.Variables {
		if _, ok := params[v.Name]; ok {
			continue
		}
		if v.Default != "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Variable looks up a declared variable by name.
func (m Manifest) Variable(name string) (Variable, bool) {
	for _, v := range m.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Package params assembles the parameter set handed to the renderer.
// Values layer in priority order, lowest first: manifest defaults, a params
// file (YAML or JSON), raw bytes (for stdin pipelines), and explicit
// name=value pairs from the command line.
package params

import (
	"fmt"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-scaffold/pkg/template"
)

// Builder accumulates parameter layers. Zero value is not usable, construct
// with NewBuilder.
type Builder struct {
	k *koanf.Koanf
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{k: koanf.New(".")}
}

// Defaults loads a parameter set as the lowest priority layer.
func (b *Builder) Defaults(defaults template.Params) error {
	if len(defaults) == 0 {
		return nil
	}
	values := make(map[string]any, len(defaults))
	for name, value := range defaults {
		values[name] = value
	}
	if err := b.k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("params: load defaults: %w", err)
	}
	return nil
}

// File loads name→value bindings from a YAML or JSON file, chosen by
// extension.
func (b *Builder) File(path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if err := b.k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("params: load file %q: %w", path, err)
	}
	return nil
}

// Bytes loads bindings from an in-memory document. Format must be "yaml" or
// "json".
func (b *Builder) Bytes(data []byte, format string) error {
	var parser koanf.Parser
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		parser = kyaml.Parser()
	case "json":
		parser = kjson.Parser()
	default:
		return fmt.Errorf("params: unsupported format %q", format)
	}
	if err := b.k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("params: load %s bytes: %w", format, err)
	}
	return nil
}

// Set applies explicit name=value pairs as the highest priority layer.
func (b *Builder) Set(pairs ...string) error {
	if len(pairs) == 0 {
		return nil
	}
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, err := splitPair(pair)
		if err != nil {
			return err
		}
		values[name] = value
	}
	if err := b.k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("params: apply overrides: %w", err)
	}
	return nil
}

// Build flattens the accumulated layers into a parameter set. Every name
// must be a legal placeholder identifier; nested documents surface as dotted
// keys and are rejected.
func (b *Builder) Build() (template.Params, error) {
	flat := b.k.All()
	out := make(template.Params, len(flat))
	for name, value := range flat {
		if !template.ValidName(name) {
			return nil, fmt.Errorf("params: invalid parameter name %q", name)
		}
		out[name] = stringify(value)
	}
	return out, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("params: unsupported params file %q (want .yaml, .yml, or .json)", path)
	}
}

func splitPair(pair string) (string, string, error) {
	name, value, ok := strings.Cut(pair, "=")
	if !ok {
		return "", "", fmt.Errorf("params: malformed pair %q (want name=value)", pair)
	}
	name = strings.TrimSpace(name)
	if !template.ValidName(name) {
		return "", "", fmt.Errorf("params: invalid parameter name %q", name)
	}
	return name, value, nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

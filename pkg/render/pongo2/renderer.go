// Package pongo2 adapts the pongo2 template engine to the scaffold renderer
// contract. Scaffolds that need filters, conditionals, or loops select this
// engine in their manifest; plain placeholder documents should stay on the
// default strict renderer.
package pongo2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-scaffold/pkg/template"
)

// EngineName identifies this renderer in the registry and in manifests.
const EngineName = "pongo2"

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	globals map[string]any
}

// WithGlobals seeds context values available to every template, underneath
// the per-render parameter set.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if len(globals) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Renderer satisfies the render.Renderer contract using a pongo2 template
// set. Parsed templates are cached by content so repeated renders of the same
// scaffold file skip the parse step.
type Renderer struct {
	mu          sync.RWMutex
	templateSet *pongo2.TemplateSet
	cache       map[string]*pongo2.Template
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := pongo2.NewSet("scaffold", pongo2.DefaultLoader)
	if len(cfg.globals) > 0 {
		set.Globals = pongo2.Context(cfg.globals)
	}
	registerDefaultFilters()

	return &Renderer{
		templateSet: set,
		cache:       make(map[string]*pongo2.Template),
	}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return EngineName
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render parses content as a pongo2 template and executes it with the
// parameter set as context.
func (r *Renderer) Render(ctx context.Context, name, content string, params template.Params) (string, error) {
	if r == nil || r.templateSet == nil {
		return "", errors.New("pongo2: renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpl, err := r.getTemplate(content)
	if err != nil {
		return "", fmt.Errorf("pongo2: parse template %q: %w", name, err)
	}

	viewContext := make(pongo2.Context, len(params))
	for key, value := range params {
		viewContext[key] = value
	}

	var buf bytes.Buffer

	r.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	r.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("pongo2: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) getTemplate(content string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[content]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[content]; ok {
		return tmpl, nil
	}

	tmpl, err := r.templateSet.FromString(content)
	if err != nil {
		return nil, err
	}

	r.cache[content] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("snakecase") {
		_ = pongo2.RegisterFilter("snakecase", filterSnakeCase)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterSnakeCase lowers a project name into a package-safe identifier, the
// same normalization scaffolds apply when deriving `package` from `project`.
func filterSnakeCase(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	s := strings.ToLower(strings.TrimSpace(in.String()))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r == '-' || r == ' ' || r == '.':
			return '_'
		default:
			return -1
		}
	}, s)
	return pongo2.AsValue(s), nil
}

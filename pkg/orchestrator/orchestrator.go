// Package orchestrator coordinates the full scaffolding pipeline: resolve
// the scaffold source, load its manifest, assemble parameters, plan the
// output tree, and write it. It applies sensible defaults (strict placeholder
// renderer, built-in engines) while remaining open to dependency injection.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-scaffold/internal/inifile"
	"github.com/goliatone/go-scaffold/internal/tree"
	"github.com/goliatone/go-scaffold/pkg/manifest"
	"github.com/goliatone/go-scaffold/pkg/params"
	"github.com/goliatone/go-scaffold/pkg/prompt"
	"github.com/goliatone/go-scaffold/pkg/render"
	"github.com/goliatone/go-scaffold/pkg/render/pongo2"
	"github.com/goliatone/go-scaffold/pkg/source"
	"github.com/goliatone/go-scaffold/pkg/template"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when neither the request
// nor the scaffold manifest names one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithEmbedded registers a named embedded scaffold resolvable through
// source.FromEmbedded.
func WithEmbedded(name string, fsys fs.FS) Option {
	return func(o *Orchestrator) {
		if o.embedded == nil {
			o.embedded = make(map[string]fs.FS)
		}
		o.embedded[name] = fsys
	}
}

// WithPromptDriver injects the driver used to collect missing variables when
// a request asks for interactive mode.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(o *Orchestrator) {
		o.driver = driver
	}
}

// Orchestrator glues the scaffold pipeline together.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	embedded        map[string]fs.FS
	driver          prompt.Driver
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: render.PlaceholderName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	defer func() { o.defaultsApplied = true }()

	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if !o.registry.Has(render.PlaceholderName) {
		if err := o.registry.Register(render.NewPlaceholderRenderer()); err != nil {
			o.initialiseErr = err
			return
		}
	}
	if !o.registry.Has(pongo2.EngineName) {
		engine, err := pongo2.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: initialise pongo2 renderer: %w", err)
			return
		}
		if err := o.registry.Register(engine); err != nil {
			o.initialiseErr = err
			return
		}
	}
}

// Request describes one generation run.
type Request struct {
	// Source identifies the scaffold: a directory, an fs.FS, or the name of
	// an embedded scaffold.
	Source source.Source

	// Params carries explicit name→value bindings. Highest priority.
	Params template.Params

	// ParamsFile optionally points at a YAML or JSON file with bindings.
	ParamsFile string

	// SetPairs carries raw name=value strings, typically from CLI flags.
	// They rank above ParamsFile and below Params.
	SetPairs []string

	// OutputDir is the project destination. Required unless DryRun is set.
	OutputDir string

	// Renderer names the engine to use, overriding the manifest. Empty
	// selects the manifest engine, then the orchestrator default.
	Renderer string

	// DryRun plans and verifies without touching the filesystem.
	DryRun bool

	// Force overwrites colliding output files.
	Force bool

	// Interactive prompts for missing variables instead of failing.
	Interactive bool

	// Verify re-parses every rendered .ini output as a structural check.
	Verify bool
}

// Result reports what a generation run produced. Skipped lists existing
// files left alone because their content already matched the plan.
type Result struct {
	ScaffoldName string
	Plan         tree.Plan
	Created      []string
	Skipped      []string
	Message      string
}

// Generate executes the resolve → manifest → params → plan → write sequence.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return Result{}, err
		}
	}
	if req.Source == nil {
		return Result{}, errors.New("orchestrator: scaffold source is required")
	}
	if req.OutputDir == "" && !req.DryRun {
		return Result{}, errors.New("orchestrator: output directory is required")
	}

	fsys, err := o.resolveSource(req.Source)
	if err != nil {
		return Result{}, err
	}

	m, err := loadManifest(fsys)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer, m.Engine)
	if err != nil {
		return Result{}, err
	}

	values, err := o.assembleParams(ctx, m, req)
	if err != nil {
		return Result{}, err
	}

	planner := tree.NewPlanner(renderer, tree.WithIgnore(m.Ignore...))
	plan, err := planner.Plan(ctx, fsys, values)
	if err != nil {
		return Result{}, err
	}

	if req.Verify {
		if err := verifyPlan(plan); err != nil {
			return Result{}, err
		}
	}

	result := Result{
		ScaffoldName: m.Name,
		Plan:         plan,
		Message:      renderMessage(m.Message, values),
	}

	if req.DryRun {
		return result, nil
	}

	force := req.Force
	if !force && req.Interactive && o.driver != nil {
		if existing := plan.Collisions(req.OutputDir); len(existing) > 0 {
			ok, err := o.driver.Confirm(ctx, prompt.ConfirmConfig{
				Message: fmt.Sprintf("Overwrite %d existing file(s) in %s?", len(existing), req.OutputDir),
				Help:    strings.Join(existing, ", "),
			})
			if err != nil {
				return result, err
			}
			if !ok {
				return result, fmt.Errorf("orchestrator: %d file(s) already exist in %s", len(existing), req.OutputDir)
			}
			force = true
		}
	}

	applied, err := tree.NewWriter(force).Apply(ctx, plan, req.OutputDir)
	if err != nil {
		return result, err
	}
	result.Created = applied.Created
	result.Skipped = applied.Skipped
	return result, nil
}

// Renderers lists the engines available to requests.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}

func (o *Orchestrator) resolveSource(src source.Source) (fs.FS, error) {
	switch src.Kind() {
	case source.SourceKindDir:
		info, err := os.Stat(src.Location())
		if err != nil {
			return nil, fmt.Errorf("orchestrator: scaffold directory %q: %w", src.Location(), err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("orchestrator: scaffold source %q is not a directory", src.Location())
		}
		return os.DirFS(src.Location()), nil

	case source.SourceKindFS:
		provider, ok := src.(source.FSProvider)
		if !ok {
			return nil, fmt.Errorf("orchestrator: fs source %q does not expose a filesystem", src.Location())
		}
		return provider.FS(), nil

	case source.SourceKindEmbedded:
		fsys, ok := o.embedded[src.Location()]
		if !ok {
			return nil, fmt.Errorf("orchestrator: unknown embedded scaffold %q", src.Location())
		}
		return fsys, nil

	default:
		return nil, fmt.Errorf("orchestrator: unsupported source kind %q", src.Kind())
	}
}

func (o *Orchestrator) rendererFor(requested, manifestEngine string) (render.Renderer, error) {
	name := requested
	if name == "" {
		name = manifestEngine
	}
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w (available: %s)", err, strings.Join(o.registry.List(), ", "))
	}
	return renderer, nil
}

func (o *Orchestrator) assembleParams(ctx context.Context, m manifest.Manifest, req Request) (template.Params, error) {
	builder := params.NewBuilder()
	if err := builder.Defaults(m.Defaults()); err != nil {
		return nil, err
	}
	if req.ParamsFile != "" {
		if err := builder.File(req.ParamsFile); err != nil {
			return nil, err
		}
	}
	if err := builder.Set(req.SetPairs...); err != nil {
		return nil, err
	}

	values, err := builder.Build()
	if err != nil {
		return nil, err
	}
	values = values.Merge(req.Params)

	if missing := m.Missing(values); len(missing) > 0 {
		if req.Interactive && o.driver != nil {
			answers, err := prompt.Ask(ctx, o.driver, missing)
			if err != nil {
				return nil, err
			}
			values = values.Merge(answers)
		} else {
			var required []string
			for _, v := range missing {
				if v.Required {
					required = append(required, v.Name)
				}
			}
			if len(required) > 0 {
				return nil, fmt.Errorf("orchestrator: missing required variable(s) %s", strings.Join(required, ", "))
			}
		}
	}

	// Pattern constraints apply to every bound value regardless of where it
	// came from; prompted answers were already validated at input time.
	for _, v := range m.Variables {
		value, ok := values[v.Name]
		if !ok {
			continue
		}
		if err := v.Check(value); err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}
	return values, nil
}

func loadManifest(fsys fs.FS) (manifest.Manifest, error) {
	m, err := manifest.Load(fsys)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return manifest.Manifest{}, nil
		}
		return manifest.Manifest{}, err
	}
	return m, nil
}

func verifyPlan(plan tree.Plan) error {
	for _, action := range plan.Actions {
		if action.Kind != tree.ActionWrite || !action.Rendered {
			continue
		}
		if !strings.HasSuffix(action.Path, ".ini") {
			continue
		}
		if err := inifile.Verify(string(action.Content)); err != nil {
			return fmt.Errorf("orchestrator: verify %q: %w", action.Path, err)
		}
	}
	return nil
}

// renderMessage substitutes parameters into the manifest's post-generate
// message. The message is advisory, so a placeholder problem falls back to
// the raw text rather than failing the run.
func renderMessage(message string, values template.Params) string {
	if message == "" {
		return ""
	}
	rendered, err := template.Render("message", message, values)
	if err != nil {
		return message
	}
	return rendered
}

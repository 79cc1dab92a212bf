// Package tree walks a scaffold filesystem and turns it into an ordered
// write plan. Planning renders everything up front; applying only performs
// filesystem writes, so a render failure never leaves a half-written
// project behind.
package tree

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-scaffold/pkg/manifest"
	"github.com/goliatone/go-scaffold/pkg/render"
	"github.com/goliatone/go-scaffold/pkg/template"
)

// TemplateSuffix marks scaffold files whose content is rendered. The suffix
// is stripped from the output name: development.ini_tmpl → development.ini.
const TemplateSuffix = "_tmpl"

// ActionKind enumerates plan steps.
type ActionKind int

const (
	// ActionMkdir creates an output directory.
	ActionMkdir ActionKind = iota
	// ActionWrite writes an output file.
	ActionWrite
)

// Action is one step of a plan. Path is the rendered output path relative to
// the project root; Source is the originating path inside the scaffold.
type Action struct {
	Kind     ActionKind
	Path     string
	Source   string
	Content  []byte
	Rendered bool
}

// Plan is the ordered sequence of actions that materializes a scaffold.
type Plan struct {
	Actions []Action
}

// Files returns the output paths of all write actions, in plan order.
func (p Plan) Files() []string {
	var out []string
	for _, a := range p.Actions {
		if a.Kind == ActionWrite {
			out = append(out, a.Path)
		}
	}
	return out
}

// Planner renders a scaffold tree into a Plan.
type Planner struct {
	renderer render.Renderer
	ignore   []string
}

// Option configures a Planner.
type Option func(*Planner)

// WithIgnore adds glob patterns (matched against both base names and
// slash-separated relative paths) excluded from the plan.
func WithIgnore(patterns ...string) Option {
	return func(p *Planner) {
		p.ignore = append(p.ignore, patterns...)
	}
}

// NewPlanner creates a Planner that renders `_tmpl` content through renderer.
func NewPlanner(renderer render.Renderer, options ...Option) *Planner {
	p := &Planner{renderer: renderer}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Plan walks fsys in lexical order and renders every `_tmpl` file and every
// placeholder-bearing path segment with params. The scaffold manifest is
// never part of the plan.
func (p *Planner) Plan(ctx context.Context, fsys fs.FS, params template.Params) (Plan, error) {
	if p.renderer == nil {
		return Plan{}, fmt.Errorf("tree: renderer is required")
	}

	var plan Plan
	err := fs.WalkDir(fsys, ".", func(srcPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("tree: walk %q: %w", srcPath, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if srcPath == "." {
			return nil
		}
		if p.ignored(srcPath) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		outPath, isTemplate, err := renderPath(srcPath, params)
		if err != nil {
			return err
		}

		if d.IsDir() {
			plan.Actions = append(plan.Actions, Action{
				Kind:   ActionMkdir,
				Path:   outPath,
				Source: srcPath,
			})
			return nil
		}

		content, err := fs.ReadFile(fsys, srcPath)
		if err != nil {
			return fmt.Errorf("tree: read %q: %w", srcPath, err)
		}

		if isTemplate {
			rendered, err := p.renderer.Render(ctx, srcPath, string(content), params)
			if err != nil {
				return err
			}
			content = []byte(rendered)
		}

		plan.Actions = append(plan.Actions, Action{
			Kind:     ActionWrite,
			Path:     outPath,
			Source:   srcPath,
			Content:  content,
			Rendered: isTemplate,
		})
		return nil
	})
	if err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (p *Planner) ignored(srcPath string) bool {
	if srcPath == manifest.FileName {
		return true
	}
	base := path.Base(srcPath)
	for _, pattern := range p.ignore {
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		if ok, _ := path.Match(pattern, srcPath); ok {
			return true
		}
	}
	return false
}

// renderPath substitutes placeholders in each path segment and strips the
// template suffix from the final one. Path segments always go through the
// strict engine: a rich-template construct in a file name is a scaffold
// authoring error regardless of the content engine.
func renderPath(srcPath string, params template.Params) (string, bool, error) {
	segments := strings.Split(srcPath, "/")

	isTemplate := strings.HasSuffix(segments[len(segments)-1], TemplateSuffix)
	if isTemplate {
		last := strings.TrimSuffix(segments[len(segments)-1], TemplateSuffix)
		if last == "" {
			return "", false, fmt.Errorf("tree: %q has no file name besides the template suffix", srcPath)
		}
		segments[len(segments)-1] = last
	}

	for i, segment := range segments {
		if !strings.Contains(segment, "{{") {
			continue
		}
		rendered, err := template.Render(srcPath, segment, params)
		if err != nil {
			return "", false, err
		}
		if rendered == "" || strings.ContainsAny(rendered, "/\\") {
			return "", false, fmt.Errorf("tree: path segment %q of %q rendered to unusable name %q", segment, srcPath, rendered)
		}
		segments[i] = rendered
	}

	return path.Join(segments...), isTemplate, nil
}

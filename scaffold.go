// Package scaffold generates project skeletons from template trees. A
// scaffold is a directory of files where `_tmpl` suffixed content and
// `{{ name }}` path segments are rendered with caller supplied parameters;
// everything else copies through verbatim.
//
// The root package is a thin facade over pkg/orchestrator. Typical use:
//
//	result, err := scaffold.Generate(ctx, scaffold.Request{
//	    Source:    source.FromEmbedded(scaffold.StarterName),
//	    Params:    scaffold.Params{"project": "shop", "package": "shop"},
//	    OutputDir: "./shop",
//	})
package scaffold

import (
	"context"

	"github.com/goliatone/go-scaffold/pkg/orchestrator"
	"github.com/goliatone/go-scaffold/pkg/prompt"
	"github.com/goliatone/go-scaffold/pkg/render"
	"github.com/goliatone/go-scaffold/pkg/template"
)

// Request describes one generation run.
type Request = orchestrator.Request

// Result reports what a generation run produced.
type Result = orchestrator.Result

// Params binds placeholder names to substitution values.
type Params = template.Params

// NewOrchestrator constructs an orchestrator with every embedded scaffold
// pre-registered, then applies the caller's options on top.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := make([]orchestrator.Option, 0, len(options)+2)
	for name, fsys := range EmbeddedScaffolds() {
		base = append(base, orchestrator.WithEmbedded(name, fsys))
	}
	base = append(base, options...)
	return orchestrator.New(base...)
}

// Generate runs the full pipeline with a default orchestrator. It is the
// simplest entry point for callers that just want a project on disk.
func Generate(ctx context.Context, req Request, options ...orchestrator.Option) (Result, error) {
	return NewOrchestrator(options...).Generate(ctx, req)
}

// WithRegistry forwards a renderer registry to the orchestrator.
func WithRegistry(registry *render.Registry) orchestrator.Option {
	return orchestrator.WithRegistry(registry)
}

// WithPromptDriver forwards the interactive prompt driver.
func WithPromptDriver(driver prompt.Driver) orchestrator.Option {
	return orchestrator.WithPromptDriver(driver)
}

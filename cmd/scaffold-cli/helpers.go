package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v3"

	scaffold "github.com/goliatone/go-scaffold"
	"github.com/goliatone/go-scaffold/pkg/params"
	"github.com/goliatone/go-scaffold/pkg/render"
	"github.com/goliatone/go-scaffold/pkg/render/pongo2"
	"github.com/goliatone/go-scaffold/pkg/source"
	"github.com/goliatone/go-scaffold/pkg/template"
)

// defaultRegistry mirrors the engines the orchestrator registers by default.
func defaultRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(render.NewPlaceholderRenderer())
	if engine, err := pongo2.New(); err == nil {
		registry.MustRegister(engine)
	}
	return registry
}

// resolveScaffold maps the --scaffold flag to a source: an existing
// directory wins, then an embedded scaffold name.
func resolveScaffold(ref string) (source.Source, error) {
	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return source.FromDir(ref), nil
	}
	if _, ok := scaffold.EmbeddedScaffold(ref); ok {
		return source.FromEmbedded(ref), nil
	}
	return nil, fmt.Errorf("unknown scaffold %q (embedded: %v)", ref, scaffold.EmbeddedNames())
}

// scaffoldFS resolves the --scaffold flag to a readable filesystem for
// commands that inspect rather than generate.
func scaffoldFS(ref string) (fs.FS, string, error) {
	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return os.DirFS(ref), ref, nil
	}
	if fsys, ok := scaffold.EmbeddedScaffold(ref); ok {
		return fsys, ref, nil
	}
	return nil, "", fmt.Errorf("unknown scaffold %q (embedded: %v)", ref, scaffold.EmbeddedNames())
}

// collectParams layers --params file values under --var pairs.
func collectParams(cmd *cli.Command) (template.Params, error) {
	builder := params.NewBuilder()
	if path := cmd.String("params"); path != "" {
		if err := builder.File(path); err != nil {
			return nil, err
		}
	}
	if err := builder.Set(cmd.StringSlice("var")...); err != nil {
		return nil, err
	}
	return builder.Build()
}

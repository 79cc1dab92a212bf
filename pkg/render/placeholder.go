package render

import (
	"context"

	"github.com/goliatone/go-scaffold/pkg/template"
)

// PlaceholderName identifies the default strict `{{ name }}` renderer.
const PlaceholderName = "placeholder"

// PlaceholderRenderer is the default engine: exact substitution with hard
// failures on unbound or malformed placeholders.
type PlaceholderRenderer struct{}

// NewPlaceholderRenderer returns the strict placeholder renderer.
func NewPlaceholderRenderer() *PlaceholderRenderer {
	return &PlaceholderRenderer{}
}

// Name implements Renderer.
func (r *PlaceholderRenderer) Name() string {
	return PlaceholderName
}

// ContentType implements Renderer. Scaffold output is plain text.
func (r *PlaceholderRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render implements Renderer by delegating to the template package.
func (r *PlaceholderRenderer) Render(ctx context.Context, name, content string, params template.Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return template.Render(name, content, params)
}

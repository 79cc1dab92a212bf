package render

import (
	"context"

	"github.com/goliatone/go-scaffold/pkg/template"
)

// Renderer turns template content into finalized output using the supplied
// parameter set. The name identifies the source document in error messages.
// Implementations must be pure with respect to their inputs so the tree
// planner can render the same content repeatedly.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, name, content string, params template.Params) (string, error)
}

package tree

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Result reports what Apply did. Skipped lists existing files left alone
// because their content already matched the plan.
type Result struct {
	Created []string
	Skipped []string
}

// Collisions returns the planned output paths that already exist under
// outputDir, in plan order.
func (p Plan) Collisions(outputDir string) []string {
	var out []string
	for _, a := range p.Actions {
		if a.Kind != ActionWrite {
			continue
		}
		target := filepath.Join(outputDir, filepath.FromSlash(a.Path))
		if _, err := os.Stat(target); err == nil {
			out = append(out, a.Path)
		}
	}
	return out
}

// Writer materializes a Plan under an output directory.
type Writer struct {
	force bool
}

// NewWriter creates a Writer. With force, existing files are overwritten
// unless their content already matches the plan; otherwise any collision
// aborts before the first write.
func NewWriter(force bool) *Writer {
	return &Writer{force: force}
}

// Apply executes the plan under outputDir. Collisions are checked for the
// whole plan before anything is written.
func (w *Writer) Apply(ctx context.Context, plan Plan, outputDir string) (Result, error) {
	if outputDir == "" {
		return Result{}, fmt.Errorf("tree: output directory is required")
	}

	if !w.force {
		if existing := plan.Collisions(outputDir); len(existing) > 0 {
			return Result{}, fmt.Errorf("tree: %q already exists (use force to overwrite)",
				filepath.Join(outputDir, filepath.FromSlash(existing[0])))
		}
	}

	var result Result
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("tree: mkdir %q: %w", outputDir, err)
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		target := filepath.Join(outputDir, filepath.FromSlash(action.Path))
		switch action.Kind {
		case ActionMkdir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return result, fmt.Errorf("tree: mkdir %q: %w", target, err)
			}
		case ActionWrite:
			if w.force {
				if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, action.Content) {
					result.Skipped = append(result.Skipped, action.Path)
					continue
				}
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return result, fmt.Errorf("tree: mkdir %q: %w", filepath.Dir(target), err)
			}
			if err := os.WriteFile(target, action.Content, 0o644); err != nil {
				return result, fmt.Errorf("tree: write %q: %w", target, err)
			}
			result.Created = append(result.Created, action.Path)
		default:
			return result, fmt.Errorf("tree: unknown action kind %d", action.Kind)
		}
	}
	return result, nil
}

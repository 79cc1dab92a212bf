package tree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scaffold/pkg/render"
	"github.com/goliatone/go-scaffold/pkg/template"
)

func scaffoldFS() fstest.MapFS {
	return fstest.MapFS{
		"scaffold.yaml":        &fstest.MapFile{Data: []byte("name: starter\n")},
		"development.ini_tmpl": &fstest.MapFile{Data: []byte("[app:main]\nsqlalchemy.url = postgresql://localhost/{{project}}_dev\n")},
		"README.md":            &fstest.MapFile{Data: []byte("static readme, {{not_rendered}} stays literal\n")},
		"{{package}}/__init__.py_tmpl": &fstest.MapFile{
			Data: []byte("# package {{package}}\n"),
		},
		"{{package}}/static/logo.png": &fstest.MapFile{Data: []byte{0x89, 0x50}},
		"notes.swp":                   &fstest.MapFile{Data: []byte("junk")},
	}
}

func testParams() template.Params {
	return template.Params{"project": "shop", "package": "shop"}
}

func TestPlanner_Plan(t *testing.T) {
	planner := NewPlanner(render.NewPlaceholderRenderer(), WithIgnore("*.swp"))

	plan, err := planner.Plan(context.Background(), scaffoldFS(), testParams())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	wantFiles := []string{
		"README.md",
		"development.ini",
		"shop/__init__.py",
		"shop/static/logo.png",
	}
	if diff := cmp.Diff(wantFiles, plan.Files()); diff != "" {
		t.Fatalf("unexpected planned files (-want +got):\n%s", diff)
	}

	byPath := make(map[string]Action)
	for _, a := range plan.Actions {
		byPath[a.Path] = a
	}

	ini := byPath["development.ini"]
	if !ini.Rendered {
		t.Fatal("development.ini should be rendered")
	}
	if got, want := string(ini.Content), "[app:main]\nsqlalchemy.url = postgresql://localhost/shop_dev\n"; got != want {
		t.Fatalf("unexpected rendered content %q", got)
	}

	readme := byPath["README.md"]
	if readme.Rendered {
		t.Fatal("README.md must copy verbatim")
	}
	if got := string(readme.Content); got != "static readme, {{not_rendered}} stays literal\n" {
		t.Fatalf("verbatim file was altered: %q", got)
	}

	if _, ok := byPath["scaffold.yaml"]; ok {
		t.Fatal("manifest must never be part of the plan")
	}
	if dir, ok := byPath["shop"]; !ok || dir.Kind != ActionMkdir {
		t.Fatalf("expected rendered directory action for shop, got %+v ok=%v", dir, ok)
	}
}

func TestPlanner_UnboundAbortsWholePlan(t *testing.T) {
	planner := NewPlanner(render.NewPlaceholderRenderer())

	_, err := planner.Plan(context.Background(), scaffoldFS(), template.Params{"package": "shop"})
	var unbound *template.UnboundPlaceholderError
	if !errors.As(err, &unbound) {
		t.Fatalf("expected UnboundPlaceholderError, got %v", err)
	}
	if diff := cmp.Diff([]string{"project"}, unbound.Names); diff != "" {
		t.Fatalf("unexpected unbound names (-want +got):\n%s", diff)
	}
}

func TestPlanner_IgnoreDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"keep.txt":           &fstest.MapFile{Data: []byte("keep")},
		"__pycache__/a.pyc":  &fstest.MapFile{Data: []byte("junk")},
		"nested/__pycache__": &fstest.MapFile{Data: []byte("junk"), Mode: 0o644},
	}
	planner := NewPlanner(render.NewPlaceholderRenderer(), WithIgnore("__pycache__"))

	plan, err := planner.Plan(context.Background(), fsys, nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, a := range plan.Actions {
		if a.Path == "__pycache__" || a.Path == "__pycache__/a.pyc" || a.Path == "nested/__pycache__" {
			t.Fatalf("ignored path %q appeared in plan", a.Path)
		}
	}
}

func TestRenderPath(t *testing.T) {
	params := template.Params{"package": "shop"}

	tests := []struct {
		src          string
		wantPath     string
		wantTemplate bool
	}{
		{"development.ini_tmpl", "development.ini", true},
		{"README.md", "README.md", false},
		{"{{package}}/models.py_tmpl", "shop/models.py", true},
		{"{{ package }}/views.py", "shop/views.py", false},
	}
	for _, tt := range tests {
		gotPath, gotTemplate, err := renderPath(tt.src, params)
		if err != nil {
			t.Fatalf("renderPath(%q): %v", tt.src, err)
		}
		if gotPath != tt.wantPath || gotTemplate != tt.wantTemplate {
			t.Fatalf("renderPath(%q) = %q/%v, want %q/%v", tt.src, gotPath, gotTemplate, tt.wantPath, tt.wantTemplate)
		}
	}
}

func TestRenderPath_Errors(t *testing.T) {
	if _, _, err := renderPath("_tmpl", nil); err == nil {
		t.Fatal("expected error for suffix-only file name")
	}
	if _, _, err := renderPath("{{package}}/file.txt", template.Params{"package": "a/b"}); err == nil {
		t.Fatal("expected error for separator in rendered segment")
	}
	if _, _, err := renderPath("{{package}}/file.txt", template.Params{"package": ""}); err == nil {
		t.Fatal("expected error for empty rendered segment")
	}
	if _, _, err := renderPath("{{missing}}/file.txt", template.Params{}); err == nil {
		t.Fatal("expected unbound error for path placeholder")
	}
}

func TestWriter_Apply(t *testing.T) {
	planner := NewPlanner(render.NewPlaceholderRenderer(), WithIgnore("*.swp"))
	plan, err := planner.Plan(context.Background(), scaffoldFS(), testParams())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	out := filepath.Join(t.TempDir(), "shop")
	result, err := NewWriter(false).Apply(context.Background(), plan, out)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Created) != 4 {
		t.Fatalf("expected 4 created files, got %v", result.Created)
	}

	data, err := os.ReadFile(filepath.Join(out, "development.ini"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "[app:main]\nsqlalchemy.url = postgresql://localhost/shop_dev\n" {
		t.Fatalf("unexpected output file %q", data)
	}

	if _, err := os.Stat(filepath.Join(out, "shop", "static", "logo.png")); err != nil {
		t.Fatalf("expected nested static file: %v", err)
	}
}

func TestWriter_CollisionWithoutForce(t *testing.T) {
	planner := NewPlanner(render.NewPlaceholderRenderer(), WithIgnore("*.swp"))
	plan, err := planner.Plan(context.Background(), scaffoldFS(), testParams())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "development.ini"), []byte("old"), 0o644); err != nil {
		t.Fatalf("seed collision: %v", err)
	}

	if _, err := NewWriter(false).Apply(context.Background(), plan, out); err == nil {
		t.Fatal("expected collision error")
	}

	// Nothing else may have been written before the collision check fired.
	if _, err := os.Stat(filepath.Join(out, "README.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("collision must abort before any write, stat err=%v", err)
	}

	result, err := NewWriter(true).Apply(context.Background(), plan, out)
	if err != nil {
		t.Fatalf("Apply with force: %v", err)
	}
	if len(result.Created) != 4 {
		t.Fatalf("expected 4 created files with force, got %v", result.Created)
	}
}

func TestWriter_ForceSkipsUnchanged(t *testing.T) {
	planner := NewPlanner(render.NewPlaceholderRenderer(), WithIgnore("*.swp"))
	plan, err := planner.Plan(context.Background(), scaffoldFS(), testParams())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	out := t.TempDir()
	if _, err := NewWriter(false).Apply(context.Background(), plan, out); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	result, err := NewWriter(true).Apply(context.Background(), plan, out)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(result.Created) != 0 {
		t.Fatalf("unchanged files must not be rewritten, got created %v", result.Created)
	}
	if len(result.Skipped) != 4 {
		t.Fatalf("expected 4 skipped files, got %v", result.Skipped)
	}
}

func TestPlan_Collisions(t *testing.T) {
	planner := NewPlanner(render.NewPlaceholderRenderer(), WithIgnore("*.swp"))
	plan, err := planner.Plan(context.Background(), scaffoldFS(), testParams())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	out := t.TempDir()
	if got := plan.Collisions(out); len(got) != 0 {
		t.Fatalf("expected no collisions in empty dir, got %v", got)
	}

	if err := os.WriteFile(filepath.Join(out, "README.md"), []byte("old"), 0o644); err != nil {
		t.Fatalf("seed collision: %v", err)
	}
	if diff := cmp.Diff([]string{"README.md"}, plan.Collisions(out)); diff != "" {
		t.Fatalf("unexpected collisions (-want +got):\n%s", diff)
	}
}

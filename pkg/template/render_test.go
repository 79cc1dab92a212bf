package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_Substitution(t *testing.T) {
	tests := []struct {
		name    string
		content string
		params  Params
		want    string
	}{
		{
			name:    "literal text passes through",
			content: "a=1\nb={{x}}",
			params:  Params{"x": "2"},
			want:    "a=1\nb=2",
		},
		{
			name:    "ini value with surrounding text",
			content: "sqlalchemy.url = postgresql://localhost/{{project}}_dev",
			params:  Params{"project": "shop"},
			want:    "sqlalchemy.url = postgresql://localhost/shop_dev",
		},
		{
			name:    "padded delimiters",
			content: "name = {{ project }}",
			params:  Params{"project": "shop"},
			want:    "name = shop",
		},
		{
			name:    "repeated placeholder gets the same value",
			content: "[app:{{package}}]\nuse = egg:{{package}}",
			params:  Params{"package": "shop"},
			want:    "[app:shop]\nuse = egg:shop",
		},
		{
			name:    "superset parameter sets are fine",
			content: "pkg={{package}}",
			params:  Params{"package": "shop", "project": "unused"},
			want:    "pkg=shop",
		},
		{
			name:    "no placeholders",
			content: "[server:main]\nhost = 0.0.0.0\n",
			params:  Params{},
			want:    "[server:main]\nhost = 0.0.0.0\n",
		},
		{
			name:    "stray close delimiter is literal",
			content: "a }} b = {{x}}",
			params:  Params{"x": "1"},
			want:    "a }} b = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render("test.ini_tmpl", tt.content, tt.params)
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Render mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
			}
			if strings.Contains(got, "{{") {
				t.Fatalf("rendered output still contains an open delimiter: %q", got)
			}
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	content := "url = postgresql://localhost/{{project}}_dev\npkg = {{package}}\n"
	params := Params{"project": "shop", "package": "shop"}

	first, err := Render("development.ini_tmpl", content, params)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := Render("development.ini_tmpl", content, params)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Fatalf("renders differ:\n%s", cmp.Diff(first, second))
	}
}

func TestRender_UnboundPlaceholder(t *testing.T) {
	content := "a={{alpha}}\nb={{beta}}\nc={{alpha}}\nd={{gamma}}"

	_, err := Render("broken.ini_tmpl", content, Params{"beta": "2"})
	if err == nil {
		t.Fatal("expected error for unbound placeholders")
	}

	var unbound *UnboundPlaceholderError
	if !errors.As(err, &unbound) {
		t.Fatalf("expected UnboundPlaceholderError, got %T: %v", err, err)
	}
	if diff := cmp.Diff([]string{"alpha", "gamma"}, unbound.Names); diff != "" {
		t.Fatalf("unexpected unbound names (-want +got):\n%s", diff)
	}
	if unbound.Template != "broken.ini_tmpl" {
		t.Fatalf("unexpected template name %q", unbound.Template)
	}
}

func TestRender_NoPartialOutput(t *testing.T) {
	doc, err := Parse("t", "head\n{{bound}}\n{{missing}}\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := doc.Render(Params{"bound": "v"})
	if err == nil {
		t.Fatal("expected unbound error")
	}
	if out != "" {
		t.Fatalf("expected empty output on failure, got %q", out)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"unclosed at end of line", "a = 1\nb = {{project\nc = 3", 2},
		{"unclosed at end of input", "x = {{name", 1},
		{"empty name", "x = {{}}", 1},
		{"whitespace only name", "x = {{   }}", 1},
		{"nested open delimiter", "x = {{ {{name }}", 1},
		{"invalid identifier", "x = {{pro-ject}}", 1},
		{"leading digit", "x = {{1abc}}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.tmpl", tt.content)
			if err == nil {
				t.Fatal("expected MalformedPlaceholderError")
			}
			var malformed *MalformedPlaceholderError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedPlaceholderError, got %T: %v", err, err)
			}
			if malformed.Line != tt.wantLine {
				t.Fatalf("expected line %d, got %d (%v)", tt.wantLine, malformed.Line, err)
			}
		})
	}
}

func TestDocument_Names(t *testing.T) {
	doc, err := Parse("t", "{{zulu}} {{alpha}} {{zulu}} {{mike}}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "mike", "zulu"}, doc.Names()); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestDocument_PlaceholderPositions(t *testing.T) {
	doc, err := Parse("t", "line one\nurl = {{project}}\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := doc.Placeholders()
	if len(ps) != 1 {
		t.Fatalf("expected one placeholder, got %d", len(ps))
	}
	if ps[0].Name != "project" || ps[0].Line != 2 {
		t.Fatalf("unexpected placeholder %+v", ps[0])
	}
}

func TestParams_Merge(t *testing.T) {
	base := Params{"a": "1", "b": "2"}
	merged := base.Merge(Params{"b": "override", "c": "3"})

	want := Params{"a": "1", "b": "override", "c": "3"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("unexpected merge result (-want +got):\n%s", diff)
	}
	if base["b"] != "2" {
		t.Fatal("Merge mutated the receiver")
	}
}

func TestValidName(t *testing.T) {
	valid := []string{"project", "package", "db_url", "_private", "v2"}
	for _, name := range valid {
		if !ValidName(name) {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	invalid := []string{"", "2fast", "pro-ject", "pro ject", "päckage", "a.b"}
	for _, name := range invalid {
		if ValidName(name) {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}

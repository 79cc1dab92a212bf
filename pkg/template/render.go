package template

import (
	"sort"
	"strings"
)

// Params binds placeholder names to substitution values. Matching is exact
// and case-sensitive; extra entries are ignored.
type Params map[string]string

// Merge returns a new Params with overrides layered on top of p. Neither
// input is mutated.
func (p Params) Merge(overrides Params) Params {
	out := make(Params, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Render substitutes every placeholder in the document with its bound value.
// All literal text, including line breaks and indentation, passes through
// unchanged. If any placeholder is unbound the render fails with
// UnboundPlaceholderError and no output is produced.
func (d Document) Render(params Params) (string, error) {
	if missing := d.unbound(params); len(missing) > 0 {
		return "", &UnboundPlaceholderError{
			Template: d.name,
			Names:    missing,
		}
	}

	var b strings.Builder
	b.Grow(len(d.content))

	pos := 0
	for _, p := range d.placeholders {
		b.WriteString(d.content[pos:p.Start])
		b.WriteString(params[p.Name])
		pos = p.End
	}
	b.WriteString(d.content[pos:])

	return b.String(), nil
}

// Render is a convenience that parses and renders content in one call.
func Render(name, content string, params Params) (string, error) {
	doc, err := Parse(name, content)
	if err != nil {
		return "", err
	}
	return doc.Render(params)
}

func (d Document) unbound(params Params) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, p := range d.placeholders {
		if _, ok := params[p.Name]; ok {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		missing = append(missing, p.Name)
	}
	sort.Strings(missing)
	return missing
}

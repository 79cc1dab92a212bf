package template

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Placeholder marks one `{{ name }}` occurrence inside a document. Start and
// End are byte offsets covering the whole token including delimiters; Line is
// 1-based.
type Placeholder struct {
	Name  string
	Line  int
	Start int
	End   int
}

// Document is an immutable, parsed template. Placeholders are scanned once at
// load time so rendering is a pure substitution pass.
type Document struct {
	name         string
	content      string
	placeholders []Placeholder
}

// Parse scans content for placeholder tokens and returns a Document ready for
// rendering. The name is only used in error messages. A broken token aborts
// parsing with MalformedPlaceholderError.
func Parse(name, content string) (Document, error) {
	placeholders, err := scan(name, content)
	if err != nil {
		return Document{}, err
	}
	return Document{
		name:         name,
		content:      content,
		placeholders: placeholders,
	}, nil
}

// ParseFS reads the named file from fsys and parses it.
func ParseFS(fsys fs.FS, name string) (Document, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Document{}, fmt.Errorf("template: open %q: %w", name, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return Document{}, fmt.Errorf("template: read %q: %w", name, err)
	}
	return Parse(name, string(b))
}

// Name returns the document name supplied at parse time.
func (d Document) Name() string {
	return d.name
}

// Content returns the raw template text.
func (d Document) Content() string {
	return d.content
}

// Placeholders returns a copy of the scanned tokens in document order.
func (d Document) Placeholders() []Placeholder {
	out := make([]Placeholder, len(d.placeholders))
	copy(out, d.placeholders)
	return out
}

// Names returns the distinct placeholder names, sorted.
func (d Document) Names() []string {
	seen := make(map[string]struct{}, len(d.placeholders))
	for _, p := range d.placeholders {
		seen[p.Name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// scan walks the content once, collecting placeholder tokens. Tokens must
// open and close on the same line; a stray `}}` with no opener is literal
// text.
func scan(name, content string) ([]Placeholder, error) {
	var placeholders []Placeholder

	line := 1
	for pos := 0; pos < len(content); {
		next := strings.Index(content[pos:], openDelim)
		if next < 0 {
			break
		}

		start := pos + next
		line += strings.Count(content[pos:start], "\n")

		rest := content[start+len(openDelim):]
		stop := strings.Index(rest, closeDelim)
		newline := strings.Index(rest, "\n")

		if stop < 0 || (newline >= 0 && newline < stop) {
			return nil, &MalformedPlaceholderError{
				Template: name,
				Line:     line,
				Reason:   fmt.Sprintf("%q is not closed", openDelim),
			}
		}

		inner := rest[:stop]
		if strings.Contains(inner, openDelim) {
			return nil, &MalformedPlaceholderError{
				Template: name,
				Line:     line,
				Reason:   fmt.Sprintf("nested %q before %q", openDelim, closeDelim),
			}
		}

		pname := strings.TrimSpace(inner)
		if pname == "" {
			return nil, &MalformedPlaceholderError{
				Template: name,
				Line:     line,
				Reason:   "empty placeholder name",
			}
		}
		if !ValidName(pname) {
			return nil, &MalformedPlaceholderError{
				Template: name,
				Line:     line,
				Reason:   fmt.Sprintf("invalid placeholder name %q", pname),
			}
		}

		end := start + len(openDelim) + stop + len(closeDelim)
		placeholders = append(placeholders, Placeholder{
			Name:  pname,
			Line:  line,
			Start: start,
			End:   end,
		})
		pos = end
	}

	return placeholders, nil
}

// ValidName reports whether s is a legal placeholder identifier: an ASCII
// letter or underscore followed by letters, digits, or underscores.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

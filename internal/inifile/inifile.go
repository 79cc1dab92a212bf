// Package inifile is a minimal scanner for the INI-style configuration
// documents scaffolds generate. It exists for verification only: after a
// render, the orchestrator can assert the output still parses into sections
// and key lines. It is not a general INI reader and performs no type
// coercion or interpolation.
package inifile

import (
	"fmt"
	"strings"
)

// Key is one `name = value` line.
type Key struct {
	Name  string
	Value string
	Line  int
}

// Section is a `[name]` header and the keys that follow it.
type Section struct {
	Name string
	Line int
	Keys []Key
}

// Document is a parsed INI-style file.
type Document struct {
	Sections []Section
}

// Section looks up a section by exact name.
func (d Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Parse scans content into sections. Blank lines and `#`/`;` comments are
// skipped; indented lines continue the previous key's value, matching the
// PasteDeploy-style files the starter scaffold generates.
func Parse(content string) (Document, error) {
	var (
		doc     Document
		current *Section
		lastKey *Key
	)

	for i, raw := range strings.Split(content, "\n") {
		line := i + 1
		trimmed := strings.TrimSpace(raw)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";"):
			continue

		case strings.HasPrefix(trimmed, "["):
			if !strings.HasSuffix(trimmed, "]") {
				return Document{}, fmt.Errorf("inifile: line %d: unterminated section header %q", line, trimmed)
			}
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return Document{}, fmt.Errorf("inifile: line %d: empty section name", line)
			}
			doc.Sections = append(doc.Sections, Section{Name: name, Line: line})
			current = &doc.Sections[len(doc.Sections)-1]
			lastKey = nil

		case len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t'):
			if lastKey == nil {
				return Document{}, fmt.Errorf("inifile: line %d: continuation with no preceding key", line)
			}
			lastKey.Value += "\n" + trimmed

		default:
			name, value, ok := strings.Cut(trimmed, "=")
			if !ok {
				return Document{}, fmt.Errorf("inifile: line %d: expected key = value, got %q", line, trimmed)
			}
			if current == nil {
				return Document{}, fmt.Errorf("inifile: line %d: key %q outside any section", line, strings.TrimSpace(name))
			}
			current.Keys = append(current.Keys, Key{
				Name:  strings.TrimSpace(name),
				Value: strings.TrimSpace(value),
				Line:  line,
			})
			lastKey = &current.Keys[len(current.Keys)-1]
		}
	}

	if len(doc.Sections) == 0 {
		return Document{}, fmt.Errorf("inifile: no sections found")
	}
	return doc, nil
}

// Verify parses content and discards the result.
func Verify(content string) error {
	_, err := Parse(content)
	return err
}

package template

import (
	"fmt"
	"strings"
)

// UnboundPlaceholderError reports placeholders that have no matching entry in
// the parameter set. Names holds every offending name, sorted and
// deduplicated, so callers can surface the full list in one pass.
type UnboundPlaceholderError struct {
	Template string
	Names    []string
}

func (e *UnboundPlaceholderError) Error() string {
	return fmt.Sprintf("template: unbound placeholder(s) %s in %q", strings.Join(e.Names, ", "), e.Template)
}

// MalformedPlaceholderError reports a placeholder token that cannot be
// parsed: unclosed delimiters, an empty name, or a name that is not a valid
// identifier.
type MalformedPlaceholderError struct {
	Template string
	Line     int
	Reason   string
}

func (e *MalformedPlaceholderError) Error() string {
	return fmt.Sprintf("template: %s:%d: malformed placeholder: %s", e.Template, e.Line, e.Reason)
}

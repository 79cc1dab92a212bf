// Package template implements the strict placeholder renderer used for
// scaffold configuration files. Templates are plain text documents carrying
// `{{ name }}` tokens; rendering substitutes every token with a caller
// supplied value and passes all other text through verbatim.
//
// The renderer is deliberately stricter than general purpose template
// engines: every placeholder must resolve or rendering fails with
// [UnboundPlaceholderError], and a syntactically broken token fails parsing
// with [MalformedPlaceholderError]. Scaffolds that want filters or
// conditionals opt into the pongo2 renderer instead.
package template

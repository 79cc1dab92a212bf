package scaffold

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed all:scaffolds
var embeddedScaffolds embed.FS

// StarterName is the built-in scaffold modeled on a classic INI-configured
// web application skeleton.
const StarterName = "starter"

// EmbeddedScaffolds returns the built-in scaffolds keyed by name, each
// rooted at its own directory.
func EmbeddedScaffolds() map[string]fs.FS {
	entries, err := embeddedScaffolds.ReadDir("scaffolds")
	if err != nil {
		return nil
	}

	out := make(map[string]fs.FS, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub, err := fs.Sub(embeddedScaffolds, "scaffolds/"+entry.Name())
		if err != nil {
			continue
		}
		out[entry.Name()] = sub
	}
	return out
}

// EmbeddedScaffold returns one built-in scaffold by name.
func EmbeddedScaffold(name string) (fs.FS, bool) {
	fsys, ok := EmbeddedScaffolds()[name]
	return fsys, ok
}

// EmbeddedNames lists the built-in scaffold names, sorted.
func EmbeddedNames() []string {
	scaffolds := EmbeddedScaffolds()
	names := make([]string, 0, len(scaffolds))
	for name := range scaffolds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

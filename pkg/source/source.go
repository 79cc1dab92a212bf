// Package source identifies where a scaffold lives so the orchestrator can
// operate on directories, fs.FS values, or embedded scaffolds without leaking
// implementation details.
package source

import (
	"io/fs"
	"path/filepath"
)

// Source identifies a scaffold location.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the resolver modalities.
type SourceKind string

const (
	SourceKindDir      SourceKind = "dir"
	SourceKindFS       SourceKind = "fs"
	SourceKindEmbedded SourceKind = "embedded"
)

// dirSource identifies an on-disk scaffold directory.
type dirSource struct {
	path string
}

func (s dirSource) Location() string {
	return s.path
}

func (s dirSource) Kind() SourceKind {
	return SourceKindDir
}

// FromDir returns a Source pointing at a scaffold directory on disk.
func FromDir(path string) Source {
	return dirSource{path: filepath.Clean(path)}
}

// fsSource wraps a caller supplied fs.FS.
type fsSource struct {
	label string
	fsys  fs.FS
}

func (s fsSource) Location() string {
	return s.label
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// FS returns the wrapped filesystem.
func (s fsSource) FS() fs.FS {
	return s.fsys
}

// FromFS returns a Source wrapping an fs.FS. The label only appears in error
// messages and logs.
func FromFS(fsys fs.FS, label string) Source {
	return fsSource{fsys: fsys, label: label}
}

// embeddedSource names a scaffold shipped inside the module.
type embeddedSource struct {
	name string
}

func (s embeddedSource) Location() string {
	return s.name
}

func (s embeddedSource) Kind() SourceKind {
	return SourceKindEmbedded
}

// FromEmbedded returns a Source naming one of the built-in scaffolds.
func FromEmbedded(name string) Source {
	return embeddedSource{name: name}
}

// FSProvider is implemented by sources that directly carry a filesystem.
type FSProvider interface {
	FS() fs.FS
}

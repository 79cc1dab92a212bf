package source

import (
	"testing"
	"testing/fstest"
)

func TestFromDir(t *testing.T) {
	s := FromDir("./scaffolds/starter/")
	if s.Kind() != SourceKindDir {
		t.Fatalf("unexpected kind %q", s.Kind())
	}
	if s.Location() != "scaffolds/starter" {
		t.Fatalf("expected cleaned path, got %q", s.Location())
	}
}

func TestFromFS(t *testing.T) {
	fsys := fstest.MapFS{"scaffold.yaml": &fstest.MapFile{Data: []byte("name: x")}}
	s := FromFS(fsys, "testdata")

	if s.Kind() != SourceKindFS || s.Location() != "testdata" {
		t.Fatalf("unexpected source %v %q", s.Kind(), s.Location())
	}

	provider, ok := s.(FSProvider)
	if !ok {
		t.Fatal("fs source should implement FSProvider")
	}
	if _, err := provider.FS().Open("scaffold.yaml"); err != nil {
		t.Fatalf("open through provider: %v", err)
	}
}

func TestFromEmbedded(t *testing.T) {
	s := FromEmbedded("starter")
	if s.Kind() != SourceKindEmbedded || s.Location() != "starter" {
		t.Fatalf("unexpected source %v %q", s.Kind(), s.Location())
	}
}

package scrape

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSources(t *testing.T) {
	path := writeSourcesFile(t, `sources:
  - award: Hugo
    url: https://example.org/hugo
  - award: World Fantasy
    url: https://example.org/wfa
`)

	sources, err := LoadSources(path, nil)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}
	if sources[0].Name() != "Hugo" {
		t.Errorf("sources[0].Name() = %q, want Hugo", sources[0].Name())
	}
	ws, ok := sources[1].(*WikipediaSource)
	if !ok {
		t.Fatalf("sources[1] has type %T, want *WikipediaSource", sources[1])
	}
	if ws.URL != "https://example.org/wfa" {
		t.Errorf("URL = %q", ws.URL)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	_, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err == nil || !strings.Contains(err.Error(), "reading sources file") {
		t.Errorf("expected read error, got: %v", err)
	}
}

func TestLoadSourcesEmptyList(t *testing.T) {
	path := writeSourcesFile(t, "sources: []\n")
	_, err := LoadSources(path, nil)
	if err == nil || !strings.Contains(err.Error(), "no sources") {
		t.Errorf("expected empty-list error, got: %v", err)
	}
}

func TestLoadSourcesMissingFields(t *testing.T) {
	path := writeSourcesFile(t, `sources:
  - award: Hugo
`)
	_, err := LoadSources(path, nil)
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Errorf("expected validation error, got: %v", err)
	}
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources(nil)
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}
	names := []string{sources[0].Name(), sources[1].Name()}
	if names[0] != "Hugo" || names[1] != "Nebula" {
		t.Errorf("names = %v, want [Hugo Nebula]", names)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"net/http"
	"os"

	"go.yaml.in/yaml/v3"
)

// Default award pages scraped when no sources file is given.
const (
	hugoPageURL   = "https://en.wikipedia.org/wiki/Hugo_Award_for_Best_Novel"
	nebulaPageURL = "https://en.wikipedia.org/wiki/Nebula_Award_for_Best_Novel"
)

// SourceDef describes one award page in a sources YAML file.
type SourceDef struct {
	Award string `yaml:"award"`
	URL   string `yaml:"url"`
}

// SourceFile is the on-disk list of award pages to scrape. Users extend
// the default Hugo/Nebula set (e.g. with the World Fantasy Award page)
// without rebuilding.
type SourceFile struct {
	Sources []SourceDef `yaml:"sources"`
}

// DefaultSources returns the built-in Hugo and Nebula Best Novel sources.
func DefaultSources(client *http.Client) []Source {
	return []Source{
		&WikipediaSource{Award: "Hugo", URL: hugoPageURL, Client: client},
		&WikipediaSource{Award: "Nebula", URL: nebulaPageURL, Client: client},
	}
}

// LoadSources reads award page definitions from a YAML file.
func LoadSources(path string, client *http.Client) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var sf SourceFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}
	if len(sf.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s defines no sources", path)
	}

	sources := make([]Source, 0, len(sf.Sources))
	for i, def := range sf.Sources {
		if def.Award == "" || def.URL == "" {
			return nil, fmt.Errorf("source %d in %s: award and url are required", i+1, path)
		}
		sources = append(sources, &WikipediaSource{Award: def.Award, URL: def.URL, Client: client})
	}
	return sources, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fills in novel metadata from public book APIs.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/novel-search/internal/catalog"
	"github.com/pdiddy/novel-search/pkg/types"
)

// Backend looks up metadata for one novel. Implementations must return
// an empty NovelMetadata (not an error) when the novel is simply not
// found.
type Backend interface {
	// Name identifies the backend in warnings and metadata sources.
	Name() string

	// Lookup fetches metadata for the given title and award year.
	Lookup(ctx context.Context, title string, year int, cfg types.EnrichConfig) (types.NovelMetadata, error)
}

// Backends returns the backends to use for cfg: Open Library always,
// Google Books when an API key is configured.
func Backends(client *http.Client, cfg types.EnrichConfig) []Backend {
	backends := []Backend{&OpenLibrary{Client: client}}
	if cfg.GoogleBooksAPIKey != "" {
		backends = append(backends, &GoogleBooks{Client: client})
	}
	return backends
}

// Summary reports the outcome of an enrichment run.
type Summary struct {
	Enriched int
	Skipped  int
	Failed   int
}

// Enricher runs metadata lookups over the catalog. Lookups are cached
// by normalized title and year so repeated runs over an unchanged shelf
// do not re-query the APIs.
type Enricher struct {
	store    *catalog.Store
	backends []Backend
	cache    *lru.Cache[string, types.NovelMetadata]
}

// NewEnricher builds an Enricher over the given store and backends.
func NewEnricher(store *catalog.Store, backends []Backend, cfg types.EnrichConfig) (*Enricher, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("no enrichment backends configured")
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 256
	}
	cache, err := lru.New[string, types.NovelMetadata](size)
	if err != nil {
		return nil, fmt.Errorf("creating lookup cache: %w", err)
	}
	return &Enricher{store: store, backends: backends, cache: cache}, nil
}

// Run enriches up to limit novels that are missing metadata. With force
// set, novels that already carry metadata are looked up again, though
// existing fields are never overwritten. Backend failures are reported
// on w and counted, not fatal.
func (e *Enricher) Run(ctx context.Context, limit int, force bool, cfg types.EnrichConfig, w io.Writer) (Summary, error) {
	novels, err := e.store.ListForEnrich(ctx, limit, force)
	if err != nil {
		return Summary{}, fmt.Errorf("listing novels to enrich: %w", err)
	}

	var summary Summary
	for _, n := range novels {
		meta, err := e.lookup(ctx, n.Title, n.Year, cfg, w)
		if err != nil {
			return summary, err
		}
		if meta.IsEmpty() {
			if meta.Source == "" {
				// Every backend errored for this novel.
				summary.Failed++
			} else {
				summary.Skipped++
			}
			continue
		}

		changed, err := e.store.ApplyMetadata(ctx, n.ID, meta)
		if err != nil {
			return summary, fmt.Errorf("applying metadata for %q: %w", n.Title, err)
		}
		if changed {
			summary.Enriched++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}

// lookup queries the backends in order, merging their results so later
// backends only fill fields earlier ones left empty. The merged result
// is cached.
func (e *Enricher) lookup(ctx context.Context, title string, year int, cfg types.EnrichConfig, w io.Writer) (types.NovelMetadata, error) {
	key := types.NovelKey(title, year)
	if meta, ok := e.cache.Get(key); ok {
		return meta, nil
	}

	var merged types.NovelMetadata
	for _, backend := range e.backends {
		if err := ctx.Err(); err != nil {
			return types.NovelMetadata{}, err
		}
		meta, err := backend.Lookup(ctx, title, year, cfg)
		if err != nil {
			fmt.Fprintf(w, "Warning: %s lookup for %q failed: %v\n", backend.Name(), title, err)
			continue
		}
		merged = mergeMetadata(merged, meta, backend.Name())
		if complete(merged) {
			break
		}
	}

	e.cache.Add(key, merged)
	return merged, nil
}

// mergeMetadata fills the empty fields of dst from src. The source name
// records the first backend that contributed anything.
func mergeMetadata(dst, src types.NovelMetadata, source string) types.NovelMetadata {
	if src.IsEmpty() {
		if dst.Source == "" {
			// Remember that a backend answered, even with nothing.
			dst.Source = source
		}
		return dst
	}
	if len(dst.Authors) == 0 {
		dst.Authors = src.Authors
	}
	if dst.FirstPublished == 0 {
		dst.FirstPublished = src.FirstPublished
	}
	if len(dst.Subjects) == 0 {
		dst.Subjects = src.Subjects
	}
	if dst.OpenLibraryID == "" {
		dst.OpenLibraryID = src.OpenLibraryID
	}
	if dst.Source == "" || dst.Source == source {
		dst.Source = source
	}
	return dst
}

func complete(m types.NovelMetadata) bool {
	return len(m.Authors) > 0 && m.FirstPublished != 0 &&
		len(m.Subjects) > 0 && m.OpenLibraryID != ""
}

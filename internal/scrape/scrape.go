// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape fetches award pages and turns their novel tables into
// catalog entries.
package scrape

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pdiddy/novel-search/pkg/types"
)

// Source fetches award entries from a single award page. Each source
// (Hugo, Nebula) implements this interface per the Strategy pattern.
type Source interface {
	Name() string
	Fetch(ctx context.Context, cfg types.ScrapeConfig) ([]types.Novel, error)
}

// Output holds the scraped novels and per-source statistics.
type Output struct {
	Novels       []types.Novel
	Merged       int // entries folded together because they appeared under several awards
	SourceCounts map[string]int
	SourceErrors []string
}

// Scrape fans out to all sources concurrently, folds entries that appear
// under more than one award into a single novel, filters by award year,
// and returns the result sorted ascending by (year, title).
func Scrape(ctx context.Context, sources []Source, cfg types.ScrapeConfig, w io.Writer) (Output, error) {
	if len(sources) == 0 {
		return Output{}, fmt.Errorf("no award sources configured")
	}

	type sourceResult struct {
		novels []types.Novel
		err    error
		name   string
	}

	ch := make(chan sourceResult, len(sources))
	var wg sync.WaitGroup

	for _, s := range sources {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			novels, err := s.Fetch(ctx, cfg)
			ch <- sourceResult{novels: novels, err: err, name: s.Name()}
		}(s)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	out := Output{SourceCounts: make(map[string]int)}
	var all []types.Novel
	for sr := range ch {
		if sr.err != nil {
			msg := fmt.Sprintf("%s: %v", sr.name, sr.err)
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", sr.name, sr.err)
			continue
		}
		out.SourceCounts[sr.name] = len(sr.novels)
		all = append(all, sr.novels...)
	}

	if len(out.SourceErrors) == len(sources) {
		return Output{}, fmt.Errorf("all award sources failed")
	}

	merged, folded := mergeEntries(all)

	if cfg.After > 0 {
		kept := merged[:0]
		for _, n := range merged {
			if n.Year >= cfg.After {
				kept = append(kept, n)
			}
		}
		merged = kept
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Year != merged[j].Year {
			return merged[i].Year < merged[j].Year
		}
		return merged[i].Title < merged[j].Title
	})

	out.Novels = merged
	out.Merged = folded
	return out, nil
}

// mergeEntries folds entries sharing (normalized title, year) into one,
// combining their award names. A novel that won both the Hugo and the
// Nebula comes back once with award "Hugo|Nebula".
func mergeEntries(novels []types.Novel) ([]types.Novel, int) {
	seen := make(map[string]int) // identity key → index in merged
	var merged []types.Novel
	folded := 0

	for _, n := range novels {
		key := types.NovelKey(n.Title, n.Year)
		if idx, ok := seen[key]; ok {
			merged[idx].Award = types.MergeAwards(merged[idx].Award, n.Award)
			folded++
			continue
		}
		seen[key] = len(merged)
		merged = append(merged, n)
	}
	return merged, folded
}

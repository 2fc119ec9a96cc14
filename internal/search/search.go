// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs ranked queries over the local novel catalog.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/novel-search/internal/catalog"
	"github.com/pdiddy/novel-search/pkg/types"
)

// Options holds the search parameters.
type Options struct {
	Text        string
	Award       string
	YearFrom    int
	YearTo      int
	POV         string
	UnreadOnly  bool
	MaxResults  int
	RecencyBias bool
}

// Result is a catalog novel with its relevance score.
type Result struct {
	types.Novel
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// Output holds the ranked results.
type Output struct {
	Results []Result
}

// Run queries the catalog and ranks the results. FTS results come back
// relevance-ordered from SQLite and get a position-based score; the
// optional recency bias then boosts recent award years and re-sorts.
func Run(ctx context.Context, store *catalog.Store, opts Options, cfg types.SearchConfig) (Output, error) {
	novels, err := store.Retrieve(ctx, catalog.QueryOptions{
		Text:       opts.Text,
		Award:      opts.Award,
		YearFrom:   opts.YearFrom,
		YearTo:     opts.YearTo,
		POV:        opts.POV,
		UnreadOnly: opts.UnreadOnly,
		MaxResults: opts.MaxResults,
	})
	if err != nil {
		return Output{}, err
	}

	total := len(novels)
	results := make([]Result, total)
	for i, n := range novels {
		score := 1.0
		if total > 1 {
			score = 1.0 - float64(i)/float64(total-1)*0.9
		}
		results[i] = Result{Novel: n, RelevanceScore: score}
	}

	if opts.RecencyBias && cfg.RecencyWindowYears > 0 {
		applyRecencyBias(results, cfg.RecencyWindowYears)
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}

	return Output{Results: results}, nil
}

// applyRecencyBias boosts scores for novels whose award year falls
// within the window, scaled by how recent they are.
func applyRecencyBias(results []Result, windowYears int) {
	currentYear := time.Now().Year()
	for i := range results {
		age := currentYear - results[i].Year
		if age < 0 {
			age = 0
		}
		if age <= windowYears {
			boost := 0.2 * (1.0 - float64(age)/float64(windowYears))
			results[i].RelevanceScore = math.Min(1.0, results[i].RelevanceScore+boost)
		}
	}
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-44s  %-20s  %-12s  %-4s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Award", "Year", "POV", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, r := range out.Results {
		title := truncate(r.Title, 44)
		fmt.Fprintf(w, "%-4d  %-44s  %-20s  %-12s  %-4d  %-6s  %.2f\n",
			i+1, title, formatAuthors(r.Authors), r.Award, r.Year, r.POV, r.RelevanceScore)
	}

	fmt.Fprintf(w, "\n%d results\n", len(out.Results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Results)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max characters. It slices on rune
// boundaries so accented titles stay valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/novel-search/internal/httputil"
	"github.com/pdiddy/novel-search/pkg/types"
)

// googleBooksVolumesBase is the Google Books volume search endpoint.
// Tests point it at an httptest server.
var googleBooksVolumesBase = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooks looks up novels on the Google Books volumes API. It
// requires an API key and is used as a fallback behind Open Library.
type GoogleBooks struct {
	Client *http.Client
}

func (g *GoogleBooks) Name() string { return "googlebooks" }

type googleBooksResponse struct {
	Items []struct {
		VolumeInfo googleVolumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type googleVolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"publishedDate"`
	Categories    []string `json:"categories"`
}

// Lookup searches Google Books by title and returns the best match.
func (g *GoogleBooks) Lookup(ctx context.Context, title string, year int, cfg types.EnrichConfig) (types.NovelMetadata, error) {
	if cfg.GoogleBooksAPIKey == "" {
		return types.NovelMetadata{}, fmt.Errorf("google books API key not configured")
	}

	query := url.Values{}
	query.Set("q", "intitle:"+title)
	query.Set("maxResults", "5")
	query.Set("key", cfg.GoogleBooksAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		googleBooksVolumesBase+"?"+query.Encode(), nil)
	if err != nil {
		return types.NovelMetadata{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent(cfg))

	resp, err := httputil.DoWithRetry(ctx, g.Client, req, 0)
	if err != nil {
		return types.NovelMetadata{}, fmt.Errorf("querying Google Books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NovelMetadata{}, fmt.Errorf("Google Books returned HTTP %d", resp.StatusCode)
	}

	var parsed googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return types.NovelMetadata{}, fmt.Errorf("decoding Google Books response: %w", err)
	}

	info, ok := pickVolume(parsed, title)
	if !ok {
		return types.NovelMetadata{}, nil
	}

	return types.NovelMetadata{
		Authors:        info.Authors,
		FirstPublished: publishedYear(info.PublishedDate),
		Subjects:       info.Categories,
		Source:         g.Name(),
	}, nil
}

// pickVolume prefers an exact normalized title match, then the first item.
func pickVolume(parsed googleBooksResponse, title string) (googleVolumeInfo, bool) {
	if len(parsed.Items) == 0 {
		return googleVolumeInfo{}, false
	}
	want := types.NormalizeTitle(title)
	for _, item := range parsed.Items {
		if types.NormalizeTitle(item.VolumeInfo.Title) == want {
			return item.VolumeInfo, true
		}
	}
	return parsed.Items[0].VolumeInfo, true
}

// publishedYear extracts the year from dates like "1965", "1965-08",
// or "1965-08-01". Unparseable dates yield zero.
func publishedYear(date string) int {
	year, _, _ := strings.Cut(date, "-")
	n, err := strconv.Atoi(year)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/novel-search/internal/httputil"
	"github.com/pdiddy/novel-search/pkg/types"
)

// WikipediaSource fetches one award page over HTTP and parses its
// wikitables. Tests point URL at an httptest server.
type WikipediaSource struct {
	// Award is the award name recorded on each entry (e.g. "Hugo").
	Award string

	// URL is the award page address.
	URL string

	Client *http.Client
}

// Name returns the award name this source contributes.
func (s *WikipediaSource) Name() string { return s.Award }

// Fetch downloads the award page and returns its novel entries.
func (s *WikipediaSource) Fetch(ctx context.Context, cfg types.ScrapeConfig) ([]types.Novel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", s.URL, resp.StatusCode)
	}

	novels, err := parseAwardTables(resp.Body, s.Award)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.URL, err)
	}
	return novels, nil
}

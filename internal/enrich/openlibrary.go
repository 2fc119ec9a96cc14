// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/novel-search/internal/httputil"
	"github.com/pdiddy/novel-search/pkg/types"
)

// openLibrarySearchBase is the Open Library search endpoint. Tests point
// it at an httptest server.
var openLibrarySearchBase = "https://openlibrary.org/search.json"

const openLibraryDocLimit = 5

// OpenLibrary looks up novels on the Open Library search API. No API
// key is required; Open Library asks for a descriptive User-Agent with
// contact information instead.
type OpenLibrary struct {
	Client *http.Client
}

func (o *OpenLibrary) Name() string { return "openlibrary" }

type openLibraryResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Subject          []string `json:"subject"`
	Key              string   `json:"key"`
}

// Lookup searches Open Library by title and returns the best match.
func (o *OpenLibrary) Lookup(ctx context.Context, title string, year int, cfg types.EnrichConfig) (types.NovelMetadata, error) {
	query := url.Values{}
	query.Set("title", title)
	query.Set("limit", fmt.Sprint(openLibraryDocLimit))
	query.Set("fields", "title,author_name,first_publish_year,subject,key")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		openLibrarySearchBase+"?"+query.Encode(), nil)
	if err != nil {
		return types.NovelMetadata{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent(cfg))

	resp, err := httputil.DoWithRetry(ctx, o.Client, req, 0)
	if err != nil {
		return types.NovelMetadata{}, fmt.Errorf("querying Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NovelMetadata{}, fmt.Errorf("Open Library returned HTTP %d", resp.StatusCode)
	}

	var parsed openLibraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return types.NovelMetadata{}, fmt.Errorf("decoding Open Library response: %w", err)
	}

	doc, ok := pickDoc(parsed.Docs, title, year)
	if !ok {
		return types.NovelMetadata{}, nil
	}

	return types.NovelMetadata{
		Authors:        doc.AuthorName,
		FirstPublished: doc.FirstPublishYear,
		Subjects:       trimSubjects(doc.Subject),
		OpenLibraryID:  doc.Key,
		Source:         o.Name(),
	}, nil
}

// pickDoc prefers an exact title match published no later than the
// award year, then any exact title match, then the first doc.
func pickDoc(docs []openLibraryDoc, title string, year int) (openLibraryDoc, bool) {
	if len(docs) == 0 {
		return openLibraryDoc{}, false
	}
	want := types.NormalizeTitle(title)
	for _, d := range docs {
		if types.NormalizeTitle(d.Title) == want &&
			d.FirstPublishYear > 0 && d.FirstPublishYear <= year {
			return d, true
		}
	}
	for _, d := range docs {
		if types.NormalizeTitle(d.Title) == want {
			return d, true
		}
	}
	return docs[0], true
}

// trimSubjects caps the subject list; Open Library returns hundreds for
// popular works.
func trimSubjects(subjects []string) []string {
	const max = 10
	if len(subjects) > max {
		return subjects[:max]
	}
	return subjects
}

func userAgent(cfg types.EnrichConfig) string {
	if cfg.ContactEmail != "" {
		return fmt.Sprintf("%s (%s)", cfg.UserAgent, cfg.ContactEmail)
	}
	return cfg.UserAgent
}

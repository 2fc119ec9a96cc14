package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/novel-search/pkg/types"
)

func seedShelf(t *testing.T, s *Store) {
	t.Helper()
	mustUpsert(t, s,
		types.Novel{Title: "Ancillary Justice", Award: "Hugo|Nebula", Year: 2014, Authors: []string{"Ann Leckie"}},
		types.Novel{Title: "Ancillary Sword", Award: "Nebula", Year: 2015, Authors: []string{"Ann Leckie"}},
		types.Novel{Title: "The Fifth Season", Award: "Hugo", Year: 2016, Authors: []string{"N. K. Jemisin"}},
		types.Novel{Title: "Network Effect", Award: "Nebula", Year: 2021, Authors: []string{"Martha Wells"}},
	)
}

func TestRetrieveFullText(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	novels, err := s.Retrieve(context.Background(), QueryOptions{Text: "ancillary"})
	if err != nil {
		t.Fatal(err)
	}
	if len(novels) != 2 {
		t.Fatalf("len = %d, want 2", len(novels))
	}
	for _, n := range novels {
		if !strings.Contains(strings.ToLower(n.Title), "ancillary") {
			t.Errorf("unexpected match: %q", n.Title)
		}
	}
}

func TestRetrieveFullTextMatchesAuthors(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	novels, err := s.Retrieve(context.Background(), QueryOptions{Text: "jemisin"})
	if err != nil {
		t.Fatal(err)
	}
	if len(novels) != 1 || novels[0].Title != "The Fifth Season" {
		t.Errorf("novels = %+v, want The Fifth Season", novels)
	}
}

func TestRetrieveAwardFilter(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	novels, err := s.Retrieve(context.Background(), QueryOptions{Award: "Hugo"})
	if err != nil {
		t.Fatal(err)
	}
	// Both the pure Hugo winner and the dual-award winner match.
	if len(novels) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(novels), novels)
	}
	for _, n := range novels {
		if !n.HasAward("Hugo") {
			t.Errorf("%q does not carry Hugo", n.Title)
		}
	}
}

func TestRetrieveYearRange(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	novels, err := s.Retrieve(context.Background(), QueryOptions{YearFrom: 2015, YearTo: 2016})
	if err != nil {
		t.Fatal(err)
	}
	if len(novels) != 2 {
		t.Fatalf("len = %d, want 2", len(novels))
	}
}

func TestRetrieveStructuredOrdersByYearDesc(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	novels, err := s.Retrieve(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(novels); i++ {
		if novels[i].Year > novels[i-1].Year {
			t.Errorf("results not in descending year order: %d before %d",
				novels[i-1].Year, novels[i].Year)
		}
	}
}

func TestRetrievePOVAndUnreadFilters(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	all := retrieveAll(t, s)
	if err := s.SetPOV(context.Background(), all[0].ID, types.POVFirst, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPOV(context.Background(), all[1].ID, types.POVFirst, false); err != nil {
		t.Fatal(err)
	}

	firsts, err := s.Retrieve(context.Background(), QueryOptions{POV: "first"})
	if err != nil {
		t.Fatal(err)
	}
	if len(firsts) != 2 {
		t.Errorf("POV filter: len = %d, want 2", len(firsts))
	}

	unreadFirsts, err := s.Retrieve(context.Background(), QueryOptions{POV: "first", UnreadOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(unreadFirsts) != 1 {
		t.Errorf("unread filter: len = %d, want 1", len(unreadFirsts))
	}

	unprocessed, err := s.Retrieve(context.Background(), QueryOptions{UnprocessedOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(unprocessed) != 2 {
		t.Errorf("unprocessed filter: len = %d, want 2", len(unprocessed))
	}
}

func TestRetrieveLimit(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	novels, err := s.Retrieve(context.Background(), QueryOptions{MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(novels) != 2 {
		t.Errorf("len = %d, want 2", len(novels))
	}
}

func TestRetrieveReportsCorruptedMetadata(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, types.Novel{Title: "Dune", Award: "Hugo", Year: 1966})

	if _, err := s.db.Exec(`UPDATE novels SET authors = 'not-json'`); err != nil {
		t.Fatal(err)
	}

	_, err := s.Retrieve(context.Background(), QueryOptions{})
	if err == nil || !strings.Contains(err.Error(), "decoding authors") {
		t.Errorf("expected decode error for corrupted authors column, got: %v", err)
	}
}

// --- NextUnprocessed ---

func TestNextUnprocessedOrder(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	n, err := s.NextUnprocessed(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if n == nil || n.Title != "Network Effect" {
		t.Fatalf("next = %+v, want the most recent novel", n)
	}

	if err := s.SetPOV(context.Background(), n.ID, types.POVThird, false); err != nil {
		t.Fatal(err)
	}
	n, err = s.NextUnprocessed(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if n == nil || n.Title != "The Fifth Season" {
		t.Fatalf("next = %+v, want The Fifth Season", n)
	}
}

func TestNextUnprocessedAwardFilter(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	n, err := s.NextUnprocessed(context.Background(), "Hugo")
	if err != nil {
		t.Fatal(err)
	}
	if n == nil || n.Title != "The Fifth Season" {
		t.Fatalf("next = %+v, want The Fifth Season", n)
	}
}

func TestNextUnprocessedExhausted(t *testing.T) {
	s := testStore(t)
	mustUpsert(t, s, types.Novel{Title: "Dune", Award: "Hugo", Year: 1966})

	n, err := s.NextUnprocessed(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetPOV(context.Background(), n.ID, types.POVThird, true); err != nil {
		t.Fatal(err)
	}

	n, err = s.NextUnprocessed(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if n != nil {
		t.Errorf("next = %+v, want nil when all processed", n)
	}
}

// --- ListForEnrich ---

func TestListForEnrich(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)
	mustUpsert(t, s, types.Novel{Title: "Bare Novel", Award: "Hugo", Year: 2022})

	// Seeded novels have authors but no first_published, so all qualify;
	// cap the limit to check ordering and then fully enrich one.
	novels, err := s.ListForEnrich(context.Background(), 100, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(novels) != 5 {
		t.Fatalf("len = %d, want 5", len(novels))
	}
	if novels[0].Title != "Bare Novel" {
		t.Errorf("novels[0] = %q, want most recent first", novels[0].Title)
	}

	if _, err := s.ApplyMetadata(context.Background(), novels[0].ID, types.NovelMetadata{
		Authors:        []string{"Someone"},
		FirstPublished: 2021,
	}); err != nil {
		t.Fatal(err)
	}

	novels, err = s.ListForEnrich(context.Background(), 100, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(novels) != 4 {
		t.Errorf("len = %d, want 4 after enrichment", len(novels))
	}

	forced, err := s.ListForEnrich(context.Background(), 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(forced) != 5 {
		t.Errorf("forced len = %d, want 5", len(forced))
	}
}

// --- Summarize ---

func TestSummarize(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	all := retrieveAll(t, s)
	if err := s.SetPOV(context.Background(), all[0].ID, types.POVFirst, true); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 4 || stats.Processed != 1 || stats.Read != 1 {
		t.Errorf("stats = %+v", stats)
	}
	// The dual-award novel counts toward both awards.
	if stats.ByAward["Hugo"] != 2 || stats.ByAward["Nebula"] != 3 {
		t.Errorf("ByAward = %v", stats.ByAward)
	}
	if stats.ByPOV["first"] != 1 {
		t.Errorf("ByPOV = %v", stats.ByPOV)
	}
}

// --- Export ---

func TestExportYAMLAndJSON(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	yamlPath, err := s.ExportYAML(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []types.Novel
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("export.yaml does not parse: %v", err)
	}
	if len(fromYAML) != 4 {
		t.Errorf("YAML export len = %d, want 4", len(fromYAML))
	}

	jsonPath, err := s.ExportJSON(context.Background(), QueryOptions{Award: "Hugo"})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(jsonPath) != "export.json" {
		t.Errorf("jsonPath = %q", jsonPath)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []types.Novel
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("export.json does not parse: %v", err)
	}
	if len(fromJSON) != 2 {
		t.Errorf("filtered JSON export len = %d, want 2", len(fromJSON))
	}
}

func TestExportHonorsLimit(t *testing.T) {
	s := testStore(t)
	seedShelf(t, s)

	jsonPath, err := s.ExportJSON(context.Background(), QueryOptions{MaxResults: 1})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var novels []types.Novel
	if err := json.Unmarshal(data, &novels); err != nil {
		t.Fatalf("export.json does not parse: %v", err)
	}
	if len(novels) != 1 {
		t.Errorf("export with limit 1 wrote %d novels, want 1", len(novels))
	}
}

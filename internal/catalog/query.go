// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/novel-search/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Text is the FTS5 full-text search string over title and authors.
	Text string

	// Award filters novels carrying the named award.
	Award string

	// YearFrom and YearTo bound the award year (inclusive, zero = open).
	YearFrom int
	YearTo   int

	// POV filters by assigned point of view.
	POV string

	// UnreadOnly keeps only novels not yet marked read.
	UnreadOnly bool

	// UnprocessedOnly keeps only novels without an assigned POV.
	UnprocessedOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

const selectColumns = `n.id, n.title, n.award, n.year, n.pov, n.is_read,
	n.authors, n.first_published, n.subjects, n.openlibrary_id, n.created_at, n.updated_at`

// Retrieve queries the catalog with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries come back most recent award year first.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Novel, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Text != ""
	)

	if useFTS {
		qb.WriteString(`SELECT ` + selectColumns + `
			FROM novels_fts
			JOIN novels n ON n.id = novels_fts.rowid
			WHERE novels_fts MATCH ?`)
		args = append(args, opts.Text)
	} else {
		qb.WriteString(`SELECT ` + selectColumns + `
			FROM novels n
			WHERE 1=1`)
	}

	if opts.Award != "" {
		qb.WriteString(` AND ` + awardMatch)
		args = append(args, awardMatchArgs(opts.Award)...)
	}
	if opts.YearFrom > 0 {
		qb.WriteString(` AND n.year >= ?`)
		args = append(args, opts.YearFrom)
	}
	if opts.YearTo > 0 {
		qb.WriteString(` AND n.year <= ?`)
		args = append(args, opts.YearTo)
	}
	if opts.POV != "" {
		qb.WriteString(` AND n.pov = ?`)
		args = append(args, opts.POV)
	}
	if opts.UnreadOnly {
		qb.WriteString(` AND n.is_read = 0`)
	}
	if opts.UnprocessedOnly {
		qb.WriteString(` AND n.pov = ''`)
	}

	if useFTS {
		qb.WriteString(` ORDER BY novels_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY n.year DESC, n.title`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var novels []types.Novel
	for rows.Next() {
		n, err := scanNovel(rows)
		if err != nil {
			return nil, err
		}
		novels = append(novels, n)
	}
	return novels, rows.Err()
}

// NextUnprocessed returns the most recent novel without an assigned POV,
// optionally restricted to one award. Returns nil when nothing is left.
func (s *Store) NextUnprocessed(ctx context.Context, award string) (*types.Novel, error) {
	q := `SELECT ` + selectColumns + ` FROM novels n WHERE n.pov = ''`
	var args []any
	if award != "" {
		q += ` AND ` + awardMatch
		args = append(args, awardMatchArgs(award)...)
	}
	q += ` ORDER BY n.year DESC, n.title LIMIT 1`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying next unprocessed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	n, err := scanNovel(rows)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListForEnrich returns novels still missing metadata, most recent
// first. With force set, all novels qualify.
func (s *Store) ListForEnrich(ctx context.Context, limit int, force bool) ([]types.Novel, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	q := `SELECT ` + selectColumns + ` FROM novels n`
	if !force {
		q += ` WHERE n.authors IS NULL OR n.first_published = 0`
	}
	q += ` ORDER BY n.year DESC, n.title LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying for enrichment: %w", err)
	}
	defer rows.Close()

	var novels []types.Novel
	for rows.Next() {
		n, err := scanNovel(rows)
		if err != nil {
			return nil, err
		}
		novels = append(novels, n)
	}
	return novels, rows.Err()
}

// Stats summarizes the catalog.
type Stats struct {
	Total     int
	Processed int
	Read      int
	ByAward   map[string]int
	ByPOV     map[string]int
}

// Summarize counts novels by award, POV, and read state. Pipe-joined
// award sets count toward each component award.
func (s *Store) Summarize(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT award, pov, is_read FROM novels`)
	if err != nil {
		return Stats{}, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	stats := Stats{ByAward: make(map[string]int), ByPOV: make(map[string]int)}
	for rows.Next() {
		var award, pov string
		var read bool
		if err := rows.Scan(&award, &pov, &read); err != nil {
			return Stats{}, fmt.Errorf("scanning row: %w", err)
		}

		stats.Total++
		if pov != "" {
			stats.Processed++
			stats.ByPOV[pov]++
		}
		if read {
			stats.Read++
		}
		for _, a := range strings.Split(award, "|") {
			if a != "" {
				stats.ByAward[a]++
			}
		}
	}
	return stats, rows.Err()
}

// awardMatch matches an award name inside the pipe-joined award column.
const awardMatch = `(n.award = ? OR n.award LIKE ? OR n.award LIKE ? OR n.award LIKE ?)`

func awardMatchArgs(award string) []any {
	return []any{award, award + "|%", "%|" + award, "%|" + award + "|%"}
}

// scanNovel reads one row produced with selectColumns.
func scanNovel(rows *sql.Rows) (types.Novel, error) {
	var (
		n                    types.Novel
		pov                  string
		authors, subjects    sql.NullString
		createdAt, updatedAt string
	)

	if err := rows.Scan(
		&n.ID, &n.Title, &n.Award, &n.Year, &pov, &n.Read,
		&authors, &n.FirstPublished, &subjects, &n.OpenLibraryID,
		&createdAt, &updatedAt,
	); err != nil {
		return types.Novel{}, fmt.Errorf("scanning row: %w", err)
	}

	n.POV = types.POV(pov)
	if authors.Valid {
		if err := json.Unmarshal([]byte(authors.String), &n.Authors); err != nil {
			return types.Novel{}, fmt.Errorf("decoding authors for %q: %w", n.Title, err)
		}
	}
	if subjects.Valid {
		if err := json.Unmarshal([]byte(subjects.String), &n.Subjects); err != nil {
			return types.Novel{}, fmt.Errorf("decoding subjects for %q: %w", n.Title, err)
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		n.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		n.UpdatedAt = t
	}
	return n, nil
}

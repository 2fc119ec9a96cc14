// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists the novel shelf in a SQLite database and
// answers queries over it.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/novel-search/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "novels.db"
)

// Store manages the shelf SQLite database.
type Store struct {
	db         *sql.DB
	shelfDir   string
	maxResults int
}

// NewStore opens or creates the shelf database at shelfDir/index/novels.db.
// It creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	shelfDir := cfg.ShelfDir
	if shelfDir == "" {
		shelfDir = "shelf"
	}

	dbDir := filepath.Join(shelfDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		shelfDir:   shelfDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS novels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			novel_key TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			award TEXT NOT NULL,
			year INTEGER NOT NULL,
			pov TEXT NOT NULL DEFAULT '',
			is_read INTEGER NOT NULL DEFAULT 0,
			authors TEXT,
			first_published INTEGER NOT NULL DEFAULT 0,
			subjects TEXT,
			openlibrary_id TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_novels_year ON novels(year)`,
		`CREATE INDEX IF NOT EXISTS idx_novels_pov ON novels(pov)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='novels_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE novels_fts USING fts5(title, authors, content=novels, content_rowid=id)`,
			`CREATE TRIGGER novels_ai AFTER INSERT ON novels BEGIN
				INSERT INTO novels_fts(rowid, title, authors) VALUES (new.id, new.title, new.authors);
			END`,
			`CREATE TRIGGER novels_ad AFTER DELETE ON novels BEGIN
				INSERT INTO novels_fts(novels_fts, rowid, title, authors) VALUES('delete', old.id, old.title, old.authors);
			END`,
			`CREATE TRIGGER novels_au AFTER UPDATE ON novels BEGIN
				INSERT INTO novels_fts(novels_fts, rowid, title, authors) VALUES('delete', old.id, old.title, old.authors);
				INSERT INTO novels_fts(rowid, title, authors) VALUES (new.id, new.title, new.authors);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// UpsertSummary holds counts from a catalog update run.
type UpsertSummary struct {
	Added     int
	Merged    int
	Unchanged int
}

// Total returns the number of novels processed.
func (s UpsertSummary) Total() int {
	return s.Added + s.Merged + s.Unchanged
}

// Upsert merges scraped novels into the catalog. New (title, year) pairs
// are inserted; existing ones have their award sets combined and empty
// metadata filled. POV and read state always survive a re-scrape.
func (s *Store) Upsert(ctx context.Context, novels []types.Novel) (UpsertSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpsertSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	var summary UpsertSummary

	for _, n := range novels {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		key := types.NovelKey(n.Title, n.Year)

		var (
			id             int64
			award          string
			authors        sql.NullString
			firstPublished int
			subjects       sql.NullString
			olid           string
		)
		err := tx.QueryRowContext(ctx,
			`SELECT id, award, authors, first_published, subjects, openlibrary_id
			 FROM novels WHERE novel_key = ?`, key,
		).Scan(&id, &award, &authors, &firstPublished, &subjects, &olid)

		switch {
		case err == sql.ErrNoRows:
			_, err := tx.ExecContext(ctx,
				`INSERT INTO novels (novel_key, title, award, year, pov, is_read,
					authors, first_published, subjects, openlibrary_id, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				key, n.Title, n.Award, n.Year, string(n.POV), n.Read,
				marshalStrings(n.Authors), n.FirstPublished, marshalStrings(n.Subjects),
				n.OpenLibraryID, now, now,
			)
			if err != nil {
				return summary, fmt.Errorf("inserting %q: %w", n.Title, err)
			}
			summary.Added++

		case err != nil:
			return summary, fmt.Errorf("looking up %q: %w", n.Title, err)

		default:
			mergedAward := types.MergeAwards(award, n.Award)
			newAuthors := authors
			if !authors.Valid && len(n.Authors) > 0 {
				newAuthors = sql.NullString{String: mustMarshal(n.Authors), Valid: true}
			}
			newSubjects := subjects
			if !subjects.Valid && len(n.Subjects) > 0 {
				newSubjects = sql.NullString{String: mustMarshal(n.Subjects), Valid: true}
			}
			newFirstPublished := firstPublished
			if firstPublished == 0 {
				newFirstPublished = n.FirstPublished
			}
			newOLID := olid
			if olid == "" {
				newOLID = n.OpenLibraryID
			}

			if mergedAward == award && newAuthors == authors &&
				newSubjects == subjects && newFirstPublished == firstPublished && newOLID == olid {
				summary.Unchanged++
				continue
			}

			_, err := tx.ExecContext(ctx,
				`UPDATE novels SET award = ?, authors = ?, first_published = ?,
					subjects = ?, openlibrary_id = ?, updated_at = ?
				 WHERE id = ?`,
				mergedAward, newAuthors, newFirstPublished, newSubjects, newOLID, now, id,
			)
			if err != nil {
				return summary, fmt.Errorf("updating %q: %w", n.Title, err)
			}
			summary.Merged++
		}
	}

	return summary, tx.Commit()
}

// SetPOV records the triage result for one novel.
func (s *Store) SetPOV(ctx context.Context, id int64, pov types.POV, read bool) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE novels SET pov = ?, is_read = ?, updated_at = ? WHERE id = ?`,
		string(pov), read, now, id,
	)
	if err != nil {
		return fmt.Errorf("updating POV: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("novel %d not found", id)
	}
	return nil
}

// ApplyMetadata fills the novel's empty metadata fields from md. Fields
// already present are never overwritten. Returns whether anything changed.
func (s *Store) ApplyMetadata(ctx context.Context, id int64, md types.NovelMetadata) (bool, error) {
	var (
		authors        sql.NullString
		firstPublished int
		subjects       sql.NullString
		olid           string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT authors, first_published, subjects, openlibrary_id FROM novels WHERE id = ?`, id,
	).Scan(&authors, &firstPublished, &subjects, &olid)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("novel %d not found", id)
	}
	if err != nil {
		return false, fmt.Errorf("looking up novel %d: %w", id, err)
	}

	changed := false
	if !authors.Valid && len(md.Authors) > 0 {
		authors = sql.NullString{String: mustMarshal(md.Authors), Valid: true}
		changed = true
	}
	if firstPublished == 0 && md.FirstPublished > 0 {
		firstPublished = md.FirstPublished
		changed = true
	}
	if !subjects.Valid && len(md.Subjects) > 0 {
		subjects = sql.NullString{String: mustMarshal(md.Subjects), Valid: true}
		changed = true
	}
	if olid == "" && md.OpenLibraryID != "" {
		olid = md.OpenLibraryID
		changed = true
	}

	if !changed {
		return false, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`UPDATE novels SET authors = ?, first_published = ?, subjects = ?,
			openlibrary_id = ?, updated_at = ?
		 WHERE id = ?`,
		authors, firstPublished, subjects, olid, now, id,
	)
	if err != nil {
		return false, fmt.Errorf("applying metadata: %w", err)
	}
	return true, nil
}

// marshalStrings returns a JSON value for a string slice, or nil when the
// slice is empty so the column stays NULL.
func marshalStrings(ss []string) any {
	if len(ss) == 0 {
		return nil
	}
	return mustMarshal(ss)
}

func mustMarshal(ss []string) string {
	b, _ := json.Marshal(ss)
	return string(b)
}

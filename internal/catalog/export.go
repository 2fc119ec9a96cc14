// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/novel-search/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the shelf (or a filtered subset) to
// shelfDir/index/export.yaml and returns the written path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	novels, err := s.exportNovels(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.shelfDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(novels)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the shelf (or a filtered subset) to
// shelfDir/index/export.json and returns the written path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	novels, err := s.exportNovels(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.shelfDir, indexDir, "export.json")
	data, err := json.MarshalIndent(novels, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportNovels(ctx context.Context, opts QueryOptions) ([]types.Novel, error) {
	// An unset limit means the whole shelf, not the query default.
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	novels, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return novels, nil
}

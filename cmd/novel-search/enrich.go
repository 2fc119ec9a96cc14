// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/novel-search/internal/enrich"
	"github.com/pdiddy/novel-search/internal/secrets"
	"github.com/pdiddy/novel-search/pkg/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill in novel metadata from public book APIs",
	Long: `Enrich looks up shelf novels that are missing author, publication, or
subject metadata on Open Library and fills in what it finds. With a
Google Books API key configured (.secrets/google-books-api-key or
enrich.google_books_api_key), it falls back there for fields Open
Library could not supply. Existing metadata is never overwritten.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().Int("limit", 0, "maximum novels to enrich this run (0 = use default)")
	enrichCmd.Flags().Bool("force", false, "re-query novels that already carry metadata")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	force, _ := cmd.Flags().GetBool("force")

	cfg := types.EnrichConfig{
		HTTPConfig:        httpConfig(),
		GoogleBooksAPIKey: secrets.Get(loadedSecrets, "google-books-api-key", viper.GetString("enrich.google_books_api_key")),
		ContactEmail:      secrets.Get(loadedSecrets, "contact-email", viper.GetString("enrich.contact_email")),
		CacheSize:         viper.GetInt("enrich.cache_size"),
	}

	backends := enrich.Backends(newHTTPClient(), cfg)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := enrich.NewEnricher(store, backends, cfg)
	if err != nil {
		return err
	}

	summary, err := e.Run(context.Background(), limit, force, cfg, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Printf("Enriched %d novels (%d skipped, %d failed)\n",
		summary.Enriched, summary.Skipped, summary.Failed)
	return nil
}

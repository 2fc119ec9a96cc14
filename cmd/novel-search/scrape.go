// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/novel-search/internal/scrape"
	"github.com/pdiddy/novel-search/pkg/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape award pages and update the shelf",
	Long: `Scrape downloads the Hugo and Nebula Best Novel award pages from
Wikipedia, parses their winner tables, and merges the entries into the
shelf. Novels that appear under both awards are folded into a single
entry. POV and read state on existing entries survive a re-scrape.

Additional award pages can be supplied with --sources.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Int("after", 0, "keep only novels from this award year onward (default 1990)")
	scrapeCmd.Flags().String("sources", "", "YAML file listing award pages to scrape instead of the defaults")
	scrapeCmd.Flags().Bool("dry-run", false, "print scraped novels without updating the shelf")
	scrapeCmd.Flags().Bool("json", false, "output scraped novels as JSON (implies --dry-run)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	after, _ := cmd.Flags().GetInt("after")
	if after == 0 {
		after = viper.GetInt("scrape.after")
	}
	cfg := types.ScrapeConfig{
		HTTPConfig: httpConfig(),
		After:      after,
	}

	client := newHTTPClient()
	sourcesFile, _ := cmd.Flags().GetString("sources")

	sources := scrape.DefaultSources(client)
	if sourcesFile != "" {
		var err error
		sources, err = scrape.LoadSources(sourcesFile, client)
		if err != nil {
			return err
		}
	}

	out, err := scrape.Scrape(context.Background(), sources, cfg, os.Stderr)
	if err != nil {
		return err
	}

	for name, count := range out.SourceCounts {
		fmt.Printf("%s: %d entries\n", name, count)
	}
	if out.Merged > 0 {
		fmt.Printf("Folded %d dual-award entries\n", out.Merged)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Novels)
	}
	if dryRun {
		for _, n := range out.Novels {
			fmt.Printf("%d  %-12s  %s\n", n.Year, n.Award, n.Title)
		}
		fmt.Printf("\n%d novels (dry run, shelf not updated)\n", len(out.Novels))
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Upsert(context.Background(), out.Novels)
	if err != nil {
		return err
	}
	fmt.Printf("Shelf updated: %d added, %d merged, %d unchanged\n",
		summary.Added, summary.Merged, summary.Unchanged)
	return nil
}

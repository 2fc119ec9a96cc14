// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/novel-search/internal/search"
	"github.com/pdiddy/novel-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the shelf with full-text search and filters",
	Long: `Search queries the shelf using full-text search over titles and
authors, structured filters (award, year range, POV, unread), or a
combination of both. Results are ranked by relevance; --recency-bias
boosts novels from recent award years.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("award", "", "filter by award name (e.g. Hugo)")
	searchCmd.Flags().Int("from", 0, "minimum award year")
	searchCmd.Flags().Int("to", 0, "maximum award year")
	searchCmd.Flags().String("pov", "", "filter by point of view: first, second, third")
	searchCmd.Flags().Bool("unread", false, "only novels not marked as read")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("recency-bias", false, "boost novels from recent award years")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts := searchOptsFromFlags(cmd, args)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := types.SearchConfig{
		RecencyWindowYears: viper.GetInt("search.recency_window_years"),
	}

	out, err := search.Run(context.Background(), store, opts, cfg)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return search.FormatJSON(out, os.Stdout)
	}
	search.FormatTable(out, os.Stdout)
	return nil
}

func searchOptsFromFlags(cmd *cobra.Command, args []string) search.Options {
	award, _ := cmd.Flags().GetString("award")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	pov, _ := cmd.Flags().GetString("pov")
	unread, _ := cmd.Flags().GetBool("unread")
	limit, _ := cmd.Flags().GetInt("limit")
	recencyBias, _ := cmd.Flags().GetBool("recency-bias")

	return search.Options{
		Text:        strings.Join(args, " "),
		Award:       award,
		YearFrom:    from,
		YearTo:      to,
		POV:         pov,
		UnreadOnly:  unread,
		MaxResults:  limit,
		RecencyBias: recencyBias,
	}
}

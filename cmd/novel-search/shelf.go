// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/novel-search/internal/catalog"
	"github.com/pdiddy/novel-search/pkg/types"
)

var shelfCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Manage the novel shelf (list, export, stats)",
	Long: `Shelf inspects the local novel catalog. Use subcommands to list
entries, export them to YAML or JSON, or summarize triage progress.`,
}

// --- list subcommand ---

var shelfListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shelf entries with optional filters",
	Long: `List prints shelf entries newest-first. Filters narrow the listing by
award, year range, POV, read state, or triage state.`,
	RunE: runShelfList,
}

func runShelfList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	novels, err := store.Retrieve(context.Background(), shelfOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatShelfList(novels, jsonOutput)
}

func formatShelfList(novels []types.Novel, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(novels)
	}

	if len(novels) == 0 {
		fmt.Println("The shelf is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-44s  %-12s  %-4s  %-6s  %s\n",
		"Year", "Title", "Award", "POV", "Read", "Authors")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, n := range novels {
		title := n.Title
		if runes := []rune(title); len(runes) > 44 {
			title = string(runes[:41]) + "..."
		}
		read := ""
		if n.Read {
			read = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-44s  %-12s  %-4s  %-6s  %s\n",
			n.Year, title, n.Award, n.POV, read, strings.Join(n.Authors, ", "))
	}

	fmt.Fprintf(os.Stdout, "\n%d novels\n", len(novels))
	return nil
}

// --- export subcommand ---

var shelfExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the shelf to YAML or JSON",
	Long: `Export writes the full shelf (or a filtered subset) to
shelf/index/export.yaml or export.json. Supports the same filter flags
as list for partial exports.`,
	RunE: runShelfExport,
}

func runShelfExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	opts := shelfOptsFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- stats subcommand ---

var shelfStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize triage progress",
	Long: `Stats prints shelf totals: how many novels are on the shelf, how many
have been triaged and read, and breakdowns by award and POV.`,
	RunE: runShelfStats,
}

func runShelfStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Summarize(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Novels on shelf: %d\n", stats.Total)
	fmt.Printf("Processed:       %d\n", stats.Processed)
	fmt.Printf("Read:            %d\n", stats.Read)

	fmt.Println("\nBy award:")
	for _, award := range sortedKeys(stats.ByAward) {
		fmt.Printf("  %-12s %d\n", award, stats.ByAward[award])
	}

	if len(stats.ByPOV) > 0 {
		fmt.Println("\nBy POV:")
		for _, pov := range sortedKeys(stats.ByPOV) {
			fmt.Printf("  %-12s %d\n", pov, stats.ByPOV[pov])
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- shared helpers ---

func shelfOptsFromFlags(cmd *cobra.Command) catalog.QueryOptions {
	award, _ := cmd.Flags().GetString("award")
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	pov, _ := cmd.Flags().GetString("pov")
	unread, _ := cmd.Flags().GetBool("unread")
	unprocessed, _ := cmd.Flags().GetBool("unprocessed")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Award:           award,
		YearFrom:        from,
		YearTo:          to,
		POV:             pov,
		UnreadOnly:      unread,
		UnprocessedOnly: unprocessed,
		MaxResults:      limit,
	}
}

func addShelfFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("award", "", "filter by award name")
	cmd.Flags().Int("from", 0, "minimum award year")
	cmd.Flags().Int("to", 0, "maximum award year")
	cmd.Flags().String("pov", "", "filter by point of view: first, second, third")
	cmd.Flags().Bool("unread", false, "only novels not marked as read")
	cmd.Flags().Bool("unprocessed", false, "only novels without a POV assigned")
	cmd.Flags().Int("limit", 0, "maximum entries (0 = all for export, default for list)")
}

func init() {
	addShelfFilterFlags(shelfListCmd)
	shelfListCmd.Flags().Bool("json", false, "output entries as JSON")

	addShelfFilterFlags(shelfExportCmd)
	shelfExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	shelfCmd.AddCommand(shelfListCmd)
	shelfCmd.AddCommand(shelfExportCmd)
	shelfCmd.AddCommand(shelfStatsCmd)

	rootCmd.AddCommand(shelfCmd)
}

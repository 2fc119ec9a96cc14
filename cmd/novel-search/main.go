// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the novel-search CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/novel-search/internal/catalog"
	"github.com/pdiddy/novel-search/internal/secrets"
	"github.com/pdiddy/novel-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the novel-search CLI.
var rootCmd = &cobra.Command{
	Use:   "novel-search",
	Short: "Track and triage award-winning science fiction novels",
	Long: `novel-search maintains a local shelf of Hugo and Nebula Best Novel
winners and nominees. It scrapes the award pages on Wikipedia, enriches
entries with metadata from public book APIs, and walks you through an
interactive triage loop that records each novel's narrative point of
view and whether you have read it.

Each stage is a subcommand: scrape, enrich, process, and search. The
shelf subcommand lists, exports, and summarizes the catalog.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./novel-search.yaml or ~/.config/novel-search/config.yaml)")
	rootCmd.PersistentFlags().String("shelf-dir", "", "base directory for the shelf (default: ./shelf)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("novel-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "novel-search"))
		}
	}

	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "novel-search/0.1")
	viper.SetDefault("scrape.after", 1990)
	viper.SetDefault("catalog.shelf_dir", "shelf")
	viper.SetDefault("catalog.max_results", 20)
	viper.SetDefault("search.recency_window_years", 10)
	viper.SetDefault("enrich.cache_size", 256)
	viper.SetDefault("process.retailer_url", "https://www.amazon.com/s?k=%s")

	viper.SetEnvPrefix("NOVEL_SEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// httpConfig assembles the shared HTTP settings from viper.
func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
}

// catalogConfig assembles the catalog settings. The --shelf-dir flag
// overrides the config file.
func catalogConfig() types.CatalogConfig {
	shelfDir, _ := rootCmd.PersistentFlags().GetString("shelf-dir")
	if shelfDir == "" {
		shelfDir = viper.GetString("catalog.shelf_dir")
	}
	return types.CatalogConfig{
		ShelfDir:   shelfDir,
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

// openStore opens the shelf database for a command run.
func openStore() (*catalog.Store, error) {
	return catalog.NewStore(catalogConfig())
}

// newHTTPClient builds the HTTP client used by network stages.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpConfig().Timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

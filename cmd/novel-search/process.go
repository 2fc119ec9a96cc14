// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/novel-search/internal/browser"
	"github.com/pdiddy/novel-search/internal/process"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Interactively triage unprocessed novels",
	Long: `Process walks the shelf newest-first, opening each unprocessed novel's
retailer search page in your browser and asking for its narrative point
of view and read status. Answers combine a POV digit with an optional
"r" marker, so "1", "2r" and "r3" all work; "quit" ends the session.

Answered novels never come up again; a later session resumes where the
last one stopped.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("award", "", "only triage novels carrying this award")
	processCmd.Flags().Bool("no-browser", false, "print retailer URLs instead of opening a browser")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	retailerURL := viper.GetString("process.retailer_url")
	if !strings.Contains(retailerURL, "%s") {
		return fmt.Errorf("process.retailer_url must contain a %%s placeholder for the title")
	}

	var opener browser.Opener
	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	if !noBrowser {
		var err error
		opener, err = browser.Detect()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; retailer URLs will be printed instead\n", err)
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p := &process.Processor{
		Store:       store,
		Opener:      opener,
		RetailerURL: retailerURL,
		In:          os.Stdin,
		Out:         os.Stdout,
	}

	award, _ := cmd.Flags().GetString("award")
	_, err = p.Run(context.Background(), award)
	return err
}

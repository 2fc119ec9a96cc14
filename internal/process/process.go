// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process drives the interactive triage loop: open each
// unprocessed novel on a retailer page, ask for its point of view and
// read status, and record the answer on the shelf.
package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/pdiddy/novel-search/internal/browser"
	"github.com/pdiddy/novel-search/internal/catalog"
)

// Processor runs the triage loop. In and Out default to the terminal;
// tests script them with buffers. A nil Opener prints the retailer URL
// instead of launching a browser.
type Processor struct {
	Store       *catalog.Store
	Opener      browser.Opener
	RetailerURL string
	In          io.Reader
	Out         io.Writer
}

// Run triages unprocessed novels newest-first until the shelf is done
// or the user quits. With award set, only novels carrying that award
// are offered. Returns the number of novels processed this session.
func (p *Processor) Run(ctx context.Context, award string) (int, error) {
	scanner := bufio.NewScanner(p.In)
	processed := 0

	for {
		novel, err := p.Store.NextUnprocessed(ctx, award)
		if err != nil {
			return processed, fmt.Errorf("finding next novel: %w", err)
		}
		if novel == nil {
			if processed == 0 {
				if err := p.checkShelf(ctx, award); err != nil {
					return 0, err
				}
			}
			fmt.Fprintln(p.Out, "All novels processed.")
			return processed, nil
		}

		fmt.Fprintf(p.Out, "\nProcessing: '%s' (award %s, year=%d)\n",
			novel.Title, novel.Award, novel.Year)
		p.openRetailerPage(novel.Title)

		answer, err := p.prompt(scanner)
		if err != nil {
			return processed, err
		}
		if answer.Quit {
			fmt.Fprintf(p.Out, "Processed %d novels.\n", processed)
			return processed, nil
		}

		if err := p.Store.SetPOV(ctx, novel.ID, answer.POV, answer.Read); err != nil {
			return processed, fmt.Errorf("recording answer for %q: %w", novel.Title, err)
		}
		processed++
	}
}

// checkShelf distinguishes an empty shelf from a fully processed one so
// the user gets pointed at scrape rather than a silent no-op.
func (p *Processor) checkShelf(ctx context.Context, award string) error {
	stats, err := p.Store.Summarize(ctx)
	if err != nil {
		return fmt.Errorf("checking shelf: %w", err)
	}
	if stats.Total == 0 {
		return fmt.Errorf("shelf is empty; run 'novel-search scrape' first")
	}
	if award != "" && stats.ByAward[award] == 0 {
		return fmt.Errorf("no novels on the shelf for award %q", award)
	}
	return nil
}

// openRetailerPage opens the novel's retailer search page, falling back
// to printing the URL when no browser is available.
func (p *Processor) openRetailerPage(title string) {
	page := fmt.Sprintf(p.RetailerURL, url.QueryEscape(title))
	if p.Opener == nil {
		fmt.Fprintf(p.Out, "Open: %s\n", page)
		return
	}
	if err := p.Opener.Open(page); err != nil {
		fmt.Fprintf(p.Out, "Warning: could not open browser: %v\nOpen: %s\n", err, page)
	}
}

// prompt asks for an answer until it gets a valid one. End of input
// behaves like quit.
func (p *Processor) prompt(scanner *bufio.Scanner) (Answer, error) {
	for {
		fmt.Fprint(p.Out, "POV (1=first, 2=second, 3=third), add 'r' if read, or quit: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Answer{}, fmt.Errorf("reading answer: %w", err)
			}
			fmt.Fprintln(p.Out)
			return Answer{Quit: true}, nil
		}
		answer, err := ParseAnswer(scanner.Text())
		if err != nil {
			fmt.Fprintf(p.Out, "%v\n", err)
			continue
		}
		return answer, nil
	}
}

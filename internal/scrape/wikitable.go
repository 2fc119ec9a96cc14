// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/novel-search/pkg/types"
)

// parseAwardTables extracts award entries from every wikitable in the
// document. The award pages list winners and nominees in tables whose
// first column is the award year; the parser is best-effort because the
// table layout varies across decades:
//
//   - only tables with class "wikitable" are considered;
//   - the year column is the header cell containing "year" but not
//     "awarded"; tables carrying both a "Year" and a "Year awarded"
//     column list the Retro Hugos and are skipped entirely;
//   - a row-spanned year cell carries forward to the rows it spans;
//     rows whose year cell mentions "retro" are skipped;
//   - every italicized element in a body row contributes one title,
//     since the pages italicize novel titles.
func parseAwardTables(r io.Reader, award string) ([]types.Novel, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var novels []types.Novel
	for _, table := range findAll(doc, isWikitable) {
		novels = append(novels, parseTable(table, award)...)
	}
	return novels, nil
}

func parseTable(table *html.Node, award string) []types.Novel {
	rows := findAll(table, isElement("tr"))
	if len(rows) == 0 {
		return nil
	}

	yearCol := -1
	hasYear, hasYearAwarded := false, false
	for i, cell := range findAll(rows[0], isCell) {
		text := strings.ToLower(strings.TrimSpace(nodeText(cell)))
		if text == "year" {
			hasYear = true
		}
		if text == "year awarded" {
			hasYearAwarded = true
		}
		if yearCol < 0 && strings.Contains(text, "year") && !strings.Contains(text, "awarded") {
			yearCol = i
		}
	}

	// Both columns together mark a Retro Hugo table.
	if hasYear && hasYearAwarded {
		return nil
	}
	if yearCol < 0 {
		return nil
	}

	var novels []types.Novel
	currentYear := 0

	for _, row := range rows[1:] {
		cells := findAll(row, isCell)
		if len(cells) > yearCol {
			text := strings.TrimSpace(nodeText(cells[yearCol]))
			if strings.Contains(strings.ToLower(text), "retro") {
				continue
			}
			// "1976 (tie)" parses as 1976; anything unparseable keeps
			// the carried-forward year.
			if y := parseYear(text); y > 0 {
				currentYear = y
			}
		}

		if currentYear == 0 {
			continue
		}

		for _, i := range findAll(row, isElement("i")) {
			title := strings.TrimSpace(nodeText(i))
			if title == "" {
				continue
			}
			novels = append(novels, types.Novel{
				Title: title,
				Award: award,
				Year:  currentYear,
			})
		}
	}
	return novels
}

// parseYear reads the leading integer token of a year cell. Returns 0
// when the cell does not start with a year.
func parseYear(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	y, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return y
}

// --- node helpers ---

func isElement(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "th" || n.Data == "td")
}

func isWikitable(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "table" {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if class == "wikitable" {
				return true
			}
		}
	}
	return false
}

// findAll returns all descendants of n matching the predicate, in
// document order. It does not descend into matched nodes.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if match(child) {
				out = append(out, child)
				continue
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// nodeText concatenates the text content of n's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

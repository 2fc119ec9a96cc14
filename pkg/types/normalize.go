// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes characters and strips combining marks, so that
// "Émigré" and "Emigre" normalize to the same key.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTitle returns a lowercased, accent- and punctuation-stripped
// form of the title with whitespace collapsed. Award pages and book APIs
// disagree on casing, diacritics, and subtitle punctuation; the
// normalized form is what identity comparisons use.
func NormalizeTitle(title string) string {
	folded, _, err := transform.String(foldAccents, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NovelKey returns the catalog identity key for a title and award year.
func NovelKey(title string, year int) string {
	return fmt.Sprintf("%s|%d", NormalizeTitle(title), year)
}

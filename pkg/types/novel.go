// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the novel-search catalog.
package types

import (
	"sort"
	"strings"
	"time"
)

// POV identifies the narrative point of view of a novel. The empty value
// means the novel has not been triaged yet.
type POV string

const (
	POVFirst  POV = "first"
	POVSecond POV = "second"
	POVThird  POV = "third"
)

// ValidPOV reports whether s names a recognized point of view.
func ValidPOV(s string) bool {
	switch POV(s) {
	case POVFirst, POVSecond, POVThird:
		return true
	}
	return false
}

// Novel is one catalog entry: an award winner or nominee scraped from an
// award page, plus triage state and optional enrichment metadata.
type Novel struct {
	// ID is the catalog row ID. Zero for novels not yet stored.
	ID int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the novel title as it appeared on the award page.
	Title string `json:"title" yaml:"title"`

	// Award names the award(s) the novel was nominated for. Novels that
	// appear under several awards carry the sorted names joined with "|"
	// (e.g. "Hugo|Nebula").
	Award string `json:"award" yaml:"award"`

	// Year is the award year, used as a proxy for recency.
	Year int `json:"year" yaml:"year"`

	// POV is the assigned narrative point of view, empty until processed.
	POV POV `json:"pov,omitempty" yaml:"pov,omitempty"`

	// Read records whether the user has read the novel.
	Read bool `json:"read" yaml:"read"`

	// Authors, FirstPublished, Subjects, and OpenLibraryID are filled by
	// the enrich stage and empty until then.
	Authors        []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	FirstPublished int      `json:"first_published,omitempty" yaml:"first_published,omitempty"`
	Subjects       []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	OpenLibraryID  string   `json:"openlibrary_id,omitempty" yaml:"openlibrary_id,omitempty"`

	// CreatedAt and UpdatedAt are maintained by the catalog store.
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// AwardList splits the Award field into its component award names.
func (n Novel) AwardList() []string {
	if n.Award == "" {
		return nil
	}
	return strings.Split(n.Award, "|")
}

// HasAward reports whether the novel carries the named award.
func (n Novel) HasAward(award string) bool {
	for _, a := range n.AwardList() {
		if strings.EqualFold(a, award) {
			return true
		}
	}
	return false
}

// Processed reports whether a POV has been assigned.
func (n Novel) Processed() bool {
	return n.POV != ""
}

// MergeAwards combines two pipe-joined award sets into one, sorted
// alphabetically with duplicates removed.
func MergeAwards(a, b string) string {
	seen := make(map[string]bool)
	var awards []string
	for _, s := range []string{a, b} {
		for _, name := range strings.Split(s, "|") {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			awards = append(awards, name)
		}
	}
	sort.Strings(awards)
	return strings.Join(awards, "|")
}

// NovelMetadata holds the fields an enrichment backend can contribute.
type NovelMetadata struct {
	Authors        []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	FirstPublished int      `json:"first_published,omitempty" yaml:"first_published,omitempty"`
	Subjects       []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	OpenLibraryID  string   `json:"openlibrary_id,omitempty" yaml:"openlibrary_id,omitempty"`

	// Source identifies which backend found the metadata.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// IsEmpty reports whether the metadata carries no usable fields.
func (m NovelMetadata) IsEmpty() bool {
	return len(m.Authors) == 0 && m.FirstPublished == 0 &&
		len(m.Subjects) == 0 && m.OpenLibraryID == ""
}

package types

import "testing"

func TestMergeAwards(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"distinct awards sorted", "Nebula", "Hugo", "Hugo|Nebula"},
		{"same award", "Hugo", "Hugo", "Hugo"},
		{"already merged", "Hugo|Nebula", "Hugo", "Hugo|Nebula"},
		{"empty side", "", "Nebula", "Nebula"},
		{"three awards", "Hugo|Nebula", "World Fantasy", "Hugo|Nebula|World Fantasy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeAwards(tt.a, tt.b); got != tt.want {
				t.Errorf("MergeAwards(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Attention Is All You Need", "attention is all you need"},
		{"The  Left Hand   of Darkness", "the left hand of darkness"},
		{"A Memory Called Empire!", "a memory called empire"},
		{"Émigré's Song", "emigres song"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.title); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestNovelKey(t *testing.T) {
	if NovelKey("Dune!", 1966) != NovelKey("dune", 1966) {
		t.Error("punctuation should not change the key")
	}
	if NovelKey("Dune", 1966) == NovelKey("Dune", 1967) {
		t.Error("different years must produce different keys")
	}
}

func TestNovelAwardList(t *testing.T) {
	n := Novel{Award: "Hugo|Nebula"}
	got := n.AwardList()
	if len(got) != 2 || got[0] != "Hugo" || got[1] != "Nebula" {
		t.Errorf("AwardList() = %v", got)
	}
	if !n.HasAward("nebula") {
		t.Error("HasAward should be case-insensitive")
	}
	if n.HasAward("Locus") {
		t.Error("HasAward(Locus) should be false")
	}
	if (Novel{}).AwardList() != nil {
		t.Error("empty award should yield nil list")
	}
}

func TestValidPOV(t *testing.T) {
	for _, s := range []string{"first", "second", "third"} {
		if !ValidPOV(s) {
			t.Errorf("ValidPOV(%q) = false", s)
		}
	}
	for _, s := range []string{"", "fourth", "First "} {
		if ValidPOV(s) {
			t.Errorf("ValidPOV(%q) = true", s)
		}
	}
}

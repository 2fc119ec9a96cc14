package scrape

import (
	"strings"
	"testing"

	"github.com/pdiddy/novel-search/pkg/types"
)

func parseFixture(t *testing.T, html, award string) []types.Novel {
	t.Helper()
	novels, err := parseAwardTables(strings.NewReader(html), award)
	if err != nil {
		t.Fatalf("parseAwardTables: %v", err)
	}
	return novels
}

func TestParseAwardTablesBasicRows(t *testing.T) {
	html := `<html><body>
	<table class="wikitable">
	<tr><th>Year</th><th>Author</th><th>Novel</th></tr>
	<tr><td>2023</td><td>A. Author</td><td><i>First Novel</i></td></tr>
	<tr><td>2024</td><td>B. Author</td><td><i>Second Novel</i></td></tr>
	</table>
	</body></html>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 2 {
		t.Fatalf("len(novels) = %d, want 2", len(novels))
	}
	if novels[0].Title != "First Novel" || novels[0].Year != 2023 || novels[0].Award != "Hugo" {
		t.Errorf("novels[0] = %+v", novels[0])
	}
	if novels[1].Title != "Second Novel" || novels[1].Year != 2024 {
		t.Errorf("novels[1] = %+v", novels[1])
	}
}

func TestParseAwardTablesRowspanCarriesYearForward(t *testing.T) {
	// The second row has no year cell because the 2023 cell spans both
	// rows; its first cell is the author column.
	html := `<table class="wikitable">
	<tr><th>Year</th><th>Author</th><th>Novel</th></tr>
	<tr><td rowspan="2">2023</td><td>A. Author</td><td><i>Winner</i></td></tr>
	<tr><td>B. Author</td><td><i>Nominee</i></td></tr>
	<tr><td>2024</td><td>C. Author</td><td><i>Next Winner</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Nebula")
	if len(novels) != 3 {
		t.Fatalf("len(novels) = %d, want 3", len(novels))
	}
	if novels[1].Title != "Nominee" || novels[1].Year != 2023 {
		t.Errorf("rowspanned row = %+v, want year 2023", novels[1])
	}
	if novels[2].Year != 2024 {
		t.Errorf("year after rowspan = %d, want 2024", novels[2].Year)
	}
}

func TestParseAwardTablesTieAnnotation(t *testing.T) {
	html := `<table class="wikitable">
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>1993 (tie)</td><td><i>Tied Novel A</i> and <i>Tied Novel B</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 2 {
		t.Fatalf("len(novels) = %d, want 2", len(novels))
	}
	for _, n := range novels {
		if n.Year != 1993 {
			t.Errorf("%q year = %d, want 1993", n.Title, n.Year)
		}
	}
}

func TestParseAwardTablesSkipsRetroTable(t *testing.T) {
	html := `<table class="wikitable">
	<tr><th>Year</th><th>Year awarded</th><th>Novel</th></tr>
	<tr><td>1939</td><td>2014</td><td><i>Retro Winner</i></td></tr>
	</table>
	<table class="wikitable">
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>2015</td><td><i>Regular Winner</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 1 {
		t.Fatalf("len(novels) = %d, want 1", len(novels))
	}
	if novels[0].Title != "Regular Winner" {
		t.Errorf("novels[0].Title = %q, want Regular Winner", novels[0].Title)
	}
}

func TestParseAwardTablesSkipsRetroRows(t *testing.T) {
	html := `<table class="wikitable">
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>Retro 1954</td><td><i>Old Winner</i></td></tr>
	<tr><td>2000</td><td><i>Modern Winner</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 1 {
		t.Fatalf("len(novels) = %d, want 1", len(novels))
	}
	if novels[0].Title != "Modern Winner" || novels[0].Year != 2000 {
		t.Errorf("novels[0] = %+v", novels[0])
	}
}

func TestParseAwardTablesSkipsRowsBeforeFirstYear(t *testing.T) {
	html := `<table class="wikitable">
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>n/a</td><td><i>Orphan Novel</i></td></tr>
	<tr><td>2001</td><td><i>Real Novel</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Nebula")
	if len(novels) != 1 || novels[0].Title != "Real Novel" {
		t.Fatalf("novels = %+v, want only Real Novel", novels)
	}
}

func TestParseAwardTablesIgnoresNonWikitables(t *testing.T) {
	html := `<table>
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>2010</td><td><i>Plain Table Novel</i></td></tr>
	</table>
	<table class="wikitable sortable">
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>2011</td><td><i>Sortable Novel</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 1 {
		t.Fatalf("len(novels) = %d, want 1", len(novels))
	}
	if novels[0].Title != "Sortable Novel" {
		t.Errorf("novels[0].Title = %q", novels[0].Title)
	}
}

func TestParseAwardTablesSkipsTableWithoutYearColumn(t *testing.T) {
	html := `<table class="wikitable">
	<tr><th>Author</th><th>Novel</th></tr>
	<tr><td>A. Author</td><td><i>No Year Novel</i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 0 {
		t.Errorf("len(novels) = %d, want 0", len(novels))
	}
}

func TestParseAwardTablesLinkedTitle(t *testing.T) {
	html := `<table class="wikitable">
	<tr><th>Year</th><th>Novel</th></tr>
	<tr><td>2019</td><td><i><a href="/wiki/A_Novel">Linked Novel</a></i></td></tr>
	</table>`

	novels := parseFixture(t, html, "Hugo")
	if len(novels) != 1 || novels[0].Title != "Linked Novel" {
		t.Fatalf("novels = %+v, want Linked Novel", novels)
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"2023", 2023},
		{"1976 (tie)", 1976},
		{"", 0},
		{"n/a", 0},
		{"  2001  ", 2001},
		{"1976[a]", 0},
	}
	for _, tt := range tests {
		if got := parseYear(tt.text); got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rss_sources.yaml")
	content := `rss_sources:
  regional_news:
    - name: "Local Wire"
      url: "https://local.example/rss"
  official_government:
    - name: "PIB India"
      url: "https://pib.example/rss"
      reliable: true
    - name: "State Bulletin"
      url: "https://state.example/rss"
      reliable: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}

	// Categories sort alphabetically, so official_government comes first.
	if sources[0].Name != "PIB India" || !sources[0].Reliable {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
	if sources[0].Category != "Official Government" {
		t.Errorf("category not title-cased: %q", sources[0].Category)
	}
	if sources[2].Name != "Local Wire" || sources[2].Reliable {
		t.Errorf("unexpected last source: %+v", sources[2])
	}
}

func TestLoadSources_MissingFile(t *testing.T) {
	if _, err := LoadSources("/nonexistent/rss_sources.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>Schools <b>closed</b> tomorrow</p>", "Schools closed tomorrow"},
		{"plain text already", "plain text already"},
		{"broken <a href='x' markup", "broken"},
		{"", ""},
		{"&amp; escaped &lt;entities&gt;", "& escaped <entities>"},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func testTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func TestMapFeed(t *testing.T) {
	now := testTime("2025-08-01T12:00:00Z")
	cutoff := now.AddDate(0, 0, -7)
	recent := testTime("2025-07-30T00:00:00Z")
	stale := testTime("2025-06-01T00:00:00Z")

	parsed := &gofeed.Feed{Items: []*gofeed.Item{
		{
			Title:           "Exam schedule released for all regional boards today",
			Link:            "https://pib.example/exams",
			Description:     "<p>The board published the full datesheet this morning.</p>",
			PublishedParsed: &recent,
		},
		{
			Title:           "Old story about last season that should not appear",
			Link:            "https://pib.example/old",
			Description:     "Definitely long enough to clear the content floor easily.",
			PublishedParsed: &stale,
		},
		{
			Title:       "Tiny",
			Link:        "https://pib.example/tiny",
			Description: "too short",
		},
		{
			Title:       "Item with no publish date is treated as just published now",
			Link:        "https://pib.example/undated",
			Description: "Enough descriptive text to clear the minimum content floor.",
		},
	}}

	source := Source{Name: "PIB India", URL: "https://pib.example/rss", Reliable: true}
	items := mapFeed(parsed, source, cutoff, 30, 500, now)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Title != "Exam schedule released for all regional boards today" {
		t.Errorf("unexpected first item: %q", items[0].Title)
	}
	if strings.Contains(items[0].Summary, "<p>") {
		t.Errorf("summary should be stripped of markup: %q", items[0].Summary)
	}
	if items[0].SourceDomain != "PIB India" {
		t.Errorf("source name should be carried, got %q", items[0].SourceDomain)
	}
	if items[0].Published != "2025-07-30T00:00:00Z" {
		t.Errorf("published should be RFC3339, got %q", items[0].Published)
	}
	if items[1].Published != "2025-08-01T12:00:00Z" {
		t.Errorf("undated items default to now, got %q", items[1].Published)
	}
}

func TestMapFeed_PerFeedCap(t *testing.T) {
	now := testTime("2025-08-01T12:00:00Z")
	var entries []*gofeed.Item
	for i := 0; i < 10; i++ {
		entries = append(entries, &gofeed.Item{
			Title:           "A sufficiently long headline to clear the content floor",
			Link:            "https://a.example/x",
			Description:     "And an equally long description with real words in it.",
			PublishedParsed: &now,
		})
	}

	items := mapFeed(&gofeed.Feed{Items: entries}, Source{Name: "s"}, now.AddDate(0, 0, -1), 3, 500, now)
	if len(items) != 3 {
		t.Errorf("expected per-feed cap of 3, got %d", len(items))
	}
}

func TestMapFeed_TitleCap(t *testing.T) {
	now := testTime("2025-08-01T12:00:00Z")
	long := strings.Repeat("word ", 200)
	items := mapFeed(&gofeed.Feed{Items: []*gofeed.Item{
		{Title: long, Link: "https://a.example/x", Description: "body", PublishedParsed: &now},
	}}, Source{Name: "s"}, now.AddDate(0, 0, -1), 30, 500, now)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if got := len([]rune(items[0].Title)); got > 500 {
		t.Errorf("title should cap at 500 runes, got %d", got)
	}
}

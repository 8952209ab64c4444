package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/truthpulse/truthpulse/internal/model"
)

type stubRetriever struct {
	hits    map[string][]SearchHit
	err     error
	queries []string
}

func (s *stubRetriever) Search(_ context.Context, query string, _ int) ([]SearchHit, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.hits[query], nil
}

type stubFeeds struct {
	items []FeedItem
	err   error
}

func (s *stubFeeds) Recent(context.Context, int, int) ([]FeedItem, error) {
	return s.items, s.err
}

func newTestAggregator(r Retriever, f FeedSource) *Aggregator {
	return NewAggregator(r, f, model.DefaultConfig(), nil)
}

func TestAggregate_DedupesByURL(t *testing.T) {
	claim := "metro line flooded"
	retriever := &stubRetriever{hits: map[string][]SearchHit{
		claim:               {{Title: "Flooding report", URL: "https://news.example/a", Content: "c", Score: 0.2}},
		claim + " official": {{Title: "Flooding report copy", URL: "https://news.example/a", Content: "c", Score: 0.3}},
	}}
	agg := newTestAggregator(retriever, nil)

	items, err := agg.Aggregate(context.Background(), claim, model.DetectionResult{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 deduplicated item, got %d", len(items))
	}
	if items[0].Title != "Flooding report" {
		t.Errorf("first occurrence should win, got %q", items[0].Title)
	}
	if items[0].SourceDomain != "news.example" {
		t.Errorf("source domain should come from URL host, got %q", items[0].SourceDomain)
	}
	if items[0].Origin != model.OriginDataset {
		t.Errorf("corpus hits should be origin dataset, got %s", items[0].Origin)
	}
}

func TestAggregate_ScoreCutoff(t *testing.T) {
	claim := "dam breach upstream"
	retriever := &stubRetriever{hits: map[string][]SearchHit{
		claim: {
			{Title: "close", URL: "https://a.example/1", Score: 0.50},
			{Title: "far", URL: "https://a.example/2", Score: 0.95},
		},
	}}
	agg := newTestAggregator(retriever, nil)

	items, err := agg.Aggregate(context.Background(), claim, model.DetectionResult{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(items) != 1 || items[0].Title != "close" {
		t.Fatalf("expected only the below-cutoff hit, got %+v", items)
	}
}

func TestAggregate_SearchFailureSkipsQuery(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("cluster down")}
	feeds := &stubFeeds{items: []FeedItem{
		{Title: "Live update", URL: "https://feed.example/x", Summary: "s"},
	}}
	agg := newTestAggregator(retriever, feeds)

	items, err := agg.Aggregate(context.Background(), "some claim text", model.DetectionResult{})
	if err != nil {
		t.Fatalf("collaborator failures must be contained: %v", err)
	}
	if len(items) != 1 || items[0].Origin != model.OriginRSS {
		t.Fatalf("expected the feed item to survive, got %+v", items)
	}
}

func TestAggregate_FeedFallbacks(t *testing.T) {
	feeds := &stubFeeds{items: []FeedItem{
		{URL: "https://feed.example/story", Summary: "s"},
	}}
	agg := newTestAggregator(nil, feeds)

	items, err := agg.Aggregate(context.Background(), "claim", model.DetectionResult{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if items[0].Title != "News" {
		t.Errorf("untitled feed items default to News, got %q", items[0].Title)
	}
	if items[0].SourceDomain != "feed.example" {
		t.Errorf("expected host fallback, got %q", items[0].SourceDomain)
	}
	if items[0].Stance != model.StanceNeutral {
		t.Errorf("aggregation never assigns a stance, got %s", items[0].Stance)
	}
}

func TestAggregate_CapsItems(t *testing.T) {
	var feedItems []FeedItem
	for i := 0; i < 40; i++ {
		feedItems = append(feedItems, FeedItem{
			Title: fmt.Sprintf("story %d", i),
			URL:   fmt.Sprintf("https://feed.example/%d", i),
		})
	}
	agg := newTestAggregator(nil, &stubFeeds{items: feedItems})

	items, err := agg.Aggregate(context.Background(), "claim", model.DetectionResult{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(items) != 20 {
		t.Fatalf("expected cap at 20, got %d", len(items))
	}
}

func TestAggregate_SummaryTruncated(t *testing.T) {
	claim := "long article claim"
	retriever := &stubRetriever{hits: map[string][]SearchHit{
		claim: {{Title: "t", URL: "https://a.example/1", Content: strings.Repeat("y", 4000), Score: 0.1}},
	}}
	agg := newTestAggregator(retriever, nil)

	items, _ := agg.Aggregate(context.Background(), claim, model.DetectionResult{})
	if got := len([]rune(items[0].Summary)); got != 1800 {
		t.Errorf("summary should truncate to 1800 runes, got %d", got)
	}
}

func TestBuildQueries_MergesAndDedupes(t *testing.T) {
	agg := newTestAggregator(nil, nil)
	det := model.DetectionResult{SearchQueries: []string{
		"CBSE board exams postponed", // duplicates the claim, case aside
		"exam schedule Delhi",
	}}

	queries := agg.buildQueries("CBSE board exams postponed", det)

	if queries[0] != "CBSE board exams postponed" {
		t.Errorf("claim must be the first query, got %q", queries[0])
	}
	seen := make(map[string]int)
	for _, q := range queries {
		seen[strings.ToLower(q)]++
	}
	for q, n := range seen {
		if n > 1 {
			t.Errorf("query %q appears %d times", q, n)
		}
	}
	if seen["cbse official circular"] != 1 || seen["cbse datesheet"] != 1 {
		t.Errorf("expected CBSE context expansions, got %v", queries)
	}
}

func TestContextQueries_Regions(t *testing.T) {
	extras := contextQueries("Schools shut in Bihar next week")
	joined := strings.Join(extras, "|")
	if !strings.Contains(joined, "school holiday calendar") {
		t.Errorf("region claims should add holiday calendar query, got %v", extras)
	}
	if !strings.Contains(joined, "education department circular") {
		t.Errorf("region claims should add circular query, got %v", extras)
	}

	if extras := contextQueries("NEET counselling cancelled"); len(extras) == 0 ||
		extras[len(extras)-1] != "NTA official notification" {
		t.Errorf("exam claims should add NTA query, got %v", extras)
	}

	if extras := contextQueries("nothing notable here"); len(extras) != 0 {
		t.Errorf("expected no expansions, got %v", extras)
	}
}

func TestAggregate_NilCollaborators(t *testing.T) {
	agg := newTestAggregator(nil, nil)
	items, err := agg.Aggregate(context.Background(), "claim", model.DetectionResult{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("no collaborators means no evidence, got %d items", len(items))
	}
}

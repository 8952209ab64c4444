package retrieve

import (
	"math"
	"testing"
)

func TestParseSearchResponse(t *testing.T) {
	raw := []byte(`{
		"hits": {
			"hits": [
				{
					"_score": 9.0,
					"_source": {
						"title": "Flood warning issued",
						"content": "The river crossed the danger mark.",
						"url": "https://news.example/flood",
						"published": "2025-07-01T10:00:00Z"
					}
				},
				{
					"_score": 0.1,
					"_source": {"title": "Unrelated", "content": "x"}
				}
			]
		}
	}`)

	hits, err := parseSearchResponse(raw)
	if err != nil {
		t.Fatalf("parseSearchResponse: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	if hits[0].Title != "Flood warning issued" || hits[0].URL != "https://news.example/flood" {
		t.Errorf("source fields not mapped: %+v", hits[0])
	}
	if got, want := hits[0].Score, 0.1; math.Abs(got-want) > 1e-9 {
		t.Errorf("relevant hit distance: got %v, want %v", got, want)
	}
	if hits[1].Score <= hits[0].Score {
		t.Errorf("weaker relevance must map to larger distance: %v vs %v", hits[1].Score, hits[0].Score)
	}
}

func TestParseSearchResponse_Empty(t *testing.T) {
	hits, err := parseSearchResponse([]byte(`{"hits":{"hits":[]}}`))
	if err != nil {
		t.Fatalf("parseSearchResponse: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestParseSearchResponse_Malformed(t *testing.T) {
	if _, err := parseSearchResponse([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

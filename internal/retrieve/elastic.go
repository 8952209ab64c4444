// Package retrieve implements similarity search over the indexed article
// corpus using Elasticsearch.
package retrieve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/evidence"
	"github.com/truthpulse/truthpulse/internal/model"
)

// ElasticRetriever queries an Elasticsearch index of news articles.
// Relevance scores from the engine are higher-is-better; they are converted
// to a lower-is-closer distance so callers apply a single cutoff convention.
type ElasticRetriever struct {
	client *elasticsearch.Client
	index  string
	log    *zap.Logger
}

// NewElasticRetriever connects to the configured cluster. The connection is
// lazy: an unreachable cluster surfaces on the first Search call, not here.
func NewElasticRetriever(cfg model.RetrieverConfig, log *zap.Logger) (*ElasticRetriever, error) {
	if log == nil {
		log = zap.NewNop()
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &ElasticRetriever{
		client: client,
		index:  cfg.Index,
		log:    log,
	}, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64 `json:"_score"`
			Source struct {
				Title     string `json:"title"`
				Content   string `json:"content"`
				URL       string `json:"url"`
				Published string `json:"published"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a weighted multi-field match over title and content
func (r *ElasticRetriever) Search(ctx context.Context, query string, topK int) ([]evidence.SearchHit, error) {
	body := map[string]any{
		"size": topK,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title^2", "content"},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", res.Status())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	hits, err := parseSearchResponse(raw)
	if err != nil {
		return nil, err
	}

	r.log.Debug("corpus search", zap.String("query", query), zap.Int("hits", len(hits)))
	return hits, nil
}

// parseSearchResponse converts the raw engine response to SearchHits.
// The distance is 1/(1+score): a perfectly relevant document approaches 0,
// an irrelevant one approaches 1, matching the lower-is-closer convention.
func parseSearchResponse(raw []byte) ([]evidence.SearchHit, error) {
	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]evidence.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, evidence.SearchHit{
			Title:     h.Source.Title,
			Content:   h.Source.Content,
			URL:       h.Source.URL,
			Published: h.Source.Published,
			Score:     1 / (1 + h.Score),
		})
	}
	return hits, nil
}

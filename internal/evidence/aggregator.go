package evidence

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/model"
)

// SearchHit is one similarity-search result from the historical corpus.
// Score is a dissimilarity distance: lower means closer to the query.
type SearchHit struct {
	Content   string
	Title     string
	URL       string
	Published string
	Score     float64
}

// Retriever performs similarity search over the indexed article corpus
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]SearchHit, error)
}

// FeedItem is one recent article from live feed ingestion
type FeedItem struct {
	Title        string
	URL          string
	Summary      string
	Published    string
	SourceDomain string
	Reliable     bool
}

// FeedSource supplies recent articles from configured live feeds
type FeedSource interface {
	Recent(ctx context.Context, windowDays, maxPerFeed int) ([]FeedItem, error)
}

// Aggregator gathers evidence for a claim from the historical corpus and
// live feeds. Collaborator failures are contained: a failing query or feed
// is logged and skipped, never propagated. Either collaborator may be nil.
type Aggregator struct {
	retriever Retriever
	feeds     FeedSource
	log       *zap.Logger

	topK          int
	scoreCutoff   float64
	windowDays    int
	maxPerFeed    int
	maxItems      int
	summaryBudget int
	now           func() time.Time
}

// NewAggregator builds an Aggregator from configuration. Nil collaborators
// disable the corresponding evidence channel.
func NewAggregator(retriever Retriever, feeds FeedSource, cfg *model.Config, log *zap.Logger) *Aggregator {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{
		retriever:     retriever,
		feeds:         feeds,
		log:           log,
		topK:          cfg.Retriever.TopK,
		scoreCutoff:   cfg.Retriever.ScoreCutoff,
		windowDays:    cfg.RSS.WindowDays,
		maxPerFeed:    cfg.RSS.MaxPerFeed,
		maxItems:      cfg.Evidence.MaxItems,
		summaryBudget: cfg.Evidence.SummaryChars,
		now:           time.Now,
	}
}

// Aggregate collects deduplicated evidence for the claim. Detection output
// contributes its search queries; the claim itself is always the first
// query so aggregation works even on an empty detection result.
func (a *Aggregator) Aggregate(ctx context.Context, claim string, det model.DetectionResult) ([]model.EvidenceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queries := a.buildQueries(claim, det)

	var items []model.EvidenceItem
	seen := make(map[string]bool)

	if a.retriever != nil {
		for _, query := range queries {
			hits, err := a.retriever.Search(ctx, query, a.topK)
			if err != nil {
				a.log.Warn("corpus search failed", zap.String("query", query), zap.Error(err))
				continue
			}
			for _, hit := range hits {
				if hit.Score > a.scoreCutoff {
					continue
				}
				item := a.hitToItem(hit)
				if seen[item.Key()] {
					continue
				}
				seen[item.Key()] = true
				items = append(items, item)
			}
		}
	}

	if a.feeds != nil {
		articles, err := a.feeds.Recent(ctx, a.windowDays, a.maxPerFeed)
		if err != nil {
			a.log.Warn("feed ingestion failed", zap.Error(err))
		}
		for _, article := range articles {
			item := a.feedToItem(article)
			if seen[item.Key()] {
				continue
			}
			seen[item.Key()] = true
			items = append(items, item)
		}
	}

	if len(items) > a.maxItems {
		items = items[:a.maxItems]
	}

	a.log.Info("evidence aggregated",
		zap.Int("queries", len(queries)),
		zap.Int("items", len(items)))

	return items, nil
}

// buildQueries merges the base variants, detection-derived queries, and
// claim-specific context expansions into one deduplicated ordered list.
func (a *Aggregator) buildQueries(claim string, det model.DetectionResult) []string {
	queries := []string{
		claim,
		claim + " official",
		claim + " government announcement",
		fmt.Sprintf("%s %d", claim, a.now().Year()),
		claim + " latest update",
	}
	queries = append(queries, det.SearchQueries...)
	queries = append(queries, contextQueries(claim)...)
	return dedupeQueries(queries)
}

var regionTerms = []string{
	"delhi", "up", "uttar pradesh", "maharashtra", "bihar",
	"tamil nadu", "kerala", "gujarat", "rajasthan",
}

// contextQueries adds targeted queries for claims that touch known
// high-rumor subjects so official sources surface ahead of chatter.
func contextQueries(claim string) []string {
	lower := strings.ToLower(claim)
	var extras []string

	for _, region := range regionTerms {
		if strings.Contains(lower, region) {
			extras = append(extras,
				claim+" school holiday calendar",
				claim+" education department circular")
			break
		}
	}
	if strings.Contains(lower, "cbse") {
		extras = append(extras,
			"CBSE official circular",
			"CBSE datesheet",
			"cbseacademic.nic.in")
	}
	if strings.Contains(lower, "up board") || strings.Contains(lower, "upmsp") {
		extras = append(extras, "UP Board official announcement")
	}
	if strings.Contains(lower, "neet") || strings.Contains(lower, "jee") {
		extras = append(extras, "NTA official notification")
	}

	return extras
}

func dedupeQueries(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		key := strings.ToLower(strings.TrimSpace(q))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}

func (a *Aggregator) hitToItem(hit SearchHit) model.EvidenceItem {
	return model.EvidenceItem{
		Title:        hit.Title,
		URL:          hit.URL,
		Summary:      truncateRunes(hit.Content, a.summaryBudget),
		Stance:       model.StanceNeutral,
		Published:    hit.Published,
		SourceDomain: hostOf(hit.URL),
		Origin:       model.OriginDataset,
	}
}

func (a *Aggregator) feedToItem(article FeedItem) model.EvidenceItem {
	title := article.Title
	if title == "" {
		title = "News"
	}
	domain := article.SourceDomain
	if domain == "" {
		domain = hostOf(article.URL)
	}
	return model.EvidenceItem{
		Title:        title,
		URL:          article.URL,
		Summary:      truncateRunes(article.Summary, a.summaryBudget),
		Stance:       model.StanceNeutral,
		Published:    article.Published,
		SourceDomain: domain,
		Origin:       model.OriginRSS,
		Reliable:     article.Reliable,
	}
}

func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

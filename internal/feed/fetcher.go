package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/truthpulse/truthpulse/internal/cache"
	"github.com/truthpulse/truthpulse/internal/evidence"
	"github.com/truthpulse/truthpulse/internal/model"
	"github.com/truthpulse/truthpulse/internal/util"
	"github.com/truthpulse/truthpulse/internal/worker"
)

// minContentChars is the floor below which a feed item carries too little
// text to serve as evidence
const minContentChars = 60

// Fetcher ingests recent articles from all configured sources. Fetches run
// concurrently with per-domain rate limiting, robots.txt checks, and a TTL
// snapshot cache so repeated verifications within the TTL reuse one fetch.
type Fetcher struct {
	sources       []Source
	parser        *gofeed.Parser
	robots        *util.RobotsChecker
	limiter       *worker.Limiter
	cache         cache.Cache
	log           *zap.Logger
	workers       int
	respectRobots bool
	cacheTTL      time.Duration
	titleCap      int
	now           func() time.Time
}

// NewFetcher builds a Fetcher from configuration
func NewFetcher(sources []Source, cfg *model.Config, log *zap.Logger) *Fetcher {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	timeout := time.Duration(cfg.RSS.FetchTimeout) * time.Second

	parser := gofeed.NewParser()
	parser.UserAgent = cfg.HTTP.UserAgent
	parser.Client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
		},
	}

	return &Fetcher{
		sources:       sources,
		parser:        parser,
		robots:        util.NewRobotsChecker(cfg.HTTP.UserAgent, timeout),
		limiter:       worker.NewLimiter(cfg.RSS.RequestsPerSecond, 0),
		cache:         cache.NewMemoryCache(cfg.FeedCacheTTL(), 10*time.Minute),
		log:           log,
		workers:       cfg.RSS.Workers,
		respectRobots: cfg.RSS.RespectRobots,
		cacheTTL:      cfg.FeedCacheTTL(),
		titleCap:      cfg.Evidence.MaxTitleChars,
		now:           time.Now,
	}
}

// Recent returns articles published within the window, at most maxPerFeed
// per source. A failing source is logged and skipped, never fatal.
func (f *Fetcher) Recent(ctx context.Context, windowDays, maxPerFeed int) ([]evidence.FeedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.CacheKey(fmt.Sprintf("feeds:%d:%d", windowDays, maxPerFeed))
	if raw, ok := f.cache.Get(key); ok {
		var items []evidence.FeedItem
		if err := json.Unmarshal(raw, &items); err == nil {
			f.log.Debug("feed snapshot cache hit", zap.Int("items", len(items)))
			return items, nil
		}
	}

	cutoff := f.now().AddDate(0, 0, -windowDays)

	pool := worker.NewPool(f.workers)
	pool.Start()
	for i, source := range f.sources {
		pool.Submit(&fetchJob{
			fetcher:    f,
			source:     source,
			index:      i,
			cutoff:     cutoff,
			maxPerFeed: maxPerFeed,
		})
	}
	results := pool.Wait()

	// Restore configured source order: pool results arrive as they finish.
	ordered := make([][]evidence.FeedItem, len(f.sources))
	for _, result := range results {
		fr := result.(*fetchResult)
		if fr.Error != nil {
			f.log.Warn("feed fetch failed",
				zap.String("source", fr.Source.Name),
				zap.Error(fr.Error))
			continue
		}
		ordered[fr.Index] = fr.Items
	}

	var items []evidence.FeedItem
	for _, batch := range ordered {
		items = append(items, batch...)
	}

	if raw, err := json.Marshal(items); err == nil {
		_ = f.cache.Set(key, raw, f.cacheTTL)
	}

	f.log.Info("feeds fetched",
		zap.Int("sources", len(f.sources)),
		zap.Int("items", len(items)))

	return items, nil
}

type fetchJob struct {
	fetcher    *Fetcher
	source     Source
	index      int
	cutoff     time.Time
	maxPerFeed int
}

type fetchResult struct {
	Source Source
	Index  int
	Items  []evidence.FeedItem
	Error  error
}

func (r *fetchResult) GetError() error { return r.Error }

func (j *fetchJob) Execute(ctx context.Context) worker.Result {
	items, err := j.fetcher.fetchOne(ctx, j.source, j.cutoff, j.maxPerFeed)
	return &fetchResult{Source: j.source, Index: j.index, Items: items, Error: err}
}

func (f *Fetcher) fetchOne(ctx context.Context, source Source, cutoff time.Time, maxPerFeed int) ([]evidence.FeedItem, error) {
	if f.respectRobots && !f.robots.IsAllowed(ctx, source.URL) {
		f.log.Debug("feed disallowed by robots.txt", zap.String("source", source.Name))
		return nil, nil
	}

	if err := f.limiter.Wait(ctx, source.URL); err != nil {
		return nil, err
	}

	parsed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", source.Name, err)
	}

	return mapFeed(parsed, source, cutoff, maxPerFeed, f.titleCap, f.now()), nil
}

// mapFeed converts parsed feed entries to evidence items. Entries older
// than the cutoff or with less than minContentChars of combined text are
// dropped; a missing publish date counts as just published.
func mapFeed(parsed *gofeed.Feed, source Source, cutoff time.Time, maxPerFeed, titleCap int, now time.Time) []evidence.FeedItem {
	entries := parsed.Items
	if len(entries) > maxPerFeed {
		entries = entries[:maxPerFeed]
	}

	items := make([]evidence.FeedItem, 0, len(entries))
	for _, entry := range entries {
		title := collapseWhitespace(entry.Title)

		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}
		summary = stripHTML(summary)

		if len(title)+len(summary) < minContentChars {
			continue
		}

		published := now
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}
		if published.Before(cutoff) {
			continue
		}

		items = append(items, evidence.FeedItem{
			Title:        truncateRunes(title, titleCap),
			URL:          entry.Link,
			Summary:      summary,
			Published:    published.Format(time.RFC3339),
			SourceDomain: source.Name,
			Reliable:     source.Reliable,
		})
	}
	return items
}

// stripHTML extracts the text content of an HTML fragment and collapses
// whitespace. Malformed markup falls back to whatever text the tokenizer
// recovers, which mirrors how feed descriptions degrade in practice.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tokenizer.Token().Data)
			b.WriteByte(' ')
		}
	}
	return collapseWhitespace(b.String())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package model

import "time"

// Config holds the complete TruthPulse configuration.
// The scoring thresholds and caps are behavioral constants: they are kept
// here in one table so they can be tuned without touching extraction logic.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Retriever RetrieverConfig `yaml:"retriever" mapstructure:"retriever"`
	RSS       RSSConfig       `yaml:"rss" mapstructure:"rss"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Evidence  EvidenceConfig  `yaml:"evidence" mapstructure:"evidence"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Verbose   bool            `yaml:"verbose" mapstructure:"verbose"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host           string   `yaml:"host" mapstructure:"host"`
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// RetrieverConfig configures the similarity-search collaborator
type RetrieverConfig struct {
	Addresses []string `yaml:"addresses" mapstructure:"addresses"`
	Index     string   `yaml:"index" mapstructure:"index"`
	Username  string   `yaml:"username" mapstructure:"username"`
	Password  string   `yaml:"password" mapstructure:"password"`
	TopK      int      `yaml:"top_k" mapstructure:"top_k"`
	// ScoreCutoff marks "not actually similar". Scores are lower-is-closer;
	// results above the cutoff are discarded.
	ScoreCutoff float64 `yaml:"score_cutoff" mapstructure:"score_cutoff"`
}

// RSSConfig configures live feed ingestion
type RSSConfig struct {
	SourcesPath       string  `yaml:"sources_path" mapstructure:"sources_path"`
	WindowDays        int     `yaml:"window_days" mapstructure:"window_days"`
	MaxPerFeed        int     `yaml:"max_per_feed" mapstructure:"max_per_feed"`
	FetchTimeout      int     `yaml:"fetch_timeout" mapstructure:"fetch_timeout"` // seconds
	CacheTTL          int     `yaml:"cache_ttl" mapstructure:"cache_ttl"`         // seconds
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// LLMConfig configures the external reasoning collaborator
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "groq", "openai", "ollama", ""
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// StoreConfig configures verification persistence
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EvidenceConfig holds the aggregation and digest bounds
type EvidenceConfig struct {
	MaxItems      int `yaml:"max_items" mapstructure:"max_items"`           // Final evidence cap
	SummaryChars  int `yaml:"summary_chars" mapstructure:"summary_chars"`   // Per-item summary budget
	DigestChars   int `yaml:"digest_chars" mapstructure:"digest_chars"`     // Per-item budget inside the prompt digest
	MaxTitleChars int `yaml:"max_title_chars" mapstructure:"max_title_chars"`
}

// HTTPConfig configures outbound HTTP behavior
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			AllowedOrigins: []string{"*"},
		},
		Retriever: RetrieverConfig{
			Addresses:   []string{"http://localhost:9200"},
			Index:       "truthpulse-articles",
			TopK:        50,
			ScoreCutoff: 0.90,
		},
		RSS: RSSConfig{
			SourcesPath:       "data/rss_sources.yaml",
			WindowDays:        120,
			MaxPerFeed:        30,
			FetchTimeout:      15,
			CacheTTL:          3600,
			RequestsPerSecond: 2,
			Workers:           5,
			RespectRobots:     true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   20,
			MaxTokens: 130,
		},
		Store: StoreConfig{
			Path: "truthpulse.db",
		},
		Evidence: EvidenceConfig{
			MaxItems:      20,
			SummaryChars:  1800,
			DigestChars:   1100,
			MaxTitleChars: 500,
		},
		HTTP: HTTPConfig{
			UserAgent: "TruthPulse/1.0 (+https://github.com/truthpulse/truthpulse)",
		},
	}
}

// FeedCacheTTL returns the feed snapshot TTL as a duration
func (c *Config) FeedCacheTTL() time.Duration {
	return time.Duration(c.RSS.CacheTTL) * time.Second
}

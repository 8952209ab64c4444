package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/detect"
	"github.com/truthpulse/truthpulse/internal/evidence"
	"github.com/truthpulse/truthpulse/internal/feed"
	"github.com/truthpulse/truthpulse/internal/llm"
	"github.com/truthpulse/truthpulse/internal/logging"
	"github.com/truthpulse/truthpulse/internal/model"
	"github.com/truthpulse/truthpulse/internal/retrieve"
	"github.com/truthpulse/truthpulse/internal/store"
	"github.com/truthpulse/truthpulse/internal/verdict"
	"github.com/truthpulse/truthpulse/internal/workflow"
)

// loadConfig builds the effective configuration: defaults, overlaid by the
// config file and TRUTHPULSE_* environment variables, plus the conventional
// provider key variables as a fallback.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg.Verbose = viper.GetBool("verbose")

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "groq":
			cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg, nil
}

// app bundles the assembled collaborators behind the CLI commands.
// Optional collaborators that fail to initialize (corpus, feeds, store)
// are logged and left nil; verification degrades instead of refusing to run.
type app struct {
	cfg      *model.Config
	log      *zap.Logger
	workflow *workflow.Workflow
	store    *store.Store
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.Verbose)

	detector := detect.NewDetector(log)

	var retriever evidence.Retriever
	if elastic, err := retrieve.NewElasticRetriever(cfg.Retriever, log); err != nil {
		log.Warn("corpus retriever unavailable", zap.Error(err))
	} else {
		retriever = elastic
	}

	var feedSource evidence.FeedSource
	if sources, err := feed.LoadSources(cfg.RSS.SourcesPath); err != nil {
		log.Warn("feed sources unavailable",
			zap.String("path", cfg.RSS.SourcesPath),
			zap.Error(err))
	} else {
		feedSource = feed.NewFetcher(sources, cfg, log)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("configure reasoning provider: %w", err)
	}

	aggregator := evidence.NewAggregator(retriever, feedSource, cfg, log)
	synthesizer := verdict.NewSynthesizer(provider, cfg.Evidence, log)

	a := &app{
		cfg:      cfg,
		log:      log,
		workflow: workflow.New(detector, aggregator, synthesizer, log),
	}

	if st, err := store.New(cfg.Store.Path, log); err != nil {
		log.Warn("persistence unavailable",
			zap.String("path", cfg.Store.Path),
			zap.Error(err))
	} else {
		a.store = st
	}

	return a, nil
}

// saveState persists a completed verification, best effort
func (a *app) saveState(state workflow.State) {
	if a.store == nil || state.VerificationResult == nil {
		return
	}

	record := store.Record{
		ID:         state.VerificationID,
		UserID:     state.UserID,
		Claim:      state.Claim,
		Verdict:    state.VerificationResult.Verdict,
		Confidence: state.VerificationResult.Confidence,
		Rationale:  state.VerificationResult.Rationale,
		Evidence:   state.VerificationResult.Evidence,
		CreatedAt:  state.Timestamp,
	}
	if state.DetectionResult != nil {
		record.Notes = state.DetectionResult.Notes
	}

	if err := a.store.Save(record); err != nil {
		a.log.Warn("failed to persist verification",
			zap.String("id", state.VerificationID),
			zap.Error(err))
	}
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.log.Sync()
}

package verdict

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/llm"
	"github.com/truthpulse/truthpulse/internal/model"
)

const (
	defaultMaxDigestItems = 20
	defaultDigestChars    = 1100
	noSourcesMarker       = "No credible sources found."

	defaultRationale      = "Analysis completed"
	defaultConfidence     = 0.5
	degradedConfidence    = 0.3
	unavailableRationale  = "Verification service unavailable"
	serviceErrorRationale = "Service error"
)

// Response parsing. Each field defaults independently when missing.
var (
	verdictPattern    = regexp.MustCompile(`(?i)VERDICT:\s*(TRUE|FALSE|MIXED)`)
	confidencePattern = regexp.MustCompile(`(?i)CONFIDENCE:\s*([0-9]*\.?[0-9]+)`)
	reasonPattern     = regexp.MustCompile(`(?is)REASON:\s*(.+)`)
)

// Synthesizer converts aggregated evidence plus the reasoning service's
// output into a final confidence-scored verdict. A nil provider means the
// reasoning service is absent; every request then degrades to unverified
// without a network call.
type Synthesizer struct {
	provider    llm.Provider
	maxItems    int
	digestChars int
	log         *zap.Logger
	now         func() time.Time // injectable for tests
}

// NewSynthesizer creates a Synthesizer over the given provider (may be nil).
// Non-positive bounds fall back to the built-in digest defaults.
func NewSynthesizer(provider llm.Provider, bounds model.EvidenceConfig, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	maxItems := bounds.MaxItems
	if maxItems <= 0 {
		maxItems = defaultMaxDigestItems
	}
	digestChars := bounds.DigestChars
	if digestChars <= 0 {
		digestChars = defaultDigestChars
	}
	return &Synthesizer{
		provider:    provider,
		maxItems:    maxItems,
		digestChars: digestChars,
		log:         log,
		now:         time.Now,
	}
}

// Synthesize produces a VerificationResult for the claim. It never returns
// an error from collaborator failures: those degrade to a fixed unverified
// result. The only error is a context already cancelled before any work.
func (s *Synthesizer) Synthesize(ctx context.Context, claim string, evidence []model.EvidenceItem) (model.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return model.VerificationResult{}, err
	}

	capped := evidence
	if len(capped) > s.maxItems {
		capped = capped[:s.maxItems]
	}

	var verdict model.VerdictLabel
	var confidence float64
	var rationale string

	switch {
	case s.provider == nil:
		verdict, confidence, rationale = model.VerdictUnverified, degradedConfidence, unavailableRationale

	default:
		prompt := s.buildPrompt(claim, buildDigest(capped, s.digestChars))
		output, err := s.provider.Complete(ctx, prompt)
		if err != nil {
			s.log.Warn("reasoning service failed", zap.String("provider", s.provider.Name()), zap.Error(err))
			verdict, confidence, rationale = model.VerdictUnverified, degradedConfidence, serviceErrorRationale
		} else {
			verdict, confidence, rationale = parseVerdict(output)
		}
	}

	confidence = roundConfidence(confidence)

	s.log.Info("verdict synthesized",
		zap.String("verdict", string(verdict)),
		zap.Float64("confidence", confidence),
		zap.Int("evidence", len(capped)))

	return model.VerificationResult{
		Claim:      claim,
		Verdict:    verdict,
		Confidence: confidence,
		Rationale:  rationale,
		Evidence:   capped,
	}, nil
}

// buildDigest renders the bounded, numbered evidence block for the prompt.
// summaryCap bounds each item's summary in characters.
func buildDigest(evidence []model.EvidenceItem, summaryCap int) string {
	if len(evidence) == 0 {
		return noSourcesMarker
	}

	blocks := make([]string, 0, len(evidence))
	for i, e := range evidence {
		source := e.SourceDomain
		if source == "" {
			source = "News"
		}
		published := e.Published
		if published == "" {
			published = "Recent"
		}
		summary := strings.TrimSpace(truncateRunes(e.Summary, summaryCap))
		blocks = append(blocks, fmt.Sprintf("[%d] %s | %s\n%s\n%s", i+1, source, published, e.Title, summary))
	}
	return strings.Join(blocks, "\n\n")
}

// buildPrompt composes the fixed-structure verification prompt. The response
// contract is exactly three lines so parsing stays mechanical.
func (s *Synthesizer) buildPrompt(claim, digest string) string {
	return fmt.Sprintf(`You are India's top fact-checking AI. Current date: %s.

CLAIM:
%q

EVIDENCE FROM OFFICIAL GOVT SOURCES, NEWS, AND KNOWLEDGE BASE:
%s

INSTRUCTIONS:
- Use only the evidence above.
- Trust official domains: gov.in, nic.in, cbse.gov.in, nta.ac.in, pib.gov.in
- Be accurate for all states: Delhi, UP, Bihar, Maharashtra, Tamil Nadu, etc.
- Do not assume, only conclude if evidence confirms.

Answer EXACTLY in this format:

VERDICT: TRUE / FALSE / MIXED
CONFIDENCE: 0.XX
REASON: One clear, professional sentence.
`, s.now().Format("January 2, 2006"), claim, digest)
}

// parseVerdict extracts (verdict, confidence, reason) from the raw response.
// Each field falls back independently so a partially malformed response
// still yields a usable result.
func parseVerdict(output string) (model.VerdictLabel, float64, string) {
	verdict := model.VerdictUnverified
	if m := verdictPattern.FindStringSubmatch(output); m != nil {
		verdict = model.VerdictLabel(strings.ToLower(m[1]))
	}

	confidence := defaultConfidence
	if m := confidencePattern.FindStringSubmatch(output); m != nil {
		if parsed, err := strconv.ParseFloat(m[1], 64); err == nil {
			confidence = parsed
		}
	}

	rationale := defaultRationale
	if m := reasonPattern.FindStringSubmatch(output); m != nil {
		rationale = strings.TrimSpace(m[1])
	}

	return verdict, confidence, rationale
}

// roundConfidence rounds to 3 decimals and clamps to [0, 1]
func roundConfidence(c float64) float64 {
	c = math.Round(c*1000) / 1000
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

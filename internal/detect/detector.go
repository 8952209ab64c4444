package detect

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/model"
)

// ErrClaimTooShort is the only validation failure in the pipeline: claims
// shorter than 8 characters after trimming are rejected before any analysis.
var ErrClaimTooShort = errors.New("claim must be at least 8 characters long")

const minClaimLength = 8

// Scoring constants. Treat these as configuration, not derived values.
const (
	riskBase          = 0.30
	riskQuestion      = 0.10
	riskNumerical     = 0.20
	riskAction        = 0.15
	riskEmergency     = 0.25
	riskBigNumber     = 0.15
	riskLongClaim     = -0.05
	riskQuantitative  = 0.10
	riskMin           = 0.10
	riskMax           = 1.00
	confBaseDefault   = 0.55
	confBaseNarrative = 0.40
	confPerEntity     = 0.08
	confRiskWeight    = 0.10
	confBaseMin       = 0.35
	confBaseMax       = 0.85
	confBonusOfficial = 0.15
	confBonusStats    = 0.10
	confBonusExpert   = 0.08
	confBonusExtra    = 0.05
	confBonusNow      = 0.08
	confBonusSoon     = 0.04
	confBonusMax      = 0.25
	confFinalMax      = 0.95
	longClaimChars    = 240
)

// Detector lifts structure, domain, and search queries from raw claim text.
// All heuristics are deterministic; the zero-value tables are shared
// read-only state so a single Detector is safe for concurrent use.
type Detector struct {
	log *zap.Logger
}

// NewDetector creates a Detector
func NewDetector(log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{log: log}
}

// Detect analyzes a claim and produces its structured, explainable
// representation. It fails only with ErrClaimTooShort.
func (d *Detector) Detect(claim string) (model.DetectionResult, error) {
	clean := strings.TrimSpace(claim)
	// Character count, not byte count: multibyte scripts must clear the
	// same 8-character bar as ASCII.
	if utf8.RuneCountInString(clean) < minClaimLength {
		return model.DetectionResult{}, ErrClaimTooShort
	}

	claimLower := strings.ToLower(clean)

	claimType := classifyClaim(claimLower)
	domain := detectDomain(claimLower)
	entities := extractEntities(clean)
	keywords := extractKeywords(claimLower)
	structured := buildStructuredClaim(clean, entities)

	risk := scoreRisk(clean, claimLower, claimType)
	confidence := scoreConfidence(claimType, risk, len(entities))

	complexity := assessComplexity(clean)
	evidenceTypes := identifyEvidenceTypes(claimLower)
	temporal := extractTemporalIndicators(claimLower)
	quantitative := extractQuantitativeElements(clean)

	bonus := evidenceConfidenceBonus(evidenceTypes, temporal)
	adjusted := confidence + bonus
	if adjusted > confFinalMax {
		adjusted = confFinalMax
	}

	queries := generateSearchQueries(clean, structured, entities, domain)
	queries = append(queries, contextualSearchQueries(structured, evidenceTypes)...)
	queries = dedupeQueries(queries)
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	notes := buildNotes(claimType, domain, entities, risk, structured,
		complexity, evidenceTypes, temporal, quantitative)

	d.log.Debug("claim analyzed",
		zap.String("domain", string(domain)),
		zap.String("claim_type", string(claimType)),
		zap.Float64("risk", risk),
		zap.Float64("confidence", adjusted),
		zap.Int("entities", len(entities)),
		zap.String("complexity", string(complexity)))

	return model.DetectionResult{
		Claim:                   clean,
		Domain:                  domain,
		ClaimType:               claimType,
		Entities:                entities,
		Keywords:                keywords,
		StructuredClaim:         structured,
		SearchQueries:           queries,
		RiskScore:               risk,
		Confidence:              adjusted,
		Notes:                   notes,
		ClaimComplexity:         complexity,
		SupportingEvidenceTypes: evidenceTypes,
		TemporalIndicators:      temporal,
		QuantitativeElements:    quantitative,
	}, nil
}

// buildStructuredClaim assembles the normalized claim record
func buildStructuredClaim(claim string, entities []string) model.StructuredClaim {
	claimLower := strings.ToLower(claim)
	subject := ""
	if len(entities) > 0 {
		subject = entities[0]
	}
	return model.StructuredClaim{
		Subject:  subject,
		Action:   extractAction(claimLower),
		Location: extractLocation(claim, entities),
		Time:     extractTimePhrase(claimLower),
		Entities: entities,
	}
}

// scoreRisk blends claim-type, urgency and magnitude signals into [0.1, 1.0]
func scoreRisk(claim, claimLower string, claimType model.ClaimType) float64 {
	risk := riskBase

	switch claimType {
	case model.ClaimTypeQuestion:
		risk += riskQuestion
	case model.ClaimTypeNumerical:
		risk += riskNumerical
	case model.ClaimTypeAction:
		risk += riskAction
	}

	if containsAny(claimLower, emergencyWords) {
		risk += riskEmergency
	}
	if bigNumber.MatchString(claim) {
		risk += riskBigNumber
	}
	if utf8.RuneCountInString(claim) > longClaimChars {
		risk += riskLongClaim
	}
	if len(extractQuantitativeElements(claim)) > 0 {
		risk += riskQuantitative
	}

	return clamp(risk, riskMin, riskMax)
}

// scoreConfidence computes the base confidence in [0.35, 0.85]
func scoreConfidence(claimType model.ClaimType, risk float64, entityCount int) float64 {
	base := confBaseDefault
	if claimType == model.ClaimTypeNarrative {
		base = confBaseNarrative
	}
	if entityCount > 3 {
		entityCount = 3
	}
	base += confPerEntity * float64(entityCount)
	base += confRiskWeight * (risk - riskBase)
	return clamp(base, confBaseMin, confBaseMax)
}

// evidenceConfidenceBonus rewards claims that reference verifiable evidence
// and recent context; the bonus is capped at 0.25
func evidenceConfidenceBonus(evidenceTypes, temporal []string) float64 {
	bonus := 0.0

	switch {
	case containsString(evidenceTypes, evidenceOfficial):
		bonus += confBonusOfficial
	case containsString(evidenceTypes, evidenceStatistical):
		bonus += confBonusStats
	case containsString(evidenceTypes, evidenceExpert):
		bonus += confBonusExpert
	}

	if len(evidenceTypes) > 1 {
		bonus += confBonusExtra * float64(len(evidenceTypes)-1)
	}

	if anyInCategory(temporal, temporalImmediate) {
		bonus += confBonusNow
	} else if anyInCategory(temporal, temporalShortTerm) {
		bonus += confBonusSoon
	}

	if bonus > confBonusMax {
		bonus = confBonusMax
	}
	return bonus
}

// anyInCategory reports whether any extracted phrase belongs to the named
// temporal category
func anyInCategory(phrases []string, category string) bool {
	for _, ti := range temporalIndicators {
		if ti.category != category {
			continue
		}
		for _, phrase := range phrases {
			if containsString(ti.phrases, phrase) {
				return true
			}
		}
	}
	return false
}

// assessComplexity grades structural complexity from length, entity count
// and clause signals
func assessComplexity(claim string) model.Complexity {
	wordCount := len(strings.Fields(claim))
	entityCount := len(extractEntities(claim))
	hasConjunctions := conjunction.MatchString(strings.ToLower(claim))
	hasMultipleClauses := multiClause.MatchString(claim)
	hasQuantitative := len(extractQuantitativeElements(claim)) > 0

	switch {
	case wordCount <= 15 && entityCount <= 2 && !hasMultipleClauses && !hasQuantitative:
		return model.ComplexitySimple
	case wordCount <= 40 && entityCount <= 4 && !hasConjunctions:
		return model.ComplexityModerate
	default:
		return model.ComplexityComplex
	}
}

// generateSearchQueries seeds with the raw claim and expands with structured
// and domain-specific combinations
func generateSearchQueries(claim string, structured model.StructuredClaim, entities []string, domain model.Domain) []string {
	queries := []string{claim}

	if structured.Subject != "" && structured.Action != "" {
		queries = append(queries, structured.Subject+" "+structured.Action)
	}
	if structured.Location != "" && structured.Action != "" {
		queries = append(queries, structured.Location+" "+structured.Action)
	}
	if structured.Location != "" && structured.Time != "" {
		queries = append(queries, structured.Location+" "+structured.Time)
	}

	for i, ent := range entities {
		if i == 2 {
			break
		}
		if structured.Action != "" {
			queries = append(queries, fmt.Sprintf("%q %s", ent, structured.Action))
		}
	}

	if hints, ok := domainHints[domain]; ok && structured.Subject != "" {
		for i, hint := range hints {
			if i == 2 {
				break
			}
			queries = append(queries, fmt.Sprintf("%q %s", structured.Subject, hint))
		}
	}

	return dedupeQueries(queries)
}

// contextualSearchQueries expands queries with evidence-type modifiers
func contextualSearchQueries(structured model.StructuredClaim, evidenceTypes []string) []string {
	var queries []string
	if structured.Subject == "" {
		return queries
	}
	for _, kind := range evidenceTypes {
		modifiers, ok := evidenceModifiers[kind]
		if !ok {
			continue
		}
		for i, modifier := range modifiers {
			if i == 2 {
				break
			}
			queries = append(queries, fmt.Sprintf("%q %s", structured.Subject, modifier))
		}
	}
	return queries
}

// dedupeQueries removes duplicates case-insensitively, preserving first-seen
// order
func dedupeQueries(queries []string) []string {
	seen := make(map[string]bool)
	var ordered []string
	for _, q := range queries {
		normalized := strings.ToLower(strings.TrimSpace(q))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		ordered = append(ordered, strings.TrimSpace(q))
	}
	return ordered
}

// buildNotes assembles the human-readable analysis summary
func buildNotes(claimType model.ClaimType, domain model.Domain, entities []string,
	risk float64, structured model.StructuredClaim, complexity model.Complexity,
	evidenceTypes, temporal, quantitative []string) string {

	entityStr := "no specific entities"
	if len(entities) > 0 {
		entityStr = strings.Join(headOf(entities, 3), ", ")
	}
	action := structured.Action
	if action == "" {
		action = "unspecified action"
	}

	parts := []string{fmt.Sprintf(
		"Domain: %s. Classified as %s - %s. Entities: %s. Risk score %.2f.",
		domain, strings.ReplaceAll(string(claimType), "_", " "), action, entityStr, risk,
	)}

	parts = append(parts, fmt.Sprintf("Complexity: %s.", complexity))

	if len(evidenceTypes) > 0 {
		parts = append(parts, fmt.Sprintf("Evidence: %s.", strings.Join(evidenceTypes, ", ")))
	} else {
		parts = append(parts, "Evidence: none mentioned.")
	}

	if len(temporal) > 0 {
		parts = append(parts, fmt.Sprintf("Temporal: %s.", strings.Join(headOf(temporal, 2), ", ")))
	}
	if len(quantitative) > 0 {
		parts = append(parts, fmt.Sprintf("Quantitative: %s.", strings.Join(headOf(quantitative, 2), ", ")))
	}

	priority := "LOW"
	if risk > 0.65 {
		priority = "HIGH"
	} else if risk > 0.45 {
		priority = "MEDIUM"
	}
	parts = append(parts, "Priority: "+priority)

	return strings.Join(parts, " | ")
}

func headOf(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package model

// Domain classifies the subject area of a claim
type Domain string

const (
	DomainHealth     Domain = "health"
	DomainPolitics   Domain = "politics"
	DomainTravel     Domain = "travel"
	DomainDisaster   Domain = "disaster"
	DomainFinance    Domain = "finance"
	DomainTechnology Domain = "technology"
	DomainGeneral    Domain = "general" // Fallback when no keyword matches
)

// ClaimType categorizes the grammatical nature of the claim
type ClaimType string

const (
	ClaimTypeQuestion  ClaimType = "question"        // Interrogative claims
	ClaimTypeNumerical ClaimType = "numerical_claim" // Claims containing digits
	ClaimTypeAction    ClaimType = "action_claim"    // Claims matching a known action phrase
	ClaimTypeNarrative ClaimType = "narrative_claim" // Everything else
)

// Complexity grades how structurally involved a claim is
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// StructuredClaim is the normalized (subject, action, location, time)
// representation of a claim. Immutable once built.
type StructuredClaim struct {
	Subject  string   `json:"subject,omitempty"`  // First extracted entity
	Action   string   `json:"action,omitempty"`   // Matched action phrase or verb
	Location string   `json:"location,omitempty"` // Preposition/suffix pattern match
	Time     string   `json:"time,omitempty"`     // Clock time or day keyword
	Entities []string `json:"entities"`           // First-occurrence order, max 5
}

// DetectionResult is the full deterministic analysis of a claim.
// All list fields respect fixed caps; RiskScore is clamped to [0.1, 1.0]
// and Confidence to [0.35, 0.95].
type DetectionResult struct {
	Claim                   string          `json:"claim"`
	Domain                  Domain          `json:"domain"`
	ClaimType               ClaimType       `json:"claim_type"`
	Entities                []string        `json:"entities"`
	Keywords                []string        `json:"keywords"`
	StructuredClaim         StructuredClaim `json:"structured_claim"`
	SearchQueries           []string        `json:"search_queries"`
	RiskScore               float64         `json:"risk_score"`
	Confidence              float64         `json:"confidence"`
	Notes                   string          `json:"notes"`
	ClaimComplexity         Complexity      `json:"claim_complexity"`
	SupportingEvidenceTypes []string        `json:"supporting_evidence_types"`
	TemporalIndicators      []string        `json:"temporal_indicators"`
	QuantitativeElements    []string        `json:"quantitative_elements"`
}

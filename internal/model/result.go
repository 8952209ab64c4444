package model

// VerdictLabel is the final judgment on a claim
type VerdictLabel string

const (
	VerdictTrue       VerdictLabel = "true"
	VerdictFalse      VerdictLabel = "false"
	VerdictMixed      VerdictLabel = "mixed"
	VerdictUnverified VerdictLabel = "unverified"
)

// VerificationResult is the synthesized judgment for one claim.
// Created exactly once per verification request and immutable after
// construction; Confidence is rounded to 3 decimals and always in [0, 1].
type VerificationResult struct {
	Claim      string         `json:"claim"`
	Verdict    VerdictLabel   `json:"verdict"`
	Confidence float64        `json:"confidence"`
	Rationale  string         `json:"rationale"`
	Evidence   []EvidenceItem `json:"evidence"` // Most relevant first, max 20
}

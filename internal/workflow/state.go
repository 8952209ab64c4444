package workflow

import (
	"time"

	"github.com/truthpulse/truthpulse/internal/model"
)

// Message is one log entry produced while a verification runs. Failure
// messages carry role "system" so clients can separate them from content.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State carries one claim through the detect and verify steps. Transitions
// never mutate in place: each step derives a new State value, so a caller
// holding an earlier State always sees it unchanged.
type State struct {
	Claim  string `json:"claim"`
	UserID string `json:"user_id,omitempty"`

	DetectionResult    *model.DetectionResult    `json:"detection_result,omitempty"`
	VerificationResult *model.VerificationResult `json:"verification_result,omitempty"`

	ShouldContinue bool `json:"should_continue"`

	Messages       []Message `json:"messages"`
	VerificationID string    `json:"verification_id"`
	Timestamp      time.Time `json:"timestamp"`

	SearchQueries     []string             `json:"search_queries,omitempty"`
	RetrievedEvidence []model.EvidenceItem `json:"retrieved_evidence,omitempty"`
}

// withMessage returns a copy of the state with one message appended.
// The message slice is reallocated so shared prefixes are never aliased.
func (s State) withMessage(role, content string) State {
	messages := make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(messages, s.Messages)
	s.Messages = append(messages, Message{Role: role, Content: content})
	return s
}

// withDetection records the detection result and lifts its search queries
// into the state for downstream visibility
func (s State) withDetection(det model.DetectionResult) State {
	s.DetectionResult = &det
	s.SearchQueries = det.SearchQueries
	return s
}

// withVerification records the final result and the evidence it was built on
func (s State) withVerification(result model.VerificationResult) State {
	s.VerificationResult = &result
	s.RetrievedEvidence = result.Evidence
	return s
}

// failed marks the workflow as terminally failed with a system message
func (s State) failed(content string) State {
	s = s.withMessage("system", content)
	s.ShouldContinue = false
	s.VerificationResult = nil
	return s
}

// Response is the client-facing shape of a finished workflow
type Response struct {
	Success            bool                      `json:"success"`
	Message            string                    `json:"message,omitempty"`
	VerificationResult *model.VerificationResult `json:"verification_result,omitempty"`
	Messages           []Message                 `json:"messages"`
	Evidence           []model.EvidenceItem      `json:"evidence,omitempty"`
}

// Response converts a final state into the standardized response.
// A state with no verification result is a failure regardless of how far
// the workflow got.
func (s State) Response() Response {
	if s.VerificationResult == nil {
		return Response{
			Success:  false,
			Message:  "Verification failed to complete",
			Messages: s.Messages,
		}
	}
	return Response{
		Success:            true,
		VerificationResult: s.VerificationResult,
		Messages:           s.Messages,
		Evidence:           s.RetrievedEvidence,
	}
}

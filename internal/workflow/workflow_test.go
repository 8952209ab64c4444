package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/truthpulse/truthpulse/internal/model"
)

type stubDetector struct {
	result model.DetectionResult
	err    error
}

func (s *stubDetector) Detect(string) (model.DetectionResult, error) {
	return s.result, s.err
}

type stubAggregator struct {
	items []model.EvidenceItem
	err   error
}

func (s *stubAggregator) Aggregate(context.Context, string, model.DetectionResult) ([]model.EvidenceItem, error) {
	return s.items, s.err
}

type stubSynthesizer struct {
	result model.VerificationResult
	err    error
}

func (s *stubSynthesizer) Synthesize(_ context.Context, claim string, evidence []model.EvidenceItem) (model.VerificationResult, error) {
	if s.err != nil {
		return model.VerificationResult{}, s.err
	}
	result := s.result
	result.Claim = claim
	result.Evidence = evidence
	return result, nil
}

func newTestWorkflow(d Detector, a Aggregator, s Synthesizer) *Workflow {
	return New(d, a, s, nil)
}

func TestRun_HappyPath(t *testing.T) {
	det := &stubDetector{result: model.DetectionResult{
		SearchQueries: []string{"q1", "q2"},
	}}
	agg := &stubAggregator{items: []model.EvidenceItem{
		{Title: "source", URL: "https://a.example/1"},
	}}
	syn := &stubSynthesizer{result: model.VerificationResult{
		Verdict:    model.VerdictTrue,
		Confidence: 0.8,
		Rationale:  "Confirmed.",
	}}

	state := newTestWorkflow(det, agg, syn).Run(context.Background(), "the bridge is closed", "user-1")

	if state.VerificationResult == nil {
		t.Fatal("expected a verification result")
	}
	if state.VerificationResult.Verdict != model.VerdictTrue {
		t.Errorf("verdict: got %s", state.VerificationResult.Verdict)
	}
	if state.ShouldContinue {
		t.Error("finished workflow must not continue")
	}
	if state.VerificationID == "" {
		t.Error("verification id must be assigned")
	}
	if len(state.SearchQueries) != 2 {
		t.Errorf("detection queries should surface in state, got %v", state.SearchQueries)
	}
	if len(state.RetrievedEvidence) != 1 {
		t.Errorf("evidence should surface in state, got %d items", len(state.RetrievedEvidence))
	}

	resp := state.Response()
	if !resp.Success {
		t.Error("response should report success")
	}
	if resp.VerificationResult == nil || len(resp.Evidence) != 1 {
		t.Errorf("response missing result or evidence: %+v", resp)
	}
}

func TestRun_DetectionFailure(t *testing.T) {
	det := &stubDetector{err: errors.New("too short")}
	state := newTestWorkflow(det, &stubAggregator{}, &stubSynthesizer{}).
		Run(context.Background(), "x", "")

	if state.VerificationResult != nil {
		t.Error("failed detection must not produce a result")
	}
	if state.ShouldContinue {
		t.Error("failed workflow must stop")
	}
	if len(state.Messages) != 1 {
		t.Fatalf("expected one failure message, got %d", len(state.Messages))
	}
	msg := state.Messages[0]
	if msg.Role != "system" {
		t.Errorf("failure messages use role system, got %q", msg.Role)
	}
	if !strings.HasPrefix(msg.Content, "Detection failed with error:") {
		t.Errorf("unexpected message: %q", msg.Content)
	}

	resp := state.Response()
	if resp.Success || resp.Message != "Verification failed to complete" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRun_SynthesisFailure(t *testing.T) {
	syn := &stubSynthesizer{err: context.DeadlineExceeded}
	state := newTestWorkflow(&stubDetector{}, &stubAggregator{}, syn).
		Run(context.Background(), "claim text here", "")

	if state.VerificationResult != nil {
		t.Error("failed synthesis must not produce a result")
	}
	if len(state.Messages) != 1 ||
		!strings.HasPrefix(state.Messages[0].Content, "Verification failed with error:") {
		t.Errorf("unexpected messages: %v", state.Messages)
	}
	// Detection succeeded, so its output stays in the failed state.
	if state.DetectionResult == nil {
		t.Error("detection result should survive a later failure")
	}
}

func TestRun_AggregationFailure(t *testing.T) {
	agg := &stubAggregator{err: context.Canceled}
	state := newTestWorkflow(&stubDetector{}, agg, &stubSynthesizer{}).
		Run(context.Background(), "claim text here", "")

	if state.VerificationResult != nil {
		t.Error("failed aggregation must not produce a result")
	}
	if len(state.Messages) != 1 ||
		!strings.HasPrefix(state.Messages[0].Content, "Verification failed with error:") {
		t.Errorf("unexpected messages: %v", state.Messages)
	}
}

func TestState_TransitionsDoNotMutate(t *testing.T) {
	base := State{Claim: "c", Messages: []Message{{Role: "user", Content: "hello"}}}

	derived := base.withMessage("system", "later")
	if len(base.Messages) != 1 {
		t.Fatalf("base state mutated: %v", base.Messages)
	}
	if len(derived.Messages) != 2 {
		t.Fatalf("derived state missing message: %v", derived.Messages)
	}

	withDet := base.withDetection(model.DetectionResult{SearchQueries: []string{"q"}})
	if base.DetectionResult != nil {
		t.Error("base state gained a detection result")
	}
	if withDet.DetectionResult == nil || len(withDet.SearchQueries) != 1 {
		t.Error("derived state missing detection result")
	}
}

// Package workflow orchestrates claim verification as a two-step state
// machine: detect structures the claim, verify gathers evidence and
// synthesizes a verdict. A step failure stops the workflow and leaves a
// system message in the state instead of propagating an error.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/model"
)

// Detector structures a raw claim into a detection result
type Detector interface {
	Detect(claim string) (model.DetectionResult, error)
}

// Aggregator gathers evidence for a claim using its detection output
type Aggregator interface {
	Aggregate(ctx context.Context, claim string, det model.DetectionResult) ([]model.EvidenceItem, error)
}

// Synthesizer produces the final verdict from claim and evidence
type Synthesizer interface {
	Synthesize(ctx context.Context, claim string, evidence []model.EvidenceItem) (model.VerificationResult, error)
}

// Workflow wires the three stages together
type Workflow struct {
	detector    Detector
	aggregator  Aggregator
	synthesizer Synthesizer
	log         *zap.Logger
}

// New creates a verification workflow
func New(detector Detector, aggregator Aggregator, synthesizer Synthesizer, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{
		detector:    detector,
		aggregator:  aggregator,
		synthesizer: synthesizer,
		log:         log,
	}
}

// Run executes the workflow for one claim and always returns a final state.
// Callers inspect State.VerificationResult (or State.Response().Success)
// to distinguish success from contained failure.
func (w *Workflow) Run(ctx context.Context, claim, userID string) State {
	state := State{
		Claim:          claim,
		UserID:         userID,
		ShouldContinue: true,
		Messages:       []Message{},
		VerificationID: uuid.NewString(),
		Timestamp:      time.Now().UTC(),
	}

	w.log.Info("verification started",
		zap.String("verification_id", state.VerificationID),
		zap.String("claim", claim))

	state = w.detect(state)
	if !state.ShouldContinue {
		return state
	}

	return w.verify(ctx, state)
}

func (w *Workflow) detect(state State) State {
	det, err := w.detector.Detect(state.Claim)
	if err != nil {
		w.log.Warn("detection failed",
			zap.String("verification_id", state.VerificationID),
			zap.Error(err))
		return state.failed(fmt.Sprintf("Detection failed with error: %v", err))
	}
	return state.withDetection(det)
}

func (w *Workflow) verify(ctx context.Context, state State) State {
	items, err := w.aggregator.Aggregate(ctx, state.Claim, *state.DetectionResult)
	if err != nil {
		w.log.Warn("aggregation failed",
			zap.String("verification_id", state.VerificationID),
			zap.Error(err))
		return state.failed(fmt.Sprintf("Verification failed with error: %v", err))
	}

	result, err := w.synthesizer.Synthesize(ctx, state.Claim, items)
	if err != nil {
		w.log.Warn("synthesis failed",
			zap.String("verification_id", state.VerificationID),
			zap.Error(err))
		return state.failed(fmt.Sprintf("Verification failed with error: %v", err))
	}

	state = state.withVerification(result)
	state.ShouldContinue = false

	w.log.Info("verification complete",
		zap.String("verification_id", state.VerificationID),
		zap.String("verdict", string(result.Verdict)),
		zap.Float64("confidence", result.Confidence))

	return state
}

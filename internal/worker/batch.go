package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/truthpulse/truthpulse/internal/workflow"
)

// Verifier runs the full verification workflow for one claim
type Verifier interface {
	Run(ctx context.Context, claim, userID string) workflow.State
}

// VerifyJob verifies a single claim
type VerifyJob struct {
	Claim    string
	UserID   string
	Verifier Verifier
}

// Execute runs the verification workflow for the claim
func (j *VerifyJob) Execute(ctx context.Context) Result {
	state := j.Verifier.Run(ctx, j.Claim, j.UserID)

	var err error
	if state.VerificationResult == nil {
		err = fmt.Errorf("verification of %q did not complete", j.Claim)
	}
	return &VerifyResult{
		Claim: j.Claim,
		State: state,
		Error: err,
	}
}

// VerifyResult is the outcome of one batch verification
type VerifyResult struct {
	Claim string
	State workflow.State
	Error error
}

// GetError returns the error from the verification
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies multiple claims concurrently
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&VerifyJob{
			Claim:    claim,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file, one per line.
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}

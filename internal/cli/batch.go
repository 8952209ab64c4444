package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthpulse/truthpulse/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchOutJSON string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch verifies multiple claims concurrently:
- Read claims from the input file (one per line, # comments skipped)
- Verify claims in parallel with a configurable worker count
- Print a one-line summary per claim

Example:
  truthpulse batch claims.txt
  truthpulse batch claims.txt --concurrency 10 --json results.json
  truthpulse batch claims.txt --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchOutJSON, "json", "", "write full results to this JSON file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  TruthPulse Batch Verification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(a.workflow, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Claim, result.Error)
			continue
		}

		successCount++
		a.saveState(result.State)

		verdict := result.State.VerificationResult
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%.2f)\n", result.Claim, verdict.Verdict, verdict.Confidence)
	}

	if batchOutJSON != "" {
		if err := writeBatchResults(batchOutJSON, results); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if batchOutJSON != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutJSON)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func writeBatchResults(path string, results []*worker.VerifyResult) error {
	outputs := make([]verifyOutput, 0, len(results))
	for _, result := range results {
		outputs = append(outputs, verifyOutput{
			Response:       result.State.Response(),
			VerificationID: result.State.VerificationID,
		})
	}

	encoded, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truthpulse/truthpulse/internal/explain"
	"github.com/truthpulse/truthpulse/internal/workflow"
)

var (
	verifyUserID  string
	verifyTimeout time.Duration
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a single claim",
	Long: `Verify runs the full pipeline for one claim:
- Structure the claim (domain, type, entities, risk, search queries)
- Gather evidence from the article corpus and live feeds
- Synthesize a verdict with confidence and rationale

The result is printed as JSON, including a plain-language explanation.

Example:
  truthpulse verify "Schools in Delhi are closed tomorrow"
  truthpulse verify "CBSE postponed the board exams" --user analyst-7`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyUserID, "user", "", "user id to attribute the verification to")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall verification timeout")
}

// verifyOutput is the CLI rendering of a finished verification
type verifyOutput struct {
	workflow.Response
	VerificationID string               `json:"verification_id"`
	Explanation    *explain.Explanation `json:"explanation,omitempty"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n\n", claim)
	}

	state := a.workflow.Run(ctx, claim, verifyUserID)
	a.saveState(state)

	output := verifyOutput{
		Response:       state.Response(),
		VerificationID: state.VerificationID,
	}
	if state.VerificationResult != nil {
		explanation := explain.Explain(*state.VerificationResult)
		output.Explanation = &explanation
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(encoded))

	if !output.Success {
		return fmt.Errorf("verification failed to complete")
	}
	return nil
}

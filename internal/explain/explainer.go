// Package explain converts verification results into plain-language
// explanations for end users.
package explain

import (
	"fmt"
	"strings"

	"github.com/truthpulse/truthpulse/internal/model"
)

const maxKeyPoints = 4

// Explanation is the reader-facing rendering of a verification result
type Explanation struct {
	Verdict        model.VerdictLabel `json:"verdict"`
	Explanation    string             `json:"explanation"`
	KeyPoints      []string           `json:"key_points"`
	SourcesSummary string             `json:"sources_summary"`
	ConfidenceNote string             `json:"confidence_note"`
}

// Explain builds a plain-language explanation from a verification result
func Explain(result model.VerificationResult) Explanation {
	return Explanation{
		Verdict:        result.Verdict,
		Explanation:    verdictPhrase(result.Verdict),
		KeyPoints:      keyPoints(result.Evidence),
		SourcesSummary: sourcesSummary(result.Evidence),
		ConfidenceNote: confidenceNote(result.Confidence),
	}
}

func verdictPhrase(verdict model.VerdictLabel) string {
	switch verdict {
	case model.VerdictTrue:
		return "This claim is correct according to verified sources."
	case model.VerdictFalse:
		return "This claim is false. Verified sources show no evidence supporting it."
	default:
		return "No reliable information found; be cautious."
	}
}

// reliableSources names the reliable live-feed sources in evidence order
func reliableSources(evidence []model.EvidenceItem) []string {
	var names []string
	for _, e := range evidence {
		if e.Origin != model.OriginRSS || !e.Reliable {
			continue
		}
		name := e.SourceDomain
		if name == "" {
			name = e.Title
		}
		names = append(names, name)
	}
	return names
}

func keyPoints(evidence []model.EvidenceItem) []string {
	var points []string

	if sources := reliableSources(evidence); len(sources) > 0 {
		points = append(points, "Verified sources: "+strings.Join(sources, ", "))
	}

	datasetCount, rssCount := 0, 0
	for _, e := range evidence {
		switch e.Origin {
		case model.OriginDataset:
			datasetCount++
		case model.OriginRSS:
			rssCount++
		}
	}

	if datasetCount > 0 {
		points = append(points, fmt.Sprintf("Checked %d historical records", datasetCount))
	}
	if rssCount > 0 {
		points = append(points, fmt.Sprintf("Reviewed %d recent official updates", rssCount))
	}

	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}
	return points
}

func sourcesSummary(evidence []model.EvidenceItem) string {
	sources := reliableSources(evidence)
	switch len(sources) {
	case 0:
		return "No verified sources available"
	case 1:
		return "Verified by: " + sources[0]
	case 2:
		return fmt.Sprintf("Verified by: %s and %s", sources[0], sources[1])
	default:
		return fmt.Sprintf("Verified by: %s, and %s",
			strings.Join(sources[:len(sources)-1], ", "), sources[len(sources)-1])
	}
}

func confidenceNote(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "High confidence - multiple reliable sources agree"
	case confidence >= 0.6:
		return "Moderate confidence - sources generally agree"
	case confidence >= 0.4:
		return "Low confidence - limited evidence available"
	default:
		return "Very low confidence - insufficient evidence"
	}
}

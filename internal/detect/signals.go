package detect

import (
	"sort"
	"strings"

	"github.com/truthpulse/truthpulse/internal/model"
)

// The extractors in this file are pure and total: malformed input yields
// empty or default values, never an error.

const (
	maxEntities      = 5
	maxKeywords      = 8
	maxQueries       = 8
	maxEvidenceTypes = 3
	maxTemporal      = 3
	maxQuantitative  = 5
)

// detectDomain returns the first domain whose keyword set matches the
// lower-cased claim, or general
func detectDomain(claimLower string) model.Domain {
	for _, dk := range domainKeywords {
		for _, word := range dk.words {
			if strings.Contains(claimLower, word) {
				return dk.domain
			}
		}
	}
	return model.DomainGeneral
}

// classifyClaim applies the strict priority order:
// question > numerical > action > narrative
func classifyClaim(claimLower string) model.ClaimType {
	if strings.Contains(claimLower, "?") {
		return model.ClaimTypeQuestion
	}
	for _, prefix := range interrogativePrefixes {
		if strings.HasPrefix(claimLower, prefix) {
			return model.ClaimTypeQuestion
		}
	}
	if digitPattern.MatchString(claimLower) {
		return model.ClaimTypeNumerical
	}
	for _, phrase := range actionPatterns {
		if strings.Contains(claimLower, phrase) {
			return model.ClaimTypeAction
		}
	}
	return model.ClaimTypeNarrative
}

// extractEntities finds capitalized word runs in the original-case claim,
// deduplicates them and re-sorts by first occurrence
func extractEntities(claim string) []string {
	matches := entityPattern.FindAllString(claim, -1)

	type positioned struct {
		index  int
		entity string
	}
	seen := make(map[string]bool)
	var ordered []positioned
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		ordered = append(ordered, positioned{strings.Index(claim, m), m})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].index < ordered[j].index })

	entities := make([]string, 0, len(ordered))
	for _, p := range ordered {
		entities = append(entities, p.entity)
		if len(entities) == maxEntities {
			break
		}
	}
	return entities
}

// extractKeywords tokenizes the lower-cased claim and keeps meaningful tokens
// in scan order
func extractKeywords(claimLower string) []string {
	tokens := tokenSplit.Split(claimLower, -1)
	var keywords []string
	for _, tok := range tokens {
		if tok == "" || len(tok) <= 3 || stopwords[tok] {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// extractTemporalIndicators records the first matching phrase per recency
// category
func extractTemporalIndicators(claimLower string) []string {
	var phrases []string
	for _, ti := range temporalIndicators {
		for _, phrase := range ti.phrases {
			if strings.Contains(claimLower, phrase) {
				phrases = append(phrases, phrase)
				break
			}
		}
		if len(phrases) == maxTemporal {
			break
		}
	}
	return phrases
}

// extractQuantitativeElements matches number-with-unit patterns against the
// original-case claim
func extractQuantitativeElements(claim string) []string {
	var elements []string
	for _, pattern := range quantitativePatterns {
		for _, m := range pattern.FindAllString(claim, -1) {
			elements = append(elements, strings.TrimSpace(m))
			if len(elements) == maxQuantitative {
				return elements
			}
		}
	}
	return elements
}

// identifyEvidenceTypes lists which kinds of supporting evidence the claim
// itself references
func identifyEvidenceTypes(claimLower string) []string {
	var kinds []string
	for _, ei := range evidenceIndicators {
		for _, word := range ei.words {
			if strings.Contains(claimLower, word) {
				kinds = append(kinds, ei.kind)
				break
			}
		}
		if len(kinds) == maxEvidenceTypes {
			break
		}
	}
	return kinds
}

// extractLocation tries preposition and facility-suffix patterns, then falls
// back to the second entity
func extractLocation(claim string, entities []string) string {
	if m := locationPrefix.FindStringSubmatch(claim); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := locationSuffix.FindStringSubmatch(claim); m != nil {
		return strings.TrimSpace(m[1])
	}
	if len(entities) > 1 {
		return entities[1]
	}
	return ""
}

// extractTimePhrase prefers an explicit clock time over day keywords
func extractTimePhrase(claimLower string) string {
	if m := clockTime.FindStringSubmatch(claimLower); m != nil {
		return m[1]
	}
	for _, token := range dayTimeKeywords {
		if strings.Contains(claimLower, token) {
			return token
		}
	}
	return ""
}

// extractAction prefers a known action phrase over a single-verb match
func extractAction(claimLower string) string {
	for _, phrase := range actionPatterns {
		if strings.Contains(claimLower, phrase) {
			return phrase
		}
	}
	if m := actionVerb.FindStringSubmatch(claimLower); m != nil {
		return m[1]
	}
	return ""
}

// containsAny reports whether any of the given words appears in s
func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

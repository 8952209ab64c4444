package detect

import (
	"regexp"

	"github.com/truthpulse/truthpulse/internal/model"
)

// The tables below are read-only shared state, loaded once at process start.
// Slice order is load-bearing wherever a first-match-wins rule applies.

// domainKeywords pairs a domain with its trigger words. Classification scans
// the slice in order and the first domain with any substring match wins, so
// earlier domains win ties.
var domainKeywords = []struct {
	domain model.Domain
	words  []string
}{
	{model.DomainHealth, []string{
		"virus", "covid", "pandemic", "vaccine", "mask", "outbreak", "hospital",
		"fever", "infection", "symptom", "treatment", "patient", "doctor",
	}},
	{model.DomainPolitics, []string{
		"election", "minister", "president", "policy", "parliament", "government",
		"vote", "campaign", "bill", "law", "diplomat", "ambassador",
	}},
	{model.DomainTravel, []string{
		"airport", "flight", "train", "railway", "visa", "border", "airline",
		"runway", "luggage", "passport", "tourism", "cruise",
	}},
	{model.DomainDisaster, []string{
		"flood", "cyclone", "earthquake", "tsunami", "landslide", "storm",
		"wildfire", "evacuation", "relief", "rescue", "damage",
	}},
	{model.DomainFinance, []string{
		"stock", "market", "crore", "billion", "rupee", "dollar", "inflation",
		"interest", "budget", "bank", "investment", "economy",
	}},
	{model.DomainTechnology, []string{
		"ai", "cyber", "hack", "malware", "data leak", "server", "chip",
		"software", "app", "internet", "network", "gadget",
	}},
}

// emergencyWords raise the risk score when present
var emergencyWords = []string{
	"breaking", "urgent", "alert", "warning", "emergency", "crisis", "panic",
	"chaos", "collapse", "failure", "disaster",
}

// actionPatterns are fixed phrases checked for action-claim classification
// and structured action extraction
var actionPatterns = []string{
	"flight cancelled", "flight canceled", "airport closed", "airport shutdown",
	"school closed", "lockdown", "virus outbreak", "cases rising",
	"explosive spread", "power outage", "internet shutdown", "bank closed",
	"market crash", "train derailed", "bridge collapsed",
}

// stopwords filtered out of keyword extraction
var stopwords = map[string]bool{
	"the": true, "and": true, "that": true, "this": true, "with": true,
	"from": true, "have": true, "been": true, "will": true, "about": true,
	"over": true, "into": true, "after": true, "before": true, "today": true,
	"news": true, "claims": true, "claim": true, "says": true, "said": true,
	"according": true, "reports": true, "reported": true, "source": true,
}

// interrogativePrefixes mark a claim as a question when it starts with one
var interrogativePrefixes = []string{"did", "is", "are", "can", "does", "has"}

var (
	entityPattern  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\b`)
	tokenSplit     = regexp.MustCompile(`[^\w@#]+`)
	digitPattern   = regexp.MustCompile(`\d`)
	bigNumber      = regexp.MustCompile(`\d{3,}`)
	conjunction    = regexp.MustCompile(`\band\b|\bor\b`)
	multiClause    = regexp.MustCompile(`[,.]\s+[A-Z]`)
	clockTime      = regexp.MustCompile(`\b(\d{1,2}\s?(?:am|pm))\b`)
	actionVerb     = regexp.MustCompile(`\b(shut\s+down|cancelled|canceled|closed|delay|postponed|confirmed|declared|announced|reported|denied|verified)\b`)
	locationPrefix = regexp.MustCompile(`\b(?:in|at|near|from|to)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)`)
	locationSuffix = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\s+(?:airport|hospital|station|city)\b`)
)

// quantitativePatterns match numbers with units; per-pattern scan order is
// preserved in the extracted list
var quantitativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+(?:\.\d+)?%\s`),                                             // percentages
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\s*(?:billion|million|thousand|crore|lakh)\b`), // large numbers
	regexp.MustCompile(`\b\d+\s*(?:cases?|deaths?|patients?|tests?|infections?)\b`),      // health metrics
	regexp.MustCompile(`\b\d+\s*(?:people?|persons?|individuals?|victims?)\b`),           // people counts
	regexp.MustCompile(`\b\d+\s*(?:flights?|trains?|vehicles?|ships?)\b`),                // transport
	regexp.MustCompile(`\b\d+\s*(?:rupees?|dollars?|euros?)\b`),                          // currency
	regexp.MustCompile(`\b\d+(?:\.\d+)?\s*(?:degrees?|°C|°F)\b`),                         // temperature
}

// dayTimeKeywords are fallback time phrases when no clock time matches
var dayTimeKeywords = []string{"morning", "evening", "tonight", "today", "tomorrow", "yesterday"}

// Temporal indicator category names
const (
	temporalImmediate  = "immediate"
	temporalShortTerm  = "short_term"
	temporalMediumTerm = "medium_term"
	temporalLongTerm   = "long_term"
)

// temporalIndicators map recency categories to trigger phrases; the first
// matching phrase per category is recorded
var temporalIndicators = []struct {
	category string
	phrases  []string
}{
	{temporalImmediate, []string{"breaking", "just now", "moments ago", "right now", "live"}},
	{temporalShortTerm, []string{
		"today", "tonight", "tomorrow", "yesterday", "this morning",
		"this evening", "this week", "next few hours",
	}},
	{temporalMediumTerm, []string{
		"past 24 hours", "past few days", "last week", "recent", "this month",
		"past month", "next week",
	}},
	{temporalLongTerm, []string{
		"past year", "over the past", "several months", "this year",
		"last year", "coming months",
	}},
}

// Evidence type names
const (
	evidenceOfficial    = "official"
	evidenceStatistical = "statistical"
	evidenceEyewitness  = "eyewitness"
	evidenceMedia       = "media"
	evidenceExpert      = "expert"
)

// evidenceIndicators map evidence types to the phrases that reference them
var evidenceIndicators = []struct {
	kind  string
	words []string
}{
	{evidenceOfficial, []string{
		"official", "government", "authorities", "spokesperson", "statement",
		"press release", "ministry", "agency", "department",
	}},
	{evidenceStatistical, []string{
		"study", "research", "data", "survey", "statistics", "figures",
		"analysis", "report", "metrics", "numbers",
	}},
	{evidenceEyewitness, []string{
		"resident", "witness", "local", "on the ground", "firsthand",
		"eyewitness", "passerby", "neighbor",
	}},
	{evidenceMedia, []string{
		"reported by", "according to", "sources say", "media reports",
		"journalist", "correspondent", "broadcast",
	}},
	{evidenceExpert, []string{
		"expert", "scientist", "doctor", "professor", "analyst",
		"specialist", "researcher",
	}},
}

// domainHints contribute domain-flavored search queries
var domainHints = map[model.Domain][]string{
	model.DomainHealth:     {"official health update", "health ministry statement", "medical report"},
	model.DomainPolitics:   {"fact check", "official statement", "government announcement"},
	model.DomainTravel:     {"status update", "travel advisory", "flight information"},
	model.DomainDisaster:   {"relief update", "emergency services", "damage assessment"},
	model.DomainFinance:    {"market news", "financial report", "economic update"},
	model.DomainTechnology: {"cyber alert", "security update", "tech news"},
}

// evidenceModifiers contribute evidence-type-flavored search queries
var evidenceModifiers = map[string][]string{
	evidenceOfficial:    {"official statement", "government confirmation", "press release", "authorities"},
	evidenceStatistical: {"study", "research", "official data", "statistics", "report"},
	evidenceEyewitness:  {"witness accounts", "resident reports", "firsthand accounts", "local sources"},
	evidenceMedia:       {"news report", "journalist account", "media coverage", "broadcast"},
	evidenceExpert:      {"expert analysis", "specialist opinion", "professional assessment"},
}

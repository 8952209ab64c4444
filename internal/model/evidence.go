package model

// Stance indicates whether a piece of evidence supports or refutes a claim.
// Stance resolution is not performed by the aggregation layer: every item is
// tagged neutral until a dedicated classifier assigns a real stance.
type Stance string

const (
	StanceSupport Stance = "support"
	StanceRefute  Stance = "refute"
	StanceNeutral Stance = "neutral"
)

// Origin identifies which retrieval collaborator produced an evidence item
type Origin string

const (
	OriginDataset Origin = "dataset" // Historical corpus via similarity search
	OriginRSS     Origin = "rss"     // Live feed ingestion
)

// EvidenceItem is one retrieved piece of corroborating or contradicting
// material. Identity for deduplication is URL when non-empty, else Title.
// Summary is truncated at aggregation time and never re-expanded.
type EvidenceItem struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Summary      string `json:"summary"`
	Stance       Stance `json:"stance"`
	Published    string `json:"published,omitempty"`
	SourceDomain string `json:"source_domain,omitempty"`
	Origin       Origin `json:"origin"`
	Reliable     bool   `json:"reliable,omitempty"`
}

// Key returns the deduplication key for the item
func (e EvidenceItem) Key() string {
	if e.URL != "" {
		return e.URL
	}
	return e.Title
}

package domain

// StyleScore pairs a style with its score. Heuristic scores are raw weighted
// sums, not probabilities; model-path scores approximate probabilities. The
// two scales are not comparable across strategies.
type StyleScore struct {
	Style      StyleKey `json:"style"`
	Confidence float64  `json:"confidence"`
}

// Classification is the outcome of one style classification request. It is
// constructed once per request and never persisted.
type Classification struct {
	MatchedStyle      StyleKey     `json:"matchedStyle"`
	StyleDisplayName  string       `json:"styleDisplayName"`
	ConfidenceScore   float64      `json:"confidenceScore"`
	AlternativeStyles []StyleScore `json:"alternativeStyles"`
	Tags              []string     `json:"tags"`
}

// DefaultClassification is the graceful-degradation result used whenever the
// vision-model boundary fails: the caller never sees a hard failure on the
// classification path.
func DefaultClassification() *Classification {
	return &Classification{
		MatchedStyle:      StyleRealism,
		StyleDisplayName:  StyleRealism.DisplayName(),
		ConfidenceScore:   0.5,
		AlternativeStyles: []StyleScore{},
		Tags:              DefaultTags(),
	}
}

// DefaultTags is the tag fallback for the degraded path.
func DefaultTags() []string {
	return []string{"tattoo", "art", "design"}
}

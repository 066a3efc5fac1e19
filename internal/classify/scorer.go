package classify

import (
	"strings"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"go.uber.org/zap"
)

const (
	labelEvidenceFactor = 1.5
	objectEvidenceScore = 0.5
	negativeKeywordCost = 0.5
)

// Engine runs the heuristic classification pipeline: feature extraction,
// keyword scoring, best-style selection, and tag detection. The style set
// and tag table are fixed at construction; the engine itself is stateless
// per request and safe for concurrent use.
type Engine struct {
	styles []StyleDefinition
	byKey  map[domain.StyleKey]StyleDefinition
	tags   []tagRule
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return NewEngineWithStyles(DefaultStyleSet(), logger)
}

// NewEngineWithStyles builds an engine over an alternate style set. Used by
// tests; production callers want NewEngine.
func NewEngineWithStyles(styles []StyleDefinition, logger *zap.Logger) *Engine {
	byKey := make(map[domain.StyleKey]StyleDefinition, len(styles))
	for _, def := range styles {
		byKey[def.Key] = def
	}
	return &Engine{
		styles: styles,
		byKey:  byKey,
		tags:   defaultTagRules(),
		logger: logger,
	}
}

// CombinedText builds the case-folded haystack for keyword containment:
// every label description followed by every object name.
func CombinedText(ann *domain.VisionAnnotations) string {
	if ann == nil {
		return ""
	}

	parts := make([]string, 0, len(ann.Labels)+len(ann.Objects))
	for _, label := range ann.Labels {
		parts = append(parts, label.Description)
	}
	for _, obj := range ann.Objects {
		parts = append(parts, obj.Name)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Score computes the per-style score map. Only styles with a positive final
// score are retained. When requested is non-empty it filters the candidate
// set; unknown keys are silently ignored. The function is deterministic and
// never fails for well-formed input.
func (e *Engine) Score(ann *domain.VisionAnnotations, features domain.ImageFeatures, requested []domain.StyleKey) map[domain.StyleKey]float64 {
	if ann == nil {
		ann = &domain.VisionAnnotations{}
	}

	candidates := e.styles
	if len(requested) > 0 {
		candidates = make([]StyleDefinition, 0, len(requested))
		for _, key := range requested {
			if def, ok := e.byKey[key]; ok {
				candidates = append(candidates, def)
			}
		}
	}

	text := CombinedText(ann)
	adjustIn := AdjustInput{
		Text:     text,
		Features: features,
		Objects:  ann.Objects,
		Colors:   ann.Colors,
	}

	scores := make(map[domain.StyleKey]float64, len(candidates))
	for _, def := range candidates {
		score, matched := scoreKeywords(def, text, ann.Labels)

		// Heuristic adjustments only fire on keyword evidence; an image
		// with no textual signal at all falls through to the selector's
		// fallback tree instead.
		if matched && def.Adjust != nil {
			score += def.Adjust(adjustIn)
		}

		score *= def.Weight
		if score > 0 {
			scores[def.Key] = score
		}
	}

	return scores
}

// scoreKeywords accumulates positive and negative keyword evidence for one
// style. Label-backed matches count the best matching label score at 1.5x;
// matches present only via object names count a flat 0.5.
func scoreKeywords(def StyleDefinition, text string, labels []domain.LabelObservation) (float64, bool) {
	score := 0.0
	matched := false

	for _, keyword := range def.Keywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		matched = true

		bestLabel := 0.0
		labelHit := false
		for _, label := range labels {
			if strings.Contains(strings.ToLower(label.Description), keyword) {
				labelHit = true
				if label.Score > bestLabel {
					bestLabel = label.Score
				}
			}
		}

		if labelHit {
			score += bestLabel * labelEvidenceFactor
		} else {
			score += objectEvidenceScore
		}
	}

	for _, keyword := range def.NegativeKeywords {
		if strings.Contains(text, keyword) {
			score -= negativeKeywordCost
		}
	}

	return score, matched
}

package classify

import (
	"sort"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"go.uber.org/zap"
)

const (
	fallbackRuleOneConfidence = 0.7
	fallbackConfidence        = 0.4
	closeMatchGap             = 0.3
	maxAlternatives           = 2
)

// Select picks the best style from the score map, or applies the fixed
// fallback decision tree when nothing scored positively. It always returns a
// classification; confidence on the scored path is the raw weighted sum, not
// a probability.
func (e *Engine) Select(scores map[domain.StyleKey]float64, features domain.ImageFeatures) *domain.Classification {
	if len(scores) == 0 {
		return e.selectFallback(features)
	}

	ranked := make([]domain.StyleScore, 0, len(scores))
	for key, score := range scores {
		ranked = append(ranked, domain.StyleScore{Style: key, Confidence: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		// Equal scores order by key so repeated calls stay bit-identical
		return ranked[i].Style < ranked[j].Style
	})

	winner := ranked[0]

	if len(ranked) > 1 && winner.Confidence-ranked[1].Confidence < closeMatchGap {
		e.logger.Info("Close style match",
			zap.String("winner", string(winner.Style)),
			zap.String("runner_up", string(ranked[1].Style)),
			zap.Float64("gap", winner.Confidence-ranked[1].Confidence),
		)
	}

	alternatives := make([]domain.StyleScore, 0, maxAlternatives)
	for _, alt := range ranked[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		alternatives = append(alternatives, alt)
	}

	return &domain.Classification{
		MatchedStyle:      winner.Style,
		StyleDisplayName:  winner.Style.DisplayName(),
		ConfidenceScore:   winner.Confidence,
		AlternativeStyles: alternatives,
	}
}

// selectFallback walks the fixed decision tree in order; first match wins.
// The fallback path never produces alternatives.
func (e *Engine) selectFallback(features domain.ImageFeatures) *domain.Classification {
	style, confidence := fallbackStyle(features)

	e.logger.Debug("No style scored positively, using fallback",
		zap.String("style", string(style)),
		zap.Float64("confidence", confidence),
	)

	return &domain.Classification{
		MatchedStyle:      style,
		StyleDisplayName:  style.DisplayName(),
		ConfidenceScore:   confidence,
		AlternativeStyles: []domain.StyleScore{},
	}
}

func fallbackStyle(f domain.ImageFeatures) (domain.StyleKey, float64) {
	switch {
	case f.HasBoldLines() && f.HasPrimaryColors && !f.IsBlackAndGrey:
		return domain.StyleTraditional, fallbackRuleOneConfidence
	case f.IsBlackAndGrey && f.HasFaces:
		return domain.StyleRealism, fallbackConfidence
	case f.IsBlackAndGrey && f.HasFineLines():
		return domain.StyleFineline, fallbackConfidence
	case f.HasVibrantColors && !f.HasPrimaryColors:
		return domain.StyleWatercolor, fallbackConfidence
	case f.IsDarkToned && f.IsBlackAndGrey:
		return domain.StyleBlackwork, fallbackConfidence
	case f.HasBoldLines() || f.HasPrimaryColors:
		return domain.StyleTraditional, fallbackConfidence
	default:
		return domain.StyleRealism, fallbackConfidence
	}
}

package classify

import (
	"testing"

	"github.com/inkmatch/inkmatch-server/internal/domain"
)

func TestSelectWinnerAndAlternatives(t *testing.T) {
	engine := testEngine()
	scores := map[domain.StyleKey]float64{
		domain.StyleTraditional: 5.0,
		domain.StyleRealism:     3.0,
		domain.StyleFlowers:     2.0,
		domain.StyleGeometric:   1.0,
	}

	result := engine.Select(scores, domain.ImageFeatures{})

	if result.MatchedStyle != domain.StyleTraditional {
		t.Fatalf("matched = %s, want traditional", result.MatchedStyle)
	}
	if result.ConfidenceScore != 5.0 {
		t.Errorf("confidence = %f, want raw winning score 5.0", result.ConfidenceScore)
	}
	if result.StyleDisplayName != "Traditional" {
		t.Errorf("display name = %q", result.StyleDisplayName)
	}
	if len(result.AlternativeStyles) != 2 {
		t.Fatalf("alternatives = %d, want 2", len(result.AlternativeStyles))
	}
	if result.AlternativeStyles[0].Style != domain.StyleRealism ||
		result.AlternativeStyles[1].Style != domain.StyleFlowers {
		t.Errorf("alternatives out of order: %+v", result.AlternativeStyles)
	}
}

func TestSelectTieBreaksByKey(t *testing.T) {
	engine := testEngine()
	scores := map[domain.StyleKey]float64{
		domain.StyleWatercolor: 2.0,
		domain.StyleBlackwork:  2.0,
	}

	for i := 0; i < 20; i++ {
		result := engine.Select(scores, domain.ImageFeatures{})
		if result.MatchedStyle != domain.StyleBlackwork {
			t.Fatalf("iteration %d: matched = %s, tie must resolve to lexicographically first key", i, result.MatchedStyle)
		}
	}
}

func TestFallbackDecisionTree(t *testing.T) {
	cases := []struct {
		name       string
		features   domain.ImageFeatures
		style      domain.StyleKey
		confidence float64
	}{
		{
			"bold primary color",
			domain.ImageFeatures{
				DetectedLines:    []domain.LineWeight{domain.LineBold},
				HasPrimaryColors: true,
			},
			domain.StyleTraditional, 0.7,
		},
		{
			"black and grey faces",
			domain.ImageFeatures{IsBlackAndGrey: true, HasFaces: true},
			domain.StyleRealism, 0.4,
		},
		{
			"black and grey fine lines",
			domain.ImageFeatures{
				IsBlackAndGrey: true,
				DetectedLines:  []domain.LineWeight{domain.LineFine},
			},
			domain.StyleFineline, 0.4,
		},
		{
			"vibrant without primaries",
			domain.ImageFeatures{HasVibrantColors: true},
			domain.StyleWatercolor, 0.4,
		},
		{
			"dark black and grey",
			domain.ImageFeatures{IsDarkToned: true, IsBlackAndGrey: true},
			domain.StyleBlackwork, 0.4,
		},
		{
			"bold lines alone",
			domain.ImageFeatures{DetectedLines: []domain.LineWeight{domain.LineBold}, IsBlackAndGrey: true},
			domain.StyleTraditional, 0.4,
		},
		{
			"nothing at all",
			domain.ImageFeatures{},
			domain.StyleRealism, 0.4,
		},
	}

	for _, tc := range cases {
		style, confidence := fallbackStyle(tc.features)
		if style != tc.style || confidence != tc.confidence {
			t.Errorf("%s: got (%s, %.1f), want (%s, %.1f)", tc.name, style, confidence, tc.style, tc.confidence)
		}
	}
}

// An image with no labels at all scores nothing and must land in the
// fallback tree, not on a heuristic-only score.
func TestEmptyImageFallsBackToBlackwork(t *testing.T) {
	engine := testEngine()
	ann := &domain.VisionAnnotations{
		Colors: []domain.ColorSwatch{
			{Red: 20, Green: 20, Blue: 20, Score: 0.8},
			{Red: 90, Green: 95, Blue: 92, Score: 0.2},
		},
	}
	features := ExtractFeatures(ann)

	scores := engine.Score(ann, features, nil)
	if len(scores) != 0 {
		t.Fatalf("expected no scored styles, got %v", scores)
	}

	result := engine.Select(scores, features)
	if result.MatchedStyle != domain.StyleBlackwork {
		t.Fatalf("matched = %s, want blackwork via fallback", result.MatchedStyle)
	}
	if result.ConfidenceScore != 0.4 {
		t.Errorf("confidence = %f, want 0.4", result.ConfidenceScore)
	}
	if len(result.AlternativeStyles) != 0 {
		t.Errorf("fallback path must not produce alternatives: %+v", result.AlternativeStyles)
	}
}

func TestSelectSingleScoreHasNoAlternatives(t *testing.T) {
	engine := testEngine()
	scores := map[domain.StyleKey]float64{domain.StyleJapanese: 3.2}

	result := engine.Select(scores, domain.ImageFeatures{})

	if result.MatchedStyle != domain.StyleJapanese {
		t.Fatalf("matched = %s", result.MatchedStyle)
	}
	if len(result.AlternativeStyles) != 0 {
		t.Errorf("alternatives = %+v, want none", result.AlternativeStyles)
	}
}

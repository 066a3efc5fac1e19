package classify

import (
	"strings"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/util"
)

var (
	boldLineKeywords = []string{"bold", "thick", "strong lines"}
	fineLineKeywords = []string{"fine", "thin", "delicate"}
)

// detectLines derives line-weight signals from label text. Bold and fine are
// not mutually exclusive; the result is ordered and duplicate-free.
func detectLines(labels []domain.LabelObservation) []domain.LineWeight {
	hasBold := false
	hasFine := false

	for _, label := range labels {
		desc := strings.ToLower(label.Description)
		if !hasBold && util.ContainsAny(desc, boldLineKeywords) {
			hasBold = true
		}
		if !hasFine && util.ContainsAny(desc, fineLineKeywords) {
			hasFine = true
		}
	}

	lines := make([]domain.LineWeight, 0, 2)
	if hasBold {
		lines = append(lines, domain.LineBold)
	}
	if hasFine {
		lines = append(lines, domain.LineFine)
	}
	return lines
}

// relativeLuminance maps a swatch to [0,1] using the standard Rec. 601
// channel weights.
func relativeLuminance(s domain.ColorSwatch) float64 {
	return (0.299*float64(s.Red) + 0.587*float64(s.Green) + 0.114*float64(s.Blue)) / 255.0
}

// contrastRatio computes the luminance contrast between the two most
// dominant swatches. Fewer than two swatches means no contrast (ratio 1).
func contrastRatio(colors []domain.ColorSwatch) float64 {
	if len(colors) < 2 {
		return 1
	}

	sorted := sortedByScore(colors)
	l1 := relativeLuminance(sorted[0])
	l2 := relativeLuminance(sorted[1])

	lighter, darker := l1, l2
	if l2 > l1 {
		lighter, darker = l2, l1
	}

	return (lighter + 0.05) / (darker + 0.05)
}

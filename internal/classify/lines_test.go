package classify

import (
	"math"
	"testing"

	"github.com/inkmatch/inkmatch-server/internal/domain"
)

func labels(descriptions ...string) []domain.LabelObservation {
	out := make([]domain.LabelObservation, 0, len(descriptions))
	for _, d := range descriptions {
		out = append(out, domain.LabelObservation{Description: d, Score: 0.9})
	}
	return out
}

func TestDetectLines(t *testing.T) {
	cases := []struct {
		name   string
		labels []domain.LabelObservation
		want   []domain.LineWeight
	}{
		{"bold only", labels("Bold outline tattoo"), []domain.LineWeight{domain.LineBold}},
		{"fine only", labels("delicate fine line work"), []domain.LineWeight{domain.LineFine}},
		{"both ordered bold first", labels("thin details", "thick shading"), []domain.LineWeight{domain.LineBold, domain.LineFine}},
		{"neither", labels("portrait", "rose"), []domain.LineWeight{}},
		{"duplicates collapse", labels("bold", "thick", "strong lines"), []domain.LineWeight{domain.LineBold}},
	}

	for _, tc := range cases {
		got := detectLines(tc.labels)
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
				break
			}
		}
	}
}

func TestRelativeLuminance(t *testing.T) {
	white := relativeLuminance(domain.ColorSwatch{Red: 255, Green: 255, Blue: 255})
	if math.Abs(white-1.0) > 1e-9 {
		t.Errorf("white luminance = %f, want 1.0", white)
	}

	black := relativeLuminance(domain.ColorSwatch{})
	if black != 0 {
		t.Errorf("black luminance = %f, want 0", black)
	}
}

func TestContrastRatioSingleSwatch(t *testing.T) {
	one := []domain.ColorSwatch{{Red: 255, Green: 255, Blue: 255, Score: 1}}

	if got := contrastRatio(one); got != 1 {
		t.Errorf("contrast with one swatch = %f, want 1", got)
	}
	if got := contrastRatio(nil); got != 1 {
		t.Errorf("contrast with no swatches = %f, want 1", got)
	}
}

func TestContrastRatioBlackOnWhite(t *testing.T) {
	colors := []domain.ColorSwatch{
		{Red: 255, Green: 255, Blue: 255, Score: 0.6},
		{Red: 0, Green: 0, Blue: 0, Score: 0.4},
	}

	got := contrastRatio(colors)
	want := 1.05 / 0.05

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("contrast = %f, want %f", got, want)
	}
}

func TestContrastRatioOrderIndependent(t *testing.T) {
	a := []domain.ColorSwatch{
		{Red: 20, Green: 20, Blue: 20, Score: 0.7},
		{Red: 230, Green: 230, Blue: 230, Score: 0.3},
	}

	got := contrastRatio(a)
	if got <= 1 {
		t.Fatalf("contrast = %f, want > 1 regardless of which swatch is darker", got)
	}
}

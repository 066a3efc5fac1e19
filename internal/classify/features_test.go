package classify

import (
	"testing"

	"github.com/inkmatch/inkmatch-server/internal/domain"
)

func TestExtractFeaturesNilAnnotations(t *testing.T) {
	features := ExtractFeatures(nil)

	if features.HasFaces || features.IsColorful || features.HasVibrantColors {
		t.Error("nil annotations must not set positive signals")
	}
	if !features.IsBlackAndGrey {
		t.Error("empty palette is vacuously black and grey")
	}
	if features.DominantColorFamily != domain.ColorFamilyMixed {
		t.Errorf("dominant family = %q, want mixed", features.DominantColorFamily)
	}
	if features.HasBoldLines() || features.HasFineLines() {
		t.Error("no labels means no detected lines")
	}
}

func TestExtractFeaturesTraditionalImage(t *testing.T) {
	ann := &domain.VisionAnnotations{
		Labels: labels("bold outline", "traditional tattoo", "anchor"),
		Colors: []domain.ColorSwatch{
			{Red: 255, Green: 30, Blue: 30, Score: 0.4},
			{Red: 30, Green: 30, Blue: 230, Score: 0.3},
			{Red: 240, Green: 230, Blue: 40, Score: 0.3},
		},
	}

	features := ExtractFeatures(ann)

	if !features.HasBoldLines() {
		t.Error("bold label should produce bold lines")
	}
	if !features.HasPrimaryColors {
		t.Error("red and blue swatches should set primary colors")
	}
	if features.IsComplexColorScheme {
		t.Error("three swatches is not complex")
	}
	if !features.HasTraditionalLook {
		t.Error("bold lines + primary palette + non-complex should read traditional")
	}
	if features.IsBlackAndGrey {
		t.Error("saturated palette is not black and grey")
	}
}

func TestIsBlackAndGrey(t *testing.T) {
	grey := []domain.ColorSwatch{
		{Red: 30, Green: 35, Blue: 40, Score: 0.5},
		{Red: 120, Green: 125, Blue: 115, Score: 0.5},
	}
	if !isBlackAndGrey(grey) {
		t.Error("near-greyscale palette should be black and grey")
	}

	tinted := []domain.ColorSwatch{
		{Red: 30, Green: 35, Blue: 40, Score: 0.5},
		{Red: 120, Green: 150, Blue: 115, Score: 0.5},
	}
	if isBlackAndGrey(tinted) {
		t.Error("a swatch with a 20+ channel spread breaks black and grey")
	}

	if !isBlackAndGrey(nil) {
		t.Error("empty palette is vacuously black and grey")
	}
}

func TestIsDarkToned(t *testing.T) {
	dark := []domain.ColorSwatch{
		{Red: 200, Green: 200, Blue: 200, Score: 0.1},
		{Red: 100, Green: 100, Blue: 100, Score: 0.9},
	}
	if !isDarkToned(dark) {
		t.Error("dominant swatch summing under 382 should be dark")
	}

	light := []domain.ColorSwatch{{Red: 130, Green: 130, Blue: 130, Score: 1}}
	if isDarkToned(light) {
		t.Error("390 channel sum is not dark")
	}

	if isDarkToned(nil) {
		t.Error("empty palette is not dark toned")
	}
}

func TestHasVibrantColors(t *testing.T) {
	vibrant := []domain.ColorSwatch{{Red: 250, Green: 100, Blue: 30, Score: 0.5}}
	if !hasVibrantColors(vibrant) {
		t.Error("span over 100 with real prevalence should be vibrant")
	}

	lowScore := []domain.ColorSwatch{{Red: 250, Green: 100, Blue: 30, Score: 0.05}}
	if hasVibrantColors(lowScore) {
		t.Error("negligible prevalence must not count as vibrant")
	}

	muted := []domain.ColorSwatch{{Red: 150, Green: 120, Blue: 100, Score: 0.9}}
	if hasVibrantColors(muted) {
		t.Error("narrow channel span is not vibrant")
	}
}

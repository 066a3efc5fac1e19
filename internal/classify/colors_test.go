package classify

import (
	"testing"

	"github.com/inkmatch/inkmatch-server/internal/domain"
)

func TestIsPrimaryColorBands(t *testing.T) {
	cases := []struct {
		name    string
		swatch  domain.ColorSwatch
		primary bool
	}{
		{"pure red", domain.ColorSwatch{Red: 255, Green: 0, Blue: 0}, true},
		{"pure blue", domain.ColorSwatch{Red: 0, Green: 0, Blue: 255}, true},
		{"yellow", domain.ColorSwatch{Red: 230, Green: 220, Blue: 40}, true},
		{"black", domain.ColorSwatch{Red: 10, Green: 10, Blue: 10}, true},
		{"green", domain.ColorSwatch{Red: 30, Green: 230, Blue: 40}, true},
		{"grey", domain.ColorSwatch{Red: 128, Green: 128, Blue: 128}, false},
		{"orange misses red band", domain.ColorSwatch{Red: 255, Green: 140, Blue: 0}, false},
		{"band edge is exclusive", domain.ColorSwatch{Red: 200, Green: 99, Blue: 99}, false},
	}

	for _, tc := range cases {
		if got := isPrimaryColor(tc.swatch); got != tc.primary {
			t.Errorf("%s: isPrimaryColor = %v, want %v", tc.name, got, tc.primary)
		}
	}
}

func TestPureRedMatchesExactlyOneBand(t *testing.T) {
	s := domain.ColorSwatch{Red: 255, Green: 0, Blue: 0}

	if !isPrimaryColor(s) {
		t.Fatal("pure red should be primary")
	}
	if !isSimpleColor(s) {
		t.Fatal("pure red should be simple")
	}
	if got := dominantFamily(s); got != domain.ColorFamilyRed {
		t.Fatalf("dominantFamily = %q, want red", got)
	}
}

func TestIsSimpleColor(t *testing.T) {
	if !isSimpleColor(domain.ColorSwatch{Red: 200, Green: 50, Blue: 50}) {
		t.Error("red-dominant swatch should be simple")
	}
	if isSimpleColor(domain.ColorSwatch{Red: 120, Green: 110, Blue: 100}) {
		t.Error("balanced swatch should not be simple")
	}
}

func TestSortedByScoreDoesNotMutateInput(t *testing.T) {
	colors := []domain.ColorSwatch{
		{Red: 1, Score: 0.1},
		{Red: 2, Score: 0.9},
		{Red: 3, Score: 0.5},
	}

	sorted := sortedByScore(colors)

	if colors[0].Red != 1 || colors[1].Red != 2 || colors[2].Red != 3 {
		t.Fatal("input slice was mutated")
	}
	if sorted[0].Red != 2 || sorted[1].Red != 3 || sorted[2].Red != 1 {
		t.Fatalf("unexpected order: %+v", sorted)
	}
}

func TestExtractColorFeaturesEmptyPalette(t *testing.T) {
	feat := extractColorFeatures(nil)

	if feat.dominantColorFamily != domain.ColorFamilyMixed {
		t.Errorf("dominant family = %q, want mixed", feat.dominantColorFamily)
	}
	if feat.hasSimpleColors || feat.hasPrimaryColors || feat.isComplexColorScheme {
		t.Error("empty palette must not set any color flags")
	}
}

func TestExtractColorFeaturesThresholds(t *testing.T) {
	// Two primary swatches out of five, 40% simple threshold met
	colors := []domain.ColorSwatch{
		{Red: 255, Green: 0, Blue: 0, Score: 0.5},
		{Red: 0, Green: 0, Blue: 255, Score: 0.3},
		{Red: 120, Green: 110, Blue: 100, Score: 0.1},
		{Red: 130, Green: 120, Blue: 110, Score: 0.05},
		{Red: 125, Green: 115, Blue: 105, Score: 0.05},
	}

	feat := extractColorFeatures(colors)

	if !feat.hasPrimaryColors {
		t.Error("two primary swatches should set hasPrimaryColors")
	}
	if !feat.hasSimpleColors {
		t.Error("2 of 5 simple swatches meets the 40% threshold")
	}
	if feat.isComplexColorScheme {
		t.Error("five swatches is not complex")
	}
	if feat.dominantColorFamily != domain.ColorFamilyRed {
		t.Errorf("dominant family = %q, want red", feat.dominantColorFamily)
	}
}

func TestComplexColorSchemeNeedsMoreThanSeven(t *testing.T) {
	colors := make([]domain.ColorSwatch, 8)
	for i := range colors {
		colors[i] = domain.ColorSwatch{Red: 100 + i*10, Green: 50, Blue: 50, Score: 0.1}
	}

	if !extractColorFeatures(colors).isComplexColorScheme {
		t.Error("eight swatches should be complex")
	}
	if extractColorFeatures(colors[:7]).isComplexColorScheme {
		t.Error("seven swatches should not be complex")
	}
}

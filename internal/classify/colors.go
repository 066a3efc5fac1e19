package classify

import (
	"sort"

	"github.com/inkmatch/inkmatch-server/internal/domain"
)

type colorFeatures struct {
	hasSimpleColors      bool
	hasPrimaryColors     bool
	isComplexColorScheme bool
	dominantColorFamily  domain.ColorFamily
}

// sortedByScore returns a new slice ordered by prevalence score descending.
// The caller's slice is never mutated; every helper that needs ordering
// works on its own copy so feature extraction is independent of call order.
func sortedByScore(colors []domain.ColorSwatch) []domain.ColorSwatch {
	sorted := make([]domain.ColorSwatch, len(colors))
	copy(sorted, colors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// isSimpleColor reports whether the swatch's dominant channel exceeds 1.5x
// the average of the other two channels.
func isSimpleColor(s domain.ColorSwatch) bool {
	r, g, b := float64(s.Red), float64(s.Green), float64(s.Blue)

	switch {
	case r >= g && r >= b:
		return r > 1.5*((g+b)/2)
	case g >= r && g >= b:
		return g > 1.5*((r+b)/2)
	default:
		return b > 1.5*((r+g)/2)
	}
}

// isPrimaryColor reports whether the swatch falls in one of the five fixed
// primary bands: red, blue, yellow, black, green.
func isPrimaryColor(s domain.ColorSwatch) bool {
	switch {
	case s.Red > 200 && s.Green < 100 && s.Blue < 100:
		return true // red
	case s.Blue > 200 && s.Red < 100 && s.Green < 100:
		return true // blue
	case s.Red > 200 && s.Green > 200 && s.Blue < 100:
		return true // yellow
	case s.Red < 50 && s.Green < 50 && s.Blue < 50:
		return true // black
	case s.Green > 200 && s.Red < 100 && s.Blue < 100:
		return true // green
	default:
		return false
	}
}

// dominantFamily classifies the single highest-score swatch.
func dominantFamily(top domain.ColorSwatch) domain.ColorFamily {
	r, g, b := top.Red, top.Green, top.Blue

	switch {
	case r-g > 50 && r-b > 50:
		return domain.ColorFamilyRed
	case g-r > 50 && g-b > 50:
		return domain.ColorFamilyGreen
	case b-r > 50 && b-g > 50:
		return domain.ColorFamilyBlue
	case r < 100 && g < 100 && b < 100:
		return domain.ColorFamilyBlack
	case r > 200 && g > 200 && b < 150:
		return domain.ColorFamilyYellow
	default:
		return domain.ColorFamilyMixed
	}
}

// extractColorFeatures derives the palette-level signals from the swatch
// list. An empty list yields "mixed" with every boolean false.
func extractColorFeatures(colors []domain.ColorSwatch) colorFeatures {
	feat := colorFeatures{dominantColorFamily: domain.ColorFamilyMixed}
	if len(colors) == 0 {
		return feat
	}

	sorted := sortedByScore(colors)

	simpleCount := 0
	primaryCount := 0
	for _, swatch := range sorted {
		if isSimpleColor(swatch) {
			simpleCount++
		}
		if isPrimaryColor(swatch) {
			primaryCount++
		}
	}

	feat.hasSimpleColors = float64(simpleCount) >= 0.4*float64(len(sorted))
	feat.hasPrimaryColors = primaryCount >= 2
	feat.isComplexColorScheme = len(sorted) > 7
	feat.dominantColorFamily = dominantFamily(sorted[0])

	return feat
}

package classify

import (
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/util"
)

const highContrastThreshold = 5.0

// ExtractFeatures aggregates the raw vision signals of one image into the
// fixed-shape feature record the scoring engine branches on. It is a pure
// function and never fails, including on empty inputs.
func ExtractFeatures(ann *domain.VisionAnnotations) domain.ImageFeatures {
	if ann == nil {
		ann = &domain.VisionAnnotations{}
	}

	colorFeat := extractColorFeatures(ann.Colors)
	lines := detectLines(ann.Labels)

	features := domain.ImageFeatures{
		HasFaces:             ann.FaceCount > 0,
		IsColorful:           len(ann.Colors) > 5,
		HasVibrantColors:     hasVibrantColors(ann.Colors),
		IsHighContrast:       contrastRatio(ann.Colors) > highContrastThreshold,
		IsDarkToned:          isDarkToned(ann.Colors),
		IsBlackAndGrey:       isBlackAndGrey(ann.Colors),
		HasSimpleColors:      colorFeat.hasSimpleColors,
		HasPrimaryColors:     colorFeat.hasPrimaryColors,
		IsComplexColorScheme: colorFeat.isComplexColorScheme,
		DominantColorFamily:  colorFeat.dominantColorFamily,
		DetectedLines:        lines,
	}

	features.HasTraditionalLook = features.HasBoldLines() &&
		features.HasPrimaryColors &&
		!features.IsComplexColorScheme

	return features
}

// hasVibrantColors reports whether any swatch has a channel span over 100
// with a non-negligible prevalence score.
func hasVibrantColors(colors []domain.ColorSwatch) bool {
	for _, s := range colors {
		maxC := util.Max(s.Red, util.Max(s.Green, s.Blue))
		minC := util.Min(s.Red, util.Min(s.Green, s.Blue))
		if maxC-minC > 100 && s.Score > 0.1 {
			return true
		}
	}
	return false
}

// isDarkToned checks the single most dominant swatch against half-brightness
// across all three channels (127*3).
func isDarkToned(colors []domain.ColorSwatch) bool {
	if len(colors) == 0 {
		return false
	}
	top := sortedByScore(colors)[0]
	return top.Red+top.Green+top.Blue < 382
}

// isBlackAndGrey holds when every swatch in the palette is near-greyscale
// (all pairwise channel differences under 20). An empty palette is vacuously
// black-and-grey; callers that need at least one swatch must guard upstream.
func isBlackAndGrey(colors []domain.ColorSwatch) bool {
	for _, s := range colors {
		if util.AbsInt(s.Red-s.Green) >= 20 ||
			util.AbsInt(s.Green-s.Blue) >= 20 ||
			util.AbsInt(s.Red-s.Blue) >= 20 {
			return false
		}
	}
	return true
}

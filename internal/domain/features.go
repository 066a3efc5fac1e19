package domain

// ColorFamily classifies the single most dominant swatch of an image.
type ColorFamily string

const (
	ColorFamilyRed    ColorFamily = "red"
	ColorFamilyGreen  ColorFamily = "green"
	ColorFamilyBlue   ColorFamily = "blue"
	ColorFamilyBlack  ColorFamily = "black"
	ColorFamilyYellow ColorFamily = "yellow"
	ColorFamilyMixed  ColorFamily = "mixed"
)

// LineWeight is a detected line-style signal.
type LineWeight string

const (
	LineBold LineWeight = "bold"
	LineFine LineWeight = "fine"
)

// ImageFeatures is the aggregated feature set derived from one image's raw
// vision signals. All fields are always present; the record is computed once
// per analysis request and treated as immutable afterwards.
type ImageFeatures struct {
	HasFaces             bool
	IsColorful           bool
	HasVibrantColors     bool
	IsHighContrast       bool
	IsDarkToned          bool
	IsBlackAndGrey       bool
	HasSimpleColors      bool
	HasPrimaryColors     bool
	IsComplexColorScheme bool
	DominantColorFamily  ColorFamily
	DetectedLines        []LineWeight
	HasTraditionalLook   bool
}

// HasBoldLines reports whether bold line work was detected.
func (f ImageFeatures) HasBoldLines() bool {
	return f.hasLine(LineBold)
}

// HasFineLines reports whether fine line work was detected.
func (f ImageFeatures) HasFineLines() bool {
	return f.hasLine(LineFine)
}

func (f ImageFeatures) hasLine(w LineWeight) bool {
	for _, l := range f.DetectedLines {
		if l == w {
			return true
		}
	}
	return false
}

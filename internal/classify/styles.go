package classify

import (
	"strings"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/util"
)

// AdjustInput carries everything a style-specific heuristic may branch on.
type AdjustInput struct {
	Text     string // case-folded concatenation of label descriptions and object names
	Features domain.ImageFeatures
	Objects  []domain.DetectedObject
	Colors   []domain.ColorSwatch
}

func (in AdjustInput) mentions(keywords ...string) bool {
	return util.ContainsAny(in.Text, keywords)
}

func (in AdjustInput) hasObject(names ...string) bool {
	for _, obj := range in.Objects {
		for _, name := range names {
			if strings.EqualFold(obj.Name, name) {
				return true
			}
		}
	}
	return false
}

// AdjustFunc computes the style-specific heuristic delta applied before the
// weight multiplier. Nil means the style scores on keywords and weight only.
type AdjustFunc func(in AdjustInput) float64

// StyleDefinition is the process-wide configuration of one style: keyword
// sets, weight multiplier, and the heuristic adjustment. The set of
// definitions is built once at startup and never mutated.
type StyleDefinition struct {
	Key              domain.StyleKey
	Keywords         []string
	NegativeKeywords []string
	Weight           float64
	Adjust           AdjustFunc
}

// DefaultStyleSet builds the full 15-style configuration. Callers receive a
// fresh slice each time; tests can swap in reduced sets without touching
// process-wide state.
func DefaultStyleSet() []StyleDefinition {
	return []StyleDefinition{
		{
			Key:              domain.StyleTraditional,
			Keywords:         []string{"traditional", "old school", "americana", "sailor", "anchor", "swallow", "bold outline"},
			NegativeKeywords: []string{"photorealistic", "fine line", "watercolor"},
			Weight:           1.0,
			Adjust:           adjustTraditional,
		},
		{
			Key:              domain.StyleNewSchool,
			Keywords:         []string{"new school", "cartoon", "graffiti", "exaggerated", "caricature"},
			NegativeKeywords: []string{"photorealistic"},
			Weight:           0.9,
		},
		{
			Key:      domain.StyleAnime,
			Keywords: []string{"anime", "manga", "chibi"},
			Weight:   0.9,
		},
		{
			Key:              domain.StyleFineline,
			Keywords:         []string{"fine line", "fineline", "thin lines", "delicate", "single needle"},
			NegativeKeywords: []string{"bold"},
			Weight:           1.0,
			Adjust:           adjustFineline,
		},
		{
			Key:      domain.StyleGeometric,
			Keywords: []string{"geometric", "geometry", "mandala", "sacred geometry", "symmetry", "pattern"},
			Weight:   1.0,
			Adjust:   adjustGeometric,
		},
		{
			Key:              domain.StyleMicroRealism,
			Keywords:         []string{"micro realism", "micro", "miniature", "tiny detailed"},
			NegativeKeywords: []string{"cartoon"},
			Weight:           1.0,
			Adjust:           adjustMicroRealism,
		},
		{
			Key:              domain.StyleRealism,
			Keywords:         []string{"realism", "realistic", "photorealistic", "portrait", "lifelike"},
			NegativeKeywords: []string{"cartoon", "abstract"},
			Weight:           1.0,
			Adjust:           adjustRealism,
		},
		{
			Key:      domain.StyleDotWork,
			Keywords: []string{"dotwork", "dot work", "stippling", "pointillism"},
			Weight:   1.0,
			Adjust:   adjustDotWork,
		},
		{
			Key:              domain.StyleDarkArt,
			Keywords:         []string{"dark art", "horror", "demon", "macabre", "occult", "gothic"},
			NegativeKeywords: []string{"cute", "pastel"},
			Weight:           1.0,
			Adjust:           adjustDarkArt,
		},
		{
			Key:      domain.StyleFlowers,
			Keywords: []string{"flower", "floral", "rose", "peony", "botanical", "blossom"},
			Weight:   0.95,
			Adjust:   adjustFlowers,
		},
		{
			Key:      domain.StyleSurrealism,
			Keywords: []string{"surreal", "dreamlike", "abstract", "melting", "impossible"},
			Weight:   0.85,
		},
		{
			Key:      domain.StyleTrashPolka,
			Keywords: []string{"trash polka", "collage", "chaotic", "smear", "brushstroke"},
			Weight:   1.1,
			Adjust:   adjustTrashPolka,
		},
		{
			Key:              domain.StyleWatercolor,
			Keywords:         []string{"watercolor", "watercolour", "paint", "splash", "wash"},
			NegativeKeywords: []string{"solid black"},
			Weight:           1.0,
			Adjust:           adjustWatercolor,
		},
		{
			Key:      domain.StyleJapanese,
			Keywords: []string{"japanese", "irezumi", "oriental", "dragon", "koi", "hannya", "waves", "cherry blossom"},
			Weight:   1.05,
			Adjust:   adjustJapanese,
		},
		{
			Key:              domain.StyleBlackwork,
			Keywords:         []string{"blackwork", "black work", "solid black", "heavy black", "tribal"},
			NegativeKeywords: []string{"colorful", "vibrant"},
			Weight:           1.0,
			Adjust:           adjustBlackwork,
		},
	}
}

func adjustTraditional(in AdjustInput) float64 {
	delta := 0.0
	f := in.Features

	if f.HasBoldLines() {
		delta += 1.0
	}
	if !f.IsBlackAndGrey {
		delta += 0.8
	}
	if f.HasPrimaryColors {
		delta += 1.0
	}
	if in.mentions("anchor", "eagle", "rose", "skull", "dagger", "sailor", "nautical") {
		delta += 1.2
	}
	// Full old-school signature: bold lines, primary palette, actual color
	if f.HasBoldLines() && f.HasPrimaryColors && !f.IsBlackAndGrey {
		delta += 2.0
	}
	return delta
}

func adjustRealism(in AdjustInput) float64 {
	delta := 0.0
	f := in.Features

	if f.HasFaces {
		delta += 1.0
	}
	if f.IsBlackAndGrey {
		delta += 0.5
	}
	if in.hasObject("Person", "Animal") {
		delta += 0.5
	}
	if f.HasTraditionalLook {
		delta -= 1.0
	}
	return delta
}

func adjustMicroRealism(in AdjustInput) float64 {
	delta := 0.0
	f := in.Features

	if f.HasFaces {
		delta += 0.8
	}
	if f.IsBlackAndGrey {
		delta += 0.6
	}
	if f.HasFineLines() {
		delta += 0.7
	}
	if f.HasBoldLines() {
		delta -= 1.0
	}
	return delta
}

func adjustFineline(in AdjustInput) float64 {
	delta := 0.0
	f := in.Features

	if f.HasFineLines() {
		delta += 1.0
	}
	if f.IsBlackAndGrey {
		delta += 0.4
	}
	if f.HasBoldLines() {
		delta -= 1.0
	}
	return delta
}

func adjustWatercolor(in AdjustInput) float64 {
	delta := 0.0
	f := in.Features

	if f.HasVibrantColors {
		delta += 1.0
	}
	if !f.HasBoldLines() {
		delta += 0.5
	}
	if in.mentions("paint", "watercolor") {
		delta += 1.0
	}
	if f.HasBoldLines() && f.HasPrimaryColors {
		delta -= 1.0
	}
	return delta
}

func adjustDarkArt(in AdjustInput) float64 {
	delta := 0.0
	f := in.Features

	if f.IsDarkToned {
		delta += 0.7
	}
	if in.mentions("dark", "skull", "horror", "gothic") {
		delta += 0.8
	}
	if f.HasTraditionalLook {
		delta -= 1.5
	}
	if f.HasPrimaryColors && !f.IsDarkToned {
		delta -= 1.0
	}
	return delta
}

func adjustBlackwork(in AdjustInput) float64 {
	f := in.Features

	if !f.IsBlackAndGrey {
		return -1.5
	}
	if f.IsDarkToned && !f.HasVibrantColors {
		return 1.0
	}
	return 0
}

func adjustTrashPolka(in AdjustInput) float64 {
	delta := 0.0

	strongRed := false
	offPalette := false
	for _, s := range in.Colors {
		if s.Red > 200 && s.Green < 100 && s.Blue < 100 {
			strongRed = true
		}
		if s.Green > 150 || s.Blue > 150 || (s.Red > 150 && s.Green > 150) {
			offPalette = true
		}
	}

	if strongRed && in.Features.IsHighContrast {
		delta += 1.0
	}
	if offPalette {
		delta -= 0.5
	}
	return delta
}

func adjustDotWork(in AdjustInput) float64 {
	delta := 0.0

	if in.mentions("dot", "stippling") {
		delta += 1.0
	}
	if in.Features.HasBoldLines() {
		delta -= 0.5
	}
	return delta
}

func adjustFlowers(in AdjustInput) float64 {
	if in.hasObject("Flower", "Rose", "Plant") {
		return 1.0
	}
	return 0
}

func adjustGeometric(in AdjustInput) float64 {
	if in.mentions("geometric", "geometry", "mandala") {
		return 0.8
	}
	return 0
}

func adjustJapanese(in AdjustInput) float64 {
	delta := 0.0

	if in.mentions("japanese", "oriental", "asian") {
		delta += 0.7
	}
	if in.mentions("dragon", "koi", "hannya", "waves", "cherry blossom") {
		delta += 0.8
	}
	return delta
}

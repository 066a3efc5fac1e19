package classify

import (
	"strings"

	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/util"
)

const maxTags = 3

// tagRule maps a label keyword to a display tag. Rules are scanned in
// declaration order after the fixed checks, so the slice order is part of
// the contract.
type tagRule struct {
	keyword string
	tag     string
}

func defaultTagRules() []tagRule {
	return []tagRule{
		{"dragon", "Dragon"},
		{"lion", "Animals"},
		{"wolf", "Animals"},
		{"tiger", "Animals"},
		{"butterfly", "Animals"},
		{"owl", "Animals"},
		{"fox", "Animals"},
		{"heart", "Hearts"},
		{"anchor", "Nautical"},
		{"ship", "Nautical"},
		{"wave", "Nautical"},
		{"compass", "Nautical"},
		{"lighthouse", "Nautical"},
		{"clock", "Clock"},
		{"eye", "Eye"},
		{"tree", "Nature"},
		{"mountain", "Nature"},
		{"forest", "Nature"},
		{"moon", "Celestial"},
		{"star", "Celestial"},
		{"sun", "Celestial"},
		{"galaxy", "Celestial"},
		{"angel", "Religious"},
		{"cross", "Religious"},
		{"praying", "Religious"},
		{"buddha", "Spiritual"},
		{"lotus", "Spiritual"},
		{"chakra", "Spiritual"},
		{"tribal", "Tribal"},
		{"celtic", "Celtic"},
		{"script", "Lettering"},
		{"calligraphy", "Lettering"},
		{"quote", "Lettering"},
		{"dagger", "Dagger"},
		{"crown", "Crown"},
		{"feather", "Feather"},
		{"arrow", "Arrow"},
		{"samurai", "Japanese"},
		{"geisha", "Japanese"},
		{"dreamcatcher", "Dreamcatcher"},
		{"phoenix", "Mythical"},
		{"mermaid", "Mythical"},
		{"unicorn", "Mythical"},
	}
}

var (
	floralTagKeywords     = []string{"flower", "floral", "rose", "petal", "botanical"}
	animalTagKeywords     = []string{"animal", "lion", "wolf", "tiger", "dog", "cat", "bird", "snake"}
	minimalistTagKeywords = []string{"minimal", "simple"}
	watercolorTagKeywords = []string{"paint", "splash"}
	geometricTagKeywords  = []string{"geometric", "mandala"}
	darkArtTagKeywords    = []string{"dark", "skull", "gothic"}
)

// DetectTags derives up to three display tags from the raw vision signals.
// The check order below is the contract: tags are deduplicated in insertion
// order and truncated to the first three, so earlier checks win. The
// color-mode tag is unconditional, keeping the result non-empty.
func (e *Engine) DetectTags(ann *domain.VisionAnnotations, features domain.ImageFeatures) []string {
	if ann == nil {
		ann = &domain.VisionAnnotations{}
	}

	tags := make([]string, 0, maxTags)
	seen := make(map[string]struct{})
	add := func(tag string) {
		if len(tags) == maxTags {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	// 1. Color mode
	if features.IsBlackAndGrey {
		add("Black & Grey")
	} else {
		add("Color")
	}

	// 2. Size from object coverage
	if hasLargeObject(ann.Objects) {
		add("Large")
	} else {
		add("Small")
	}

	// 3. Lettering
	if ann.HasText {
		add("Lettering")
	}

	text := CombinedText(ann)

	// 4. Portrait
	if features.HasFaces || hasObjectNamed(ann.Objects, "Face", "Person") {
		add("Portrait")
	}

	// 5. Floral
	if hasObjectNamed(ann.Objects, "Flower", "Rose", "Plant") || util.ContainsAny(text, floralTagKeywords) {
		add("Floral")
	}

	// 6. Animals
	if util.ContainsAny(text, animalTagKeywords) || hasObjectNamed(ann.Objects, "Animal", "Bird", "Dog", "Cat", "Snake") {
		add("Animals")
	}

	// 7. Minimalist
	if util.ContainsAny(text, minimalistTagKeywords) {
		add("Minimalist")
	}

	// 8. Watercolor
	if features.HasVibrantColors && util.ContainsAny(text, watercolorTagKeywords) {
		add("Watercolor")
	}

	// 9. Geometric
	if util.ContainsAny(text, geometricTagKeywords) {
		add("Geometric")
	}

	// 10. Dark Art
	if util.ContainsAny(text, darkArtTagKeywords) {
		add("Dark Art")
	}

	// 11. Generic keyword table over every label
	for _, label := range ann.Labels {
		desc := strings.ToLower(label.Description)
		for _, rule := range e.tags {
			if strings.Contains(desc, rule.keyword) {
				add(rule.tag)
			}
		}
	}

	return tags
}

// hasLargeObject reports whether any detected object spans more than half of
// both normalized image dimensions.
func hasLargeObject(objects []domain.DetectedObject) bool {
	for _, obj := range objects {
		if obj.BoundingBox.Width() > 0.5 && obj.BoundingBox.Height() > 0.5 {
			return true
		}
	}
	return false
}

func hasObjectNamed(objects []domain.DetectedObject, names ...string) bool {
	for _, obj := range objects {
		for _, name := range names {
			if strings.EqualFold(obj.Name, name) {
				return true
			}
		}
	}
	return false
}

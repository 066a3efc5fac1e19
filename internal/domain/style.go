package domain

import "strings"

// StyleKey is the internal stable identifier for a tattoo style, distinct
// from its human-readable display name.
type StyleKey string

const (
	StyleTraditional  StyleKey = "traditional"
	StyleNewSchool    StyleKey = "new_school"
	StyleAnime        StyleKey = "anime"
	StyleFineline     StyleKey = "fineline"
	StyleGeometric    StyleKey = "geometric"
	StyleMicroRealism StyleKey = "micro_realism"
	StyleRealism      StyleKey = "realism"
	StyleDotWork      StyleKey = "dot_work"
	StyleDarkArt      StyleKey = "dark_art"
	StyleFlowers      StyleKey = "flowers"
	StyleSurrealism   StyleKey = "surrealism"
	StyleTrashPolka   StyleKey = "trash_polka"
	StyleWatercolor   StyleKey = "watercolor"
	StyleJapanese     StyleKey = "japanese"
	StyleBlackwork    StyleKey = "blackwork"
)

// AllStyles lists every supported style key. The vocabulary is fixed at
// compile time; the display-name mapping below is total over it.
var AllStyles = []StyleKey{
	StyleTraditional,
	StyleNewSchool,
	StyleAnime,
	StyleFineline,
	StyleGeometric,
	StyleMicroRealism,
	StyleRealism,
	StyleDotWork,
	StyleDarkArt,
	StyleFlowers,
	StyleSurrealism,
	StyleTrashPolka,
	StyleWatercolor,
	StyleJapanese,
	StyleBlackwork,
}

var styleDisplayNames = map[StyleKey]string{
	StyleTraditional:  "Traditional",
	StyleNewSchool:    "New School",
	StyleAnime:        "Anime",
	StyleFineline:     "Fineline",
	StyleGeometric:    "Geometric",
	StyleMicroRealism: "Micro Realism",
	StyleRealism:      "Realism",
	StyleDotWork:      "Dot Work",
	StyleDarkArt:      "Dark Art",
	StyleFlowers:      "Flowers",
	StyleSurrealism:   "Surrealism",
	StyleTrashPolka:   "Trash Polka",
	StyleWatercolor:   "Watercolor",
	StyleJapanese:     "Japanese",
	StyleBlackwork:    "Blackwork",
}

// DisplayName returns the human-readable name for the style key.
func (k StyleKey) DisplayName() string {
	if name, ok := styleDisplayNames[k]; ok {
		return name
	}
	return string(k)
}

// IsValid reports whether k belongs to the supported vocabulary.
func (k StyleKey) IsValid() bool {
	_, ok := styleDisplayNames[k]
	return ok
}

// StyleKeyFromDisplayName resolves a display name back to its key,
// case-insensitively. Returns false when the name is not in the vocabulary.
func StyleKeyFromDisplayName(name string) (StyleKey, bool) {
	for key, display := range styleDisplayNames {
		if strings.EqualFold(display, name) {
			return key, true
		}
	}
	return "", false
}

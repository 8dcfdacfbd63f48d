package domain

import "fmt"

// StyleKind determines which generation instruction an image task uses.
type StyleKind string

// The five image styles generated for every source photo.
const (
	StyleMainWhiteBackground StyleKind = "main"
	StyleLifestyle           StyleKind = "lifestyle"
	StyleDetailCloseup       StyleKind = "detail"
	StyleAlternateAngle      StyleKind = "angle"
	StyleCreativeMarketing   StyleKind = "creative"
)

var allStyles = []StyleKind{
	StyleMainWhiteBackground,
	StyleLifestyle,
	StyleDetailCloseup,
	StyleAlternateAngle,
	StyleCreativeMarketing,
}

var styleLabels = map[StyleKind]string{
	StyleMainWhiteBackground: "Main Image (White BG)",
	StyleLifestyle:           "Lifestyle/Scenario",
	StyleDetailCloseup:       "Detail/Texture",
	StyleAlternateAngle:      "Alternative Angle",
	StyleCreativeMarketing:   "Creative Marketing Shot",
}

// AllStyles returns every style in display order. The returned slice is a copy.
func AllStyles() []StyleKind {
	out := make([]StyleKind, len(allStyles))
	copy(out, allStyles)
	return out
}

// ParseStyleKind maps a slug to its StyleKind.
func ParseStyleKind(slug string) (StyleKind, error) {
	style := StyleKind(slug)
	if !style.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStyle, slug)
	}
	return style, nil
}

// Valid reports whether s is one of the five known styles.
func (s StyleKind) Valid() bool {
	_, ok := styleLabels[s]
	return ok
}

// Label returns the human readable name of the style.
func (s StyleKind) Label() string {
	if label, ok := styleLabels[s]; ok {
		return label
	}
	return string(s)
}

// TaskID returns the stable task identifier for the style. It is the slug.
func (s StyleKind) TaskID() string {
	return string(s)
}

func (s StyleKind) String() string {
	return string(s)
}

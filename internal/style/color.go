package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	hexColorRegex = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
	selectorRegex = regexp.MustCompile(`^[A-Za-z0-9_\-.#:>+~*,\[\]=() ]+$`)
)

// ValidSelector reports whether selector is made only of characters that
// cannot end the rule it is written into. Braces, semicolons, quotes, slashes
// and at-signs are rejected.
func ValidSelector(selector string) bool {
	return selectorRegex.MatchString(strings.TrimSpace(selector))
}

// IsHexColor reports whether color is a rrggbb value, with or without the
// leading #.
func IsHexColor(color string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(color))
}

// HexToRGBA converts a [#]rrggbb colour to rgba(r, g, b, alpha). Colours that
// are not hex-shaped are returned unchanged; they are assumed to carry their
// own opacity already.
func HexToRGBA(color, alpha string) string {
	trimmed := strings.TrimSpace(color)
	if !IsHexColor(trimmed) {
		return color
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	c, err := colorful.Hex(trimmed)
	if err != nil {
		return color
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strings.TrimSpace(alpha))
}

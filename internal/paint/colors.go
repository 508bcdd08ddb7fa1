package paint

import "strings"

// colorAliases maps common color names to the palette names used during
// calibration. The palette names come from the paint application's swatch
// labels, which do not always match everyday color words.
var colorAliases = map[string]string{
	"blue":         "indigo",
	"light blue":   "torquoise",
	"dark blue":    "blue grey",
	"light green":  "lime",
	"violet":       "lavender",
	"pink":         "rose",
	"black":        "black color",
	"gray":         "gray-50%",
	"grey":         "gray-50%",
	"light gray":   "grey-25%",
	"light grey":   "grey-25%",
	"light yellow": "light yellow",
}

// ResolveColor maps a requested color name to its calibration target name.
// Names without an alias pass through unchanged.
func ResolveColor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if resolved, ok := colorAliases[name]; ok {
		return resolved
	}
	return name
}

package paint

import "strings"

// Shape names accepted by DrawShape
const (
	ShapeRectangle = "rectangle"
	ShapeOval      = "oval"
	ShapeCircle    = "circle"
	ShapeTriangle  = "triangle"
	ShapeLine      = "line"
	ShapePentagon  = "pentagon"
	ShapeHexagon   = "hexagon"
	ShapeStar      = "star"
)

// shapeAliases maps shape names to the calibration target of the matching
// toolbar button. Circles use the oval tool with squared bounds.
var shapeAliases = map[string]string{
	ShapeRectangle: "rectangle",
	ShapeCircle:    "oval",
	ShapeOval:      "oval",
	ShapeTriangle:  "triangle",
	ShapeLine:      "line",
	ShapePentagon:  "pentagon",
	ShapeHexagon:   "hexagon",
	ShapeStar:      "five point star",
}

// ResolveShape maps a shape name to its calibration target name and reports
// whether the shape is known.
func ResolveShape(name string) (string, bool) {
	target, ok := shapeAliases[strings.ToLower(strings.TrimSpace(name))]
	return target, ok
}

// KnownShapes lists the accepted shape names for tool definitions and errors
func KnownShapes() []string {
	return []string{
		ShapeRectangle, ShapeOval, ShapeCircle, ShapeTriangle,
		ShapeLine, ShapePentagon, ShapeHexagon, ShapeStar,
	}
}

package calibration

import (
	"fmt"
	"time"

	"github.com/easel-agent/cli/internal/domain"
)

// RequiredTargets are the toolbar elements every usable profile must record.
// Shape tools and base colors match the names the drawing tools look up after
// alias resolution.
var RequiredTargets = []string{
	"rectangle",
	"oval",
	"triangle",
	"line",
	"text tool",
	"select",
	"black",
	"red",
	"green",
	"indigo",
}

// OptionalTargets are recorded when present but their absence only degrades
// the palette, not the core drawing vocabulary.
var OptionalTargets = []string{
	"pentagon",
	"hexagon",
	"five point star",
	"white",
	"yellow",
	"orange",
	"purple",
	"brown",
	"dark red",
	"lime",
	"rose",
	"lavender",
	"torquoise",
	"blue grey",
	"light yellow",
	"gray-50%",
	"grey-25%",
	"black color",
}

// Point is a screen coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Profile is a saved mapping from named toolbar element to screen coordinate.
// It is specific to one screen resolution and window layout.
type Profile struct {
	Name         string           `json:"name"`
	CreatedAt    time.Time        `json:"created_at"`
	ScreenWidth  int              `json:"screen_width"`
	ScreenHeight int              `json:"screen_height"`
	Targets      map[string]Point `json:"targets"`
}

// NewProfile creates an empty profile stamped with the live screen resolution
func NewProfile(name string, screenWidth, screenHeight int) *Profile {
	return &Profile{
		Name:         name,
		CreatedAt:    time.Now(),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Targets:      make(map[string]Point),
	}
}

// Record stores a target position after bounds validation
func (p *Profile) Record(name string, x, y int) error {
	if x < 0 || y < 0 || x > p.ScreenWidth || y > p.ScreenHeight {
		return fmt.Errorf("position (%d, %d) for %q is outside the %dx%d screen",
			x, y, name, p.ScreenWidth, p.ScreenHeight)
	}
	p.Targets[name] = Point{X: x, Y: y}
	return nil
}

// Lookup returns the recorded position of a target
func (p *Profile) Lookup(name string) (Point, error) {
	pt, ok := p.Targets[name]
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", domain.ErrTargetNotCalibrated, name)
	}
	return pt, nil
}

// Has reports whether a target was recorded
func (p *Profile) Has(name string) bool {
	_, ok := p.Targets[name]
	return ok
}

// Missing returns the required targets that have not been recorded
func (p *Profile) Missing() []string {
	var missing []string
	for _, name := range RequiredTargets {
		if !p.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Validate checks internal consistency: every recorded point must lie within
// the recorded screen resolution.
func (p *Profile) Validate() error {
	if p.ScreenWidth <= 0 || p.ScreenHeight <= 0 {
		return fmt.Errorf("profile %q has no recorded screen resolution", p.Name)
	}
	for name, pt := range p.Targets {
		if pt.X < 0 || pt.Y < 0 || pt.X > p.ScreenWidth || pt.Y > p.ScreenHeight {
			return fmt.Errorf("profile %q: target %q at (%d, %d) is outside the recorded %dx%d screen",
				p.Name, name, pt.X, pt.Y, p.ScreenWidth, p.ScreenHeight)
		}
	}
	return nil
}

// CheckResolution compares the recorded resolution against the live one.
// A mismatch means every recorded coordinate points at the wrong pixel.
func (p *Profile) CheckResolution(liveWidth, liveHeight int) error {
	if p.ScreenWidth != liveWidth || p.ScreenHeight != liveHeight {
		return fmt.Errorf("%w: recorded at %dx%d, screen is now %dx%d (run `easel calibrate`)",
			domain.ErrStaleCalibration, p.ScreenWidth, p.ScreenHeight, liveWidth, liveHeight)
	}
	return nil
}

package display

import (
	"context"
	"image"
)

// Controller is the input-injector capability: it abstracts display
// server-specific input injection and screen queries (X11 XTEST, robotgo).
type Controller interface {
	// Screen operations
	GetScreenDimensions(ctx context.Context) (width, height int, err error)
	CaptureScreen(ctx context.Context, region *Region) (image.Image, error)
	CaptureScreenBytes(ctx context.Context, region *Region) ([]byte, error)

	// Mouse operations
	GetCursorPosition(ctx context.Context) (x, y int, err error)
	MoveMouse(ctx context.Context, x, y int) error
	ClickMouse(ctx context.Context, button MouseButton, clicks int) error
	PressMouse(ctx context.Context, button MouseButton) error
	ReleaseMouse(ctx context.Context, button MouseButton) error

	// Keyboard operations
	TypeText(ctx context.Context, text string, delayMs int) error
	SendKeyCombo(ctx context.Context, combo string) error
	HoldKey(ctx context.Context, key string) error
	ReleaseKey(ctx context.Context, key string) error

	// Window operations
	FindWindow(ctx context.Context, titleSubstring string) (*Window, error)
	ActivateWindow(ctx context.Context, w *Window) error
	CloseWindow(ctx context.Context, w *Window) error

	// Lifecycle
	Close() error
}

// Region represents a rectangular area on the screen
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window describes a top-level window located on the display
type Window struct {
	ID    uint32
	Title string
	Rect  Region
}

// MouseButton represents a mouse button
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// String returns the string representation of a mouse button
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseMouseButton parses a string into a MouseButton
func ParseMouseButton(s string) MouseButton {
	switch s {
	case "left":
		return MouseButtonLeft
	case "middle":
		return MouseButtonMiddle
	case "right":
		return MouseButtonRight
	default:
		return MouseButtonLeft
	}
}

// Provider creates Controller instances for a specific display server/protocol
type Provider interface {
	// GetController creates a new Controller for the specified display
	GetController(display string) (Controller, error)

	// GetDisplayInfo returns information about the display server/protocol
	GetDisplayInfo() DisplayInfo

	// IsAvailable returns true if this display server is available on the current system
	IsAvailable() bool
}

// DisplayInfo contains metadata about a display server or protocol
type DisplayInfo struct {
	Name             string // "x11", "robot"
	SupportsRegions  bool
	SupportsMouse    bool
	SupportsKeyboard bool
	SupportsWindows  bool
}

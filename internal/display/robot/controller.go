// Package robot provides a cross-platform display controller backed by
// robotgo. It is the fallback when no X11 display is reachable, and the
// primary backend on Windows and macOS.
package robot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	robotgo "github.com/go-vgo/robotgo"

	display "github.com/easel-agent/cli/internal/display"
	logger "github.com/easel-agent/cli/internal/logger"
)

// Controller implements display.Controller using robotgo
type Controller struct{}

var _ display.Controller = (*Controller)(nil)

// GetScreenDimensions returns the primary screen size
func (c *Controller) GetScreenDimensions(ctx context.Context) (int, int, error) {
	width, height := robotgo.GetScreenSize()
	return width, height, nil
}

// CaptureScreen captures the whole screen or a region
func (c *Controller) CaptureScreen(ctx context.Context, region *display.Region) (image.Image, error) {
	var bitmap robotgo.CBitmap
	if region == nil {
		bitmap = robotgo.CaptureScreen()
	} else {
		bitmap = robotgo.CaptureScreen(region.X, region.Y, region.Width, region.Height)
	}
	if bitmap == nil {
		return nil, fmt.Errorf("failed to capture screen")
	}
	defer robotgo.FreeBitmap(bitmap)

	return robotgo.ToImage(bitmap), nil
}

// CaptureScreenBytes captures a screenshot and returns PNG bytes
func (c *Controller) CaptureScreenBytes(ctx context.Context, region *display.Region) ([]byte, error) {
	img, err := c.CaptureScreen(ctx, region)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// GetCursorPosition returns the current cursor position
func (c *Controller) GetCursorPosition(ctx context.Context) (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

// MoveMouse moves the cursor to absolute coordinates
func (c *Controller) MoveMouse(ctx context.Context, x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// ClickMouse clicks the given button at the current cursor position
func (c *Controller) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	for i := 0; i < clicks; i++ {
		robotgo.Click(button.String(), false)
	}
	return nil
}

// PressMouse presses and holds a mouse button
func (c *Controller) PressMouse(ctx context.Context, button display.MouseButton) error {
	return robotgo.Toggle(button.String(), "down")
}

// ReleaseMouse releases a held mouse button
func (c *Controller) ReleaseMouse(ctx context.Context, button display.MouseButton) error {
	return robotgo.Toggle(button.String(), "up")
}

// TypeText types text with the given per-keystroke delay
func (c *Controller) TypeText(ctx context.Context, text string, delayMs int) error {
	if delayMs <= 0 {
		robotgo.TypeStr(text)
		return nil
	}

	for _, char := range text {
		robotgo.TypeStr(string(char))
		robotgo.MilliSleep(delayMs)
	}
	return nil
}

// SendKeyCombo sends a key combination such as "ctrl+s"
func (c *Controller) SendKeyCombo(ctx context.Context, combo string) error {
	combo = strings.ReplaceAll(combo, "-", "+")
	parts := strings.Split(combo, "+")
	if len(parts) == 0 {
		return fmt.Errorf("invalid key combination: %s", combo)
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	modifiers := make([]interface{}, 0, len(parts)-1)
	for _, mod := range parts[:len(parts)-1] {
		modifiers = append(modifiers, strings.ToLower(strings.TrimSpace(mod)))
	}

	if err := robotgo.KeyTap(key, modifiers...); err != nil {
		return fmt.Errorf("failed to send key combo %q: %w", combo, err)
	}
	return nil
}

// HoldKey presses and holds a key
func (c *Controller) HoldKey(ctx context.Context, key string) error {
	if err := robotgo.KeyToggle(key, "down"); err != nil {
		return fmt.Errorf("failed to hold key %q: %w", key, err)
	}
	return nil
}

// ReleaseKey releases a held key
func (c *Controller) ReleaseKey(ctx context.Context, key string) error {
	if err := robotgo.KeyToggle(key, "up"); err != nil {
		return fmt.Errorf("failed to release key %q: %w", key, err)
	}
	return nil
}

// FindWindow locates a window by matching its process name or title
func (c *Controller) FindWindow(ctx context.Context, titleSubstring string) (*display.Window, error) {
	pids, err := robotgo.FindIds(titleSubstring)
	if err != nil {
		return nil, fmt.Errorf("failed to search processes: %w", err)
	}
	if len(pids) == 0 {
		return nil, fmt.Errorf("no window with title containing %q", titleSubstring)
	}

	pid := pids[0]
	x, y, w, h := robotgo.GetBounds(pid)

	return &display.Window{
		ID:    uint32(pid),
		Title: robotgo.GetTitle(pid),
		Rect:  display.Region{X: x, Y: y, Width: w, Height: h},
	}, nil
}

// ActivateWindow brings a window's process to the foreground
func (c *Controller) ActivateWindow(ctx context.Context, w *display.Window) error {
	if err := robotgo.ActivePid(int(w.ID)); err != nil {
		return fmt.Errorf("failed to activate window: %w", err)
	}

	x, y, width, height := robotgo.GetBounds(int(w.ID))
	if width > 0 && height > 0 {
		w.Rect = display.Region{X: x, Y: y, Width: width, Height: height}
	}

	return nil
}

// CloseWindow activates the window and closes it
func (c *Controller) CloseWindow(ctx context.Context, w *display.Window) error {
	if err := robotgo.ActivePid(int(w.ID)); err != nil {
		logger.Debug("Failed to activate window before closing", "pid", w.ID, "error", err)
	}
	robotgo.CloseWindow()
	return nil
}

// Close releases controller resources. robotgo holds no connection state.
func (c *Controller) Close() error {
	return nil
}

// Provider implements display.Provider for robotgo
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new robotgo provider
func NewProvider() *Provider {
	return &Provider{}
}

// GetController returns a robotgo controller. The display argument is ignored;
// robotgo always targets the primary display.
func (p *Provider) GetController(_ string) (display.Controller, error) {
	return &Controller{}, nil
}

// GetDisplayInfo returns information about the robotgo backend
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{
		Name:             "robot",
		SupportsRegions:  true,
		SupportsMouse:    true,
		SupportsKeyboard: true,
		SupportsWindows:  true,
	}
}

// IsAvailable returns true; robotgo is the last-resort fallback on every platform
func (p *Provider) IsAvailable() bool {
	return true
}

// Register the robotgo provider in the global registry. Backend selection
// asks for x11 by name first, so robotgo only wins when no X display is
// reachable.
func init() {
	display.Register(NewProvider())
}

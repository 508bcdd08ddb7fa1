// Package paint drives the paint application through the display controller:
// it owns the window handle, the canvas geometry and the calibrated toolbar
// positions, and exposes the drawing operations the tool layer builds on.
package paint

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/easel-agent/cli/config"
	"github.com/easel-agent/cli/internal/calibration"
	"github.com/easel-agent/cli/internal/canvas"
	"github.com/easel-agent/cli/internal/display"
	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/logger"
)

const windowPollInterval = 500 * time.Millisecond

// Driver executes drawing operations against the paint application
type Driver struct {
	ctrl    display.Controller
	profile *calibration.Profile
	cfg     config.PaintConfig
	insets  canvas.Insets

	window *display.Window
	mapper *canvas.Mapper
}

// NewDriver creates a paint driver over the given controller and profile
func NewDriver(ctrl display.Controller, profile *calibration.Profile, cfg config.PaintConfig) *Driver {
	return &Driver{
		ctrl:    ctrl,
		profile: profile,
		cfg:     cfg,
		insets: canvas.Insets{
			Left:   cfg.Insets.Left,
			Top:    cfg.Insets.Top,
			Right:  cfg.Insets.Right,
			Bottom: cfg.Insets.Bottom,
		},
	}
}

// Window returns the tracked paint window, or nil before Open/Focus
func (d *Driver) Window() *display.Window {
	return d.window
}

// settle pauses between GUI primitives, honoring context cancellation
func (d *Driver) settle(ctx context.Context, ms int) error {
	if ms <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return nil
	}
}

// Open launches the paint application if its window is not already present,
// then focuses it and derives the canvas geometry.
func (d *Driver) Open(ctx context.Context) error {
	if win, err := d.ctrl.FindWindow(ctx, d.cfg.WindowTitle); err == nil {
		d.window = win
		return d.Focus(ctx)
	}

	parts := strings.Fields(d.cfg.LaunchCommand)
	if len(parts) == 0 {
		return fmt.Errorf("paint.launch_command is empty")
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %q: %w", d.cfg.LaunchCommand, err)
	}
	// The process is detached; the window is tracked through the display
	// controller from here on.
	go func() { _ = cmd.Wait() }()

	logger.Info("Launched paint application", "command", d.cfg.LaunchCommand, "pid", cmd.Process.Pid)

	deadline := time.Now().Add(time.Duration(d.cfg.SettleDelayMs*5) * time.Millisecond)
	for {
		if err := d.settle(ctx, int(windowPollInterval.Milliseconds())); err != nil {
			return err
		}

		win, err := d.ctrl.FindWindow(ctx, d.cfg.WindowTitle)
		if err == nil {
			d.window = win
			break
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: launched %q but no window titled %q appeared",
				domain.ErrWindowNotFound, d.cfg.LaunchCommand, d.cfg.WindowTitle)
		}
	}

	return d.Focus(ctx)
}

// Focus re-activates the paint window and refreshes the canvas geometry.
// It re-resolves the window first, so a closed-and-reopened application is
// picked up transparently.
func (d *Driver) Focus(ctx context.Context) error {
	win, err := d.ctrl.FindWindow(ctx, d.cfg.WindowTitle)
	if err != nil {
		d.window = nil
		d.mapper = nil
		return fmt.Errorf("%w: %v", domain.ErrWindowNotFound, err)
	}
	d.window = win

	if err := d.ctrl.ActivateWindow(ctx, d.window); err != nil {
		return fmt.Errorf("failed to focus paint window: %w", err)
	}

	if err := d.settle(ctx, d.cfg.SettleDelayMs); err != nil {
		return err
	}

	// Activation may have maximized or moved the window
	if win, err := d.ctrl.FindWindow(ctx, d.cfg.WindowTitle); err == nil {
		d.window = win
	}

	d.mapper = canvas.NewMapper(d.window.Rect, d.insets)
	region := d.mapper.Region()
	logger.Debug("Canvas geometry refreshed",
		"x", region.X, "y", region.Y, "width", region.Width, "height", region.Height)

	return nil
}

// ensureCanvas makes sure the window is tracked and geometry is known
func (d *Driver) ensureCanvas(ctx context.Context) error {
	if d.window != nil && d.mapper != nil {
		return nil
	}
	return d.Focus(ctx)
}

// clickTarget moves to a calibrated toolbar position and clicks it
func (d *Driver) clickTarget(ctx context.Context, name string) error {
	pt, err := d.profile.Lookup(name)
	if err != nil {
		return err
	}

	if err := d.ctrl.MoveMouse(ctx, pt.X, pt.Y); err != nil {
		return fmt.Errorf("failed to move to %q: %w", name, err)
	}
	if err := d.ctrl.ClickMouse(ctx, display.MouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %q: %w", name, err)
	}

	return d.settle(ctx, d.cfg.ActionDelayMs)
}

// clickAt moves to a screen coordinate and clicks
func (d *Driver) clickAt(ctx context.Context, x, y int) error {
	if err := d.ctrl.MoveMouse(ctx, x, y); err != nil {
		return fmt.Errorf("failed to move mouse: %w", err)
	}
	if err := d.ctrl.ClickMouse(ctx, display.MouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	return nil
}

// deselect clicks the select tool and then an empty canvas corner, so the
// next operation does not drag the shape that was just drawn.
func (d *Driver) deselect(ctx context.Context) error {
	if !d.profile.Has("select") {
		return nil
	}

	if err := d.clickTarget(ctx, "select"); err != nil {
		return err
	}

	x, y := d.mapper.EmptyCorner()
	if err := d.clickAt(ctx, x, y); err != nil {
		return err
	}

	// Park the cursor away from the corner
	return d.ctrl.MoveMouse(ctx, x+30, y+30)
}

// DrawShape draws a shape between two relative canvas coordinates (0..1000).
// Circles use the oval tool with squared bounds and Shift held during the
// drag to force a 1:1 aspect ratio.
func (d *Driver) DrawShape(ctx context.Context, shape string, relStartX, relStartY, relEndX, relEndY int) (*domain.DrawShapeResult, error) {
	target, ok := ResolveShape(shape)
	if !ok {
		return nil, fmt.Errorf("unknown shape %q (supported: %s)", shape, strings.Join(KnownShapes(), ", "))
	}

	if err := d.ensureCanvas(ctx); err != nil {
		return nil, err
	}

	isCircle := strings.ToLower(strings.TrimSpace(shape)) == ShapeCircle
	if isCircle {
		relStartX, relStartY, relEndX, relEndY = canvas.SquareBounds(relStartX, relStartY, relEndX, relEndY)
	}

	startX, startY := d.mapper.ToScreen(relStartX, relStartY)
	endX, endY := d.mapper.ToScreen(relEndX, relEndY)

	// Clamping can skew the aspect ratio again
	if isCircle {
		startX, startY, endX, endY = canvas.SquareBounds(startX, startY, endX, endY)
	}

	if err := d.clickTarget(ctx, target); err != nil {
		return nil, err
	}

	if isCircle {
		if err := d.ctrl.HoldKey(ctx, "shift"); err != nil {
			return nil, fmt.Errorf("failed to hold shift: %w", err)
		}
		defer func() {
			if err := d.ctrl.ReleaseKey(ctx, "shift"); err != nil {
				logger.Warn("Failed to release shift", "error", err)
			}
		}()
	}

	if err := d.drag(ctx, startX, startY, endX, endY); err != nil {
		return nil, err
	}

	if err := d.deselect(ctx); err != nil {
		return nil, err
	}

	logger.Info("Drew shape", "shape", shape, "start_x", startX, "start_y", startY, "end_x", endX, "end_y", endY)

	return &domain.DrawShapeResult{
		Shape:  shape,
		StartX: startX,
		StartY: startY,
		EndX:   endX,
		EndY:   endY,
	}, nil
}

// drag presses the left button at the start point, moves to the end point
// and releases
func (d *Driver) drag(ctx context.Context, startX, startY, endX, endY int) error {
	if err := d.ctrl.MoveMouse(ctx, startX, startY); err != nil {
		return fmt.Errorf("failed to move to drag start: %w", err)
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs/2); err != nil {
		return err
	}

	if err := d.ctrl.PressMouse(ctx, display.MouseButtonLeft); err != nil {
		return fmt.Errorf("failed to press mouse: %w", err)
	}

	if err := d.ctrl.MoveMouse(ctx, endX, endY); err != nil {
		// Try not to leave the button stuck down
		_ = d.ctrl.ReleaseMouse(ctx, display.MouseButtonLeft)
		return fmt.Errorf("failed to drag: %w", err)
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs/2); err != nil {
		_ = d.ctrl.ReleaseMouse(ctx, display.MouseButtonLeft)
		return err
	}

	if err := d.ctrl.ReleaseMouse(ctx, display.MouseButtonLeft); err != nil {
		return fmt.Errorf("failed to release mouse: %w", err)
	}

	return d.settle(ctx, d.cfg.ActionDelayMs)
}

// SelectColor clicks the palette swatch for the given color name
func (d *Driver) SelectColor(ctx context.Context, name string) (*domain.SelectColorResult, error) {
	resolved := ResolveColor(name)

	pt, err := d.profile.Lookup(resolved)
	if err != nil {
		return nil, err
	}

	if err := d.ctrl.MoveMouse(ctx, pt.X, pt.Y); err != nil {
		return nil, fmt.Errorf("failed to move to color %q: %w", name, err)
	}
	if err := d.ctrl.ClickMouse(ctx, display.MouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("failed to click color %q: %w", name, err)
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs); err != nil {
		return nil, err
	}

	logger.Info("Selected color", "color", name, "resolved", resolved)

	return &domain.SelectColorResult{
		Color:    name,
		Resolved: resolved,
		X:        pt.X,
		Y:        pt.Y,
	}, nil
}

// AddText types text at a relative canvas coordinate using the text tool
func (d *Driver) AddText(ctx context.Context, text string, relX, relY, typeDelayMs int) (*domain.AddTextResult, error) {
	if err := d.ensureCanvas(ctx); err != nil {
		return nil, err
	}

	x, y := d.mapper.ToScreen(relX, relY)

	if err := d.clickTarget(ctx, "text tool"); err != nil {
		return nil, err
	}

	if err := d.clickAt(ctx, x, y); err != nil {
		return nil, err
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs); err != nil {
		return nil, err
	}

	if err := d.ctrl.TypeText(ctx, text, typeDelayMs); err != nil {
		return nil, fmt.Errorf("failed to type text: %w", err)
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs); err != nil {
		return nil, err
	}

	if err := d.deselect(ctx); err != nil {
		return nil, err
	}

	logger.Info("Added text", "text", text, "x", x, "y", y)

	return &domain.AddTextResult{Text: text, X: x, Y: y}, nil
}

// SaveImage saves the current drawing via the Ctrl+S dialog, typing the
// target path into it
func (d *Driver) SaveImage(ctx context.Context, path string, typeDelayMs int) (*domain.SaveImageResult, error) {
	if err := d.ensureCanvas(ctx); err != nil {
		return nil, err
	}

	if err := d.ctrl.SendKeyCombo(ctx, "ctrl+s"); err != nil {
		return nil, fmt.Errorf("failed to open save dialog: %w", err)
	}
	if err := d.settle(ctx, d.cfg.SettleDelayMs); err != nil {
		return nil, err
	}

	if err := d.ctrl.TypeText(ctx, path, typeDelayMs); err != nil {
		return nil, fmt.Errorf("failed to type save path: %w", err)
	}
	if err := d.ctrl.TypeText(ctx, "\n", typeDelayMs); err != nil {
		return nil, fmt.Errorf("failed to confirm save dialog: %w", err)
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs); err != nil {
		return nil, err
	}

	logger.Info("Saved image", "path", path)

	return &domain.SaveImageResult{Path: path}, nil
}

// CloseApp closes the paint window. An unsaved-changes prompt is dismissed
// without saving.
func (d *Driver) CloseApp(ctx context.Context) error {
	win, err := d.ctrl.FindWindow(ctx, d.cfg.WindowTitle)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWindowNotFound, err)
	}

	if err := d.ctrl.CloseWindow(ctx, win); err != nil {
		return err
	}
	if err := d.settle(ctx, d.cfg.ActionDelayMs); err != nil {
		return err
	}

	// "Don't save" in the confirmation dialog, if one appeared
	if _, err := d.ctrl.FindWindow(ctx, d.cfg.WindowTitle); err == nil {
		if err := d.ctrl.SendKeyCombo(ctx, "alt+n"); err != nil {
			logger.Debug("Failed to dismiss save prompt", "error", err)
		}
	}

	d.window = nil
	d.mapper = nil

	logger.Info("Closed paint application")
	return nil
}

package calibration

import (
	"context"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/internal/display"
)

// cursorController returns a scripted sequence of cursor positions
type cursorController struct {
	positions []Point
	next      int
}

func (c *cursorController) GetScreenDimensions(ctx context.Context) (int, int, error) {
	return 1920, 1080, nil
}

func (c *cursorController) CaptureScreen(ctx context.Context, region *display.Region) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (c *cursorController) CaptureScreenBytes(ctx context.Context, region *display.Region) ([]byte, error) {
	return nil, nil
}

func (c *cursorController) GetCursorPosition(ctx context.Context) (int, int, error) {
	pt := c.positions[c.next%len(c.positions)]
	c.next++
	return pt.X, pt.Y, nil
}

func (c *cursorController) MoveMouse(ctx context.Context, x, y int) error { return nil }
func (c *cursorController) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	return nil
}
func (c *cursorController) PressMouse(ctx context.Context, button display.MouseButton) error {
	return nil
}
func (c *cursorController) ReleaseMouse(ctx context.Context, button display.MouseButton) error {
	return nil
}
func (c *cursorController) TypeText(ctx context.Context, text string, delayMs int) error { return nil }
func (c *cursorController) SendKeyCombo(ctx context.Context, combo string) error         { return nil }
func (c *cursorController) HoldKey(ctx context.Context, key string) error                { return nil }
func (c *cursorController) ReleaseKey(ctx context.Context, key string) error             { return nil }
func (c *cursorController) FindWindow(ctx context.Context, titleSubstring string) (*display.Window, error) {
	return nil, nil
}
func (c *cursorController) ActivateWindow(ctx context.Context, w *display.Window) error { return nil }
func (c *cursorController) CloseWindow(ctx context.Context, w *display.Window) error    { return nil }
func (c *cursorController) Close() error                                                { return nil }

func TestCalibratorRecordsAllRequired(t *testing.T) {
	ctrl := &cursorController{positions: []Point{{X: 100, Y: 50}}}

	// Enter for every required target, then end the optional and extra phases
	input := strings.Repeat("\n", len(RequiredTargets)) + "done\ndone\n"
	var out strings.Builder

	calibrator := NewCalibrator(ctrl, strings.NewReader(input), &out)
	profile, err := calibrator.Run(context.Background(), "default")
	require.NoError(t, err)

	assert.Empty(t, profile.Missing())
	assert.Equal(t, 1920, profile.ScreenWidth)
	assert.Equal(t, 1080, profile.ScreenHeight)
	assert.NotContains(t, out.String(), "Warning")
}

func TestCalibratorSkipLeavesTargetMissing(t *testing.T) {
	ctrl := &cursorController{positions: []Point{{X: 100, Y: 50}}}

	// Skip the first required target, record the rest
	input := "skip\n" + strings.Repeat("\n", len(RequiredTargets)-1) + "done\ndone\n"
	var out strings.Builder

	calibrator := NewCalibrator(ctrl, strings.NewReader(input), &out)
	profile, err := calibrator.Run(context.Background(), "default")
	require.NoError(t, err)

	assert.Equal(t, []string{RequiredTargets[0]}, profile.Missing())
	assert.Contains(t, out.String(), "missing required targets")
}

func TestCalibratorRecordsExtras(t *testing.T) {
	ctrl := &cursorController{positions: []Point{{X: 300, Y: 70}}}

	input := strings.Repeat("\n", len(RequiredTargets)) + "done\n" +
		"eraser\n\n" + // name, then confirm
		"done\n"
	var out strings.Builder

	calibrator := NewCalibrator(ctrl, strings.NewReader(input), &out)
	profile, err := calibrator.Run(context.Background(), "default")
	require.NoError(t, err)

	pt, err := profile.Lookup("eraser")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 300, Y: 70}, pt)
}

func TestCalibratorEOFMidPhase(t *testing.T) {
	ctrl := &cursorController{positions: []Point{{X: 1, Y: 1}}}

	calibrator := NewCalibrator(ctrl, strings.NewReader("\n\n"), &strings.Builder{})
	_, err := calibrator.Run(context.Background(), "default")
	assert.Error(t, err)
}

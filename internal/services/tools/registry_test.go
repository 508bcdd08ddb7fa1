package tools

import (
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/config"
	"github.com/easel-agent/cli/internal/calibration"
	"github.com/easel-agent/cli/internal/display"
	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// stubController satisfies display.Controller with no-op injections so the
// driver under the tools can run end to end.
type stubController struct {
	typed []string
}

func (s *stubController) GetScreenDimensions(ctx context.Context) (int, int, error) {
	return 1920, 1080, nil
}

func (s *stubController) CaptureScreen(ctx context.Context, region *display.Region) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (s *stubController) CaptureScreenBytes(ctx context.Context, region *display.Region) ([]byte, error) {
	return nil, nil
}

func (s *stubController) GetCursorPosition(ctx context.Context) (int, int, error) { return 0, 0, nil }
func (s *stubController) MoveMouse(ctx context.Context, x, y int) error           { return nil }
func (s *stubController) ClickMouse(ctx context.Context, button display.MouseButton, clicks int) error {
	return nil
}
func (s *stubController) PressMouse(ctx context.Context, button display.MouseButton) error {
	return nil
}
func (s *stubController) ReleaseMouse(ctx context.Context, button display.MouseButton) error {
	return nil
}

func (s *stubController) TypeText(ctx context.Context, text string, delayMs int) error {
	s.typed = append(s.typed, text)
	return nil
}

func (s *stubController) SendKeyCombo(ctx context.Context, combo string) error { return nil }
func (s *stubController) HoldKey(ctx context.Context, key string) error        { return nil }
func (s *stubController) ReleaseKey(ctx context.Context, key string) error     { return nil }

func (s *stubController) FindWindow(ctx context.Context, titleSubstring string) (*display.Window, error) {
	return &display.Window{
		ID:    1,
		Title: "Paint",
		Rect:  display.Region{X: 0, Y: 0, Width: 1030, Height: 1000},
	}, nil
}

func (s *stubController) ActivateWindow(ctx context.Context, w *display.Window) error { return nil }
func (s *stubController) CloseWindow(ctx context.Context, w *display.Window) error    { return nil }
func (s *stubController) Close() error                                                { return nil }

func testRegistry(t *testing.T) (*Registry, *stubController) {
	t.Helper()

	ctrl := &stubController{}
	profile := calibration.NewProfile("test", 1920, 1080)
	for i, name := range append(append([]string{}, calibration.RequiredTargets...), calibration.OptionalTargets...) {
		require.NoError(t, profile.Record(name, 100+i*10, 40))
	}

	cfg := config.DefaultConfig()
	cfg.Paint.SettleDelayMs = 0
	cfg.Paint.ActionDelayMs = 0
	cfg.Display.TypeDelayMs = 0

	driver := paint.NewDriver(ctrl, profile, cfg.Paint)
	return NewRegistry(cfg, driver), ctrl
}

func TestRegistryListsAllTools(t *testing.T) {
	registry, _ := testRegistry(t)

	assert.Equal(t, []string{
		"add_text",
		"close_paint",
		"draw_shape",
		"focus_paint",
		"open_paint",
		"save_image",
		"select_color",
	}, registry.ListAvailableTools())
}

func TestRegistryDefinitionsMatchNames(t *testing.T) {
	registry, _ := testRegistry(t)

	definitions := registry.ListTools()
	require.Len(t, definitions, 7)

	for _, def := range definitions {
		assert.True(t, registry.IsToolEnabled(def.Function.Name), def.Function.Name)
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	registry, _ := testRegistry(t)

	_, err := registry.ExecuteTool(context.Background(), "mix_colors", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
	assert.False(t, registry.IsToolEnabled("mix_colors"))
}

func TestRegistryExecuteDrawShape(t *testing.T) {
	registry, _ := testRegistry(t)

	// JSON-decoded arguments arrive as float64
	result, err := registry.ExecuteTool(context.Background(), "draw_shape", map[string]any{
		"shape": "rectangle",
		"x1":    float64(100), "y1": float64(100),
		"x2": float64(500), "y2": float64(500),
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)

	data, ok := result.Data.(*domain.DrawShapeResult)
	require.True(t, ok)
	assert.Equal(t, "rectangle", data.Shape)
	assert.Equal(t, "drag", data.Method)
}

func TestRegistryValidateRejectsBadArgs(t *testing.T) {
	registry, _ := testRegistry(t)

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"missing shape", "draw_shape", map[string]any{"x1": 0.0, "y1": 0.0, "x2": 1.0, "y2": 1.0}},
		{"unknown shape", "draw_shape", map[string]any{"shape": "blob", "x1": 0.0, "y1": 0.0, "x2": 1.0, "y2": 1.0}},
		{"missing coordinate", "draw_shape", map[string]any{"shape": "line", "x1": 0.0, "y1": 0.0, "x2": 1.0}},
		{"coordinate as string", "draw_shape", map[string]any{"shape": "line", "x1": "0", "y1": 0.0, "x2": 1.0, "y2": 1.0}},
		{"missing color", "select_color", map[string]any{}},
		{"missing text", "add_text", map[string]any{"x": 1.0, "y": 1.0}},
		{"missing path", "save_image", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.ValidateTool(tt.tool, tt.args)
			assert.Error(t, err)
		})
	}
}

func TestRegistryExecuteSelectColorAlias(t *testing.T) {
	registry, _ := testRegistry(t)

	result, err := registry.ExecuteTool(context.Background(), "select_color", map[string]any{"color": "pink"})
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)

	data, ok := result.Data.(*domain.SelectColorResult)
	require.True(t, ok)
	assert.Equal(t, "rose", data.Resolved)
	assert.Contains(t, registry.FormatResult(result, domain.FormatterShort), "rose")
}

func TestRegistryExecuteAddText(t *testing.T) {
	registry, ctrl := testRegistry(t)

	result, err := registry.ExecuteTool(context.Background(), "add_text", map[string]any{
		"text": "hello", "x": float64(500), "y": float64(500),
	})
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)
	assert.Contains(t, ctrl.typed, "hello")
}

func TestRegistryExecuteFailureIsResultNotError(t *testing.T) {
	registry, _ := testRegistry(t)

	// chartreuse has no calibration target and no alias
	result, err := registry.ExecuteTool(context.Background(), "select_color", map[string]any{"color": "chartreuse"})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, result.Error, "chartreuse")

	formatted := registry.FormatResult(result, domain.FormatterLLM)
	assert.Contains(t, formatted, "failed")
}

func TestRegistryFormatUnknownResult(t *testing.T) {
	registry, _ := testRegistry(t)

	formatted := registry.FormatResult(&domain.ToolExecutionResult{ToolName: "nope"}, domain.FormatterLLM)
	assert.Equal(t, fmt.Sprintf("%s: unknown tool", "nope"), formatted)
}

package tools

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// OpenPaintTool launches the paint application and waits for its window
type OpenPaintTool struct {
	driver *paint.Driver
}

// NewOpenPaintTool creates a new open_paint tool
func NewOpenPaintTool(driver *paint.Driver) *OpenPaintTool {
	return &OpenPaintTool{driver: driver}
}

// Definition returns the tool definition for the LLM
func (t *OpenPaintTool) Definition() sdk.ChatCompletionTool {
	description := "Opens the paint application and waits until its window is ready. Call this before any drawing if the application is not already open."
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "open_paint",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// Execute runs the open_paint tool
func (t *OpenPaintTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	if err := t.driver.Open(ctx); err != nil {
		return failedResult("open_paint", args, start, err), nil
	}

	win := t.driver.Window()
	return &domain.ToolExecutionResult{
		ToolName:  "open_paint",
		Arguments: args,
		Success:   true,
		Duration:  time.Since(start),
		Data: &domain.WindowResult{
			Title:  win.Title,
			X:      win.Rect.X,
			Y:      win.Rect.Y,
			Width:  win.Rect.Width,
			Height: win.Rect.Height,
		},
	}, nil
}

// Validate checks the tool arguments
func (t *OpenPaintTool) Validate(args map[string]any) error {
	return nil
}

// IsEnabled returns whether this tool is enabled
func (t *OpenPaintTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *OpenPaintTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("open_paint failed: %s", result.Error)
	}
	if win, ok := result.Data.(*domain.WindowResult); ok {
		return fmt.Sprintf("opened %q (%dx%d)", win.Title, win.Width, win.Height)
	}
	return "opened paint"
}

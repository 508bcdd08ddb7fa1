package tools

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// FocusPaintTool re-activates the paint window and refreshes the canvas
// geometry
type FocusPaintTool struct {
	driver *paint.Driver
}

// NewFocusPaintTool creates a new focus_paint tool
func NewFocusPaintTool(driver *paint.Driver) *FocusPaintTool {
	return &FocusPaintTool{driver: driver}
}

// Definition returns the tool definition for the LLM
func (t *FocusPaintTool) Definition() sdk.ChatCompletionTool {
	description := "Brings the already-open paint window to the foreground. Use this when the window may have lost focus."
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "focus_paint",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// Execute runs the focus_paint tool
func (t *FocusPaintTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	if err := t.driver.Focus(ctx); err != nil {
		return failedResult("focus_paint", args, start, err), nil
	}

	win := t.driver.Window()
	return &domain.ToolExecutionResult{
		ToolName:  "focus_paint",
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
func (t *FocusPaintTool) Validate(args map[string]any) error {
	return nil
}

// IsEnabled returns whether this tool is enabled
func (t *FocusPaintTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *FocusPaintTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("focus_paint failed: %s", result.Error)
	}
	return "focused paint window"
}

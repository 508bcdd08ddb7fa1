package tools

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// ClosePaintTool closes the paint application without saving
type ClosePaintTool struct {
	driver *paint.Driver
}

// NewClosePaintTool creates a new close_paint tool
func NewClosePaintTool(driver *paint.Driver) *ClosePaintTool {
	return &ClosePaintTool{driver: driver}
}

// Definition returns the tool definition for the LLM
func (t *ClosePaintTool) Definition() sdk.ChatCompletionTool {
	description := "Closes the paint application. Unsaved changes are discarded; call save_image first to keep the drawing."
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "close_paint",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// Execute runs the close_paint tool
func (t *ClosePaintTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	if err := t.driver.CloseApp(ctx); err != nil {
		return failedResult("close_paint", args, start, err), nil
	}

	return &domain.ToolExecutionResult{
		ToolName:  "close_paint",
		Arguments: args,
		Success:   true,
		Duration:  time.Since(start),
	}, nil
}

// Validate checks the tool arguments
func (t *ClosePaintTool) Validate(args map[string]any) error {
	return nil
}

// IsEnabled returns whether this tool is enabled
func (t *ClosePaintTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *ClosePaintTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("close_paint failed: %s", result.Error)
	}
	return "closed paint"
}

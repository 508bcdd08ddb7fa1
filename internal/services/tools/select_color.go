package tools

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// SelectColorTool picks a color from the calibrated palette
type SelectColorTool struct {
	driver *paint.Driver
}

// NewSelectColorTool creates a new select_color tool
func NewSelectColorTool(driver *paint.Driver) *SelectColorTool {
	return &SelectColorTool{driver: driver}
}

// Definition returns the tool definition for the LLM
func (t *SelectColorTool) Definition() sdk.ChatCompletionTool {
	description := "Selects a drawing color from the palette. Common color names (blue, pink, gray, ...) are mapped to the closest palette swatch. Select the color before drawing the shapes that should use it."
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "select_color",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"color": map[string]any{
						"type":        "string",
						"description": "Color name, e.g. 'red', 'blue', 'black'",
					},
				},
				"required": []string{"color"},
			},
		},
	}
}

// Execute runs the select_color tool
func (t *SelectColorTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	result, err := t.driver.SelectColor(ctx, stringArg(args, "color"))
	if err != nil {
		return failedResult("select_color", args, start, err), nil
	}

	return &domain.ToolExecutionResult{
		ToolName:  "select_color",
		Arguments: args,
		Success:   true,
		Duration:  time.Since(start),
		Data:      result,
	}, nil
}

// Validate checks the tool arguments
func (t *SelectColorTool) Validate(args map[string]any) error {
	return requireString(args, "color")
}

// IsEnabled returns whether this tool is enabled
func (t *SelectColorTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *SelectColorTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("select_color failed: %s", result.Error)
	}
	if data, ok := result.Data.(*domain.SelectColorResult); ok {
		if data.Resolved != data.Color {
			return fmt.Sprintf("selected color %s (as %s)", data.Color, data.Resolved)
		}
		return fmt.Sprintf("selected color %s", data.Color)
	}
	return "selected color"
}

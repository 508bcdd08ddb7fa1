package tools

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/canvas"
	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// AddTextTool types text onto the canvas with the text tool
type AddTextTool struct {
	driver      *paint.Driver
	typeDelayMs int
}

// NewAddTextTool creates a new add_text tool
func NewAddTextTool(driver *paint.Driver, typeDelayMs int) *AddTextTool {
	return &AddTextTool{driver: driver, typeDelayMs: typeDelayMs}
}

// Definition returns the tool definition for the LLM
func (t *AddTextTool) Definition() sdk.ChatCompletionTool {
	description := fmt.Sprintf(
		"Writes text on the canvas at a relative position (0..%d on both axes). The text is typed at the given point with the currently selected color.",
		canvas.RelMax)
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "add_text",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "Text to write",
					},
					"x": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Relative X of the text anchor (0..%d)", canvas.RelMax),
					},
					"y": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Relative Y of the text anchor (0..%d)", canvas.RelMax),
					},
				},
				"required": []string{"text", "x", "y"},
			},
		},
	}
}

// Execute runs the add_text tool
func (t *AddTextTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	x, _ := intArg(args, "x")
	y, _ := intArg(args, "y")

	result, err := t.driver.AddText(ctx, stringArg(args, "text"), x, y, t.typeDelayMs)
	if err != nil {
		return failedResult("add_text", args, start, err), nil
	}

	return &domain.ToolExecutionResult{
		ToolName:  "add_text",
		Arguments: args,
		Success:   true,
		Duration:  time.Since(start),
		Data:      result,
	}, nil
}

// Validate checks the tool arguments
func (t *AddTextTool) Validate(args map[string]any) error {
	if err := requireString(args, "text"); err != nil {
		return err
	}
	if err := requireInt(args, "x"); err != nil {
		return err
	}
	return requireInt(args, "y")
}

// IsEnabled returns whether this tool is enabled
func (t *AddTextTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *AddTextTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("add_text failed: %s", result.Error)
	}
	if data, ok := result.Data.(*domain.AddTextResult); ok {
		return fmt.Sprintf("wrote %q at (%d,%d)", data.Text, data.X, data.Y)
	}
	return "wrote text"
}

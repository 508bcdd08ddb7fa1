package tools

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// SaveImageTool saves the current drawing through the application's save
// dialog
type SaveImageTool struct {
	driver      *paint.Driver
	typeDelayMs int
}

// NewSaveImageTool creates a new save_image tool
func NewSaveImageTool(driver *paint.Driver, typeDelayMs int) *SaveImageTool {
	return &SaveImageTool{driver: driver, typeDelayMs: typeDelayMs}
}

// Definition returns the tool definition for the LLM
func (t *SaveImageTool) Definition() sdk.ChatCompletionTool {
	description := "Saves the current drawing to a file path through the application's save dialog."
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "save_image",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"path": map[string]any{
						"type":        "string",
						"description": "Destination file path, e.g. 'drawing.png'",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// Execute runs the save_image tool
func (t *SaveImageTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	result, err := t.driver.SaveImage(ctx, stringArg(args, "path"), t.typeDelayMs)
	if err != nil {
		return failedResult("save_image", args, start, err), nil
	}

	return &domain.ToolExecutionResult{
		ToolName:  "save_image",
		Arguments: args,
		Success:   true,
		Duration:  time.Since(start),
		Data:      result,
	}, nil
}

// Validate checks the tool arguments
func (t *SaveImageTool) Validate(args map[string]any) error {
	return requireString(args, "path")
}

// IsEnabled returns whether this tool is enabled
func (t *SaveImageTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *SaveImageTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("save_image failed: %s", result.Error)
	}
	if data, ok := result.Data.(*domain.SaveImageResult); ok {
		return fmt.Sprintf("saved image to %s", data.Path)
	}
	return "saved image"
}

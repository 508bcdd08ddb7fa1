package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/canvas"
	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// DrawShapeTool draws a shape between two relative canvas coordinates
type DrawShapeTool struct {
	driver *paint.Driver
}

// NewDrawShapeTool creates a new draw_shape tool
func NewDrawShapeTool(driver *paint.Driver) *DrawShapeTool {
	return &DrawShapeTool{driver: driver}
}

// Definition returns the tool definition for the LLM
func (t *DrawShapeTool) Definition() sdk.ChatCompletionTool {
	description := fmt.Sprintf(
		"Draws a shape on the canvas. Coordinates are relative: 0..%d on both axes, where (0,0) is the canvas top-left and (%d,%d) the bottom-right. Circles are drawn with a 1:1 aspect ratio regardless of the given bounds.",
		canvas.RelMax, canvas.RelMax, canvas.RelMax)
	return sdk.ChatCompletionTool{
		Type: sdk.Function,
		Function: sdk.FunctionObject{
			Name:        "draw_shape",
			Description: &description,
			Parameters: &sdk.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"shape": map[string]any{
						"type":        "string",
						"description": "Shape to draw",
						"enum":        paint.KnownShapes(),
					},
					"x1": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Relative X of the first corner (0..%d)", canvas.RelMax),
					},
					"y1": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Relative Y of the first corner (0..%d)", canvas.RelMax),
					},
					"x2": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Relative X of the opposite corner (0..%d)", canvas.RelMax),
					},
					"y2": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Relative Y of the opposite corner (0..%d)", canvas.RelMax),
					},
				},
				"required": []string{"shape", "x1", "y1", "x2", "y2"},
			},
		},
	}
}

// Execute runs the draw_shape tool
func (t *DrawShapeTool) Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error) {
	start := time.Now()

	shape := stringArg(args, "shape")
	x1, _ := intArg(args, "x1")
	y1, _ := intArg(args, "y1")
	x2, _ := intArg(args, "x2")
	y2, _ := intArg(args, "y2")

	result, err := t.driver.DrawShape(ctx, shape, x1, y1, x2, y2)
	if err != nil {
		return failedResult("draw_shape", args, start, err), nil
	}
	result.Method = "drag"

	return &domain.ToolExecutionResult{
		ToolName:  "draw_shape",
		Arguments: args,
		Success:   true,
		Duration:  time.Since(start),
		Data:      result,
	}, nil
}

// Validate checks the tool arguments
func (t *DrawShapeTool) Validate(args map[string]any) error {
	shape := stringArg(args, "shape")
	if shape == "" {
		return fmt.Errorf("shape must be a non-empty string")
	}
	if _, ok := paint.ResolveShape(shape); !ok {
		return fmt.Errorf("unknown shape %q (supported: %s)", shape, strings.Join(paint.KnownShapes(), ", "))
	}

	for _, key := range []string{"x1", "y1", "x2", "y2"} {
		if err := requireInt(args, key); err != nil {
			return err
		}
	}
	return nil
}

// IsEnabled returns whether this tool is enabled
func (t *DrawShapeTool) IsEnabled() bool {
	return true
}

// FormatResult renders a result for the requested audience
func (t *DrawShapeTool) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("draw_shape failed: %s", result.Error)
	}
	if data, ok := result.Data.(*domain.DrawShapeResult); ok {
		if formatType == domain.FormatterShort {
			return fmt.Sprintf("drew %s", data.Shape)
		}
		return fmt.Sprintf("drew %s from (%d,%d) to (%d,%d)",
			data.Shape, data.StartX, data.StartY, data.EndX, data.EndY)
	}
	return "drew shape"
}

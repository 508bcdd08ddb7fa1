package domain

import (
	"context"
	"time"

	sdk "github.com/inference-gateway/sdk"
)

// ToolService handles tool execution
type ToolService interface {
	ListTools() []sdk.ChatCompletionTool
	ListAvailableTools() []string
	ExecuteTool(ctx context.Context, name string, args map[string]any) (*ToolExecutionResult, error)
	IsToolEnabled(name string) bool
	ValidateTool(name string, args map[string]any) error
}

// ToolExecutionResult captures the outcome of a single tool invocation
type ToolExecutionResult struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Success   bool           `json:"success"`
	Duration  time.Duration  `json:"duration"`
	Error     string         `json:"error,omitempty"`
	Data      any            `json:"data,omitempty"`
}

// FormatterType selects how a tool result is rendered
type FormatterType string

const (
	// FormatterLLM renders the full result for model consumption
	FormatterLLM FormatterType = "llm"
	// FormatterShort renders a one-line preview for the terminal
	FormatterShort FormatterType = "short"
)

// DrawShapeResult is the payload of a successful draw_shape execution
type DrawShapeResult struct {
	Shape  string `json:"shape"`
	StartX int    `json:"start_x"`
	StartY int    `json:"start_y"`
	EndX   int    `json:"end_x"`
	EndY   int    `json:"end_y"`
	Method string `json:"method"`
}

// SelectColorResult is the payload of a successful select_color execution
type SelectColorResult struct {
	Color    string `json:"color"`
	Resolved string `json:"resolved"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// AddTextResult is the payload of a successful add_text execution
type AddTextResult struct {
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// WindowResult is the payload of open_paint and focus_paint executions
type WindowResult struct {
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SaveImageResult is the payload of a successful save_image execution
type SaveImageResult struct {
	Path string `json:"path"`
}

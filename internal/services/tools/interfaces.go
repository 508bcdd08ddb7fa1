// Package tools implements the drawing tool vocabulary the interpreter can
// invoke. Each tool wraps one paint driver operation behind an LLM-facing
// definition and argument validation.
package tools

import (
	"context"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/internal/domain"
)

// Tool represents a single tool with its definition, handler, and validator
type Tool interface {
	// Definition returns the tool definition for the LLM
	Definition() sdk.ChatCompletionTool

	// Execute runs the tool with given arguments
	Execute(ctx context.Context, args map[string]any) (*domain.ToolExecutionResult, error)

	// Validate checks if the tool arguments are valid
	Validate(args map[string]any) error

	// IsEnabled returns whether this tool is enabled
	IsEnabled() bool

	// FormatResult renders a result for the requested audience
	FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string
}

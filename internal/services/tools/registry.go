package tools

import (
	"context"
	"fmt"
	"sort"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/config"
	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/paint"
)

// Registry manages all available tools
type Registry struct {
	config *config.Config
	driver *paint.Driver
	tools  map[string]Tool
}

// NewRegistry creates a tool registry bound to one paint driver
func NewRegistry(cfg *config.Config, driver *paint.Driver) *Registry {
	registry := &Registry{
		config: cfg,
		driver: driver,
		tools:  make(map[string]Tool),
	}

	registry.registerTools()
	return registry
}

func (r *Registry) registerTools() {
	r.tools["open_paint"] = NewOpenPaintTool(r.driver)
	r.tools["focus_paint"] = NewFocusPaintTool(r.driver)
	r.tools["draw_shape"] = NewDrawShapeTool(r.driver)
	r.tools["select_color"] = NewSelectColorTool(r.driver)
	r.tools["add_text"] = NewAddTextTool(r.driver, r.config.Display.TypeDelayMs)
	r.tools["save_image"] = NewSaveImageTool(r.driver, r.config.Display.TypeDelayMs)
	r.tools["close_paint"] = NewClosePaintTool(r.driver)
}

// GetTool retrieves a tool by name
func (r *Registry) GetTool(name string) (Tool, error) {
	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return tool, nil
}

// ListAvailableTools returns names of all available and enabled tools
func (r *Registry) ListAvailableTools() []string {
	var names []string
	for name, tool := range r.tools {
		if tool.IsEnabled() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ListTools returns definitions for all enabled tools
func (r *Registry) ListTools() []sdk.ChatCompletionTool {
	var definitions []sdk.ChatCompletionTool
	for _, name := range r.ListAvailableTools() {
		definitions = append(definitions, r.tools[name].Definition())
	}
	return definitions
}

// IsToolEnabled checks if a specific tool is enabled
func (r *Registry) IsToolEnabled(name string) bool {
	tool, exists := r.tools[name]
	if !exists {
		return false
	}
	return tool.IsEnabled()
}

// ValidateTool validates arguments for a tool without executing it
func (r *Registry) ValidateTool(name string, args map[string]any) error {
	tool, err := r.GetTool(name)
	if err != nil {
		return err
	}
	return tool.Validate(args)
}

// ExecuteTool validates and executes a tool by name
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]any) (*domain.ToolExecutionResult, error) {
	tool, err := r.GetTool(name)
	if err != nil {
		return nil, err
	}

	if err := tool.Validate(args); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
	}

	return tool.Execute(ctx, args)
}

// FormatResult renders a tool result using the owning tool's formatter
func (r *Registry) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if result == nil {
		return ""
	}
	tool, err := r.GetTool(result.ToolName)
	if err != nil {
		return fmt.Sprintf("%s: unknown tool", result.ToolName)
	}
	return tool.FormatResult(result, formatType)
}

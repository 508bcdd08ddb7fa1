package tools

import (
	"fmt"
	"time"

	"github.com/easel-agent/cli/internal/domain"
)

// stringArg extracts a string argument, empty when absent or wrong-typed
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg extracts an integer argument. JSON numbers arrive as float64; plain
// ints appear when callers build args in Go.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// requireInt validates that an integer argument is present
func requireInt(args map[string]any, key string) error {
	if _, ok := intArg(args, key); !ok {
		return fmt.Errorf("%s must be an integer", key)
	}
	return nil
}

// requireString validates that a non-empty string argument is present
func requireString(args map[string]any, key string) error {
	if stringArg(args, key) == "" {
		return fmt.Errorf("%s must be a non-empty string", key)
	}
	return nil
}

// failedResult builds the failure result every tool returns when its driver
// call errors. The error is carried in the result, not as a Go error, so the
// session loop can keep going.
func failedResult(toolName string, args map[string]any, start time.Time, err error) *domain.ToolExecutionResult {
	return &domain.ToolExecutionResult{
		ToolName:  toolName,
		Arguments: args,
		Success:   false,
		Duration:  time.Since(start),
		Error:     err.Error(),
	}
}

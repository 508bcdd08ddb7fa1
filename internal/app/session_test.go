package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	sdk "github.com/inference-gateway/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/internal/domain"
)

// scriptedInterpreter maps instructions to canned plans
type scriptedInterpreter struct {
	plans map[string]*domain.Plan
	err   error
}

func (s *scriptedInterpreter) Interpret(ctx context.Context, instruction string) (*domain.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	if plan, ok := s.plans[instruction]; ok {
		return plan, nil
	}
	return &domain.Plan{}, nil
}

// recordingToolService records executions and fails tools listed in failing
type recordingToolService struct {
	executed []string
	failing  map[string]string
}

func (r *recordingToolService) ListTools() []sdk.ChatCompletionTool { return nil }
func (r *recordingToolService) ListAvailableTools() []string        { return nil }

func (r *recordingToolService) ExecuteTool(ctx context.Context, name string, args map[string]any) (*domain.ToolExecutionResult, error) {
	r.executed = append(r.executed, name)
	if reason, ok := r.failing[name]; ok {
		return &domain.ToolExecutionResult{ToolName: name, Success: false, Error: reason}, nil
	}
	return &domain.ToolExecutionResult{ToolName: name, Success: true}, nil
}

func (r *recordingToolService) IsToolEnabled(name string) bool { return true }
func (r *recordingToolService) ValidateTool(name string, args map[string]any) error { return nil }

func (r *recordingToolService) FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string {
	if !result.Success {
		return fmt.Sprintf("%s failed: %s", result.ToolName, result.Error)
	}
	return result.ToolName
}

// memoryRecorder captures recorded entries
type memoryRecorder struct {
	prompts   []string
	responses []string
	actions   []*domain.ToolExecutionResult
}

func (m *memoryRecorder) RecordPrompt(ctx context.Context, text string) error {
	m.prompts = append(m.prompts, text)
	return nil
}

func (m *memoryRecorder) RecordResponse(ctx context.Context, text string) error {
	m.responses = append(m.responses, text)
	return nil
}

func (m *memoryRecorder) RecordAction(ctx context.Context, result *domain.ToolExecutionResult) error {
	m.actions = append(m.actions, result)
	return nil
}

func (m *memoryRecorder) SessionID() string { return "test" }
func (m *memoryRecorder) Close() error      { return nil }

func circlePlan() *domain.Plan {
	return &domain.Plan{
		Text: "TOOL: select_color | {\"color\": \"red\"}\nTOOL: draw_shape | {\"shape\": \"circle\"}",
		Commands: []domain.PlanCommand{
			{Tool: "select_color", Args: map[string]any{"color": "red"}},
			{Tool: "draw_shape", Args: map[string]any{"shape": "circle"}},
		},
	}
}

func TestDrawSessionExecutesPlan(t *testing.T) {
	interpreter := &scriptedInterpreter{plans: map[string]*domain.Plan{"draw a red circle": circlePlan()}}
	tools := &recordingToolService{}
	recorder := &memoryRecorder{}
	var out strings.Builder

	session := NewDrawSession(interpreter, tools, tools, recorder,
		strings.NewReader("draw a red circle\nquit\n"), &out)

	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, []string{"select_color", "draw_shape"}, tools.executed)
	assert.Contains(t, out.String(), "2/2 commands succeeded")

	assert.Equal(t, []string{"draw a red circle"}, recorder.prompts)
	require.Len(t, recorder.actions, 2)
	assert.Equal(t, "select_color", recorder.actions[0].ToolName)
}

func TestDrawSessionContinuesAfterToolFailure(t *testing.T) {
	interpreter := &scriptedInterpreter{plans: map[string]*domain.Plan{"draw": circlePlan()}}
	tools := &recordingToolService{failing: map[string]string{
		"select_color": `target not present in calibration profile: "chartreuse"`,
	}}
	var out strings.Builder

	session := NewDrawSession(interpreter, tools, tools, nil,
		strings.NewReader("draw\nexit\n"), &out)

	require.NoError(t, session.Run(context.Background()))

	// Both commands ran despite the first failing
	assert.Equal(t, []string{"select_color", "draw_shape"}, tools.executed)
	assert.Contains(t, out.String(), "1/2 commands succeeded")
	assert.Contains(t, out.String(), "easel calibrate")
}

func TestDrawSessionEndsOnEOF(t *testing.T) {
	interpreter := &scriptedInterpreter{}
	tools := &recordingToolService{}
	var out strings.Builder

	session := NewDrawSession(interpreter, tools, tools, nil, strings.NewReader(""), &out)
	require.NoError(t, session.Run(context.Background()))
	assert.Empty(t, tools.executed)
}

func TestDrawSessionQuitWords(t *testing.T) {
	for _, word := range []string{"quit", "exit", "q", "QUIT"} {
		t.Run(word, func(t *testing.T) {
			interpreter := &scriptedInterpreter{}
			tools := &recordingToolService{}
			var out strings.Builder

			session := NewDrawSession(interpreter, tools, tools, nil, strings.NewReader(word+"\n"), &out)
			require.NoError(t, session.Run(context.Background()))
			assert.Empty(t, tools.executed)
		})
	}
}

func TestDrawSessionReportsInterpreterError(t *testing.T) {
	interpreter := &scriptedInterpreter{err: fmt.Errorf("gateway request failed: connection refused")}
	tools := &recordingToolService{}
	var out strings.Builder

	session := NewDrawSession(interpreter, tools, tools, nil,
		strings.NewReader("draw\nquit\n"), &out)

	require.NoError(t, session.Run(context.Background()))
	assert.Contains(t, out.String(), "connection refused")
	assert.Empty(t, tools.executed)
}

func TestDrawSessionEmptyPlan(t *testing.T) {
	interpreter := &scriptedInterpreter{}
	tools := &recordingToolService{}
	var out strings.Builder

	session := NewDrawSession(interpreter, tools, tools, nil,
		strings.NewReader("hello\nquit\n"), &out)

	require.NoError(t, session.Run(context.Background()))
	assert.Contains(t, out.String(), "no drawing commands")
}

package services

import (
	"context"
	"fmt"
	"testing"

	sdk "github.com/inference-gateway/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easel-agent/cli/config"
	"github.com/easel-agent/cli/internal/domain"
)

// fakeGenerator returns a canned response or error
type fakeGenerator struct {
	content  string
	err      error
	messages []sdk.Message
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, provider sdk.Provider, model string, messages []sdk.Message) (*sdk.CreateChatCompletionResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.CreateChatCompletionResponse{
		Choices: []sdk.ChatCompletionChoice{
			{Message: sdk.Message{Role: sdk.Assistant, Content: f.content}},
		},
	}, nil
}

func TestParsePlanSingleCommand(t *testing.T) {
	plan := ParsePlan(`TOOL: select_color | {"color": "red"}`)

	require.Len(t, plan.Commands, 1)
	assert.Equal(t, "select_color", plan.Commands[0].Tool)
	assert.Equal(t, "red", plan.Commands[0].Args["color"])
	assert.Empty(t, plan.Skipped)
}

func TestParsePlanIgnoresProse(t *testing.T) {
	plan := ParsePlan(`Sure! Here is the plan:

TOOL: open_paint | {}
TOOL: draw_shape | {"shape": "circle", "x1": 300, "y1": 300, "x2": 700, "y2": 700}

That will draw a circle in the middle.`)

	require.Len(t, plan.Commands, 2)
	assert.Equal(t, "open_paint", plan.Commands[0].Tool)
	assert.Equal(t, "draw_shape", plan.Commands[1].Tool)
	assert.Empty(t, plan.Skipped)

	// JSON numbers decode as float64
	assert.Equal(t, float64(300), plan.Commands[1].Args["x1"])
}

func TestParsePlanSkipsMalformedJSON(t *testing.T) {
	plan := ParsePlan(`TOOL: select_color | {"color": red}
TOOL: draw_shape | {"shape": "line", "x1": 0, "y1": 0, "x2": 1000, "y2": 1000}`)

	require.Len(t, plan.Commands, 1)
	assert.Equal(t, "draw_shape", plan.Commands[0].Tool)

	require.Len(t, plan.Skipped, 1)
	assert.Contains(t, plan.Skipped[0].Reason, "invalid JSON")
}

func TestParsePlanNoArguments(t *testing.T) {
	plan := ParsePlan("TOOL: close_paint")

	require.Len(t, plan.Commands, 1)
	assert.Equal(t, "close_paint", plan.Commands[0].Tool)
	assert.Empty(t, plan.Commands[0].Args)
}

func TestParsePlanMarkdownWrapping(t *testing.T) {
	plan := ParsePlan("**TOOL: open_paint | {}**")

	require.Len(t, plan.Commands, 1)
	assert.Equal(t, "open_paint", plan.Commands[0].Tool)
}

func TestParsePlanMissingName(t *testing.T) {
	plan := ParsePlan(`TOOL: | {"color": "red"}`)

	assert.True(t, plan.IsEmpty())
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, "missing tool name", plan.Skipped[0].Reason)
}

func TestParsePlanEmptyResponse(t *testing.T) {
	plan := ParsePlan("I cannot help with that.")
	assert.True(t, plan.IsEmpty())
	assert.Empty(t, plan.Skipped)
}

func TestInterpreterSendsSystemPrompt(t *testing.T) {
	gen := &fakeGenerator{content: `TOOL: select_color | {"color": "green"}`}
	interpreter := &GatewayInterpreter{
		client:       gen,
		provider:     sdk.Provider("google"),
		model:        "gemini-2.0-flash",
		systemPrompt: buildSystemPrompt(nil),
	}

	plan, err := interpreter.Interpret(context.Background(), "draw a green hill")
	require.NoError(t, err)
	require.Len(t, plan.Commands, 1)

	require.Len(t, gen.messages, 2)
	assert.Equal(t, sdk.System, gen.messages[0].Role)
	assert.Contains(t, gen.messages[0].Content, "TOOL: <name> | <JSON arguments>")
	assert.Equal(t, "draw a green hill", gen.messages[1].Content)
}

func TestInterpreterBlankInstruction(t *testing.T) {
	gen := &fakeGenerator{content: "should not be called"}
	interpreter := &GatewayInterpreter{client: gen}

	plan, err := interpreter.Interpret(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, plan.IsEmpty())
	assert.Nil(t, gen.messages)
}

func TestInterpreterGatewayError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("connection refused")}
	interpreter := &GatewayInterpreter{client: gen}

	_, err := interpreter.Interpret(context.Background(), "draw something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway request failed")
}

func TestNewGatewayInterpreterValidatesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gateway.APIKey = ""

	_, err := NewGatewayInterpreter(cfg, &stubToolService{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)
}

func TestNewGatewayInterpreterRejectsBareModel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gateway.APIKey = "key"
	cfg.Gateway.Model = "gemini-2.0-flash"

	_, err := NewGatewayInterpreter(cfg, &stubToolService{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider/model")
}

// stubToolService provides an empty tool vocabulary
type stubToolService struct{}

func (s *stubToolService) ListTools() []sdk.ChatCompletionTool { return nil }
func (s *stubToolService) ListAvailableTools() []string        { return nil }
func (s *stubToolService) ExecuteTool(ctx context.Context, name string, args map[string]any) (*domain.ToolExecutionResult, error) {
	return nil, fmt.Errorf("not implemented")
}
func (s *stubToolService) IsToolEnabled(name string) bool                  { return false }
func (s *stubToolService) ValidateTool(name string, args map[string]any) error { return nil }

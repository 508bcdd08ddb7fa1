// Package services wires the LLM gateway and session persistence into the
// capability interfaces the drawing loop consumes.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdk "github.com/inference-gateway/sdk"

	"github.com/easel-agent/cli/config"
	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/logger"
)

// toolLinePrefix marks a tool invocation in the interpreter's response
const toolLinePrefix = "TOOL:"

// contentGenerator is the slice of the SDK client the interpreter needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, provider sdk.Provider, model string, messages []sdk.Message) (*sdk.CreateChatCompletionResponse, error)
}

// GatewayInterpreter turns free-text instructions into tool plans by asking
// an LLM through the inference gateway.
type GatewayInterpreter struct {
	client       contentGenerator
	provider     sdk.Provider
	model        string
	timeout      time.Duration
	systemPrompt string
}

// NewGatewayInterpreter creates an interpreter from the gateway configuration
// and the tool vocabulary it may use.
func NewGatewayInterpreter(cfg *config.Config, toolService domain.ToolService) (*GatewayInterpreter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slashIndex := strings.Index(cfg.Gateway.Model, "/")
	if slashIndex == -1 {
		return nil, fmt.Errorf("invalid model %q, expected 'provider/model'", cfg.Gateway.Model)
	}
	provider := cfg.Gateway.Model[:slashIndex]
	modelName := cfg.Gateway.Model[slashIndex+1:]

	client := sdk.NewClient(&sdk.ClientOptions{
		BaseURL: cfg.Gateway.URL,
		APIKey:  cfg.Gateway.APIKey,
		Timeout: time.Duration(cfg.Gateway.Timeout) * time.Second,
	})

	return &GatewayInterpreter{
		client:       client,
		provider:     sdk.Provider(provider),
		model:        modelName,
		timeout:      time.Duration(cfg.Gateway.Timeout) * time.Second,
		systemPrompt: buildSystemPrompt(toolService.ListTools()),
	}, nil
}

// buildSystemPrompt renders the tool vocabulary into the instruction the
// model answers with TOOL lines.
func buildSystemPrompt(tools []sdk.ChatCompletionTool) string {
	var sb strings.Builder

	sb.WriteString("You control a paint application through tools. ")
	sb.WriteString("For each user instruction, respond ONLY with tool invocations, one per line, in execution order:\n\n")
	sb.WriteString("TOOL: <name> | <JSON arguments>\n\n")
	sb.WriteString("Available tools:\n")

	for _, tool := range tools {
		sb.WriteString("- ")
		sb.WriteString(tool.Function.Name)
		if tool.Function.Description != nil {
			sb.WriteString(": ")
			sb.WriteString(*tool.Function.Description)
		}
		sb.WriteString("\n")
		if tool.Function.Parameters != nil {
			if params, err := json.Marshal(tool.Function.Parameters); err == nil {
				sb.WriteString("  arguments schema: ")
				sb.Write(params)
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\nCoordinates are relative, 0..1000 on both axes. ")
	sb.WriteString("Select a color before drawing the shapes that use it. ")
	sb.WriteString("Open the application first if it may not be running. ")
	sb.WriteString("Do not add explanations outside TOOL lines.")

	return sb.String()
}

// Interpret sends one instruction to the gateway and parses the response
// into a plan.
func (g *GatewayInterpreter) Interpret(ctx context.Context, instruction string) (*domain.Plan, error) {
	if strings.TrimSpace(instruction) == "" {
		return &domain.Plan{}, nil
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := []sdk.Message{
		{Role: sdk.System, Content: g.systemPrompt},
		{Role: sdk.User, Content: instruction},
	}

	logger.Debug("Sending instruction to gateway", "provider", g.provider, "model", g.model)

	response, err := g.client.GenerateContent(ctx, g.provider, g.model, messages)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("gateway returned no choices")
	}

	text := response.Choices[0].Message.Content
	plan := ParsePlan(text)

	logger.Debug("Parsed plan",
		"commands", len(plan.Commands), "skipped", len(plan.Skipped))

	return plan, nil
}

// ParsePlan extracts TOOL lines from a model response. Prose lines are
// ignored; TOOL lines that cannot be parsed are recorded as skipped so one
// bad line never aborts the rest of the plan.
func ParsePlan(text string) *domain.Plan {
	plan := &domain.Plan{Text: text}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		// Models sometimes wrap the protocol lines in markdown emphasis
		trimmed = strings.Trim(trimmed, "*`")

		if !strings.HasPrefix(strings.ToUpper(trimmed), toolLinePrefix) {
			continue
		}

		body := strings.TrimSpace(trimmed[len(toolLinePrefix):])
		name, argsText, hasArgs := strings.Cut(body, "|")
		name = strings.TrimSpace(name)

		if name == "" {
			plan.Skipped = append(plan.Skipped, domain.SkippedLine{
				Line:   trimmed,
				Reason: "missing tool name",
			})
			continue
		}

		args := map[string]any{}
		if hasArgs {
			argsText = strings.TrimSpace(argsText)
			if argsText != "" {
				if err := json.Unmarshal([]byte(argsText), &args); err != nil {
					plan.Skipped = append(plan.Skipped, domain.SkippedLine{
						Line:   trimmed,
						Reason: fmt.Sprintf("invalid JSON arguments: %v", err),
					})
					continue
				}
			}
		}

		plan.Commands = append(plan.Commands, domain.PlanCommand{
			Tool: name,
			Args: args,
			Raw:  trimmed,
		})
	}

	return plan
}

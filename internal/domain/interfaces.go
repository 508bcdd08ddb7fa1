package domain

import "context"

// Interpreter is the command-interpreter capability: it turns a free-text
// drawing instruction into an ordered plan of tool invocations. The only
// implementation talks to an LLM gateway, but the session loop depends on
// nothing beyond this interface.
type Interpreter interface {
	Interpret(ctx context.Context, instruction string) (*Plan, error)
}

// SessionRecorder persists the prompt/response/action stream of one drawing
// session. Records are append-only.
type SessionRecorder interface {
	RecordPrompt(ctx context.Context, text string) error
	RecordResponse(ctx context.Context, text string) error
	RecordAction(ctx context.Context, result *ToolExecutionResult) error
	SessionID() string
	Close() error
}

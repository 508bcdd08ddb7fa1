package domain

import "time"

// Session entry kinds.
const (
	EntryKindPrompt   = "prompt"
	EntryKindResponse = "response"
	EntryKindAction   = "action"
)

// SessionEntry is one record in a session log: either the user's prompt, the
// interpreter's raw response, or an executed action with its result.
type SessionEntry struct {
	Time   time.Time            `json:"time"`
	Kind   string               `json:"kind"`
	Text   string               `json:"text,omitempty"`
	Action *ToolExecutionResult `json:"action,omitempty"`
}

package domain

// PlanCommand is a single tool invocation extracted from an interpreter
// response line of the form "TOOL: name | {json args}".
type PlanCommand struct {
	Tool string
	Args map[string]any
	Raw  string
}

// SkippedLine records a TOOL line that could not be parsed, with the reason.
// Skipped lines never abort the rest of the plan.
type SkippedLine struct {
	Line   string
	Reason string
}

// Plan is the ordered command sequence produced by the interpreter for one
// instruction, together with the raw response text it was parsed from.
type Plan struct {
	Commands []PlanCommand
	Skipped  []SkippedLine
	Text     string
}

// IsEmpty reports whether the plan contains no executable commands.
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Commands) == 0
}

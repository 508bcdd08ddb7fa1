// Package app runs the interactive drawing loop: read an instruction, ask
// the interpreter for a plan, execute it tool by tool, and report what
// happened.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	lipgloss "github.com/charmbracelet/lipgloss"

	"github.com/easel-agent/cli/internal/domain"
	"github.com/easel-agent/cli/internal/logger"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// exitWords end the interactive loop
var exitWords = map[string]bool{
	"quit": true,
	"exit": true,
	"q":    true,
}

// resultFormatter renders tool results for the terminal
type resultFormatter interface {
	FormatResult(result *domain.ToolExecutionResult, formatType domain.FormatterType) string
}

// DrawSession is one interactive drawing session
type DrawSession struct {
	interpreter domain.Interpreter
	tools       domain.ToolService
	formatter   resultFormatter
	recorder    domain.SessionRecorder
	in          *bufio.Scanner
	out         io.Writer
}

// NewDrawSession wires the loop. recorder may be nil when session recording
// is disabled.
func NewDrawSession(interpreter domain.Interpreter, tools domain.ToolService, formatter resultFormatter, recorder domain.SessionRecorder, in io.Reader, out io.Writer) *DrawSession {
	return &DrawSession{
		interpreter: interpreter,
		tools:       tools,
		formatter:   formatter,
		recorder:    recorder,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run reads instructions until quit/exit/q or EOF. Individual instruction
// failures are reported and the loop continues.
func (s *DrawSession) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Describe what to draw. Type 'quit' to finish.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, promptStyle.Render("draw> "))
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("failed to read instruction: %w", err)
			}
			fmt.Fprintln(s.out)
			return nil
		}

		instruction := strings.TrimSpace(s.in.Text())
		if instruction == "" {
			continue
		}
		if exitWords[strings.ToLower(instruction)] {
			return nil
		}

		if err := s.Execute(ctx, instruction); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			fmt.Fprintln(s.out, failureStyle.Render(fmt.Sprintf("error: %v", err)))
			if hint := remediationHint(err.Error()); hint != "" {
				fmt.Fprintln(s.out, hintStyle.Render(hint))
			}
		}
	}
}

// Execute runs a single instruction: interpret, then execute the plan
func (s *DrawSession) Execute(ctx context.Context, instruction string) error {
	s.recordPrompt(ctx, instruction)

	plan, err := s.interpreter.Interpret(ctx, instruction)
	if err != nil {
		return err
	}
	s.recordResponse(ctx, plan.Text)

	for _, skipped := range plan.Skipped {
		fmt.Fprintln(s.out, skippedStyle.Render(fmt.Sprintf("skipped: %s (%s)", skipped.Line, skipped.Reason)))
	}

	if plan.IsEmpty() {
		fmt.Fprintln(s.out, "no drawing commands in the response")
		return nil
	}

	succeeded := 0
	for _, command := range plan.Commands {
		result, err := s.tools.ExecuteTool(ctx, command.Tool, command.Args)
		if err != nil {
			fmt.Fprintln(s.out, failureStyle.Render(fmt.Sprintf("✗ %s: %v", command.Tool, err)))
			logger.Warn("Tool rejected", "tool", command.Tool, "error", err)
			continue
		}

		s.recordAction(ctx, result)

		line := s.formatter.FormatResult(result, domain.FormatterShort)
		if result.Success {
			succeeded++
			fmt.Fprintln(s.out, successStyle.Render("✓ "+line))
		} else {
			fmt.Fprintln(s.out, failureStyle.Render("✗ "+line))
			if hint := remediationHint(result.Error); hint != "" {
				fmt.Fprintln(s.out, hintStyle.Render(hint))
			}
		}
	}

	fmt.Fprintf(s.out, "%d/%d commands succeeded\n", succeeded, len(plan.Commands))
	return nil
}

// remediationHint suggests a fix for the common failure classes
func remediationHint(errText string) string {
	switch {
	case strings.Contains(errText, "stale"):
		return "hint: the screen resolution changed, re-run `easel calibrate`"
	case strings.Contains(errText, "calibration profile"):
		return "hint: record the missing target with `easel calibrate`"
	case strings.Contains(errText, "window"):
		return "hint: is the paint application running? Try `open the paint app` first"
	default:
		return ""
	}
}

func (s *DrawSession) recordPrompt(ctx context.Context, text string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordPrompt(ctx, text); err != nil {
		logger.Warn("Failed to record prompt", "error", err)
	}
}

func (s *DrawSession) recordResponse(ctx context.Context, text string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordResponse(ctx, text); err != nil {
		logger.Warn("Failed to record response", "error", err)
	}
}

func (s *DrawSession) recordAction(ctx context.Context, result *domain.ToolExecutionResult) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordAction(ctx, result); err != nil {
		logger.Warn("Failed to record action", "error", err)
	}
}

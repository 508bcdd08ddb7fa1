package calibration

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/easel-agent/cli/internal/display"
	"github.com/easel-agent/cli/internal/logger"
)

// Calibrator runs the interactive calibration session: for each target the
// user hovers the cursor over the toolbar element and confirms with Enter,
// and the cursor position is sampled through the display controller.
type Calibrator struct {
	ctrl display.Controller
	in   *bufio.Scanner
	out  io.Writer
}

// NewCalibrator creates a calibrator reading confirmations from in and
// writing prompts to out
func NewCalibrator(ctrl display.Controller, in io.Reader, out io.Writer) *Calibrator {
	return &Calibrator{
		ctrl: ctrl,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run walks the user through every required and optional target, then lets
// them record extra targets by name. Typing "skip" skips the current target;
// "done" ends the optional and extra phases early.
func (c *Calibrator) Run(ctx context.Context, profileName string) (*Profile, error) {
	width, height, err := c.ctrl.GetScreenDimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read screen dimensions: %w", err)
	}

	profile := NewProfile(profileName, width, height)

	fmt.Fprintf(c.out, "Calibrating profile %q on a %dx%d screen.\n", profileName, width, height)
	fmt.Fprintln(c.out, "For each target: hover the cursor over it and press Enter.")
	fmt.Fprintln(c.out, "Type 'skip' to skip a target, 'done' to finish a phase early.")
	fmt.Fprintln(c.out)

	if err := c.recordPhase(ctx, profile, RequiredTargets, "required"); err != nil {
		return nil, err
	}
	if err := c.recordPhase(ctx, profile, OptionalTargets, "optional"); err != nil {
		return nil, err
	}
	if err := c.recordExtras(ctx, profile); err != nil {
		return nil, err
	}

	if missing := profile.Missing(); len(missing) > 0 {
		fmt.Fprintf(c.out, "\nWarning: missing required targets: %s\n", strings.Join(missing, ", "))
		logger.Warn("Calibration finished with missing targets", "missing", missing)
	}

	return profile, nil
}

func (c *Calibrator) recordPhase(ctx context.Context, profile *Profile, targets []string, phase string) error {
	fmt.Fprintf(c.out, "-- %s targets --\n", phase)

	for _, name := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(c.out, "%-18s > ", name)
		if !c.in.Scan() {
			return c.scanErr()
		}

		switch strings.ToLower(strings.TrimSpace(c.in.Text())) {
		case "skip":
			continue
		case "done":
			return nil
		}

		if err := c.sample(ctx, profile, name); err != nil {
			fmt.Fprintf(c.out, "  %v\n", err)
		}
	}

	return nil
}

// recordExtras lets the user name and record targets beyond the built-in
// lists, for paint applications with extra tools or palette entries.
func (c *Calibrator) recordExtras(ctx context.Context, profile *Profile) error {
	fmt.Fprintln(c.out, "-- extra targets (enter a name, blank line or 'done' to finish) --")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, "name > ")
		if !c.in.Scan() {
			return c.scanErr()
		}

		name := strings.ToLower(strings.TrimSpace(c.in.Text()))
		if name == "" || name == "done" {
			return nil
		}

		fmt.Fprintf(c.out, "hover over %q and press Enter > ", name)
		if !c.in.Scan() {
			return c.scanErr()
		}

		if err := c.sample(ctx, profile, name); err != nil {
			fmt.Fprintf(c.out, "  %v\n", err)
		}
	}
}

func (c *Calibrator) sample(ctx context.Context, profile *Profile, name string) error {
	x, y, err := c.ctrl.GetCursorPosition(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cursor position: %w", err)
	}

	if err := profile.Record(name, x, y); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "  recorded %s at (%d, %d)\n", name, x, y)
	logger.Debug("Recorded calibration target", "name", name, "x", x, "y", y)
	return nil
}

func (c *Calibrator) scanErr() error {
	if err := c.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return io.EOF
}

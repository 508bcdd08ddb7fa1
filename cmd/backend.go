package cmd

import (
	"fmt"

	config "github.com/easel-agent/cli/config"
	display "github.com/easel-agent/cli/internal/display"
	logger "github.com/easel-agent/cli/internal/logger"

	// Register input-injection backends
	_ "github.com/easel-agent/cli/internal/display/robot"
	_ "github.com/easel-agent/cli/internal/display/x11"
)

// selectController resolves the configured backend to a live controller.
// "auto" prefers x11 when a DISPLAY is present and falls back to the robotgo
// backend otherwise.
func selectController(cfg *config.Config) (display.Controller, error) {
	backend := cfg.Display.Backend

	var provider display.Provider
	switch backend {
	case "", "auto":
		if p := display.GetProvider("x11"); p != nil && p.IsAvailable() {
			provider = p
		} else {
			var err error
			provider, err = display.DetectDisplay()
			if err != nil {
				return nil, err
			}
		}
	default:
		provider = display.GetProvider(backend)
		if provider == nil {
			return nil, fmt.Errorf("unknown display backend %q (supported: x11, robot, auto)", backend)
		}
		if !provider.IsAvailable() {
			return nil, fmt.Errorf("display backend %q is not available on this system", backend)
		}
	}

	info := provider.GetDisplayInfo()
	logger.Debug("Selected display backend", "backend", info.Name, "display", cfg.Display.Name)

	return provider.GetController(cfg.Display.Name)
}

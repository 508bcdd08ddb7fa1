package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"

	calibration "github.com/easel-agent/cli/internal/calibration"
	display "github.com/easel-agent/cli/internal/display"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that drawing sessions can run",
	Long: `Checks each precondition of a drawing session: configuration, API key,
display backend, the paint window, and the calibration profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := func(label string) { fmt.Printf("✓ %s\n", label) }
		fail := func(label string, err error) { fmt.Printf("✗ %s: %v\n", label, err) }

		if err := cfg.Validate(); err != nil {
			fail("configuration", err)
		} else {
			ok(fmt.Sprintf("configuration (gateway %s, model %s)", cfg.Gateway.URL, cfg.Gateway.Model))
		}

		var available []string
		for _, provider := range display.GetAllProviders() {
			if provider.IsAvailable() {
				available = append(available, provider.GetDisplayInfo().Name)
			}
		}
		if len(available) == 0 {
			fail("display backend", fmt.Errorf("none available"))
			return nil
		}
		ok(fmt.Sprintf("display backends: %v (configured: %s)", available, cfg.Display.Backend))

		ctrl, err := selectController(cfg)
		if err != nil {
			fail("display controller", err)
			return nil
		}
		defer func() { _ = ctrl.Close() }()

		width, height, err := ctrl.GetScreenDimensions(cmd.Context())
		if err != nil {
			fail("screen", err)
			return nil
		}
		ok(fmt.Sprintf("screen %dx%d", width, height))

		if win, err := ctrl.FindWindow(cmd.Context(), cfg.Paint.WindowTitle); err != nil {
			fail(fmt.Sprintf("paint window %q", cfg.Paint.WindowTitle),
				fmt.Errorf("not found (it will be launched with %q)", cfg.Paint.LaunchCommand))
		} else {
			ok(fmt.Sprintf("paint window %q (%dx%d)", win.Title, win.Rect.Width, win.Rect.Height))
		}

		store := calibration.NewStore(cfg.Calibration.Dir)
		profile, err := store.Load(cfg.Calibration.Profile)
		if err != nil {
			fail("calibration profile", err)
			return nil
		}

		if err := profile.CheckResolution(width, height); err != nil {
			fail(fmt.Sprintf("profile %q", profile.Name), err)
		} else if missing := profile.Missing(); len(missing) > 0 {
			fail(fmt.Sprintf("profile %q", profile.Name), fmt.Errorf("missing targets: %v", missing))
		} else {
			ok(fmt.Sprintf("profile %q (%d targets)", profile.Name, len(profile.Targets)))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"

	calibration "github.com/easel-agent/cli/internal/calibration"
	logger "github.com/easel-agent/cli/internal/logger"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Record toolbar positions for the paint application",
	Long: `Walks through the paint application's toolbar elements and records the
screen position of each one: hover the cursor over the element and press
Enter. The recorded profile is tied to the current screen resolution and is
what the drawing tools use to find shape buttons and palette swatches.

Open the paint application and arrange its window before calibrating.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profileName, _ := cmd.Flags().GetString("profile")
		if profileName == "" {
			profileName = cfg.Calibration.Profile
		}

		ctrl, err := selectController(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := ctrl.Close(); err != nil {
				logger.Warn("Failed to close display controller", "error", err)
			}
		}()

		calibrator := calibration.NewCalibrator(ctrl, os.Stdin, os.Stdout)
		profile, err := calibrator.Run(cmd.Context(), profileName)
		if err != nil {
			return err
		}

		store := calibration.NewStore(cfg.Calibration.Dir)
		if err := store.Save(profile); err != nil {
			return err
		}

		fmt.Printf("Saved profile %q with %d targets.\n", profileName, len(profile.Targets))
		return nil
	},
}

func init() {
	calibrateCmd.Flags().StringP("profile", "p", "", "profile name to record (default from config)")
	rootCmd.AddCommand(calibrateCmd)
}

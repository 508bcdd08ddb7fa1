package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"

	app "github.com/easel-agent/cli/internal/app"
	calibration "github.com/easel-agent/cli/internal/calibration"
	domain "github.com/easel-agent/cli/internal/domain"
	logger "github.com/easel-agent/cli/internal/logger"
	paint "github.com/easel-agent/cli/internal/paint"
	services "github.com/easel-agent/cli/internal/services"
	tools "github.com/easel-agent/cli/internal/services/tools"
	storage "github.com/easel-agent/cli/internal/storage"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Start an interactive drawing session",
	Long: `Starts the interactive drawing loop. Each instruction you type is sent
to the LLM gateway, translated into drawing commands, and executed in the
paint application. Type 'quit', 'exit' or 'q' to finish.

Instructions can also be piped on stdin, one per line.`,
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

		store := calibration.NewStore(cfg.Calibration.Dir)
		profile, err := store.Load(profileName)
		if err != nil {
			return err
		}

		width, height, err := ctrl.GetScreenDimensions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read screen dimensions: %w", err)
		}
		if err := profile.CheckResolution(width, height); err != nil {
			return err
		}

		driver := paint.NewDriver(ctrl, profile, cfg.Paint)
		registry := tools.NewRegistry(cfg, driver)

		interpreter, err := services.NewGatewayInterpreter(cfg, registry)
		if err != nil {
			return err
		}

		var recorder domain.SessionRecorder
		if cfg.Sessions.Enabled {
			history, err := storage.NewSQLiteStorage(cfg.Sessions.HistoryPath)
			if err != nil {
				logger.Warn("Session history unavailable", "error", err)
			} else {
				defer func() { _ = history.Close() }()
			}

			session, err := services.NewSessionService(cfg.Sessions.Dir, cfg.Gateway.Model, profileName, history)
			if err != nil {
				logger.Warn("Session recording unavailable", "error", err)
			} else {
				recorder = session
				defer func() { _ = session.Close() }()
			}
		}

		session := app.NewDrawSession(interpreter, registry, registry, recorder, os.Stdin, os.Stdout)
		return session.Run(cmd.Context())
	},
}

func init() {
	drawCmd.Flags().StringP("profile", "p", "", "calibration profile to use (default from config)")
	rootCmd.AddCommand(drawCmd)
}

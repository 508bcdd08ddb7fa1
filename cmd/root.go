// Package cmd defines the easel command tree.
package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"

	config "github.com/easel-agent/cli/config"
	logger "github.com/easel-agent/cli/internal/logger"
)

// cfg is the loaded configuration, shared by all subcommands
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "easel",
	Short: "Draw in a paint application from natural language",
	Long: `easel drives a desktop paint application with the mouse and keyboard,
translating natural-language instructions into drawing actions through an
LLM gateway. Toolbar positions are recorded once with 'easel calibrate',
then 'easel draw' starts an interactive drawing session.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Run 'easel calibrate' once, then 'easel draw' to start drawing.")
		fmt.Println("Use --help to see all commands.")
	},
}

// Execute runs the root command
func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	explicit, _ := rootCmd.PersistentFlags().GetString("config")

	configPath := config.GetConfigPath(explicit)
	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}
	cfg = loaded

	if err := logger.Init(verbose, cfg.Logging.Dir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
	}
}

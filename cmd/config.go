package cmd

import (
	"fmt"
	"os"

	cobra "github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	config "github.com/easel-agent/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the easel configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			path = config.DefaultConfigPath
		}

		if _, err := os.Stat(path); err == nil {
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if !overwrite {
				return fmt.Errorf("%s already exists (use --overwrite to replace it)", path)
			}
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", path)
		fmt.Println("Set gateway.api_key (or the EASEL_API_KEY environment variable) before drawing.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.Gateway.APIKey != "" {
			shown.Gateway.APIKey = "***"
		}

		data, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "replace an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

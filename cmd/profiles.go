package cmd

import (
	"fmt"
	"sort"

	cobra "github.com/spf13/cobra"

	calibration "github.com/easel-agent/cli/internal/calibration"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage calibration profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored calibration profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := calibration.NewStore(cfg.Calibration.Dir)
		names, err := store.List()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No calibration profiles. Run 'easel calibrate' to create one.")
			return nil
		}

		for _, name := range names {
			marker := " "
			if name == cfg.Calibration.Profile {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile's recorded targets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.Calibration.Profile
		if len(args) > 0 {
			name = args[0]
		}

		store := calibration.NewStore(cfg.Calibration.Dir)
		profile, err := store.Load(name)
		if err != nil {
			return err
		}

		fmt.Printf("Profile:    %s\n", profile.Name)
		fmt.Printf("Created:    %s\n", profile.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Resolution: %dx%d\n", profile.ScreenWidth, profile.ScreenHeight)
		fmt.Printf("Targets:    %d\n\n", len(profile.Targets))

		names := make([]string, 0, len(profile.Targets))
		for target := range profile.Targets {
			names = append(names, target)
		}
		sort.Strings(names)

		for _, target := range names {
			pt := profile.Targets[target]
			fmt.Printf("  %-18s (%d, %d)\n", target, pt.X, pt.Y)
		}

		if missing := profile.Missing(); len(missing) > 0 {
			fmt.Printf("\nMissing required targets: %v\n", missing)
		}
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a calibration profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := calibration.NewStore(cfg.Calibration.Dir)
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %q.\n", args[0])
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	rootCmd.AddCommand(profilesCmd)
}

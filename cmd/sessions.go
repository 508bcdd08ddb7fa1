package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"

	domain "github.com/easel-agent/cli/internal/domain"
	storage "github.com/easel-agent/cli/internal/storage"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse past drawing sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := storage.NewSQLiteStorage(cfg.Sessions.HistoryPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		sessions, err := store.ListSessions(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(sessions) == 0 {
			fmt.Println("No recorded sessions yet.")
			return nil
		}

		for _, session := range sessions {
			fmt.Printf("%s  %s  %-24s  profile=%s  %d entries\n",
				session.ID[:8],
				session.StartedAt.Format("2006-01-02 15:04"),
				session.Model,
				session.Profile,
				session.EntryCount)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Replay a session's transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewSQLiteStorage(cfg.Sessions.HistoryPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		id, err := resolveSessionID(cmd, store, args[0])
		if err != nil {
			return err
		}

		entries, err := store.LoadSession(cmd.Context(), id)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("session %q not found or empty", args[0])
		}

		for _, entry := range entries {
			stamp := entry.Time.Format("15:04:05")
			switch entry.Kind {
			case domain.EntryKindPrompt:
				fmt.Printf("[%s] > %s\n", stamp, entry.Text)
			case domain.EntryKindResponse:
				fmt.Printf("[%s] < %s\n", stamp, entry.Text)
			case domain.EntryKindAction:
				status := "ok"
				if entry.Action != nil && !entry.Action.Success {
					status = "failed: " + entry.Action.Error
				}
				name := ""
				if entry.Action != nil {
					name = entry.Action.ToolName
				}
				fmt.Printf("[%s]   %s (%s)\n", stamp, name, status)
			}
		}
		return nil
	},
}

// resolveSessionID accepts either a full session ID or its 8-character prefix
// as printed by `sessions list`
func resolveSessionID(cmd *cobra.Command, store *storage.SQLiteStorage, arg string) (string, error) {
	if len(arg) > 8 {
		return arg, nil
	}

	sessions, err := store.ListSessions(cmd.Context(), 0)
	if err != nil {
		return "", err
	}
	for _, session := range sessions {
		if len(session.ID) >= len(arg) && session.ID[:len(arg)] == arg {
			return session.ID, nil
		}
	}
	return arg, nil
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "maximum number of sessions to list")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	rootCmd.AddCommand(sessionsCmd)
}

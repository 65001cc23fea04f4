package main

import (
	"os"

	"github.com/aretw0/intake/internal/cli"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect conversations that are currently running",
	Long: `List, inspect and remove the checkpoints of running conversations.
Checkpoints live in Redis (--redis) or a checkpoint directory
(INTAKE_CHECKPOINT_DIR) only while a run is active; use rm to clear the
leftovers of a crashed driver.`,
}

var sessionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List running sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.ListSessions(cmd.Context(), cfg, os.Stdout)
	},
}

var sessionsInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the checkpoint of a running session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		asGraph, _ := cmd.Flags().GetBool("graph")
		return cli.InspectSession(cmd.Context(), cfg, args[0], asGraph, os.Stdout)
	},
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove leftover session checkpoints",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.RemoveSessions(cmd.Context(), cfg, args, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsLsCmd)
	sessionsCmd.AddCommand(sessionsInspectCmd)
	sessionsCmd.AddCommand(sessionsRmCmd)

	sessionsInspectCmd.Flags().Bool("graph", false, "Print a Mermaid diagram highlighting the current step")
}

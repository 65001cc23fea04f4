package main

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/intake/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an intake conversation",
	Long:  `Starts a conversation on the terminal. Requires GEMINI_API_KEY (or GOOGLE_API_KEY).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("max-steps") {
			cfg.Workflow.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		sessionID, _ := cmd.Flags().GetString("session")
		noRender, _ := cmd.Flags().GetBool("no-render")
		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		err = cli.Execute(sigCtx, cli.RunOptions{
			Config:    cfg,
			SessionID: sessionID,
			Render:    interactive && !noRender,
			In:        os.Stdin,
			Out:       os.Stdout,
			Err:       os.Stderr,
		})
		if errors.Is(err, cli.ErrRunFailed) {
			// Details and transcript are already on stderr.
			os.Exit(1)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("max-steps", 0, "Step ceiling for the conversation (default from config)")
	runCmd.Flags().String("metrics-addr", "", "Serve /metrics, /healthz and /graph on this address")
	runCmd.Flags().String("session", "", "Session ID (random when empty)")
	runCmd.Flags().Bool("no-render", false, "Print plain text instead of rendered markdown")

	// Make 'run' the default if no command is provided
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}

package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/intake"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of intake",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("intake version %s\n", strings.TrimSpace(intake.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the workflow as a Mermaid diagram",
	Run: func(cmd *cobra.Command, args []string) {
		steps, entry := intake.Workflow()
		fmt.Print(graph.GenerateMermaid(steps, entry, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slackgraph/internal/adapters/memgraph"
	"slackgraph/internal/application/commands"
	"slackgraph/internal/config"
	"slackgraph/internal/domain"
)

var (
	projectPath string
	graphOut    string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Derive the weighted contribution graph",
}

var graphBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the graph from the mirror",
	Long: `Build the weighted contribution graph from the current mirror
snapshot. With --project, reaction weights come from the project
configuration; otherwise every reaction weighs 1.

Example:
  slackgraph-cli graph build --project project.json --out graph.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		weights := domain.DefaultWeights()
		if projectPath != "" {
			project, err := config.LoadProject(projectPath)
			if err != nil {
				return err
			}
			weights = project.Weights
		}

		sink := memgraph.New()
		buildCmd := commands.NewBuildGraphCommand(GetMirror(), sink, weights)
		stats, err := buildCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("built %d nodes, %d edges from %d channels (%d messages, %d skipped, %d unresolved refs)\n",
			sink.NodeCount(), sink.EdgeCount(), stats.Channels,
			stats.MessagesSeen, stats.MessagesSkipped, stats.UnresolvedRefs)

		if graphOut != "" {
			raw, err := json.MarshalIndent(sink, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(graphOut, raw, 0644); err != nil {
				return fmt.Errorf("failed to write graph: %w", err)
			}
			fmt.Printf("wrote %s\n", graphOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.AddCommand(graphBuildCmd)
	graphBuildCmd.Flags().StringVarP(&projectPath, "project", "p", "", "path to a project configuration file")
	graphBuildCmd.Flags().StringVarP(&graphOut, "out", "o", "", "write the graph as JSON to this file")
}

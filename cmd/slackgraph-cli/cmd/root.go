package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"slackgraph/internal/adapters/sqlite"
	"slackgraph/internal/config"
	"slackgraph/internal/logging"
	"slackgraph/internal/ports"
)

var (
	mirrorPath string
	mirror     ports.Mirror
)

var rootCmd = &cobra.Command{
	Use:   "slackgraph-cli",
	Short: "CLI for mirrored chat workspaces and their contribution graphs",
	Long: `slackgraph-cli works with a local mirror of a chat workspace
(channels, members, messages, reactions, threads) and derives a weighted
contribution graph from it.

It provides commands to initialize the mirror store, import a saved
workspace export, inspect the mirrored data, and build the graph.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := logging.Init(config.Env()); err != nil {
			return err
		}
		m, err := sqlite.Open(mirrorPath)
		if err != nil {
			return err
		}
		mirror = m
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logging.Sync()
		if mirror != nil {
			return mirror.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&mirrorPath, "mirror", "m", config.MirrorPath(), "path to the mirror store")
}

// GetMirror returns the opened mirror store
func GetMirror() ports.Mirror {
	return mirror
}

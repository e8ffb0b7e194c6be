package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"slackgraph/internal/adapters/slackexport"
	"slackgraph/internal/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <export-dir>",
	Short: "Import a saved workspace export into the mirror",
	Long: `Import a locally saved workspace export directory (users.json,
channels.json, and per-channel day files) into the mirror store.

The whole export is written in a single transaction: either all of it
commits or the store is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := slackexport.Load(args[0])
		if err != nil {
			return err
		}

		importer := commands.NewImportSnapshotCommand(GetMirror())
		importer.Members = snap.Members
		importer.Channels = snap.Channels
		importer.Messages = snap.Messages
		importer.Reactions = snap.Reactions

		stats, err := importer.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("imported %d members, %d channels, %d messages, %d reactions, %d mentions\n",
			stats.Members, stats.Channels, stats.Messages, stats.Reactions, stats.Mentions)
		if snap.SkippedMembers > 0 {
			fmt.Printf("skipped %d members without an email\n", snap.SkippedMembers)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

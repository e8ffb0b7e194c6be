package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"slackgraph/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list [channels|members|messages]",
	Short: "List mirrored entities",
	Long: `List channels, members, or a channel's messages from the mirror.

Examples:
  slackgraph-cli list channels
  slackgraph-cli list members
  slackgraph-cli list messages C024BE91L`,
}

var listChannelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List all mirrored channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		list := commands.NewListChannelsCommand(GetMirror())
		channels, err := list.Execute(ctx)
		if err != nil {
			return err
		}

		for _, ch := range channels {
			fmt.Printf("%s  #%s (%s)\n", ch.ID, ch.Name, ch.Type)
		}
		return nil
	},
}

var listMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "List all mirrored members",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		list := commands.NewListMembersCommand(GetMirror())
		members, err := list.Execute(ctx)
		if err != nil {
			return err
		}

		for _, m := range members {
			fmt.Printf("%s  %s <%s>\n", m.ID, m.Name, m.Email)
		}
		return nil
	},
}

var listMessagesCmd = &cobra.Command{
	Use:   "messages <channel-id>",
	Short: "List the messages of a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		list := commands.NewListMessagesCommand(GetMirror(), args[0])
		messages, err := list.Execute(ctx)
		if err != nil {
			return err
		}

		for _, msg := range messages {
			marks := ""
			if msg.HasReactions {
				marks += " [reactions]"
			}
			if msg.HasMentions {
				marks += " [mentions]"
			}
			if msg.IsThreadStarter() {
				marks += " [thread]"
			}
			fmt.Printf("%s  %s  %s%s\n", msg.ID, msg.AuthorID, msg.Body, marks)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listChannelsCmd)
	listCmd.AddCommand(listMembersCmd)
	listCmd.AddCommand(listMessagesCmd)
}

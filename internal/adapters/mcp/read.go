package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"slackgraph/internal/adapters/memgraph"
	"slackgraph/internal/application"
	"slackgraph/internal/application/commands"
	"slackgraph/internal/domain"
	"slackgraph/internal/ports"
)

// RegisterReadTools adds all read-only mirror and graph tools to the MCP
// server. The mirror is never written through this surface.
func RegisterReadTools(s *server.MCPServer, mirror ports.MirrorReader) {
	s.AddTool(listChannelsTool(), listChannelsHandler(mirror))
	s.AddTool(listMembersTool(), listMembersHandler(mirror))
	s.AddTool(listMessagesTool(), listMessagesHandler(mirror))
	s.AddTool(getMessageTool(), getMessageHandler(mirror))
	s.AddTool(graphStatsTool(), graphStatsHandler(mirror))
}

// --- list_channels ---

func listChannelsTool() mcp.Tool {
	return mcp.NewTool("list_channels",
		mcp.WithDescription("List the mirrored channels with their ids, names, and types."),
	)
}

func listChannelsHandler(mirror ports.MirrorReader) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		channels, err := mirror.ListChannels()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(channels, formatChannel)
	}
}

// --- list_members ---

func listMembersTool() mcp.Tool {
	return mcp.NewTool("list_members",
		mcp.WithDescription("List the mirrored workspace members with their ids, names, and emails."),
	)
}

func listMembersHandler(mirror ports.MirrorReader) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		members, err := mirror.ListMembers()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(members, formatMember)
	}
}

// --- list_messages ---

func listMessagesTool() mcp.Tool {
	return mcp.NewTool("list_messages",
		mcp.WithDescription("List the messages of a channel, flagging reactions, mentions, and thread starters."),
		mcp.WithString("channel_id",
			mcp.Description("Channel id (e.g. C024BE91L)"),
			mcp.Required(),
		),
	)
}

func listMessagesHandler(mirror ports.MirrorReader) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		channelID := req.GetString("channel_id", "")
		if channelID == "" {
			return toolError(fmt.Errorf("channel_id is required"))
		}

		messages, err := mirror.ListChannelMessages(channelID)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(messages, formatMessage)
	}
}

// --- get_message ---

func getMessageTool() mcp.Tool {
	return mcp.NewTool("get_message",
		mcp.WithDescription("Fetch one message by channel and message id."),
		mcp.WithString("channel_id",
			mcp.Description("Channel id"),
			mcp.Required(),
		),
		mcp.WithString("message_id",
			mcp.Description("Message id (timestamp-like, e.g. 1625097600.000200)"),
			mcp.Required(),
		),
	)
}

func getMessageHandler(mirror ports.MirrorReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		channelID := req.GetString("channel_id", "")
		messageID := req.GetString("message_id", "")

		getCmd := commands.NewGetMessageCommand(mirror, channelID, messageID)
		msg, err := getCmd.Execute(ctx)
		if errors.Is(err, application.ErrNotFound) {
			return mcp.NewToolResultText("No such message."), nil
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatMessage(*msg)), nil
	}
}

// --- graph_stats ---

func graphStatsTool() mcp.Tool {
	return mcp.NewTool("graph_stats",
		mcp.WithDescription("Build the contribution graph from the current mirror (default weights) and report node/edge counts."),
	)
}

func graphStatsHandler(mirror ports.MirrorReader) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sink := memgraph.New()
		buildCmd := commands.NewBuildGraphCommand(mirror, sink, domain.DefaultWeights())
		stats, err := buildCmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "nodes: %d\n", sink.NodeCount())
		fmt.Fprintf(&sb, "edges: %d\n", sink.EdgeCount())
		fmt.Fprintf(&sb, "channels: %d\n", stats.Channels)
		fmt.Fprintf(&sb, "messages: %d (%d skipped)\n", stats.MessagesSeen, stats.MessagesSkipped)
		fmt.Fprintf(&sb, "reactions: %d, mentions: %d, replies: %d\n", stats.Reactions, stats.Mentions, stats.Replies)
		fmt.Fprintf(&sb, "unresolved refs: %d, bad timestamps: %d\n", stats.UnresolvedRefs, stats.BadTimestamps)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatChannel(ch domain.Channel) string {
	return fmt.Sprintf("%s  #%s (%s)", ch.ID, ch.Name, ch.Type)
}

func formatMember(m domain.Member) string {
	return fmt.Sprintf("%s  %s <%s>", m.ID, m.Name, m.Email)
}

func formatMessage(msg domain.Message) string {
	var marks []string
	if msg.HasReactions {
		marks = append(marks, "reactions")
	}
	if msg.HasMentions {
		marks = append(marks, "mentions")
	}
	if msg.IsThreadStarter() {
		marks = append(marks, "thread")
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = "  [" + strings.Join(marks, ",") + "]"
	}
	return fmt.Sprintf("%s  %s  %s%s", msg.ID, msg.AuthorID, msg.Body, suffix)
}

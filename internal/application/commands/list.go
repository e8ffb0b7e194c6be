package commands

import (
	"context"
	"fmt"

	"slackgraph/internal/application"
	"slackgraph/internal/domain"
	"slackgraph/internal/ports"
)

// ListChannelsCommand lists the mirrored channels
type ListChannelsCommand struct {
	mirror ports.MirrorReader
}

// NewListChannelsCommand creates a new ListChannelsCommand
func NewListChannelsCommand(mirror ports.MirrorReader) *ListChannelsCommand {
	return &ListChannelsCommand{mirror: mirror}
}

// Execute returns all mirrored channels
func (c *ListChannelsCommand) Execute(ctx context.Context) ([]domain.Channel, error) {
	return c.mirror.ListChannels()
}

// ListMembersCommand lists the mirrored members
type ListMembersCommand struct {
	mirror ports.MirrorReader
}

// NewListMembersCommand creates a new ListMembersCommand
func NewListMembersCommand(mirror ports.MirrorReader) *ListMembersCommand {
	return &ListMembersCommand{mirror: mirror}
}

// Execute returns all mirrored members
func (c *ListMembersCommand) Execute(ctx context.Context) ([]domain.Member, error) {
	return c.mirror.ListMembers()
}

// ListMessagesCommand lists the messages of one channel
type ListMessagesCommand struct {
	mirror    ports.MirrorReader
	ChannelID string
}

// NewListMessagesCommand creates a new ListMessagesCommand
func NewListMessagesCommand(mirror ports.MirrorReader, channelID string) *ListMessagesCommand {
	return &ListMessagesCommand{mirror: mirror, ChannelID: channelID}
}

// Validate checks the command arguments
func (c *ListMessagesCommand) Validate() error {
	return application.ValidateRequired("channelID", c.ChannelID)
}

// Execute returns the channel's messages
func (c *ListMessagesCommand) Execute(ctx context.Context) ([]domain.Message, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.mirror.ListChannelMessages(c.ChannelID)
}

// GetMessageCommand fetches one message by channel and id
type GetMessageCommand struct {
	mirror    ports.MirrorReader
	ChannelID string
	MessageID string
}

// NewGetMessageCommand creates a new GetMessageCommand
func NewGetMessageCommand(mirror ports.MirrorReader, channelID, messageID string) *GetMessageCommand {
	return &GetMessageCommand{mirror: mirror, ChannelID: channelID, MessageID: messageID}
}

// Validate checks the command arguments
func (c *GetMessageCommand) Validate() error {
	if err := application.ValidateRequired("channelID", c.ChannelID); err != nil {
		return err
	}
	return application.ValidateRequired("messageID", c.MessageID)
}

// Execute returns the message, or application.ErrNotFound when the mirror
// has no such message.
func (c *GetMessageCommand) Execute(ctx context.Context) (*domain.Message, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	msg, err := c.mirror.GetMessage(c.ChannelID, c.MessageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("message %s in channel %s: %w", c.MessageID, c.ChannelID, application.ErrNotFound)
	}
	return msg, nil
}

package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slackgraph/internal/domain"
	"slackgraph/internal/logging"
	"slackgraph/internal/ports"
)

// BuildStats summarizes one graph-construction pass.
type BuildStats struct {
	Channels        int
	MessagesSeen    int
	MessagesSkipped int
	Reactions       int
	Mentions        int
	Replies         int
	UnresolvedRefs  int
	BadTimestamps   int
}

// BuildGraphCommand performs one full, synchronous pass over the mirror and
// emits addressed nodes and edges into the sink. Unresolved member
// references never fail the build: the affected record is skipped and
// counted, favoring a smaller-but-consistent graph over failing on a
// partial mirror.
type BuildGraphCommand struct {
	mirror  ports.MirrorReader
	sink    ports.GraphSink
	weights domain.Weights
	logger  *zap.Logger
}

// NewBuildGraphCommand creates a new BuildGraphCommand
func NewBuildGraphCommand(mirror ports.MirrorReader, sink ports.GraphSink, weights domain.Weights) *BuildGraphCommand {
	return &BuildGraphCommand{
		mirror:  mirror,
		sink:    sink,
		weights: weights,
		logger:  logging.Get(),
	}
}

// Execute runs the pass. The context is consulted between channels; there
// are no other suspension points, and no partial output is visible to
// callers that abandon the sink on error.
func (c *BuildGraphCommand) Execute(ctx context.Context) (*BuildStats, error) {
	stats := &BuildStats{}

	memberList, err := c.mirror.ListMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	members := make(map[string]domain.Member, len(memberList))
	for _, m := range memberList {
		members[m.ID] = m
	}

	channels, err := c.mirror.ListChannels()
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	for _, ch := range channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats.Channels++
		if err := c.buildChannel(ch, members, stats); err != nil {
			return nil, err
		}
	}

	c.logger.Info("graph build complete",
		zap.Int("channels", stats.Channels),
		zap.Int("messages", stats.MessagesSeen),
		zap.Int("skipped", stats.MessagesSkipped),
		zap.Int("unresolved_refs", stats.UnresolvedRefs),
		zap.Int("bad_timestamps", stats.BadTimestamps),
	)
	return stats, nil
}

func (c *BuildGraphCommand) buildChannel(ch domain.Channel, members map[string]domain.Member, stats *BuildStats) error {
	messages, err := c.mirror.ListChannelMessages(ch.ID)
	if err != nil {
		return fmt.Errorf("failed to load messages for %s: %w", ch.ID, err)
	}

	for _, msg := range messages {
		stats.MessagesSeen++
		isStarter := msg.IsThreadStarter()

		// Isolated messages never become nodes.
		if !msg.HasReactions && !msg.HasMentions && !isStarter {
			stats.MessagesSkipped++
			continue
		}

		if _, ok := msg.TimestampMs(); !ok {
			stats.BadTimestamps++
			c.logger.Warn("message id does not parse as a timestamp",
				zap.String("channel", ch.ID), zap.String("message", msg.ID))
		}

		hasEdges := false

		if msg.HasReactions {
			added, err := c.buildReactions(ch, msg, members, stats)
			if err != nil {
				return err
			}
			hasEdges = hasEdges || added
		}

		for _, mentionedID := range msg.Mentions {
			mentioned, ok := members[mentionedID]
			if !ok {
				stats.UnresolvedRefs++
				c.logger.Debug("skipping mention of unknown member",
					zap.String("member", mentionedID), zap.String("message", msg.ID))
				continue
			}
			c.sink.AddNode(domain.MemberNode(mentioned))
			c.sink.AddEdge(domain.MentionsEdge(msg, mentioned))
			stats.Mentions++
			hasEdges = true
		}

		// Thread starters materialize unconditionally, independent of the
		// hasEdges flag used for authorship gating.
		if isStarter {
			if err := c.buildThread(ch, msg, stats); err != nil {
				return err
			}
		}

		if hasEdges {
			c.sink.AddNode(domain.MessageNode(msg, ch))
			author, ok := members[msg.AuthorID]
			if !ok {
				// Reaction/mention edges stay; only authorship attribution
				// is dropped.
				stats.UnresolvedRefs++
				c.logger.Debug("skipping authorship of unknown member",
					zap.String("member", msg.AuthorID), zap.String("message", msg.ID))
				continue
			}
			c.sink.AddNode(domain.MemberNode(author))
			c.sink.AddEdge(domain.AuthorsMessageEdge(author, msg))
		}
	}
	return nil
}

// buildReactions emits a reaction node, its weight, the reactor's member
// node, and both reaction edges for every resolvable reaction. Returns
// whether any edge was added.
func (c *BuildGraphCommand) buildReactions(ch domain.Channel, msg domain.Message, members map[string]domain.Member, stats *BuildStats) (bool, error) {
	reactions, err := c.mirror.ListMessageReactions(msg.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load reactions for %s: %w", msg.ID, err)
	}

	added := false
	for _, r := range reactions {
		reactor, ok := members[r.Reactor]
		if !ok {
			stats.UnresolvedRefs++
			c.logger.Debug("skipping reaction by unknown member",
				zap.String("member", r.Reactor), zap.String("message", msg.ID))
			continue
		}

		node := domain.ReactionNode(r, msg)
		weight := domain.ReactionWeight(c.weights, r.Name, r.Reactor, msg.AuthorID, ch.ID)
		c.sink.AddNode(node)
		c.sink.SetNodeWeight(node.Address, weight)
		c.sink.AddNode(domain.MemberNode(reactor))
		c.sink.AddEdge(domain.ReactsToEdge(r, msg))
		c.sink.AddEdge(domain.AddsReactionEdge(reactor, r, msg))
		stats.Reactions++
		added = true
	}
	return added, nil
}

// buildThread emits the starter's message node plus a message node and
// RepliesTo edge per known reply.
func (c *BuildGraphCommand) buildThread(ch domain.Channel, starter domain.Message, stats *BuildStats) error {
	replyIDs, err := c.mirror.ListThreadReplyIDs(starter.ID)
	if err != nil {
		return fmt.Errorf("failed to load replies for %s: %w", starter.ID, err)
	}
	if len(replyIDs) == 0 {
		// A starter with no known replies stays out of the graph.
		return nil
	}

	c.sink.AddNode(domain.MessageNode(starter, ch))
	for _, replyID := range replyIDs {
		reply, err := c.mirror.GetMessage(ch.ID, replyID)
		if err != nil {
			return err
		}
		if reply == nil {
			stats.UnresolvedRefs++
			continue
		}
		c.sink.AddNode(domain.MessageNode(*reply, ch))
		c.sink.AddEdge(domain.RepliesToEdge(starter, *reply))
		stats.Replies++
	}
	return nil
}

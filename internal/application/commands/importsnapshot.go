package commands

import (
	"context"

	"go.uber.org/zap"

	"slackgraph/internal/domain"
	"slackgraph/internal/logging"
	"slackgraph/internal/ports"
)

// ImportStats summarizes one snapshot import.
type ImportStats struct {
	Members   int
	Channels  int
	Messages  int
	Reactions int
	Mentions  int
}

// ImportSnapshotCommand writes one parsed workspace snapshot into the
// mirror. All rows land in a single transaction: either the whole snapshot
// commits or the store is left untouched.
type ImportSnapshotCommand struct {
	mirror    ports.Mirror
	Members   []domain.Member
	Channels  []domain.Channel
	Messages  []domain.Message
	Reactions []domain.Reaction
}

// NewImportSnapshotCommand creates a new ImportSnapshotCommand
func NewImportSnapshotCommand(mirror ports.Mirror) *ImportSnapshotCommand {
	return &ImportSnapshotCommand{mirror: mirror}
}

// Execute writes the snapshot and returns row counts.
func (c *ImportSnapshotCommand) Execute(ctx context.Context) (*ImportStats, error) {
	stats := &ImportStats{}

	err := c.mirror.InTransaction(func(tx ports.MirrorTx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, m := range c.Members {
			if err := tx.PutMember(m); err != nil {
				return err
			}
			stats.Members++
		}
		for _, ch := range c.Channels {
			if err := tx.PutChannel(ch); err != nil {
				return err
			}
			stats.Channels++
		}
		for _, msg := range c.Messages {
			if err := tx.PutMessage(msg); err != nil {
				return err
			}
			stats.Messages++
			for _, mentionedID := range msg.Mentions {
				if err := tx.PutMention(msg.ID, mentionedID); err != nil {
					return err
				}
				stats.Mentions++
			}
		}
		for _, r := range c.Reactions {
			if err := tx.PutReaction(r); err != nil {
				return err
			}
			stats.Reactions++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Get().Info("snapshot imported",
		zap.Int("members", stats.Members),
		zap.Int("channels", stats.Channels),
		zap.Int("messages", stats.Messages),
		zap.Int("reactions", stats.Reactions),
		zap.Int("mentions", stats.Mentions),
	)
	return stats, nil
}

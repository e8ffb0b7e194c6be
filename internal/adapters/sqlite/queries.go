package sqlite

import (
	"database/sql"
	"fmt"

	"slackgraph/internal/domain"
)

// Read operations exposed to the graph builder: pure queries over the
// committed store. All run outside any transaction; the store is not
// mutated concurrently.

// ListMembers returns every mirrored member, ordered by id.
func (m *Mirror) ListMembers() ([]domain.Member, error) {
	rows, err := m.db.Query(`SELECT user_id, name, email FROM members ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var mem domain.Member
		var name sql.NullString
		if err := rows.Scan(&mem.ID, &name, &mem.Email); err != nil {
			return nil, err
		}
		mem.Name = name.String
		members = append(members, mem)
	}
	return members, rows.Err()
}

// ListChannels returns every mirrored channel, ordered by id.
func (m *Mirror) ListChannels() ([]domain.Channel, error) {
	rows, err := m.db.Query(`SELECT channel_id, name, type FROM channels ORDER BY channel_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []domain.Channel
	for rows.Next() {
		var ch domain.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Type); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

const messageColumns = `
	m.channel_id, m.timestamp_ms, m.author_id, m.message_body, m.thread, m.in_reply_to,
	EXISTS (SELECT 1 FROM message_reactions r WHERE r.message_id = m.timestamp_ms) AS has_reactions,
	EXISTS (SELECT 1 FROM message_mentions mm WHERE mm.message_id = m.timestamp_ms) AS has_mentions
`

// scanMessage scans one messages row plus the derived reaction/mention
// flags.
func scanMessage(scan func(dest ...interface{}) error) (domain.Message, error) {
	var msg domain.Message
	var body, inReplyTo sql.NullString
	var thread sql.NullBool
	err := scan(
		&msg.ChannelID, &msg.ID, &msg.AuthorID, &body, &thread, &inReplyTo,
		&msg.HasReactions, &msg.HasMentions,
	)
	if err != nil {
		return domain.Message{}, err
	}
	msg.Body = body.String
	msg.Thread = thread.Bool
	msg.InReplyTo = inReplyTo.String
	return msg, nil
}

// ListChannelMessages returns the messages of a channel in id order, with
// mentioned member ids populated.
func (m *Mirror) ListChannelMessages(channelID string) ([]domain.Message, error) {
	rows, err := m.db.Query(`
		SELECT `+messageColumns+`
		FROM messages m
		WHERE m.channel_id = ?
		ORDER BY m.timestamp_ms
	`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for %s: %w", channelID, err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range messages {
		if !messages[i].HasMentions {
			continue
		}
		mentions, err := m.listMessageMentions(messages[i].ID)
		if err != nil {
			return nil, err
		}
		messages[i].Mentions = mentions
	}
	return messages, nil
}

// GetMessage fetches one message by channel and id; (nil, nil) when the
// mirror has no such message.
func (m *Mirror) GetMessage(channelID, messageID string) (*domain.Message, error) {
	row := m.db.QueryRow(`
		SELECT `+messageColumns+`
		FROM messages m
		WHERE m.channel_id = ? AND m.timestamp_ms = ?
	`, channelID, messageID)

	msg, err := scanMessage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}

	if msg.HasMentions {
		mentions, err := m.listMessageMentions(msg.ID)
		if err != nil {
			return nil, err
		}
		msg.Mentions = mentions
	}
	return &msg, nil
}

// ListMessageReactions returns the reactions recorded for a message, in
// insertion order. Rows with a missing name or reactor are returned as-is;
// the builder decides what to skip.
func (m *Mirror) ListMessageReactions(messageID string) ([]domain.Reaction, error) {
	rows, err := m.db.Query(`
		SELECT message_id, reaction_name, reactor
		FROM message_reactions
		WHERE message_id = ?
		ORDER BY rowid
	`, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions for %s: %w", messageID, err)
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var r domain.Reaction
		var name, reactor sql.NullString
		if err := rows.Scan(&r.MessageID, &name, &reactor); err != nil {
			return nil, err
		}
		r.Name = name.String
		r.Reactor = reactor.String
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

// ListThreadReplyIDs returns the ids of messages replying to a
// thread-starter id, excluding the starter itself.
func (m *Mirror) ListThreadReplyIDs(messageID string) ([]string, error) {
	rows, err := m.db.Query(`
		SELECT timestamp_ms
		FROM messages
		WHERE in_reply_to = ? AND timestamp_ms != ?
		ORDER BY timestamp_ms
	`, messageID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies for %s: %w", messageID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// listMessageMentions returns the mentioned member ids in body order.
func (m *Mirror) listMessageMentions(messageID string) ([]string, error) {
	rows, err := m.db.Query(`
		SELECT mentioned_user_id
		FROM message_mentions
		WHERE message_id = ?
		ORDER BY rowid
	`, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentions for %s: %w", messageID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

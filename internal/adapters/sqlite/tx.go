package sqlite

import (
	"database/sql"
	"fmt"

	"slackgraph/internal/application"
	"slackgraph/internal/domain"
	"slackgraph/internal/ports"
)

// withTx runs fn inside exactly one transaction: begin, body, commit.
// The transaction is rolled back when fn returns an error or panics.
// Invoking it while a transaction is already active is a programmer error.
func (m *Mirror) withTx(fn func(*sql.Tx) error) error {
	if m.inTx {
		return application.ErrNestedTransaction
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	m.inTx = true
	defer func() {
		m.inTx = false
		// No-op after a successful commit; releases the transaction on
		// the error and panic paths.
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// InTransaction exposes the mirror's write surface under the transaction
// guard.
func (m *Mirror) InTransaction(fn func(ports.MirrorTx) error) error {
	return m.withTx(func(tx *sql.Tx) error {
		return fn(&mirrorTx{tx: tx})
	})
}

// mirrorTx implements ports.MirrorTx
type mirrorTx struct {
	tx *sql.Tx
}

var _ ports.MirrorTx = (*mirrorTx)(nil)

// PutChannel inserts or replaces a channel
func (t *mirrorTx) PutChannel(ch domain.Channel) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO channels (channel_id, name, type)
		VALUES (?, ?, ?)
	`, ch.ID, ch.Name, ch.Type)
	return err
}

// PutMember inserts or replaces a member
func (t *mirrorTx) PutMember(m domain.Member) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO members (user_id, name, email)
		VALUES (?, ?, ?)
	`, m.ID, nullString(m.Name), m.Email)
	return err
}

// PutMessage inserts or replaces a message (keyed by channel + id). The
// message's reaction and mention rows are cleared so re-putting a message
// replaces its derived rows instead of accumulating duplicates.
func (t *mirrorTx) PutMessage(msg domain.Message) error {
	if _, err := t.tx.Exec(`DELETE FROM message_reactions WHERE message_id = ?`, msg.ID); err != nil {
		return err
	}
	if _, err := t.tx.Exec(`DELETE FROM message_mentions WHERE message_id = ?`, msg.ID); err != nil {
		return err
	}
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO messages (channel_id, timestamp_ms, author_id, message_body, thread, in_reply_to)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ChannelID, msg.ID, msg.AuthorID, msg.Body, msg.Thread, nullString(msg.InReplyTo))
	return err
}

// PutReaction appends one reaction row; the table has no natural key.
func (t *mirrorTx) PutReaction(r domain.Reaction) error {
	_, err := t.tx.Exec(`
		INSERT INTO message_reactions (message_id, reaction_name, reactor)
		VALUES (?, ?, ?)
	`, r.MessageID, r.Name, r.Reactor)
	return err
}

// PutMention appends one mention row.
func (t *mirrorTx) PutMention(messageID, memberID string) error {
	_, err := t.tx.Exec(`
		INSERT INTO message_mentions (message_id, mentioned_user_id)
		VALUES (?, ?)
	`, messageID, memberID)
	return err
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

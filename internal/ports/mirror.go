package ports

import "slackgraph/internal/domain"

// MirrorReader exposes pure queries over a committed mirror snapshot.
// Lookups that find nothing return (nil, nil) / empty slices, never an
// error: a partial mirror is expected and tolerated.
type MirrorReader interface {
	// ListMembers returns every mirrored member.
	ListMembers() ([]domain.Member, error)

	// ListChannels returns every mirrored channel.
	ListChannels() ([]domain.Channel, error)

	// ListChannelMessages returns the messages of a channel, with the
	// derived HasReactions/HasMentions flags and mentioned member ids
	// populated.
	ListChannelMessages(channelID string) ([]domain.Message, error)

	// ListMessageReactions returns the reactions recorded for a message.
	ListMessageReactions(messageID string) ([]domain.Reaction, error)

	// GetMessage fetches one message by channel and id; (nil, nil) when
	// the mirror has no such message.
	GetMessage(channelID, messageID string) (*domain.Message, error)

	// ListThreadReplyIDs returns the ids of the replies anchored to a
	// thread-starter message id, excluding the starter itself.
	ListThreadReplyIDs(messageID string) ([]string, error)
}

// MirrorTx is the write surface available inside a mirror transaction.
// Channels, members and messages are upserts keyed by their natural key;
// reactions and mentions are appended (the schema gives them none), but
// PutMessage clears the message's existing reaction/mention rows first, so
// re-importing a snapshot replaces rather than accumulates.
type MirrorTx interface {
	PutChannel(ch domain.Channel) error
	PutMember(m domain.Member) error
	PutMessage(msg domain.Message) error
	PutReaction(r domain.Reaction) error
	PutMention(messageID, memberID string) error
}

// Mirror is the full mirror-store contract. InTransaction runs fn inside
// exactly one transaction: committed when fn returns nil, rolled back when
// it returns an error or panics. Opening a transaction while one is active
// is a programmer error and fails with application.ErrNestedTransaction.
type Mirror interface {
	MirrorReader
	InTransaction(fn func(MirrorTx) error) error
	Close() error
}

package domain

import "strconv"

// Channel is a mirrored chat channel.
type Channel struct {
	ID   string // e.g., "C024BE91L"
	Name string // e.g., "general"
	Type string // e.g., "public"
}

// Member is a mirrored workspace member. Email is the stable identity key
// (aliased accounts share one); the display name may be empty.
type Member struct {
	ID    string // e.g., "U023BECGF"
	Name  string
	Email string
}

// Message is a mirrored chat message. ID is the numeric-string,
// timestamp-like identifier assigned by the upstream service.
type Message struct {
	ChannelID    string
	ID           string // e.g., "1625097600.000200"
	AuthorID     string
	Body         string
	Thread       bool
	InReplyTo    string
	HasReactions bool
	HasMentions  bool
	Mentions     []string // mentioned member ids, in body order
}

// Reaction is one emoji reaction by one member on a message. Reactions
// carry no timestamp of their own; records derived from them borrow the
// message's.
type Reaction struct {
	MessageID string
	Name      string // emoji key, e.g. "thumbsup"
	Reactor   string // member id
}

// IsThreadStarter reports whether the message anchors a thread: it is
// flagged as a thread and replies to itself.
func (m Message) IsThreadStarter() bool {
	return m.Thread && m.InReplyTo == m.ID
}

// TimestampMs derives the millisecond timestamp from the message id.
// Ids are epoch-seconds-like strings; an id that does not parse as a
// number yields 0 and ok=false.
func (m Message) TimestampMs() (ts int64, ok bool) {
	secs, err := strconv.ParseFloat(m.ID, 64)
	if err != nil {
		return 0, false
	}
	return int64(secs * 1000), true
}

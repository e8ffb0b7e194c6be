package domain

import (
	"fmt"
	"html"
)

// maxBodyPreview bounds message descriptions; longer bodies are cut and
// marked with an ellipsis before escaping.
const maxBodyPreview = 30

// Node is an immutable graph node record. Descriptions are HTML-escaped so
// they are safe to embed when rendered elsewhere. TimestampMs is 0 where no
// event time exists (members).
type Node struct {
	Address     NodeAddress
	Description string
	TimestampMs int64
}

// previewBody truncates free text for display.
func previewBody(body string) string {
	runes := []rune(body)
	if len(runes) <= maxBodyPreview {
		return body
	}
	return string(runes[:maxBodyPreview]) + "..."
}

// MemberNode builds the node for a workspace member. The display name
// falls back to the email when unset.
func MemberNode(m Member) Node {
	name := m.Name
	if name == "" {
		name = m.Email
	}
	return Node{
		Address:     MemberNodeAddress(m),
		Description: fmt.Sprintf("member %s", html.EscapeString(name)),
	}
}

// MessageNode builds the node for a message in a channel.
func MessageNode(msg Message, ch Channel) Node {
	ts, _ := msg.TimestampMs()
	return Node{
		Address:     MessageNodeAddress(msg.ChannelID, msg.ID),
		Description: fmt.Sprintf("message \"%s\" in #%s", html.EscapeString(previewBody(msg.Body)), html.EscapeString(ch.Name)),
		TimestampMs: ts,
	}
}

// ReactionNode builds the node for one reaction kind on a message. The
// timestamp is borrowed from the message, an explicit approximation:
// reactions carry no event time of their own.
func ReactionNode(r Reaction, msg Message) Node {
	ts, _ := msg.TimestampMs()
	return Node{
		Address:     ReactionNodeAddress(msg.ChannelID, r.Name, msg.AuthorID, msg.ID),
		Description: fmt.Sprintf(":%s: reaction to message %s", html.EscapeString(r.Name), msg.ID),
		TimestampMs: ts,
	}
}

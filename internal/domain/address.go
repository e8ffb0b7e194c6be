package domain

import (
	"net/url"
	"strings"
)

// NodeAddress uniquely identifies a graph node. An address is a sequence of
// percent-escaped components joined with "/"; the leading component is the
// variant's namespace token, so addresses of distinct variants never
// collide. Construction is pure and deterministic: equal inputs always
// produce byte-identical addresses.
type NodeAddress string

// EdgeAddress uniquely identifies a graph edge. Same encoding as
// NodeAddress, with edge-specific namespaces.
type EdgeAddress string

// Node namespaces.
const (
	nsMemberNode   = "member"
	nsMessageNode  = "message"
	nsReactionNode = "reaction"
)

// Edge namespaces.
const (
	nsAuthorsMessageEdge = "authors_message"
	nsAddsReactionEdge   = "adds_reaction"
	nsReactsToEdge       = "reacts_to"
	nsMentionsEdge       = "mentions"
	nsRepliesToEdge      = "replies_to"
)

// joinAddress escapes each component so the separator stays unambiguous
// for arbitrary component text (emails, emoji names).
func joinAddress(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.Join(escaped, "/")
}

// MemberNodeAddress addresses a member by email rather than raw id, so
// aliased accounts that share an email collapse into one node.
func MemberNodeAddress(m Member) NodeAddress {
	return NodeAddress(joinAddress(nsMemberNode, m.Email))
}

// MessageNodeAddress addresses a message by channel and message id.
func MessageNodeAddress(channelID, messageID string) NodeAddress {
	return NodeAddress(joinAddress(nsMessageNode, channelID, messageID))
}

// ReactionNodeAddress addresses one reaction kind on one message. The
// reacted-to author sorts before the message id on purpose: address
// listings group by author of the reacted message before disambiguating
// by message.
func ReactionNodeAddress(channelID, reactionName, messageAuthorID, messageID string) NodeAddress {
	return NodeAddress(joinAddress(nsReactionNode, channelID, reactionName, messageAuthorID, messageID))
}

// AuthorsMessageEdgeAddress identifies the authorship relation between a
// member (by email) and a message.
func AuthorsMessageEdgeAddress(authorEmail, channelID, messageID string) EdgeAddress {
	return EdgeAddress(joinAddress(nsAuthorsMessageEdge, authorEmail, channelID, messageID))
}

// AddsReactionEdgeAddress identifies a member adding one reaction. The
// reactor's email is part of the address so two members adding the same
// reaction produce distinct edges.
func AddsReactionEdgeAddress(reactorEmail, channelID, reactionName, messageAuthorID, messageID string) EdgeAddress {
	return EdgeAddress(joinAddress(nsAddsReactionEdge, reactorEmail, channelID, reactionName, messageAuthorID, messageID))
}

// ReactsToEdgeAddress identifies the relation from a reaction node to the
// message it reacts to.
func ReactsToEdgeAddress(channelID, reactionName, messageAuthorID, messageID string) EdgeAddress {
	return EdgeAddress(joinAddress(nsReactsToEdge, channelID, reactionName, messageAuthorID, messageID))
}

// MentionsEdgeAddress identifies a message mentioning a member.
func MentionsEdgeAddress(channelID, messageID, mentionedEmail string) EdgeAddress {
	return EdgeAddress(joinAddress(nsMentionsEdge, channelID, messageID, mentionedEmail))
}

// RepliesToEdgeAddress identifies the relation from a thread starter to
// one of its replies.
func RepliesToEdgeAddress(channelID, starterID, replyID string) EdgeAddress {
	return EdgeAddress(joinAddress(nsRepliesToEdge, channelID, starterID, replyID))
}

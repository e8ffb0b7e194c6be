package domain

// Edge is an immutable directed graph edge record between two node
// addresses.
type Edge struct {
	Address     EdgeAddress
	TimestampMs int64
	Src         NodeAddress
	Dst         NodeAddress
}

// AuthorsMessageEdge connects a member to a message they wrote.
func AuthorsMessageEdge(author Member, msg Message) Edge {
	ts, _ := msg.TimestampMs()
	return Edge{
		Address:     AuthorsMessageEdgeAddress(author.Email, msg.ChannelID, msg.ID),
		TimestampMs: ts,
		Src:         MemberNodeAddress(author),
		Dst:         MessageNodeAddress(msg.ChannelID, msg.ID),
	}
}

// AddsReactionEdge connects the reacting member to the reaction node.
func AddsReactionEdge(reactor Member, r Reaction, msg Message) Edge {
	ts, _ := msg.TimestampMs()
	return Edge{
		Address:     AddsReactionEdgeAddress(reactor.Email, msg.ChannelID, r.Name, msg.AuthorID, msg.ID),
		TimestampMs: ts,
		Src:         MemberNodeAddress(reactor),
		Dst:         ReactionNodeAddress(msg.ChannelID, r.Name, msg.AuthorID, msg.ID),
	}
}

// ReactsToEdge connects a reaction node to the message it reacts to.
func ReactsToEdge(r Reaction, msg Message) Edge {
	ts, _ := msg.TimestampMs()
	return Edge{
		Address:     ReactsToEdgeAddress(msg.ChannelID, r.Name, msg.AuthorID, msg.ID),
		TimestampMs: ts,
		Src:         ReactionNodeAddress(msg.ChannelID, r.Name, msg.AuthorID, msg.ID),
		Dst:         MessageNodeAddress(msg.ChannelID, msg.ID),
	}
}

// MentionsEdge connects a message to a member it mentions.
func MentionsEdge(msg Message, mentioned Member) Edge {
	ts, _ := msg.TimestampMs()
	return Edge{
		Address:     MentionsEdgeAddress(msg.ChannelID, msg.ID, mentioned.Email),
		TimestampMs: ts,
		Src:         MessageNodeAddress(msg.ChannelID, msg.ID),
		Dst:         MemberNodeAddress(mentioned),
	}
}

// RepliesToEdge connects a thread starter to one of its replies. The edge
// carries the reply's timestamp: the reply being posted is the event.
func RepliesToEdge(starter, reply Message) Edge {
	ts, _ := reply.TimestampMs()
	return Edge{
		Address:     RepliesToEdgeAddress(starter.ChannelID, starter.ID, reply.ID),
		TimestampMs: ts,
		Src:         MessageNodeAddress(starter.ChannelID, starter.ID),
		Dst:         MessageNodeAddress(reply.ChannelID, reply.ID),
	}
}

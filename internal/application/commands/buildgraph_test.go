package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slackgraph/internal/adapters/memgraph"
	"slackgraph/internal/domain"
)

// fakeMirror serves a fixed workspace snapshot from memory.
type fakeMirror struct {
	members   []domain.Member
	channels  []domain.Channel
	messages  map[string][]domain.Message  // by channel id
	reactions map[string][]domain.Reaction // by message id
}

func (f *fakeMirror) ListMembers() ([]domain.Member, error)   { return f.members, nil }
func (f *fakeMirror) ListChannels() ([]domain.Channel, error) { return f.channels, nil }

func (f *fakeMirror) ListChannelMessages(channelID string) ([]domain.Message, error) {
	return f.messages[channelID], nil
}

func (f *fakeMirror) ListMessageReactions(messageID string) ([]domain.Reaction, error) {
	return f.reactions[messageID], nil
}

func (f *fakeMirror) GetMessage(channelID, messageID string) (*domain.Message, error) {
	for _, msg := range f.messages[channelID] {
		if msg.ID == messageID {
			m := msg
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMirror) ListThreadReplyIDs(messageID string) ([]string, error) {
	var ids []string
	for _, msgs := range f.messages {
		for _, msg := range msgs {
			if msg.InReplyTo == messageID && msg.ID != messageID {
				ids = append(ids, msg.ID)
			}
		}
	}
	return ids, nil
}

var (
	ada = domain.Member{ID: "U1", Name: "Ada", Email: "ada@example.com"}
	bob = domain.Member{ID: "U2", Name: "Bob", Email: "bob@example.com"}

	general = domain.Channel{ID: "C1", Name: "general", Type: "public"}
)

func buildGraph(t *testing.T, mirror *fakeMirror, weights domain.Weights) (*memgraph.Graph, *BuildStats) {
	t.Helper()
	sink := memgraph.New()
	stats, err := NewBuildGraphCommand(mirror, sink, weights).Execute(context.Background())
	require.NoError(t, err)
	return sink, stats
}

func TestBuildGraph_EmptyMirror(t *testing.T) {
	sink, stats := buildGraph(t, &fakeMirror{}, domain.DefaultWeights())

	assert.Equal(t, 0, sink.NodeCount())
	assert.Equal(t, 0, sink.EdgeCount())
	assert.Equal(t, 0, stats.Channels)
}

func TestBuildGraph_ReactedMessage(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", Body: "hello", HasReactions: true}
	mirror := &fakeMirror{
		members:   []domain.Member{ada, bob},
		channels:  []domain.Channel{general},
		messages:  map[string][]domain.Message{"C1": {msg}},
		reactions: map[string][]domain.Reaction{"1.000100": {{MessageID: "1.000100", Name: "thumbsup", Reactor: "U2"}}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	// Nodes: message, author, reactor, reaction.
	assert.Equal(t, 4, sink.NodeCount())
	// Edges: authors_message, adds_reaction, reacts_to.
	assert.Equal(t, 3, sink.EdgeCount())

	reactionAddr := domain.ReactionNodeAddress("C1", "thumbsup", "U1", "1.000100")
	if _, ok := sink.Node(reactionAddr); !ok {
		t.Fatalf("missing reaction node %s", reactionAddr)
	}
	w, ok := sink.NodeWeight(reactionAddr)
	require.True(t, ok)
	assert.Equal(t, 1.0, w)

	assert.Equal(t, 1, stats.Reactions)
	assert.Equal(t, 0, stats.MessagesSkipped)
}

func TestBuildGraph_ReactionWeights(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", HasReactions: true}
	mirror := &fakeMirror{
		members:   []domain.Member{ada, bob},
		channels:  []domain.Channel{general},
		messages:  map[string][]domain.Message{"C1": {msg}},
		reactions: map[string][]domain.Reaction{"1.000100": {{MessageID: "1.000100", Name: "fire", Reactor: "U2"}}},
	}
	weights := domain.Weights{
		Channel: domain.WeightGroup{Default: 1, Overrides: map[string]float64{"C1": 2}},
		Emoji:   domain.WeightGroup{Default: 1, Overrides: map[string]float64{"fire": 4}},
	}

	sink, _ := buildGraph(t, mirror, weights)

	w, ok := sink.NodeWeight(domain.ReactionNodeAddress("C1", "fire", "U1", "1.000100"))
	require.True(t, ok)
	assert.Equal(t, 8.0, w)
}

func TestBuildGraph_MentioningMessage(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", Body: "hi <@U2>", HasMentions: true, Mentions: []string{"U2"}}
	mirror := &fakeMirror{
		members:  []domain.Member{ada, bob},
		channels: []domain.Channel{general},
		messages: map[string][]domain.Message{"C1": {msg}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	// Nodes: message, author, mentioned member.
	assert.Equal(t, 3, sink.NodeCount())
	// Edges: authors_message, mentions.
	assert.Equal(t, 2, sink.EdgeCount())
	assert.Equal(t, 1, stats.Mentions)
}

func TestBuildGraph_Thread(t *testing.T) {
	starter := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", Thread: true, InReplyTo: "1.000100"}
	reply := domain.Message{ChannelID: "C1", ID: "2.000100", AuthorID: "U2", Thread: true, InReplyTo: "1.000100"}
	mirror := &fakeMirror{
		members:  []domain.Member{ada, bob},
		channels: []domain.Channel{general},
		messages: map[string][]domain.Message{"C1": {starter, reply}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	// Nodes: starter, reply. No member nodes: neither message has
	// reactions or mentions, so no authorship is attributed.
	assert.Equal(t, 2, sink.NodeCount())
	assert.Equal(t, 1, sink.EdgeCount())
	assert.Equal(t, 1, stats.Replies)

	edges := sink.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, domain.MessageNodeAddress("C1", "1.000100"), edges[0].Src)
	assert.Equal(t, domain.MessageNodeAddress("C1", "2.000100"), edges[0].Dst)
	assert.Equal(t, int64(2000), edges[0].TimestampMs, "2.000100 seconds is 2000ms")
}

func TestBuildGraph_StarterWithoutRepliesExcluded(t *testing.T) {
	starter := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", Thread: true, InReplyTo: "1.000100"}
	mirror := &fakeMirror{
		members:  []domain.Member{ada},
		channels: []domain.Channel{general},
		messages: map[string][]domain.Message{"C1": {starter}},
	}

	sink, _ := buildGraph(t, mirror, domain.DefaultWeights())

	assert.Equal(t, 0, sink.NodeCount(), "a starter with no mirrored replies stays out of the graph")
	assert.Equal(t, 0, sink.EdgeCount())
}

func TestBuildGraph_PlainMessageSkipped(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", Body: "nothing to see"}
	mirror := &fakeMirror{
		members:  []domain.Member{ada},
		channels: []domain.Channel{general},
		messages: map[string][]domain.Message{"C1": {msg}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	assert.Equal(t, 0, sink.NodeCount())
	assert.Equal(t, 0, sink.EdgeCount())
	assert.Equal(t, 1, stats.MessagesSkipped)
}

func TestBuildGraph_UnknownReactorSkipped(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", HasReactions: true}
	mirror := &fakeMirror{
		members:   []domain.Member{ada},
		channels:  []domain.Channel{general},
		messages:  map[string][]domain.Message{"C1": {msg}},
		reactions: map[string][]domain.Reaction{"1.000100": {{MessageID: "1.000100", Name: "fire", Reactor: "U-gone"}}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	assert.Equal(t, 0, sink.NodeCount(), "the only edge source was unresolvable, nothing materializes")
	assert.Equal(t, 0, sink.EdgeCount())
	assert.Equal(t, 1, stats.UnresolvedRefs)
}

func TestBuildGraph_UnknownAuthorKeepsReactionEdges(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U-gone", HasReactions: true}
	mirror := &fakeMirror{
		members:   []domain.Member{bob},
		channels:  []domain.Channel{general},
		messages:  map[string][]domain.Message{"C1": {msg}},
		reactions: map[string][]domain.Reaction{"1.000100": {{MessageID: "1.000100", Name: "fire", Reactor: "U2"}}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	// Nodes: message, reactor, reaction. Edges: adds_reaction, reacts_to.
	assert.Equal(t, 3, sink.NodeCount())
	assert.Equal(t, 2, sink.EdgeCount())
	assert.Equal(t, 1, stats.UnresolvedRefs)

	for _, e := range sink.Edges() {
		if strings.HasPrefix(string(e.Address), "authors_message/") {
			t.Errorf("unexpected authorship edge for unknown author: %s", e.Address)
		}
	}
}

func TestBuildGraph_BadTimestampCounted(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "not-a-timestamp", AuthorID: "U1", HasMentions: true, Mentions: []string{"U2"}}
	mirror := &fakeMirror{
		members:  []domain.Member{ada, bob},
		channels: []domain.Channel{general},
		messages: map[string][]domain.Message{"C1": {msg}},
	}

	sink, stats := buildGraph(t, mirror, domain.DefaultWeights())

	assert.Equal(t, 1, stats.BadTimestamps)
	node, ok := sink.Node(domain.MessageNodeAddress("C1", "not-a-timestamp"))
	require.True(t, ok)
	assert.Equal(t, int64(0), node.TimestampMs, "unparsable ids degrade to timestamp 0")
}

func TestBuildGraph_CancelledContext(t *testing.T) {
	mirror := &fakeMirror{
		members:  []domain.Member{ada},
		channels: []domain.Channel{general},
		messages: map[string][]domain.Message{"C1": nil},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuildGraphCommand(mirror, memgraph.New(), domain.DefaultWeights()).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildGraph_Idempotent(t *testing.T) {
	msg := domain.Message{ChannelID: "C1", ID: "1.000100", AuthorID: "U1", HasReactions: true}
	mirror := &fakeMirror{
		members:   []domain.Member{ada, bob},
		channels:  []domain.Channel{general},
		messages:  map[string][]domain.Message{"C1": {msg}},
		reactions: map[string][]domain.Reaction{"1.000100": {{MessageID: "1.000100", Name: "thumbsup", Reactor: "U2"}}},
	}

	sink := memgraph.New()
	_, err := NewBuildGraphCommand(mirror, sink, domain.DefaultWeights()).Execute(context.Background())
	require.NoError(t, err)
	_, err = NewBuildGraphCommand(mirror, sink, domain.DefaultWeights()).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, sink.NodeCount(), "rebuilding into the same sink must not duplicate")
	assert.Equal(t, 3, sink.EdgeCount())
}

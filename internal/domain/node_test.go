package domain

import (
	"strings"
	"testing"
)

func TestMessageTimestampMs(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want int64
		ok   bool
	}{
		{"plain seconds", "1625097600.000200", 1625097600000, true},
		{"integer id", "1625097600", 1625097600000, true},
		{"garbage id", "not-a-timestamp", 0, false},
		{"empty id", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Message{ID: tt.id}.TimestampMs()
			if got != tt.want || ok != tt.ok {
				t.Errorf("TimestampMs() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsThreadStarter(t *testing.T) {
	starter := Message{ID: "1.0", Thread: true, InReplyTo: "1.0"}
	if !starter.IsThreadStarter() {
		t.Errorf("thread message replying to itself should be a starter")
	}

	reply := Message{ID: "2.0", Thread: true, InReplyTo: "1.0"}
	if reply.IsThreadStarter() {
		t.Errorf("reply should not be a starter")
	}

	plain := Message{ID: "3.0"}
	if plain.IsThreadStarter() {
		t.Errorf("non-thread message should not be a starter")
	}
}

func TestMemberNode_NameFallsBackToEmail(t *testing.T) {
	node := MemberNode(Member{ID: "U1", Email: "ada@example.com"})

	expected := "member ada@example.com"
	if node.Description != expected {
		t.Errorf("expected %q, got %q", expected, node.Description)
	}
	if node.TimestampMs != 0 {
		t.Errorf("member nodes carry no timestamp, got %d", node.TimestampMs)
	}
}

func TestMessageNode_TruncatesAndEscapesBody(t *testing.T) {
	long := strings.Repeat("a", 40)
	msg := Message{ChannelID: "C1", ID: "1625097600.000200", Body: long}
	ch := Channel{ID: "C1", Name: "general"}

	node := MessageNode(msg, ch)

	expected := "message \"" + strings.Repeat("a", 30) + "...\" in #general"
	if node.Description != expected {
		t.Errorf("expected %q, got %q", expected, node.Description)
	}
	if node.TimestampMs != 1625097600000 {
		t.Errorf("expected message timestamp, got %d", node.TimestampMs)
	}
}

func TestMessageNode_EscapesHTML(t *testing.T) {
	msg := Message{ChannelID: "C1", ID: "1.0", Body: "<b>hi</b>"}
	node := MessageNode(msg, Channel{Name: "general"})

	if strings.Contains(node.Description, "<b>") {
		t.Errorf("body must be HTML-escaped, got %q", node.Description)
	}
	if !strings.Contains(node.Description, "&lt;b&gt;hi&lt;/b&gt;") {
		t.Errorf("expected escaped body in %q", node.Description)
	}
}

func TestMessageNode_ShortBodyNotTruncated(t *testing.T) {
	msg := Message{ChannelID: "C1", ID: "1.0", Body: "hello"}
	node := MessageNode(msg, Channel{Name: "general"})

	if strings.Contains(node.Description, "...") {
		t.Errorf("short body should not gain an ellipsis: %q", node.Description)
	}
}

func TestReactionNode_BorrowsMessageTimestamp(t *testing.T) {
	msg := Message{ChannelID: "C1", ID: "1625097600.000200", AuthorID: "U2"}
	r := Reaction{MessageID: msg.ID, Name: "thumbsup", Reactor: "U1"}

	node := ReactionNode(r, msg)

	if node.TimestampMs != 1625097600000 {
		t.Errorf("reaction node should borrow message timestamp, got %d", node.TimestampMs)
	}
	expected := ":thumbsup: reaction to message 1625097600.000200"
	if node.Description != expected {
		t.Errorf("expected %q, got %q", expected, node.Description)
	}
}

package slackexport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExportFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeFixtureExport(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeExportFile(t, dir, "users.json", `[
		{"id": "U1", "name": "ada", "profile": {"real_name": "Ada Lovelace", "email": "ada@example.com"}},
		{"id": "U2", "name": "bob", "profile": {"display_name": "bobby", "email": "bob@example.com"}},
		{"id": "UBOT", "name": "deploybot", "is_bot": true, "profile": {"real_name": "Deploy Bot"}}
	]`)

	writeExportFile(t, dir, "channels.json", `[
		{"id": "C1", "name": "general", "is_private": false},
		{"id": "C2", "name": "secrets", "is_private": true}
	]`)

	writeExportFile(t, dir, "general/2021-07-01.json", `[
		{"type": "message", "ts": "1625097600.000200", "user": "U1", "text": "hello <@U2> and <@U2> again",
		 "reactions": [{"name": "wave", "users": ["U2", "U1"]}]},
		{"type": "message", "subtype": "channel_join", "ts": "1625097700.000100", "user": "U2", "text": "joined"},
		{"type": "message", "ts": "1625097800.000100", "user": "U2", "text": "reply",
		 "thread_ts": "1625097600.000200"}
	]`)

	return dir
}

func TestLoad_Members(t *testing.T) {
	snap, err := Load(writeFixtureExport(t))
	require.NoError(t, err)

	require.Len(t, snap.Members, 2)
	assert.Equal(t, "Ada Lovelace", snap.Members[0].Name, "real name used when display name is unset")
	assert.Equal(t, "bobby", snap.Members[1].Name, "display name wins when present")
	assert.Equal(t, 1, snap.SkippedMembers, "the email-less bot is dropped")
}

func TestLoad_Channels(t *testing.T) {
	snap, err := Load(writeFixtureExport(t))
	require.NoError(t, err)

	require.Len(t, snap.Channels, 2)
	assert.Equal(t, "public", snap.Channels[0].Type)
	assert.Equal(t, "private", snap.Channels[1].Type)
}

func TestLoad_MessagesFilteredAndParsed(t *testing.T) {
	snap, err := Load(writeFixtureExport(t))
	require.NoError(t, err)

	require.Len(t, snap.Messages, 2, "subtype rows are not user messages")

	first := snap.Messages[0]
	assert.Equal(t, "C1", first.ChannelID)
	assert.Equal(t, "1625097600.000200", first.ID)
	assert.Equal(t, []string{"U2"}, first.Mentions, "mentions deduplicate in body order")
	assert.False(t, first.Thread)

	reply := snap.Messages[1]
	assert.True(t, reply.Thread)
	assert.Equal(t, "1625097600.000200", reply.InReplyTo)
}

func TestLoad_ReactionsExpandPerUser(t *testing.T) {
	snap, err := Load(writeFixtureExport(t))
	require.NoError(t, err)

	require.Len(t, snap.Reactions, 2, "one row per reacting user")
	assert.Equal(t, "wave", snap.Reactions[0].Name)
	assert.Equal(t, "U2", snap.Reactions[0].Reactor)
	assert.Equal(t, "U1", snap.Reactions[1].Reactor)
}

func TestLoad_ChannelWithoutDirectory(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "users.json", `[]`)
	writeExportFile(t, dir, "channels.json", `[{"id": "C9", "name": "empty", "is_private": false}]`)

	snap, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, snap.Channels, 1)
	assert.Empty(t, snap.Messages)
}

func TestLoad_MalformedFileAborts(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "users.json", `{not json`)
	writeExportFile(t, dir, "channels.json", `[]`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestParseMentions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"none", "plain text", nil},
		{"single", "hi <@U023BECGF>", []string{"U023BECGF"}},
		{"ordered", "<@U2> then <@U1>", []string{"U2", "U1"}},
		{"deduplicated", "<@U1> <@U2> <@U1>", []string{"U1", "U2"}},
		{"lowercase not a mention", "<@u1>", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMentions(tt.body))
		})
	}
}

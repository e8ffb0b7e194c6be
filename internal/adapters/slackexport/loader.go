// Package slackexport parses a locally saved Slack-style workspace export:
// users.json and channels.json at the root, one subdirectory per channel
// holding day files of messages. Nothing is fetched remotely.
package slackexport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"slackgraph/internal/domain"
	"slackgraph/internal/logging"
)

// mentionPattern matches inline member mentions in message bodies: <@U023BECGF>
var mentionPattern = regexp.MustCompile(`<@([A-Z0-9]+)>`)

type exportUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
	IsBot   bool   `json:"is_bot"`
	Profile struct {
		RealName    string `json:"real_name"`
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
	} `json:"profile"`
}

type exportChannel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
}

type exportReaction struct {
	Name  string   `json:"name"`
	Users []string `json:"users"`
}

type exportMessage struct {
	Type      string           `json:"type"`
	Subtype   string           `json:"subtype"`
	TS        string           `json:"ts"`
	User      string           `json:"user"`
	Text      string           `json:"text"`
	ThreadTS  string           `json:"thread_ts"`
	Reactions []exportReaction `json:"reactions"`
}

// Snapshot is one parsed export directory, flattened into mirror entities.
type Snapshot struct {
	Members   []domain.Member
	Channels  []domain.Channel
	Messages  []domain.Message
	Reactions []domain.Reaction

	// SkippedMembers counts users dropped for missing the email identity
	// key; messages referencing them stay and are tolerated downstream.
	SkippedMembers int
}

// Load parses the export rooted at dir. Channels without a message
// directory are kept (the export may predate any activity); files that
// fail to parse abort the load.
func Load(dir string) (*Snapshot, error) {
	logger := logging.Get()
	snap := &Snapshot{}

	var users []exportUser
	if err := readJSON(filepath.Join(dir, "users.json"), &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Profile.Email == "" {
			snap.SkippedMembers++
			logger.Warn("skipping member without email", zap.String("member", u.ID))
			continue
		}
		name := u.Profile.DisplayName
		if name == "" {
			name = u.Profile.RealName
		}
		snap.Members = append(snap.Members, domain.Member{
			ID:    u.ID,
			Name:  name,
			Email: u.Profile.Email,
		})
	}

	var channels []exportChannel
	if err := readJSON(filepath.Join(dir, "channels.json"), &channels); err != nil {
		return nil, err
	}
	for _, ch := range channels {
		chType := "public"
		if ch.IsPrivate {
			chType = "private"
		}
		snap.Channels = append(snap.Channels, domain.Channel{
			ID:   ch.ID,
			Name: ch.Name,
			Type: chType,
		})

		if err := loadChannelMessages(dir, ch, snap); err != nil {
			return nil, err
		}
	}

	return snap, nil
}

// loadChannelMessages reads the channel's day files (named by the channel,
// as Slack exports lay them out) in lexical order.
func loadChannelMessages(dir string, ch exportChannel, snap *Snapshot) error {
	chDir := filepath.Join(dir, ch.Name)
	entries, err := os.ReadDir(chDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read channel directory %s: %w", chDir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var raw []exportMessage
		if err := readJSON(filepath.Join(chDir, name), &raw); err != nil {
			return err
		}
		for _, em := range raw {
			if em.Type != "message" || em.Subtype != "" || em.TS == "" || em.User == "" {
				continue
			}

			mentions := parseMentions(em.Text)
			snap.Messages = append(snap.Messages, domain.Message{
				ChannelID: ch.ID,
				ID:        em.TS,
				AuthorID:  em.User,
				Body:      em.Text,
				Thread:    em.ThreadTS != "",
				InReplyTo: em.ThreadTS,
				Mentions:  mentions,
			})

			for _, r := range em.Reactions {
				for _, reactor := range r.Users {
					snap.Reactions = append(snap.Reactions, domain.Reaction{
						MessageID: em.TS,
						Name:      r.Name,
						Reactor:   reactor,
					})
				}
			}
		}
	}
	return nil
}

// parseMentions extracts mentioned member ids in body order, deduplicated.
func parseMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var ids []string
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		ids = append(ids, m[1])
	}
	return ids
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

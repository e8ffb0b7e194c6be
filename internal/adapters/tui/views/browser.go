package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"slackgraph/internal/adapters/tui/styles"
	"slackgraph/internal/domain"
	"slackgraph/internal/ports"
)

const messagePageSize = 20

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Back     key.Binding
	Enter    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Back: key.NewBinding(
		key.WithKeys("h", "left", "esc"),
		key.WithHelp("h/esc", "back"),
	),
	Enter: key.NewBinding(
		key.WithKeys("l", "right", "enter"),
		key.WithHelp("enter", "open channel"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "pgup"),
		key.WithHelp("p", "prev page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy address"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// browserLevel tracks which list the browser is showing
type browserLevel int

const (
	levelChannels browserLevel = iota
	levelMessages
)

// BrowserModel browses the mirrored workspace: a channel list, and the
// messages of the selected channel with their graph annotations.
type BrowserModel struct {
	ViewState

	mirror ports.MirrorReader

	level    browserLevel
	channels []domain.Channel
	messages []domain.Message
	members  map[string]domain.Member
	current  *domain.Channel

	channelPager *Paginator
	messagePager *Paginator
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(mirror ports.MirrorReader) *BrowserModel {
	return &BrowserModel{
		mirror:       mirror,
		channelPager: NewPaginator(messagePageSize),
		messagePager: NewPaginator(messagePageSize),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadChannels
}

type channelsLoadedMsg struct {
	channels []domain.Channel
	members  map[string]domain.Member
}

type messagesLoadedMsg struct {
	messages []domain.Message
}

func (m *BrowserModel) loadChannels() tea.Msg {
	channels, err := m.mirror.ListChannels()
	if err != nil {
		return errMsg{err}
	}
	members, err := m.mirror.ListMembers()
	if err != nil {
		return errMsg{err}
	}
	byID := make(map[string]domain.Member, len(members))
	for _, member := range members {
		byID[member.ID] = member
	}
	return channelsLoadedMsg{channels: channels, members: byID}
}

func (m *BrowserModel) loadMessages(channelID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := m.mirror.ListChannelMessages(channelID)
		if err != nil {
			return errMsg{err}
		}
		return messagesLoadedMsg{messages}
	}
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case channelsLoadedMsg:
		m.channels = msg.channels
		m.members = msg.members
		m.channelPager.SetTotal(len(m.channels))
		return m, nil

	case messagesLoadedMsg:
		m.messages = msg.messages
		m.messagePager.Reset()
		m.messagePager.SetTotal(len(m.messages))
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case copiedMsg:
		m.SetMessage(fmt.Sprintf("Copied %s", msg.text), false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.pager().CursorUp()
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			m.pager().CursorDown()
			return m, nil

		case key.Matches(msg, BrowserKeys.NextPage):
			m.pager().NextPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.PrevPage):
			m.pager().PrevPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			if m.level == levelChannels {
				if ch := m.selectedChannel(); ch != nil {
					m.level = levelMessages
					m.current = ch
					m.messages = nil
					return m, m.loadMessages(ch.ID)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Back):
			if m.level == levelMessages {
				m.level = levelChannels
				m.current = nil
				m.messages = nil
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			return m, m.copyAddress()

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) pager() *Paginator {
	if m.level == levelMessages {
		return m.messagePager
	}
	return m.channelPager
}

func (m *BrowserModel) selectedChannel() *domain.Channel {
	cursor := m.channelPager.Cursor()
	if cursor >= 0 && cursor < len(m.channels) {
		return &m.channels[cursor]
	}
	return nil
}

func (m *BrowserModel) selectedMessage() *domain.Message {
	cursor := m.messagePager.Cursor()
	if cursor >= 0 && cursor < len(m.messages) {
		return &m.messages[cursor]
	}
	return nil
}

// copyAddress copies the graph node address of the current selection to the
// clipboard: the message node address in the message list, the channel ID in
// the channel list.
func (m *BrowserModel) copyAddress() tea.Cmd {
	var text string
	switch m.level {
	case levelMessages:
		msg := m.selectedMessage()
		if msg == nil {
			return nil
		}
		text = string(domain.MessageNodeAddress(msg.ChannelID, msg.ID))
	default:
		ch := m.selectedChannel()
		if ch == nil {
			return nil
		}
		text = ch.ID
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg{fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return copiedMsg{text}
	}
}

type copiedMsg struct {
	text string
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Slackgraph"))
	b.WriteString("\n")
	if m.level == levelMessages && m.current != nil {
		b.WriteString(styles.Subtitle.Render("#" + m.current.Name))
	} else {
		b.WriteString(styles.Subtitle.Render("Mirrored Channels"))
	}
	b.WriteString("\n\n")

	if m.level == levelMessages {
		m.renderMessages(&b)
	} else {
		m.renderChannels(&b)
	}

	pager := m.pager()
	if pager.TotalPages() > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(
			fmt.Sprintf("page %d/%d", pager.CurrentPage(), pager.TotalPages())))
	}

	if m.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderChannels(b *strings.Builder) {
	if len(m.channels) == 0 {
		b.WriteString(styles.MutedText.Render("No channels mirrored yet."))
		b.WriteString("\n")
		return
	}

	start, end := m.channelPager.VisibleRange()
	for i := start; i < end; i++ {
		ch := m.channels[i]
		style := styles.ChannelName
		if ch.Type == "private" {
			style = styles.PrivateChannel
		}
		line := style.Render("#" + ch.Name)
		if i == m.channelPager.Cursor() {
			line = styles.Selected.Render("#" + ch.Name)
		}
		b.WriteString(line)
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(ch.ID))
		b.WriteString("\n")
	}
}

func (m *BrowserModel) renderMessages(b *strings.Builder) {
	if len(m.messages) == 0 {
		b.WriteString(styles.MutedText.Render("No messages in this channel."))
		b.WriteString("\n")
		return
	}

	start, end := m.messagePager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderMessage(m.messages[i], i == m.messagePager.Cursor()))
		b.WriteString("\n")
	}
}

func (m *BrowserModel) renderMessage(msg domain.Message, selected bool) string {
	author := msg.AuthorID
	if member, ok := m.members[msg.AuthorID]; ok && member.Name != "" {
		author = member.Name
	}

	stamp := "????-??-?? ??:??"
	if ms, ok := msg.TimestampMs(); ok {
		stamp = time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
	}

	body := msg.Body
	if maxBody := m.Width - 50; maxBody > 10 {
		body = truncate(body, maxBody)
	} else {
		body = truncate(body, 60)
	}

	var marks []string
	if msg.HasReactions {
		marks = append(marks, styles.MarkReactions.String())
	}
	if msg.HasMentions {
		marks = append(marks, styles.MarkMentions.String())
	}
	if msg.Thread {
		marks = append(marks, styles.MarkThread.String())
	}

	text := fmt.Sprintf("%s %s %s",
		styles.Timestamp.Render(stamp),
		styles.Author.Render(author),
		styles.Body.Render(body),
	)
	if selected {
		text = styles.Selected.Render(fmt.Sprintf("%s %s %s", stamp, author, body))
	}
	if len(marks) > 0 {
		text += " " + strings.Join(marks, " ")
	}
	return text
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func (m *BrowserModel) renderHelpLine() string {
	bindings := []key.Binding{
		BrowserKeys.Up,
		BrowserKeys.Down,
	}
	if m.level == levelChannels {
		bindings = append(bindings, BrowserKeys.Enter)
	} else {
		bindings = append(bindings, BrowserKeys.Back)
	}
	bindings = append(bindings,
		BrowserKeys.NextPage,
		BrowserKeys.Copy,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	)
	return RenderHelpLine(bindings...)
}

// Reload reloads the channel list from the mirror
func (m *BrowserModel) Reload() tea.Cmd {
	if m.level == levelMessages && m.current != nil {
		return m.loadMessages(m.current.ID)
	}
	m.channelPager.Reset()
	return m.loadChannels
}

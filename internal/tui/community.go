package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/greenconnect/internal/community"
)

type communityModel struct {
	board  *community.Board
	width  int
	height int

	topics   []string // "all" first
	topic    string
	messages []community.Message

	viewport  viewport.Model
	input     textinput.Model
	composing bool
}

func newCommunityModel(b *community.Board) communityModel {
	if b == nil {
		panic("tui: community view requires a message board")
	}
	in := textinput.New()
	in.Placeholder = "Share something with the community..."
	in.CharLimit = 280
	in.Width = 60

	return communityModel{
		board:    b,
		topics:   []string{community.TopicAll},
		topic:    community.TopicAll,
		viewport: viewport.New(60, 10),
		input:    in,
	}
}

func (c *communityModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.viewport.Width = max(20, w-8)
	c.viewport.Height = max(3, h-12)
	c.input.Width = max(10, w-14)
	c.viewport.SetContent(c.renderMessages())
}

// setTopic selects a topic; empty selects everything.
func (c *communityModel) setTopic(topic string) {
	if topic == "" {
		topic = community.TopicAll
	}
	c.topic = topic
}

type communityDataMsg struct {
	topic    string
	topics   []string
	messages []community.Message
	err      error
}

func (c communityModel) refresh() tea.Cmd {
	topic := c.topic
	return func() tea.Msg {
		topics, err := c.board.Topics()
		if err != nil {
			return communityDataMsg{topic: topic, err: err}
		}
		msgs, err := c.board.Messages(topic)
		return communityDataMsg{
			topic:    topic,
			topics:   append([]string{community.TopicAll}, topics...),
			messages: msgs,
			err:      err,
		}
	}
}

func (c communityModel) update(msg tea.Msg) (communityModel, tea.Cmd) {
	switch msg := msg.(type) {
	case communityDataMsg:
		if msg.err != nil {
			return c, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Community error: %v", msg.err), isError: true}
			}
		}
		if msg.topic != c.topic {
			// Stale response for a topic we've since left.
			return c, nil
		}
		c.topics = msg.topics
		c.messages = msg.messages
		c.viewport.SetContent(c.renderMessages())
		c.viewport.GotoBottom()
		return c, nil

	case tea.KeyMsg:
		if c.composing {
			return c.updateCompose(msg)
		}
		switch {
		case key.Matches(msg, keys.Left):
			c.setTopic(c.cycleTopic(-1))
			return c, c.refresh()
		case key.Matches(msg, keys.Right):
			c.setTopic(c.cycleTopic(1))
			return c, c.refresh()
		case key.Matches(msg, keys.Compose), key.Matches(msg, keys.Enter):
			c.composing = true
			return c, c.input.Focus()
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

func (c communityModel) updateCompose(msg tea.KeyMsg) (communityModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		c.composing = false
		c.input.Blur()
		return c, nil
	case key.Matches(msg, keys.Enter):
		return c.send()
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send hands the draft to the board. The board is read-only, so the draft
// stays in the input and the user gets a notice.
func (c communityModel) send() (communityModel, tea.Cmd) {
	body := strings.TrimSpace(c.input.Value())
	if body == "" {
		return c, nil
	}
	err := c.board.Send(c.topic, body)
	if errors.Is(err, community.ErrSendDisabled) {
		return c, func() tea.Msg {
			return statusMsg{text: "Sending messages is not available yet", isError: true}
		}
	}
	if err != nil {
		return c, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Send error: %v", err), isError: true}
		}
	}
	c.input.SetValue("")
	return c, c.refresh()
}

func (c communityModel) cycleTopic(step int) string {
	if len(c.topics) == 0 {
		return community.TopicAll
	}
	idx := 0
	for i, t := range c.topics {
		if t == c.topic {
			idx = i
			break
		}
	}
	idx = (idx + step + len(c.topics)) % len(c.topics)
	return c.topics[idx]
}

func (c communityModel) renderMessages() string {
	if len(c.messages) == 0 {
		return mutedStyle.Render("No messages in this topic yet.")
	}
	width := max(20, c.viewport.Width)
	var rows []string
	for _, m := range c.messages {
		header := fmt.Sprintf("%s  %s  %s",
			accentStyle.Render(m.Author),
			mutedStyle.Render("#"+m.Topic),
			subtitleStyle.Render(m.PostedAt.Local().Format("Jan 02 15:04")),
		)
		body := lipgloss.NewStyle().Width(width - 2).PaddingLeft(2).Render(m.Body)
		rows = append(rows, header, body, "")
	}
	return strings.Join(rows, "\n")
}

func (c communityModel) renderTopicTabs() string {
	var tabs []string
	for _, t := range c.topics {
		if t == c.topic {
			tabs = append(tabs, activeTabStyle.Render(t))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (c communityModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("Community")

	inputStyle := panelStyle.Padding(0, 1)
	hint := mutedStyle.Render("  ←/→: topic  i: write  ↑/↓: scroll")
	if c.composing {
		inputStyle = activePanelStyle.Padding(0, 1)
		hint = mutedStyle.Render("  enter: send  esc: stop writing")
	}
	compose := inputStyle.Width(w - 6).Render(c.input.View())

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		c.renderTopicTabs(),
		"",
		c.viewport.View(),
		compose,
		hint,
	))
}

package model

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"farmbot/config"
)

// FallbackReply is shown for every failed chat request, whatever the cause
const FallbackReply = "Sorry, I encountered an error. Please try again."

type EntryKind int

const (
	EntryUser EntryKind = iota
	EntryBot
	EntryTyping
)

func (k EntryKind) String() string {
	switch k {
	case EntryUser:
		return "user"
	case EntryBot:
		return "bot"
	case EntryTyping:
		return "typing"
	}
	return "unknown"
}

// Entry is one item of the chat log. User and bot entries are never changed
// after creation; the typing indicator is the only entry ever removed.
type Entry struct {
	ID        string
	Kind      EntryKind
	Text      string // raw text as typed or as returned by the server
	Markup    string // Format(Text) for bot replies
	Timestamp time.Time
}

// ChatSession owns the chat log and issues chat requests
type ChatSession struct {
	backend Backend
	timeout time.Duration

	entries  []Entry
	typingID string

	// token -> send time, for diagnostics only
	pending map[string]time.Time
}

func NewChatSession(backend Backend, timeout time.Duration) *ChatSession {
	return &ChatSession{
		backend: backend,
		timeout: timeout,
		pending: make(map[string]time.Time),
	}
}

// Entries returns a copy of the log in display order
func (s *ChatSession) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Typing reports whether a typing indicator is on screen
func (s *ChatSession) Typing() bool {
	return s.typingID != ""
}

// Pending returns the number of requests still awaiting a reply
func (s *ChatSession) Pending() int {
	return len(s.pending)
}

func (s *ChatSession) AppendUser(text string) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Kind:      EntryUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.entries = append(s.entries, e)
	return e
}

func (s *ChatSession) appendBot(text string) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Kind:      EntryBot,
		Text:      text,
		Markup:    Format(text),
		Timestamp: time.Now(),
	}
	s.entries = append(s.entries, e)
	return e
}

// ShowTyping appends the typing indicator. Only one indicator exists at a
// time: an outstanding one is moved to the end of the log.
func (s *ChatSession) ShowTyping() Entry {
	s.removeTyping()

	e := Entry{
		ID:        uuid.NewString(),
		Kind:      EntryTyping,
		Timestamp: time.Now(),
	}
	s.entries = append(s.entries, e)
	s.typingID = e.ID
	return e
}

// removeTyping drops the current indicator, whichever request added it
func (s *ChatSession) removeTyping() bool {
	if s.typingID == "" {
		return false
	}
	for i, e := range s.entries {
		if e.ID == s.typingID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.typingID = ""
	return true
}

// Send issues one chat request. The reply arrives as a ChatResponseMsg; no
// ordering is imposed between concurrent requests.
func (s *ChatSession) Send(message string, filters Filters) tea.Cmd {
	token := uuid.NewString()
	sentAt := time.Now()
	s.pending[token] = sentAt

	backend := s.backend
	timeout := s.timeout

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] request %s: %q filters=%+v", token, message, filters)
		}

		reply, err := backend.Chat(ctx, message, filters)
		return ChatResponseMsg{
			Token:   token,
			Reply:   reply,
			Err:     err,
			Elapsed: time.Since(sentAt),
		}
	}
}

// HandleResponse removes the typing indicator if one is present and appends
// the bot entry: the server's reply on success, FallbackReply on failure.
func (s *ChatSession) HandleResponse(msg ChatResponseMsg) Entry {
	delete(s.pending, msg.Token)
	s.removeTyping()

	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chat] request %s failed after %v: %v", msg.Token, msg.Elapsed, msg.Err)
		}
		return s.appendBot(FallbackReply)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Chat] request %s answered in %v (%d chars)", msg.Token, msg.Elapsed, len(msg.Reply))
	}
	return s.appendBot(msg.Reply)
}

// LastReply returns the most recent bot entry
func (s *ChatSession) LastReply() (Entry, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Kind == EntryBot {
			return s.entries[i], true
		}
	}
	return Entry{}, false
}

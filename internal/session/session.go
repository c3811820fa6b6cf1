// ABOUTME: Chat session: sends messages through a responder and records each exchange
// ABOUTME: Every exchange is published on a typed event bus for stats and transcript observers

package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mauromedda/supportbot-go/internal/eventbus"
	"github.com/mauromedda/supportbot-go/internal/intent"
)

// Responder turns a message into a reply. *intent.Engine and *intent.Holder
// both satisfy it.
type Responder interface {
	Reply(message string) intent.Reply
}

// Exchange is one user message and the reply it received.
type Exchange struct {
	Seq        int          `json:"seq"`
	User       string       `json:"user"`
	Bot        string       `json:"bot"`
	CategoryID string       `json:"category,omitempty"`
	Phase      intent.Phase `json:"phase"`
	Confidence float64      `json:"confidence"`
	Pattern    string       `json:"pattern,omitempty"`
	Sensitive  bool         `json:"sensitive,omitempty"`
	At         time.Time    `json:"at"`
}

// Role identifies who wrote a chat message.
type Role string

const (
	RoleBot  Role = "bot"
	RoleUser Role = "user"
)

// Message is one bubble in the chat transcript.
type Message struct {
	Role Role
	Text string
}

// Option configures a Session.
type Option func(*Session)

// WithWelcome sets the greeting shown as the first bot message.
func WithWelcome(text string) Option {
	return func(s *Session) { s.welcome = text }
}

// WithBus publishes exchanges on an existing bus instead of a private one.
func WithBus(b *eventbus.Bus[Exchange]) Option {
	return func(s *Session) {
		if b != nil {
			s.bus = b
		}
	}
}

// WithClock overrides the time source used to stamp exchanges.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session is one conversation. Messages are still matched independently;
// the session only keeps the transcript.
type Session struct {
	ID        string
	responder Responder
	bus       *eventbus.Bus[Exchange]
	now       func() time.Time
	welcome   string

	mu      sync.Mutex
	history []Exchange
}

// New creates a session answering through r.
func New(id string, r Responder, opts ...Option) *Session {
	s := &Session{
		ID:        id,
		responder: r,
		bus:       eventbus.New[Exchange](),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewID returns a sortable, practically unique session identifier.
func NewID() string {
	return fmt.Sprintf("%s-%04x", time.Now().UTC().Format("20060102-150405"), rand.IntN(0x10000))
}

// Bus returns the bus exchanges are published on.
func (s *Session) Bus() *eventbus.Bus[Exchange] { return s.bus }

// Welcome returns the greeting, or "" when none is configured.
func (s *Session) Welcome() string { return s.welcome }

// Send answers message, records the exchange and publishes it.
func (s *Session) Send(message string) Exchange {
	r := s.responder.Reply(message)

	s.mu.Lock()
	ex := Exchange{
		Seq:        len(s.history) + 1,
		User:       message,
		Bot:        r.Text,
		CategoryID: r.CategoryID,
		Phase:      r.Phase,
		Confidence: r.Confidence,
		Pattern:    r.Pattern,
		Sensitive:  r.Sensitive,
		At:         s.now(),
	}
	s.history = append(s.history, ex)
	s.mu.Unlock()

	s.bus.Publish(ex)
	return ex
}

// History returns a copy of the recorded exchanges.
func (s *Session) History() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Exchange(nil), s.history...)
}

// Messages flattens the transcript into chat bubbles, welcome first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]Message, 0, 1+2*len(s.history))
	if s.welcome != "" {
		msgs = append(msgs, Message{Role: RoleBot, Text: s.welcome})
	}
	for _, ex := range s.history {
		msgs = append(msgs,
			Message{Role: RoleUser, Text: ex.User},
			Message{Role: RoleBot, Text: ex.Bot},
		)
	}
	return msgs
}

// Package assistant relays user text to a generative-text service and keeps
// per-conversation history, oldest first.
package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// FallbackReply substitutes an empty or failed service response.
	FallbackReply = "Sorry, I couldn't process that."
)

// Generator produces a single-turn reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Reply is the outcome of one Ask. Degraded is set when the fallback text was
// substituted for a missing or failed service response.
type Reply struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Text           string    `json:"text"`
	Degraded       bool      `json:"degraded,omitempty"`
}

type Service struct {
	gen Generator

	mu            sync.Mutex
	conversations map[uuid.UUID][]Message
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen, conversations: make(map[uuid.UUID][]Message)}
}

// Ask forwards text verbatim to the generator and appends both the request and
// the reply to the conversation. A zero conversation id starts a new one.
// Service failures degrade to the fallback reply; they are never returned.
func (s *Service) Ask(ctx context.Context, conversationID uuid.UUID, text string) Reply {
	if conversationID == uuid.Nil {
		conversationID = uuid.New()
	}

	reply := Reply{ConversationID: conversationID}
	answer, err := s.gen.Generate(ctx, text)
	if err != nil {
		logrus.WithError(err).Warn("assistant request failed")
	}
	if err != nil || answer == "" {
		reply.Text = FallbackReply
		reply.Degraded = true
	} else {
		reply.Text = answer
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.conversations[conversationID] = append(s.conversations[conversationID],
		Message{Role: RoleUser, Text: text, At: now},
		Message{Role: RoleAssistant, Text: reply.Text, At: now},
	)
	s.mu.Unlock()

	return reply
}

// History returns a copy of the conversation, oldest message first.
func (s *Service) History(conversationID uuid.UUID) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.conversations[conversationID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "model"
)

type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is one chat window: idle until Send, awaiting until the reply arrives. Only one
// request may be outstanding; a Send while awaiting is a no-op.
type Conversation struct {
	uc *ChatUseCase

	mu         sync.Mutex
	awaiting   bool
	transcript []Turn
}

// NewConversation starts a transcript with the assistant's greeting for the portfolio owner.
func NewConversation(uc *ChatUseCase, ownerName string) *Conversation {
	return &Conversation{
		uc:         uc,
		transcript: []Turn{{Role: RoleAssistant, Text: Greeting(ownerName)}},
	}
}

func Greeting(ownerName string) string {
	return fmt.Sprintf("Hi! I'm %s's AI assistant. Ask me anything about their work, skills, or experience!", ownerName)
}

// Send records text, asks the assistant and records the reply. Blank input, or input sent while
// a reply is pending, is ignored and yields an empty reply.
func (c *Conversation) Send(ctx context.Context, text string, doc *portfolio.Document) (string, error) {
	c.mu.Lock()
	if c.awaiting || strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return "", nil
	}
	c.awaiting = true
	c.transcript = append(c.transcript, Turn{Role: RoleUser, Text: text})
	c.mu.Unlock()

	reply := c.uc.Ask(ctx, text, doc)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, Turn{Role: RoleAssistant, Text: reply})
	c.awaiting = false
	return reply, nil
}

func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

func (c *Conversation) Transcript() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}

package persona

import (
	"context"
	"fmt"
	"strings"

	"github.com/salescoach/backend/internal/conversation"
	"github.com/salescoach/backend/internal/llm"
	"github.com/salescoach/backend/internal/scenario"
)

// Generator plays the simulated customer using the chat completion API.
// It implements conversation.PersonaGenerator.
type Generator struct {
	client *llm.Client
}

func NewGenerator(client *llm.Client) *Generator {
	return &Generator{client: client}
}

// OpeningLine produces the persona's first utterance for a new session.
func (g *Generator) OpeningLine(ctx context.Context, sc scenario.Scenario) (string, error) {
	resp, err := g.client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: sc.SystemPrompt(),
		UserPrompt:   sc.OpeningPrompt(),
	})
	if err != nil {
		return "", fmt.Errorf("opening line: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// NextReply continues the conversation in character. The stored history
// already ends with the salesperson's latest message; roles are passed
// through unchanged since the persona is the assistant side of the chat.
func (g *Generator) NextReply(ctx context.Context, sc scenario.Scenario, history []conversation.Message) (string, error) {
	msgs := make([]llm.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		msgs = append(msgs, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := g.client.Chat(ctx, sc.SystemPrompt(), msgs)
	if err != nil {
		return "", fmt.Errorf("persona reply: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

package conversation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/internal/metrics"
	"github.com/salescoach/backend/internal/scenario"
	"github.com/salescoach/backend/internal/transcript"
	"github.com/salescoach/backend/pkg/logger"
)

// PersonaGenerator produces the simulated customer's side of a practice
// conversation. Opaque to the evaluation path.
type PersonaGenerator interface {
	OpeningLine(ctx context.Context, sc scenario.Scenario) (string, error)
	NextReply(ctx context.Context, sc scenario.Scenario, history []Message) (string, error)
}

// Evaluator scores a finished conversation. Implemented by
// evaluation.Service.
type Evaluator interface {
	EvaluateConversation(ctx context.Context, conversationID, methodologyName string, msgs []transcript.Message) (*evaluation.Result, error)
}

// Archiver persists ended conversations for history. Write-behind; failures
// are logged, never surfaced.
type Archiver interface {
	SaveConversation(ctx context.Context, conv *Conversation) error
}

// Manager owns the conversation lifecycle: NotStarted -> Active -> Ended.
// It is the only component that mutates conversations; the evaluation
// engine consumes the message history and hands back an immutable result.
type Manager struct {
	store     *Store
	scenarios *scenario.Catalogue
	persona   PersonaGenerator
	evaluator Evaluator
	archive   Archiver // optional
}

func NewManager(scenarios *scenario.Catalogue, persona PersonaGenerator, evaluator Evaluator, archive Archiver) *Manager {
	return &Manager{
		store:     NewStore(),
		scenarios: scenarios,
		persona:   persona,
		evaluator: evaluator,
		archive:   archive,
	}
}

// Start creates an Active conversation whose first message is the persona's
// opening line. The conversation only becomes visible once that line
// exists, so the first message is always the assistant's.
func (m *Manager) Start(ctx context.Context, scenarioID string) (*Conversation, error) {
	sc, err := m.scenarios.Get(scenarioID)
	if err != nil {
		return nil, err
	}

	opening, err := m.persona.OpeningLine(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to generate opening line: %w", err)
	}

	conv := &Conversation{
		ID:         "conv-" + uuid.NewString(),
		ScenarioID: sc.ID,
		Status:     StatusActive,
		CreatedAt:  time.Now().UTC(),
	}
	e := m.store.add(conv)

	e.mu.Lock()
	m.appendLocked(e, "assistant", opening)
	snap := e.copyLocked()
	e.mu.Unlock()

	metrics.ActiveConversations.Inc()
	logger.Info("Conversation started",
		zap.String("conversation_id", conv.ID),
		zap.String("scenario_id", sc.ID),
	)

	return snap, nil
}

// PostMessage appends the salesperson's message, obtains the persona's
// reply and appends that too, returning the reply. The conversation mutex
// is held for the whole exchange: two concurrent posts on one conversation
// cannot interleave, so sequence indices stay strictly increasing.
func (m *Manager) PostMessage(ctx context.Context, conversationID, content string) (Message, error) {
	e, ok := m.store.get(conversationID)
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrNotFound, conversationID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conv.Status == StatusEnded {
		return Message{}, fmt.Errorf("%w: %s", ErrEnded, conversationID)
	}

	sc, err := m.scenarios.Get(e.conv.ScenarioID)
	if err != nil {
		return Message{}, err
	}

	m.appendLocked(e, "user", content)

	history := append([]Message(nil), e.conv.Messages...)
	reply, err := m.persona.NextReply(ctx, sc, history)
	if err != nil {
		// Roll back the user message so the alternation invariant holds on
		// retry. The consumed sequence index is not reused.
		e.conv.Messages = e.conv.Messages[:len(e.conv.Messages)-1]
		return Message{}, fmt.Errorf("failed to generate persona reply: %w", err)
	}

	assistantMsg := m.appendLocked(e, "assistant", reply)
	metrics.MessagesExchanged.Inc()

	logger.Debug("Message exchanged",
		zap.String("conversation_id", conversationID),
		zap.Int("seq", assistantMsg.Seq),
	)

	return assistantMsg, nil
}

// End transitions the conversation to Ended and returns its evaluation.
// Idempotent: the first caller computes and attaches the result while
// holding the conversation mutex; later or concurrent callers observe the
// stored result unchanged. If evaluation fails nothing is committed and
// the conversation stays Active.
func (m *Manager) End(ctx context.Context, conversationID string) (*evaluation.Result, error) {
	e, ok := m.store.get(conversationID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, conversationID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conv.Status == StatusEnded {
		return e.conv.Evaluation, nil
	}

	sc, err := m.scenarios.Get(e.conv.ScenarioID)
	if err != nil {
		return nil, err
	}

	result, err := m.evaluator.EvaluateConversation(ctx, e.conv.ID, sc.Methodology, e.conv.TranscriptMessages())
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate conversation: %w", err)
	}

	now := time.Now().UTC()
	e.conv.Status = StatusEnded
	e.conv.EndedAt = &now
	e.conv.Evaluation = result

	metrics.ActiveConversations.Dec()
	logger.Info("Conversation ended",
		zap.String("conversation_id", conversationID),
		zap.Float64("overall_score", result.OverallScore),
	)

	if m.archive != nil {
		if err := m.archive.SaveConversation(ctx, e.copyLocked()); err != nil {
			logger.Warn("Failed to archive conversation", zap.Error(err))
		}
	}

	return result, nil
}

// Get returns a point-in-time copy of the conversation.
func (m *Manager) Get(conversationID string) (*Conversation, error) {
	e, ok := m.store.get(conversationID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, conversationID)
	}
	return e.snapshot(), nil
}

// List returns copies of all conversations, newest first.
func (m *Manager) List() []*Conversation {
	entries := m.store.list()
	out := make([]*Conversation, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *Manager) appendLocked(e *entry, role, content string) Message {
	msg := Message{
		ID:             "msg-" + uuid.NewString(),
		ConversationID: e.conv.ID,
		Role:           role,
		Content:        content,
		Seq:            e.nextSeq,
		CreatedAt:      time.Now().UTC(),
	}
	e.nextSeq++
	e.conv.Messages = append(e.conv.Messages, msg)
	return msg
}

package conversation

import (
	"errors"
	"sync"
	"time"

	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/internal/transcript"
)

var (
	ErrNotFound = errors.New("conversation not found")
	ErrEnded    = errors.New("conversation has ended")
)

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Message is one stored turn of a practice conversation. Seq is assigned
// from a per-conversation monotonic counter and is never reused, even when
// a failed exchange is rolled back.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"` // assistant (persona), user (salesperson), system
	Content        string    `json:"content"`
	Seq            int       `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

// Conversation is a stateful practice session. Status only ever moves
// Active to Ended, once; the evaluation reference is attached exactly when
// that transition commits.
type Conversation struct {
	ID         string             `json:"id"`
	ScenarioID string             `json:"scenario_id"`
	Status     Status             `json:"status"`
	Messages   []Message          `json:"messages"`
	CreatedAt  time.Time          `json:"created_at"`
	EndedAt    *time.Time         `json:"ended_at,omitempty"`
	Evaluation *evaluation.Result `json:"evaluation,omitempty"`
}

// TranscriptMessages converts stored messages into the normalizer's input
// shape.
func (c *Conversation) TranscriptMessages() []transcript.Message {
	out := make([]transcript.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		out = append(out, transcript.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// Store holds all in-flight conversations. The outer lock only guards the
// map; each conversation carries its own mutex so writes to one session
// never block reads or writes on another.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	// mu serializes message appends and the end transition for this
	// conversation, preserving sequence-index monotonicity.
	mu      sync.Mutex
	conv    *Conversation
	nextSeq int
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

func (s *Store) add(conv *Conversation) *entry {
	e := &entry{conv: conv}
	s.mu.Lock()
	s.entries[conv.ID] = e
	s.mu.Unlock()
	return e
}

func (s *Store) get(id string) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	return e, ok
}

func (s *Store) list() []*entry {
	s.mu.RLock()
	out := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()
	return out
}

// snapshot copies the conversation under its lock so callers can read it
// without racing concurrent appends.
func (e *entry) snapshot() *Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyLocked()
}

func (e *entry) copyLocked() *Conversation {
	c := *e.conv
	c.Messages = append([]Message(nil), e.conv.Messages...)
	return &c
}

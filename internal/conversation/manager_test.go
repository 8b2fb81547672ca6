package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/internal/scenario"
	"github.com/salescoach/backend/internal/transcript"
)

type fakePersona struct {
	replyErr error
}

func (f *fakePersona) OpeningLine(ctx context.Context, sc scenario.Scenario) (string, error) {
	return "Hello, who is this?", nil
}

func (f *fakePersona) NextReply(ctx context.Context, sc scenario.Scenario, history []Message) (string, error) {
	if f.replyErr != nil {
		return "", f.replyErr
	}
	return fmt.Sprintf("Reply after %d messages.", len(history)), nil
}

type fakeEvaluator struct {
	calls int32
	err   error
}

func (f *fakeEvaluator) EvaluateConversation(ctx context.Context, conversationID, methodologyName string, msgs []transcript.Message) (*evaluation.Result, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &evaluation.Result{
		SourceID:     conversationID,
		Methodology:  methodologyName,
		Mode:         evaluation.ModeLive,
		OverallScore: 55,
	}, nil
}

func newTestManager(persona *fakePersona, evaluator *fakeEvaluator) *Manager {
	return NewManager(scenario.DefaultCatalogue(), persona, evaluator, nil)
}

func startConversation(t *testing.T, m *Manager) *Conversation {
	t.Helper()
	conv, err := m.Start(context.Background(), "cloud-migration")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return conv
}

func TestStartUnknownScenario(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	_, err := m.Start(context.Background(), "nope")
	if !errors.Is(err, scenario.ErrNotFound) {
		t.Errorf("got %v, want scenario.ErrNotFound", err)
	}
}

func TestStartOpensWithPersonaMessage(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	conv := startConversation(t, m)

	if conv.Status != StatusActive {
		t.Errorf("Status: got %q, want active", conv.Status)
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(conv.Messages))
	}
	first := conv.Messages[0]
	if first.Role != "assistant" {
		t.Errorf("first message role: got %q, want assistant", first.Role)
	}
	if first.Seq != 0 {
		t.Errorf("first message seq: got %d, want 0", first.Seq)
	}
}

func TestPostMessageAlternatesAndSequences(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	conv := startConversation(t, m)

	for i := 0; i < 3; i++ {
		reply, err := m.PostMessage(context.Background(), conv.ID, fmt.Sprintf("question %d", i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Role != "assistant" {
			t.Errorf("reply role: got %q", reply.Role)
		}
	}

	got, err := m.Get(conv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Messages) != 7 {
		t.Fatalf("got %d messages, want 7", len(got.Messages))
	}
	for i, msg := range got.Messages {
		if msg.Seq != i {
			t.Errorf("message %d: seq %d", i, msg.Seq)
		}
		wantRole := "assistant"
		if i%2 == 1 {
			wantRole = "user"
		}
		if msg.Role != wantRole {
			t.Errorf("message %d: role %q, want %q", i, msg.Role, wantRole)
		}
	}
}

func TestPostMessageUnknownConversation(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	_, err := m.PostMessage(context.Background(), "conv-missing", "hi")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestPostMessageAfterEnd(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	conv := startConversation(t, m)

	if _, err := m.PostMessage(context.Background(), conv.ID, "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.End(context.Background(), conv.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := m.PostMessage(context.Background(), conv.ID, "one more thing")
	if !errors.Is(err, ErrEnded) {
		t.Errorf("got %v, want ErrEnded", err)
	}
}

func TestPostMessageRollsBackOnPersonaFailure(t *testing.T) {
	persona := &fakePersona{}
	m := newTestManager(persona, &fakeEvaluator{})
	conv := startConversation(t, m)

	persona.replyErr = errors.New("model unavailable")
	if _, err := m.PostMessage(context.Background(), conv.ID, "hi"); err == nil {
		t.Fatal("expected error from persona failure")
	}

	got, _ := m.Get(conv.ID)
	if len(got.Messages) != 1 {
		t.Fatalf("rolled-back conversation has %d messages, want 1", len(got.Messages))
	}
	if got.Status != StatusActive {
		t.Errorf("Status after failed exchange: got %q, want active", got.Status)
	}

	// The failed exchange consumed a sequence index; the retry must not
	// reuse it.
	persona.replyErr = nil
	reply, err := m.PostMessage(context.Background(), conv.ID, "hi again")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Seq <= 1 {
		t.Errorf("reply seq %d should be past the consumed index", reply.Seq)
	}

	got, _ = m.Get(conv.ID)
	seen := make(map[int]bool)
	for _, msg := range got.Messages {
		if seen[msg.Seq] {
			t.Errorf("duplicate seq %d", msg.Seq)
		}
		seen[msg.Seq] = true
	}
}

func TestEndEvaluatesWithScenarioMethodology(t *testing.T) {
	evaluator := &fakeEvaluator{}
	m := newTestManager(&fakePersona{}, evaluator)
	conv := startConversation(t, m)

	if _, err := m.PostMessage(context.Background(), conv.ID, "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := m.End(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceID != conv.ID {
		t.Errorf("SourceID: got %q, want %q", result.SourceID, conv.ID)
	}
	if result.Methodology != "spin" {
		t.Errorf("Methodology: got %q, want the scenario's spin", result.Methodology)
	}

	got, _ := m.Get(conv.ID)
	if got.Status != StatusEnded {
		t.Errorf("Status: got %q, want ended", got.Status)
	}
	if got.EndedAt == nil {
		t.Error("EndedAt not set")
	}
	if got.Evaluation == nil {
		t.Error("Evaluation not attached")
	}
}

func TestEndIdempotent(t *testing.T) {
	evaluator := &fakeEvaluator{}
	m := newTestManager(&fakePersona{}, evaluator)
	conv := startConversation(t, m)

	first, err := m.End(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.End(context.Background(), conv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("second End returned a different result instance")
	}
	if n := atomic.LoadInt32(&evaluator.calls); n != 1 {
		t.Errorf("evaluator called %d times, want 1", n)
	}
}

func TestEndFailureLeavesConversationActive(t *testing.T) {
	evaluator := &fakeEvaluator{err: errors.New("oracle down")}
	m := newTestManager(&fakePersona{}, evaluator)
	conv := startConversation(t, m)

	if _, err := m.End(context.Background(), conv.ID); err == nil {
		t.Fatal("expected evaluation error")
	}

	got, _ := m.Get(conv.ID)
	if got.Status != StatusActive {
		t.Errorf("Status after failed End: got %q, want active", got.Status)
	}

	// Recovers once the evaluator does.
	evaluator.err = nil
	if _, err := m.End(context.Background(), conv.ID); err != nil {
		t.Errorf("End after recovery: %v", err)
	}
}

func TestConcurrentPostsKeepSequencesUnique(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	conv := startConversation(t, m)

	const posts = 10
	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := m.PostMessage(context.Background(), conv.ID, fmt.Sprintf("msg %d", i)); err != nil {
				t.Errorf("PostMessage: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := m.Get(conv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Messages) != 1+2*posts {
		t.Fatalf("got %d messages, want %d", len(got.Messages), 1+2*posts)
	}
	for i, msg := range got.Messages {
		if msg.Seq != i {
			t.Errorf("message %d: seq %d, want strictly increasing from 0", i, msg.Seq)
		}
	}
}

func TestConcurrentEndEvaluatesOnce(t *testing.T) {
	evaluator := &fakeEvaluator{}
	m := newTestManager(&fakePersona{}, evaluator)
	conv := startConversation(t, m)

	const enders = 5
	results := make([]*evaluation.Result, enders)
	var wg sync.WaitGroup
	for i := 0; i < enders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := m.End(context.Background(), conv.ID)
			if err != nil {
				t.Errorf("End: %v", err)
				return
			}
			results[i] = r
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&evaluator.calls); n != 1 {
		t.Errorf("evaluator called %d times, want 1", n)
	}
	for i := 1; i < enders; i++ {
		if results[i] != results[0] {
			t.Errorf("caller %d observed a different result instance", i)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	a := startConversation(t, m)
	b := startConversation(t, m)

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("got %d conversations, want 2", len(list))
	}
	ids := map[string]bool{list[0].ID: true, list[1].ID: true}
	if !ids[a.ID] || !ids[b.ID] {
		t.Errorf("List missing conversations: %v", ids)
	}
	if list[0].CreatedAt.Before(list[1].CreatedAt) {
		t.Error("List not sorted newest first")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	m := newTestManager(&fakePersona{}, &fakeEvaluator{})
	conv := startConversation(t, m)

	snap, _ := m.Get(conv.ID)
	snap.Messages[0].Content = "mutated"

	again, _ := m.Get(conv.ID)
	if again.Messages[0].Content == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}

package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/salescoach/backend/internal/llm"
	"github.com/salescoach/backend/internal/methodology"
	"github.com/salescoach/backend/internal/transcript"
)

// fakeOracle records every request and delegates the reply to a script
// function keyed by call count.
type fakeOracle struct {
	mu       sync.Mutex
	requests []llm.CompletionRequest
	reply    func(call int, req llm.CompletionRequest) (string, error)
}

func (f *fakeOracle) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	call := len(f.requests)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	content, err := f.reply(call, req)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: content}, nil
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func validReply(score float64) string {
	return fmt.Sprintf(`{"score": %g, "feedback": "Scored %g.", "evidence": []}`, score, score)
}

func sampleTranscript() transcript.Transcript {
	return transcript.Transcript{Utterances: []transcript.Utterance{
		{Role: transcript.RoleProspect, Text: "Hello, who is this? ZEBRA"},
		{Role: transcript.RoleSalesperson, Text: "Hi, this is Dana. How do you handle outages today?"},
		{Role: transcript.RoleProspect, Text: "Mostly by hand, it takes hours."},
	}}
}

func techniqueDim() methodology.Dimension {
	return methodology.Dimension{
		Key: "questioning", Name: "Questioning", MaxScore: 10, Weight: 1.0,
		Rubric: "Quality of discovery questions.", Scope: methodology.ScopeTechnique,
	}
}

func outcomeDim() methodology.Dimension {
	return methodology.Dimension{
		Key: "impact", Name: "Impact", MaxScore: 10, Weight: 1.0,
		Rubric: "Was business impact established.", Scope: methodology.ScopeOutcome,
	}
}

func TestScoreAllHappyPath(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		return validReply(8), nil
	}}
	scorer := NewScorer(oracle, 4, 2, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{techniqueDim(), outcomeDim()}}
	scores := scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[0].Dimension != "Questioning" || scores[1].Dimension != "Impact" {
		t.Errorf("scores out of definition order: %s, %s", scores[0].Dimension, scores[1].Dimension)
	}
	for _, sc := range scores {
		if sc.Err || sc.Score != 8 {
			t.Errorf("%s: got score=%v err=%v", sc.Dimension, sc.Score, sc.Err)
		}
	}
}

func TestTechniqueScopeExcludesProspectLines(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		return validReply(5), nil
	}}
	scorer := NewScorer(oracle, 1, 0, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{techniqueDim()}}
	scorer.ScoreAll(context.Background(), def, sampleTranscript())

	req := oracle.requests[0]
	if strings.Contains(req.UserPrompt, "ZEBRA") {
		t.Error("technique prompt contains prospect text")
	}
	if !strings.Contains(req.UserPrompt, "How do you handle outages today?") {
		t.Error("technique prompt missing salesperson text")
	}
}

func TestOutcomeScopeIncludesFullDialogue(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		return validReply(5), nil
	}}
	scorer := NewScorer(oracle, 1, 0, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{outcomeDim()}}
	scorer.ScoreAll(context.Background(), def, sampleTranscript())

	req := oracle.requests[0]
	if !strings.Contains(req.UserPrompt, "ZEBRA") {
		t.Error("outcome prompt missing prospect text")
	}
}

func TestScorerRetriesWithStricterInstruction(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		if call == 0 {
			return "I would give this an 11 out of 10!", nil
		}
		return validReply(7), nil
	}}
	scorer := NewScorer(oracle, 1, 2, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{outcomeDim()}}
	scores := scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if oracle.callCount() != 2 {
		t.Fatalf("got %d calls, want 2", oracle.callCount())
	}
	if !strings.Contains(oracle.requests[1].UserPrompt, "ONLY the raw JSON") {
		t.Error("retry prompt missing stricter format instruction")
	}
	if scores[0].Err || scores[0].Score != 7 {
		t.Errorf("got score=%v err=%v, want 7 from retry", scores[0].Score, scores[0].Err)
	}
}

func TestScorerDegradesAfterExhaustedRetries(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		return "not json at all", nil
	}}
	scorer := NewScorer(oracle, 1, 2, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{outcomeDim()}}
	scores := scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if oracle.callCount() != 3 {
		t.Errorf("got %d calls, want 3 (initial + 2 retries)", oracle.callCount())
	}
	if !scores[0].Err {
		t.Error("expected error-flagged score")
	}
	if scores[0].Score != 0 {
		t.Errorf("degraded score: got %v, want 0", scores[0].Score)
	}
	if scores[0].Feedback == "" {
		t.Error("degraded score should carry explanatory feedback")
	}
}

func TestScorerDegradesOnTransportError(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		return "", errors.New("connection refused")
	}}
	scorer := NewScorer(oracle, 1, 1, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{outcomeDim()}}
	scores := scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if !scores[0].Err {
		t.Error("expected error-flagged score after transport failures")
	}
}

func TestScorerOneFailureDoesNotAbortOthers(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		if strings.Contains(req.SystemPrompt, "Questioning") {
			return "garbage", nil
		}
		return validReply(9), nil
	}}
	scorer := NewScorer(oracle, 2, 0, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{techniqueDim(), outcomeDim()}}
	scores := scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if !scores[0].Err {
		t.Error("first dimension should have degraded")
	}
	if scores[1].Err || scores[1].Score != 9 {
		t.Errorf("second dimension should have scored: got score=%v err=%v", scores[1].Score, scores[1].Err)
	}
}

func TestScorerBoundsConcurrency(t *testing.T) {
	var inFlight, peak int32

	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return validReply(5), nil
	}}
	scorer := NewScorer(oracle, 2, 0, time.Second)

	var dims []methodology.Dimension
	for i := 0; i < 6; i++ {
		d := outcomeDim()
		d.Key = fmt.Sprintf("d%d", i)
		d.Name = fmt.Sprintf("Dim %d", i)
		d.Weight = 1.0 / 6
		dims = append(dims, d)
	}
	def := methodology.Definition{Name: "test", Dimensions: dims}

	scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", p)
	}
	if oracle.callCount() != 6 {
		t.Errorf("got %d calls, want 6", oracle.callCount())
	}
}

func TestScorerPromptCarriesStats(t *testing.T) {
	oracle := &fakeOracle{reply: func(call int, req llm.CompletionRequest) (string, error) {
		return validReply(5), nil
	}}
	scorer := NewScorer(oracle, 1, 0, time.Second)

	def := methodology.Definition{Name: "test", Dimensions: []methodology.Dimension{outcomeDim()}}
	scorer.ScoreAll(context.Background(), def, sampleTranscript())

	if !strings.Contains(oracle.requests[0].UserPrompt, "Measured dialogue statistics") {
		t.Error("prompt missing the measured statistics block")
	}
}

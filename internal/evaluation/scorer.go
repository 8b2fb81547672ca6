package evaluation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/llm"
	"github.com/salescoach/backend/internal/methodology"
	"github.com/salescoach/backend/internal/metrics"
	"github.com/salescoach/backend/internal/transcript"
	"github.com/salescoach/backend/pkg/logger"
)

// Oracle is the reasoning capability that turns a rubric and a transcript
// slice into a structured judgement. *llm.Client satisfies it.
type Oracle interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

const (
	defaultMaxConcurrent = 8
	defaultFormatRetries = 2
	defaultCallTimeout   = 30 * time.Second
)

// Scorer evaluates methodology dimensions against a canonical transcript,
// one oracle call per dimension, run concurrently under a bounded limit.
type Scorer struct {
	oracle        Oracle
	maxConcurrent int
	formatRetries int
	timeout       time.Duration
}

func NewScorer(oracle Oracle, maxConcurrent, formatRetries int, timeout time.Duration) *Scorer {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	if formatRetries < 0 {
		formatRetries = defaultFormatRetries
	}
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Scorer{
		oracle:        oracle,
		maxConcurrent: maxConcurrent,
		formatRetries: formatRetries,
		timeout:       timeout,
	}
}

// ScoreAll scores every dimension of the definition. Dimensions are
// independent and read-only over the transcript, so they run in parallel;
// results come back in definition order. A failed dimension degrades to an
// error-flagged zero score and never aborts the others.
func (s *Scorer) ScoreAll(ctx context.Context, def methodology.Definition, t transcript.Transcript) []DimensionScore {
	stats := t.ComputeStats()

	scores := make([]DimensionScore, len(def.Dimensions))
	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	for i, dim := range def.Dimensions {
		wg.Add(1)
		go func(i int, dim methodology.Dimension) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			scores[i] = s.scoreDimension(ctx, dim, t, stats)
		}(i, dim)
	}

	wg.Wait()
	return scores
}

func (s *Scorer) scoreDimension(ctx context.Context, dim methodology.Dimension, t transcript.Transcript, stats transcript.Stats) DimensionScore {
	// The scope filter is structural: technique dimensions never see the
	// prospect's lines at all, so the judge cannot credit the salesperson
	// for answers they did not produce.
	slice := t
	if dim.Scope == methodology.ScopeTechnique {
		slice = t.Only(transcript.RoleSalesperson)
	}

	systemPrompt := buildSystemPrompt(dim)
	userPrompt := buildUserPrompt(dim, slice, stats)

	attempts := 1 + s.formatRetries
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := s.oracle.Complete(callCtx, llm.CompletionRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   userPrompt,
			Temperature:  0.1,
			MaxTokens:    400,
		})
		cancel()

		if err != nil {
			metrics.OracleCalls.WithLabelValues("error").Inc()
			lastErr = err
			logger.Warn("Oracle call failed",
				zap.String("dimension", dim.Key),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}
		metrics.OracleCalls.WithLabelValues("ok").Inc()

		reply, err := parseOracleReply(resp.Content, dim.MaxScore)
		if err != nil {
			lastErr = err
			logger.Warn("Oracle reply rejected",
				zap.String("dimension", dim.Key),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			userPrompt = userPrompt + strictFormatSuffix(dim.MaxScore)
			continue
		}

		return DimensionScore{
			Dimension: dim.Name,
			Score:     *reply.Score,
			MaxScore:  dim.MaxScore,
			Feedback:  reply.Feedback,
			Evidence:  reply.Evidence,
		}
	}

	metrics.DimensionFailures.Inc()
	logger.Error("Dimension scoring degraded after retries",
		zap.String("dimension", dim.Key),
		zap.Error(lastErr),
	)

	return DimensionScore{
		Dimension: dim.Name,
		Score:     0,
		MaxScore:  dim.MaxScore,
		Feedback:  "Automatic scoring was unavailable for this dimension.",
		Err:       true,
	}
}

func buildSystemPrompt(dim methodology.Dimension) string {
	return fmt.Sprintf(`You are an expert sales trainer scoring a single dimension of a sales conversation.

Dimension: %s
Rubric: %s

Score strictly against the rubric on a 0-%.0f scale (0=absent, %.0f=exemplary). Be specific; cite short quotes from the transcript as evidence.`,
		dim.Name, dim.Rubric, dim.MaxScore, dim.MaxScore)
}

func buildUserPrompt(dim methodology.Dimension, slice transcript.Transcript, stats transcript.Stats) string {
	scopeInstruction := "Evaluate information present anywhere in the dialogue, crediting successful elicitation regardless of which party stated it."
	if dim.Scope == methodology.ScopeTechnique {
		scopeInstruction = "Evaluate only the salesperson's lines. The transcript below contains nothing else; do not assume or invent customer responses."
	}

	return fmt.Sprintf(`%s

%s

Transcript:
%s

Respond with ONLY a JSON object in this exact shape:
{"score": <number between 0 and %.0f>, "feedback": "<1-2 sentence assessment>", "evidence": ["<short supporting quote>"]}`,
		scopeInstruction, stats.Summary(), slice.Format(), dim.MaxScore)
}

func strictFormatSuffix(maxScore float64) string {
	return fmt.Sprintf("\n\nYour previous reply was not usable. Return ONLY the raw JSON object - no markdown fences, no commentary - with a numeric \"score\" between 0 and %.0f and a non-empty \"feedback\" string.", maxScore)
}

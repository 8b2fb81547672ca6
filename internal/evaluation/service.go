package evaluation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/methodology"
	"github.com/salescoach/backend/internal/metrics"
	"github.com/salescoach/backend/internal/transcript"
	"github.com/salescoach/backend/pkg/logger"
)

// ResultCache stores transcript-mode results by content identity so pasting
// the same dialogue twice does not pay for a second round of oracle calls.
// Implementations must treat entries as immutable.
type ResultCache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, result *Result) error
}

// Archiver persists finished results for history queries. Archival is
// write-behind: failures are logged, never surfaced to the caller.
type Archiver interface {
	SaveEvaluation(ctx context.Context, result *Result) error
}

// Service drives the scoring pipeline for both entry modes. Both paths
// reduce their input to the same canonical transcript before scoring,
// which is what guarantees mode-independent results.
type Service struct {
	registry *methodology.Registry
	scorer   *Scorer
	cache    ResultCache // optional
	archive  Archiver    // optional
}

func NewService(registry *methodology.Registry, scorer *Scorer, cache ResultCache, archive Archiver) *Service {
	return &Service{
		registry: registry,
		scorer:   scorer,
		cache:    cache,
		archive:  archive,
	}
}

// EvaluateTranscript scores a pasted free-text dialogue. Stateless: no
// conversation is created and the result's identity is the content hash.
func (s *Service) EvaluateTranscript(ctx context.Context, raw, methodologyName string) (*Result, error) {
	def, err := s.registry.Get(methodologyName)
	if err != nil {
		return nil, err
	}

	t, err := transcript.Parse(raw)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s:%s", def.Name, t.Hash())
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
			logger.Warn("Evaluation cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	result, err := s.run(ctx, def, t, ModeTranscript, t.Hash())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			logger.Warn("Evaluation cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

// EvaluateConversation scores a live conversation's message history. The
// session manager owns the conversation lifecycle; this only builds the
// result and never mutates conversation state.
func (s *Service) EvaluateConversation(ctx context.Context, conversationID, methodologyName string, msgs []transcript.Message) (*Result, error) {
	def, err := s.registry.Get(methodologyName)
	if err != nil {
		return nil, err
	}

	t := transcript.FromMessages(msgs)
	if t.Empty() {
		return nil, transcript.ErrMalformed
	}

	return s.run(ctx, def, t, ModeLive, conversationID)
}

func (s *Service) run(ctx context.Context, def methodology.Definition, t transcript.Transcript, mode Mode, sourceID string) (*Result, error) {
	start := time.Now()

	logger.Info("Starting evaluation",
		zap.String("methodology", def.Name),
		zap.String("mode", string(mode)),
		zap.String("source_id", sourceID),
		zap.Int("utterances", len(t.Utterances)),
	)

	scores := s.scorer.ScoreAll(ctx, def, t)

	// A cancelled request must not surface a partial result the caller
	// could mistake for a finished evaluation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := Aggregate(def, scores)
	result.SourceID = sourceID
	result.Mode = mode

	metrics.EvaluationDuration.WithLabelValues(def.Name, string(mode)).Observe(time.Since(start).Seconds())
	metrics.EvaluationScore.WithLabelValues(def.Name).Observe(result.OverallScore)

	if s.archive != nil {
		if err := s.archive.SaveEvaluation(ctx, &result); err != nil {
			logger.Warn("Failed to archive evaluation", zap.Error(err))
		}
	}

	logger.Info("Evaluation completed",
		zap.String("methodology", def.Name),
		zap.String("mode", string(mode)),
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("duration", time.Since(start)),
	)

	return &result, nil
}

package evaluation

import "time"

// Mode records which entry path produced a result. Both modes score the
// same canonical transcript form, so results are directly comparable.
type Mode string

const (
	ModeLive       Mode = "live"
	ModeTranscript Mode = "transcript"
)

// DimensionScore is the validated outcome of scoring one dimension. Err is
// set when the oracle could not produce a usable reply within the retry
// budget; such scores contribute zero to the aggregate but are never
// silently dropped.
type DimensionScore struct {
	Dimension string   `json:"dimension"`
	Score     float64  `json:"score"`
	MaxScore  float64  `json:"max_score"`
	Feedback  string   `json:"feedback"`
	Evidence  []string `json:"evidence,omitempty"`
	Err       bool     `json:"error"`
}

// Result is an immutable evaluation of one dialogue against one
// methodology. SourceID is the conversation id in live mode or the
// transcript content hash in transcript mode.
type Result struct {
	SourceID     string           `json:"source_id"`
	Methodology  string           `json:"methodology"`
	Mode         Mode             `json:"mode"`
	OverallScore float64          `json:"overall_score"`
	Dimensions   []DimensionScore `json:"dimensions"`
	Summary      string           `json:"summary"`
	Strengths    []string         `json:"strengths"`
	Improvements []string         `json:"improvements"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

package evaluation

import (
	"fmt"
	"math"
	"time"

	"github.com/salescoach/backend/internal/methodology"
)

// Strength/improvement cut-offs as fractions of a dimension's maximum, and
// the 0-100 tier boundaries used in summaries. Calibrated against labeled
// example transcripts; not load-bearing for correctness.
const (
	strengthThreshold    = 0.8
	improvementThreshold = 0.4
)

// Aggregate combines per-dimension scores into a normalized result. The
// overall score is the weight-normalized sum projected onto a 0-100 scale,
// which makes results comparable across methodologies with different
// dimension counts and across live/transcript modes.
//
// scores must be in definition order, one per dimension; error-flagged
// entries contribute zero to the aggregate but are excluded from the
// strength/improvement lists.
func Aggregate(def methodology.Definition, scores []DimensionScore) Result {
	var weighted float64
	var strengths, improvements []string

	lowestIdx := -1
	for i, sc := range scores {
		dim := def.Dimensions[i]
		weighted += sc.Score / dim.MaxScore * dim.Weight

		if sc.Err {
			continue
		}

		frac := sc.Score / dim.MaxScore
		if frac >= strengthThreshold {
			strengths = append(strengths, sc.Feedback)
		}
		if frac <= improvementThreshold {
			improvements = append(improvements, sc.Feedback)
		}
		if lowestIdx < 0 || frac < scores[lowestIdx].Score/def.Dimensions[lowestIdx].MaxScore {
			lowestIdx = i
		}
	}

	overall := math.Round(weighted*100*10) / 10

	return Result{
		Methodology:  def.Name,
		OverallScore: overall,
		Dimensions:   scores,
		Summary:      buildSummary(overall, scores, lowestIdx),
		Strengths:    strengths,
		Improvements: improvements,
		GeneratedAt:  time.Now().UTC(),
	}
}

func buildSummary(overall float64, scores []DimensionScore, lowestIdx int) string {
	var tier string
	switch {
	case overall < 30:
		tier = "Poor"
	case overall < 60:
		tier = "Developing"
	case overall <= 80:
		tier = "Solid"
	default:
		tier = "Excellent"
	}

	if lowestIdx < 0 {
		return fmt.Sprintf("%s performance overall (%.1f/100); automatic scoring was unavailable for every dimension.", tier, overall)
	}

	return fmt.Sprintf("%s performance overall (%.1f/100). Top coaching priority: %s.",
		tier, overall, scores[lowestIdx].Dimension)
}

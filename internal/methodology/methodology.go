package methodology

// Scope controls which part of the dialogue a dimension is scored from.
//
// Technique dimensions judge how the salesperson worked (question quality,
// sequencing) and must only ever see the salesperson's own lines. Outcome
// dimensions judge what the conversation produced (pain quantified, metrics
// surfaced) and are scored from the full dialogue, since information the
// prospect volunteered still counts as elicited.
type Scope string

const (
	ScopeTechnique Scope = "technique"
	ScopeOutcome   Scope = "outcome"
)

// Dimension is one scored axis of a methodology.
type Dimension struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
	Rubric   string  `json:"rubric"`
	Scope    Scope   `json:"scope"`
}

// Definition is a named scoring framework with an ordered dimension list.
// Weights are fractions and must sum to 1.0.
type Definition struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Description string      `json:"description"`
	Dimensions  []Dimension `json:"dimensions"`
}

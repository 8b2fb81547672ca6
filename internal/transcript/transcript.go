package transcript

import (
	"strings"

	"github.com/salescoach/backend/pkg/utils"
)

// Role of a speaker in the canonical transcript.
type Role string

const (
	RoleSalesperson Role = "salesperson"
	RoleProspect    Role = "prospect"
)

// Utterance is one turn of the canonical, role-tagged dialogue.
type Utterance struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is the canonical utterance sequence consumed by the scoring
// pipeline. Both the live conversation path and the pasted-text path
// normalize into this one form, which is what keeps the two evaluation
// modes consistent with each other.
type Transcript struct {
	Utterances []Utterance `json:"utterances"`
}

// Only returns a copy containing just the given role's utterances,
// preserving order. Used to slice technique-scope input.
func (t Transcript) Only(role Role) Transcript {
	var out Transcript
	for _, u := range t.Utterances {
		if u.Role == role {
			out.Utterances = append(out.Utterances, u)
		}
	}
	return out
}

// Format renders the transcript the way scoring prompts expect it:
// display speaker label, colon, text, blank line between turns.
func (t Transcript) Format() string {
	lines := make([]string, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		lines = append(lines, displayLabel(u.Role)+": "+u.Text)
	}
	return strings.Join(lines, "\n\n")
}

// Hash is a stable content identity for the transcript, independent of
// how it entered the system.
func (t Transcript) Hash() string {
	return utils.HashString(t.Format())
}

func (t Transcript) Empty() bool {
	return len(t.Utterances) == 0
}

func displayLabel(role Role) string {
	if role == RoleSalesperson {
		return "Salesperson"
	}
	return "Customer"
}

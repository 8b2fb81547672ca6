package transcript

import (
	"errors"
	"strings"
)

// ErrMalformed is returned when a pasted transcript cannot be attributed
// to both required speakers. A dialogue with only one side cannot be scored.
var ErrMalformed = errors.New("transcript must contain lines from both the salesperson and the prospect")

// Message is the minimal shape of a stored conversation message the live
// path normalizes from. Roles follow chat-completion convention: "user" is
// the trainee (salesperson), "assistant" is the simulated customer.
type Message struct {
	Role    string
	Content string
}

// Speaker label vocabularies recognized in pasted transcripts. Matching is
// case-insensitive on the text before the first colon of a line.
var (
	salespersonLabels = map[string]bool{
		"salesperson": true,
		"sales":       true,
		"seller":      true,
		"rep":         true,
		"ae":          true,
		"me":          true,
	}
	prospectLabels = map[string]bool{
		"prospect": true,
		"customer": true,
		"client":   true,
		"buyer":    true,
		"lead":     true,
	}
)

// FromMessages normalizes a live conversation's message history. System
// messages are annotations, not dialogue, and are dropped; everything else
// keeps its stored order.
func FromMessages(msgs []Message) Transcript {
	var t Transcript
	for _, m := range msgs {
		var role Role
		switch m.Role {
		case "user":
			role = RoleSalesperson
		case "assistant":
			role = RoleProspect
		default:
			continue
		}
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		t.Utterances = append(t.Utterances, Utterance{Role: role, Text: text})
	}
	return t
}

// Parse normalizes a pasted free-text transcript. Each line either starts a
// new utterance with a recognized "Label:" prefix or continues the previous
// one. Unattributable leading text is skipped.
func Parse(raw string) (Transcript, error) {
	var t Transcript

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if role, text, ok := splitLabeled(line); ok {
			// A bare label ("Rep:") still starts the turn; its text arrives
			// on the following continuation lines.
			t.Utterances = append(t.Utterances, Utterance{Role: role, Text: text})
			continue
		}

		// Continuation of the previous speaker's turn.
		if n := len(t.Utterances); n > 0 {
			if t.Utterances[n-1].Text == "" {
				t.Utterances[n-1].Text = line
			} else {
				t.Utterances[n-1].Text += " " + line
			}
		}
	}

	// Labels that never received text carry no dialogue.
	kept := t.Utterances[:0]
	for _, u := range t.Utterances {
		if u.Text != "" {
			kept = append(kept, u)
		}
	}
	t.Utterances = kept

	if t.Only(RoleSalesperson).Empty() || t.Only(RoleProspect).Empty() {
		return Transcript{}, ErrMalformed
	}

	return t, nil
}

func splitLabeled(line string) (Role, string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}

	label := strings.ToLower(strings.TrimSpace(line[:idx]))
	label = strings.Trim(label, "[]()*-")

	// Pasted transcripts often carry the speaker's name: "Rep (Anna):".
	if open := strings.Index(label, "("); open > 0 {
		label = strings.TrimSpace(label[:open])
	}

	text := strings.TrimSpace(line[idx+1:])

	switch {
	case salespersonLabels[label]:
		return RoleSalesperson, text, true
	case prospectLabels[label]:
		return RoleProspect, text, true
	default:
		return "", "", false
	}
}

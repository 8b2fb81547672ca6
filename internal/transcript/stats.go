package transcript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// Stats are deterministic dialogue measurements computed from the canonical
// transcript. They accompany the transcript into scoring prompts so the
// judge works from counted facts rather than estimating them, and they are
// identical across live and transcript mode by construction.
type Stats struct {
	SalespersonWords     int     `json:"salesperson_words"`
	ProspectWords        int     `json:"prospect_words"`
	SalespersonQuestions int     `json:"salesperson_questions"`
	OpenQuestions        int     `json:"open_questions"`
	ProspectTalkRatio    float64 `json:"prospect_talk_ratio"`
}

var openQuestionStarters = []string{
	"what", "how", "why", "tell me", "walk me", "describe", "help me understand",
}

// ComputeStats tokenizes every utterance and aggregates word counts,
// question counts and the prospect's share of speech.
func (t Transcript) ComputeStats() Stats {
	var s Stats

	for _, u := range t.Utterances {
		words := countWords(u.Text)
		if u.Role == RoleSalesperson {
			s.SalespersonWords += words
			qs, open := countQuestions(u.Text)
			s.SalespersonQuestions += qs
			s.OpenQuestions += open
		} else {
			s.ProspectWords += words
		}
	}

	total := s.SalespersonWords + s.ProspectWords
	if total > 0 {
		s.ProspectTalkRatio = float64(s.ProspectWords) / float64(total)
	}

	return s
}

// Summary renders the stats as a short block for inclusion in a scoring
// prompt.
func (s Stats) Summary() string {
	return fmt.Sprintf(
		"Measured dialogue statistics: salesperson spoke %d words and asked %d questions (%d open-ended); "+
			"customer spoke %d words; customer talk share %.0f%%.",
		s.SalespersonWords, s.SalespersonQuestions, s.OpenQuestions,
		s.ProspectWords, s.ProspectTalkRatio*100,
	)
}

func countWords(text string) int {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return len(strings.Fields(text))
	}

	n := 0
	for _, tok := range doc.Tokens() {
		if hasLetterOrDigit(tok.Text) {
			n++
		}
	}
	return n
}

// countQuestions returns the number of question sentences in the text and
// how many of them are open-ended.
func countQuestions(text string) (questions, open int) {
	for _, sentence := range sentences(text) {
		if !strings.HasSuffix(sentence, "?") {
			continue
		}
		questions++

		lower := strings.ToLower(sentence)
		for _, starter := range openQuestionStarters {
			if strings.HasPrefix(lower, starter) {
				open++
				break
			}
		}
	}
	return questions, open
}

func sentences(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false), prose.WithTagging(false))
	if err != nil {
		return []string{strings.TrimSpace(text)}
	}

	out := make([]string, 0, len(doc.Sentences()))
	for _, s := range doc.Sentences() {
		out = append(out, strings.TrimSpace(s.Text))
	}
	return out
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

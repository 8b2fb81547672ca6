package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("scenario not found")

// Persona is the simulated customer the trainee practices against.
type Persona struct {
	Name               string `json:"name"`
	Role               string `json:"role"`
	Company            string `json:"company"`
	Industry           string `json:"industry"`
	Personality        string `json:"personality"`
	CommunicationStyle string `json:"communication_style"`
}

// Context carries the situation the persona plays from, including the
// monetization figures it only reveals under good implication questioning.
type Context struct {
	Situation        string            `json:"situation"`
	PainPoints       []string          `json:"pain_points"`
	Objections       []string          `json:"objections"`
	DesiredOutcome   string            `json:"desired_outcome"`
	CallType         string            `json:"call_type"` // inbound or outbound
	MonetizationData map[string]string `json:"-"`
}

type Scenario struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Difficulty  string  `json:"difficulty"` // beginner, intermediate, advanced
	Methodology string  `json:"methodology"`
	Persona     Persona `json:"persona"`
	Context     Context `json:"context"`
}

// Catalogue is the read-only set of practice scenarios.
type Catalogue struct {
	order     []string
	scenarios map[string]Scenario
}

func NewCatalogue(scenarios ...Scenario) *Catalogue {
	c := &Catalogue{scenarios: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		c.scenarios[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c
}

func (c *Catalogue) List() []Scenario {
	out := make([]Scenario, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.scenarios[id])
	}
	return out
}

func (c *Catalogue) Get(id string) (Scenario, error) {
	s, ok := c.scenarios[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// SystemPrompt instructs the model to play the customer role for this
// scenario, pacing pain revelation to the quality of the questioning.
func (s Scenario) SystemPrompt() string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are playing the role of %s, %s at %s (%s industry).\n",
		s.Persona.Name, s.Persona.Role, s.Persona.Company, s.Persona.Industry)
	fmt.Fprintf(&b, "Personality: %s\n", s.Persona.Personality)
	fmt.Fprintf(&b, "Communication style: %s\n\n", s.Persona.CommunicationStyle)

	fmt.Fprintf(&b, "SITUATION:\n%s\n\n", s.Context.Situation)

	b.WriteString("PAIN POINTS (reveal gradually, only in response to good open questions, never all at once):\n")
	for _, p := range s.Context.PainPoints {
		fmt.Fprintf(&b, "- %s\n", p)
	}

	b.WriteString("\nOBJECTIONS you raise when the salesperson pitches prematurely or pressures you:\n")
	for _, o := range s.Context.Objections {
		fmt.Fprintf(&b, "- %s\n", o)
	}

	if len(s.Context.MonetizationData) > 0 {
		b.WriteString("\nMONETIZATION DATA (share a figure ONLY when asked specifically about costs, time or impact):\n")
		for _, v := range sortedValues(s.Context.MonetizationData) {
			fmt.Fprintf(&b, "- %s\n", v)
		}
	}

	if s.Context.CallType == "outbound" {
		b.WriteString("\nThis is a cold call you did not ask for. Be initially resistant; give the salesperson a chance only if they acknowledge the interruption gracefully instead of pitching.\n")
	} else {
		b.WriteString("\nYou showed interest first (inbound). You are curious but guarded; a disarming, low-pressure opener makes you more open, an enthusiastic feature pitch makes you skeptical.\n")
	}

	b.WriteString("\nStay in character. Answer as this person would, in 1-4 sentences. Never evaluate or coach the salesperson.")

	return b.String()
}

// OpeningPrompt asks the persona to produce the first line of the call.
func (s Scenario) OpeningPrompt() string {
	if s.Context.CallType == "outbound" {
		return "The salesperson is about to cold-call you. Produce your opening line when you pick up the phone: brief, slightly guarded, in character."
	}
	return "You are joining a call you requested with a potential vendor. Produce your opening line: greet them briefly and hint at why you reached out, without volunteering your problems."
}

func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable output keeps the system prompt deterministic per scenario.
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

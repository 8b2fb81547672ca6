package transcript

import (
	"errors"
	"testing"
)

func TestParseLabeledLines(t *testing.T) {
	raw := "Salesperson: Hi, thanks for taking the call.\nCustomer: Sure, what is this about?"

	tr, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Utterances) != 2 {
		t.Fatalf("got %d utterances, want 2", len(tr.Utterances))
	}
	if tr.Utterances[0].Role != RoleSalesperson {
		t.Errorf("first role: got %q", tr.Utterances[0].Role)
	}
	if tr.Utterances[1].Role != RoleProspect {
		t.Errorf("second role: got %q", tr.Utterances[1].Role)
	}
	if tr.Utterances[1].Text != "Sure, what is this about?" {
		t.Errorf("second text: got %q", tr.Utterances[1].Text)
	}
}

func TestParseLabelVariants(t *testing.T) {
	raw := "REP: Hello there.\nbuyer: Hi.\nMe: How are things going?\nClient: Fine, thanks."

	tr, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Role{RoleSalesperson, RoleProspect, RoleSalesperson, RoleProspect}
	if len(tr.Utterances) != len(want) {
		t.Fatalf("got %d utterances, want %d", len(tr.Utterances), len(want))
	}
	for i, role := range want {
		if tr.Utterances[i].Role != role {
			t.Errorf("utterance %d: got %q, want %q", i, tr.Utterances[i].Role, role)
		}
	}
}

func TestParseNamedLabel(t *testing.T) {
	raw := "Rep (Anna): Good morning.\nProspect (Tom): Morning."

	tr, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Utterances[0].Role != RoleSalesperson || tr.Utterances[1].Role != RoleProspect {
		t.Errorf("roles: got %q / %q", tr.Utterances[0].Role, tr.Utterances[1].Role)
	}
}

func TestParseContinuationLines(t *testing.T) {
	raw := "Salesperson: We looked at your setup\nand found three gaps.\nCustomer: Go on."

	tr, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Utterances) != 2 {
		t.Fatalf("got %d utterances, want 2", len(tr.Utterances))
	}
	if tr.Utterances[0].Text != "We looked at your setup and found three gaps." {
		t.Errorf("continuation not merged: %q", tr.Utterances[0].Text)
	}
}

func TestParseBareLabelOwnsItsContinuation(t *testing.T) {
	raw := "Customer: We keep missing deadlines.\nRep:\nWhat does a missed deadline cost you?"

	tr, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Utterances) != 2 {
		t.Fatalf("got %d utterances, want 2", len(tr.Utterances))
	}
	if tr.Utterances[0].Text != "We keep missing deadlines." {
		t.Errorf("prospect turn absorbed the salesperson's text: %q", tr.Utterances[0].Text)
	}
	if tr.Utterances[1].Role != RoleSalesperson {
		t.Errorf("second role: got %q, want salesperson", tr.Utterances[1].Role)
	}
	if tr.Utterances[1].Text != "What does a missed deadline cost you?" {
		t.Errorf("second text: got %q", tr.Utterances[1].Text)
	}
}

func TestParseDropsTextlessLabels(t *testing.T) {
	raw := "Salesperson: Hi.\nCustomer: Hello.\nSalesperson:"

	tr, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Utterances) != 2 {
		t.Errorf("got %d utterances, want 2 (trailing bare label dropped)", len(tr.Utterances))
	}
}

func TestParseSingleSpeakerIsMalformed(t *testing.T) {
	for _, raw := range []string{
		"Salesperson: Hello.\nSalesperson: Anyone there?",
		"Customer: Hello?",
		"",
		"just some text\nwithout any labels",
	} {
		if _, err := Parse(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q): got %v, want ErrMalformed", raw, err)
		}
	}
}

func TestFromMessagesMapsRolesAndDropsSystem(t *testing.T) {
	msgs := []Message{
		{Role: "system", Content: "You are a skeptical CFO."},
		{Role: "assistant", Content: "Hello, who is this?"},
		{Role: "user", Content: "Hi, this is Dana from Northwind."},
		{Role: "assistant", Content: "What do you want?"},
	}

	tr := FromMessages(msgs)
	if len(tr.Utterances) != 3 {
		t.Fatalf("got %d utterances, want 3", len(tr.Utterances))
	}
	if tr.Utterances[0].Role != RoleProspect {
		t.Errorf("first role: got %q, want prospect", tr.Utterances[0].Role)
	}
	if tr.Utterances[1].Role != RoleSalesperson {
		t.Errorf("second role: got %q, want salesperson", tr.Utterances[1].Role)
	}
}

func TestFromMessagesSkipsBlankContent(t *testing.T) {
	tr := FromMessages([]Message{
		{Role: "user", Content: "   "},
		{Role: "assistant", Content: "Hello."},
	})
	if len(tr.Utterances) != 1 {
		t.Fatalf("got %d utterances, want 1", len(tr.Utterances))
	}
}

// The same dialogue entering through either path must produce the same
// canonical form, so cached and archived results agree across modes.
func TestCrossModeCanonicalIdentity(t *testing.T) {
	msgs := []Message{
		{Role: "assistant", Content: "Hello, who is this?"},
		{Role: "user", Content: "Hi, this is Dana from Northwind."},
	}
	raw := "Customer: Hello, who is this?\nSalesperson: Hi, this is Dana from Northwind."

	fromLive := FromMessages(msgs)
	fromText, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fromLive.Format() != fromText.Format() {
		t.Errorf("formats differ:\n%q\n%q", fromLive.Format(), fromText.Format())
	}
	if fromLive.Hash() != fromText.Hash() {
		t.Errorf("hashes differ: %s vs %s", fromLive.Hash(), fromText.Hash())
	}
}

func TestOnlyFiltersRole(t *testing.T) {
	tr := Transcript{Utterances: []Utterance{
		{Role: RoleProspect, Text: "a"},
		{Role: RoleSalesperson, Text: "b"},
		{Role: RoleProspect, Text: "c"},
	}}

	sales := tr.Only(RoleSalesperson)
	if len(sales.Utterances) != 1 || sales.Utterances[0].Text != "b" {
		t.Errorf("Only(salesperson): got %+v", sales.Utterances)
	}

	prospect := tr.Only(RoleProspect)
	if len(prospect.Utterances) != 2 {
		t.Errorf("Only(prospect): got %d utterances, want 2", len(prospect.Utterances))
	}
}

func TestFormatLabels(t *testing.T) {
	tr := Transcript{Utterances: []Utterance{
		{Role: RoleSalesperson, Text: "Hi."},
		{Role: RoleProspect, Text: "Hello."},
	}}
	want := "Salesperson: Hi.\n\nCustomer: Hello."
	if got := tr.Format(); got != want {
		t.Errorf("Format(): got %q, want %q", got, want)
	}
}

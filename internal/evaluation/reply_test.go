package evaluation

import "testing"

func TestParseOracleReplyPlain(t *testing.T) {
	reply, err := parseOracleReply(`{"score": 7.5, "feedback": "Solid discovery.", "evidence": ["What happens when..."]}`, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *reply.Score != 7.5 {
		t.Errorf("Score: got %v, want 7.5", *reply.Score)
	}
	if reply.Feedback != "Solid discovery." {
		t.Errorf("Feedback: got %q", reply.Feedback)
	}
	if len(reply.Evidence) != 1 {
		t.Errorf("Evidence: got %v", reply.Evidence)
	}
}

func TestParseOracleReplyFenced(t *testing.T) {
	content := "```json\n{\"score\": 6, \"feedback\": \"Decent.\"}\n```"
	reply, err := parseOracleReply(content, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *reply.Score != 6 {
		t.Errorf("Score: got %v, want 6", *reply.Score)
	}
}

func TestParseOracleReplySurroundingProse(t *testing.T) {
	content := `Here is my assessment:

{"score": 4, "feedback": "Pitched too early."}

Hope that helps!`
	reply, err := parseOracleReply(content, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *reply.Score != 4 {
		t.Errorf("Score: got %v, want 4", *reply.Score)
	}
}

func TestParseOracleReplyRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no JSON", "I would rate this conversation a seven out of ten."},
		{"missing score", `{"feedback": "Good."}`},
		{"score above max", `{"score": 11, "feedback": "Good."}`},
		{"negative score", `{"score": -1, "feedback": "Good."}`},
		{"empty feedback", `{"score": 5, "feedback": "  "}`},
		{"non-numeric score", `{"score": "seven", "feedback": "Good."}`},
	}

	for _, tc := range cases {
		if _, err := parseOracleReply(tc.content, 10); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

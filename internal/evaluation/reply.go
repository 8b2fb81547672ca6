package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// oracleReply is the structured payload the scoring prompt demands.
type oracleReply struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
	Evidence []string `json:"evidence"`
}

// parseOracleReply validates a raw completion into a usable reply. Models
// routinely wrap JSON in markdown fences or preamble text, so the payload
// is located before strict decoding. Out-of-range or missing fields are
// treated exactly like unparsable output: the caller retries with a
// stricter instruction.
func parseOracleReply(content string, maxScore float64) (oracleReply, error) {
	payload := extractJSON(content)
	if payload == "" {
		return oracleReply{}, fmt.Errorf("no JSON object found in oracle reply")
	}

	var reply oracleReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		return oracleReply{}, fmt.Errorf("failed to decode oracle reply: %w", err)
	}

	if reply.Score == nil {
		return oracleReply{}, fmt.Errorf("oracle reply missing score field")
	}
	if *reply.Score < 0 || *reply.Score > maxScore {
		return oracleReply{}, fmt.Errorf("oracle score %.2f outside [0, %.0f]", *reply.Score, maxScore)
	}
	if strings.TrimSpace(reply.Feedback) == "" {
		return oracleReply{}, fmt.Errorf("oracle reply missing feedback field")
	}

	return reply, nil
}

// extractJSON strips markdown code fences and any surrounding prose,
// returning the outermost {...} object.
func extractJSON(content string) string {
	cleaned := strings.TrimSpace(content)

	if strings.HasPrefix(cleaned, "```") {
		parts := strings.SplitN(cleaned, "```", 3)
		if len(parts) >= 2 {
			cleaned = parts[1]
			cleaned = strings.TrimPrefix(cleaned, "json")
		}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return ""
	}

	return cleaned[start : end+1]
}

package models

import "time"

// Row shapes for the archival database. The in-memory store is
// authoritative for live sessions; these records exist for history queries
// and post-hoc analysis.

type ConversationRecord struct {
	ID         string     `json:"id"`
	ScenarioID string     `json:"scenario_id"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

type MessageRecord struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Seq            int       `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

// EvaluationRecord flattens an evaluation result; the per-dimension scores
// and the strength/improvement lists are stored as JSON columns.
type EvaluationRecord struct {
	ID           int       `json:"id"`
	SourceID     string    `json:"source_id"`
	Methodology  string    `json:"methodology"`
	Mode         string    `json:"mode"`
	OverallScore float64   `json:"overall_score"`
	Summary      string    `json:"summary"`
	Dimensions   string    `json:"dimensions"`
	Strengths    string    `json:"strengths"`
	Improvements string    `json:"improvements"`
	CreatedAt    time.Time `json:"created_at"`
}

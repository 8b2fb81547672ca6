package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/conversation"
	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/internal/storage/models"
	"github.com/salescoach/backend/pkg/logger"
)

// ErrNotArchived is returned when a requested conversation has no archived
// rows.
var ErrNotArchived = errors.New("conversation not archived")

// Client is the archival store for ended conversations and evaluation
// results. It implements conversation.Archiver and evaluation.Archiver.
type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		scenario_id TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		ended_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_scenario ON conversations(scenario_id);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		seq INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, seq);

	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id TEXT NOT NULL,
		methodology TEXT NOT NULL,
		mode TEXT NOT NULL,
		overall_score REAL NOT NULL,
		summary TEXT,
		dimensions TEXT,
		strengths TEXT,
		improvements TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_evaluations_source ON evaluations(source_id);
	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// SaveConversation archives an ended conversation and its messages in one
// transaction. Re-archiving the same id replaces the previous rows.
func (c *Client) SaveConversation(ctx context.Context, conv *conversation.Conversation) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var endedAt interface{}
	if conv.EndedAt != nil {
		endedAt = conv.EndedAt.Unix()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO conversations (id, scenario_id, status, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?)`,
		conv.ID, conv.ScenarioID, string(conv.Status), conv.CreatedAt.Unix(), endedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	for _, msg := range conv.Messages {
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO messages (id, conversation_id, role, content, seq, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Seq, msg.CreatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Debug("Conversation archived",
		zap.String("conversation_id", conv.ID),
		zap.Int("messages", len(conv.Messages)),
	)
	return nil
}

// SaveEvaluation archives one evaluation result.
func (c *Client) SaveEvaluation(ctx context.Context, result *evaluation.Result) error {
	dims, err := json.Marshal(result.Dimensions)
	if err != nil {
		return fmt.Errorf("failed to marshal dimensions: %w", err)
	}
	strengths, err := json.Marshal(result.Strengths)
	if err != nil {
		return fmt.Errorf("failed to marshal strengths: %w", err)
	}
	improvements, err := json.Marshal(result.Improvements)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO evaluations (source_id, methodology, mode, overall_score, summary, dimensions, strengths, improvements, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.SourceID, result.Methodology, string(result.Mode), result.OverallScore,
		result.Summary, string(dims), string(strengths), string(improvements),
		result.GeneratedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}

	return nil
}

// GetConversation loads one archived conversation and its messages in seq
// order.
func (c *Client) GetConversation(ctx context.Context, id string) (*models.ConversationRecord, []models.MessageRecord, error) {
	var rec models.ConversationRecord
	var startedAt int64
	var endedAt sql.NullInt64

	err := c.db.QueryRowContext(ctx,
		`SELECT id, scenario_id, status, started_at, ended_at FROM conversations WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.ScenarioID, &rec.Status, &startedAt, &endedAt)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotArchived, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query conversation: %w", err)
	}

	rec.StartedAt = time.Unix(startedAt, 0).UTC()
	if endedAt.Valid {
		t := time.Unix(endedAt.Int64, 0).UTC()
		rec.EndedAt = &t
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, conversation_id, role, content, seq, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.MessageRecord
	for rows.Next() {
		var m models.MessageRecord
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Seq, &createdAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0).UTC()
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return &rec, msgs, nil
}

// ListConversations returns the most recently archived conversations.
func (c *Client) ListConversations(ctx context.Context, limit int) ([]models.ConversationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, scenario_id, status, started_at, ended_at
		 FROM conversations ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var records []models.ConversationRecord
	for rows.Next() {
		var rec models.ConversationRecord
		var startedAt int64
		var endedAt sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.ScenarioID, &rec.Status, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0).UTC()
		if endedAt.Valid {
			t := time.Unix(endedAt.Int64, 0).UTC()
			rec.EndedAt = &t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListEvaluations returns the most recent archived evaluations.
func (c *Client) ListEvaluations(ctx context.Context, limit int) ([]models.EvaluationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT id, source_id, methodology, mode, overall_score, summary, dimensions, strengths, improvements, created_at
		 FROM evaluations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	return scanEvaluations(rows)
}

// EvaluationsBySource returns archived evaluations for one conversation id
// or transcript hash.
func (c *Client) EvaluationsBySource(ctx context.Context, sourceID string) ([]models.EvaluationRecord, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, source_id, methodology, mode, overall_score, summary, dimensions, strengths, improvements, created_at
		 FROM evaluations WHERE source_id = ? ORDER BY created_at DESC`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	return scanEvaluations(rows)
}

func scanEvaluations(rows *sql.Rows) ([]models.EvaluationRecord, error) {
	var records []models.EvaluationRecord
	for rows.Next() {
		var rec models.EvaluationRecord
		var createdAt int64
		err := rows.Scan(&rec.ID, &rec.SourceID, &rec.Methodology, &rec.Mode, &rec.OverallScore,
			&rec.Summary, &rec.Dimensions, &rec.Strengths, &rec.Improvements, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/espbot/pkg/models"
)

// SessionRecord is one completed practice session as stored in quiz_sessions
type SessionRecord struct {
	ID             int64     `db:"id"`
	Mode           string    `db:"mode"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	ElapsedSeconds int       `db:"elapsed_seconds"`
	CorrectIDs     string    `db:"correct_ids"`   // JSON array of card ids
	IncorrectIDs   string    `db:"incorrect_ids"` // JSON array of card ids
	CreatedAt      time.Time `db:"created_at"`
}

// CorrectCardIDs parses the stored correct-card id list
func (r *SessionRecord) CorrectCardIDs() []int {
	return parseIDs(r.CorrectIDs)
}

// IncorrectCardIDs parses the stored incorrect-card id list
func (r *SessionRecord) IncorrectCardIDs() []int {
	return parseIDs(r.IncorrectIDs)
}

func parseIDs(raw string) []int {
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

// SessionRepository handles database operations for session history
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Create inserts a completed session
func (r *SessionRepository) Create(mode string, result models.QuizSessionResult, at time.Time) error {
	correct, err := marshalIDs(result.CorrectCardIDs)
	if err != nil {
		return err
	}
	incorrect, err := marshalIDs(result.IncorrectCardIDs)
	if err != nil {
		return err
	}

	query := DB.Rebind(`
		INSERT INTO quiz_sessions (
			mode, score, total_questions, elapsed_seconds,
			correct_ids, incorrect_ids, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = DB.Exec(query,
		mode,
		result.Score,
		result.TotalQuestions,
		result.ElapsedSeconds,
		correct,
		incorrect,
		at,
	)
	if err != nil {
		return fmt.Errorf("failed to create session record: %v", err)
	}
	return nil
}

func marshalIDs(ids []int) (string, error) {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal card ids: %v", err)
	}
	return string(data), nil
}

// All returns the full session history, newest first
func (r *SessionRepository) All() ([]SessionRecord, error) {
	var records []SessionRecord
	err := DB.Select(&records, "SELECT * FROM quiz_sessions ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get session records: %v", err)
	}
	return records, nil
}

// CountByMode returns how many sessions were completed per mode
func (r *SessionRepository) CountByMode() (map[string]int, error) {
	rows, err := DB.Queryx("SELECT mode, COUNT(*) AS n FROM quiz_sessions GROUP BY mode")
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var mode string
		var n int
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, fmt.Errorf("failed to scan session count: %v", err)
		}
		counts[mode] = n
	}
	return counts, rows.Err()
}

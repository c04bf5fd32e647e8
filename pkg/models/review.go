package models

import "time"

// ReviewOutcome is the result of reviewing a single card. It is produced by a
// quiz engine or the flashcard review flow and consumed once by the scheduler.
type ReviewOutcome struct {
	CardID     int       `json:"card_id"`
	WasCorrect bool      `json:"was_correct"`
	Timestamp  time.Time `json:"timestamp"`
}

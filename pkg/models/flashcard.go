package models

import "time"

// Difficulty is a coarse difficulty rating for a flashcard
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Example is one usage example for a flashcard
type Example struct {
	Spanish string `json:"spanish"`
	English string `json:"english"`
}

// Flashcard represents a Spanish vocabulary item to be learned
type Flashcard struct {
	ID             int        `json:"id" db:"id"`
	Spanish        string     `json:"spanish" db:"spanish"`
	English        string     `json:"english" db:"english"`
	Category       string     `json:"category" db:"category"`
	Difficulty     Difficulty `json:"difficulty" db:"difficulty"`
	Pronunciation  string     `json:"pronunciation" db:"pronunciation"` // Phonetic hint, e.g. "la KAH-sah"
	Level          int        `json:"level" db:"level"`                 // Mastery level, drives the review interval
	Streak         int        `json:"streak" db:"streak"`               // Consecutive correct reviews of this card
	Examples       []Example  `json:"examples"`
	CommonMistakes []string   `json:"common_mistakes,omitempty"`
	NextReview     time.Time  `json:"next_review" db:"next_review"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty" db:"last_reviewed"`
}

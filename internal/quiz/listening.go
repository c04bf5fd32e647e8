package quiz

import (
	"strings"
	"time"

	"github.com/example/espbot/pkg/models"
)

// Listening runs the listen-and-speak quiz: the Spanish text is spoken aloud
// and the user's recognized transcript is matched against it. The session
// walks the cards sequentially and ends after the last one.
type Listening struct {
	cards     []*models.Flashcard
	current   int
	score     int
	started   time.Time
	finalized bool
	correct   []int
	incorrect []int
}

// NewListening starts a listening session over the cards in order
func NewListening(cards []*models.Flashcard, now time.Time) (*Listening, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCardSet
	}
	copied := make([]*models.Flashcard, len(cards))
	copy(copied, cards)
	return &Listening{cards: copied, started: now}, nil
}

// Mode implements Session
func (s *Listening) Mode() Mode { return ModeListening }

// Current returns the card being practiced, or false when the session is over
func (s *Listening) Current() (*models.Flashcard, bool) {
	if s.Complete(time.Time{}) {
		return nil, false
	}
	return s.cards[s.current], true
}

// SubmitTranscript judges a recognized transcript against the current card's
// Spanish text, case-insensitively, and advances to the next card.
func (s *Listening) SubmitTranscript(transcript string, now time.Time) (bool, error) {
	if s.Complete(now) {
		return false, ErrSessionComplete
	}

	card := s.cards[s.current]
	correct := strings.EqualFold(strings.TrimSpace(transcript), card.Spanish)
	if correct {
		s.score++
		s.correct = append(s.correct, card.ID)
	} else {
		s.incorrect = append(s.incorrect, card.ID)
	}
	s.current++
	return correct, nil
}

// Complete implements Session
func (s *Listening) Complete(time.Time) bool {
	return s.current >= len(s.cards)
}

// Score returns the number of correct answers so far
func (s *Listening) Score() int { return s.score }

// QuestionNumber returns the 1-based index of the current card
func (s *Listening) QuestionNumber() int { return s.current + 1 }

// TotalQuestions returns the number of cards in the session
func (s *Listening) TotalQuestions() int { return len(s.cards) }

// Finalize implements Session
func (s *Listening) Finalize(now time.Time) (models.QuizSessionResult, error) {
	if s.finalized {
		return models.QuizSessionResult{}, ErrSessionFinalized
	}
	if !s.Complete(now) {
		return models.QuizSessionResult{}, ErrSessionNotComplete
	}
	s.finalized = true
	return models.QuizSessionResult{
		Score:            s.score,
		TotalQuestions:   len(s.cards),
		ElapsedSeconds:   elapsedSeconds(s.started, now),
		CorrectCardIDs:   s.correct,
		IncorrectCardIDs: s.incorrect,
	}, nil
}

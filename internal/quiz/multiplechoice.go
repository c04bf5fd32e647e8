package quiz

import (
	"math/rand"
	"time"

	"github.com/example/espbot/pkg/models"
)

const (
	mcMaxQuestions  = 10
	mcStartingLives = 3
)

// Question is one multiple choice question with its shuffled options
type Question struct {
	Card    *models.Flashcard
	Options []string
}

// MultipleChoice runs the four-option quiz: up to ten questions, three lives,
// and a cosmetic answer-streak multiplier.
type MultipleChoice struct {
	questions []Question
	current   int
	lives     int
	score     int
	streak    int // consecutive correct answers, display only
	started   time.Time
	finalized bool
	correct   []int
	incorrect []int
}

// NewMultipleChoice starts a session over a shuffled subset of the cards
func NewMultipleChoice(cards []*models.Flashcard, now time.Time) (*MultipleChoice, error) {
	return newMultipleChoice(cards, newRand(), now)
}

func newMultipleChoice(cards []*models.Flashcard, rnd *rand.Rand, now time.Time) (*MultipleChoice, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCardSet
	}

	pool := make([]*models.Flashcard, len(cards))
	copy(pool, cards)
	shuffleCards(rnd, pool)

	count := mcMaxQuestions
	if len(pool) < count {
		count = len(pool)
	}

	questions := make([]Question, 0, count)
	for _, card := range pool[:count] {
		questions = append(questions, Question{
			Card:    card,
			Options: generateOptions(rnd, card, cards),
		})
	}

	return &MultipleChoice{
		questions: questions,
		lives:     mcStartingLives,
		started:   now,
	}, nil
}

// Mode implements Session
func (s *MultipleChoice) Mode() Mode { return ModeMultipleChoice }

// Current returns the question awaiting an answer, or false when the session
// is over.
func (s *MultipleChoice) Current() (Question, bool) {
	if s.Complete(time.Time{}) {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Submit judges the answer against the current card and advances the session
func (s *MultipleChoice) Submit(answer string, now time.Time) (bool, error) {
	if s.Complete(now) {
		return false, ErrSessionComplete
	}

	card := s.questions[s.current].Card
	correct := answer == card.English
	if correct {
		s.score++
		s.streak++
		s.correct = append(s.correct, card.ID)
	} else {
		s.lives--
		s.streak = 0
		s.incorrect = append(s.incorrect, card.ID)
	}
	s.current++
	return correct, nil
}

// Complete implements Session: the quiz ends after the last question or when
// lives run out, whichever comes first.
func (s *MultipleChoice) Complete(time.Time) bool {
	return s.current >= len(s.questions) || s.lives <= 0
}

// Lives returns the remaining lives
func (s *MultipleChoice) Lives() int { return s.lives }

// Score returns the number of correct answers so far
func (s *MultipleChoice) Score() int { return s.score }

// QuestionNumber returns the 1-based index of the current question
func (s *MultipleChoice) QuestionNumber() int { return s.current + 1 }

// TotalQuestions returns the number of questions in the session
func (s *MultipleChoice) TotalQuestions() int { return len(s.questions) }

// Streak returns the current run of consecutive correct answers
func (s *MultipleChoice) Streak() int { return s.streak }

// Multiplier returns the cosmetic streak multiplier shown next to the score.
// It never changes the score itself.
func (s *MultipleChoice) Multiplier() int {
	switch {
	case s.streak >= 5:
		return 3
	case s.streak >= 3:
		return 2
	default:
		return 1
	}
}

// Finalize implements Session. It may be called exactly once, after the
// session is complete. The result counts only the questions that were
// actually answered: a run cut short by losing all lives is scored out of
// the answers given, so Score never exceeds TotalQuestions.
func (s *MultipleChoice) Finalize(now time.Time) (models.QuizSessionResult, error) {
	if s.finalized {
		return models.QuizSessionResult{}, ErrSessionFinalized
	}
	if !s.Complete(now) {
		return models.QuizSessionResult{}, ErrSessionNotComplete
	}
	s.finalized = true
	return models.QuizSessionResult{
		Score:            s.score,
		TotalQuestions:   s.current,
		ElapsedSeconds:   elapsedSeconds(s.started, now),
		CorrectCardIDs:   s.correct,
		IncorrectCardIDs: s.incorrect,
	}, nil
}

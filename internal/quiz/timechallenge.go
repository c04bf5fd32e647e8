package quiz

import (
	"math/rand"
	"time"

	"github.com/example/espbot/pkg/models"
)

// TimeChallengeDuration is the wall-clock budget of a time challenge session
const TimeChallengeDuration = 60 * time.Second

// TimeChallenge runs the timed rush: answer as many cards as possible before
// the budget runs out. Every answer advances to the next card, cycling
// through the list; only correct answers score.
type TimeChallenge struct {
	cards     []*models.Flashcard
	rnd       *rand.Rand
	deadline  time.Time
	started   time.Time
	idx       int
	options   []string
	score     int
	answered  int
	finalized bool
	correct   []int
	incorrect []int
}

// NewTimeChallenge starts a session with the standard 60 second budget
func NewTimeChallenge(cards []*models.Flashcard, now time.Time) (*TimeChallenge, error) {
	return newTimeChallenge(cards, newRand(), now, TimeChallengeDuration)
}

func newTimeChallenge(cards []*models.Flashcard, rnd *rand.Rand, now time.Time, budget time.Duration) (*TimeChallenge, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCardSet
	}

	pool := make([]*models.Flashcard, len(cards))
	copy(pool, cards)
	shuffleCards(rnd, pool)

	s := &TimeChallenge{
		cards:    pool,
		rnd:      rnd,
		started:  now,
		deadline: now.Add(budget),
	}
	s.options = randomOptions(rnd, s.cards[0], s.cards)
	return s, nil
}

// Mode implements Session
func (s *TimeChallenge) Mode() Mode { return ModeTimeChallenge }

// Current returns the card in play and its shuffled options, or false once
// the clock has run out.
func (s *TimeChallenge) Current(now time.Time) (*models.Flashcard, []string, bool) {
	if s.Complete(now) {
		return nil, nil, false
	}
	return s.cards[s.idx], s.options, true
}

// Remaining returns how much of the budget is left
func (s *TimeChallenge) Remaining(now time.Time) time.Duration {
	left := s.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Submit judges the answer and advances to the next card. A submit that
// arrives after the deadline, e.g. from a stale timer tick, is rejected and
// changes nothing.
func (s *TimeChallenge) Submit(answer string, now time.Time) (bool, error) {
	if s.Complete(now) {
		return false, ErrSessionComplete
	}

	card := s.cards[s.idx]
	correct := answer == card.English
	if correct {
		s.score++
		s.correct = append(s.correct, card.ID)
	} else {
		s.incorrect = append(s.incorrect, card.ID)
	}
	s.answered++

	s.idx = (s.idx + 1) % len(s.cards)
	s.options = randomOptions(s.rnd, s.cards[s.idx], s.cards)
	return correct, nil
}

// Score returns the number of correct answers so far
func (s *TimeChallenge) Score() int { return s.score }

// Complete implements Session: the session ends when the budget is exhausted
func (s *TimeChallenge) Complete(now time.Time) bool {
	return !now.Before(s.deadline)
}

// Finalize implements Session
func (s *TimeChallenge) Finalize(now time.Time) (models.QuizSessionResult, error) {
	if s.finalized {
		return models.QuizSessionResult{}, ErrSessionFinalized
	}
	if !s.Complete(now) {
		return models.QuizSessionResult{}, ErrSessionNotComplete
	}
	s.finalized = true

	total := s.answered
	if total == 0 {
		total = 1 // a session with no answers still reports a valid result
	}
	elapsed := elapsedSeconds(s.started, now)
	if max := int(s.deadline.Sub(s.started) / time.Second); elapsed > max {
		elapsed = max
	}
	return models.QuizSessionResult{
		Score:            s.score,
		TotalQuestions:   total,
		ElapsedSeconds:   elapsed,
		CorrectCardIDs:   s.correct,
		IncorrectCardIDs: s.incorrect,
	}, nil
}

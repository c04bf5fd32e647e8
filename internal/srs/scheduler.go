package srs

import (
	"sort"
	"time"

	"github.com/example/espbot/pkg/models"
)

// Scheduler implements the power-of-two spaced repetition policy: a correct
// review pushes the card out by 2^level days, an incorrect one by a fixed
// short interval.
type Scheduler struct {
	// Максимальный показатель степени для интервала
	// The interval is 1<<level days; levels above MaxExponent are clamped
	// so the computed date stays reasonable.
	MaxExponent int
	// Interval in days after an incorrect answer
	FailureIntervalDays int
}

// New creates a scheduler with the default policy
func New() *Scheduler {
	return &Scheduler{
		MaxExponent:         30,
		FailureIntervalDays: 1,
	}
}

// NextReview computes when the card should come up again. It does not mutate
// the card; applying the outcome (including the level bump on a correct
// answer) is the caller's job, see Apply.
func (s *Scheduler) NextReview(card *models.Flashcard, wasCorrect bool, now time.Time) time.Time {
	days := s.FailureIntervalDays
	if wasCorrect {
		exp := card.Level
		if exp < 0 {
			exp = 0
		}
		if exp > s.MaxExponent {
			exp = s.MaxExponent
		}
		days = 1 << uint(exp)
	}
	return now.AddDate(0, 0, days)
}

// IsDue reports whether the card should be reviewed at the given time
func (s *Scheduler) IsDue(card *models.Flashcard, now time.Time) bool {
	return !now.Before(card.NextReview)
}

// Apply records a review outcome on the card: review dates always, level and
// card streak on a correct answer, streak reset on an incorrect one.
func (s *Scheduler) Apply(card *models.Flashcard, outcome models.ReviewOutcome) {
	card.NextReview = s.NextReview(card, outcome.WasCorrect, outcome.Timestamp)
	reviewed := outcome.Timestamp
	card.LastReviewed = &reviewed

	if outcome.WasCorrect {
		card.Level++
		card.Streak++
	} else {
		card.Streak = 0
	}
}

// DueFirst returns up to limit cards that are due at now, ordered by
// priority:
// 1. Cards that have never been reviewed
// 2. Cards that are more overdue
func (s *Scheduler) DueFirst(cards []*models.Flashcard, now time.Time, limit int) []*models.Flashcard {
	var due []*models.Flashcard
	for _, c := range cards {
		if s.IsDue(c, now) {
			due = append(due, c)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if (due[i].LastReviewed == nil) != (due[j].LastReviewed == nil) {
			return due[i].LastReviewed == nil
		}
		return due[i].NextReview.Before(due[j].NextReview)
	})

	if limit > 0 && len(due) > limit {
		return due[:limit]
	}
	return due
}

package srs

import (
	"testing"
	"time"

	"github.com/example/espbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextReview(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()

	tests := []struct {
		name       string
		level      int
		wasCorrect bool
		wantDays   int
	}{
		{"new card answered correctly", 0, true, 1},
		{"level one doubles the interval", 1, true, 2},
		{"level five", 5, true, 32},
		{"negative level treated as zero", -3, true, 1},
		{"incorrect answer resets to one day", 7, false, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			card := &models.Flashcard{ID: 1, Level: tc.level}
			next := s.NextReview(card, tc.wasCorrect, now)
			assert.Equal(t, now.AddDate(0, 0, tc.wantDays), next)
		})
	}

	t.Run("exponent is clamped", func(t *testing.T) {
		card := &models.Flashcard{ID: 1, Level: 500}
		next := s.NextReview(card, true, now)
		assert.Equal(t, now.AddDate(0, 0, 1<<30), next)
	})
}

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()

	assert.True(t, s.IsDue(&models.Flashcard{NextReview: now}, now), "due exactly at the review time")
	assert.True(t, s.IsDue(&models.Flashcard{NextReview: now.Add(-time.Hour)}, now))
	assert.False(t, s.IsDue(&models.Flashcard{NextReview: now.Add(time.Hour)}, now))
}

func TestApply(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()

	t.Run("correct answer bumps level and streak", func(t *testing.T) {
		card := &models.Flashcard{ID: 1, Level: 2, Streak: 4}
		s.Apply(card, models.ReviewOutcome{CardID: 1, WasCorrect: true, Timestamp: now})

		assert.Equal(t, 3, card.Level)
		assert.Equal(t, 5, card.Streak)
		// интервал считается по уровню до повышения
		assert.Equal(t, now.AddDate(0, 0, 4), card.NextReview)
		require.NotNil(t, card.LastReviewed)
		assert.Equal(t, now, *card.LastReviewed)
	})

	t.Run("incorrect answer keeps level, resets streak", func(t *testing.T) {
		card := &models.Flashcard{ID: 1, Level: 2, Streak: 4}
		s.Apply(card, models.ReviewOutcome{CardID: 1, WasCorrect: false, Timestamp: now})

		assert.Equal(t, 2, card.Level)
		assert.Equal(t, 0, card.Streak)
		assert.Equal(t, now.AddDate(0, 0, 1), card.NextReview)
	})
}

func TestDueFirst(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	reviewed := now.AddDate(0, 0, -10)

	cards := []*models.Flashcard{
		// not due
		{ID: 1, NextReview: now.Add(time.Hour)},
		// overdue a day
		{ID: 2, NextReview: now.AddDate(0, 0, -1), LastReviewed: &reviewed},
		// never reviewed
		{ID: 3, NextReview: now},
		// most overdue
		{ID: 4, NextReview: now.AddDate(0, 0, -5), LastReviewed: &reviewed},
	}

	t.Run("never reviewed cards come first, then most overdue", func(t *testing.T) {
		due := s.DueFirst(cards, now, 0)
		require.Len(t, due, 3)
		assert.Equal(t, 3, due[0].ID)
		assert.Equal(t, 4, due[1].ID)
		assert.Equal(t, 2, due[2].ID)
	})

	t.Run("limit truncates the result", func(t *testing.T) {
		due := s.DueFirst(cards, now, 2)
		require.Len(t, due, 2)
		assert.Equal(t, 3, due[0].ID)
	})

	t.Run("nothing due", func(t *testing.T) {
		assert.Empty(t, s.DueFirst(cards, now.AddDate(0, 0, -30), 0))
	})
}

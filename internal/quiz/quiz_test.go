package quiz

import (
	"math/rand"
	"testing"
	"time"

	"github.com/example/espbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCards(n int) []*models.Flashcard {
	cards := make([]*models.Flashcard, 0, n)
	for i := 1; i <= n; i++ {
		category := "basic"
		if i%2 == 0 {
			category = "animals"
		}
		cards = append(cards, &models.Flashcard{
			ID:       i,
			Spanish:  "es" + string(rune('a'+i-1)),
			English:  "en" + string(rune('a'+i-1)),
			Category: category,
		})
	}
	return cards
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func answerCorrectly(t *testing.T, s *MultipleChoice, now time.Time) {
	t.Helper()
	q, ok := s.Current()
	require.True(t, ok)
	correct, err := s.Submit(q.Card.English, now)
	require.NoError(t, err)
	require.True(t, correct)
}

func answerWrong(t *testing.T, s *MultipleChoice, now time.Time) {
	t.Helper()
	q, ok := s.Current()
	require.True(t, ok)
	wrong := "definitely not it"
	require.NotEqual(t, q.Card.English, wrong)
	correct, err := s.Submit(wrong, now)
	require.NoError(t, err)
	require.False(t, correct)
}

func TestGenerateOptions(t *testing.T) {
	cards := makeCards(12)

	t.Run("four unique options including the answer", func(t *testing.T) {
		options := generateOptions(testRand(), cards[0], cards)
		require.Len(t, options, 4)
		assert.Contains(t, options, cards[0].English)

		seen := make(map[string]bool)
		for _, o := range options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
	})

	t.Run("prefers distractors from the same category", func(t *testing.T) {
		sameCategory := make(map[string]bool)
		for _, c := range cards {
			if c.Category == cards[0].Category && c.ID != cards[0].ID {
				sameCategory[c.English] = true
			}
		}

		options := generateOptions(testRand(), cards[0], cards)
		for _, o := range options {
			if o == cards[0].English {
				continue
			}
			assert.True(t, sameCategory[o], "distractor %q is not from category %q", o, cards[0].Category)
		}
	})

	t.Run("small pool yields fewer options", func(t *testing.T) {
		options := generateOptions(testRand(), cards[0], cards[:2])
		assert.Len(t, options, 2)
	})

	t.Run("random options ignore categories", func(t *testing.T) {
		options := randomOptions(testRand(), cards[0], cards)
		require.Len(t, options, 4)
		assert.Contains(t, options, cards[0].English)
	})
}

func TestMultipleChoice(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("empty card set", func(t *testing.T) {
		_, err := NewMultipleChoice(nil, now)
		assert.ErrorIs(t, err, ErrEmptyCardSet)
	})

	t.Run("caps at ten questions", func(t *testing.T) {
		s, err := newMultipleChoice(makeCards(25), testRand(), now)
		require.NoError(t, err)
		assert.Equal(t, 10, s.TotalQuestions())
	})

	t.Run("uses every card when fewer than ten", func(t *testing.T) {
		s, err := newMultipleChoice(makeCards(6), testRand(), now)
		require.NoError(t, err)
		assert.Equal(t, 6, s.TotalQuestions())
	})

	t.Run("three wrong answers end the session", func(t *testing.T) {
		s, err := newMultipleChoice(makeCards(12), testRand(), now)
		require.NoError(t, err)
		assert.Equal(t, 3, s.Lives())

		answerWrong(t, s, now)
		answerWrong(t, s, now)
		assert.False(t, s.Complete(now))
		answerWrong(t, s, now)
		assert.True(t, s.Complete(now))
		assert.Equal(t, 0, s.Lives())

		_, err = s.Submit("anything", now)
		assert.ErrorIs(t, err, ErrSessionComplete)
	})

	t.Run("streak multiplier is cosmetic", func(t *testing.T) {
		s, err := newMultipleChoice(makeCards(12), testRand(), now)
		require.NoError(t, err)

		assert.Equal(t, 1, s.Multiplier())
		answerCorrectly(t, s, now)
		answerCorrectly(t, s, now)
		answerCorrectly(t, s, now)
		assert.Equal(t, 2, s.Multiplier())
		answerCorrectly(t, s, now)
		answerCorrectly(t, s, now)
		assert.Equal(t, 3, s.Multiplier())
		// счет растет на единицу за вопрос, множитель его не трогает
		assert.Equal(t, 5, s.Score())

		answerWrong(t, s, now)
		assert.Equal(t, 0, s.Streak())
		assert.Equal(t, 1, s.Multiplier())
		assert.Equal(t, 5, s.Score())
	})

	t.Run("finalize reports answered questions", func(t *testing.T) {
		s, err := newMultipleChoice(makeCards(12), testRand(), now)
		require.NoError(t, err)

		answerCorrectly(t, s, now)
		answerWrong(t, s, now)
		answerWrong(t, s, now)
		answerWrong(t, s, now)
		require.True(t, s.Complete(now))

		result, err := s.Finalize(now.Add(90 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Score)
		assert.Equal(t, 4, result.TotalQuestions)
		assert.Equal(t, 90, result.ElapsedSeconds)
		assert.Len(t, result.CorrectCardIDs, 1)
		assert.Len(t, result.IncorrectCardIDs, 3)

		_, err = s.Finalize(now.Add(91 * time.Second))
		assert.ErrorIs(t, err, ErrSessionFinalized)
	})

	t.Run("finalize before completion fails", func(t *testing.T) {
		s, err := newMultipleChoice(makeCards(12), testRand(), now)
		require.NoError(t, err)
		_, err = s.Finalize(now)
		assert.ErrorIs(t, err, ErrSessionNotComplete)
	})
}

func TestListening(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cards := []*models.Flashcard{
		{ID: 1, Spanish: "Hola", English: "Hello"},
		{ID: 2, Spanish: "Gato", English: "Cat"},
	}

	s, err := NewListening(cards, now)
	require.NoError(t, err)

	// регистр и пробелы по краям не учитываются
	correct, err := s.SubmitTranscript("  hola ", now)
	require.NoError(t, err)
	assert.True(t, correct)

	correct, err = s.SubmitTranscript("perro", now)
	require.NoError(t, err)
	assert.False(t, correct)

	require.True(t, s.Complete(now))
	result, err := s.Finalize(now.Add(30 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, []int{1}, result.CorrectCardIDs)
	assert.Equal(t, []int{2}, result.IncorrectCardIDs)
}

func TestMatchPairs(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// tileFor finds the two tiles of the card
	tilesFor := func(s *MatchPairs, cardID int) (int, int) {
		var ids []int
		for _, tile := range s.Tiles() {
			if tile.CardID == cardID {
				ids = append(ids, tile.ID)
			}
		}
		require.Len(t, ids, 2)
		return ids[0], ids[1]
	}

	t.Run("board holds two tiles per card, capped at six pairs", func(t *testing.T) {
		s, err := newMatchPairs(makeCards(10), testRand(), now)
		require.NoError(t, err)
		assert.Equal(t, 6, s.Pairs())
		assert.Len(t, s.Tiles(), 12)
	})

	t.Run("matching a pair", func(t *testing.T) {
		s, err := newMatchPairs(makeCards(3), testRand(), now)
		require.NoError(t, err)
		first, second := tilesFor(s, 1)

		outcome, err := s.Reveal(first, now)
		require.NoError(t, err)
		assert.Equal(t, TurnRevealed, outcome)

		outcome, err = s.Reveal(second, now)
		require.NoError(t, err)
		assert.Equal(t, TurnMatched, outcome)
		assert.Equal(t, 1, s.Score())
	})

	t.Run("clicking the same tile twice is ignored", func(t *testing.T) {
		s, err := newMatchPairs(makeCards(3), testRand(), now)
		require.NoError(t, err)
		first, _ := tilesFor(s, 1)

		outcome, err := s.Reveal(first, now)
		require.NoError(t, err)
		assert.Equal(t, TurnRevealed, outcome)

		outcome, err = s.Reveal(first, now)
		require.NoError(t, err)
		assert.Equal(t, TurnIgnored, outcome)
		assert.True(t, s.Revealed(first))
		assert.Equal(t, 0, s.Score())
	})

	t.Run("mismatch blocks further reveals until conceal", func(t *testing.T) {
		s, err := newMatchPairs(makeCards(3), testRand(), now)
		require.NoError(t, err)
		a, _ := tilesFor(s, 1)
		b, b2 := tilesFor(s, 2)

		_, err = s.Reveal(a, now)
		require.NoError(t, err)
		outcome, err := s.Reveal(b, now)
		require.NoError(t, err)
		assert.Equal(t, TurnMismatched, outcome)

		outcome, err = s.Reveal(b2, now)
		require.NoError(t, err)
		assert.Equal(t, TurnIgnored, outcome)

		s.Conceal()
		assert.False(t, s.Revealed(a))

		outcome, err = s.Reveal(b, now)
		require.NoError(t, err)
		assert.Equal(t, TurnRevealed, outcome)
	})

	t.Run("completing the board", func(t *testing.T) {
		s, err := newMatchPairs(makeCards(2), testRand(), now)
		require.NoError(t, err)
		for cardID := 1; cardID <= 2; cardID++ {
			first, second := tilesFor(s, cardID)
			_, err := s.Reveal(first, now)
			require.NoError(t, err)
			_, err = s.Reveal(second, now)
			require.NoError(t, err)
		}

		require.True(t, s.Complete(now))
		result, err := s.Finalize(now.Add(45 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Score)
		assert.Equal(t, 2, result.TotalQuestions)
		assert.Equal(t, 45, result.ElapsedSeconds)
		assert.ElementsMatch(t, []int{1, 2}, result.CorrectCardIDs)
		assert.Empty(t, result.IncorrectCardIDs)
	})
}

func TestTimeChallenge(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("answers cycle through the deck", func(t *testing.T) {
		s, err := newTimeChallenge(makeCards(2), testRand(), now, time.Minute)
		require.NoError(t, err)

		seen := make(map[int]int)
		for i := 0; i < 4; i++ {
			card, options, ok := s.Current(now)
			require.True(t, ok)
			require.NotEmpty(t, options)
			seen[card.ID]++
			_, err := s.Submit(card.English, now)
			require.NoError(t, err)
		}
		assert.Equal(t, map[int]int{1: 2, 2: 2}, seen)
		assert.Equal(t, 4, s.Score())
	})

	t.Run("submits after the deadline are rejected", func(t *testing.T) {
		s, err := newTimeChallenge(makeCards(4), testRand(), now, time.Minute)
		require.NoError(t, err)

		card, _, ok := s.Current(now)
		require.True(t, ok)

		late := now.Add(time.Minute)
		_, err = s.Submit(card.English, late)
		assert.ErrorIs(t, err, ErrSessionComplete)
		assert.Equal(t, 0, s.Score())

		_, _, ok = s.Current(late)
		assert.False(t, ok)
	})

	t.Run("remaining time never goes negative", func(t *testing.T) {
		s, err := newTimeChallenge(makeCards(4), testRand(), now, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, s.Remaining(now))
		assert.Equal(t, 30*time.Second, s.Remaining(now.Add(30*time.Second)))
		assert.Equal(t, time.Duration(0), s.Remaining(now.Add(2*time.Minute)))
	})

	t.Run("finalize clamps elapsed time to the budget", func(t *testing.T) {
		s, err := newTimeChallenge(makeCards(4), testRand(), now, time.Minute)
		require.NoError(t, err)

		card, _, ok := s.Current(now)
		require.True(t, ok)
		_, err = s.Submit(card.English, now.Add(10*time.Second))
		require.NoError(t, err)

		result, err := s.Finalize(now.Add(5 * time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Score)
		assert.Equal(t, 1, result.TotalQuestions)
		assert.Equal(t, 60, result.ElapsedSeconds)
	})

	t.Run("session with no answers still yields a result", func(t *testing.T) {
		s, err := newTimeChallenge(makeCards(4), testRand(), now, time.Minute)
		require.NoError(t, err)

		result, err := s.Finalize(now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, 1, result.TotalQuestions)
	})
}

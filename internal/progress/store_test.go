package progress

import (
	"testing"
	"time"

	"github.com/example/espbot/internal/catalog"
	"github.com/example/espbot/internal/database"
	"github.com/example/espbot/internal/quiz"
	"github.com/example/espbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *catalog.Catalog) {
	t.Helper()
	require.NoError(t, database.ConnectTest())
	t.Cleanup(func() { database.Close() })

	cat := catalog.New(testNow)
	return NewStore(cat, nil), cat
}

func TestApplySessionResult(t *testing.T) {
	t.Run("xp, learned cards and daily goal", func(t *testing.T) {
		s, _ := newTestStore(t)

		err := s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
			Score:            10,
			TotalQuestions:   12,
			ElapsedSeconds:   120,
			CorrectCardIDs:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			IncorrectCardIDs: []int{11, 12},
		}, testNow)
		require.NoError(t, err)

		stats := s.Stats()
		// 10 очков по 10 XP плюс 5 XP за каждую полную минуту
		assert.Equal(t, 110, stats.XP)
		assert.Equal(t, 10, stats.TotalCardsLearned)
		assert.Equal(t, 50, stats.DailyGoal)
		assert.Equal(t, 1, stats.Level)
	})

	t.Run("daily goal is capped at 100", func(t *testing.T) {
		s, _ := newTestStore(t)

		for i := 0; i < 3; i++ {
			err := s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
				Score: 10, TotalQuestions: 12, ElapsedSeconds: 30,
			}, testNow)
			require.NoError(t, err)
		}
		assert.Equal(t, 100, s.Stats().DailyGoal)
	})

	t.Run("a large gain levels up repeatedly", func(t *testing.T) {
		s, _ := newTestStore(t)

		err := s.ApplySessionResult(quiz.ModeTimeChallenge, models.QuizSessionResult{
			Score: 300, TotalQuestions: 400, ElapsedSeconds: 60,
		}, testNow)
		require.NoError(t, err)

		stats := s.Stats()
		assert.Equal(t, 3005, stats.XP)
		assert.Equal(t, 4, stats.Level)
		assert.Equal(t, 3375, stats.NextLevel)
		assert.Less(t, stats.XP, stats.NextLevel)
	})

	t.Run("crossing the threshold levels up once", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.stats.Level = 3
		s.stats.XP = 950
		s.stats.NextLevel = 1000

		err := s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
			Score: 10, TotalQuestions: 12, ElapsedSeconds: 0,
		}, testNow)
		require.NoError(t, err)

		stats := s.Stats()
		assert.Equal(t, 1050, stats.XP)
		assert.Equal(t, 4, stats.Level)
		assert.Equal(t, 1500, stats.NextLevel)
	})

	t.Run("perfect score unlocks quiz champion", func(t *testing.T) {
		s, _ := newTestStore(t)

		err := s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
			Score: 5, TotalQuestions: 5, ElapsedSeconds: 30, CorrectCardIDs: []int{1, 2, 3, 4, 5},
		}, testNow)
		require.NoError(t, err)

		assert.True(t, achievementByID(t, s, AchievementQuizChampion).Achieved)
		assert.False(t, achievementByID(t, s, AchievementPerfectPronunciation).Achieved)
	})

	t.Run("perfect listening session also unlocks pronunciation", func(t *testing.T) {
		s, _ := newTestStore(t)

		err := s.ApplySessionResult(quiz.ModeListening, models.QuizSessionResult{
			Score: 5, TotalQuestions: 5, ElapsedSeconds: 30, CorrectCardIDs: []int{1, 2, 3, 4, 5},
		}, testNow)
		require.NoError(t, err)

		assert.True(t, achievementByID(t, s, AchievementQuizChampion).Achieved)
		assert.True(t, achievementByID(t, s, AchievementPerfectPronunciation).Achieved)
	})

	t.Run("imperfect score unlocks nothing", func(t *testing.T) {
		s, _ := newTestStore(t)

		err := s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
			Score: 4, TotalQuestions: 5, ElapsedSeconds: 30,
		}, testNow)
		require.NoError(t, err)

		for _, a := range s.Achievements() {
			assert.False(t, a.Achieved, "achievement %q should stay locked", a.Name)
		}
	})

	t.Run("vocabulary master at one hundred learned cards", func(t *testing.T) {
		s, _ := newTestStore(t)

		correct := make([]int, 50)
		for i := range correct {
			correct[i] = i + 1
		}
		result := models.QuizSessionResult{
			Score: 50, TotalQuestions: 60, ElapsedSeconds: 60, CorrectCardIDs: correct,
		}

		require.NoError(t, s.ApplySessionResult(quiz.ModeMultipleChoice, result, testNow))
		assert.False(t, achievementByID(t, s, AchievementVocabularyMaster).Achieved)

		require.NoError(t, s.ApplySessionResult(quiz.ModeMultipleChoice, result, testNow))
		assert.True(t, achievementByID(t, s, AchievementVocabularyMaster).Achieved)
	})
}

func TestApplyCardReview(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.ApplyCardReview(models.ReviewOutcome{CardID: 1, WasCorrect: true, Timestamp: testNow}))
	stats := s.Stats()
	assert.Equal(t, 10, stats.XP)
	assert.Equal(t, 5, stats.DailyGoal)

	require.NoError(t, s.ApplyCardReview(models.ReviewOutcome{CardID: 2, WasCorrect: false, Timestamp: testNow}))
	stats = s.Stats()
	assert.Equal(t, 12, stats.XP)
	assert.Equal(t, 6, stats.DailyGoal)
}

func TestCheckDailyStreak(t *testing.T) {
	t.Run("first login starts the streak", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CheckDailyStreak(testNow))
		stats := s.Stats()
		assert.Equal(t, 1, stats.Streak)
		assert.Equal(t, "2024-03-01", stats.LastLoginDate)
	})

	t.Run("second login the same day changes nothing", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CheckDailyStreak(testNow))
		require.NoError(t, s.CheckDailyStreak(testNow.Add(5*time.Hour)))
		assert.Equal(t, 1, s.Stats().Streak)
	})

	t.Run("consecutive days extend the streak", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CheckDailyStreak(testNow))
		require.NoError(t, s.CheckDailyStreak(testNow.AddDate(0, 0, 1)))
		assert.Equal(t, 2, s.Stats().Streak)
	})

	t.Run("a missed day resets the streak", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.CheckDailyStreak(testNow))
		require.NoError(t, s.CheckDailyStreak(testNow.AddDate(0, 0, 3)))
		assert.Equal(t, 1, s.Stats().Streak)
	})

	t.Run("seven consecutive days unlock the streak achievement", func(t *testing.T) {
		s, _ := newTestStore(t)
		for day := 0; day < 7; day++ {
			require.NoError(t, s.CheckDailyStreak(testNow.AddDate(0, 0, day)))
		}
		assert.Equal(t, 7, s.Stats().Streak)
		assert.True(t, achievementByID(t, s, AchievementSevenDayStreak).Achieved)
	})

	t.Run("unreadable stored date restarts the streak", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.stats.LastLoginDate = "not a date"
		s.stats.Streak = 5
		require.NoError(t, s.CheckDailyStreak(testNow))
		assert.Equal(t, 1, s.Stats().Streak)
	})
}

func TestUnlockAchievement(t *testing.T) {
	s, _ := newTestStore(t)

	var fired []models.Achievement
	s.onUnlock = func(a models.Achievement) { fired = append(fired, a) }

	require.NoError(t, s.UnlockAchievement(AchievementQuizChampion, testNow))
	first := achievementByID(t, s, AchievementQuizChampion)
	require.True(t, first.Achieved)
	require.NotNil(t, first.UnlockedAt)
	assert.Equal(t, testNow, *first.UnlockedAt)

	// повторная разблокировка не меняет дату, но попап показывается снова
	later := testNow.Add(48 * time.Hour)
	require.NoError(t, s.UnlockAchievement(AchievementQuizChampion, later))
	second := achievementByID(t, s, AchievementQuizChampion)
	assert.Equal(t, testNow, *second.UnlockedAt)
	assert.Len(t, fired, 2)
}

func TestHydration(t *testing.T) {
	t.Run("stats survive a restart", func(t *testing.T) {
		s, cat := newTestStore(t)

		require.NoError(t, s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
			Score: 8, TotalQuestions: 10, ElapsedSeconds: 90, CorrectCardIDs: []int{1, 2},
		}, testNow))
		require.NoError(t, s.CheckDailyStreak(testNow))
		want := s.Stats()

		reloaded := NewStore(cat, nil)
		assert.Equal(t, want, reloaded.Stats())
	})

	t.Run("achievements survive a restart", func(t *testing.T) {
		s, cat := newTestStore(t)
		require.NoError(t, s.UnlockAchievement(AchievementQuizChampion, testNow))

		reloaded := NewStore(cat, nil)
		assert.True(t, achievementByID(t, reloaded, AchievementQuizChampion).Achieved)
	})

	t.Run("corrupt record falls back to defaults", func(t *testing.T) {
		_, cat := newTestStore(t)

		_, err := database.DB.Exec(
			database.DB.Rebind("INSERT INTO records (key, schema_version, value) VALUES (?, ?, ?)"),
			database.KeyUserStats, database.SchemaVersion, "{not json",
		)
		require.NoError(t, err)

		s := NewStore(cat, nil)
		assert.Equal(t, models.DefaultUserStats(), s.Stats())
	})

	t.Run("older schema versions are ignored", func(t *testing.T) {
		s, cat := newTestStore(t)
		require.NoError(t, s.ApplyCardReview(models.ReviewOutcome{CardID: 1, WasCorrect: true, Timestamp: testNow}))

		_, err := database.DB.Exec("UPDATE records SET schema_version = 0")
		require.NoError(t, err)

		reloaded := NewStore(cat, nil)
		assert.Equal(t, models.DefaultUserStats(), reloaded.Stats())
	})
}

func TestCategoryStrengths(t *testing.T) {
	s, cat := newTestStore(t)

	verbs := cat.ByCategory("verbs")
	food := cat.ByCategory("food")
	require.GreaterOrEqual(t, len(verbs), 3)
	require.GreaterOrEqual(t, len(food), 3)

	ids := func(cards []*models.Flashcard, n int) []int {
		out := make([]int, 0, n)
		for _, c := range cards[:n] {
			out = append(out, c.ID)
		}
		return out
	}

	// глаголы даются плохо, еда идет отлично
	require.NoError(t, s.ApplySessionResult(quiz.ModeMultipleChoice, models.QuizSessionResult{
		Score:            3,
		TotalQuestions:   6,
		ElapsedSeconds:   60,
		CorrectCardIDs:   ids(food, 3),
		IncorrectCardIDs: ids(verbs, 3),
	}, testNow))

	stats := s.Stats()
	assert.Contains(t, stats.WeakestCategories, "verbs")
	assert.Contains(t, stats.StrongestCategories, "food")
	assert.NotContains(t, stats.WeakestCategories, "food")
}

func achievementByID(t *testing.T, s *Store, id int) models.Achievement {
	t.Helper()
	for _, a := range s.Achievements() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %d not found", id)
	return models.Achievement{}
}

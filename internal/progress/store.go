package progress

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/example/espbot/internal/catalog"
	"github.com/example/espbot/internal/database"
	"github.com/example/espbot/internal/quiz"
	"github.com/example/espbot/pkg/models"
)

// Thresholds for deriving category strengths from session history
const (
	weakAccuracy      = 0.60
	strongAccuracy    = 0.85
	minCategoryTries  = 3
	maxListedCategory = 3
)

// Store owns the user's stats and achievements. Every mutation goes through
// one of its methods and is persisted to the records table before returning.
// It is the explicit context object of the application, not an ambient
// singleton: consumers receive it from main.
type Store struct {
	records  *database.RecordRepository
	sessions *database.SessionRepository
	catalog  *catalog.Catalog

	stats        models.UserStats
	achievements []models.Achievement

	// onUnlock is told about every unlock call for a known achievement,
	// including repeated ones: the popup re-fires even when the state is
	// already achieved.
	onUnlock func(models.Achievement)
}

// NewStore hydrates a store from the database. Missing or unreadable records
// fall back to defaults; hydration never fails the startup.
func NewStore(cat *catalog.Catalog, onUnlock func(models.Achievement)) *Store {
	s := &Store{
		records:      database.NewRecordRepository(),
		sessions:     database.NewSessionRepository(),
		catalog:      cat,
		stats:        models.DefaultUserStats(),
		achievements: defaultAchievements(),
		onUnlock:     onUnlock,
	}

	var stats models.UserStats
	if ok, err := s.records.Load(database.KeyUserStats, &stats); err != nil {
		log.Printf("Corrupt user stats record, using defaults: %v", err)
	} else if ok {
		s.stats = stats
	}

	var achievements []models.Achievement
	if ok, err := s.records.Load(database.KeyAchievements, &achievements); err != nil {
		log.Printf("Corrupt achievements record, using defaults: %v", err)
	} else if ok && len(achievements) > 0 {
		s.achievements = achievements
	}

	return s
}

// Stats returns a snapshot of the user's stats
func (s *Store) Stats() models.UserStats {
	stats := s.stats
	stats.WeakestCategories = append([]string{}, s.stats.WeakestCategories...)
	stats.StrongestCategories = append([]string{}, s.stats.StrongestCategories...)
	return stats
}

// Achievements returns a snapshot of the achievement list
func (s *Store) Achievements() []models.Achievement {
	out := make([]models.Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// ApplySessionResult folds a completed practice session into the stats:
// 10 XP per point plus 5 XP per full minute played, learned-card count,
// daily goal progress, level-ups and session-driven achievements.
func (s *Store) ApplySessionResult(mode quiz.Mode, result models.QuizSessionResult, now time.Time) error {
	s.stats.XP += result.Score*10 + (result.ElapsedSeconds/60)*5
	s.stats.TotalCardsLearned += len(result.CorrectCardIDs)
	s.stats.DailyGoal = clampPercent(s.stats.DailyGoal + result.Score*5)
	s.levelUp()

	if result.Score == result.TotalQuestions && result.TotalQuestions > 0 {
		s.unlock(AchievementQuizChampion, now)
		if mode == quiz.ModeListening {
			s.unlock(AchievementPerfectPronunciation, now)
		}
	}
	if s.stats.TotalCardsLearned >= vocabularyMasterThreshold {
		s.unlock(AchievementVocabularyMaster, now)
	}

	if err := s.sessions.Create(string(mode), result, now); err != nil {
		return err
	}
	s.refreshCategoryStrengths()
	return s.persist()
}

// ApplyCardReview grants the flashcard review flow its XP: 10 for a correct
// answer, 2 for an incorrect one, with matching daily goal progress.
func (s *Store) ApplyCardReview(outcome models.ReviewOutcome) error {
	if outcome.WasCorrect {
		s.stats.XP += 10
		s.stats.DailyGoal = clampPercent(s.stats.DailyGoal + 5)
	} else {
		s.stats.XP += 2
		s.stats.DailyGoal = clampPercent(s.stats.DailyGoal + 1)
	}
	s.levelUp()
	return s.persist()
}

// UnlockAchievement marks the achievement as achieved. Repeated unlocks keep
// the original unlock time but still re-trigger the popup.
func (s *Store) UnlockAchievement(id int, now time.Time) error {
	s.unlock(id, now)
	return s.persist()
}

// CheckDailyStreak updates the daily usage streak from the calendar date of
// now. Repeat calls on the same day are a no-op.
func (s *Store) CheckDailyStreak(now time.Time) error {
	today := now.Format(models.DateLayout)

	if s.stats.LastLoginDate == "" {
		s.stats.Streak = 1
		s.stats.LastLoginDate = today
		return s.persist()
	}

	lastLogin, err := time.Parse(models.DateLayout, s.stats.LastLoginDate)
	if err != nil {
		// Unreadable date: start the streak over rather than guessing
		s.stats.Streak = 1
		s.stats.LastLoginDate = today
		return s.persist()
	}

	daysDiff := calendarDays(lastLogin, now)
	switch {
	case daysDiff <= 0:
		// Same day (or a clock that went backwards): nothing to do
		return nil
	case daysDiff == 1:
		s.stats.Streak++
		s.stats.LastLoginDate = today
		if s.stats.Streak == 7 {
			s.unlock(AchievementSevenDayStreak, now)
		}
	default:
		s.stats.Streak = 1
		s.stats.LastLoginDate = today
	}
	return s.persist()
}

// levelUp consumes XP overflow into levels. It loops so that a single large
// gain cannot leave the stats above the threshold.
func (s *Store) levelUp() {
	for s.stats.XP >= s.stats.NextLevel {
		s.stats.Level++
		s.stats.NextLevel = s.stats.NextLevel * 3 / 2
	}
}

func (s *Store) unlock(id int, now time.Time) {
	for i := range s.achievements {
		if s.achievements[i].ID != id {
			continue
		}
		if !s.achievements[i].Achieved {
			s.achievements[i].Achieved = true
			unlocked := now
			s.achievements[i].UnlockedAt = &unlocked
		}
		if s.onUnlock != nil {
			s.onUnlock(s.achievements[i])
		}
		return
	}
}

// refreshCategoryStrengths recomputes the weakest/strongest category lists
// from the whole session history.
func (s *Store) refreshCategoryStrengths() {
	records, err := s.sessions.All()
	if err != nil {
		log.Printf("Failed to load session history: %v", err)
		return
	}

	type tally struct{ correct, total int }
	byCategory := make(map[string]*tally)
	count := func(ids []int, correct bool) {
		for _, id := range ids {
			card, ok := s.catalog.ByID(id)
			if !ok {
				continue
			}
			t := byCategory[card.Category]
			if t == nil {
				t = &tally{}
				byCategory[card.Category] = t
			}
			t.total++
			if correct {
				t.correct++
			}
		}
	}
	for i := range records {
		count(records[i].CorrectCardIDs(), true)
		count(records[i].IncorrectCardIDs(), false)
	}

	type scored struct {
		category string
		accuracy float64
	}
	var weak, strong []scored
	for category, t := range byCategory {
		if t.total < minCategoryTries {
			continue
		}
		accuracy := float64(t.correct) / float64(t.total)
		if accuracy < weakAccuracy {
			weak = append(weak, scored{category, accuracy})
		} else if accuracy >= strongAccuracy {
			strong = append(strong, scored{category, accuracy})
		}
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].accuracy != weak[j].accuracy {
			return weak[i].accuracy < weak[j].accuracy
		}
		return weak[i].category < weak[j].category
	})
	sort.Slice(strong, func(i, j int) bool {
		if strong[i].accuracy != strong[j].accuracy {
			return strong[i].accuracy > strong[j].accuracy
		}
		return strong[i].category < strong[j].category
	})

	names := func(list []scored, limit int) []string {
		out := []string{}
		for i := range list {
			if i == limit {
				break
			}
			out = append(out, list[i].category)
		}
		return out
	}
	s.stats.WeakestCategories = names(weak, maxListedCategory)
	s.stats.StrongestCategories = names(strong, maxListedCategory)
}

func clampPercent(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

// calendarDays returns the number of calendar-date boundaries between a and b
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	aDay := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bDay := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay) / (24 * time.Hour))
}

func (s *Store) persist() error {
	if err := s.records.Save(database.KeyUserStats, s.stats); err != nil {
		return fmt.Errorf("failed to persist user stats: %v", err)
	}
	if err := s.records.Save(database.KeyAchievements, s.achievements); err != nil {
		return fmt.Errorf("failed to persist achievements: %v", err)
	}
	return nil
}

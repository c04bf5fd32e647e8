package progress

import "github.com/example/espbot/pkg/models"

// Achievement ids
const (
	AchievementSevenDayStreak = iota + 1
	AchievementVocabularyMaster
	AchievementQuizChampion
	AchievementPerfectPronunciation
)

// vocabularyMasterThreshold is the totalCardsLearned count that unlocks
// Vocabulary Master
const vocabularyMasterThreshold = 100

// defaultAchievements is the fixed achievement catalog
func defaultAchievements() []models.Achievement {
	return []models.Achievement{
		{
			ID:          AchievementSevenDayStreak,
			Name:        "7 Day Streak",
			Description: "Practice for 7 consecutive days",
		},
		{
			ID:          AchievementVocabularyMaster,
			Name:        "Vocabulary Master",
			Description: "Learn 100 cards",
		},
		{
			ID:          AchievementQuizChampion,
			Name:        "Quiz Champion",
			Description: "Finish a quiz with a perfect score",
		},
		{
			ID:          AchievementPerfectPronunciation,
			Name:        "Perfect Pronunciation",
			Description: "Finish a listening session without a single miss",
		},
	}
}

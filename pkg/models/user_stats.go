package models

// DateLayout is the calendar-date format used for LastLoginDate
const DateLayout = "2006-01-02"

// UserStats tracks the user's overall learning progress
type UserStats struct {
	Streak              int      `json:"streak"`    // Consecutive days of usage
	Level               int      `json:"level"`     // Starts at 1
	XP                  int      `json:"xp"`        // Always < NextLevel after level-up logic has run
	NextLevel           int      `json:"nextLevel"` // XP threshold for the next level
	DailyGoal           int      `json:"dailyGoal"` // Percent of today's goal reached, 0-100
	TotalCardsLearned   int      `json:"totalCardsLearned"`
	WeakestCategories   []string `json:"weakestCategories"`
	StrongestCategories []string `json:"strongestCategories"`
	LastLoginDate       string   `json:"lastLoginDate,omitempty"` // Calendar date in DateLayout, empty before first login
}

// DefaultUserStats returns the stats a brand new user starts with
func DefaultUserStats() UserStats {
	return UserStats{
		Level:               1,
		NextLevel:           1000,
		WeakestCategories:   []string{},
		StrongestCategories: []string{},
	}
}

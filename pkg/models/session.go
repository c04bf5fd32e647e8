package models

// QuizSessionResult summarizes one completed practice session. It is produced
// exactly once by an engine's Finalize and consumed once by the progress store.
type QuizSessionResult struct {
	Score            int   `json:"score"`
	TotalQuestions   int   `json:"total_questions"`
	ElapsedSeconds   int   `json:"elapsed_seconds"`
	CorrectCardIDs   []int `json:"correct_card_ids"`
	IncorrectCardIDs []int `json:"incorrect_card_ids"`
}

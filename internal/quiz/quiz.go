package quiz

import (
	"errors"
	"math/rand"
	"time"

	"github.com/example/espbot/pkg/models"
)

// Mode identifies a practice mode
type Mode string

const (
	// ModeMultipleChoice is the classic four-option quiz
	ModeMultipleChoice Mode = "multiple_choice"
	// ModeListening is the listen-and-speak quiz
	ModeListening Mode = "listening"
	// ModeMatchPairs is the pair-matching memory game
	ModeMatchPairs Mode = "match_pairs"
	// ModeTimeChallenge is the 60-second rush
	ModeTimeChallenge Mode = "time_challenge"
)

var (
	// ErrEmptyCardSet is returned when a session is started with no cards
	ErrEmptyCardSet = errors.New("quiz: empty card set")
	// ErrSessionComplete is returned when an answer is submitted after the session ended
	ErrSessionComplete = errors.New("quiz: session already complete")
	// ErrSessionNotComplete is returned when Finalize is called on a running session
	ErrSessionNotComplete = errors.New("quiz: session not complete yet")
	// ErrSessionFinalized is returned when Finalize is called a second time
	ErrSessionFinalized = errors.New("quiz: session already finalized")
)

// Session is the contract shared by all practice modes. Submitting answers is
// mode-specific, completion and the single Finalize are not.
type Session interface {
	Mode() Mode
	Complete(now time.Time) bool
	Finalize(now time.Time) (models.QuizSessionResult, error)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// shuffleCards shuffles in place with an unbiased Fisher-Yates shuffle
func shuffleCards(rnd *rand.Rand, cards []*models.Flashcard) {
	rnd.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func elapsedSeconds(started, now time.Time) int {
	sec := int(now.Sub(started) / time.Second)
	if sec < 0 {
		return 0
	}
	return sec
}

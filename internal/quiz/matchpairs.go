package quiz

import (
	"math/rand"
	"time"

	"github.com/example/espbot/pkg/models"
)

const mpMaxPairs = 6

// Tile is one face-down tile on the match pairs board
type Tile struct {
	ID      int
	PairID  int // Tiles of the same card share a PairID
	CardID  int
	Text    string
	Spanish bool
	Matched bool
}

// TurnOutcome describes what a reveal did to the board
type TurnOutcome int

const (
	// TurnIgnored means the click did not count: the tile was already face up
	// or matched, or two tiles were pending concealment.
	TurnIgnored TurnOutcome = iota
	// TurnRevealed means the first tile of a turn was turned over
	TurnRevealed
	// TurnMatched means the second tile completed a pair
	TurnMatched
	// TurnMismatched means the second tile did not match; the pair stays
	// visible until Conceal is called after the presentation delay.
	TurnMismatched
)

// MatchPairs runs the pair-matching game over a shuffled board of Spanish and
// English tiles.
type MatchPairs struct {
	tiles     []Tile
	revealed  []int // indexes of face-up unmatched tiles, at most two
	mismatch  bool  // two tiles are up and waiting for Conceal
	score     int
	pairs     int
	started   time.Time
	finalized bool
	matchedID []int // card ids in match order
}

// NewMatchPairs builds a board from up to six cards
func NewMatchPairs(cards []*models.Flashcard, now time.Time) (*MatchPairs, error) {
	return newMatchPairs(cards, newRand(), now)
}

func newMatchPairs(cards []*models.Flashcard, rnd *rand.Rand, now time.Time) (*MatchPairs, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyCardSet
	}

	pool := make([]*models.Flashcard, len(cards))
	copy(pool, cards)
	shuffleCards(rnd, pool)
	if len(pool) > mpMaxPairs {
		pool = pool[:mpMaxPairs]
	}

	tiles := make([]Tile, 0, 2*len(pool))
	for pairID, card := range pool {
		tiles = append(tiles,
			Tile{ID: pairID * 2, PairID: pairID, CardID: card.ID, Text: card.Spanish, Spanish: true},
			Tile{ID: pairID*2 + 1, PairID: pairID, CardID: card.ID, Text: card.English},
		)
	}
	rnd.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return &MatchPairs{
		tiles:   tiles,
		pairs:   len(pool),
		started: now,
	}, nil
}

// Mode implements Session
func (s *MatchPairs) Mode() Mode { return ModeMatchPairs }

// Tiles returns the board. Callers render Text only for revealed or matched
// tiles.
func (s *MatchPairs) Tiles() []Tile {
	out := make([]Tile, len(s.tiles))
	copy(out, s.tiles)
	return out
}

// Revealed reports whether the tile is currently face up
func (s *MatchPairs) Revealed(tileID int) bool {
	for _, idx := range s.revealed {
		if s.tiles[idx].ID == tileID {
			return true
		}
	}
	return false
}

// Reveal turns a tile over. Clicking a tile that is already face up or
// matched, or clicking while a mismatched pair waits for Conceal, does not
// consume a turn.
func (s *MatchPairs) Reveal(tileID int, now time.Time) (TurnOutcome, error) {
	if s.Complete(now) {
		return TurnIgnored, ErrSessionComplete
	}
	if s.mismatch {
		return TurnIgnored, nil
	}

	idx := -1
	for i := range s.tiles {
		if s.tiles[i].ID == tileID {
			idx = i
			break
		}
	}
	if idx < 0 || s.tiles[idx].Matched || s.Revealed(tileID) {
		return TurnIgnored, nil
	}

	s.revealed = append(s.revealed, idx)
	if len(s.revealed) < 2 {
		return TurnRevealed, nil
	}

	first, second := &s.tiles[s.revealed[0]], &s.tiles[s.revealed[1]]
	if first.PairID == second.PairID {
		first.Matched = true
		second.Matched = true
		s.score++
		s.matchedID = append(s.matchedID, first.CardID)
		s.revealed = nil
		return TurnMatched, nil
	}

	s.mismatch = true
	return TurnMismatched, nil
}

// Conceal turns a mismatched pair face down again. The presentation layer
// calls it after its fixed reveal delay.
func (s *MatchPairs) Conceal() {
	s.revealed = nil
	s.mismatch = false
}

// Score returns the number of matched pairs
func (s *MatchPairs) Score() int { return s.score }

// Pairs returns the total number of pairs on the board
func (s *MatchPairs) Pairs() int { return s.pairs }

// Complete implements Session: the game ends when every pair is matched
func (s *MatchPairs) Complete(time.Time) bool {
	return s.score == s.pairs
}

// Finalize implements Session
func (s *MatchPairs) Finalize(now time.Time) (models.QuizSessionResult, error) {
	if s.finalized {
		return models.QuizSessionResult{}, ErrSessionFinalized
	}
	if !s.Complete(now) {
		return models.QuizSessionResult{}, ErrSessionNotComplete
	}
	s.finalized = true
	correct := make([]int, len(s.matchedID))
	copy(correct, s.matchedID)
	return models.QuizSessionResult{
		Score:          s.score,
		TotalQuestions: s.pairs,
		ElapsedSeconds: elapsedSeconds(s.started, now),
		CorrectCardIDs: correct,
	}, nil
}

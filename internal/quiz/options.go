package quiz

import (
	"math/rand"

	"github.com/example/espbot/pkg/models"
)

const optionsPerQuestion = 4

// generateOptions builds the answer options for a card: the correct English
// text plus up to three distractors, preferring cards from the same category
// and falling back to the rest of the pool. Options are unique; a small pool
// simply yields fewer options. The returned slice is shuffled.
func generateOptions(rnd *rand.Rand, card *models.Flashcard, pool []*models.Flashcard) []string {
	options := []string{card.English}
	seen := map[string]bool{card.English: true}

	var sameCategory, others []*models.Flashcard
	for _, c := range pool {
		if c.ID == card.ID || seen[c.English] {
			continue
		}
		if c.Category == card.Category {
			sameCategory = append(sameCategory, c)
		} else {
			others = append(others, c)
		}
	}

	shuffleCards(rnd, sameCategory)
	shuffleCards(rnd, others)

	for _, c := range append(sameCategory, others...) {
		if len(options) == optionsPerQuestion {
			break
		}
		if seen[c.English] {
			continue
		}
		seen[c.English] = true
		options = append(options, c.English)
	}

	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// randomOptions is the same without the category preference, used by the time
// challenge: three random distractors from the whole pool.
func randomOptions(rnd *rand.Rand, card *models.Flashcard, pool []*models.Flashcard) []string {
	options := []string{card.English}
	seen := map[string]bool{card.English: true}

	candidates := make([]*models.Flashcard, 0, len(pool))
	for _, c := range pool {
		if c.ID != card.ID && !seen[c.English] {
			candidates = append(candidates, c)
		}
	}
	shuffleCards(rnd, candidates)

	for _, c := range candidates {
		if len(options) == optionsPerQuestion {
			break
		}
		if seen[c.English] {
			continue
		}
		seen[c.English] = true
		options = append(options, c.English)
	}

	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

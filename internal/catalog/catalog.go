package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/espbot/pkg/models"
)

// Catalog is the static set of flashcards for the process lifetime. It is
// built once at startup and read-only afterwards; only review application
// mutates the level/streak/review fields of individual cards.
type Catalog struct {
	cards []*models.Flashcard
	byID  map[int]*models.Flashcard
}

// New builds the catalog from the built-in vocabulary. Every card starts due
// at the given time.
func New(now time.Time) *Catalog {
	c := &Catalog{byID: make(map[int]*models.Flashcard)}
	for i := range seedCards {
		card := seedCards[i]
		card.NextReview = now
		c.add(&card)
	}
	return c
}

func (c *Catalog) add(card *models.Flashcard) {
	c.cards = append(c.cards, card)
	c.byID[card.ID] = card
}

// Merge adds imported cards to the catalog. It is only valid during startup,
// before the catalog is handed to the rest of the application. Cards with a
// duplicate ID are rejected.
func (c *Catalog) Merge(cards []models.Flashcard, now time.Time) error {
	for i := range cards {
		card := cards[i]
		if _, exists := c.byID[card.ID]; exists {
			return fmt.Errorf("duplicate card id %d", card.ID)
		}
		if card.NextReview.IsZero() {
			card.NextReview = now
		}
		c.add(&card)
	}
	return nil
}

// NextID returns an ID not yet used by any card
func (c *Catalog) NextID() int {
	max := 0
	for id := range c.byID {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// All returns every card in catalog order
func (c *Catalog) All() []*models.Flashcard {
	out := make([]*models.Flashcard, len(c.cards))
	copy(out, c.cards)
	return out
}

// ByCategory returns the cards of one category, in catalog order
func (c *Catalog) ByCategory(category string) []*models.Flashcard {
	var out []*models.Flashcard
	for _, card := range c.cards {
		if card.Category == category {
			out = append(out, card)
		}
	}
	return out
}

// ByID returns a single card
func (c *Catalog) ByID(id int) (*models.Flashcard, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Categories returns the distinct category names, sorted
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, card := range c.cards {
		if !seen[card.Category] {
			seen[card.Category] = true
			out = append(out, card.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of cards
func (c *Catalog) Len() int {
	return len(c.cards)
}

// Package deck builds the ordered deck from the card catalog and implements
// the draw engine.
package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/arcanaland/diviner/internal/card"
	"github.com/arcanaland/diviner/internal/catalog"
)

// ErrInvalidDraw is returned for out-of-range draw parameters.
var ErrInvalidDraw = errors.New("invalid draw request")

// Deck represents a tarot deck: the catalog's cards in a fixed order.
type Deck struct {
	ID    string
	Name  string
	cards []*card.Card
}

// New builds a deck from the catalog. The deck shares the catalog's card
// values and is likewise immutable.
func New(cat *catalog.Catalog) *Deck {
	return &Deck{
		ID:    cat.DeckID,
		Name:  cat.DeckName,
		cards: cat.Cards(),
	}
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}

// NewRand returns a pseudo-random source seeded with the given seed, for
// reproducible draws.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTimeRand returns a pseudo-random source seeded from the clock.
func NewTimeRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Draw samples count distinct cards from the deck without replacement and
// assigns each an orientation: reversed with probability reversalProb,
// upright otherwise. Both the sampling and the orientation coin use rng, so
// two calls with identically seeded sources produce identical sequences.
func (d *Deck) Draw(count int, reversalProb float64, rng *rand.Rand) ([]card.Drawn, error) {
	if count <= 0 || count > len(d.cards) {
		return nil, fmt.Errorf("%w: count %d not in 1..%d", ErrInvalidDraw, count, len(d.cards))
	}
	if reversalProb < 0 || reversalProb > 1 {
		return nil, fmt.Errorf("%w: reversal probability %v not in [0,1]", ErrInvalidDraw, reversalProb)
	}

	// Prefix of a full permutation: uniform over ordered count-subsets.
	perm := rng.Perm(len(d.cards))

	drawn := make([]card.Drawn, count)
	for i := 0; i < count; i++ {
		orientation := card.Upright
		if rng.Float64() < reversalProb {
			orientation = card.Reversed
		}
		drawn[i] = card.Drawn{
			Card:        d.cards[perm[i]],
			Orientation: orientation,
		}
	}

	return drawn, nil
}

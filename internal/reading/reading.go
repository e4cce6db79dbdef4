// Package reading assembles drawn cards into spread readings.
package reading

import (
	"math/rand"
	"time"

	"github.com/arcanaland/diviner/internal/card"
	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/deck"
	"github.com/arcanaland/diviner/internal/spread"
)

// DefaultReversalProbability matches the original deck convention of a
// coin-flip per card.
const DefaultReversalProbability = 0.5

// Options control a single assembly.
type Options struct {
	// ReversalProb is the per-card probability of a reversed orientation.
	ReversalProb float64
	// AllowReversed disables reversals entirely when false, regardless of
	// ReversalProb.
	AllowReversed bool
	// Seed, when non-nil, makes the draw reproducible.
	Seed *int64
}

// DefaultOptions returns the standard draw options.
func DefaultOptions() Options {
	return Options{ReversalProb: DefaultReversalProbability, AllowReversed: true}
}

// Entry pairs one spread position with its drawn card.
type Entry struct {
	Position spread.Position
	Card     *card.Card
	// Orientation of the drawn card.
	Orientation card.Orientation
	// Meaning is the keyword fallback text for the orientation.
	Meaning string
	// Interpretation is optional prose attached after assembly.
	Interpretation string
}

// Title returns the entry's card name with orientation suffix.
func (e *Entry) Title() string {
	return card.Drawn{Card: e.Card, Orientation: e.Orientation}.Title()
}

// Reading is the result of applying a spread to a set of drawn cards.
// Entries are ordered by spread position. A reading is immutable once
// assembled except for the interpretation annotations.
type Reading struct {
	Spread    *spread.Definition
	Entries   []Entry
	Summary   string
	Seed      *int64
	CreatedAt time.Time
}

// Assemble resolves the named spread, draws as many cards as it has
// positions, and pairs positions with cards in order. Spread and draw
// failures propagate unchanged.
func Assemble(cat *catalog.Catalog, spreadName string, opts Options) (*Reading, error) {
	def, err := spread.Get(spreadName)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		rng = deck.NewRand(*opts.Seed)
	} else {
		rng = deck.NewTimeRand()
	}

	prob := opts.ReversalProb
	if !opts.AllowReversed {
		prob = 0
	}

	drawn, err := deck.New(cat).Draw(def.Size(), prob, rng)
	if err != nil {
		return nil, err
	}

	r := &Reading{
		Spread:    def,
		Entries:   make([]Entry, len(drawn)),
		Seed:      opts.Seed,
		CreatedAt: time.Now(),
	}
	for i, dc := range drawn {
		r.Entries[i] = Entry{
			Position:    def.Positions[i],
			Card:        dc.Card,
			Orientation: dc.Orientation,
			Meaning:     dc.Card.Meaning(dc.Orientation),
		}
	}

	return r, nil
}

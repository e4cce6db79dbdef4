// Package catalog loads the bundled card catalog. The catalog is decoded
// once at process start and is immutable afterwards, so it is safe to share
// across goroutines without synchronization.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/diviner/internal/card"
)

//go:embed cards.toml
var cardsTOML []byte

// ErrInvalidCatalog is returned when the bundled metadata is missing or
// malformed. Callers should treat it as fatal at startup.
var ErrInvalidCatalog = errors.New("invalid card catalog")

// Catalog holds the full deck of cards, in catalog order, with ID lookup.
type Catalog struct {
	DeckID   string
	DeckName string

	cards []*card.Card
	byID  map[string]*card.Card
}

type catalogFile struct {
	Deck  deckSection   `toml:"deck"`
	Cards []cardSection `toml:"cards"`
}

type deckSection struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	SchemaVersion string `toml:"schema_version"`
}

type cardSection struct {
	ID       string   `toml:"id"`
	Name     string   `toml:"name"`
	Image    string   `toml:"image"`
	Upright  []string `toml:"upright"`
	Reversed []string `toml:"reversed"`
}

// Load decodes the embedded cards.toml into a Catalog.
func Load() (*Catalog, error) {
	return parse(cardsTOML)
}

func parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards defined", ErrInvalidCatalog)
	}

	cat := &Catalog{
		DeckID:   file.Deck.ID,
		DeckName: file.Deck.Name,
		cards:    make([]*card.Card, 0, len(file.Cards)),
		byID:     make(map[string]*card.Card, len(file.Cards)),
	}

	for _, cs := range file.Cards {
		if cs.ID == "" || cs.Name == "" || cs.Image == "" {
			return nil, fmt.Errorf("%w: card %q missing required field", ErrInvalidCatalog, cs.ID+cs.Name)
		}
		if len(cs.Upright) == 0 || len(cs.Reversed) == 0 {
			return nil, fmt.Errorf("%w: card %q missing meanings", ErrInvalidCatalog, cs.ID)
		}
		if _, dup := cat.byID[cs.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate card id %q", ErrInvalidCatalog, cs.ID)
		}

		c := &card.Card{
			ID:       cs.ID,
			Name:     cs.Name,
			Image:    cs.Image,
			Upright:  cs.Upright,
			Reversed: cs.Reversed,
		}
		if err := classify(c); err != nil {
			return nil, err
		}

		cat.cards = append(cat.cards, c)
		cat.byID[c.ID] = c
	}

	return cat, nil
}

// classify fills Type, Number, Suit and Rank from the canonical ID.
func classify(c *card.Card) error {
	parts := strings.Split(c.ID, ".")
	switch {
	case parts[0] == "major_arcana" && len(parts) == 2:
		c.Type = "major_arcana"
		c.Number = parts[1]
	case parts[0] == "minor_arcana" && len(parts) == 3:
		c.Type = "minor_arcana"
		c.Suit = parts[1]
		c.Rank = parts[2]
	default:
		return fmt.Errorf("%w: invalid card id format %q", ErrInvalidCatalog, c.ID)
	}
	return nil
}

// Cards returns all cards in catalog order. The returned slice must not be
// mutated.
func (c *Catalog) Cards() []*card.Card {
	return c.cards
}

// Size returns the number of cards in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}

// Get returns the card with the given canonical ID.
func (c *Catalog) Get(id string) (*card.Card, error) {
	cd, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("card not found: %s", id)
	}
	return cd, nil
}

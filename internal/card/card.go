package card

import "strings"

// Orientation is the upright or reversed state of a drawn card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// Card represents a tarot card
type Card struct {
	ID       string   // Canonical ID (e.g., major_arcana.00, minor_arcana.wands.ace)
	Name     string   // Display name (e.g., "The Fool", "Ace of Wands")
	Type     string   // major_arcana or minor_arcana
	Number   string   // For major arcana (00-21)
	Suit     string   // For minor arcana (wands, cups, swords, pentacles)
	Rank     string   // For minor arcana (ace, two, ..., king)
	Image    string   // Image filename (e.g., RWS_Tarot_00_Fool.jpg)
	Upright  []string // Upright meaning keywords
	Reversed []string // Reversed meaning keywords
}

// Keywords returns the meaning keywords for the given orientation.
func (c *Card) Keywords(o Orientation) []string {
	if o == Reversed {
		return c.Reversed
	}
	return c.Upright
}

// Meaning renders the keyword fallback text used when no interpretation
// is available, e.g. "Keywords (upright): new beginnings, innocence".
func (c *Card) Meaning(o Orientation) string {
	kws := c.Keywords(o)
	if len(kws) == 0 {
		return ""
	}
	return "Keywords (" + string(o) + "): " + strings.Join(kws, ", ")
}

// Drawn is a card together with the orientation chosen for one draw.
type Drawn struct {
	Card        *Card
	Orientation Orientation
}

// Title returns the card name suffixed with "(Reversed)" when reversed.
func (d Drawn) Title() string {
	if d.Orientation == Reversed {
		return d.Card.Name + " (Reversed)"
	}
	return d.Card.Name
}

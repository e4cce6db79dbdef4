package server

import (
	"github.com/arcanaland/diviner/internal/reading"
)

// cardView carries one placed card for HTML rendering.
type cardView struct {
	Index       int
	Title       string
	Orientation string
	Label       string
	Represents  string
	Text        string
	ImageURL    string
	Left, Top   int
	Reversed    bool
}

// readingView is the template model for a rendered reading.
type readingView struct {
	SpreadName  string
	BoardWidth  int
	BoardHeight int
	CardWidth   int
	CardHeight  int
	Cards       []cardView
	Summary     string
}

// newReadingView lays the reading out on the board grid. CSS top grows
// downward while position y grows upward, so y is inverted against maxY.
func newReadingView(rd *reading.Reading) readingView {
	minX, maxX := rd.Spread.Positions[0].X, rd.Spread.Positions[0].X
	minY, maxY := rd.Spread.Positions[0].Y, rd.Spread.Positions[0].Y
	for _, p := range rd.Spread.Positions {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	view := readingView{
		SpreadName:  rd.Spread.Name,
		BoardWidth:  (maxX - minX + 1) * stepX,
		BoardHeight: (maxY - minY + 1) * stepY,
		CardWidth:   cardWidth,
		CardHeight:  cardHeight,
		Summary:     rd.Summary,
	}

	for _, e := range rd.Entries {
		text := e.Interpretation
		if text == "" {
			text = e.Meaning
		}
		view.Cards = append(view.Cards, cardView{
			Index:       e.Position.Index,
			Title:       e.Title(),
			Orientation: string(e.Orientation),
			Label:       e.Position.Label,
			Represents:  e.Position.Represents,
			Text:        text,
			ImageURL:    "/cards/" + e.Card.Image,
			Left:        (e.Position.X - minX) * stepX,
			Top:         (maxY - e.Position.Y) * stepY,
			Reversed:    e.Orientation == "reversed",
		})
	}

	return view
}

// cardPayload is the JSON shape for one reading entry.
type cardPayload struct {
	Index          int      `json:"index"`
	Position       string   `json:"position"`
	Represents     string   `json:"represents,omitempty"`
	CardID         string   `json:"card_id"`
	Name           string   `json:"name"`
	Orientation    string   `json:"orientation"`
	Image          string   `json:"image"`
	Keywords       []string `json:"keywords"`
	Interpretation string   `json:"interpretation,omitempty"`
}

// readingPayload is the JSON shape for a full reading.
type readingPayload struct {
	Spread  string        `json:"spread"`
	Name    string        `json:"spread_name"`
	Seed    *int64        `json:"seed,omitempty"`
	Cards   []cardPayload `json:"cards"`
	Summary string        `json:"summary,omitempty"`
}

func newReadingPayload(rd *reading.Reading) readingPayload {
	payload := readingPayload{
		Spread: rd.Spread.Key,
		Name:   rd.Spread.Name,
		Seed:   rd.Seed,
	}
	for _, e := range rd.Entries {
		payload.Cards = append(payload.Cards, cardPayload{
			Index:          e.Position.Index,
			Position:       e.Position.Label,
			Represents:     e.Position.Represents,
			CardID:         e.Card.ID,
			Name:           e.Card.Name,
			Orientation:    string(e.Orientation),
			Image:          e.Card.Image,
			Keywords:       e.Card.Keywords(e.Orientation),
			Interpretation: e.Interpretation,
		})
	}
	return payload
}

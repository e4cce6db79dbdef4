// Package spread holds the registry of named spread layouts. The registry is
// fixed at build time.
package spread

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSpread is returned when a spread name is not registered.
var ErrUnknownSpread = errors.New("unknown spread")

// Position is one slot in a spread layout. Coordinates place the card on a
// board grid; y grows upward.
type Position struct {
	Index      int
	Label      string
	Represents string
	X, Y       int
}

// Definition is a named, ordered spread layout.
type Definition struct {
	Key       string
	Name      string
	Positions []Position
}

// Size returns the number of cards the spread requires.
func (d *Definition) Size() int {
	return len(d.Positions)
}

// Labels returns the position labels in order.
func (d *Definition) Labels() []string {
	labels := make([]string, len(d.Positions))
	for i, p := range d.Positions {
		labels[i] = p.Label
	}
	return labels
}

var registry = map[string]*Definition{
	"3card": {
		Key:  "3card",
		Name: "Three-Card Spread",
		Positions: []Position{
			{Index: 1, Label: "Past", Represents: "Influences that shaped the situation", X: 0, Y: 0},
			{Index: 2, Label: "Present", Represents: "The situation as it stands now", X: 1, Y: 0},
			{Index: 3, Label: "Future", Represents: "Where current momentum leads", X: 2, Y: 0},
		},
	},
	"celticcross": {
		Key:  "celticcross",
		Name: "Celtic Cross",
		Positions: []Position{
			{Index: 1, Label: "Present", Represents: "The heart of the matter", X: 1, Y: 1},
			{Index: 2, Label: "Challenge", Represents: "What crosses or complicates the situation", X: 1, Y: 1},
			{Index: 3, Label: "Foundation", Represents: "Root causes beneath the situation", X: 1, Y: 0},
			{Index: 4, Label: "Past", Represents: "What is passing out of influence", X: 0, Y: 1},
			{Index: 5, Label: "Crown", Represents: "Conscious aims and ideals", X: 1, Y: 2},
			{Index: 6, Label: "Future", Represents: "What is coming into influence", X: 2, Y: 1},
			{Index: 7, Label: "Self", Represents: "The querent's attitude and resources", X: 3, Y: 0},
			{Index: 8, Label: "Environment", Represents: "Outside influences and other people", X: 3, Y: 1},
			{Index: 9, Label: "Hopes and Fears", Represents: "What is hoped for or dreaded", X: 3, Y: 2},
			{Index: 10, Label: "Outcome", Represents: "The likely resolution", X: 3, Y: 3},
		},
	},
}

// Get returns the spread definition registered under name.
func Get(name string) (*Definition, error) {
	def, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpread, name)
	}
	return def, nil
}

// Keys returns the registered spread names, sorted.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package domain

import "fmt"

// SpreadKind identifies one of the supported spread layouts. The set is
// closed; catalog lookups for anything else are a programming error.
type SpreadKind string

const (
	SpreadOneCard     SpreadKind = "one_card"
	SpreadThreeCard   SpreadKind = "three_card"
	SpreadLove        SpreadKind = "love"
	SpreadCareer      SpreadKind = "career"
	SpreadCelticCross SpreadKind = "celtic_cross"
)

// SpreadDefinition describes a spread's layout and price. The number of
// positions determines how many cards are drawn.
type SpreadDefinition struct {
	DisplayName string
	Positions   []string
	Cost        int
}

var spreadDefinitions = map[SpreadKind]SpreadDefinition{
	SpreadOneCard: {
		DisplayName: "Daily Insight",
		Positions:   []string{"Insight"},
		Cost:        0,
	},
	SpreadThreeCard: {
		DisplayName: "Past, Present, Future",
		Positions:   []string{"Past", "Present", "Future"},
		Cost:        1,
	},
	SpreadLove: {
		DisplayName: "Relationship Spread",
		Positions:   []string{"You", "Them", "Dynamic", "Outcome"},
		Cost:        2,
	},
	SpreadCareer: {
		DisplayName: "Career Path",
		Positions:   []string{"Current Situation", "Obstacles", "Hidden Influences", "Advice", "Outcome"},
		Cost:        2,
	},
	SpreadCelticCross: {
		DisplayName: "Celtic Cross",
		Positions:   []string{"Present", "Challenge", "Past", "Future", "Above", "Below", "Advice", "External", "Hopes/Fears", "Outcome"},
		Cost:        5,
	},
}

// spreadOrder is the stable listing order for catalog endpoints.
var spreadOrder = []SpreadKind{
	SpreadOneCard,
	SpreadThreeCard,
	SpreadLove,
	SpreadCareer,
	SpreadCelticCross,
}

// SpreadKinds returns all supported kinds in stable order.
func SpreadKinds() []SpreadKind {
	out := make([]SpreadKind, len(spreadOrder))
	copy(out, spreadOrder)
	return out
}

// Definition returns the catalog entry for kind. The kind set is closed and
// known at compile time, so an unknown kind panics rather than returning an
// error.
func Definition(kind SpreadKind) SpreadDefinition {
	def, ok := spreadDefinitions[kind]
	if !ok {
		panic(fmt.Sprintf("domain: no spread definition for kind %q", kind))
	}
	return def
}

// ParseSpreadKind validates untrusted input (e.g. an HTTP request body)
// before it is allowed near Definition.
func ParseSpreadKind(raw string) (SpreadKind, error) {
	kind := SpreadKind(raw)
	if _, ok := spreadDefinitions[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSpread, raw)
	}
	return kind, nil
}

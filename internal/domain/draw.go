package domain

import "fmt"

// Shuffle returns a uniformly random permutation of deck using Fisher-Yates.
// The input is never mutated; draws always operate on a copy of the shared
// catalog.
func Shuffle(deck []Card, rng RNG) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Draw shuffles a fresh copy of deck and takes the first count cards, binding
// each to its position label by index. Drawing without replacement from the
// shuffled copy guarantees no duplicates. Missing position labels fall back
// to a synthetic "Position N".
func Draw(deck []Card, count int, positions []string, rng RNG) ([]DrawnCard, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if count > len(deck) {
		return nil, ErrCountExceedsDeck
	}

	shuffled := Shuffle(deck, rng)

	drawn := make([]DrawnCard, count)
	for i := range count {
		position := fmt.Sprintf("Position %d", i+1)
		if i < len(positions) && positions[i] != "" {
			position = positions[i]
		}
		drawn[i] = DrawnCard{
			Card: shuffled[i],
			// The Mara Baraha method has no reversals. A future ruleset
			// reintroducing them only needs to change this assignment.
			IsReversed: false,
			Position:   position,
		}
	}

	return drawn, nil
}

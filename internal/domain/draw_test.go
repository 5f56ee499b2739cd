package domain_test

import (
	"math/rand/v2"
	"testing"

	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
)

// deterministicRNG returns values from a pre-set sequence.
type deterministicRNG struct {
	values []int
	idx    int
}

func (r *deterministicRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

// realRNG wraps math/rand/v2 for tests that need genuine randomness.
type realRNG struct{}

func (realRNG) Intn(n int) int { return rand.IntN(n) }

func testImages() domain.ImageSource {
	return domain.ImageSource{Mode: domain.ImageModeDefault, BaseURL: "https://cards.example"}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	deck := domain.BuildDeck(testImages())
	before := make([]domain.Card, len(deck))
	copy(before, deck)

	domain.Shuffle(deck, realRNG{})

	for i := range deck {
		if deck[i].ID != before[i].ID {
			t.Fatalf("input deck mutated at index %d: %s != %s", i, deck[i].ID, before[i].ID)
		}
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	deck := domain.BuildDeck(testImages())
	shuffled := domain.Shuffle(deck, realRNG{})

	if len(shuffled) != len(deck) {
		t.Fatalf("expected %d cards, got %d", len(deck), len(shuffled))
	}
	seen := make(map[string]bool, len(shuffled))
	for _, c := range shuffled {
		if seen[c.ID] {
			t.Errorf("duplicate card after shuffle: %s", c.ID)
		}
		seen[c.ID] = true
	}
}

// TestShuffle_UniformDistribution checks that over many trials each card
// lands at each position with roughly uniform frequency. The bound is loose
// (about five standard deviations) to keep the test stable.
func TestShuffle_UniformDistribution(t *testing.T) {
	const (
		deckSize = 10
		trials   = 20000
	)

	deck := domain.BuildDeck(testImages())[:deckSize]

	counts := make([][]int, deckSize)
	for i := range counts {
		counts[i] = make([]int, deckSize)
	}

	for range trials {
		shuffled := domain.Shuffle(deck, realRNG{})
		for pos, c := range shuffled {
			counts[c.Number][pos]++
		}
	}

	expected := trials / deckSize
	tolerance := expected / 10
	for card := range deckSize {
		for pos := range deckSize {
			got := counts[card][pos]
			if got < expected-tolerance || got > expected+tolerance {
				t.Errorf("card %d at position %d: count %d outside [%d, %d]",
					card, pos, got, expected-tolerance, expected+tolerance)
			}
		}
	}
}

func TestDraw_UniqueCardsForEveryCount(t *testing.T) {
	deck := domain.BuildDeck(testImages())

	for n := 1; n <= len(deck); n++ {
		drawn, err := domain.Draw(deck, n, nil, realRNG{})
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(drawn) != n {
			t.Fatalf("n=%d: expected %d cards, got %d", n, n, len(drawn))
		}
		seen := make(map[string]bool, n)
		for _, dc := range drawn {
			if seen[dc.Card.ID] {
				t.Fatalf("n=%d: duplicate card %s", n, dc.Card.ID)
			}
			seen[dc.Card.ID] = true
		}
	}
}

func TestDraw_PositionLabels(t *testing.T) {
	deck := domain.BuildDeck(testImages())
	rng := &deterministicRNG{values: []int{0}}

	drawn, err := domain.Draw(deck, 3, []string{"Past", "Present", "Future"}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Past", "Present", "Future"}
	for i, dc := range drawn {
		if dc.Position != want[i] {
			t.Errorf("card %d: expected position %q, got %q", i, want[i], dc.Position)
		}
	}
}

func TestDraw_MissingLabelsFallBack(t *testing.T) {
	deck := domain.BuildDeck(testImages())
	rng := &deterministicRNG{values: []int{0}}

	drawn, err := domain.Draw(deck, 3, []string{"Only One"}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Only One", "Position 2", "Position 3"}
	for i, dc := range drawn {
		if dc.Position != want[i] {
			t.Errorf("card %d: expected position %q, got %q", i, want[i], dc.Position)
		}
	}
}

func TestDraw_NeverReversed(t *testing.T) {
	deck := domain.BuildDeck(testImages())

	drawn, err := domain.Draw(deck, 10, nil, realRNG{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, dc := range drawn {
		if dc.IsReversed {
			t.Errorf("card %d drawn reversed; current ruleset reads everything upright", i)
		}
	}
}

func TestDraw_InvalidCount(t *testing.T) {
	deck := domain.BuildDeck(testImages())
	rng := &deterministicRNG{values: []int{0}}

	for _, n := range []int{0, -1} {
		if _, err := domain.Draw(deck, n, nil, rng); err != domain.ErrInvalidCount {
			t.Errorf("n=%d: expected ErrInvalidCount, got %v", n, err)
		}
	}

	if _, err := domain.Draw(deck, len(deck)+1, nil, rng); err != domain.ErrCountExceedsDeck {
		t.Errorf("expected ErrCountExceedsDeck, got %v", err)
	}
}

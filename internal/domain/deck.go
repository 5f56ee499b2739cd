package domain

import (
	"fmt"
	"strings"
)

// ImageMode selects which card artwork naming convention is in use.
type ImageMode string

const (
	// ImageModeDefault points at the classic Rider-Waite scans:
	// ar00.jpg for Major Arcana, cu01.jpg etc. for Minor.
	ImageModeDefault ImageMode = "default"
	// ImageModeCustom points at the Mara Baraha deck:
	// 00-TheFool.png?v=2 for Major, Cups01.png?v=2 for Minor.
	ImageModeCustom ImageMode = "custom"
)

// ImageSource is static configuration for deriving card image URLs. A missing
// or unreachable image is never an error; callers render a textual card face
// instead.
type ImageSource struct {
	Mode    ImageMode
	BaseURL string
}

var majorNames = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor",
	"The Hierophant", "The Lovers", "The Chariot", "Strength", "The Hermit",
	"Wheel of Fortune", "Justice", "The Hanged Man", "Death", "Temperance",
	"The Devil", "The Tower", "The Star", "The Moon", "The Sun",
	"Judgement", "The World",
}

var minorRanks = []string{
	"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
}

var minorSuits = []Suit{SuitWands, SuitCups, SuitSwords, SuitPentacles}

var defaultSuitPrefixes = map[Suit]string{
	SuitWands:     "wa",
	SuitCups:      "cu",
	SuitSwords:    "sw",
	SuitPentacles: "pe",
}

// BuildDeck constructs the full 78-card catalog: 22 Major Arcana numbered
// 0-21 plus 14 ranked cards per suit numbered 1-14. Content is deterministic;
// order is the catalog order, not a shuffle. The Mara Baraha method reads
// every card upright, so the reversed meaning mirrors the upright one.
func BuildDeck(images ImageSource) []Card {
	deck := make([]Card, 0, 78)

	for i, name := range majorNames {
		deck = append(deck, Card{
			ID:              fmt.Sprintf("major-%d", i),
			Name:            name,
			ShortName:       name,
			Suit:            SuitNone,
			Number:          i,
			Arcana:          ArcanaMajor,
			MeaningUpright:  "Major life lesson, karma, spiritual path.",
			MeaningReversed: "Major life lesson, karma, spiritual path.",
			Description:     fmt.Sprintf("The %s represents a significant archetype in the journey of life.", name),
			ImageRef:        images.majorRef(i, name),
		})
	}

	for _, suit := range minorSuits {
		for i, rank := range minorRanks {
			number := i + 1
			deck = append(deck, Card{
				ID:              fmt.Sprintf("minor-%s-%d", suit, number),
				Name:            fmt.Sprintf("%s of %s", rank, suit),
				ShortName:       fmt.Sprintf("%s %s", rank, suit),
				Suit:            suit,
				Number:          number,
				Arcana:          ArcanaMinor,
				MeaningUpright:  fmt.Sprintf("Energy of %s in the form of %s.", suit, rank),
				MeaningReversed: fmt.Sprintf("Energy of %s in the form of %s.", suit, rank),
				Description:     fmt.Sprintf("The %s of %s pertains to everyday life aspects associated with %s.", rank, suit, suit),
				ImageRef:        images.minorRef(suit, number),
			})
		}
	}

	return deck
}

// CardBackImage is the shared face-down artwork for the configured source.
func CardBackImage(images ImageSource) string {
	if images.Mode == ImageModeCustom {
		return images.BaseURL + "/CardsBack.png?v=2"
	}
	return "https://i.imgur.com/P7qJjqM.png"
}

func (s ImageSource) majorRef(number int, name string) string {
	if s.Mode == ImageModeCustom {
		return fmt.Sprintf("%s/%02d-%s.png?v=2", s.BaseURL, number, strings.ReplaceAll(name, " ", ""))
	}
	return fmt.Sprintf("%s/ar%02d.jpg", s.BaseURL, number)
}

func (s ImageSource) minorRef(suit Suit, number int) string {
	if s.Mode == ImageModeCustom {
		return fmt.Sprintf("%s/%s%02d.png?v=2", s.BaseURL, suit, number)
	}
	return fmt.Sprintf("%s/%s%02d.jpg", s.BaseURL, defaultSuitPrefixes[suit], number)
}

package domain

import "time"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Arcana distinguishes the 22 Major Arcana from the 56 suited Minor Arcana.
type Arcana string

const (
	ArcanaMajor Arcana = "Major"
	ArcanaMinor Arcana = "Minor"
)

// Suit is the Minor Arcana suit. Major Arcana cards carry SuitNone.
type Suit string

const (
	SuitWands     Suit = "Wands"
	SuitCups      Suit = "Cups"
	SuitSwords    Suit = "Swords"
	SuitPentacles Suit = "Pentacles"
	SuitNone      Suit = "None"
)

// Card is a single entry in the 78-card catalog. Cards are built once at
// startup and shared read-only across all draws.
type Card struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ShortName       string `json:"shortName"`
	Suit            Suit   `json:"suit"`
	Number          int    `json:"number"`
	Arcana          Arcana `json:"arcana"`
	MeaningUpright  string `json:"meaningUpright"`
	MeaningReversed string `json:"meaningReversed"`
	Description     string `json:"description"`
	ImageRef        string `json:"image,omitempty"`
}

// DrawnCard binds a card to its place in a spread.
type DrawnCard struct {
	Card       Card   `json:"card"`
	IsReversed bool   `json:"isReversed"`
	Position   string `json:"position"`
}

// Reading is a completed, durable record of one session. Immutable once
// created; appended to history, never edited.
type Reading struct {
	ID             string      `json:"id"`
	CreatedAt      time.Time   `json:"createdAt"`
	SpreadKind     SpreadKind  `json:"spreadKind"`
	Question       string      `json:"question"`
	Cards          []DrawnCard `json:"cards"`
	Interpretation string      `json:"interpretation"`
}

// DailyReading is the date-scoped single-card cache. At most one exists per
// calendar day; a mismatched date means today's card has not been drawn yet.
type DailyReading struct {
	Date           string    `json:"date"`
	Card           DrawnCard `json:"card"`
	Interpretation string    `json:"interpretation"`
}

// UserState is the root persisted aggregate for one installation.
type UserState struct {
	Credits      int           `json:"credits"`
	Readings     []Reading     `json:"readings"`
	DailyReading *DailyReading `json:"dailyReading"`
}

const (
	// StartingCredits is the free allotment for a fresh installation.
	StartingCredits = 3
	// ResetCreditsAmount is the balance restored by the demo top-up.
	ResetCreditsAmount = 5
)

// DefaultUserState is the fallback when no persisted state exists or the
// persisted blob cannot be parsed.
func DefaultUserState() UserState {
	return UserState{
		Credits:  StartingCredits,
		Readings: []Reading{},
	}
}

// DateKey formats t as the calendar-day key used by DailyReading.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

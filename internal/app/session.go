package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
	"github.com/roseyAI/mara-baraha-app2026/internal/ports"
)

// SessionState names a step in the reading flow.
type SessionState string

const (
	StateSelectingSpread   SessionState = "selecting_spread"
	StateCapturingQuestion SessionState = "capturing_question"
	StateShuffling         SessionState = "shuffling"
	StateRevealing         SessionState = "revealing"
	StateResult            SessionState = "result"
)

// RevealOutcome reports what a reveal tap actually did. Taps on revealed
// cards open the zoom overlay instead of re-revealing; out-of-order taps do
// nothing at all.
type RevealOutcome string

const (
	RevealAccepted  RevealOutcome = "accepted"
	RevealCompleted RevealOutcome = "completed"
	RevealZoomed    RevealOutcome = "zoomed"
	RevealIgnored   RevealOutcome = "ignored"
)

// Session drives a single reading from spread selection through question
// capture, draw, sequential reveal, interpretation and result. Events are
// processed one at a time; the interpretation call is the only long-latency
// operation and a busy guard keeps it from being issued twice.
type Session struct {
	ID string

	mu             sync.Mutex
	state          SessionState
	spread         domain.SpreadKind
	hasSpread      bool
	question       string
	cards          []domain.DrawnCard
	revealed       int
	zoomIndex      int
	interpreting   bool
	interpretation string
	shuffleUntil   time.Time

	deck         []domain.Card
	users        *UserStore
	interpreter  ports.Interpreter
	rng          domain.RNG
	now          func() time.Time
	shuffleDelay time.Duration
	logger       *slog.Logger
}

// SessionSnapshot is a consistent view of a session for rendering.
type SessionSnapshot struct {
	ID             string
	State          SessionState
	Spread         domain.SpreadKind
	HasSpread      bool
	Question       string
	Cards          []domain.DrawnCard
	Revealed       int
	ZoomIndex      int
	Interpreting   bool
	Interpretation string
}

// SelectSpread moves SelectingSpread to CapturingQuestion. A kind costing
// more than the current balance is rejected here as well, not just at submit
// time, so a stale UI cannot start an unaffordable flow.
func (s *Session) SelectSpread(kind domain.SpreadKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()

	if s.state != StateSelectingSpread {
		return fmt.Errorf("select spread: %w", domain.ErrInvalidTransition)
	}
	if domain.Definition(kind).Cost > s.users.Credits() {
		return domain.ErrInsufficientCredits
	}

	s.spread = kind
	s.hasSpread = true
	s.state = StateCapturingQuestion
	return nil
}

// SubmitQuestion deducts the spread's cost and draws the cards. The balance
// is re-checked atomically here: a failed deduction leaves the session in
// CapturingQuestion with nothing mutated. On success the session enters
// Shuffling, a purely cosmetic pause before the cards can be revealed.
func (s *Session) SubmitQuestion(ctx context.Context, question string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()

	if s.state != StateCapturingQuestion {
		return fmt.Errorf("submit question: %w", domain.ErrInvalidTransition)
	}
	if question == "" {
		return domain.ErrEmptyQuestion
	}

	def := domain.Definition(s.spread)
	cards, err := domain.Draw(s.deck, len(def.Positions), def.Positions, s.rng)
	if err != nil {
		return fmt.Errorf("draw cards: %w", err)
	}

	if !s.users.Deduct(ctx, def.Cost) {
		return domain.ErrInsufficientCredits
	}

	s.question = question
	s.cards = cards
	s.revealed = 0
	s.state = StateShuffling
	s.shuffleUntil = s.now().Add(s.shuffleDelay)
	return nil
}

// Reveal handles a tap on the card at index. Cards reveal strictly in order:
// only the next unrevealed index is accepted, a tap on an already revealed
// card opens the zoom overlay, and anything else is a no-op. Revealing the
// last card triggers exactly one interpretation call and records the reading
// before the session reaches Result.
func (s *Session) Reveal(ctx context.Context, index int) (RevealOutcome, error) {
	s.mu.Lock()
	s.advanceLocked()

	if s.state != StateRevealing || s.interpreting {
		s.mu.Unlock()
		return RevealIgnored, fmt.Errorf("reveal: %w", domain.ErrInvalidTransition)
	}
	if index < 0 || index >= len(s.cards) {
		s.mu.Unlock()
		return RevealIgnored, nil
	}
	if index < s.revealed {
		s.zoomIndex = index
		s.mu.Unlock()
		return RevealZoomed, nil
	}
	if index > s.revealed {
		s.mu.Unlock()
		return RevealIgnored, nil
	}

	s.revealed++
	if s.revealed < len(s.cards) {
		s.mu.Unlock()
		return RevealAccepted, nil
	}

	// Last card revealed. Mark the session busy and release the lock for the
	// duration of the gateway call; the guard above rejects conflicting
	// events while it is outstanding.
	s.interpreting = true
	spread := s.spread
	question := s.question
	cards := make([]domain.DrawnCard, len(s.cards))
	copy(cards, s.cards)
	s.mu.Unlock()

	text := s.interpreter.Interpret(ctx, ports.InterpretInput{
		Spread:   domain.Definition(spread).DisplayName,
		Question: question,
		Cards:    toCardInputs(cards),
	})

	reading := domain.Reading{
		ID:             uuid.NewString(),
		CreatedAt:      s.now().UTC(),
		SpreadKind:     spread,
		Question:       question,
		Cards:          cards,
		Interpretation: text,
	}
	s.users.AppendReading(ctx, reading)
	s.logger.InfoContext(ctx, "reading recorded",
		"reading_id", reading.ID,
		"spread", spread,
		"cards", len(cards),
	)

	s.mu.Lock()
	s.interpretation = text
	s.interpreting = false
	s.state = StateResult
	s.mu.Unlock()
	return RevealCompleted, nil
}

// Zoom opens the card-detail overlay for a revealed card. Available from
// Revealing and Result; the underlying state is untouched.
func (s *Session) Zoom(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()

	if s.state != StateRevealing && s.state != StateResult {
		return fmt.Errorf("zoom: %w", domain.ErrInvalidTransition)
	}
	if index < 0 || index >= s.revealed {
		return fmt.Errorf("zoom: %w", domain.ErrInvalidTransition)
	}
	s.zoomIndex = index
	return nil
}

// CloseZoom dismisses the overlay, returning to whichever state it was
// opened from.
func (s *Session) CloseZoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoomIndex = -1
}

// NewReading clears the in-memory session and returns to spread selection.
// Persisted history is never touched.
func (s *Session) NewReading() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()

	if s.state != StateResult {
		return fmt.Errorf("new reading: %w", domain.ErrInvalidTransition)
	}
	s.spread = ""
	s.hasSpread = false
	s.question = ""
	s.cards = nil
	s.revealed = 0
	s.zoomIndex = -1
	s.interpretation = ""
	s.state = StateSelectingSpread
	return nil
}

// Snapshot returns a copy of the session suitable for rendering.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked()

	cards := make([]domain.DrawnCard, len(s.cards))
	copy(cards, s.cards)
	return SessionSnapshot{
		ID:             s.ID,
		State:          s.state,
		Spread:         s.spread,
		HasSpread:      s.hasSpread,
		Question:       s.question,
		Cards:          cards,
		Revealed:       s.revealed,
		ZoomIndex:      s.zoomIndex,
		Interpreting:   s.interpreting,
		Interpretation: s.interpretation,
	}
}

// advanceLocked performs the time-driven Shuffling -> Revealing transition.
// The pause is presentation pacing only; the cards were already drawn at
// submit time.
func (s *Session) advanceLocked() {
	if s.state == StateShuffling && !s.now().Before(s.shuffleUntil) {
		s.state = StateRevealing
	}
}

func toCardInputs(cards []domain.DrawnCard) []ports.CardInput {
	out := make([]ports.CardInput, len(cards))
	for i, c := range cards {
		out[i] = ports.CardInput{
			Position: c.Position,
			Name:     c.Card.Name,
			Reversed: c.IsReversed,
			Meaning:  c.Card.MeaningUpright,
		}
	}
	return out
}

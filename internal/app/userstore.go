package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
	"github.com/roseyAI/mara-baraha-app2026/internal/ports"
)

// UserStore owns the single process-wide UserState: the credit balance, the
// append-only reading history, and the cached daily card. Every mutation
// synchronously writes a full JSON snapshot through the StateStore before the
// mutation is considered done.
type UserStore struct {
	mu     sync.Mutex
	state  domain.UserState
	store  ports.StateStore
	logger *slog.Logger
}

// NewUserStore loads persisted state, substituting defaults when the blob is
// absent or malformed. Load failures are logged, never fatal.
func NewUserStore(ctx context.Context, store ports.StateStore, logger *slog.Logger) *UserStore {
	s := &UserStore{
		state:  domain.DefaultUserState(),
		store:  store,
		logger: logger,
	}

	blob, err := store.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "loading user state failed, using defaults", "error", err)
		return s
	}
	if len(blob) == 0 {
		return s
	}

	var state domain.UserState
	if err := json.Unmarshal(blob, &state); err != nil {
		logger.WarnContext(ctx, "persisted user state is malformed, using defaults", "error", err)
		return s
	}
	if state.Credits < 0 {
		logger.WarnContext(ctx, "persisted credits are negative, using defaults", "credits", state.Credits)
		return s
	}
	if state.Readings == nil {
		state.Readings = []domain.Reading{}
	}
	s.state = state
	return s
}

// Deduct atomically checks and decrements the balance. It returns false and
// leaves the balance untouched when amount exceeds the current credits.
func (s *UserStore) Deduct(ctx context.Context, amount int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount > s.state.Credits {
		return false
	}
	s.state.Credits -= amount
	s.persistLocked(ctx)
	return true
}

// AppendReading prepends reading to the history, keeping newest-first order.
func (s *UserStore) AppendReading(ctx context.Context, reading domain.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Readings = append([]domain.Reading{reading}, s.state.Readings...)
	s.persistLocked(ctx)
}

// SaveDailyReading replaces the single daily-card slot unconditionally.
func (s *UserStore) SaveDailyReading(ctx context.Context, daily domain.DailyReading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DailyReading = &daily
	s.persistLocked(ctx)
}

// ResetCredits restores the fixed demo balance. Not part of the real product
// contract; the profile page exposes it as a stubbed top-up.
func (s *UserStore) ResetCredits(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Credits = domain.ResetCreditsAmount
	s.persistLocked(ctx)
}

// Credits returns the current balance.
func (s *UserStore) Credits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Credits
}

// Readings returns the history, newest first.
func (s *UserStore) Readings() []domain.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Reading, len(s.state.Readings))
	copy(out, s.state.Readings)
	return out
}

// DailyReadingFor returns the cached daily reading when it matches date.
// Any other date means today's card has not been drawn yet.
func (s *UserStore) DailyReadingFor(date string) (domain.DailyReading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.DailyReading == nil || s.state.DailyReading.Date != date {
		return domain.DailyReading{}, false
	}
	return *s.state.DailyReading, true
}

// LastDailyDrawDate returns the calendar date of the cached daily reading,
// or "" when none has ever been drawn.
func (s *UserStore) LastDailyDrawDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.DailyReading == nil {
		return ""
	}
	return s.state.DailyReading.Date
}

func (s *UserStore) persistLocked(ctx context.Context) {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal user state", "error", err)
		return
	}
	if err := s.store.Save(ctx, blob); err != nil {
		s.logger.ErrorContext(ctx, "persist user state", "error", err)
	}
}

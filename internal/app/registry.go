package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
	"github.com/roseyAI/mara-baraha-app2026/internal/ports"
)

// Sessions creates and tracks reading sessions. The product targets a
// single-user installation, but the HTTP surface still needs addressable
// sessions, so they are kept in a mutex-guarded map keyed by UUID.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	deck         []domain.Card
	users        *UserStore
	interpreter  ports.Interpreter
	rng          domain.RNG
	now          func() time.Time
	shuffleDelay time.Duration
	logger       *slog.Logger
}

// NewSessions wires the shared collaborators every session needs.
func NewSessions(
	deck []domain.Card,
	users *UserStore,
	interpreter ports.Interpreter,
	rng domain.RNG,
	now func() time.Time,
	shuffleDelay time.Duration,
	logger *slog.Logger,
) *Sessions {
	return &Sessions{
		sessions:     make(map[string]*Session),
		deck:         deck,
		users:        users,
		interpreter:  interpreter,
		rng:          rng,
		now:          now,
		shuffleDelay: shuffleDelay,
		logger:       logger,
	}
}

// Create starts a new session in SelectingSpread.
func (r *Sessions) Create() *Session {
	s := &Session{
		ID:           uuid.NewString(),
		state:        StateSelectingSpread,
		zoomIndex:    -1,
		deck:         r.deck,
		users:        r.users,
		interpreter:  r.interpreter,
		rng:          r.rng,
		now:          r.now,
		shuffleDelay: r.shuffleDelay,
		logger:       r.logger,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

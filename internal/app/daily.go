package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
	"github.com/roseyAI/mara-baraha-app2026/internal/ports"
)

// Daily runs the free single-card variant of the reading flow. The result is
// cached per calendar day instead of appended to the general history, and
// repeating the flow on the same day returns the cached card without a second
// draw or gateway call.
type Daily struct {
	deck        []domain.Card
	users       *UserStore
	interpreter ports.Interpreter
	rng         domain.RNG
	now         func() time.Time
	logger      *slog.Logger
}

func NewDaily(
	deck []domain.Card,
	users *UserStore,
	interpreter ports.Interpreter,
	rng domain.RNG,
	now func() time.Time,
	logger *slog.Logger,
) *Daily {
	return &Daily{
		deck:        deck,
		users:       users,
		interpreter: interpreter,
		rng:         rng,
		now:         now,
		logger:      logger,
	}
}

// Draw returns today's card, drawing and interpreting only on the first call
// of the calendar day.
func (d *Daily) Draw(ctx context.Context) (domain.DailyReading, error) {
	today := domain.DateKey(d.now())
	if cached, ok := d.users.DailyReadingFor(today); ok {
		return cached, nil
	}

	def := domain.Definition(domain.SpreadOneCard)
	cards, err := domain.Draw(d.deck, len(def.Positions), def.Positions, d.rng)
	if err != nil {
		return domain.DailyReading{}, fmt.Errorf("draw daily card: %w", err)
	}

	text := d.interpreter.Interpret(ctx, ports.InterpretInput{
		Spread: def.DisplayName,
		Cards:  toCardInputs(cards),
		Daily:  true,
	})

	daily := domain.DailyReading{
		Date:           today,
		Card:           cards[0],
		Interpretation: text,
	}
	d.users.SaveDailyReading(ctx, daily)
	d.logger.InfoContext(ctx, "daily card drawn", "date", today, "card", cards[0].Card.ID)
	return daily, nil
}

package app_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/roseyAI/mara-baraha-app2026/internal/adapters/store/memory"
	"github.com/roseyAI/mara-baraha-app2026/internal/app"
	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
)

func testReading(id string) domain.Reading {
	return domain.Reading{
		ID:         id,
		CreatedAt:  time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
		SpreadKind: domain.SpreadThreeCard,
		Question:   "What does today hold?",
		Cards: []domain.DrawnCard{
			{Card: domain.Card{ID: "major-0", Name: "The Fool"}, Position: "Past"},
			{Card: domain.Card{ID: "major-1", Name: "The Magician"}, Position: "Present"},
			{Card: domain.Card{ID: "major-2", Name: "The High Priestess"}, Position: "Future"},
		},
		Interpretation: "A fresh start.",
	}
}

func TestUserStore_Defaults(t *testing.T) {
	users := app.NewUserStore(context.Background(), memory.New(), slog.Default())

	if got := users.Credits(); got != domain.StartingCredits {
		t.Errorf("expected %d starting credits, got %d", domain.StartingCredits, got)
	}
	if got := len(users.Readings()); got != 0 {
		t.Errorf("expected empty history, got %d readings", got)
	}
	if date := users.LastDailyDrawDate(); date != "" {
		t.Errorf("expected no daily draw, got %q", date)
	}
}

func TestUserStore_MalformedBlobFallsBack(t *testing.T) {
	store := memory.New()
	if err := store.Save(context.Background(), []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	users := app.NewUserStore(context.Background(), store, slog.Default())
	if got := users.Credits(); got != domain.StartingCredits {
		t.Errorf("expected defaults after malformed blob, got %d credits", got)
	}
}

func TestUserStore_Deduct(t *testing.T) {
	users := app.NewUserStore(context.Background(), memory.New(), slog.Default())

	if !users.Deduct(context.Background(), 2) {
		t.Fatal("deduct within balance failed")
	}
	if got := users.Credits(); got != 1 {
		t.Fatalf("expected 1 credit, got %d", got)
	}

	// Over-budget deduction must change nothing.
	if users.Deduct(context.Background(), 2) {
		t.Fatal("deduct beyond balance succeeded")
	}
	if got := users.Credits(); got != 1 {
		t.Fatalf("credits changed by failed deduction: %d", got)
	}

	if !users.Deduct(context.Background(), 1) {
		t.Fatal("exact-balance deduction failed")
	}
	if got := users.Credits(); got != 0 {
		t.Fatalf("expected 0 credits, got %d", got)
	}

	// Never below zero.
	if users.Deduct(context.Background(), 1) {
		t.Fatal("deduction from zero succeeded")
	}

	// Free spreads always pass.
	if !users.Deduct(context.Background(), 0) {
		t.Fatal("zero-cost deduction failed")
	}
}

func TestUserStore_AppendReadingNewestFirst(t *testing.T) {
	users := app.NewUserStore(context.Background(), memory.New(), slog.Default())

	users.AppendReading(context.Background(), testReading("first"))
	users.AppendReading(context.Background(), testReading("second"))

	history := users.Readings()
	if len(history) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(history))
	}
	if history[0].ID != "second" || history[1].ID != "first" {
		t.Errorf("history not newest-first: %s, %s", history[0].ID, history[1].ID)
	}
}

func TestUserStore_ResetCredits(t *testing.T) {
	users := app.NewUserStore(context.Background(), memory.New(), slog.Default())
	users.Deduct(context.Background(), 3)

	users.ResetCredits(context.Background())
	if got := users.Credits(); got != domain.ResetCreditsAmount {
		t.Errorf("expected %d credits after reset, got %d", domain.ResetCreditsAmount, got)
	}
}

func TestUserStore_PersistsAcrossInstances(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	first := app.NewUserStore(ctx, store, slog.Default())
	first.Deduct(ctx, 1)
	first.AppendReading(ctx, testReading("r1"))
	first.SaveDailyReading(ctx, domain.DailyReading{
		Date:           "2026-02-14",
		Card:           domain.DrawnCard{Card: domain.Card{ID: "major-17", Name: "The Star"}, Position: "Insight"},
		Interpretation: "Hope renewed.",
	})

	// A second store instance over the same blob sees identical state.
	second := app.NewUserStore(ctx, store, slog.Default())
	if got := second.Credits(); got != 2 {
		t.Errorf("expected 2 credits after reload, got %d", got)
	}
	if !reflect.DeepEqual(first.Readings(), second.Readings()) {
		t.Error("history did not survive the round trip")
	}
	daily, ok := second.DailyReadingFor("2026-02-14")
	if !ok {
		t.Fatal("daily reading did not survive the round trip")
	}
	if daily.Card.Card.ID != "major-17" {
		t.Errorf("daily card: %s", daily.Card.Card.ID)
	}
}

func TestUserStore_SnapshotRoundTrip(t *testing.T) {
	// The persisted blob must round-trip losslessly for any reachable state.
	states := []domain.UserState{
		domain.DefaultUserState(),
		{
			Credits:  1,
			Readings: []domain.Reading{testReading("r1"), testReading("r2")},
			DailyReading: &domain.DailyReading{
				Date:           "2026-02-14",
				Card:           domain.DrawnCard{Card: domain.Card{ID: "major-0", Name: "The Fool"}, Position: "Insight"},
				Interpretation: "Begin.",
			},
		},
	}

	for i, state := range states {
		blob, err := json.Marshal(state)
		if err != nil {
			t.Fatalf("state %d: marshal: %v", i, err)
		}
		var got domain.UserState
		if err := json.Unmarshal(blob, &got); err != nil {
			t.Fatalf("state %d: unmarshal: %v", i, err)
		}
		if !reflect.DeepEqual(state, got) {
			t.Errorf("state %d: round trip mismatch\nwant: %+v\ngot:  %+v", i, state, got)
		}
	}
}

func TestUserStore_DailyDateMismatch(t *testing.T) {
	users := app.NewUserStore(context.Background(), memory.New(), slog.Default())
	users.SaveDailyReading(context.Background(), domain.DailyReading{Date: "2026-02-13"})

	if _, ok := users.DailyReadingFor("2026-02-14"); ok {
		t.Error("stale daily reading treated as current")
	}
	if _, ok := users.DailyReadingFor("2026-02-13"); !ok {
		t.Error("matching daily reading not found")
	}
}

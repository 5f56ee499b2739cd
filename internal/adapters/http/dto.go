package http

import (
	"github.com/roseyAI/mara-baraha-app2026/internal/app"
	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
)

// SpreadsResponse is the JSON shape returned by GET /v1/spreads.
type SpreadsResponse struct {
	Spreads  []SpreadResponse `json:"spreads"`
	CardBack string           `json:"cardBack"`
	Credits  int              `json:"credits"`
}

type SpreadResponse struct {
	Kind        string   `json:"kind"`
	DisplayName string   `json:"displayName"`
	Positions   []string `json:"positions"`
	CardCount   int      `json:"cardCount"`
	Cost        int      `json:"cost"`
	Affordable  bool     `json:"affordable"`
}

// SessionResponse is the JSON shape of a session snapshot.
type SessionResponse struct {
	ID             string         `json:"id"`
	State          string         `json:"state"`
	Spread         string         `json:"spread,omitempty"`
	Question       string         `json:"question,omitempty"`
	Cards          []CardSlot     `json:"cards,omitempty"`
	Revealed       int            `json:"revealed"`
	ZoomIndex      *int           `json:"zoomIndex,omitempty"`
	Interpreting   bool           `json:"interpreting"`
	Interpretation string         `json:"interpretation,omitempty"`
	Outcome        string         `json:"outcome,omitempty"`
}

// CardSlot is one position in the spread. The card face is withheld until
// the slot has been revealed so clients cannot peek ahead.
type CardSlot struct {
	Position   string       `json:"position"`
	Revealed   bool         `json:"revealed"`
	Card       *domain.Card `json:"card,omitempty"`
	IsReversed bool         `json:"isReversed"`
}

type DailyResponse struct {
	Date           string       `json:"date"`
	Position       string       `json:"position"`
	Card           domain.Card  `json:"card"`
	IsReversed     bool         `json:"isReversed"`
	Interpretation string       `json:"interpretation"`
}

type HistoryResponse struct {
	Readings []domain.Reading `json:"readings"`
}

type ProfileResponse struct {
	Credits       int    `json:"credits"`
	ReadingCount  int    `json:"readingCount"`
	LastDailyDraw string `json:"lastDailyDraw,omitempty"`
}

type SelectSpreadRequest struct {
	Kind string `json:"kind"`
}

type QuestionRequest struct {
	Question string `json:"question"`
}

type RevealRequest struct {
	Index int `json:"index"`
}

type ZoomRequest struct {
	Index int `json:"index"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toSessionResponse(snap app.SessionSnapshot, outcome app.RevealOutcome) SessionResponse {
	resp := SessionResponse{
		ID:             snap.ID,
		State:          string(snap.State),
		Question:       snap.Question,
		Revealed:       snap.Revealed,
		Interpreting:   snap.Interpreting,
		Interpretation: snap.Interpretation,
		Outcome:        string(outcome),
	}
	if snap.HasSpread {
		resp.Spread = string(snap.Spread)
	}
	if snap.ZoomIndex >= 0 {
		zoom := snap.ZoomIndex
		resp.ZoomIndex = &zoom
	}

	resp.Cards = make([]CardSlot, len(snap.Cards))
	for i, dc := range snap.Cards {
		slot := CardSlot{
			Position:   dc.Position,
			Revealed:   i < snap.Revealed,
			IsReversed: dc.IsReversed,
		}
		if i < snap.Revealed {
			card := dc.Card
			slot.Card = &card
		}
		resp.Cards[i] = slot
	}
	return resp
}

func toDailyResponse(d domain.DailyReading) DailyResponse {
	return DailyResponse{
		Date:           d.Date,
		Position:       d.Card.Position,
		Card:           d.Card.Card,
		IsReversed:     d.Card.IsReversed,
		Interpretation: d.Interpretation,
	}
}

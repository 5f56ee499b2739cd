package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roseyAI/mara-baraha-app2026/internal/app"
	"github.com/roseyAI/mara-baraha-app2026/internal/domain"
)

type Handler struct {
	sessions *app.Sessions
	daily    *app.Daily
	users    *app.UserStore
	images   domain.ImageSource
}

func NewHandler(sessions *app.Sessions, daily *app.Daily, users *app.UserStore, images domain.ImageSource) *Handler {
	return &Handler{
		sessions: sessions,
		daily:    daily,
		users:    users,
		images:   images,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	e.GET("/v1/spreads", h.ListSpreads)

	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions/:id", h.GetSession)
	e.POST("/v1/sessions/:id/spread", h.SelectSpread)
	e.POST("/v1/sessions/:id/question", h.SubmitQuestion)
	e.POST("/v1/sessions/:id/reveal", h.RevealCard)
	e.POST("/v1/sessions/:id/zoom", h.OpenZoom)
	e.DELETE("/v1/sessions/:id/zoom", h.CloseZoom)
	e.POST("/v1/sessions/:id/new", h.NewReading)

	e.POST("/v1/daily", h.DailyDraw)
	e.GET("/v1/history", h.History)
	e.GET("/v1/profile", h.Profile)
	e.POST("/v1/profile/credits/reset", h.ResetCredits)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListSpreads(c echo.Context) error {
	credits := h.users.Credits()
	kinds := domain.SpreadKinds()

	spreads := make([]SpreadResponse, len(kinds))
	for i, kind := range kinds {
		def := domain.Definition(kind)
		spreads[i] = SpreadResponse{
			Kind:        string(kind),
			DisplayName: def.DisplayName,
			Positions:   def.Positions,
			CardCount:   len(def.Positions),
			Cost:        def.Cost,
			Affordable:  def.Cost <= credits,
		}
	}

	return c.JSON(http.StatusOK, SpreadsResponse{
		Spreads:  spreads,
		CardBack: domain.CardBackImage(h.images),
		Credits:  credits,
	})
}

func (h *Handler) CreateSession(c echo.Context) error {
	s := h.sessions.Create()
	return c.JSON(http.StatusCreated, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) SelectSpread(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	var req SelectSpreadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	kind, err := domain.ParseSpreadKind(req.Kind)
	if err != nil {
		return mapError(c, err)
	}

	if err := s.SelectSpread(kind); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) SubmitQuestion(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	var req QuestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	question := strings.TrimSpace(req.Question)
	if len(question) > 500 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}

	if err := s.SubmitQuestion(c.Request().Context(), question); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) RevealCard(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	var req RevealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	outcome, err := s.Reveal(c.Request().Context(), req.Index)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), outcome))
}

func (h *Handler) OpenZoom(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	var req ZoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := s.Zoom(req.Index); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) CloseZoom(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	s.CloseZoom()
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) NewReading(c echo.Context) error {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	if err := s.NewReading(); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot(), ""))
}

func (h *Handler) DailyDraw(c echo.Context) error {
	daily, err := h.daily.Draw(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toDailyResponse(daily))
}

func (h *Handler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, HistoryResponse{Readings: h.users.Readings()})
}

func (h *Handler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, ProfileResponse{
		Credits:       h.users.Credits(),
		ReadingCount:  len(h.users.Readings()),
		LastDailyDraw: h.users.LastDailyDrawDate(),
	})
}

func (h *Handler) ResetCredits(c echo.Context) error {
	h.users.ResetCredits(c.Request().Context())
	return c.JSON(http.StatusOK, ProfileResponse{
		Credits:      h.users.Credits(),
		ReadingCount: len(h.users.Readings()),
	})
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownSpread), errors.Is(err, domain.ErrEmptyQuestion):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientCredits):
		return c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

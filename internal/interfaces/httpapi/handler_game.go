package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	games, err := h.gameService.List(ctx, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, err := h.gameService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, item))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req createGameRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduled_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.gameService.Create(ctx, game.Game{
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		Week:        req.Week,
		Rink:        req.Rink,
		GameType:    req.GameType,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "home_team_id", req.HomeTeamID, "away_team_id", req.AwayTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(ctx, created))
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	started, err := h.gameService.Start(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "start game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, started))
}

func (h *Handler) ListGameEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameEvents")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	events, err := h.scorekeepingService.Events(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list game events failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(ctx, e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGameScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameScore")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	home, away, err := h.scorekeepingService.Scores(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game score failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreDTO{GameID: gameID, HomeScore: home, AwayScore: away})
}

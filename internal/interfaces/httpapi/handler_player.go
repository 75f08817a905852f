package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	players, err := h.playerService.List(ctx, teamID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	players, err := h.playerService.List(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req upsertPlayerRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.Create(ctx, player.Player{
		TeamID:       req.TeamID,
		Name:         req.Name,
		Position:     player.Position(req.Position),
		JerseyNumber: req.JerseyNumber,
		SkillRating:  req.SkillRating,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, created))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req upsertPlayerRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.playerService.Update(ctx, player.Player{
		ID:           playerID,
		TeamID:       req.TeamID,
		Name:         req.Name,
		Position:     player.Position(req.Position),
		JerseyNumber: req.JerseyNumber,
		SkillRating:  req.SkillRating,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, updated))
}

func (h *Handler) GetPlayerSuspension(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSuspension")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	suspended, err := h.penaltyService.IsPlayerSuspended(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player suspension failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suspensionDTO{PlayerID: playerID, Suspended: suspended})
}

func (h *Handler) ClearPlayerSuspension(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearPlayerSuspension")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.penaltyService.ClearSuspension(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "clear player suspension failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suspensionDTO{PlayerID: playerID, Suspended: false})
}

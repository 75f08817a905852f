package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/scoring"
	"github.com/obhl/rinkside/internal/usecase"
)

func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGoal")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req recordGoalRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.scorekeepingService.RecordGoal(ctx, gameID, usecase.GoalInput{
		TeamID:          req.TeamID,
		PlayerID:        req.PlayerID,
		Period:          req.Period,
		TimeMinutes:     req.TimeMinutes,
		TimeSeconds:     req.TimeSeconds,
		Description:     req.Description,
		Assist1PlayerID: req.Assist1PlayerID,
		Assist2PlayerID: req.Assist2PlayerID,
		Override:        req.Override,
	})
	if err != nil {
		// A blocked goal still carries the ruling so the bench sees the
		// limit message, not a bare error.
		if errors.Is(err, scoring.ErrGoalLimitReached) {
			writeJSON(ctx, w, http.StatusUnprocessableEntity, googleResponseEnvelope{
				APIVersion: googleAPIVersion,
				Data:       goalOutcomeToDTO(ctx, outcome),
			})
			return
		}
		h.logger.WarnContext(ctx, "record goal failed", "game_id", gameID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, goalOutcomeToDTO(ctx, outcome))
}

// CheckGoalLimit rules on a prospective goal without recording it, so
// the console can warn the bench before the submission.
func (h *Handler) CheckGoalLimit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckGoalLimit")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req checkGoalRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ruling, err := h.scorekeepingService.CheckGoalLimit(ctx, gameID, req.TeamID, req.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, goalRulingToDTO(ruling))
}

func (h *Handler) RecordPenalty(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPenalty")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req recordPenaltyRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.scorekeepingService.RecordPenalty(ctx, gameID, usecase.PenaltyInput{
		TeamID:         req.TeamID,
		PlayerID:       req.PlayerID,
		Period:         req.Period,
		TimeMinutes:    req.TimeMinutes,
		TimeSeconds:    req.TimeSeconds,
		Description:    req.Description,
		PenaltyMinutes: req.PenaltyMinutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record penalty failed", "game_id", gameID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, penaltyOutcomeToDTO(ctx, outcome))
}

func (h *Handler) EditGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditGameEvent")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req editEventRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.scorekeepingService.EditEvent(ctx, gameID, game.Event{
		ID:              eventID,
		GameID:          gameID,
		TeamID:          req.TeamID,
		PlayerID:        req.PlayerID,
		Type:            req.Type,
		Period:          req.Period,
		TimeMinutes:     req.TimeMinutes,
		TimeSeconds:     req.TimeSeconds,
		Description:     req.Description,
		Assist1PlayerID: req.Assist1PlayerID,
		Assist2PlayerID: req.Assist2PlayerID,
		PenaltyMinutes:  req.PenaltyMinutes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "edit game event failed", "game_id", gameID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, goalOutcomeToDTO(ctx, outcome))
}

func (h *Handler) DeleteGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGameEvent")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))

	if err := h.scorekeepingService.DeleteEvent(ctx, gameID, eventID); err != nil {
		h.logger.WarnContext(ctx, "delete game event failed", "game_id", gameID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	home, away, err := h.scorekeepingService.Scores(ctx, gameID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreDTO{GameID: gameID, HomeScore: home, AwayScore: away})
}

func (h *Handler) FinalizeGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req finalizeGameRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	finalized, err := h.scorekeepingService.Finalize(ctx, gameID, req.EndedInOT)
	if err != nil {
		// The local scoresheet is already final when the result push
		// fails; return the game with the gateway error status.
		if errors.Is(err, usecase.ErrRemoteSave) {
			h.logger.ErrorContext(ctx, "finalize saved locally but remote publish failed", "game_id", gameID, "error", err)
			writeJSON(ctx, w, http.StatusBadGateway, googleResponseEnvelope{
				APIVersion: googleAPIVersion,
				Data:       gameToDTO(ctx, finalized),
				Error: &googleErrorBody{
					Code:    http.StatusBadGateway,
					Message: err.Error(),
					Status:  "UNAVAILABLE",
					Errors: []googleErrorItem{
						{Domain: errorDomain, Reason: "remoteSaveFailed", Message: err.Error()},
					},
				},
			})
			return
		}
		h.logger.WarnContext(ctx, "finalize game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, finalized))
}

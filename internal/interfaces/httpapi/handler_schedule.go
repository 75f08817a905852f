package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/obhl/rinkside/internal/usecase"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	var req generateScheduleRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: start_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	games, err := h.scheduleService.Generate(ctx, usecase.GenerateScheduleRequest{
		Weeks:   req.Weeks,
		StartAt: startAt,
		Rink:    req.Rink,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "weeks", req.Weeks, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(ctx, g))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

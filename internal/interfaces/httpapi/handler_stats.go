package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetPlayerSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSeasonStats")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if _, err := h.playerService.Get(ctx, playerID); err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.GetByPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player season stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonStatsToDTO(ctx, stats))
}

func (h *Handler) ListSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonStats")
	defer span.End()

	stats, err := h.statsService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list season stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonStatsDTO, 0, len(stats))
	for _, s := range stats {
		items = append(items, seasonStatsToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecalculateSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateSeasonStats")
	defer span.End()

	if err := h.statsService.RecalculateSeason(ctx); err != nil {
		h.logger.ErrorContext(ctx, "recalculate season stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "recalculated"})
}

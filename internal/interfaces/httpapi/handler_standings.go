package httpapi

import (
	"net/http"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.standingsService.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListOffenses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOffenses")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	entries, err := h.statsService.Chronological(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list offenses failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	dashboard, err := h.statsService.Dashboard(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get dashboard failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) ListLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineups")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	groups, err := h.statsService.Lineups(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list lineups failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]lineupDTO, 0, len(groups))
	for _, g := range groups {
		items = append(items, lineupToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

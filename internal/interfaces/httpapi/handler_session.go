package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/court-sense/internal/domain/game"
	"github.com/riskibarqy/court-sense/internal/domain/session"
	"github.com/riskibarqy/court-sense/internal/usecase"
)

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenSession")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snap, err := h.sessionService.Open(ctx, gameID)
	h.writeSnapshot(ctx, w, "open session", gameID, snap, err)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snap, err := h.sessionService.Get(gameID)
	h.writeSnapshot(ctx, w, "get session", gameID, snap, err)
}

func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseSession")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if err := h.sessionService.Close(gameID); err != nil {
		h.logger.WarnContext(ctx, "close session failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"game_id": gameID})
}

func (h *Handler) StartClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartClock")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snap, err := h.sessionService.StartClock(gameID)
	h.writeSnapshot(ctx, w, "start clock", gameID, snap, err)
}

func (h *Handler) PauseClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PauseClock")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snap, err := h.sessionService.PauseClock(gameID)
	h.writeSnapshot(ctx, w, "pause clock", gameID, snap, err)
}

func (h *Handler) AdjustClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdjustClock")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req adjustClockRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, err := h.sessionService.AdjustClock(gameID, req.DeltaSeconds)
	h.writeSnapshot(ctx, w, "adjust clock", gameID, snap, err)
}

func (h *Handler) IncrementPasses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IncrementPasses")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snap, err := h.sessionService.IncrementPasses(gameID)
	h.writeSnapshot(ctx, w, "increment passes", gameID, snap, err)
}

func (h *Handler) DecrementPasses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DecrementPasses")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	snap, err := h.sessionService.DecrementPasses(gameID)
	h.writeSnapshot(ctx, w, "decrement passes", gameID, snap, err)
}

func (h *Handler) ToggleLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleLineup")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	snap, err := h.sessionService.ToggleLineup(gameID, playerID)
	h.writeSnapshot(ctx, w, "toggle lineup", gameID, snap, err)
}

func (h *Handler) BeginTurnover(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginTurnover")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	res, err := h.sessionService.BeginTurnover(ctx, gameID)
	h.writeSessionResult(ctx, w, "begin turnover", gameID, res, err)
}

func (h *Handler) BeginShot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BeginShot")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	res, err := h.sessionService.BeginShot(ctx, gameID)
	h.writeSessionResult(ctx, w, "begin shot", gameID, res, err)
}

func (h *Handler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayer")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req selectPlayerRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.sessionService.SelectPlayer(ctx, gameID, strings.TrimSpace(req.PlayerID))
	h.writeSessionResult(ctx, w, "select player", gameID, res, err)
}

func (h *Handler) SelectShotType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectShotType")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req selectShotTypeRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.sessionService.SelectShotType(ctx, gameID, game.ShotType(req.ShotType))
	h.writeSessionResult(ctx, w, "select shot type", gameID, res, err)
}

func (h *Handler) SelectResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectResult")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req selectResultRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.sessionService.SelectResult(ctx, gameID, game.ResultType(req.Result))
	h.writeSessionResult(ctx, w, "select result", gameID, res, err)
}

func (h *Handler) SelectRebound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectRebound")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req selectReboundRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.sessionService.SelectRebound(ctx, gameID, *req.Offensive)
	h.writeSessionResult(ctx, w, "select rebound", gameID, res, err)
}

// MarkFreeThrow takes a 1-based slot in the path.
func (h *Handler) MarkFreeThrow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkFreeThrow")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	slot, err := strconv.Atoi(strings.TrimSpace(r.PathValue("slot")))
	if err != nil || slot < 1 || slot > session.FreeThrowSlots {
		writeError(ctx, w, fmt.Errorf("%w: slot must be between 1 and %d", usecase.ErrInvalidInput, session.FreeThrowSlots))
		return
	}

	var req markFreeThrowRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.sessionService.MarkFreeThrow(ctx, gameID, slot-1, session.FreeThrowMark(req.Mark))
	h.writeSessionResult(ctx, w, "mark free throw", gameID, res, err)
}

func (h *Handler) ConfirmFlow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmFlow")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	res, err := h.sessionService.Confirm(ctx, gameID)
	h.writeSessionResult(ctx, w, "confirm flow", gameID, res, err)
}

func (h *Handler) BackFlow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BackFlow")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	res, err := h.sessionService.Back(ctx, gameID)
	h.writeSessionResult(ctx, w, "back flow", gameID, res, err)
}

func (h *Handler) CancelFlow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelFlow")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	res, err := h.sessionService.Cancel(ctx, gameID)
	h.writeSessionResult(ctx, w, "cancel flow", gameID, res, err)
}

func (h *Handler) writeSnapshot(ctx context.Context, w http.ResponseWriter, op, gameID string, snap session.Snapshot, err error) {
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(snap))
}

func (h *Handler) writeSessionResult(ctx context.Context, w http.ResponseWriter, op, gameID string, res usecase.SessionResult, err error) {
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionResultToDTO(res))
}

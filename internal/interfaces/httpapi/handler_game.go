package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/court-sense/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	summaries, err := h.statsService.ListSummaries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]summaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, summaryToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req createGameRequest
	if err := h.decodeRequest(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.CreateGame(ctx, usecase.CreateGameInput{TeamName: req.TeamName})
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "team_name", req.TeamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(g))
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	g, err := h.gameService.GetGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if err := h.gameService.DeleteGame(ctx, gameID); err != nil {
		h.logger.WarnContext(ctx, "delete game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": gameID})
}

func (h *Handler) UpdateGameSetup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameSetup")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req gameSetupRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.gameService.UpdateSetup(ctx, gameID, usecase.GameSetupInput{
		TeamName:       req.TeamName,
		OpponentName:   req.OpponentName,
		Date:           req.Date,
		CurrentQuarter: req.CurrentQuarter,
		YourTeamScore:  req.YourTeamScore,
		OpponentScore:  req.OpponentScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update game setup failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req addPlayerRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.gameService.AddPlayer(ctx, gameID, req.Name, req.Number)
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerDTO{ID: p.ID, Name: p.Name, Number: p.Number})
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.gameService.UpdatePlayerNumber(ctx, gameID, playerID, *req.Number)
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "game_id", gameID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDTO{ID: p.ID, Name: p.Name, Number: p.Number})
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.gameService.RemovePlayer(ctx, gameID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove player failed", "game_id", gameID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": playerID})
}

func (h *Handler) DeleteOffense(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteOffense")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	offenseID := strings.TrimSpace(r.PathValue("offenseID"))
	if err := h.gameService.DeleteOffense(ctx, gameID, offenseID); err != nil {
		h.logger.WarnContext(ctx, "delete offense failed", "game_id", gameID, "offense_id", offenseID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": offenseID})
}

func (h *Handler) ListTeamNames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamNames")
	defer span.End()

	names, err := h.teamService.ListTeamNames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list team names failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, names)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	team, err := h.teamService.GetTeamByName(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team))
}

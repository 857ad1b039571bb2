package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("POST /v1/games", handler.CreateGame)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("DELETE /v1/games/{gameID}", handler.DeleteGame)
	mux.HandleFunc("PUT /v1/games/{gameID}/setup", handler.UpdateGameSetup)
	mux.HandleFunc("POST /v1/games/{gameID}/players", handler.AddPlayer)
	mux.HandleFunc("PUT /v1/games/{gameID}/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/games/{gameID}/players/{playerID}", handler.RemovePlayer)
	mux.HandleFunc("GET /v1/games/{gameID}/offenses", handler.ListOffenses)
	mux.HandleFunc("DELETE /v1/games/{gameID}/offenses/{offenseID}", handler.DeleteOffense)
	mux.HandleFunc("GET /v1/games/{gameID}/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/games/{gameID}/lineups", handler.ListLineups)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeamNames)
	mux.HandleFunc("GET /v1/teams/{name}", handler.GetTeam)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/games/{gameID}/session", handler.OpenSession)
	mux.HandleFunc("GET /v1/games/{gameID}/session", handler.GetSession)
	mux.HandleFunc("DELETE /v1/games/{gameID}/session", handler.CloseSession)

	mux.HandleFunc("POST /v1/games/{gameID}/session/clock/start", handler.StartClock)
	mux.HandleFunc("POST /v1/games/{gameID}/session/clock/pause", handler.PauseClock)
	mux.HandleFunc("POST /v1/games/{gameID}/session/clock/adjust", handler.AdjustClock)
	mux.HandleFunc("POST /v1/games/{gameID}/session/passes/increment", handler.IncrementPasses)
	mux.HandleFunc("POST /v1/games/{gameID}/session/passes/decrement", handler.DecrementPasses)
	mux.HandleFunc("POST /v1/games/{gameID}/session/lineup/{playerID}", handler.ToggleLineup)

	mux.HandleFunc("POST /v1/games/{gameID}/session/turnover", handler.BeginTurnover)
	mux.HandleFunc("POST /v1/games/{gameID}/session/shot", handler.BeginShot)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/player", handler.SelectPlayer)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/shot-type", handler.SelectShotType)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/result", handler.SelectResult)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/rebound", handler.SelectRebound)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/free-throws/{slot}", handler.MarkFreeThrow)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/confirm", handler.ConfirmFlow)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/back", handler.BackFlow)
	mux.HandleFunc("POST /v1/games/{gameID}/session/flow/cancel", handler.CancelFlow)
}

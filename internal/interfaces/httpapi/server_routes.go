package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/stats", handler.GetPlayerSeasonStats)
	mux.HandleFunc("GET /v1/players/{playerID}/suspension", handler.GetPlayerSuspension)
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("GET /v1/games/{gameID}/events", handler.ListGameEvents)
	mux.HandleFunc("GET /v1/games/{gameID}/score", handler.GetGameScore)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/stats/season", handler.ListSeasonStats)
}

func registerScorekeeperRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("PUT /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("POST /v1/games", RequireAuth(verifier, http.HandlerFunc(handler.CreateGame)))
	mux.Handle("POST /v1/games/{gameID}/start", RequireAuth(verifier, http.HandlerFunc(handler.StartGame)))
	mux.Handle("POST /v1/games/{gameID}/goals", RequireAuth(verifier, http.HandlerFunc(handler.RecordGoal)))
	mux.Handle("POST /v1/games/{gameID}/goals/check", RequireAuth(verifier, http.HandlerFunc(handler.CheckGoalLimit)))
	mux.Handle("POST /v1/games/{gameID}/penalties", RequireAuth(verifier, http.HandlerFunc(handler.RecordPenalty)))
	mux.Handle("PUT /v1/games/{gameID}/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.EditGameEvent)))
	mux.Handle("DELETE /v1/games/{gameID}/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteGameEvent)))
	mux.Handle("POST /v1/games/{gameID}/finalize", RequireAuth(verifier, http.HandlerFunc(handler.FinalizeGame)))
	mux.Handle("POST /v1/schedule/generate", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("POST /v1/players/{playerID}/suspension/clear", RequireAuth(verifier, http.HandlerFunc(handler.ClearPlayerSuspension)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/stats/recalculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecalculateSeasonStats)))
}

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

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/fixtures/generate", handler.GenerateFixtures)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/fixtures", handler.ListFixtures)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/matches/{matchID}/complete", handler.CompleteMatch)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	mux.HandleFunc("POST /v1/tournaments/{tournamentID}/standings/recalculate", handler.RecalculateStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/players/{playerID}/stats", handler.GetPlayerStats)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recalculate-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalculateStandingsJob)))
}

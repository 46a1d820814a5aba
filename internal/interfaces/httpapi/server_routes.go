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

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/summary", handler.GetSummary)
	mux.HandleFunc("GET /v1/stages", handler.ListStages)
	mux.HandleFunc("GET /v1/venues", handler.ListVenues)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
}

func registerStatisticsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/stats", handler.GetStats)
	mux.HandleFunc("GET /v1/standings", handler.ListGroupStandings)
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/teams/{teamID}/performance", handler.GetTeamPerformance)
	mux.HandleFunc("GET /v1/insights/venues", handler.GetVenueUsage)
	mux.HandleFunc("GET /v1/insights/goals-trend", handler.GetGoalsTrend)
	mux.HandleFunc("GET /v1/insights/recent-matches", handler.ListRecentMatches)
	mux.HandleFunc("GET /v1/insights/team-comparison", handler.GetTeamComparison)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/datasets/reload", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReloadDataset)))
}

package httpapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSummary")
	defer span.End()

	item, err := h.tournamentService.GetSummary(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(item))
}

func (h *Handler) ListStages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStages")
	defer span.End()

	stages, err := h.tournamentService.ListStages(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list stages failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]stageDTO, 0, len(stages))
	for _, item := range stages {
		items = append(items, stageToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenues")
	defer span.End()

	venues, err := h.tournamentService.ListVenues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list venues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]venueDTO, 0, len(venues))
	for _, item := range venues {
		items = append(items, venueToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	search := r.URL.Query().Get("search")
	teams, err := h.tournamentService.ListTeams(ctx, search)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "search", search, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := parsePathID(r.PathValue("teamID"), "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attribute.Int64("team.id", teamID))

	item, err := h.tournamentService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByTeam")
	defer span.End()

	teamID, err := parsePathID(r.PathValue("teamID"), "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.tournamentService.ListPlayersByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, item := range players {
		items = append(items, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	state, err := h.parseFilterState(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.statisticsService.FilteredFixtures(ctx, state)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureListDTO{
		Filter: filterToDTO(state),
		Items:  fixturesToDTO(fixtures),
	})
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID, err := parsePathID(r.PathValue("fixtureID"), "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attribute.Int64("fixture.id", fixtureID))

	item, err := h.tournamentService.GetFixture(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

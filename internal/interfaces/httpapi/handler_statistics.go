package httpapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	state, err := h.parseFilterState(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statisticsService.Summary(ctx, state)
	if err != nil {
		h.logger.WarnContext(ctx, "compute stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsSummaryToDTO(stats, state))
}

func (h *Handler) ListGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroupStandings")
	defer span.End()

	groups, err := h.statisticsService.GroupStandings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "build group standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupStandingsToDTO(groups))
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := parsePathID(r.PathValue("teamID"), "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attribute.Int64("team.id", teamID))

	stats, err := h.statisticsService.TeamStats(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(stats))
}

func (h *Handler) GetTeamPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPerformance")
	defer span.End()

	teamID, err := parsePathID(r.PathValue("teamID"), "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	state, err := h.parseFilterState(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	performance, err := h.statisticsService.TeamPerformance(ctx, teamID, state)
	if err != nil {
		h.logger.WarnContext(ctx, "compute team performance failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamPerformanceToDTO(teamID, performance))
}

func (h *Handler) GetVenueUsage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVenueUsage")
	defer span.End()

	state, err := h.parseFilterState(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	usage, err := h.statisticsService.VenueUsage(ctx, state)
	if err != nil {
		h.logger.WarnContext(ctx, "compute venue usage failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, venueUsageToDTO(usage))
}

func (h *Handler) GetGoalsTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGoalsTrend")
	defer span.End()

	state, err := h.parseFilterState(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	trend, err := h.statisticsService.GoalsTrend(ctx, state)
	if err != nil {
		h.logger.WarnContext(ctx, "compute goals trend failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, goalsTrendToDTO(trend))
}

func (h *Handler) ListRecentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentMatches")
	defer span.End()

	query := r.URL.Query()
	limit, err := parseLimit(query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	state, err := h.parseFilterState(ctx, query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.statisticsService.RecentMatches(ctx, state, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list recent matches failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesToDTO(matches))
}

func (h *Handler) GetTeamComparison(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamComparison")
	defer span.End()

	state, err := h.parseFilterState(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.statisticsService.TeamComparison(ctx, state)
	if err != nil {
		h.logger.WarnContext(ctx, "compute team comparison failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparisonToDTO(comparison))
}

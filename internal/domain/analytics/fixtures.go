// Package analytics derives filtered views, KPIs and standings from an
// in-memory tournament dataset. Every function is pure: inputs are never
// modified and identical inputs always produce identical output.
package analytics

import (
	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

// FilterFixtures keeps fixtures passing every active constraint of state.
// Input order is preserved. Free-text search does not apply to fixtures.
func FilterFixtures(fixtures []fixture.Fixture, state filter.State) []fixture.Fixture {
	start, end := state.DateRange()
	stageID, hasStage := state.Stage()
	venueID, hasVenue := state.Venue()
	hasTeams := state.HasTeams()

	out := make([]fixture.Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if hasTeams && !state.HasTeam(item.HomeTeamID) && !state.HasTeam(item.AwayTeamID) {
			continue
		}
		if start != nil || end != nil {
			day := filter.DateOf(item.KickoffAt)
			if start != nil && day.Before(*start) {
				continue
			}
			if end != nil && day.After(*end) {
				continue
			}
		}
		if hasStage && item.StageID != stageID {
			continue
		}
		if hasVenue && item.VenueID != venueID {
			continue
		}
		out = append(out, item)
	}

	return out
}

// completed returns finished fixtures in input order.
func completed(fixtures []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.IsFinished() {
			out = append(out, item)
		}
	}
	return out
}

func score(item fixture.Fixture) (home, away int) {
	return intOrZero(item.HomeScore, item.ID, "home_score"), intOrZero(item.AwayScore, item.ID, "away_score")
}

// intOrZero reads a nullable numeric field of a finished fixture. A missing
// value is a data defect: it counts as zero and is reported.
func intOrZero(v *int, fixtureID int64, field string) int {
	if v != nil {
		return *v
	}
	logging.Default().Warn("finished fixture has no value, counting as zero",
		"fixture_id", fixtureID,
		"field", field,
	)
	return 0
}

package analytics

import (
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

const DefaultRecentMatchesLimit = 5

type Record struct {
	Wins   int
	Draws  int
	Losses int
}

type TeamPerformance struct {
	Season      TeamStats
	WinRate     float64
	CleanSheets int
	Home        Record
	Away        Record
	Matches     []fixture.Fixture
}

// TeamPerformanceOf combines the season record (from allFixtures) with a
// breakdown of the team's finished matches inside filtered.
func TeamPerformanceOf(teamID int64, allFixtures, filtered []fixture.Fixture) TeamPerformance {
	out := TeamPerformance{Season: CalculateTeamStats(teamID, allFixtures)}
	if out.Season.Played > 0 {
		out.WinRate = float64(out.Season.Wins) / float64(out.Season.Played) * 100
	}

	for _, item := range filtered {
		if item.Involves(teamID) && item.IsFinished() {
			out.Matches = append(out.Matches, item)
		}
	}
	sortMostRecentFirst(out.Matches)

	for _, item := range out.Matches {
		scored, conceded := goalsFor(item, teamID)
		if conceded == 0 {
			out.CleanSheets++
		}

		record := &out.Away
		if item.HomeTeamID == teamID {
			record = &out.Home
		}
		switch {
		case scored > conceded:
			record.Wins++
		case scored < conceded:
			record.Losses++
		default:
			record.Draws++
		}
	}

	return out
}

type VenueUsage struct {
	Venue         venue.Venue
	MatchesHosted int
}

// VenueUsageOf counts hosted fixtures per venue, skipping venues with none.
func VenueUsageOf(venues []venue.Venue, filtered []fixture.Fixture) []VenueUsage {
	counts := make(map[int64]int, len(venues))
	for _, item := range filtered {
		counts[item.VenueID]++
	}

	out := make([]VenueUsage, 0, len(venues))
	for _, item := range venues {
		if counts[item.ID] == 0 {
			continue
		}
		out = append(out, VenueUsage{Venue: item, MatchesHosted: counts[item.ID]})
	}
	return out
}

type GoalsTrendPoint struct {
	FixtureID       int64
	KickoffAt       time.Time
	Goals           int
	CumulativeGoals int
}

// GoalsTrend accumulates goals over finished fixtures in kickoff order.
func GoalsTrend(filtered []fixture.Fixture) []GoalsTrendPoint {
	done := completed(filtered)
	slices.SortStableFunc(done, func(a, b fixture.Fixture) int {
		return a.KickoffAt.Compare(b.KickoffAt)
	})

	out := make([]GoalsTrendPoint, 0, len(done))
	total := 0
	for _, item := range done {
		home, away := score(item)
		total += home + away
		out = append(out, GoalsTrendPoint{
			FixtureID:       item.ID,
			KickoffAt:       item.KickoffAt,
			Goals:           home + away,
			CumulativeGoals: total,
		})
	}
	return out
}

// RecentMatches returns up to limit finished fixtures, newest first.
// A non-positive limit falls back to DefaultRecentMatchesLimit.
func RecentMatches(filtered []fixture.Fixture, limit int) []fixture.Fixture {
	if limit <= 0 {
		limit = DefaultRecentMatchesLimit
	}
	done := completed(filtered)
	sortMostRecentFirst(done)
	if len(done) > limit {
		done = done[:limit]
	}
	return done
}

type ComparisonRow struct {
	TeamID       int64
	TeamName     string
	GoalsFor     int
	GoalsAgainst int
	Wins         int
	Draws        int
	Losses       int
	Points       int
	Selected     bool
}

type Comparison struct {
	Rows            []ComparisonRow
	AvgGoalsFor     float64
	AvgGoalsAgainst float64
}

// TeamComparison contrasts season records for every team. It is empty when
// filtered contains no finished fixture.
func TeamComparison(teams []team.Team, allFixtures, filtered []fixture.Fixture, state filter.State) Comparison {
	if !hasCompleted(filtered) {
		return Comparison{}
	}
	stats := make([]TeamStats, len(teams))
	for i, item := range teams {
		stats[i] = CalculateTeamStats(item.ID, allFixtures)
	}
	return ComparisonFromStats(teams, stats, state)
}

// ComparisonFromStats builds a comparison from precomputed stats; stats[i]
// belongs to teams[i].
func ComparisonFromStats(teams []team.Team, stats []TeamStats, state filter.State) Comparison {
	if len(teams) == 0 {
		return Comparison{}
	}

	out := Comparison{Rows: make([]ComparisonRow, 0, len(teams))}
	sumFor, sumAgainst := 0, 0
	for i, item := range teams {
		record := TeamStats{TeamID: item.ID}
		if i < len(stats) {
			record = stats[i]
		}
		out.Rows = append(out.Rows, ComparisonRow{
			TeamID:       item.ID,
			TeamName:     item.Name,
			GoalsFor:     record.GoalsFor,
			GoalsAgainst: record.GoalsAgainst,
			Wins:         record.Wins,
			Draws:        record.Draws,
			Losses:       record.Losses,
			Points:       record.Points,
			Selected:     state.HasTeam(item.ID),
		})
		sumFor += record.GoalsFor
		sumAgainst += record.GoalsAgainst
	}

	out.AvgGoalsFor = float64(sumFor) / float64(len(out.Rows))
	out.AvgGoalsAgainst = float64(sumAgainst) / float64(len(out.Rows))
	return out
}

// SearchTeams matches query case-insensitively against team names.
// A blank query returns every team.
func SearchTeams(teams []team.Team, query string) []team.Team {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		if needle == "" || strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

func hasCompleted(fixtures []fixture.Fixture) bool {
	return slices.ContainsFunc(fixtures, fixture.Fixture.IsFinished)
}

func sortMostRecentFirst(items []fixture.Fixture) {
	slices.SortStableFunc(items, func(a, b fixture.Fixture) int {
		return b.KickoffAt.Compare(a.KickoffAt)
	})
}

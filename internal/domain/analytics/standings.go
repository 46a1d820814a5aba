package analytics

import (
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
)

type RankedTeam struct {
	team.Team
	TeamStats
	Position int
}

// BuildGroupStandings buckets every team by group label and orders each
// bucket by points, goal difference, goals for, then name.
func BuildGroupStandings(teams []team.Team, fixtures []fixture.Fixture) map[string][]RankedTeam {
	stats := make([]TeamStats, len(teams))
	for i, item := range teams {
		stats[i] = CalculateTeamStats(item.ID, fixtures)
	}
	return GroupStandingsFromStats(teams, stats)
}

// GroupStandingsFromStats ranks precomputed stats; stats[i] belongs to teams[i].
func GroupStandingsFromStats(teams []team.Team, stats []TeamStats) map[string][]RankedTeam {
	groups := make(map[string][]RankedTeam)
	for i, item := range teams {
		var record TeamStats
		if i < len(stats) {
			record = stats[i]
		} else {
			record = TeamStats{TeamID: item.ID}
		}
		groups[item.Group] = append(groups[item.Group], RankedTeam{Team: item, TeamStats: record})
	}

	for label, rows := range groups {
		slices.SortStableFunc(rows, CompareRanked)
		for idx := range rows {
			rows[idx].Position = idx + 1
		}
		groups[label] = rows
	}

	return groups
}

// CompareRanked orders a before b when a ranks higher. It is a total order
// for teams with distinct names.
func CompareRanked(a, b RankedTeam) int {
	if a.Points != b.Points {
		return b.Points - a.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return b.GoalDifference - a.GoalDifference
	}
	if a.GoalsFor != b.GoalsFor {
		return b.GoalsFor - a.GoalsFor
	}
	return strings.Compare(a.Name, b.Name)
}

func SortedGroups(groups map[string][]RankedTeam) []string {
	out := make([]string, 0, len(groups))
	for label := range groups {
		out = append(out, label)
	}
	slices.Sort(out)
	return out
}

package analytics

import "github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"

// TeamStats is a team's record over finished fixtures.
type TeamStats struct {
	TeamID         int64
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// CalculateTeamStats always takes the complete fixture list, never a filtered
// view: standings are season-long regardless of the active selection.
func CalculateTeamStats(teamID int64, fixtures []fixture.Fixture) TeamStats {
	out := TeamStats{TeamID: teamID}
	for _, item := range fixtures {
		if !item.Involves(teamID) || !item.IsFinished() {
			continue
		}

		scoreFor, scoreAgainst := goalsFor(item, teamID)
		out.Played++
		out.GoalsFor += scoreFor
		out.GoalsAgainst += scoreAgainst

		switch {
		case scoreFor > scoreAgainst:
			out.Wins++
		case scoreFor < scoreAgainst:
			out.Losses++
		default:
			out.Draws++
		}
	}

	out.GoalDifference = out.GoalsFor - out.GoalsAgainst
	out.Points = out.Wins*3 + out.Draws
	return out
}

// goalsFor orients a finished fixture's score from teamID's side.
func goalsFor(item fixture.Fixture, teamID int64) (scored, conceded int) {
	home, away := score(item)
	if item.HomeTeamID == teamID {
		return home, away
	}
	return away, home
}

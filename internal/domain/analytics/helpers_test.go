package analytics

import (
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func finished(id, home, away int64, homeScore, awayScore int, kickoff string) fixture.Fixture {
	return fixture.Fixture{
		ID:         id,
		KickoffAt:  mustTime(kickoff),
		StageID:    1,
		VenueID:    1,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
		Status:     fixture.StatusFinished,
		Attendance: intPtr(1000),
	}
}

func scheduled(id, home, away int64, kickoff string) fixture.Fixture {
	return fixture.Fixture{
		ID:         id,
		KickoffAt:  mustTime(kickoff),
		StageID:    1,
		VenueID:    1,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     fixture.StatusNotStarted,
	}
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Nigeria", Group: "A"},
		{ID: 2, Name: "Ghana", Group: "A"},
		{ID: 3, Name: "Egypt", Group: "B"},
		{ID: 4, Name: "Algeria", Group: "B"},
		{ID: 5, Name: "Morocco", Group: "A"},
	}
}

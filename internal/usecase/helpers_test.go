package usecase

import (
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/repository/memory"
)

func intPtr(v int) *int { return &v }

func kickoff(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func testTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Nigeria", Group: "A"},
		{ID: 2, Name: "Ghana", Group: "A"},
		{ID: 3, Name: "Morocco", Group: "A"},
		{ID: 4, Name: "Egypt", Group: "B"},
		{ID: 5, Name: "Algeria", Group: "B"},
	}
}

func testFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID: 101, StageID: 1, VenueID: 10, HomeTeamID: 1, AwayTeamID: 2,
			KickoffAt: kickoff("2025-06-01T18:00:00Z"), Status: fixture.StatusFinished,
			HomeScore: intPtr(2), AwayScore: intPtr(1), Attendance: intPtr(40000),
		},
		{
			ID: 102, StageID: 1, VenueID: 11, HomeTeamID: 3, AwayTeamID: 1,
			KickoffAt: kickoff("2025-06-05T18:00:00Z"), Status: fixture.StatusFinished,
			HomeScore: intPtr(1), AwayScore: intPtr(1), Attendance: intPtr(30000),
		},
		{
			ID: 103, StageID: 1, VenueID: 10, HomeTeamID: 4, AwayTeamID: 5,
			KickoffAt: kickoff("2025-06-06T18:00:00Z"), Status: fixture.StatusFinished,
			HomeScore: intPtr(0), AwayScore: intPtr(3), Attendance: intPtr(20000),
		},
		{
			ID: 104, StageID: 1, VenueID: 11, HomeTeamID: 2, AwayTeamID: 3,
			KickoffAt: kickoff("2025-06-10T18:00:00Z"), Status: fixture.StatusNotStarted,
		},
	}
}

func testDataset(version string) dataset.Dataset {
	return dataset.Dataset{
		Teams:    testTeams(),
		Fixtures: testFixtures(),
		Players: []player.Player{
			{ID: 1001, TeamID: 1, Name: "Victor Osimhen", Position: "FW"},
			{ID: 1002, TeamID: 1, Name: "Wilfred Ndidi", Position: "MF"},
			{ID: 2001, TeamID: 2, Name: "Thomas Partey", Position: "MF"},
		},
		Venues: []venue.Venue{
			{ID: 10, Name: "Stade Mohammed V", City: "Casablanca"},
			{ID: 11, Name: "Stade Ibn Batouta", City: "Tangier"},
			{ID: 12, Name: "Stade Adrar", City: "Agadir"},
		},
		Stages: []stage.Stage{
			{ID: 2, Name: "Round of 16", Order: 2, Knockout: true},
			{ID: 1, Name: "Group Stage", Order: 1},
		},
		Summary: summary.Summary{Name: "Africa Cup of Nations", Edition: "2025", HostCountry: "Morocco"},
		Version: version,
	}
}

func loadedStore(version string) *memory.Store {
	store := memory.NewStore()
	store.Replace(testDataset(version))
	return store
}

package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/analytics"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
	"github.com/riskibarqy/tournament-dashboard/internal/usecase"
)

type healthDTO struct {
	Status         string `json:"status"`
	DatasetReady   bool   `json:"dataset_ready"`
	DatasetVersion string `json:"dataset_version,omitempty"`
}

type teamDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Country     string `json:"country,omitempty"`
	FIFARanking int    `json:"fifa_ranking,omitempty"`
	CoachName   string `json:"coach_name,omitempty"`
}

type playerDTO struct {
	ID       int64  `json:"id"`
	TeamID   int64  `json:"team_id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

type stageDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
	Knockout bool   `json:"knockout"`
}

type venueDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city,omitempty"`
	Capacity  int     `json:"capacity,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

type summaryDTO struct {
	Name        string            `json:"name"`
	Edition     string            `json:"edition,omitempty"`
	HostCountry string            `json:"host_country,omitempty"`
	StartDate   string            `json:"start_date,omitempty"`
	EndDate     string            `json:"end_date,omitempty"`
	TotalTeams  int               `json:"total_teams,omitempty"`
	TotalGroups int               `json:"total_groups,omitempty"`
	Champion    string            `json:"champion,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type fixtureDTO struct {
	ID          int64  `json:"id"`
	KickoffAt   string `json:"kickoff_at"`
	StageID     int64  `json:"stage_id"`
	VenueID     int64  `json:"venue_id"`
	HomeTeamID  int64  `json:"home_team_id"`
	AwayTeamID  int64  `json:"away_team_id"`
	HomeScore   *int   `json:"home_score"`
	AwayScore   *int   `json:"away_score"`
	HomeScoreHT *int   `json:"home_score_ht"`
	AwayScoreHT *int   `json:"away_score_ht"`
	Status      string `json:"status"`
	Finished    bool   `json:"finished"`
	Attendance  *int   `json:"attendance"`
	Winner      string `json:"winner,omitempty"`
	ExtraTime   bool   `json:"extra_time"`
	Penalties   bool   `json:"penalties"`
}

type filterDTO struct {
	Teams     []int64 `json:"teams,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
	Stage     *int64  `json:"stage,omitempty"`
	Venue     *int64  `json:"venue,omitempty"`
	Search    string  `json:"search,omitempty"`
}

type fixtureListDTO struct {
	Filter filterDTO    `json:"filter"`
	Items  []fixtureDTO `json:"items"`
}

type statsSummaryDTO struct {
	Filter                  filterDTO `json:"filter"`
	TotalMatches            int       `json:"total_matches"`
	CompletedMatches        int       `json:"completed_matches"`
	TotalGoals              int       `json:"total_goals"`
	AvgGoalsPerMatch        float64   `json:"avg_goals_per_match"`
	AvgGoalsPerMatchDisplay string    `json:"avg_goals_per_match_display"`
	TotalAttendance         int       `json:"total_attendance"`
	AvgAttendance           int       `json:"avg_attendance"`
	TournamentProgress      float64   `json:"tournament_progress"`
}

type teamStatsDTO struct {
	TeamID         int64 `json:"team_id"`
	Played         int   `json:"played"`
	Wins           int   `json:"wins"`
	Draws          int   `json:"draws"`
	Losses         int   `json:"losses"`
	GoalsFor       int   `json:"goals_for"`
	GoalsAgainst   int   `json:"goals_against"`
	GoalDifference int   `json:"goal_difference"`
	Points         int   `json:"points"`
}

type standingRowDTO struct {
	Position int    `json:"position"`
	TeamName string `json:"team_name"`
	teamStatsDTO
}

type groupStandingDTO struct {
	Group string           `json:"group"`
	Teams []standingRowDTO `json:"teams"`
}

type recordDTO struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

type teamPerformanceDTO struct {
	TeamID      int64        `json:"team_id"`
	Season      teamStatsDTO `json:"season"`
	WinRate     float64      `json:"win_rate"`
	CleanSheets int          `json:"clean_sheets"`
	Home        recordDTO    `json:"home"`
	Away        recordDTO    `json:"away"`
	Matches     []fixtureDTO `json:"matches"`
}

type venueUsageDTO struct {
	Venue         venueDTO `json:"venue"`
	MatchesHosted int      `json:"matches_hosted"`
}

type goalsTrendPointDTO struct {
	FixtureID       int64  `json:"fixture_id"`
	KickoffAt       string `json:"kickoff_at"`
	Goals           int    `json:"goals"`
	CumulativeGoals int    `json:"cumulative_goals"`
}

type comparisonRowDTO struct {
	TeamID       int64  `json:"team_id"`
	TeamName     string `json:"team_name"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	Points       int    `json:"points"`
	Selected     bool   `json:"selected"`
}

type comparisonDTO struct {
	Rows            []comparisonRowDTO `json:"rows"`
	AvgGoalsFor     float64            `json:"avg_goals_for"`
	AvgGoalsAgainst float64            `json:"avg_goals_against"`
}

type reloadResultDTO struct {
	Source             string `json:"source"`
	Version            string `json:"version"`
	PreviousVersion    string `json:"previous_version,omitempty"`
	Changed            bool   `json:"changed"`
	Teams              int    `json:"teams"`
	Fixtures           int    `json:"fixtures"`
	Players            int    `json:"players"`
	Venues             int    `json:"venues"`
	Stages             int    `json:"stages"`
	DanglingReferences int    `json:"dangling_references"`
	LoadedAt           string `json:"loaded_at"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		Name:        v.Name,
		Group:       v.Group,
		Country:     v.Country,
		FIFARanking: v.FIFARanking,
		CoachName:   v.CoachName,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{ID: v.ID, TeamID: v.TeamID, Name: v.Name, Position: v.Position}
}

func stageToDTO(v stage.Stage) stageDTO {
	return stageDTO{ID: v.ID, Name: v.Name, Order: v.Order, Knockout: v.Knockout}
}

func venueToDTO(v venue.Venue) venueDTO {
	return venueDTO{
		ID:        v.ID,
		Name:      v.Name,
		City:      v.City,
		Capacity:  v.Capacity,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
	}
}

func summaryToDTO(v summary.Summary) summaryDTO {
	return summaryDTO{
		Name:        v.Name,
		Edition:     v.Edition,
		HostCountry: v.HostCountry,
		StartDate:   formatOptionalDate(v.StartDate),
		EndDate:     formatOptionalDate(v.EndDate),
		TotalTeams:  v.TotalTeams,
		TotalGroups: v.TotalGroups,
		Champion:    v.Champion,
		Attributes:  v.Attributes,
	}
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          v.ID,
		KickoffAt:   v.KickoffAt.Format(time.RFC3339),
		StageID:     v.StageID,
		VenueID:     v.VenueID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
		HomeScoreHT: v.HomeScoreHT,
		AwayScoreHT: v.AwayScoreHT,
		Status:      v.Status,
		Finished:    v.IsFinished(),
		Attendance:  v.Attendance,
		Winner:      v.Winner,
		ExtraTime:   v.ExtraTime,
		Penalties:   v.Penalties,
	}
}

func fixturesToDTO(items []fixture.Fixture) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}
	return out
}

func filterToDTO(state filter.State) filterDTO {
	out := filterDTO{Teams: state.TeamIDs(), Search: state.Search()}
	start, end := state.DateRange()
	if start != nil {
		out.StartDate = start.String()
	}
	if end != nil {
		out.EndDate = end.String()
	}
	if id, ok := state.Stage(); ok {
		out.Stage = &id
	}
	if id, ok := state.Venue(); ok {
		out.Venue = &id
	}
	return out
}

func statsSummaryToDTO(v analytics.Summary, state filter.State) statsSummaryDTO {
	return statsSummaryDTO{
		Filter:                  filterToDTO(state),
		TotalMatches:            v.TotalMatches,
		CompletedMatches:        v.CompletedMatches,
		TotalGoals:              v.TotalGoals,
		AvgGoalsPerMatch:        v.AvgGoalsPerMatch,
		AvgGoalsPerMatchDisplay: v.AvgGoalsPerMatchDisplay(),
		TotalAttendance:         v.TotalAttendance,
		AvgAttendance:           v.AvgAttendance,
		TournamentProgress:      v.TournamentProgress,
	}
}

func teamStatsToDTO(v analytics.TeamStats) teamStatsDTO {
	return teamStatsDTO{
		TeamID:         v.TeamID,
		Played:         v.Played,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func groupStandingsToDTO(groups []usecase.GroupStanding) []groupStandingDTO {
	out := make([]groupStandingDTO, 0, len(groups))
	for _, group := range groups {
		rows := make([]standingRowDTO, 0, len(group.Teams))
		for _, item := range group.Teams {
			rows = append(rows, standingRowDTO{
				Position:     item.Position,
				TeamName:     item.Name,
				teamStatsDTO: teamStatsToDTO(item.TeamStats),
			})
		}
		out = append(out, groupStandingDTO{Group: group.Group, Teams: rows})
	}
	return out
}

func recordToDTO(v analytics.Record) recordDTO {
	return recordDTO{Wins: v.Wins, Draws: v.Draws, Losses: v.Losses}
}

func teamPerformanceToDTO(teamID int64, v analytics.TeamPerformance) teamPerformanceDTO {
	return teamPerformanceDTO{
		TeamID:      teamID,
		Season:      teamStatsToDTO(v.Season),
		WinRate:     v.WinRate,
		CleanSheets: v.CleanSheets,
		Home:        recordToDTO(v.Home),
		Away:        recordToDTO(v.Away),
		Matches:     fixturesToDTO(v.Matches),
	}
}

func venueUsageToDTO(items []analytics.VenueUsage) []venueUsageDTO {
	out := make([]venueUsageDTO, 0, len(items))
	for _, item := range items {
		out = append(out, venueUsageDTO{Venue: venueToDTO(item.Venue), MatchesHosted: item.MatchesHosted})
	}
	return out
}

func goalsTrendToDTO(items []analytics.GoalsTrendPoint) []goalsTrendPointDTO {
	out := make([]goalsTrendPointDTO, 0, len(items))
	for _, item := range items {
		out = append(out, goalsTrendPointDTO{
			FixtureID:       item.FixtureID,
			KickoffAt:       item.KickoffAt.Format(time.RFC3339),
			Goals:           item.Goals,
			CumulativeGoals: item.CumulativeGoals,
		})
	}
	return out
}

func comparisonToDTO(v analytics.Comparison) comparisonDTO {
	out := comparisonDTO{
		Rows:            make([]comparisonRowDTO, 0, len(v.Rows)),
		AvgGoalsFor:     v.AvgGoalsFor,
		AvgGoalsAgainst: v.AvgGoalsAgainst,
	}
	for _, row := range v.Rows {
		out.Rows = append(out.Rows, comparisonRowDTO{
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Wins:         row.Wins,
			Draws:        row.Draws,
			Losses:       row.Losses,
			Points:       row.Points,
			Selected:     row.Selected,
		})
	}
	return out
}

func reloadResultToDTO(v usecase.ReloadResult) reloadResultDTO {
	return reloadResultDTO{
		Source:             v.Source,
		Version:            v.Version,
		PreviousVersion:    v.PreviousVersion,
		Changed:            v.Changed,
		Teams:              v.Teams,
		Fixtures:           v.Fixtures,
		Players:            v.Players,
		Venues:             v.Venues,
		Stages:             v.Stages,
		DanglingReferences: v.DanglingReferences,
		LoadedAt:           v.LoadedAt.Format(time.RFC3339Nano),
	}
}

func formatOptionalDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.DateOnly)
}

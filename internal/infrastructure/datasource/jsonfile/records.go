package jsonfile

import (
	"strings"
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

// Records accept both the exported dashboard field names and the raw CSV
// column names (group_name, match_date, home_goals, ...).

type teamRecord struct {
	TeamID      int64  `json:"team_id" validate:"gt=0"`
	TeamName    string `json:"team_name" validate:"required"`
	Group       string `json:"group"`
	GroupName   string `json:"group_name"`
	Country     string `json:"country"`
	FIFARanking *int   `json:"fifa_ranking"`
	CoachName   string `json:"coach_name"`
}

func (r teamRecord) toDomain() team.Team {
	return team.Team{
		ID:          r.TeamID,
		Name:        cleanString(r.TeamName),
		Group:       cleanString(firstNonEmpty(r.Group, r.GroupName)),
		Country:     cleanString(r.Country),
		FIFARanking: derefInt(r.FIFARanking),
		CoachName:   cleanString(r.CoachName),
	}
}

type fixtureRecord struct {
	FixtureID   int64  `json:"fixture_id" validate:"gt=0"`
	Date        string `json:"date"`
	MatchDate   string `json:"match_date"`
	MatchTime   string `json:"match_time"`
	StageID     int64  `json:"stage_id"`
	VenueID     int64  `json:"venue_id"`
	HomeTeamID  int64  `json:"home_team_id" validate:"gt=0"`
	AwayTeamID  int64  `json:"away_team_id" validate:"gt=0,nefield=HomeTeamID"`
	HomeScore   *int   `json:"home_team_score" validate:"omitempty,gte=0"`
	AwayScore   *int   `json:"away_team_score" validate:"omitempty,gte=0"`
	HomeGoals   *int   `json:"home_goals" validate:"omitempty,gte=0"`
	AwayGoals   *int   `json:"away_goals" validate:"omitempty,gte=0"`
	HomeGoalsHT *int   `json:"home_goals_ht" validate:"omitempty,gte=0"`
	AwayGoalsHT *int   `json:"away_goals_ht" validate:"omitempty,gte=0"`
	Status      string `json:"status"`
	MatchStatus string `json:"match_status"`
	Attendance  *int   `json:"attendance" validate:"omitempty,gte=0"`
	Winner      string `json:"winner"`
	ExtraTime   bool   `json:"extra_time"`
	Penalties   bool   `json:"penalties"`
}

func (r fixtureRecord) toDomain() (fixture.Fixture, error) {
	kickoff, err := parseKickoff(cleanString(r.Date), cleanString(r.MatchDate), cleanString(r.MatchTime))
	if err != nil {
		return fixture.Fixture{}, err
	}

	return fixture.Fixture{
		ID:          r.FixtureID,
		KickoffAt:   kickoff,
		StageID:     r.StageID,
		VenueID:     r.VenueID,
		HomeTeamID:  r.HomeTeamID,
		AwayTeamID:  r.AwayTeamID,
		HomeScore:   firstNonNil(r.HomeScore, r.HomeGoals),
		AwayScore:   firstNonNil(r.AwayScore, r.AwayGoals),
		HomeScoreHT: r.HomeGoalsHT,
		AwayScoreHT: r.AwayGoalsHT,
		Status:      fixture.NormalizeStatus(cleanString(firstNonEmpty(r.Status, r.MatchStatus))),
		Attendance:  r.Attendance,
		Winner:      cleanString(r.Winner),
		ExtraTime:   r.ExtraTime,
		Penalties:   r.Penalties,
	}, nil
}

type playerRecord struct {
	PlayerID   int64  `json:"player_id" validate:"gt=0"`
	PlayerName string `json:"player_name" validate:"required"`
	TeamID     int64  `json:"team_id" validate:"gt=0"`
	Position   string `json:"position"`
}

func (r playerRecord) toDomain() player.Player {
	return player.Player{
		ID:       r.PlayerID,
		TeamID:   r.TeamID,
		Name:     cleanString(r.PlayerName),
		Position: cleanString(r.Position),
	}
}

type venueRecord struct {
	VenueID   int64    `json:"venue_id" validate:"gt=0"`
	VenueName string   `json:"venue_name" validate:"required"`
	City      string   `json:"city"`
	Capacity  *int     `json:"capacity" validate:"omitempty,gte=0"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func (r venueRecord) toDomain() venue.Venue {
	out := venue.Venue{
		ID:       r.VenueID,
		Name:     cleanString(r.VenueName),
		City:     cleanString(r.City),
		Capacity: derefInt(r.Capacity),
	}
	if r.Latitude != nil {
		out.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		out.Longitude = *r.Longitude
	}
	return out
}

type stageRecord struct {
	StageID       int64  `json:"stage_id" validate:"gt=0"`
	StageName     string `json:"stage_name" validate:"required"`
	StageOrder    int    `json:"stage_order"`
	KnockoutStage bool   `json:"knockout_stage"`
}

func (r stageRecord) toDomain() stage.Stage {
	return stage.Stage{
		ID:       r.StageID,
		Name:     cleanString(r.StageName),
		Order:    r.StageOrder,
		Knockout: r.KnockoutStage,
	}
}

var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseKickoff reads an ISO timestamp, or a separate date and time pair.
// Values without an offset are taken as UTC.
func parseKickoff(date, matchDate, matchTime string) (time.Time, error) {
	value := date
	if value == "" {
		value = strings.TrimSpace(matchDate + " " + matchTime)
	}
	if value == "" {
		return time.Time{}, errMissingKickoff
	}

	for _, layout := range kickoffLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errUnparsableKickoff(value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonNil(values ...*int) *int {
	for _, v := range values {
		if v != nil {
			out := *v
			return &out
		}
	}
	return nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

package postgres

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

const (
	tableTeams    = "teams"
	tableStages   = "stages"
	tableVenues   = "venues"
	tableFixtures = "fixtures"
	tablePlayers  = "players"
	tableSummary  = "tournament_summary"
)

type teamTableModel struct {
	TeamID      int64         `db:"team_id"`
	TeamName    string        `db:"team_name"`
	GroupLabel  string        `db:"group_label"`
	Country     string        `db:"country"`
	FIFARanking sql.NullInt64 `db:"fifa_ranking"`
	CoachName   string        `db:"coach_name"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.TeamID,
		Name:        m.TeamName,
		Group:       m.GroupLabel,
		Country:     m.Country,
		FIFARanking: int(m.FIFARanking.Int64),
		CoachName:   m.CoachName,
	}
}

func teamModelFromDomain(item team.Team) teamTableModel {
	return teamTableModel{
		TeamID:      item.ID,
		TeamName:    item.Name,
		GroupLabel:  item.Group,
		Country:     item.Country,
		FIFARanking: sql.NullInt64{Int64: int64(item.FIFARanking), Valid: item.FIFARanking > 0},
		CoachName:   item.CoachName,
	}
}

type stageTableModel struct {
	StageID       int64  `db:"stage_id"`
	StageName     string `db:"stage_name"`
	StageOrder    int    `db:"stage_order"`
	KnockoutStage bool   `db:"knockout_stage"`
}

func (m stageTableModel) toDomain() stage.Stage {
	return stage.Stage{ID: m.StageID, Name: m.StageName, Order: m.StageOrder, Knockout: m.KnockoutStage}
}

func stageModelFromDomain(item stage.Stage) stageTableModel {
	return stageTableModel{StageID: item.ID, StageName: item.Name, StageOrder: item.Order, KnockoutStage: item.Knockout}
}

type venueTableModel struct {
	VenueID   int64           `db:"venue_id"`
	VenueName string          `db:"venue_name"`
	City      string          `db:"city"`
	Capacity  sql.NullInt64   `db:"capacity"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
}

func (m venueTableModel) toDomain() venue.Venue {
	return venue.Venue{
		ID:        m.VenueID,
		Name:      m.VenueName,
		City:      m.City,
		Capacity:  int(m.Capacity.Int64),
		Latitude:  m.Latitude.Float64,
		Longitude: m.Longitude.Float64,
	}
}

func venueModelFromDomain(item venue.Venue) venueTableModel {
	return venueTableModel{
		VenueID:   item.ID,
		VenueName: item.Name,
		City:      item.City,
		Capacity:  sql.NullInt64{Int64: int64(item.Capacity), Valid: item.Capacity > 0},
		Latitude:  sql.NullFloat64{Float64: item.Latitude, Valid: item.Latitude != 0 || item.Longitude != 0},
		Longitude: sql.NullFloat64{Float64: item.Longitude, Valid: item.Latitude != 0 || item.Longitude != 0},
	}
}

type fixtureTableModel struct {
	FixtureID     int64         `db:"fixture_id"`
	KickoffAt     time.Time     `db:"kickoff_at"`
	KickoffOffset int           `db:"kickoff_utc_offset_minutes"`
	StageID       int64         `db:"stage_id"`
	VenueID       int64         `db:"venue_id"`
	HomeTeamID    int64         `db:"home_team_id"`
	AwayTeamID    int64         `db:"away_team_id"`
	HomeScore     sql.NullInt64 `db:"home_score"`
	AwayScore     sql.NullInt64 `db:"away_score"`
	HomeScoreHT   sql.NullInt64 `db:"home_score_ht"`
	AwayScoreHT   sql.NullInt64 `db:"away_score_ht"`
	Status        string        `db:"status"`
	Attendance    sql.NullInt64 `db:"attendance"`
	Winner        string        `db:"winner"`
	ExtraTime     bool          `db:"extra_time"`
	Penalties     bool          `db:"penalties"`
}

// toDomain restores the kickoff in the offset it was published with, so the
// calendar date seen by date filters does not depend on the session zone.
func (m fixtureTableModel) toDomain() fixture.Fixture {
	zone := time.FixedZone("", m.KickoffOffset*60)
	return fixture.Fixture{
		ID:          m.FixtureID,
		KickoffAt:   m.KickoffAt.In(zone),
		StageID:     m.StageID,
		VenueID:     m.VenueID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		HomeScore:   nullIntPtr(m.HomeScore),
		AwayScore:   nullIntPtr(m.AwayScore),
		HomeScoreHT: nullIntPtr(m.HomeScoreHT),
		AwayScoreHT: nullIntPtr(m.AwayScoreHT),
		Status:      fixture.NormalizeStatus(m.Status),
		Attendance:  nullIntPtr(m.Attendance),
		Winner:      m.Winner,
		ExtraTime:   m.ExtraTime,
		Penalties:   m.Penalties,
	}
}

func fixtureModelFromDomain(item fixture.Fixture) fixtureTableModel {
	_, offsetSeconds := item.KickoffAt.Zone()
	return fixtureTableModel{
		FixtureID:     item.ID,
		KickoffAt:     item.KickoffAt.UTC(),
		KickoffOffset: offsetSeconds / 60,
		StageID:       item.StageID,
		VenueID:       item.VenueID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		HomeScore:     intPtrNull(item.HomeScore),
		AwayScore:     intPtrNull(item.AwayScore),
		HomeScoreHT:   intPtrNull(item.HomeScoreHT),
		AwayScoreHT:   intPtrNull(item.AwayScoreHT),
		Status:        fixture.NormalizeStatus(item.Status),
		Attendance:    intPtrNull(item.Attendance),
		Winner:        item.Winner,
		ExtraTime:     item.ExtraTime,
		Penalties:     item.Penalties,
	}
}

type playerTableModel struct {
	PlayerID   int64  `db:"player_id"`
	TeamID     int64  `db:"team_id"`
	PlayerName string `db:"player_name"`
	Position   string `db:"position"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{ID: m.PlayerID, TeamID: m.TeamID, Name: m.PlayerName, Position: m.Position}
}

func playerModelFromDomain(item player.Player) playerTableModel {
	return playerTableModel{PlayerID: item.ID, TeamID: item.TeamID, PlayerName: item.Name, Position: item.Position}
}

type summaryTableModel struct {
	Key   string `db:"attr_key"`
	Value string `db:"attr_value"`
}

const (
	summaryKeyName        = "tournament_name"
	summaryKeyEdition     = "edition"
	summaryKeyHostCountry = "host_country"
	summaryKeyStartDate   = "start_date"
	summaryKeyEndDate     = "end_date"
	summaryKeyTotalTeams  = "total_teams"
	summaryKeyTotalGroups = "total_groups"
	summaryKeyChampion    = "champion"
	summaryDateLayout     = "2006-01-02"
)

func summaryFromRows(rows []summaryTableModel) summary.Summary {
	out := summary.Summary{}
	for _, row := range rows {
		switch row.Key {
		case summaryKeyName:
			out.Name = row.Value
		case summaryKeyEdition:
			out.Edition = row.Value
		case summaryKeyHostCountry:
			out.HostCountry = row.Value
		case summaryKeyStartDate:
			out.StartDate = parseSummaryDate(row.Value)
		case summaryKeyEndDate:
			out.EndDate = parseSummaryDate(row.Value)
		case summaryKeyTotalTeams:
			out.TotalTeams, _ = strconv.Atoi(row.Value)
		case summaryKeyTotalGroups:
			out.TotalGroups, _ = strconv.Atoi(row.Value)
		case summaryKeyChampion:
			out.Champion = row.Value
		default:
			if out.Attributes == nil {
				out.Attributes = make(map[string]string)
			}
			out.Attributes[row.Key] = row.Value
		}
	}
	return out
}

func summaryRowsFromDomain(item summary.Summary) []summaryTableModel {
	rows := make([]summaryTableModel, 0, 8+len(item.Attributes))
	add := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			rows = append(rows, summaryTableModel{Key: key, Value: value})
		}
	}
	add(summaryKeyName, item.Name)
	add(summaryKeyEdition, item.Edition)
	add(summaryKeyHostCountry, item.HostCountry)
	if item.StartDate != nil {
		add(summaryKeyStartDate, item.StartDate.Format(summaryDateLayout))
	}
	if item.EndDate != nil {
		add(summaryKeyEndDate, item.EndDate.Format(summaryDateLayout))
	}
	if item.TotalTeams > 0 {
		add(summaryKeyTotalTeams, strconv.Itoa(item.TotalTeams))
	}
	if item.TotalGroups > 0 {
		add(summaryKeyTotalGroups, strconv.Itoa(item.TotalGroups))
	}
	add(summaryKeyChampion, item.Champion)
	for key, value := range item.Attributes {
		add(key, value)
	}
	return rows
}

func parseSummaryDate(value string) *time.Time {
	parsed, err := time.Parse(summaryDateLayout, strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &parsed
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func intPtrNull(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

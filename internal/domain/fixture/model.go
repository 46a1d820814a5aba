package fixture

import (
	"context"
	"strings"
	"time"
)

const (
	StatusNotStarted = "Not Started"
	StatusFinished   = "Match Finished"
)

// Fixture represents one scheduled tournament match.
type Fixture struct {
	ID          int64
	KickoffAt   time.Time
	StageID     int64
	VenueID     int64
	HomeTeamID  int64
	AwayTeamID  int64
	HomeScore   *int
	AwayScore   *int
	HomeScoreHT *int
	AwayScoreHT *int
	Status      string
	Attendance  *int
	Winner      string
	ExtraTime   bool
	Penalties   bool
}

// Involves reports whether the team plays in this fixture, home or away.
func (f Fixture) Involves(teamID int64) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

func (f Fixture) IsFinished() bool {
	return IsFinishedStatus(f.Status)
}

func NormalizeStatus(value string) string {
	status := strings.TrimSpace(value)
	if status == "" {
		return StatusNotStarted
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch strings.ToUpper(NormalizeStatus(status)) {
	case "MATCH FINISHED", "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsNotStartedStatus(status string) bool {
	switch strings.ToUpper(NormalizeStatus(status)) {
	case "NOT STARTED", "NS", "TBD":
		return true
	default:
		return false
	}
}

type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID int64) (Fixture, bool, error)
}

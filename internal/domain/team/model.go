package team

import (
	"context"
	"fmt"
	"strings"
)

// Team is a national side taking part in the tournament.
type Team struct {
	ID          int64
	Name        string
	Group       string
	Country     string
	FIFARanking int
	CoachName   string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required: id=%d", t.ID)
	}
	if strings.TrimSpace(t.Group) == "" {
		return fmt.Errorf("team group is required: id=%d", t.ID)
	}

	return nil
}

type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
}

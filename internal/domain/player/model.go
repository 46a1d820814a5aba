package player

import (
	"context"
	"fmt"
)

// Player is a squad member registered by a team.
type Player struct {
	ID       int64
	TeamID   int64
	Name     string
	Position string
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id must be greater than zero: id=%d", p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required: id=%d", p.ID)
	}

	return nil
}

type Repository interface {
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
}

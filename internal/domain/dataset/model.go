package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

var (
	ErrEmptyDataset    = errors.New("dataset is empty or invalid")
	ErrDuplicateRecord = errors.New("duplicate record id")
	ErrInvalidRecord   = errors.New("invalid record")
	// ErrInvalidData marks source content that no retry can fix.
	ErrInvalidData = errors.New("invalid dataset content")
	// ErrNotLoaded is returned by readers before the first successful load.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// Dataset is one complete, immutable load of tournament data.
type Dataset struct {
	Teams    []team.Team
	Fixtures []fixture.Fixture
	Players  []player.Player
	Venues   []venue.Venue
	Stages   []stage.Stage
	Summary  summary.Summary
	Version  string
	LoadedAt time.Time
}

// Source loads a full dataset from some backing store.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
	Name() string
}

// Validate rejects datasets the statistics core must never see.
func (d Dataset) Validate() error {
	switch {
	case len(d.Teams) == 0:
		return fmt.Errorf("%w: teams data is empty", ErrEmptyDataset)
	case len(d.Fixtures) == 0:
		return fmt.Errorf("%w: fixtures data is empty", ErrEmptyDataset)
	case len(d.Players) == 0:
		return fmt.Errorf("%w: players data is empty", ErrEmptyDataset)
	case len(d.Venues) == 0:
		return fmt.Errorf("%w: venues data is empty", ErrEmptyDataset)
	case len(d.Stages) == 0:
		return fmt.Errorf("%w: tournament stages data is empty", ErrEmptyDataset)
	case d.Summary.IsEmpty():
		return fmt.Errorf("%w: tournament summary data is empty", ErrEmptyDataset)
	}

	teamIDs := make(map[int64]struct{}, len(d.Teams))
	for _, item := range d.Teams {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		if _, exists := teamIDs[item.ID]; exists {
			return fmt.Errorf("%w: team=%d", ErrDuplicateRecord, item.ID)
		}
		teamIDs[item.ID] = struct{}{}
	}

	fixtureIDs := make(map[int64]struct{}, len(d.Fixtures))
	for _, item := range d.Fixtures {
		if item.ID <= 0 {
			return fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidRecord)
		}
		if _, exists := fixtureIDs[item.ID]; exists {
			return fmt.Errorf("%w: fixture=%d", ErrDuplicateRecord, item.ID)
		}
		fixtureIDs[item.ID] = struct{}{}
	}

	for _, item := range d.Players {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
	}

	return nil
}

// DanglingReferences lists fixture foreign keys that resolve to no known record.
// They are reported, not rejected: lookups on them behave as "not found".
func (d Dataset) DanglingReferences() []string {
	teamIDs := make(map[int64]struct{}, len(d.Teams))
	for _, item := range d.Teams {
		teamIDs[item.ID] = struct{}{}
	}
	stageIDs := make(map[int64]struct{}, len(d.Stages))
	for _, item := range d.Stages {
		stageIDs[item.ID] = struct{}{}
	}
	venueIDs := make(map[int64]struct{}, len(d.Venues))
	for _, item := range d.Venues {
		venueIDs[item.ID] = struct{}{}
	}

	var out []string
	for _, item := range d.Fixtures {
		if _, ok := teamIDs[item.HomeTeamID]; !ok {
			out = append(out, fmt.Sprintf("fixture=%d home_team_id=%d", item.ID, item.HomeTeamID))
		}
		if _, ok := teamIDs[item.AwayTeamID]; !ok {
			out = append(out, fmt.Sprintf("fixture=%d away_team_id=%d", item.ID, item.AwayTeamID))
		}
		if _, ok := stageIDs[item.StageID]; !ok {
			out = append(out, fmt.Sprintf("fixture=%d stage_id=%d", item.ID, item.StageID))
		}
		if _, ok := venueIDs[item.VenueID]; !ok {
			out = append(out, fmt.Sprintf("fixture=%d venue_id=%d", item.ID, item.VenueID))
		}
	}
	for _, item := range d.Players {
		if _, ok := teamIDs[item.TeamID]; !ok {
			out = append(out, fmt.Sprintf("player=%d team_id=%d", item.ID, item.TeamID))
		}
	}

	return out
}

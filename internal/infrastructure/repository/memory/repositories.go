package memory

import (
	"context"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	snap, err := r.store.load()
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), snap.data.Teams...), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	snap, err := r.store.load()
	if err != nil {
		return team.Team{}, false, err
	}
	item, ok := snap.teamsByID[teamID]
	return item, ok, nil
}

type FixtureRepository struct {
	store *Store
}

func NewFixtureRepository(store *Store) *FixtureRepository {
	return &FixtureRepository{store: store}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	snap, err := r.store.load()
	if err != nil {
		return nil, err
	}
	return append([]fixture.Fixture(nil), snap.data.Fixtures...), nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	snap, err := r.store.load()
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	item, ok := snap.fixturesByID[fixtureID]
	return item, ok, nil
}

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	snap, err := r.store.load()
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), snap.playersByTeam[teamID]...), nil
}

type StageRepository struct {
	store *Store
}

func NewStageRepository(store *Store) *StageRepository {
	return &StageRepository{store: store}
}

func (r *StageRepository) List(_ context.Context) ([]stage.Stage, error) {
	snap, err := r.store.load()
	if err != nil {
		return nil, err
	}
	return append([]stage.Stage(nil), snap.data.Stages...), nil
}

type VenueRepository struct {
	store *Store
}

func NewVenueRepository(store *Store) *VenueRepository {
	return &VenueRepository{store: store}
}

func (r *VenueRepository) List(_ context.Context) ([]venue.Venue, error) {
	snap, err := r.store.load()
	if err != nil {
		return nil, err
	}
	return append([]venue.Venue(nil), snap.data.Venues...), nil
}

type SummaryRepository struct {
	store *Store
}

func NewSummaryRepository(store *Store) *SummaryRepository {
	return &SummaryRepository{store: store}
}

func (r *SummaryRepository) Get(_ context.Context) (summary.Summary, bool, error) {
	snap, err := r.store.load()
	if err != nil {
		return summary.Summary{}, false, err
	}
	return snap.data.Summary, !snap.data.Summary.IsEmpty(), nil
}

var (
	_ team.Repository    = (*TeamRepository)(nil)
	_ fixture.Repository = (*FixtureRepository)(nil)
	_ player.Repository  = (*PlayerRepository)(nil)
	_ stage.Repository   = (*StageRepository)(nil)
	_ venue.Repository   = (*VenueRepository)(nil)
	_ summary.Repository = (*SummaryRepository)(nil)
)

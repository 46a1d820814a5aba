package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/analytics"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

const maxSearchLength = 100

type TournamentService struct {
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	playerRepo  player.Repository
	stageRepo   stage.Repository
	venueRepo   venue.Repository
	summaryRepo summary.Repository
}

func NewTournamentService(
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	stageRepo stage.Repository,
	venueRepo venue.Repository,
	summaryRepo summary.Repository,
) *TournamentService {
	return &TournamentService{
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		playerRepo:  playerRepo,
		stageRepo:   stageRepo,
		venueRepo:   venueRepo,
		summaryRepo: summaryRepo,
	}
}

// ListTeams returns teams whose name contains search, case-insensitively.
func (s *TournamentService) ListTeams(ctx context.Context, search string) ([]team.Team, error) {
	search = strings.TrimSpace(search)
	if len(search) > maxSearchLength {
		return nil, fmt.Errorf("%w: search must be at most %d characters", ErrInvalidInput, maxSearchLength)
	}

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list teams", err)
	}
	return analytics.SearchTeams(items, search), nil
}

func (s *TournamentService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, wrapRepoErr("get team", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TournamentService) ListPlayersByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, wrapRepoErr("list players by team", err)
	}
	return items, nil
}

// ListStages orders stages by tournament progression.
func (s *TournamentService) ListStages(ctx context.Context) ([]stage.Stage, error) {
	items, err := s.stageRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list stages", err)
	}
	slices.SortStableFunc(items, func(a, b stage.Stage) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return int(a.ID - b.ID)
	})
	return items, nil
}

func (s *TournamentService) ListVenues(ctx context.Context) ([]venue.Venue, error) {
	items, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list venues", err)
	}
	return items, nil
}

func (s *TournamentService) GetFixture(ctx context.Context, fixtureID int64) (fixture.Fixture, error) {
	if fixtureID <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, wrapRepoErr("get fixture", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}
	return item, nil
}

func (s *TournamentService) GetSummary(ctx context.Context) (summary.Summary, error) {
	item, exists, err := s.summaryRepo.Get(ctx)
	if err != nil {
		return summary.Summary{}, wrapRepoErr("get tournament summary", err)
	}
	if !exists {
		return summary.Summary{}, fmt.Errorf("%w: tournament summary", ErrNotFound)
	}
	return item, nil
}

package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/analytics"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/cache"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

const (
	defaultStatsWorkers = 8
	maxRecentMatches    = 50
)

// DatasetVersioner reports the version of the active dataset. Cached
// statistics are keyed by it.
type DatasetVersioner interface {
	Version() string
}

type GroupStanding struct {
	Group string
	Teams []analytics.RankedTeam
}

type StatisticsService struct {
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	venueRepo   venue.Repository
	versions    DatasetVersioner
	cache       *cache.Store
	workers     int
	logger      *logging.Logger
}

func NewStatisticsService(
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	venueRepo venue.Repository,
	versions DatasetVersioner,
	cacheStore *cache.Store,
	workers int,
	logger *logging.Logger,
) *StatisticsService {
	if workers <= 0 {
		workers = defaultStatsWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StatisticsService{
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		venueRepo:   venueRepo,
		versions:    versions,
		cache:       cacheStore,
		workers:     workers,
		logger:      logger,
	}
}

func (s *StatisticsService) FilteredFixtures(ctx context.Context, state filter.State) ([]fixture.Fixture, error) {
	all, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list fixtures", err)
	}
	return analytics.FilterFixtures(all, state), nil
}

// Summary computes the headline KPIs over the fixtures selected by state.
func (s *StatisticsService) Summary(ctx context.Context, state filter.State) (out analytics.Summary, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Summary")
	defer func() { endSpan(span, err) }()

	filtered, err := s.FilteredFixtures(ctx, state)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.ComputeStats(filtered), nil
}

// TeamStats is always computed over the full fixture list.
func (s *StatisticsService) TeamStats(ctx context.Context, teamID int64) (analytics.TeamStats, error) {
	if err := s.ensureTeam(ctx, teamID); err != nil {
		return analytics.TeamStats{}, err
	}

	all, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return analytics.TeamStats{}, wrapRepoErr("list fixtures", err)
	}
	return analytics.CalculateTeamStats(teamID, all), nil
}

// GroupStandings returns every group ordered by label, each ranked by the
// standings comparator. Results are memoized per dataset version.
func (s *StatisticsService) GroupStandings(ctx context.Context) (out []GroupStanding, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.GroupStandings")
	defer func() { endSpan(span, err) }()

	version := s.versions.Version()
	if version == "" {
		return s.computeGroupStandings(ctx)
	}
	span.SetAttributes(attribute.String("dataset.version", version))

	return cache.GetOrLoad(ctx, s.cache, statsCachePrefix(version)+"standings", s.computeGroupStandings)
}

func (s *StatisticsService) computeGroupStandings(ctx context.Context) ([]GroupStanding, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list teams", err)
	}
	all, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list fixtures", err)
	}

	stats, err := s.computeTeamStats(ctx, teams, all)
	if err != nil {
		return nil, err
	}

	groups := analytics.GroupStandingsFromStats(teams, stats)
	out := make([]GroupStanding, 0, len(groups))
	for _, label := range analytics.SortedGroups(groups) {
		out = append(out, GroupStanding{Group: label, Teams: groups[label]})
	}
	return out, nil
}

func (s *StatisticsService) TeamPerformance(ctx context.Context, teamID int64, state filter.State) (analytics.TeamPerformance, error) {
	if err := s.ensureTeam(ctx, teamID); err != nil {
		return analytics.TeamPerformance{}, err
	}

	all, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return analytics.TeamPerformance{}, wrapRepoErr("list fixtures", err)
	}
	return analytics.TeamPerformanceOf(teamID, all, analytics.FilterFixtures(all, state)), nil
}

func (s *StatisticsService) VenueUsage(ctx context.Context, state filter.State) ([]analytics.VenueUsage, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, wrapRepoErr("list venues", err)
	}
	filtered, err := s.FilteredFixtures(ctx, state)
	if err != nil {
		return nil, err
	}
	return analytics.VenueUsageOf(venues, filtered), nil
}

func (s *StatisticsService) GoalsTrend(ctx context.Context, state filter.State) ([]analytics.GoalsTrendPoint, error) {
	filtered, err := s.FilteredFixtures(ctx, state)
	if err != nil {
		return nil, err
	}
	return analytics.GoalsTrend(filtered), nil
}

// RecentMatches treats a zero limit as the default page size.
func (s *StatisticsService) RecentMatches(ctx context.Context, state filter.State, limit int) ([]fixture.Fixture, error) {
	if limit < 0 || limit > maxRecentMatches {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxRecentMatches)
	}

	filtered, err := s.FilteredFixtures(ctx, state)
	if err != nil {
		return nil, err
	}
	return analytics.RecentMatches(filtered, limit), nil
}

// TeamComparison contrasts the season record of every team, flagging the
// ones selected in state. It is empty when the selection holds no finished
// fixture.
func (s *StatisticsService) TeamComparison(ctx context.Context, state filter.State) (out analytics.Comparison, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.TeamComparison")
	defer func() { endSpan(span, err) }()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return analytics.Comparison{}, wrapRepoErr("list teams", err)
	}
	all, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return analytics.Comparison{}, wrapRepoErr("list fixtures", err)
	}

	filtered := analytics.FilterFixtures(all, state)
	if !hasFinished(filtered) {
		return analytics.Comparison{}, nil
	}

	stats, err := s.computeTeamStats(ctx, teams, all)
	if err != nil {
		return analytics.Comparison{}, err
	}
	return analytics.ComparisonFromStats(teams, stats, state), nil
}

// computeTeamStats fans CalculateTeamStats out over a worker pool. stats[i]
// belongs to teams[i].
func (s *StatisticsService) computeTeamStats(ctx context.Context, teams []team.Team, all []fixture.Fixture) ([]analytics.TeamStats, error) {
	stats := make([]analytics.TeamStats, len(teams))
	if len(teams) == 0 {
		return stats, nil
	}

	workerCount := min(s.workers, len(teams))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, item := range teams {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			stats[idx] = analytics.CalculateTeamStats(item.ID, all)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit team stats to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "team stats computed", "teams", len(teams), "workers", workerCount)
	return stats, nil
}

func (s *StatisticsService) ensureTeam(ctx context.Context, teamID int64) error {
	if teamID <= 0 {
		return fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return wrapRepoErr("get team", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return nil
}

func hasFinished(items []fixture.Fixture) bool {
	for _, item := range items {
		if item.IsFinished() {
			return true
		}
	}
	return false
}

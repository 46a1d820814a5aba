package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
	qb "github.com/riskibarqy/tournament-dashboard/internal/platform/querybuilder"
)

// DatasetSource reads the whole tournament dataset in one read-only
// transaction so every table reflects the same committed state.
type DatasetSource struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDatasetSource(db *sqlx.DB) *DatasetSource {
	return &DatasetSource{db: db, now: time.Now}
}

func (s *DatasetSource) Name() string {
	return "postgres"
}

func (s *DatasetSource) Load(ctx context.Context) (dataset.Dataset, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("begin dataset read tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	digest := xxhash.New()

	var teams []teamTableModel
	if err := selectAll(ctx, tx, digest, &teams, tableTeams, "team_id"); err != nil {
		return dataset.Dataset{}, err
	}
	var stages []stageTableModel
	if err := selectAll(ctx, tx, digest, &stages, tableStages, "stage_order", "stage_id"); err != nil {
		return dataset.Dataset{}, err
	}
	var venues []venueTableModel
	if err := selectAll(ctx, tx, digest, &venues, tableVenues, "venue_id"); err != nil {
		return dataset.Dataset{}, err
	}
	var fixtures []fixtureTableModel
	if err := selectAll(ctx, tx, digest, &fixtures, tableFixtures, "kickoff_at", "fixture_id"); err != nil {
		return dataset.Dataset{}, err
	}
	var players []playerTableModel
	if err := selectAll(ctx, tx, digest, &players, tablePlayers, "team_id", "player_id"); err != nil {
		return dataset.Dataset{}, err
	}
	var summaryRows []summaryTableModel
	if err := selectAll(ctx, tx, digest, &summaryRows, tableSummary, "attr_key"); err != nil {
		return dataset.Dataset{}, err
	}

	out := dataset.Dataset{
		Teams:    make([]team.Team, 0, len(teams)),
		Stages:   make([]stage.Stage, 0, len(stages)),
		Venues:   make([]venue.Venue, 0, len(venues)),
		Fixtures: make([]fixture.Fixture, 0, len(fixtures)),
		Players:  make([]player.Player, 0, len(players)),
		Summary:  summaryFromRows(summaryRows),
		Version:  strconv.FormatUint(digest.Sum64(), 16),
		LoadedAt: s.now().UTC(),
	}
	for _, row := range teams {
		out.Teams = append(out.Teams, row.toDomain())
	}
	for _, row := range stages {
		out.Stages = append(out.Stages, row.toDomain())
	}
	for _, row := range venues {
		out.Venues = append(out.Venues, row.toDomain())
	}
	for _, row := range fixtures {
		out.Fixtures = append(out.Fixtures, row.toDomain())
	}
	for _, row := range players {
		out.Players = append(out.Players, row.toDomain())
	}

	return out, nil
}

// selectAll loads every row of table into dst and feeds the rows into digest.
func selectAll[T any](ctx context.Context, tx *sqlx.Tx, digest *xxhash.Digest, dst *[]T, table string, orderBy ...string) error {
	var model T
	query, args, err := qb.Select(qb.ColumnsOf(model)...).
		From(table).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select %s query: %w", table, err)
	}

	if err := tx.SelectContext(ctx, dst, query, args...); err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}

	encoded, err := sonic.Marshal(*dst)
	if err != nil {
		return fmt.Errorf("encode %s for version: %w", table, err)
	}
	_, _ = digest.WriteString(table)
	_, _ = digest.Write(encoded)
	return nil
}

var _ dataset.Source = (*DatasetSource)(nil)

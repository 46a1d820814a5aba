package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	qb "github.com/riskibarqy/tournament-dashboard/internal/platform/querybuilder"
)

const insertBatchSize = 500

// DatasetWriter replaces the stored dataset with a validated one.
type DatasetWriter struct {
	db *sqlx.DB
}

func NewDatasetWriter(db *sqlx.DB) *DatasetWriter {
	return &DatasetWriter{db: db}
}

// Replace deletes every tournament row and inserts data in a single
// transaction; readers see either the old or the new dataset.
func (w *DatasetWriter) Replace(ctx context.Context, data dataset.Dataset) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dataset replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{tableSummary, tablePlayers, tableFixtures, tableVenues, tableStages, tableTeams} {
		query, err := qb.DeleteAll(table)
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertAll(ctx, tx, tableTeams, mapSlice(data.Teams, teamModelFromDomain)); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, tableStages, mapSlice(data.Stages, stageModelFromDomain)); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, tableVenues, mapSlice(data.Venues, venueModelFromDomain)); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, tableFixtures, mapSlice(data.Fixtures, fixtureModelFromDomain)); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, tablePlayers, mapSlice(data.Players, playerModelFromDomain)); err != nil {
		return err
	}
	if err := insertAll(ctx, tx, tableSummary, summaryRowsFromDomain(data.Summary)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset replace tx: %w", err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		query, args, err := qb.InsertModels(table, rows[start:end])
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", table, start, end, err)
		}
	}
	return nil
}

func mapSlice[S, T any](items []S, fn func(S) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

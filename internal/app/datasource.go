package app

import (
	"github.com/riskibarqy/tournament-dashboard/internal/config"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/datasource/jsonfile"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

func newDatasetSource(cfg config.Config, logger *logging.Logger) (dataset.Source, func() error, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		db, err := OpenDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("dataset source configured", "source", cfg.DataSource, "db_name", databaseName(cfg.DBURL))
		return postgres.NewDatasetSource(db), db.Close, nil
	default:
		logger.Info("dataset source configured", "source", cfg.DataSource, "dir", cfg.DataDir)
		return jsonfile.NewSource(cfg.DataDir, logger.Named("jsonfile")), func() error { return nil }, nil
	}
}

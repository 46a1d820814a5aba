package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/cache"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/resilience"
)

// SnapshotStore keeps the dataset that read paths are served from.
type SnapshotStore interface {
	Replace(data dataset.Dataset)
	Current() (dataset.Dataset, bool)
	Version() string
}

type ReloadResult struct {
	Source             string
	Version            string
	PreviousVersion    string
	Changed            bool
	Teams              int
	Fixtures           int
	Players            int
	Venues             int
	Stages             int
	DanglingReferences int
	LoadedAt           time.Time
}

type DatasetService struct {
	source  dataset.Source
	store   SnapshotStore
	retrier *resilience.Retrier
	cache   *cache.Store
	logger  *logging.Logger

	// reloadMu serializes reloads so two refreshes never race on the swap.
	reloadMu sync.Mutex
}

func NewDatasetService(
	source dataset.Source,
	store SnapshotStore,
	retrier *resilience.Retrier,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *DatasetService {
	if logger == nil {
		logger = logging.Default()
	}
	if retrier == nil {
		retrier = resilience.NewRetrier(resilience.DefaultRetryConfig(), logger)
	}
	return &DatasetService{
		source:  source,
		store:   store,
		retrier: retrier,
		cache:   cacheStore,
		logger:  logger,
	}
}

// Reload loads, validates and activates a fresh dataset. On failure the
// previous dataset, if any, stays active.
func (s *DatasetService) Reload(ctx context.Context) (result ReloadResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Reload", attribute.String("dataset.source", s.source.Name()))
	defer func() { endSpan(span, err) }()

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	data, err := resilience.Retry(ctx, s.retrier, "dataset.load", func(ctx context.Context) (dataset.Dataset, error) {
		loaded, loadErr := s.source.Load(ctx)
		if loadErr != nil {
			if crerr.Is(loadErr, dataset.ErrInvalidData) {
				return dataset.Dataset{}, resilience.Permanent(loadErr)
			}
			return dataset.Dataset{}, loadErr
		}
		if validateErr := loaded.Validate(); validateErr != nil {
			return dataset.Dataset{}, resilience.Permanent(crerr.Mark(validateErr, dataset.ErrInvalidData))
		}
		return loaded, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "dataset reload failed",
			"source", s.source.Name(),
			"active_version", s.store.Version(),
			"error", err,
		)
		return ReloadResult{}, fmt.Errorf("%w: load dataset from %s: %w", ErrDependencyUnavailable, s.source.Name(), err)
	}

	if data.LoadedAt.IsZero() {
		data.LoadedAt = time.Now().UTC()
	}
	if data.Version == "" {
		data.Version = fmt.Sprintf("t%d", data.LoadedAt.UnixNano())
	}

	dangling := data.DanglingReferences()
	for _, ref := range dangling {
		s.logger.WarnContext(ctx, "dataset reference does not resolve", "reference", ref)
	}

	previous := s.store.Version()
	result = ReloadResult{
		Source:             s.source.Name(),
		Version:            data.Version,
		PreviousVersion:    previous,
		Changed:            previous != data.Version,
		Teams:              len(data.Teams),
		Fixtures:           len(data.Fixtures),
		Players:            len(data.Players),
		Venues:             len(data.Venues),
		Stages:             len(data.Stages),
		DanglingReferences: len(dangling),
		LoadedAt:           data.LoadedAt,
	}

	if !result.Changed {
		s.logger.DebugContext(ctx, "dataset unchanged", "version", data.Version)
		return result, nil
	}

	s.store.Replace(data)
	if previous != "" {
		if cacheErr := s.cache.DeletePrefix(ctx, statsCachePrefix(previous)); cacheErr != nil {
			s.logger.WarnContext(ctx, "drop stale statistics cache failed", "version", previous, "error", cacheErr)
		}
	}

	s.logger.InfoContext(ctx, "dataset activated",
		"source", result.Source,
		"version", result.Version,
		"previous_version", result.PreviousVersion,
		"teams", result.Teams,
		"fixtures", result.Fixtures,
		"players", result.Players,
		"venues", result.Venues,
		"stages", result.Stages,
		"dangling_references", result.DanglingReferences,
	)

	return result, nil
}

// Run reloads every interval until ctx is done. Failures are logged and the
// active dataset keeps serving.
func (s *DatasetService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.WarnContext(ctx, "scheduled dataset refresh failed", "error", err)
			}
		}
	}
}

func (s *DatasetService) Version() string {
	return s.store.Version()
}

// Ready reports whether a dataset has been activated.
func (s *DatasetService) Ready() bool {
	_, ok := s.store.Current()
	return ok
}

func statsCachePrefix(version string) string {
	return "stats:" + version + ":"
}

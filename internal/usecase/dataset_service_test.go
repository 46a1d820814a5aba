package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/infrastructure/repository/memory"
	datasetmock "github.com/riskibarqy/tournament-dashboard/internal/mocks/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/cache"
	"github.com/riskibarqy/tournament-dashboard/internal/platform/resilience"
)

func fastRetrier(attempts int) *resilience.Retrier {
	return resilience.NewRetrier(resilience.RetryConfig{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}, nil)
}

func TestDatasetService_Reload_ActivatesAndDropsStaleCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := datasetmock.NewSource(t)
	source.On("Name").Return("mock")
	source.On("Load", mock.Anything).Return(testDataset("v2"), nil).Once()

	store := loadedStore("v1")
	backend := cache.NewMemoryBackend()
	cacheStore := cache.NewStore(backend, time.Minute, nil)
	if err := cacheStore.Set(ctx, statsCachePrefix("v1")+"standings", []string{"stale"}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	service := NewDatasetService(source, store, fastRetrier(1), cacheStore, nil)
	result, err := service.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !result.Changed || result.Version != "v2" || result.PreviousVersion != "v1" {
		t.Fatalf("unexpected reload result: %+v", result)
	}
	if result.Teams != 5 || result.Fixtures != 4 || result.Stages != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if service.Version() != "v2" {
		t.Fatalf("unexpected active version: %s", service.Version())
	}
	if backend.Len() != 0 {
		t.Fatalf("expected stale statistics to be dropped, %d entries left", backend.Len())
	}
}

func TestDatasetService_Reload_SameVersionKeepsSnapshot(t *testing.T) {
	t.Parallel()

	source := datasetmock.NewSource(t)
	source.On("Name").Return("mock")
	source.On("Load", mock.Anything).Return(testDataset("v1"), nil).Once()

	seeded := testDataset("v1")
	seeded.LoadedAt = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	store.Replace(seeded)

	service := NewDatasetService(source, store, fastRetrier(1), nil, nil)
	result, err := service.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if result.Changed {
		t.Fatalf("expected unchanged result: %+v", result)
	}
	after, _ := store.Current()
	if !after.LoadedAt.Equal(seeded.LoadedAt) {
		t.Fatalf("snapshot should not be swapped")
	}
}

func TestDatasetService_Reload_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	source := datasetmock.NewSource(t)
	source.On("Name").Return("mock")
	source.On("Load", mock.Anything).Return(dataset.Dataset{}, errors.New("connection reset")).Twice()
	source.On("Load", mock.Anything).Return(testDataset("v1"), nil).Once()

	service := NewDatasetService(source, memory.NewStore(), fastRetrier(3), nil, nil)
	result, err := service.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if result.Version != "v1" || !service.Ready() {
		t.Fatalf("expected v1 to be active: %+v", result)
	}
}

func TestDatasetService_Reload_InvalidDataIsNotRetried(t *testing.T) {
	t.Parallel()

	source := datasetmock.NewSource(t)
	source.On("Name").Return("mock")
	source.On("Load", mock.Anything).
		Return(dataset.Dataset{}, crerr.Mark(errors.New("decode Teams.json"), dataset.ErrInvalidData)).
		Once()

	store := loadedStore("v1")
	service := NewDatasetService(source, store, fastRetrier(5), nil, nil)

	_, err := service.Reload(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if store.Version() != "v1" {
		t.Fatalf("previous dataset should stay active, got %s", store.Version())
	}
}

func TestDatasetService_Reload_RejectsEmptyParts(t *testing.T) {
	t.Parallel()

	broken := testDataset("v2")
	broken.Players = nil

	source := datasetmock.NewSource(t)
	source.On("Name").Return("mock")
	source.On("Load", mock.Anything).Return(broken, nil).Once()

	service := NewDatasetService(source, memory.NewStore(), fastRetrier(3), nil, nil)
	_, err := service.Reload(context.Background())
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if service.Ready() {
		t.Fatalf("service must not become ready on an invalid dataset")
	}
}

func TestDatasetService_Reload_DefaultsVersion(t *testing.T) {
	t.Parallel()

	source := datasetmock.NewSource(t)
	source.On("Name").Return("mock")
	source.On("Load", mock.Anything).Return(testDataset(""), nil).Once()

	service := NewDatasetService(source, memory.NewStore(), fastRetrier(1), nil, nil)
	result, err := service.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if result.Version == "" || result.LoadedAt.IsZero() {
		t.Fatalf("expected version and load time to be filled: %+v", result)
	}
}

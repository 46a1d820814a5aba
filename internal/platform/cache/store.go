package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

// Backend stores encoded values. Implementations must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Store memoizes derived values on top of a Backend. A nil *Store is valid
// and disables caching.
type Store struct {
	backend Backend
	ttl     time.Duration
	flight  singleflight.Group
	logger  *logging.Logger
}

func NewStore(backend Backend, ttl time.Duration, logger *logging.Logger) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend: backend,
		ttl:     ttl,
		logger:  logger,
	}
}

func NewMemoryStore(ttl time.Duration) *Store {
	return NewStore(NewMemoryBackend(), ttl, nil)
}

// Get decodes the cached value for key into dst.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	if s == nil || key == "" {
		return false, nil
	}

	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("cache get key=%s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cache key=%s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, key string, value any) error {
	if s == nil || key == "" {
		return nil
	}

	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache key=%s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl); err != nil {
		return fmt.Errorf("cache set key=%s: %w", key, err)
	}
	return nil
}

func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	if s == nil || prefix == "" {
		return nil
	}
	if err := s.backend.DeletePrefix(ctx, prefix); err != nil {
		return fmt.Errorf("cache delete prefix=%s: %w", prefix, err)
	}
	return nil
}

// GetOrLoad returns the cached value for key, calling loader at most once per
// key across concurrent callers on a miss. Backend failures degrade to calling
// loader directly.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	var cached T
	ok, err := s.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed, loading directly", "key", key, "error", err)
	}
	if ok {
		return cached, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		var again T
		if ok, _ := s.Get(ctx, key, &again); ok {
			return again, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := s.Set(ctx, key, loaded); setErr != nil {
			s.logger.WarnContext(ctx, "cache write failed", "key", key, "error", setErr)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache key=%s holds unexpected type %T", key, value)
	}
	return out, nil
}

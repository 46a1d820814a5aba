package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type standingRow struct {
	TeamID int64
	Points int
}

func TestGetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]standingRow, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []standingRow{{TeamID: 1, Points: 7}}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			rows, err := GetOrLoad(context.Background(), store, "standings:v1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(rows) != 1 || rows[0].Points != 7 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestGetOrLoad_DecodesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (map[string][]standingRow, error) {
		calls.Add(1)
		return map[string][]standingRow{"A": {{TeamID: 3, Points: 9}}}, nil
	}

	if _, err := GetOrLoad(context.Background(), store, "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	got, err := GetOrLoad(context.Background(), store, "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}
	if len(got["A"]) != 1 || got["A"][0].TeamID != 3 {
		t.Fatalf("unexpected decoded value: %+v", got)
	}
}

func TestGetOrLoad_PropagatesLoaderError(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	boom := errors.New("boom")

	_, err := GetOrLoad(context.Background(), store, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	var dst int
	if ok, _ := store.Get(context.Background(), "k", &dst); ok {
		t.Fatalf("failed load must not be cached")
	}
}

func TestGetOrLoad_NilStoreCallsLoader(t *testing.T) {
	t.Parallel()

	var store *Store
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		calls.Add(1)
		return "fresh", nil
	}

	for i := 0; i < 2; i++ {
		got, err := GetOrLoad(context.Background(), store, "k", loader)
		if err != nil || got != "fresh" {
			t.Fatalf("unexpected result: %q %v", got, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected loader on every call without a store, got %d", calls.Load())
	}
}

func TestMemoryBackend_ExpiresEntries(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return now }

	if err := backend.Set(context.Background(), "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := backend.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Second)
	if _, ok, _ := backend.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
	if backend.Len() != 0 {
		t.Fatalf("expired entry should be removed, len=%d", backend.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	backend := NewMemoryBackend()
	store := NewStore(backend, 0, nil)
	ctx := context.Background()

	for _, key := range []string{"stats:v1:standings", "stats:v1:comparison", "catalog:teams"} {
		if err := store.Set(ctx, key, 1); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	if err := store.DeletePrefix(ctx, "stats:"); err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if backend.Len() != 1 {
		t.Fatalf("expected one remaining entry, got %d", backend.Len())
	}
	var dst int
	if ok, _ := store.Get(ctx, "catalog:teams", &dst); !ok || dst != 1 {
		t.Fatalf("unrelated key should survive, ok=%v value=%d", ok, dst)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
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
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
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

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "game:g1", 1)
	if _, ok := store.Get(context.Background(), "game:g1"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(context.Background(), "game:g1"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "game:g1", 1)
	store.Set(ctx, "game:g2", 2)
	store.Set(ctx, "teams", 3)

	store.DeletePrefix(ctx, "game:")

	if _, ok := store.Get(ctx, "game:g1"); ok {
		t.Fatalf("expected game:g1 to be removed")
	}
	if _, ok := store.Get(ctx, "teams"); !ok {
		t.Fatalf("expected teams to survive")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errUnexpectedValue
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("unexpected second load: %v %v", v, err)
	}
}

func TestStore_GetOrLoad_SkipsCachingWhenInvalidatedMidLoad(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls atomic.Int32
	loader := func(ctx context.Context) (any, error) {
		n := calls.Add(1)
		if n == 1 {
			store.Delete(ctx, "game:g1")
		}
		return n, nil
	}

	v, err := store.GetOrLoad(ctx, "game:g1", loader)
	if err != nil || v != int32(1) {
		t.Fatalf("unexpected first load: %v %v", v, err)
	}
	if _, ok := store.Get(ctx, "game:g1"); ok {
		t.Fatalf("expected stale load to stay uncached")
	}
	v, err = store.GetOrLoad(ctx, "game:g1", loader)
	if err != nil || v != int32(2) {
		t.Fatalf("unexpected reload: %v %v", v, err)
	}
	if cached, ok := store.Get(ctx, "game:g1"); !ok || cached != int32(2) {
		t.Fatalf("expected reload to be cached, got %v %v", cached, ok)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
